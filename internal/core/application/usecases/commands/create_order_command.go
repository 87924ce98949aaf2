package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemInput is one requested order line. The sku, name and unit price are
// passed in by the caller and become snapshots on the created item.
type ItemInput struct {
	ProductID      kernel.UUID
	SKU            string
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// toItem converts the input into a validated domain item.
func (i ItemInput) toItem() (order.Item, error) {
	unitPrice, err := kernel.NewMoneyFromCents(i.UnitPriceCents)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(i.ProductID, i.SKU, i.Name, unitPrice, i.Quantity)
}

// CreateOrderCommand represents a request to submit a new order.
// Encapsulates the destination store, fulfilling warehouse, requested lines
// and optional priority/scheduling flags.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), storeID, warehouseID, nil, items, false, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, stockProvider)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	storeID      kernel.UUID
	warehouseID  kernel.UUID
	agentID      *kernel.UUID
	items        []order.Item
	priority     bool
	scheduledFor *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to submit a new order.
// Validates identifiers and converts every item input into a domain item,
// so malformed lines fail before any transaction is opened.
func NewCreateOrderCommand(
	orderID, storeID, warehouseID kernel.UUID,
	agentID *kernel.UUID,
	items []ItemInput,
	priority bool,
	scheduledFor *time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStoreID(storeID),
		cmd.setWarehouseID(warehouseID),
		cmd.setAgentID(agentID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.priority = priority
	cmd.scheduledFor = scheduledFor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StoreID returns the destination store reference.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// WarehouseID returns the fulfilling warehouse reference.
func (c CreateOrderCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// AgentID returns the assigned field agent reference, or nil.
func (c CreateOrderCommand) AgentID() *kernel.UUID {
	return c.agentID
}

// Items returns the validated order lines.
func (c CreateOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

// Priority reports whether the order is flagged for priority handling.
func (c CreateOrderCommand) Priority() bool {
	return c.priority
}

// ScheduledFor returns the requested fulfillment time, or nil.
func (c CreateOrderCommand) ScheduledFor() *time.Time {
	return c.scheduledFor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	c.warehouseID = warehouseID
	return nil
}

func (c *CreateOrderCommand) setAgentID(agentID *kernel.UUID) error {
	if agentID == nil {
		return nil
	}
	if err := agentID.Validate(); err != nil {
		return err
	}
	c.agentID = agentID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	converted := make([]order.Item, 0, len(items))
	for _, input := range items {
		item, err := input.toItem()
		if err != nil {
			return err
		}
		converted = append(converted, item)
	}
	c.items = converted
	return nil
}
