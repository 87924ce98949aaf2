package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// EditOrderCommand represents a request to replace a pending order's lines
// and update its priority and scheduling. The item list is a full
// replacement: lines absent from the command are removed.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	items        []order.Item
	priority     bool
	scheduledFor *time.Time

	guard guard.ConstructorGuard
}

// NewEditOrderCommand creates a command to edit a pending order.
func NewEditOrderCommand(
	orderID kernel.UUID, items []ItemInput, priority bool, scheduledFor *time.Time,
) (EditOrderCommand, error) {
	cmd := EditOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
	); err != nil {
		return EditOrderCommand{}, err
	}

	cmd.priority = priority
	cmd.scheduledFor = scheduledFor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to edit.
func (c EditOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Items returns the replacement order lines.
func (c EditOrderCommand) Items() []order.Item {
	items := make([]order.Item, len(c.items))
	copy(items, c.items)
	return items
}

// Priority reports the requested priority flag.
func (c EditOrderCommand) Priority() bool {
	return c.priority
}

// ScheduledFor returns the requested fulfillment time, or nil.
func (c EditOrderCommand) ScheduledFor() *time.Time {
	return c.scheduledFor
}

func (c *EditOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *EditOrderCommand) setItems(items []ItemInput) error {
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
