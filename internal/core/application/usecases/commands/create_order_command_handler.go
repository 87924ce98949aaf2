package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order submission.
// Checks the requested lines against inventory through the stock gate, then
// creates the order in Pending status.
//
// The stock check is advisory: it happens before the transaction and does not
// reserve anything, so two concurrent submissions can both pass.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, stockProvider)
//	cmd, _ := NewCreateOrderCommand(orderID, storeID, warehouseID, nil, items, false, nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	stockProvider ports.StockLevelProvider
	stockGate     services.StockGate
}

// NewCreateOrderCommandHandler creates a handler for order submission.
// Requires an OrderUoWFactory for transactional persistence and a
// StockLevelProvider for the inventory check.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory, stockProvider ports.StockLevelProvider,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		stockProvider: stockProvider,
		stockGate:     services.NewStockGate(),
	}
}

// Handle processes the order submission command.
// Fails with the stock gate's error when a line cannot be fulfilled;
// otherwise persists the new Pending order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := cmd.Items()
	if err := h.checkStock(ctx, cmd.WarehouseID(), items); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(order.NewOrderParams{
		ID:           cmd.OrderID(),
		StoreID:      cmd.StoreID(),
		WarehouseID:  cmd.WarehouseID(),
		AgentID:      cmd.AgentID(),
		Items:        items,
		Priority:     cmd.Priority(),
		ScheduledFor: cmd.ScheduledFor(),
		Now:          time.Now(),
	})
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CreateOrderCommandHandler) checkStock(
	ctx context.Context, warehouseID kernel.UUID, items []order.Item,
) error {
	productIDs := make([]kernel.UUID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID())
	}

	levels, err := h.stockProvider.GetStockLevels(ctx, warehouseID, productIDs)
	if err != nil {
		return err
	}

	return h.stockGate.Check(items, levels)
}
