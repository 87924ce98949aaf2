package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// EditOrderCommandHandler handles pending-order edits. The replacement lines
// pass the stock gate again before the aggregate is touched; the aggregate
// itself rejects edits on orders past Pending.
type EditOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	stockProvider ports.StockLevelProvider
	stockGate     services.StockGate
}

// NewEditOrderCommandHandler creates a handler for pending-order edits.
func NewEditOrderCommandHandler(
	uowFactory OrderUoWFactory, stockProvider ports.StockLevelProvider,
) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		uowFactory:    uowFactory,
		stockProvider: stockProvider,
		stockGate:     services.NewStockGate(),
	}
}

// Handle processes the edit command.
// Loads the order inside the transaction so the editability check runs
// against current state, not against what the caller last saw.
func (h *EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	items := cmd.Items()
	if err = h.checkStock(ctx, aggregate.WarehouseID(), items); err != nil {
		return err
	}

	if err = aggregate.Edit(items, cmd.Priority(), cmd.ScheduledFor(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *EditOrderCommandHandler) checkStock(
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
