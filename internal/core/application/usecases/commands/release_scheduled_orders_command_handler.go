package commands

import (
	"context"
	"time"
)

// ReleaseScheduledOrdersCommandHandler promotes due scheduled orders to
// priority so they surface at the top of the intake queue. Runs from the
// background job scheduler.
type ReleaseScheduledOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReleaseScheduledOrdersCommandHandler creates a handler for the
// scheduled-order release job.
func NewReleaseScheduledOrdersCommandHandler(uowFactory OrderUoWFactory) ReleaseScheduledOrdersCommandHandler {
	return ReleaseScheduledOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle promotes every due order in one transaction and reports how many
// were promoted.
func (h *ReleaseScheduledOrdersCommandHandler) Handle(
	ctx context.Context, cmd ReleaseScheduledOrdersCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	dueOrders, err := orderRepo.GetDueScheduled(ctx, cmd.Until())
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for _, o := range dueOrders {
		o.MarkPriority(now)
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(dueOrders), nil
}
