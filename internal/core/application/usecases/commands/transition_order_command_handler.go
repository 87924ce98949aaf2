package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// TransitionOrderCommandHandler handles single-order lifecycle transitions.
//
// The order is re-read inside the transaction, so legality is always decided
// against current state; a request raced by another actor fails with an
// invalid-transition error instead of applying twice.
//
// When the new status is delivery-relevant and the order sits on an active
// trip, the trip's stop mirror is updated in the same transaction so trip
// views never show a stale order status.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
// Requires a cross-aggregate UoWFactory because a transition may touch both
// the order and its trip's stop mirror.
func NewTransitionOrderCommandHandler(uowFactory UoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command atomically.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	now := time.Now()
	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Transition(cmd.Action(), cmd.Role(), cmd.Payload(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if aggregate.Status().IsDeliveryRelevant() {
		if err = h.mirrorOnTrip(ctx, uow, cmd.OrderID(), aggregate.Status(), now); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// mirrorOnTrip copies the order's new status onto its active trip's stop,
// when one exists. Orders transitioned outside any trip are left alone.
func (h *TransitionOrderCommandHandler) mirrorOnTrip(
	ctx context.Context, uow UoW, orderID kernel.UUID, status order.Status, now time.Time,
) error {
	tripRepo := uow.TripRepository()

	activeTrip, err := tripRepo.GetActiveByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if err = activeTrip.UpdateStopStatus(orderID, status, now); err != nil {
		return err
	}

	return tripRepo.Update(ctx, activeTrip)
}
