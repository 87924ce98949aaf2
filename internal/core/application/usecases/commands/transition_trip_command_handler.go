package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/trip"
)

// TransitionTripCommandHandler handles trip lifecycle transitions.
//
// Completion refreshes every stop's mirrored order status from the order
// store before asking the aggregate, so a stale mirror never lets a trip
// complete with undelivered orders. Cancellation runs the revert cascade:
// every order still in a pre-delivery state goes back to Packed in the same
// transaction that voids its stop.
type TransitionTripCommandHandler struct {
	uowFactory UoWFactory
}

// NewTransitionTripCommandHandler creates a handler for trip transitions.
func NewTransitionTripCommandHandler(uowFactory UoWFactory) TransitionTripCommandHandler {
	return TransitionTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command atomically.
func (h *TransitionTripCommandHandler) Handle(ctx context.Context, cmd TransitionTripCommand) error {
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
	tripRepo := uow.TripRepository()

	aggregate, err := tripRepo.Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	switch cmd.Action() {
	case trip.ActionStart:
		err = aggregate.Start(cmd.Role(), now)
	case trip.ActionMarkInProgress:
		err = aggregate.MarkInProgress(cmd.Role(), now)
	case trip.ActionComplete:
		err = h.complete(ctx, uow, aggregate, cmd, now)
	case trip.ActionCancel:
		err = h.cancel(ctx, uow, aggregate, cmd, now)
	default:
		err = fmt.Errorf("%q is not a known trip action", cmd.Action())
	}
	if err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// complete refreshes the stop mirrors from current order state, then applies
// the completion transition.
func (h *TransitionTripCommandHandler) complete(
	ctx context.Context, uow UoW, aggregate *trip.Trip, cmd TransitionTripCommand, now time.Time,
) error {
	orderRepo := uow.OrderRepository()

	for _, stop := range aggregate.Assignments() {
		if stop.IsVoid() {
			continue
		}
		o, err := orderRepo.Get(ctx, stop.OrderID())
		if err != nil {
			return err
		}
		if o.Status() == stop.Status() {
			continue
		}
		if err = aggregate.UpdateStopStatus(stop.OrderID(), o.Status(), now); err != nil {
			return err
		}
	}

	return aggregate.Complete(cmd.Role(), now)
}

// cancel applies the cancellation and reverts every voided stop's order back
// to Packed so it returns to the pickable pool.
func (h *TransitionTripCommandHandler) cancel(
	ctx context.Context, uow UoW, aggregate *trip.Trip, cmd TransitionTripCommand, now time.Time,
) error {
	revertOrderIDs, err := aggregate.Cancel(cmd.Role(), now)
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	for _, orderID := range revertOrderIDs {
		o, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return err
		}
		if err = o.RevertToPacked(now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	return nil
}
