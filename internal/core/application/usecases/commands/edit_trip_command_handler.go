package commands

import (
	"context"
	"time"
)

// EditTripCommandHandler handles trip metadata edits.
// The aggregate rejects edits on completed or cancelled trips.
type EditTripCommandHandler struct {
	uowFactory TripUoWFactory
}

// NewEditTripCommandHandler creates a handler for trip metadata edits.
func NewEditTripCommandHandler(uowFactory TripUoWFactory) EditTripCommandHandler {
	return EditTripCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the edit command.
func (h *EditTripCommandHandler) Handle(ctx context.Context, cmd EditTripCommand) error {
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

	tripRepo := uow.TripRepository()
	aggregate, err := tripRepo.Get(ctx, cmd.TripID())
	if err != nil {
		return err
	}

	err = aggregate.EditDetails(
		cmd.DispatcherID(), cmd.Vehicle(), cmd.DepartureAt(), cmd.EstimatedReturn(), time.Now(),
	)
	if err != nil {
		return err
	}

	if err = tripRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
