package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/trip"
	"fulfillment/internal/core/domain/services"
)

// CreateTripCommandHandler handles trip creation. It loads the selected
// orders, delegates eligibility and binding to the trip dispatcher, and
// persists the trip and every dispatched order in one transaction.
//
// Trip creation is all-or-nothing: one ineligible order fails the whole
// command and nothing is written.
type CreateTripCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.TripDispatcher
}

// NewCreateTripCommandHandler creates a handler for trip creation.
func NewCreateTripCommandHandler(uowFactory UoWFactory) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewTripDispatcher(),
	}
}

// Handle processes the trip creation command atomically.
func (h *CreateTripCommandHandler) Handle(ctx context.Context, cmd CreateTripCommand) error {
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
	tripRepo := uow.TripRepository()

	orders := make([]*order.Order, 0, len(cmd.OrderIDs()))
	for _, orderID := range cmd.OrderIDs() {
		aggregate, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return err
		}
		orders = append(orders, aggregate)
	}

	activeOrderIDs, err := tripRepo.GetActiveOrderIDs(ctx)
	if err != nil {
		return err
	}

	aggregate, err := trip.NewTrip(trip.NewTripParams{
		ID:              cmd.TripID(),
		WarehouseID:     cmd.WarehouseID(),
		DispatcherID:    cmd.DispatcherID(),
		Vehicle:         cmd.Vehicle(),
		DepartureAt:     cmd.DepartureAt(),
		EstimatedReturn: cmd.EstimatedReturn(),
		Now:             now,
	})
	if err != nil {
		return err
	}

	if err = h.dispatcher.Dispatch(aggregate, orders, activeOrderIDs, cmd.Role(), now); err != nil {
		return err
	}

	if err = tripRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	for _, o := range orders {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
