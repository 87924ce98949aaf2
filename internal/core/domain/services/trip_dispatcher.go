package services

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/trip"
)

// ErrOrdersNotEligible is the sentinel wrapped by OrdersNotEligibleError.
var ErrOrdersNotEligible = errors.New("orders are not eligible for dispatch")

// OrdersNotEligibleError is returned when trip creation is attempted over a
// selection containing ineligible orders. It lists every offending order so
// the caller can fix the whole selection at once; no partial trip is built.
type OrdersNotEligibleError struct {
	OrderIDs []kernel.UUID
}

func (e *OrdersNotEligibleError) Error() string {
	return fmt.Sprintf("%s: %d of the selected orders are not Packed at the trip's warehouse or are already on an active trip",
		ErrOrdersNotEligible, len(e.OrderIDs))
}

func (e *OrdersNotEligibleError) Unwrap() error {
	return ErrOrdersNotEligible
}

// TripDispatcher is a domain service responsible for binding a selection of
// orders to a new trip and moving them into the delivery pipeline.
//
// Key responsibilities:
//   - Validating order eligibility before any binding happens
//   - Sequencing stops in the caller's selection order
//   - Transitioning every bound order to Dispatched
//
// Business rules:
//   - Eligibility is all-or-nothing: one bad order rejects the whole selection
//   - An order is eligible when it is Packed, belongs to the trip's warehouse
//     and is not already bound to an active trip
//   - Stop sequence numbers follow the selection order, starting at 1
//
// Example usage:
//
//	dispatcher := services.NewTripDispatcher()
//	t, _ := trip.NewTrip(params)
//
//	err := dispatcher.Dispatch(t, orders, activeOrderIDs, role, time.Now())
//	if errors.Is(err, services.ErrOrdersNotEligible) {
//	    // Selection contains unpickable orders; nothing was bound
//	    return
//	}
type TripDispatcher struct{}

// NewTripDispatcher creates a new TripDispatcher instance.
func NewTripDispatcher() TripDispatcher {
	return TripDispatcher{}
}

// Dispatch binds the selected orders to the trip and marks them Dispatched.
//
// Parameters:
//   - t: The freshly created trip (must be valid and without stops)
//   - orders: The selected orders, in the sequence they should be delivered
//   - activeOrderIDs: Order ids currently bound to any non-terminal trip
//   - role: The acting role, checked against the order transition table
//   - now: Timestamp applied to all mutations
//
// Returns:
//   - error: OrdersNotEligibleError listing every ineligible order, a
//     transition error from the order state machine, or nil
//
// Eligibility is checked for the entire selection before any order is
// mutated, so a failed dispatch leaves orders and trip untouched.
func (d TripDispatcher) Dispatch(
	t *trip.Trip,
	orders []*order.Order,
	activeOrderIDs map[kernel.UUID]bool,
	role kernel.Role,
	now time.Time,
) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if len(orders) == 0 {
		return &OrdersNotEligibleError{}
	}

	var ineligible []kernel.UUID
	seen := make(map[kernel.UUID]bool, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if !d.isEligible(t, o, activeOrderIDs) || seen[o.ID()] {
			ineligible = append(ineligible, o.ID())
		}
		seen[o.ID()] = true
	}
	if len(ineligible) > 0 {
		return &OrdersNotEligibleError{OrderIDs: ineligible}
	}

	for _, o := range orders {
		if err := t.AddStop(o.ID(), o.Total()); err != nil {
			return err
		}
		if err := o.Transition(order.ActionDispatch, role, order.TransitionPayload{}, now); err != nil {
			return err
		}
	}

	return t.Assign(now)
}

// isEligible reports whether a single order can join the trip: it must be
// Packed, fulfilled by the trip's warehouse and not already on an active trip.
func (d TripDispatcher) isEligible(t *trip.Trip, o *order.Order, activeOrderIDs map[kernel.UUID]bool) bool {
	if o.Status() != order.Packed {
		return false
	}
	if !o.WarehouseID().IsEqual(t.WarehouseID()) {
		return false
	}
	return !activeOrderIDs[o.ID()]
}
