package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the fulfillment workflow.
//
// State transitions:
//
//	Pending ─> Confirmed ─> Packed ─> Dispatched ─> InTransit ─> AtStore ─> Delivered
//	                                                    │            │          │
//	                                                    └────────────┴──────────┴──> Returned
//
//	any non-terminal state ──> Cancelled
//
// Delivered, Returned and Cancelled are terminal: no further forward
// transition is defined from them. Transition legality also depends on the
// requested action and the actor role; see the transition table in action.go.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after order composition.
	// Items may still be edited while the order is Pending.
	Pending

	// Confirmed indicates the order was accepted and bound to a warehouse.
	Confirmed

	// Packed indicates the order is picked and ready for trip assignment.
	Packed

	// Dispatched indicates the order is bound to a delivery trip.
	Dispatched

	// InTransit indicates the order left the warehouse.
	InTransit

	// AtStore indicates the order arrived at the destination store.
	AtStore

	// Delivered indicates successful delivery. Terminal.
	Delivered

	// Returned indicates the order came back after dispatch. Terminal.
	Returned

	// Cancelled indicates the order was cancelled before delivery. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Packed:     "Packed",
		Dispatched: "Dispatched",
		InTransit:  "InTransit",
		AtStore:    "AtStore",
		Delivered:  "Delivered",
		Returned:   "Returned",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Packed:     "Packed",
		Dispatched: "Dispatched",
		InTransit:  "InTransit",
		AtStore:    "AtStore",
		Delivered:  "Delivered",
		Returned:   "Returned",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined order states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", int(s)),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further forward transition is defined
// from this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Cancelled
}

// IsDeliveryRelevant reports whether this status is mirrored onto a trip
// assignment. Only statuses an order can hold while bound to a trip qualify.
func (s Status) IsDeliveryRelevant() bool {
	switch s {
	case Dispatched, InTransit, AtStore, Delivered, Returned, Cancelled:
		return true
	default:
		return false
	}
}
