package trip

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery trip.
//
// State transitions:
//
//	Created ─> Assigned ─> Started ─> InProgress ─> Completed
//
//	any non-terminal state ──> Cancelled
//
// Each forward transition is single-step only: the legal next state is a
// function of the current state alone. Completed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status of a freshly constructed trip.
	// Trips move to Assigned immediately, since a dispatcher is always
	// supplied at creation time.
	Created

	// Assigned indicates the trip has a dispatcher and bound orders.
	Assigned

	// Started indicates the trip has departed the warehouse.
	Started

	// InProgress indicates deliveries are underway.
	InProgress

	// Completed indicates every stop reached a terminal outcome. Terminal.
	Completed

	// Cancelled indicates the trip was abandoned. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Created:    "Created",
		Assigned:   "Assigned",
		Started:    "Started",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:    "Created",
		Assigned:   "Assigned",
		Started:    "Started",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined trip states.
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

// IsTerminal reports whether no further transition is defined from this status.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}
