package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/trip"
)

// TripRepository defines the persistence contract for trip aggregates.
// Provides methods for storing, retrieving, and querying trip entities
// with their complete state including stop assignments.
type TripRepository interface {
	// Add persists a new trip aggregate to storage.
	// The trip must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *trip.Trip) error

	// Update persists changes to an existing trip aggregate using the same
	// version-checked write as OrderRepository.Update. A version mismatch
	// fails with errs.StaleStateError.
	Update(ctx context.Context, aggregate *trip.Trip) error

	// Get retrieves a trip aggregate by its unique identifier.
	// Returns the complete trip with all stops in delivery sequence.
	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)

	// GetActiveOrderIDs retrieves the ids of every order bound through a
	// non-void assignment to a trip in a non-terminal status. Used by the
	// dispatch coordinator to reject double-binding.
	GetActiveOrderIDs(ctx context.Context) (map[kernel.UUID]bool, error)

	// GetActiveByOrderID retrieves the non-terminal trip holding a non-void
	// assignment for the given order, or errs.ErrObjectNotFound when the
	// order is not on any active trip.
	GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*trip.Trip, error)
}
