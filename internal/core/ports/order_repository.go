// Package ports defines repository and provider interfaces for the
// fulfillment domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their complete state including line items.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using an
	// optimistic concurrency check: the write succeeds only when the stored
	// version still matches the aggregate's version at load time. A version
	// mismatch fails with errs.StaleStateError and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its items and current status.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status,
	// optionally narrowed to one warehouse. A nil warehouseID means all
	// warehouses. Used to list Packed orders for trip building.
	GetAllInStatus(ctx context.Context, status order.Status, warehouseID *kernel.UUID) ([]*order.Order, error)

	// GetDueScheduled retrieves non-priority Pending orders whose scheduled
	// fulfillment time is at or before the given moment. Used by the
	// background job that promotes due scheduled orders.
	GetDueScheduled(ctx context.Context, until time.Time) ([]*order.Order, error)
}
