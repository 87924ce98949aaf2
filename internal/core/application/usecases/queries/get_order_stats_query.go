// Package queries contains read-only operations over the fulfillment store.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing aggregates.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// GetOrderStatsQuery retrieves order counts grouped by status, optionally
// narrowed to one warehouse. Backs the pipeline overview board.
//
// Example:
//
//	query, _ := NewGetOrderStatsQuery(nil)
//	handler := NewGetOrderStatsQueryHandler(db)
//
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order stats: %w", err)
//	}
//	fmt.Printf("%d orders awaiting confirmation\n", stats.CountByStatus[order.Pending])
type GetOrderStatsQuery struct { //nolint:recvcheck //using for validation
	warehouseID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a query for the status breakdown.
// A nil warehouseID counts orders across every warehouse.
func NewGetOrderStatsQuery(warehouseID *kernel.UUID) (GetOrderStatsQuery, error) {
	query := GetOrderStatsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if warehouseID != nil {
		if err := warehouseID.Validate(); err != nil {
			return GetOrderStatsQuery{}, err
		}
		query.warehouseID = warehouseID
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// WarehouseID returns the warehouse filter, or nil for all warehouses.
func (q GetOrderStatsQuery) WarehouseID() *kernel.UUID {
	return q.warehouseID
}

// GetOrderStatsQueryResponse is the status breakdown. Statuses with no
// orders are present with a zero count so the board renders every column.
type GetOrderStatsQueryResponse struct {
	CountByStatus map[order.Status]int
	Total         int
}
