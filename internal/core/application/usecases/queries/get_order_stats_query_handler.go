package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatsQueryHandler computes the order-count-by-status breakdown
// with a single grouped query.
//
// Example:
//
//	handler := NewGetOrderStatsQueryHandler(db)
//	query, _ := NewGetOrderStatsQuery(nil)
//
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order stats: %v", err)
//	    return err
//	}
type GetOrderStatsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatsQueryHandler creates a handler for order stat queries.
// Requires a GORM database connection for query execution.
func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db}
}

// Handle executes the grouped count query.
// Every defined status appears in the response, zero when absent.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	sql := `
		SELECT
			status,
			COUNT(*)
		FROM orders
	`
	args := make([]any, 0, 1)
	if query.WarehouseID() != nil {
		sql += ` WHERE warehouse_id = ?`
		args = append(args, query.WarehouseID().String())
	}
	sql += ` GROUP BY status`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}
	defer rows.Close()

	response := GetOrderStatsQueryResponse{
		CountByStatus: make(map[order.Status]int),
	}
	for status := order.Pending; status <= order.Cancelled; status++ {
		response.CountByStatus[status] = 0
	}

	for rows.Next() {
		var status int
		var count int

		if err = rows.Scan(&status, &count); err != nil {
			return GetOrderStatsQueryResponse{}, err
		}

		response.CountByStatus[order.Status(status)] = count
		response.Total += count
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	return response, nil
}
