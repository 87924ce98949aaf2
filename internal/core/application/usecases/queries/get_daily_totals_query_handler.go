package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetDailyTotalsQueryHandler computes the per-day order volume report.
//
// Example:
//
//	handler := NewGetDailyTotalsQueryHandler(db)
//	query, _ := NewGetDailyTotalsQuery(weekStart, weekEnd)
//
//	totals, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get daily totals: %v", err)
//	    return err
//	}
type GetDailyTotalsQueryHandler struct {
	db *gorm.DB
}

// NewGetDailyTotalsQueryHandler creates a handler for daily total queries.
// Requires a GORM database connection for query execution.
func NewGetDailyTotalsQueryHandler(db *gorm.DB) GetDailyTotalsQueryHandler {
	return GetDailyTotalsQueryHandler{db: db}
}

// Handle executes the grouped daily report over [from, to).
// Days without orders are omitted from the result.
func (h GetDailyTotalsQueryHandler) Handle(
	ctx context.Context,
	query GetDailyTotalsQuery,
) ([]DailyTotal, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			DATE(created_at) AS day,
			COUNT(*),
			COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= ? AND created_at < ? AND status <> ?
		GROUP BY DATE(created_at)
		ORDER BY day`,
		query.From(), query.To(), int(order.Cancelled),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []DailyTotal
	for rows.Next() {
		var day time.Time
		var count int
		var totalCents int64

		if err = rows.Scan(&day, &count, &totalCents); err != nil {
			return nil, err
		}

		totalValue, err := kernel.NewMoneyFromCents(totalCents)
		if err != nil {
			return nil, err
		}

		totals = append(totals, DailyTotal{
			Day:        day,
			OrderCount: count,
			TotalValue: totalValue,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}
