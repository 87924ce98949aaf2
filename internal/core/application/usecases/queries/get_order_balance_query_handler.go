package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderBalanceQueryHandler reads the order total from the local store and
// the paid amount from the billing system, then reports what remains.
//
// Example:
//
//	handler := NewGetOrderBalanceQueryHandler(db, billingClient)
//	query, _ := NewGetOrderBalanceQuery(orderID)
//
//	balance, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order balance: %v", err)
//	    return err
//	}
type GetOrderBalanceQueryHandler struct {
	db              *gorm.DB
	balanceProvider ports.BalanceProvider
}

// NewGetOrderBalanceQueryHandler creates a handler for order balance queries.
func NewGetOrderBalanceQueryHandler(
	db *gorm.DB,
	balanceProvider ports.BalanceProvider,
) GetOrderBalanceQueryHandler {
	return GetOrderBalanceQueryHandler{db: db, balanceProvider: balanceProvider}
}

// Handle computes the outstanding balance. Returns errs.ObjectNotFoundError
// when the order does not exist.
func (h GetOrderBalanceQueryHandler) Handle(
	ctx context.Context,
	query GetOrderBalanceQuery,
) (GetOrderBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderBalanceQueryResponse{}, err
	}

	var totalCents int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT total FROM orders WHERE id = ?`, query.OrderID().String()).
		Row().
		Scan(&totalCents)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderBalanceQueryResponse{},
				errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderBalanceQueryResponse{}, err
	}

	total, err := kernel.NewMoneyFromCents(totalCents)
	if err != nil {
		return GetOrderBalanceQueryResponse{}, err
	}

	paid, err := h.balanceProvider.GetPaidAmount(ctx, query.OrderID())
	if err != nil {
		return GetOrderBalanceQueryResponse{}, err
	}

	return GetOrderBalanceQueryResponse{
		OrderID:   query.OrderID(),
		Total:     total,
		Paid:      paid,
		Remaining: total.SubFloorZero(paid),
	}, nil
}
