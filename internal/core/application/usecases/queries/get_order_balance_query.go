package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderBalanceQueryIsNotConstructed = errors.New(
	"GetOrderBalanceQuery must be created via NewGetOrderBalanceQuery constructor",
)

// GetOrderBalanceQuery retrieves the outstanding balance for one order by
// combining its invoiced total with payments recorded in the billing system.
type GetOrderBalanceQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderBalanceQuery creates a balance query for the given order.
func NewGetOrderBalanceQuery(orderID kernel.UUID) (GetOrderBalanceQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderBalanceQuery{}, err
	}

	return GetOrderBalanceQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBalanceQueryIsNotConstructed)
}

// OrderID returns the order being queried.
func (q GetOrderBalanceQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderBalanceQueryResponse reports how much of the order remains unpaid.
// Overpayments clamp Remaining to zero rather than going negative.
type GetOrderBalanceQueryResponse struct {
	OrderID   kernel.UUID
	Total     kernel.Money
	Paid      kernel.Money
	Remaining kernel.Money
}
