package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDailyTotalsQueryIsNotConstructed = errors.New(
	"GetDailyTotalsQuery must be created via NewGetDailyTotalsQuery constructor",
)

// GetDailyTotalsQuery retrieves per-day order counts and value over a date
// range. Cancelled orders are excluded; the report tracks demand, not churn.
type GetDailyTotalsQuery struct { //nolint:recvcheck //using for validation
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewGetDailyTotalsQuery creates a query over the half-open range [from, to).
func NewGetDailyTotalsQuery(from, to time.Time) (GetDailyTotalsQuery, error) {
	if from.IsZero() || to.IsZero() {
		return GetDailyTotalsQuery{}, errs.NewValueIsRequiredError("date range")
	}
	if !to.After(from) {
		return GetDailyTotalsQuery{}, errs.NewValueIsInvalidError("date range")
	}

	return GetDailyTotalsQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDailyTotalsQuery) Validate() error {
	return q.guard.Validate(ErrGetDailyTotalsQueryIsNotConstructed)
}

// From returns the inclusive start of the range.
func (q GetDailyTotalsQuery) From() time.Time {
	return q.from
}

// To returns the exclusive end of the range.
func (q GetDailyTotalsQuery) To() time.Time {
	return q.to
}

// DailyTotal is one day's order volume.
type DailyTotal struct {
	Day        time.Time
	OrderCount int
	TotalValue kernel.Money
}
