package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in integer cents.
// Storing minor units keeps totals exact: line totals, subtotals and the 12%
// tax computation never accumulate floating point drift.
//
// The zero value is a valid zero amount. Negative amounts cannot be
// constructed; subtraction floors at zero, which matches how a remaining
// balance behaves when payments exceed the order total.
//
// Example usage:
//
//	price, _ := kernel.NewMoneyFromCents(10000) // 100.00
//	line := price.MulQuantity(2)                // 200.00
//	total := line.Add(price)                    // 300.00
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money value from an amount in cents.
// Returns an error for negative amounts.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money",
			fmt.Errorf("%d cents is negative", cents),
		)
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// SubFloorZero returns m minus other, floored at zero.
// Used for remaining balances, which never go negative.
func (m Money) SubFloorZero(other Money) Money {
	if other.cents >= m.cents {
		return Money{}
	}
	return Money{cents: m.cents - other.cents}
}

// MulQuantity returns the amount multiplied by a non-negative quantity.
// A negative quantity is clamped to zero; quantity validation belongs to
// the caller.
func (m Money) MulQuantity(quantity int) Money {
	if quantity <= 0 {
		return Money{}
	}
	return Money{cents: m.cents * int64(quantity)}
}

// Percent returns the given percentage of the amount, rounded half up.
// Percent(12) of 250.00 is 30.00.
func (m Money) Percent(percent int64) Money {
	return Money{cents: (m.cents*percent + 50) / 100}
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the amount formatted with two decimal places, e.g. "280.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
