package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var (
	// ErrOutOfStock is the sentinel wrapped by OutOfStockError.
	ErrOutOfStock = errors.New("product is out of stock")

	// ErrInsufficientStock is the sentinel wrapped by InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
)

// OutOfStockError is returned when a product has zero units available at the
// fulfilling warehouse.
type OutOfStockError struct {
	ProductID kernel.UUID
	SKU       string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOutOfStock, e.SKU)
}

func (e *OutOfStockError) Unwrap() error {
	return ErrOutOfStock
}

// InsufficientStockError is returned when a product has some units available
// but fewer than the requested quantity. Available is surfaced so the caller
// can offer to reduce the line.
type InsufficientStockError struct {
	ProductID kernel.UUID
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: %s requested %d, available %d",
		ErrInsufficientStock, e.SKU, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// StockLevel is one product's availability at a warehouse as reported by the
// inventory system.
type StockLevel struct {
	Quantity int
}

// StockGate is a domain service that decides whether an order's lines can be
// fulfilled from known stock levels. It is advisory: passing the gate does
// not reserve stock, so concurrent submissions may still oversell.
//
// Business rules:
//   - No stock record or zero availability fails with OutOfStockError
//   - Partial availability fails with InsufficientStockError
//   - The first failing line stops the check
type StockGate struct{}

// NewStockGate creates a new StockGate instance.
func NewStockGate() StockGate {
	return StockGate{}
}

// Check validates every line of the item list against the provided levels,
// keyed by product id. A product missing from levels has no stock record at
// the warehouse and fails the same way as zero availability.
func (g StockGate) Check(items []order.Item, levels map[kernel.UUID]StockLevel) error {
	for _, item := range items {
		level, ok := levels[item.ProductID()]
		if !ok || level.Quantity <= 0 {
			return &OutOfStockError{ProductID: item.ProductID(), SKU: item.SKU()}
		}
		if level.Quantity < item.Quantity() {
			return &InsufficientStockError{
				ProductID: item.ProductID(),
				SKU:       item.SKU(),
				Requested: item.Quantity(),
				Available: level.Quantity,
			}
		}
	}
	return nil
}
