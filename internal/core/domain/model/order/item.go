package order

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is a line item inside an order. The sku, name and unit price are
// snapshots taken when the item was added: catalog changes after that moment
// do not float into existing orders. Insertion order of items is display
// order only and carries no semantics.
type Item struct {
	productID kernel.UUID
	sku       string
	name      string
	unitPrice kernel.Money
	quantity  int

	isConstructed bool
}

// NewItem creates a validated line item.
// Quantity must be at least 1; a quantity of zero means "remove the line"
// and is handled by the caller before items reach the aggregate.
func NewItem(productID kernel.UUID, sku, name string, unitPrice kernel.Money, quantity int) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if sku == "" {
		return Item{}, errs.NewValueIsRequiredError("sku")
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not at least 1", quantity),
		)
	}

	return Item{
		productID:     productID,
		sku:           sku,
		name:          name,
		unitPrice:     unitPrice,
		quantity:      quantity,
		isConstructed: true,
	}, nil
}

// Validate ensures the item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return errs.NewValueIsRequiredError("item must be created via NewItem")
	}
	return nil
}

// ProductID returns the referenced product's identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// SKU returns the product SKU snapshot.
func (i Item) SKU() string {
	return i.sku
}

// Name returns the denormalized product name snapshot.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the unit price snapshot taken at add-time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// LineTotal returns quantity × unit price.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.MulQuantity(i.quantity)
}
