package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, productID kernel.UUID, sku string, quantity int) order.Item {
	t.Helper()
	price, err := kernel.NewMoneyFromCents(1000)
	require.NoError(t, err)
	item, err := order.NewItem(productID, sku, "Test product", price, quantity)
	require.NoError(t, err)
	return item
}

func TestStockGate_Check(t *testing.T) {
	gate := services.NewStockGate()

	t.Run("should pass when every line has enough stock", func(t *testing.T) {
		productID := kernel.NewUUID()
		items := []order.Item{newTestItem(t, productID, "SKU-1", 3)}
		levels := map[kernel.UUID]services.StockLevel{
			productID: {Quantity: 5},
		}

		err := gate.Check(items, levels)

		require.NoError(t, err)
	})

	t.Run("should pass when requested quantity exactly matches availability", func(t *testing.T) {
		productID := kernel.NewUUID()
		items := []order.Item{newTestItem(t, productID, "SKU-1", 5)}
		levels := map[kernel.UUID]services.StockLevel{
			productID: {Quantity: 5},
		}

		err := gate.Check(items, levels)

		require.NoError(t, err)
	})

	t.Run("should fail with out of stock when no record exists for the product", func(t *testing.T) {
		productID := kernel.NewUUID()
		items := []order.Item{newTestItem(t, productID, "SKU-1", 1)}

		err := gate.Check(items, map[kernel.UUID]services.StockLevel{})

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrOutOfStock)

		var outOfStock *services.OutOfStockError
		require.ErrorAs(t, err, &outOfStock)
		assert.Equal(t, "SKU-1", outOfStock.SKU)
		assert.True(t, outOfStock.ProductID.IsEqual(productID))
	})

	t.Run("should fail with out of stock when availability is zero", func(t *testing.T) {
		productID := kernel.NewUUID()
		items := []order.Item{newTestItem(t, productID, "SKU-1", 1)}
		levels := map[kernel.UUID]services.StockLevel{
			productID: {Quantity: 0},
		}

		err := gate.Check(items, levels)

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrOutOfStock)

		var outOfStock *services.OutOfStockError
		require.ErrorAs(t, err, &outOfStock)
		assert.Equal(t, "SKU-1", outOfStock.SKU)
		assert.True(t, outOfStock.ProductID.IsEqual(productID))
	})

	t.Run("should fail with insufficient stock and report availability", func(t *testing.T) {
		productID := kernel.NewUUID()
		items := []order.Item{newTestItem(t, productID, "SKU-1", 10)}
		levels := map[kernel.UUID]services.StockLevel{
			productID: {Quantity: 4},
		}

		err := gate.Check(items, levels)

		require.Error(t, err)
		require.ErrorIs(t, err, services.ErrInsufficientStock)

		var insufficient *services.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 10, insufficient.Requested)
		assert.Equal(t, 4, insufficient.Available)
		assert.Equal(t, "SKU-1", insufficient.SKU)
	})

	t.Run("should stop at the first failing line", func(t *testing.T) {
		product1 := kernel.NewUUID()
		product2 := kernel.NewUUID()
		items := []order.Item{
			newTestItem(t, product1, "SKU-1", 5),
			newTestItem(t, product2, "SKU-2", 5),
		}
		levels := map[kernel.UUID]services.StockLevel{
			product1: {Quantity: 0},
			product2: {Quantity: 1},
		}

		err := gate.Check(items, levels)

		var outOfStock *services.OutOfStockError
		require.ErrorAs(t, err, &outOfStock)
		assert.Equal(t, "SKU-1", outOfStock.SKU)
	})

	t.Run("should pass an empty item list", func(t *testing.T) {
		err := gate.Check(nil, map[kernel.UUID]services.StockLevel{})
		require.NoError(t, err)
	})
}
