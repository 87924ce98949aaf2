package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromCents(t *testing.T) {
	t.Run("should create money from cents", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(2500)

		require.NoError(t, err)
		assert.Equal(t, int64(2500), m.Cents())
		assert.False(t, m.IsZero())
	})

	t.Run("should create zero money", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(0)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoneyFromCents(-1)

		require.Error(t, err)
	})

	t.Run("should treat zero value as zero amount", func(t *testing.T) {
		var m kernel.Money
		assert.True(t, m.IsZero())
		assert.Equal(t, int64(0), m.Cents())
	})
}

func TestMoneyArithmetic(t *testing.T) {
	money := func(cents int64) kernel.Money {
		m, err := kernel.NewMoneyFromCents(cents)
		require.NoError(t, err)
		return m
	}

	t.Run("should add amounts", func(t *testing.T) {
		assert.Equal(t, int64(3500), money(2500).Add(money(1000)).Cents())
	})

	t.Run("should subtract with floor at zero", func(t *testing.T) {
		assert.Equal(t, int64(1500), money(2500).SubFloorZero(money(1000)).Cents())
		assert.True(t, money(1000).SubFloorZero(money(2500)).IsZero())
		assert.True(t, money(1000).SubFloorZero(money(1000)).IsZero())
	})

	t.Run("should multiply by quantity", func(t *testing.T) {
		assert.Equal(t, int64(7500), money(2500).MulQuantity(3).Cents())
		assert.True(t, money(2500).MulQuantity(0).IsZero())
		assert.True(t, money(2500).MulQuantity(-2).IsZero())
	})

	t.Run("should compute percent rounded half up", func(t *testing.T) {
		// 12% of 250.00 is exactly 30.00
		assert.Equal(t, int64(3000), money(25000).Percent(12).Cents())
		// 12% of 1.05 is 0.126, rounds up to 0.13
		assert.Equal(t, int64(13), money(105).Percent(12).Cents())
		// 12% of 1.04 is 0.1248, rounds down to 0.12
		assert.Equal(t, int64(12), money(104).Percent(12).Cents())
	})

	t.Run("should compare amounts", func(t *testing.T) {
		assert.True(t, money(100).IsEqual(money(100)))
		assert.False(t, money(100).IsEqual(money(101)))
	})
}

func TestMoneyString(t *testing.T) {
	t.Run("should format with two decimal places", func(t *testing.T) {
		m, _ := kernel.NewMoneyFromCents(28000)
		assert.Equal(t, "280.00", m.String())

		m, _ = kernel.NewMoneyFromCents(105)
		assert.Equal(t, "1.05", m.String())

		m, _ = kernel.NewMoneyFromCents(7)
		assert.Equal(t, "0.07", m.String())
	})
}
