package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	t.Run("should accept every defined status", func(t *testing.T) {
		for _, s := range allStatuses() {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject unknown and out of range values", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(-1).Validate())
		require.Error(t, order.Status(100).Validate())
	})
}

func TestStatusString(t *testing.T) {
	t.Run("should return readable names", func(t *testing.T) {
		assert.Equal(t, "Pending", order.Pending.String())
		assert.Equal(t, "InTransit", order.InTransit.String())
		assert.Equal(t, "AtStore", order.AtStore.String())
		assert.Equal(t, "Cancelled", order.Cancelled.String())
	})

	t.Run("should return Unknown for invalid values", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatusIsTerminal(t *testing.T) {
	t.Run("should report delivered, returned and cancelled as terminal", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Returned.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
	})

	t.Run("should report earlier statuses as non-terminal", func(t *testing.T) {
		for _, s := range []order.Status{
			order.Pending, order.Confirmed, order.Packed,
			order.Dispatched, order.InTransit, order.AtStore,
		} {
			assert.False(t, s.IsTerminal(), s.String())
		}
	})
}

func TestStatusIsDeliveryRelevant(t *testing.T) {
	t.Run("should cover dispatched through terminal statuses", func(t *testing.T) {
		relevant := []order.Status{
			order.Dispatched, order.InTransit, order.AtStore,
			order.Delivered, order.Returned, order.Cancelled,
		}
		for _, s := range relevant {
			assert.True(t, s.IsDeliveryRelevant(), s.String())
		}

		for _, s := range []order.Status{order.Pending, order.Confirmed, order.Packed} {
			assert.False(t, s.IsDeliveryRelevant(), s.String())
		}
	})
}
