package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending, order.Confirmed, order.Packed, order.Dispatched,
		order.InTransit, order.AtStore, order.Delivered, order.Returned, order.Cancelled,
	}
}

func allActions() []order.Action {
	return []order.Action{
		order.ActionConfirm, order.ActionPack, order.ActionDispatch,
		order.ActionStartTransit, order.ActionArriveAtStore, order.ActionDeliver,
		order.ActionReturn, order.ActionCancel,
	}
}

func allRoles() []kernel.Role {
	return []kernel.Role{
		kernel.RoleAdmin, kernel.RoleDistributorAdmin, kernel.RoleDispatcher, kernel.RoleAgent,
	}
}

func TestNext(t *testing.T) {
	t.Run("should resolve the happy path for admin", func(t *testing.T) {
		steps := []struct {
			from   order.Status
			action order.Action
			next   order.Status
		}{
			{order.Pending, order.ActionConfirm, order.Confirmed},
			{order.Confirmed, order.ActionPack, order.Packed},
			{order.Packed, order.ActionDispatch, order.Dispatched},
			{order.Dispatched, order.ActionStartTransit, order.InTransit},
			{order.InTransit, order.ActionArriveAtStore, order.AtStore},
			{order.AtStore, order.ActionDeliver, order.Delivered},
		}

		for _, step := range steps {
			next, err := order.Next(step.from, step.action, kernel.RoleAdmin)
			require.NoError(t, err, "%s from %s", step.action, step.from)
			assert.Equal(t, step.next, next)
		}
	})

	t.Run("should allow return from in transit, at store and delivered", func(t *testing.T) {
		for _, from := range []order.Status{order.InTransit, order.AtStore, order.Delivered} {
			next, err := order.Next(from, order.ActionReturn, kernel.RoleDispatcher)
			require.NoError(t, err, "return from %s", from)
			assert.Equal(t, order.Returned, next)
		}
	})

	t.Run("should not allow return from dispatched", func(t *testing.T) {
		_, err := order.Next(order.Dispatched, order.ActionReturn, kernel.RoleDispatcher)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should allow cancel from every non-terminal status", func(t *testing.T) {
		nonTerminal := []order.Status{
			order.Pending, order.Confirmed, order.Packed,
			order.Dispatched, order.InTransit, order.AtStore,
		}
		for _, from := range nonTerminal {
			next, err := order.Next(from, order.ActionCancel, kernel.RoleAdmin)
			require.NoError(t, err, "cancel from %s", from)
			assert.Equal(t, order.Cancelled, next)
		}
	})

	t.Run("should reject cancel from terminal statuses", func(t *testing.T) {
		for _, from := range []order.Status{order.Delivered, order.Returned, order.Cancelled} {
			_, err := order.Next(from, order.ActionCancel, kernel.RoleAdmin)
			require.ErrorIs(t, err, order.ErrInvalidTransition, "cancel from %s", from)
		}
	})

	t.Run("should never allow any action from a terminal status except none", func(t *testing.T) {
		for _, from := range []order.Status{order.Delivered, order.Returned, order.Cancelled} {
			for _, action := range allActions() {
				if from == order.Delivered && action == order.ActionReturn {
					continue // the one legal move out of Delivered
				}
				for _, role := range allRoles() {
					_, err := order.Next(from, action, role)
					require.ErrorIs(t, err, order.ErrInvalidTransition,
						"%s from %s as %s", action, from, role)
				}
			}
		}
	})

	t.Run("should gate intake actions to admin and distributor admin", func(t *testing.T) {
		_, err := order.Next(order.Pending, order.ActionConfirm, kernel.RoleDistributorAdmin)
		require.NoError(t, err)
		_, err = order.Next(order.Confirmed, order.ActionPack, kernel.RoleDistributorAdmin)
		require.NoError(t, err)

		_, err = order.Next(order.Pending, order.ActionConfirm, kernel.RoleDispatcher)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		_, err = order.Next(order.Confirmed, order.ActionPack, kernel.RoleAgent)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should gate delivery actions to admin and dispatcher", func(t *testing.T) {
		deliverySteps := []struct {
			from   order.Status
			action order.Action
		}{
			{order.Packed, order.ActionDispatch},
			{order.Dispatched, order.ActionStartTransit},
			{order.InTransit, order.ActionArriveAtStore},
			{order.AtStore, order.ActionDeliver},
			{order.AtStore, order.ActionReturn},
		}
		for _, step := range deliverySteps {
			_, err := order.Next(step.from, step.action, kernel.RoleDispatcher)
			require.NoError(t, err, "%s as dispatcher", step.action)

			_, err = order.Next(step.from, step.action, kernel.RoleDistributorAdmin)
			require.ErrorIs(t, err, order.ErrInvalidTransition, "%s as distributor admin", step.action)
		}
	})

	t.Run("should reject every action for agent role", func(t *testing.T) {
		for _, from := range allStatuses() {
			for _, action := range allActions() {
				_, err := order.Next(from, action, kernel.RoleAgent)
				require.ErrorIs(t, err, order.ErrInvalidTransition)
			}
		}
	})

	t.Run("should reject skipping a step", func(t *testing.T) {
		_, err := order.Next(order.Pending, order.ActionPack, kernel.RoleAdmin)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		_, err = order.Next(order.Confirmed, order.ActionDispatch, kernel.RoleAdmin)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		_, err = order.Next(order.Pending, order.ActionDeliver, kernel.RoleAdmin)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject re-applying the transition that produced the current status", func(t *testing.T) {
		_, err := order.Next(order.Confirmed, order.ActionConfirm, kernel.RoleAdmin)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		_, err = order.Next(order.Delivered, order.ActionDeliver, kernel.RoleAdmin)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should describe the rejected attempt in the error", func(t *testing.T) {
		_, err := order.Next(order.Pending, order.ActionDeliver, kernel.RoleAgent)
		require.Error(t, err)

		var invalid *order.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, order.ActionDeliver, invalid.Action)
		assert.Equal(t, order.Pending, invalid.Status)
		assert.Equal(t, kernel.RoleAgent, invalid.Role)
	})
}

func TestActionFromString(t *testing.T) {
	t.Run("should parse every wire action name", func(t *testing.T) {
		names := []string{
			"confirm", "pack", "dispatch", "in_transit",
			"at_store", "delivered", "returned", "cancel",
		}
		for _, name := range names {
			action, err := order.ActionFromString(name)
			require.NoError(t, err, name)
			assert.Equal(t, order.Action(name), action)
		}
	})

	t.Run("should reject unknown action names", func(t *testing.T) {
		for _, name := range []string{"", "ship", "CONFIRM", "deliver"} {
			_, err := order.ActionFromString(name)
			require.Error(t, err, "%q should not parse", name)
		}
	})
}

func TestActionRequiresReason(t *testing.T) {
	t.Run("should require a reason only for returns", func(t *testing.T) {
		assert.True(t, order.ActionReturn.RequiresReason())

		for _, action := range allActions() {
			if action == order.ActionReturn {
				continue
			}
			assert.False(t, action.RequiresReason(), "%s should not require a reason", action)
		}
	})
}
