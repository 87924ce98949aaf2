package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// Action is a requested order transition. Actions use their wire names so the
// same values travel through the HTTP API, the bulk orchestrator and the
// legality table unchanged.
type Action string

const (
	// ActionConfirm accepts a pending order and binds it to a warehouse.
	ActionConfirm Action = "confirm"

	// ActionPack marks a confirmed order as picked and ready for dispatch.
	ActionPack Action = "pack"

	// ActionDispatch binds a packed order to a delivery trip.
	ActionDispatch Action = "dispatch"

	// ActionStartTransit marks a dispatched order as having left the warehouse.
	ActionStartTransit Action = "in_transit"

	// ActionArriveAtStore marks an in-transit order as arrived at the store.
	ActionArriveAtStore Action = "at_store"

	// ActionDeliver marks an arrived order as delivered.
	ActionDeliver Action = "delivered"

	// ActionReturn marks a dispatched-or-later order as returned.
	// Requires a non-empty reason.
	ActionReturn Action = "returned"

	// ActionCancel cancels any non-terminal order.
	ActionCancel Action = "cancel"
)

// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

// InvalidTransitionError is returned when an action is not legal for the
// order's current status and the actor's role. It carries the attempted
// action and the status at the time of the attempt for diagnostics.
type InvalidTransitionError struct {
	Action Action
	Status Status
	Role   kernel.Role
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: action %q is not allowed for status %s and role %s",
		ErrInvalidTransition, string(e.Action), e.Status, e.Role)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// transitionRule describes one row of the legality table: the statuses an
// action may be applied from, the resulting status, the roles allowed to
// request it, and whether the payload must carry a reason.
type transitionRule struct {
	from           map[Status]bool
	next           Status
	roles          map[kernel.Role]bool
	requiresReason bool
}

var (
	intakeRoles   = map[kernel.Role]bool{kernel.RoleAdmin: true, kernel.RoleDistributorAdmin: true}
	deliveryRoles = map[kernel.Role]bool{kernel.RoleAdmin: true, kernel.RoleDispatcher: true}
	cancelRoles   = map[kernel.Role]bool{
		kernel.RoleAdmin:            true,
		kernel.RoleDistributorAdmin: true,
		kernel.RoleDispatcher:       true,
	}
)

// getTransitionRules returns the full legality table. Legality of a
// transition is a pure function of (status, action, role); there are no
// conditionals outside this table, so it can be tested exhaustively.
func getTransitionRules() map[Action]transitionRule {
	return map[Action]transitionRule{
		ActionConfirm: {
			from:  map[Status]bool{Pending: true},
			next:  Confirmed,
			roles: intakeRoles,
		},
		ActionPack: {
			from:  map[Status]bool{Confirmed: true},
			next:  Packed,
			roles: intakeRoles,
		},
		ActionDispatch: {
			from:  map[Status]bool{Packed: true},
			next:  Dispatched,
			roles: deliveryRoles,
		},
		ActionStartTransit: {
			from:  map[Status]bool{Dispatched: true},
			next:  InTransit,
			roles: deliveryRoles,
		},
		ActionArriveAtStore: {
			from:  map[Status]bool{InTransit: true},
			next:  AtStore,
			roles: deliveryRoles,
		},
		ActionDeliver: {
			from:  map[Status]bool{AtStore: true},
			next:  Delivered,
			roles: deliveryRoles,
		},
		ActionReturn: {
			from:           map[Status]bool{InTransit: true, AtStore: true, Delivered: true},
			next:           Returned,
			roles:          deliveryRoles,
			requiresReason: true,
		},
		ActionCancel: {
			from: map[Status]bool{
				Pending:    true,
				Confirmed:  true,
				Packed:     true,
				Dispatched: true,
				InTransit:  true,
				AtStore:    true,
			},
			next:  Cancelled,
			roles: cancelRoles,
		},
	}
}

// ActionFromString parses a wire action name. Unknown names return an error
// so malformed requests fail before any state is read.
func ActionFromString(s string) (Action, error) {
	action := Action(s)
	if _, ok := getTransitionRules()[action]; !ok {
		return "", fmt.Errorf("%q is not a known order action", s)
	}
	return action, nil
}

// Next resolves the legality table for (status, action, role).
// Returns the resulting status on a legal transition, or an
// InvalidTransitionError describing the rejected attempt.
func Next(current Status, action Action, role kernel.Role) (Status, error) {
	rule, ok := getTransitionRules()[action]
	if !ok || !rule.from[current] || !rule.roles[role] {
		return Unknown, &InvalidTransitionError{Action: action, Status: current, Role: role}
	}
	return rule.next, nil
}

// RequiresReason reports whether the action's payload must carry a
// non-empty reason.
func (a Action) RequiresReason() bool {
	return getTransitionRules()[a].requiresReason
}
