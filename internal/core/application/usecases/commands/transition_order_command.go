package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move an order through its
// lifecycle on behalf of an actor. The action name and payload arrive
// verbatim from the wire; legality is decided by the aggregate.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, "cancel", kernel.RoleAdmin,
//	    order.TransitionPayload{Reason: "store closed"})
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  order.Action
	role    kernel.Role
	payload order.TransitionPayload

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order.
// Parses the action name and validates the acting role, so unknown actions
// fail before any state is read.
func NewTransitionOrderCommand(
	orderID kernel.UUID, actionName string, role kernel.Role, payload order.TransitionPayload,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard:   guard.NewConstructorGuard(),
		payload: payload,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(actionName),
		cmd.setRole(role),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the parsed action.
func (c TransitionOrderCommand) Action() order.Action {
	return c.action
}

// Role returns the acting role.
func (c TransitionOrderCommand) Role() kernel.Role {
	return c.role
}

// Payload returns the action-specific inputs.
func (c TransitionOrderCommand) Payload() order.TransitionPayload {
	return c.payload
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setAction(actionName string) error {
	action, err := order.ActionFromString(actionName)
	if err != nil {
		return err
	}
	c.action = action
	return nil
}

func (c *TransitionOrderCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
