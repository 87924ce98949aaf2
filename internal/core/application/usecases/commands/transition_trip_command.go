package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/trip"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionTripCommandIsNotConstructed = errors.New(
	"TransitionTripCommand must be created via NewTransitionTripCommand constructor",
)

// TransitionTripCommand represents a request to move a trip through its
// lifecycle on behalf of an actor.
type TransitionTripCommand struct { //nolint:recvcheck //using for validation
	tripID kernel.UUID
	action trip.Action
	role   kernel.Role

	guard guard.ConstructorGuard
}

// NewTransitionTripCommand creates a command to transition a trip.
// Parses the action name, so unknown actions fail before any state is read.
func NewTransitionTripCommand(
	tripID kernel.UUID, actionName string, role kernel.Role,
) (TransitionTripCommand, error) {
	cmd := TransitionTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setAction(actionName),
		cmd.setRole(role),
	); err != nil {
		return TransitionTripCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionTripCommand) Validate() error {
	return c.guard.Validate(ErrTransitionTripCommandIsNotConstructed)
}

// TripID returns the identifier of the trip to transition.
func (c TransitionTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// Action returns the parsed action.
func (c TransitionTripCommand) Action() trip.Action {
	return c.action
}

// Role returns the acting role.
func (c TransitionTripCommand) Role() kernel.Role {
	return c.role
}

func (c *TransitionTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	c.tripID = tripID
	return nil
}

func (c *TransitionTripCommand) setAction(actionName string) error {
	action, err := trip.ActionFromString(actionName)
	if err != nil {
		return err
	}
	c.action = action
	return nil
}

func (c *TransitionTripCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
