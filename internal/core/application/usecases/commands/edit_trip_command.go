package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrEditTripCommandIsNotConstructed = errors.New(
	"EditTripCommand must be created via NewEditTripCommand constructor",
)

// EditTripCommand represents a request to update a trip's metadata:
// dispatcher, vehicle and schedule. Nil fields leave the stored value
// unchanged. Stop bindings are not editable; cancel and re-create instead.
type EditTripCommand struct { //nolint:recvcheck //using for validation
	tripID          kernel.UUID
	dispatcherID    *kernel.UUID
	vehicle         *string
	departureAt     *time.Time
	estimatedReturn *time.Time

	guard guard.ConstructorGuard
}

// NewEditTripCommand creates a command to edit trip metadata.
func NewEditTripCommand(
	tripID kernel.UUID,
	dispatcherID *kernel.UUID,
	vehicle *string,
	departureAt, estimatedReturn *time.Time,
) (EditTripCommand, error) {
	cmd := EditTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setDispatcherID(dispatcherID),
	); err != nil {
		return EditTripCommand{}, err
	}

	cmd.vehicle = vehicle
	cmd.departureAt = departureAt
	cmd.estimatedReturn = estimatedReturn
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditTripCommand) Validate() error {
	return c.guard.Validate(ErrEditTripCommandIsNotConstructed)
}

// TripID returns the identifier of the trip to edit.
func (c EditTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// DispatcherID returns the replacement dispatcher, or nil to keep the current one.
func (c EditTripCommand) DispatcherID() *kernel.UUID {
	return c.dispatcherID
}

// Vehicle returns the replacement vehicle label, or nil.
func (c EditTripCommand) Vehicle() *string {
	return c.vehicle
}

// DepartureAt returns the replacement departure time, or nil.
func (c EditTripCommand) DepartureAt() *time.Time {
	return c.departureAt
}

// EstimatedReturn returns the replacement return time, or nil.
func (c EditTripCommand) EstimatedReturn() *time.Time {
	return c.estimatedReturn
}

func (c *EditTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	c.tripID = tripID
	return nil
}

func (c *EditTripCommand) setDispatcherID(dispatcherID *kernel.UUID) error {
	if dispatcherID == nil {
		return nil
	}
	if err := dispatcherID.Validate(); err != nil {
		return err
	}
	c.dispatcherID = dispatcherID
	return nil
}
