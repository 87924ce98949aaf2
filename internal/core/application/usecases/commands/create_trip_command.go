package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateTripCommandIsNotConstructed = errors.New(
	"CreateTripCommand must be created via NewCreateTripCommand constructor",
)

// CreateTripCommand represents a request to build a delivery trip from a
// selection of packed orders. Order ids are kept in selection order, which
// becomes the delivery sequence.
//
// Example:
//
//	cmd, err := NewCreateTripCommand(tripID, warehouseID, dispatcherID,
//	    orderIDs, kernel.RoleDispatcher, &vehicle, &departureAt, nil)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type CreateTripCommand struct { //nolint:recvcheck //using for validation
	tripID          kernel.UUID
	warehouseID     kernel.UUID
	dispatcherID    kernel.UUID
	orderIDs        []kernel.UUID
	role            kernel.Role
	vehicle         *string
	departureAt     *time.Time
	estimatedReturn *time.Time

	guard guard.ConstructorGuard
}

// NewCreateTripCommand creates a command to build a trip.
// Requires at least one order id; every id must be a valid UUID.
func NewCreateTripCommand(
	tripID, warehouseID, dispatcherID kernel.UUID,
	orderIDs []kernel.UUID,
	role kernel.Role,
	vehicle *string,
	departureAt, estimatedReturn *time.Time,
) (CreateTripCommand, error) {
	cmd := CreateTripCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setWarehouseID(warehouseID),
		cmd.setDispatcherID(dispatcherID),
		cmd.setOrderIDs(orderIDs),
		cmd.setRole(role),
	); err != nil {
		return CreateTripCommand{}, err
	}

	cmd.vehicle = vehicle
	cmd.departureAt = departureAt
	cmd.estimatedReturn = estimatedReturn
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

// TripID returns the unique identifier for the new trip.
func (c CreateTripCommand) TripID() kernel.UUID {
	return c.tripID
}

// WarehouseID returns the originating warehouse reference.
func (c CreateTripCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// DispatcherID returns the assigned dispatcher reference.
func (c CreateTripCommand) DispatcherID() kernel.UUID {
	return c.dispatcherID
}

// OrderIDs returns the selected order ids in delivery sequence.
func (c CreateTripCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Role returns the acting role.
func (c CreateTripCommand) Role() kernel.Role {
	return c.role
}

// Vehicle returns the vehicle label, or nil.
func (c CreateTripCommand) Vehicle() *string {
	return c.vehicle
}

// DepartureAt returns the planned departure time, or nil.
func (c CreateTripCommand) DepartureAt() *time.Time {
	return c.departureAt
}

// EstimatedReturn returns the planned return time, or nil.
func (c CreateTripCommand) EstimatedReturn() *time.Time {
	return c.estimatedReturn
}

func (c *CreateTripCommand) setTripID(tripID kernel.UUID) error {
	if err := tripID.Validate(); err != nil {
		return err
	}
	c.tripID = tripID
	return nil
}

func (c *CreateTripCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	c.warehouseID = warehouseID
	return nil
}

func (c *CreateTripCommand) setDispatcherID(dispatcherID kernel.UUID) error {
	if err := dispatcherID.Validate(); err != nil {
		return err
	}
	c.dispatcherID = dispatcherID
	return nil
}

func (c *CreateTripCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}

func (c *CreateTripCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
