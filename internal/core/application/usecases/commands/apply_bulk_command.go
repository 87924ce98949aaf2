package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrApplyBulkCommandIsNotConstructed = errors.New(
	"ApplyBulkCommand must be created via NewApplyBulkCommand constructor",
)

const (
	// BulkActionCreateTrip builds a delivery trip from the selection instead
	// of transitioning each order individually.
	BulkActionCreateTrip = "create_trip"

	// BulkActionExport submits each selected order to the export system.
	BulkActionExport = "export"
)

// TripDetails carries the trip-specific inputs of a create-trip bulk action.
type TripDetails struct {
	TripID          kernel.UUID
	WarehouseID     kernel.UUID
	DispatcherID    kernel.UUID
	Vehicle         *string
	DepartureAt     *time.Time
	EstimatedReturn *time.Time
}

// ApplyBulkCommand represents a request to apply one action to a selection
// of orders. The action is an order transition name, BulkActionCreateTrip
// or BulkActionExport.
//
// Example:
//
//	cmd, err := NewApplyBulkCommand("confirm", orderIDs, kernel.RoleAdmin, "", warehouseID, nil)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type ApplyBulkCommand struct { //nolint:recvcheck //using for validation
	actionName  string
	orderIDs    []kernel.UUID
	role        kernel.Role
	reason      string
	warehouseID kernel.UUID
	tripDetails *TripDetails

	guard guard.ConstructorGuard
}

// NewApplyBulkCommand creates a bulk action command.
// The warehouseID is used by bulk confirmation; tripDetails is required for
// BulkActionCreateTrip and ignored otherwise.
func NewApplyBulkCommand(
	actionName string,
	orderIDs []kernel.UUID,
	role kernel.Role,
	reason string,
	warehouseID kernel.UUID,
	tripDetails *TripDetails,
) (ApplyBulkCommand, error) {
	cmd := ApplyBulkCommand{
		guard:       guard.NewConstructorGuard(),
		reason:      reason,
		warehouseID: warehouseID,
		tripDetails: tripDetails,
	}

	if err := errors.Join(
		cmd.setActionName(actionName, tripDetails),
		cmd.setOrderIDs(orderIDs),
		cmd.setRole(role),
	); err != nil {
		return ApplyBulkCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyBulkCommand) Validate() error {
	return c.guard.Validate(ErrApplyBulkCommandIsNotConstructed)
}

// ActionName returns the requested action name.
func (c ApplyBulkCommand) ActionName() string {
	return c.actionName
}

// IsCreateTrip reports whether the action builds a trip instead of
// transitioning orders individually.
func (c ApplyBulkCommand) IsCreateTrip() bool {
	return c.actionName == BulkActionCreateTrip
}

// IsExport reports whether the action submits the selection to the export
// system instead of transitioning orders.
func (c ApplyBulkCommand) IsExport() bool {
	return c.actionName == BulkActionExport
}

// OrderIDs returns the selected order ids in selection order.
func (c ApplyBulkCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Role returns the acting role.
func (c ApplyBulkCommand) Role() kernel.Role {
	return c.role
}

// Reason returns the reason applied to return/cancel transitions.
func (c ApplyBulkCommand) Reason() string {
	return c.reason
}

// WarehouseID returns the warehouse binding for bulk confirmation.
func (c ApplyBulkCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// TripDetails returns the trip inputs of a create-trip action, or nil.
func (c ApplyBulkCommand) TripDetails() *TripDetails {
	return c.tripDetails
}

func (c *ApplyBulkCommand) setActionName(actionName string, tripDetails *TripDetails) error {
	if actionName == BulkActionCreateTrip {
		if tripDetails == nil {
			return errs.NewValueIsRequiredError("tripDetails")
		}
		c.actionName = actionName
		return nil
	}
	if actionName == BulkActionExport {
		c.actionName = actionName
		return nil
	}

	if _, err := order.ActionFromString(actionName); err != nil {
		return err
	}
	c.actionName = actionName
	return nil
}

func (c *ApplyBulkCommand) setOrderIDs(orderIDs []kernel.UUID) error {
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

func (c *ApplyBulkCommand) setRole(role kernel.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
