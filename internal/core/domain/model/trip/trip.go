package trip

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrTripIsNotConstructed is returned when a Trip instance was not created
	// through NewTrip or RestoreTrip.
	ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip or RestoreTrip")

	// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid trip transition")

	// ErrNotReady is the sentinel wrapped by NotReadyError.
	ErrNotReady = errors.New("trip is not ready to complete")

	// ErrNotEditable is returned when metadata edits are attempted on a
	// completed or cancelled trip.
	ErrNotEditable = errors.New("trip is not editable")
)

// InvalidTransitionError is returned when a trip action is not legal for the
// current status or the actor's role.
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

// NotReadyError is returned when trip completion is attempted while one or
// more bound orders are still in flight. It lists the blocking order ids so
// the caller can surface them.
type NotReadyError struct {
	BlockingOrderIDs []kernel.UUID
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("%s: %d orders are not in a terminal delivery state", ErrNotReady, len(e.BlockingOrderIDs))
}

func (e *NotReadyError) Unwrap() error {
	return ErrNotReady
}

// Trip is the aggregate root for a delivery run: a group of dispatched
// orders assigned to one dispatcher and vehicle. It owns its ordered list of
// assignments (stops) and the trip status state machine.
//
// Trip follows these invariants:
//   - Sequence numbers are contiguous from 1 in the order stops were added
//   - An order appears at most once among non-void assignments
//   - Forward status transitions are single-step only
//   - Completion requires every non-void stop's order to be terminal
//
// Only Admin and Dispatcher roles may act on a trip; there is no further
// role branching, unlike the order state machine.
type Trip struct {
	id              kernel.UUID
	warehouseID     kernel.UUID
	dispatcherID    kernel.UUID
	vehicle         *string
	departureAt     *time.Time
	estimatedReturn *time.Time

	status      Status
	assignments []Assignment

	version   int
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewTripParams carries the inputs for NewTrip.
type NewTripParams struct {
	ID              kernel.UUID
	WarehouseID     kernel.UUID
	DispatcherID    kernel.UUID
	Vehicle         *string
	DepartureAt     *time.Time
	EstimatedReturn *time.Time
	Now             time.Time
}

// NewTrip creates a trip in Created status with no stops.
// The dispatch coordinator adds assignments and then calls Assign; a
// dispatcher is always supplied at creation time, so persisted trips are
// never observed in Created.
func NewTrip(params NewTripParams) (*Trip, error) {
	t := &Trip{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(params.ID),
		t.setWarehouseID(params.WarehouseID),
		t.setDispatcherID(params.DispatcherID),
	); err != nil {
		return nil, err
	}

	t.vehicle = params.Vehicle
	t.departureAt = params.DepartureAt
	t.estimatedReturn = params.EstimatedReturn
	t.version = 1
	t.createdAt = params.Now
	t.updatedAt = params.Now
	return t, nil
}

// RestoreTripParams carries the persisted state for RestoreTrip.
type RestoreTripParams struct {
	ID              kernel.UUID
	WarehouseID     kernel.UUID
	DispatcherID    kernel.UUID
	Vehicle         *string
	DepartureAt     *time.Time
	EstimatedReturn *time.Time
	Status          Status
	Assignments     []Assignment
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreTrip reconstructs a trip from persistence, verifying that sequence
// numbers are contiguous from 1.
func RestoreTrip(params RestoreTripParams) (*Trip, error) {
	if err := params.Status.Validate(); err != nil {
		return nil, err
	}
	if params.Version < 1 {
		return nil, errs.NewVersionIsInvalidError(
			"trip version",
			fmt.Errorf("%d is not at least 1", params.Version),
		)
	}

	t := &Trip{
		status:        params.Status,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(params.ID),
		t.setWarehouseID(params.WarehouseID),
		t.setDispatcherID(params.DispatcherID),
	); err != nil {
		return nil, err
	}

	for i, a := range params.Assignments {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if a.SequenceNo() != i+1 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"assignments",
				fmt.Errorf("sequence %d at position %d is not contiguous", a.SequenceNo(), i),
			)
		}
	}

	t.vehicle = params.Vehicle
	t.departureAt = params.DepartureAt
	t.estimatedReturn = params.EstimatedReturn
	t.assignments = make([]Assignment, len(params.Assignments))
	copy(t.assignments, params.Assignments)
	t.version = params.Version
	t.createdAt = params.CreatedAt
	t.updatedAt = params.UpdatedAt
	return t, nil
}

// Validate ensures the Trip instance was properly constructed.
func (t *Trip) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTripIsNotConstructed
	}
	return nil
}

// ID returns the trip's unique identifier.
func (t *Trip) ID() kernel.UUID {
	return t.id
}

// WarehouseID returns the originating warehouse reference.
func (t *Trip) WarehouseID() kernel.UUID {
	return t.warehouseID
}

// DispatcherID returns the assigned dispatcher reference.
func (t *Trip) DispatcherID() kernel.UUID {
	return t.dispatcherID
}

// Vehicle returns the vehicle label, or nil.
func (t *Trip) Vehicle() *string {
	return t.vehicle
}

// DepartureAt returns the planned departure time, or nil.
func (t *Trip) DepartureAt() *time.Time {
	return t.departureAt
}

// EstimatedReturn returns the planned return time, or nil.
func (t *Trip) EstimatedReturn() *time.Time {
	return t.estimatedReturn
}

// Status returns the current status of the trip.
func (t *Trip) Status() Status {
	return t.status
}

// Assignments returns a copy of the stops in delivery sequence.
func (t *Trip) Assignments() []Assignment {
	assignments := make([]Assignment, len(t.assignments))
	copy(assignments, t.assignments)
	return assignments
}

// Version returns the optimistic-concurrency version.
func (t *Trip) Version() int {
	return t.version
}

// CreatedAt returns the creation timestamp.
func (t *Trip) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns the last-modification timestamp.
func (t *Trip) UpdatedAt() time.Time {
	return t.updatedAt
}

// TotalValue returns the sum of the non-void stops' order-total snapshots.
// This is a derived reporting value fixed at assignment time.
func (t *Trip) TotalValue() kernel.Money {
	var total kernel.Money
	for _, a := range t.assignments {
		if a.IsVoid() {
			continue
		}
		total = total.Add(a.OrderTotal())
	}
	return total
}

// AddStop appends an assignment for the given order with the next sequence
// number. Selection order is significant: stops are delivered in the order
// they were added. Only legal before the trip starts.
func (t *Trip) AddStop(orderID kernel.UUID, orderTotal kernel.Money) error {
	if t.status != Created && t.status != Assigned {
		return &InvalidTransitionError{Action: "add_stop", Status: t.status}
	}

	for _, a := range t.assignments {
		if !a.IsVoid() && a.OrderID().IsEqual(orderID) {
			return errs.NewValueIsInvalidErrorWithCause(
				"orderId",
				fmt.Errorf("order %s is already assigned to this trip", orderID),
			)
		}
	}

	assignment, err := NewAssignment(orderID, len(t.assignments)+1, orderTotal)
	if err != nil {
		return err
	}

	t.assignments = append(t.assignments, assignment)
	return nil
}

// Assign moves the trip from Created to Assigned once its stops are bound.
// A trip with no stops cannot be assigned.
func (t *Trip) Assign(now time.Time) error {
	if t.status != Created {
		return &InvalidTransitionError{Action: "assign", Status: t.status}
	}
	if len(t.assignments) == 0 {
		return errs.NewValueIsRequiredError("assignments")
	}

	t.status = Assigned
	t.updatedAt = now
	return nil
}

// Start marks the trip as departed. Legal only from Assigned.
func (t *Trip) Start(role kernel.Role, now time.Time) error {
	if err := t.validateActor("start", role); err != nil {
		return err
	}
	if t.status != Assigned {
		return &InvalidTransitionError{Action: "start", Status: t.status, Role: role}
	}

	t.status = Started
	t.updatedAt = now
	return nil
}

// MarkInProgress marks deliveries as underway. Legal only from Started.
func (t *Trip) MarkInProgress(role kernel.Role, now time.Time) error {
	if err := t.validateActor("in_progress", role); err != nil {
		return err
	}
	if t.status != Started {
		return &InvalidTransitionError{Action: "in_progress", Status: t.status, Role: role}
	}

	t.status = InProgress
	t.updatedAt = now
	return nil
}

// Complete finishes the trip. Beyond the single-step state check, every
// non-void stop's order must already be in a terminal delivery state
// (Delivered, Returned or Cancelled); otherwise the transition fails with
// NotReadyError listing the blocking order ids.
func (t *Trip) Complete(role kernel.Role, now time.Time) error {
	if err := t.validateActor("complete", role); err != nil {
		return err
	}
	if t.status != InProgress {
		return &InvalidTransitionError{Action: "complete", Status: t.status, Role: role}
	}

	var blocking []kernel.UUID
	for _, a := range t.assignments {
		if a.IsVoid() {
			continue
		}
		if !a.Status().IsTerminal() {
			blocking = append(blocking, a.OrderID())
		}
	}
	if len(blocking) > 0 {
		return &NotReadyError{BlockingOrderIDs: blocking}
	}

	t.status = Completed
	t.updatedAt = now
	return nil
}

// Cancel abandons the trip from any non-terminal state. Every stop still in
// a pre-delivery state is voided, and the ids of its orders are returned so
// the caller can transition them back to the pickable pool. Stops whose
// orders are already Delivered or Returned are left untouched.
func (t *Trip) Cancel(role kernel.Role, now time.Time) ([]kernel.UUID, error) {
	if err := t.validateActor("cancel", role); err != nil {
		return nil, err
	}
	if t.status.IsTerminal() {
		return nil, &InvalidTransitionError{Action: "cancel", Status: t.status, Role: role}
	}

	var reverted []kernel.UUID
	for i, a := range t.assignments {
		if a.IsVoid() || !a.isPreDelivery() {
			continue
		}
		t.assignments[i].void = true
		reverted = append(reverted, a.OrderID())
	}

	t.status = Cancelled
	t.updatedAt = now
	return reverted, nil
}

// EditDetails updates trip metadata: dispatcher, vehicle and schedule.
// Nil parameters leave the current value unchanged. Does not touch
// assignment sequencing or bound orders. Illegal once the trip is terminal.
func (t *Trip) EditDetails(
	dispatcherID *kernel.UUID, vehicle *string, departureAt, estimatedReturn *time.Time, now time.Time,
) error {
	if t.status.IsTerminal() {
		return ErrNotEditable
	}

	if dispatcherID != nil {
		if err := t.setDispatcherID(*dispatcherID); err != nil {
			return err
		}
	}
	if vehicle != nil {
		t.vehicle = vehicle
	}
	if departureAt != nil {
		t.departureAt = departureAt
	}
	if estimatedReturn != nil {
		t.estimatedReturn = estimatedReturn
	}

	t.updatedAt = now
	return nil
}

// UpdateStopStatus mirrors a bound order's new status onto its assignment.
// Called by the application layer whenever an order on this trip takes a
// delivery-relevant transition.
func (t *Trip) UpdateStopStatus(orderID kernel.UUID, status order.Status, now time.Time) error {
	if !status.IsDeliveryRelevant() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a delivery-relevant status", status),
		)
	}

	for i, a := range t.assignments {
		if !a.IsVoid() && a.OrderID().IsEqual(orderID) {
			t.assignments[i].status = status
			t.updatedAt = now
			return nil
		}
	}

	return errs.NewObjectNotFoundError("assignment", orderID.String())
}

// HasActiveStop reports whether the order is bound to this trip through a
// non-void assignment.
func (t *Trip) HasActiveStop(orderID kernel.UUID) bool {
	for _, a := range t.assignments {
		if !a.IsVoid() && a.OrderID().IsEqual(orderID) {
			return true
		}
	}
	return false
}

func (t *Trip) validateActor(action Action, role kernel.Role) error {
	if role != kernel.RoleAdmin && role != kernel.RoleDispatcher {
		return &InvalidTransitionError{Action: action, Status: t.status, Role: role}
	}
	return nil
}

func (t *Trip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Trip) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseId", err)
	}
	t.warehouseID = id
	return nil
}

func (t *Trip) setDispatcherID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dispatcherId", err)
	}
	t.dispatcherID = id
	return nil
}
