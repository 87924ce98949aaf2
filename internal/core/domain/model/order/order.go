package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// TaxRatePercent is the fixed tax rate applied to order subtotals.
const TaxRatePercent = 12

// DefaultCancelReason is recorded when a cancellation carries no reason.
const DefaultCancelReason = "no reason provided"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrNotEditable is the sentinel wrapped by NotEditableError.
	ErrNotEditable = errors.New("order is not editable")
)

// NotEditableError is returned when an edit is attempted on an order that has
// advanced past Pending. This guards the race where an order was confirmed
// between page load and submit.
type NotEditableError struct {
	Status Status
}

func (e *NotEditableError) Error() string {
	return fmt.Sprintf("%s: status is %s, edits are allowed only in Pending", ErrNotEditable, e.Status)
}

func (e *NotEditableError) Unwrap() error {
	return ErrNotEditable
}

// TransitionPayload carries the action-specific inputs of a transition
// request: the reason for returns/cancellations, the warehouse binding for
// confirmation, and free-text notes.
type TransitionPayload struct {
	Reason      string
	WarehouseID kernel.UUID
	Notes       string
}

// Order is the aggregate root for a customer purchase request moving through
// the fulfillment pipeline. It owns its line items, computed totals and the
// status state machine; every status change goes through Transition so the
// legality table in action.go stays the single source of truth.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, store and warehouse reference
//   - Items are non-empty once the order leaves Pending
//   - subtotal equals the sum of line totals; tax is 12% of subtotal; total is their sum
//   - Status transitions follow the legality table and the actor's role
//   - Can only be created through NewOrder or RestoreOrder
//
// The version field supports optimistic concurrency: repositories refuse an
// update whose version no longer matches the persisted row.
type Order struct {
	id          kernel.UUID
	storeID     kernel.UUID
	warehouseID kernel.UUID
	agentID     *kernel.UUID

	status       Status
	priority     bool
	scheduledFor *time.Time
	statusReason string

	items    []Item
	subtotal kernel.Money
	tax      kernel.Money
	total    kernel.Money

	version   int
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status from validated line items.
// Totals are computed from the items: subtotal = Σ line totals,
// tax = 12% of subtotal (rounded half up), total = subtotal + tax.
//
// Example:
//
//	item, _ := order.NewItem(productID, "SKU-1", "Espresso beans", price, 2)
//	o, err := order.NewOrder(order.NewOrderParams{
//	    ID: kernel.NewUUID(), StoreID: storeID, WarehouseID: warehouseID,
//	    Items: []order.Item{item}, Now: time.Now(),
//	})
func NewOrder(params NewOrderParams) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setStoreID(params.StoreID),
		o.setWarehouseID(params.WarehouseID),
		o.setAgentID(params.AgentID),
		o.setItems(params.Items),
	); err != nil {
		return nil, err
	}

	o.priority = params.Priority
	o.scheduledFor = params.ScheduledFor
	o.version = 1
	o.createdAt = params.Now
	o.updatedAt = params.Now
	return o, nil
}

// NewOrderParams carries the inputs for NewOrder.
type NewOrderParams struct {
	ID           kernel.UUID
	StoreID      kernel.UUID
	WarehouseID  kernel.UUID
	AgentID      *kernel.UUID
	Items        []Item
	Priority     bool
	ScheduledFor *time.Time
	Now          time.Time
}

// RestoreOrderParams carries the persisted state for RestoreOrder.
type RestoreOrderParams struct {
	ID           kernel.UUID
	StoreID      kernel.UUID
	WarehouseID  kernel.UUID
	AgentID      *kernel.UUID
	Status       Status
	Priority     bool
	ScheduledFor *time.Time
	StatusReason string
	Items        []Item
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreOrder reconstructs an Order from persistence. Totals are recomputed
// from the restored items, so the subtotal invariant holds by construction.
// Orders past Pending must carry at least one item.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	if err := params.Status.Validate(); err != nil {
		return nil, err
	}
	if params.Version < 1 {
		return nil, errs.NewVersionIsInvalidError(
			"order version",
			fmt.Errorf("%d is not at least 1", params.Version),
		)
	}

	o := &Order{
		status:        params.Status,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(params.ID),
		o.setStoreID(params.StoreID),
		o.setWarehouseID(params.WarehouseID),
		o.setAgentID(params.AgentID),
		o.setItems(params.Items),
	); err != nil {
		return nil, err
	}

	o.priority = params.Priority
	o.scheduledFor = params.ScheduledFor
	o.statusReason = params.StatusReason
	o.version = params.Version
	o.createdAt = params.CreatedAt
	o.updatedAt = params.UpdatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StoreID returns the destination store reference.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// WarehouseID returns the fulfilling warehouse reference.
func (o *Order) WarehouseID() kernel.UUID {
	return o.warehouseID
}

// AgentID returns the assigned field agent reference, or nil.
func (o *Order) AgentID() *kernel.UUID {
	return o.agentID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Priority reports whether the order is flagged for priority handling.
func (o *Order) Priority() bool {
	return o.priority
}

// ScheduledFor returns the requested fulfillment time, or nil.
func (o *Order) ScheduledFor() *time.Time {
	return o.scheduledFor
}

// StatusReason returns the reason recorded with the last return or
// cancellation, or the empty string.
func (o *Order) StatusReason() string {
	return o.statusReason
}

// Items returns a copy of the line items in display order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Subtotal returns the sum of line totals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// Tax returns the 12% tax computed on the subtotal.
func (o *Order) Tax() kernel.Money {
	return o.tax
}

// Total returns subtotal plus tax.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Version returns the optimistic-concurrency version.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-modification timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Transition applies a requested action on behalf of an actor role.
//
// Legality is resolved against the table in action.go; an action not listed
// for the current (status, role) fails with InvalidTransitionError and no
// state changes. Re-applying a transition that already happened (for example
// "delivered" on a Delivered order) fails the same way rather than silently
// succeeding twice.
//
// Action-specific payload handling:
//   - confirm: payload.WarehouseID is required and overwrites the order's
//     warehouse binding; the order must have at least one item
//   - returned: payload.Reason is required
//   - cancel: payload.Reason defaults to DefaultCancelReason when empty
//
// On success the status advances and updatedAt is refreshed. Totals are not
// recomputed: item changes go through Edit, which is only legal in Pending.
func (o *Order) Transition(action Action, role kernel.Role, payload TransitionPayload, now time.Time) error {
	next, err := Next(o.status, action, role)
	if err != nil {
		return err
	}

	switch action {
	case ActionConfirm:
		if err := payload.WarehouseID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("warehouseId", err)
		}
		o.warehouseID = payload.WarehouseID
	case ActionReturn:
		if payload.Reason == "" {
			return errs.NewValueIsRequiredError("reason")
		}
		o.statusReason = payload.Reason
	case ActionCancel:
		if payload.Reason == "" {
			o.statusReason = DefaultCancelReason
		} else {
			o.statusReason = payload.Reason
		}
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// Edit replaces the item list wholesale and updates priority and scheduling.
// Only legal while the order is Pending; afterwards it fails with
// NotEditableError. Totals are recomputed from the new items. Stock
// re-validation against the inventory gate is the caller's responsibility
// and happens before the items reach this method.
func (o *Order) Edit(items []Item, priority bool, scheduledFor *time.Time, now time.Time) error {
	if o.status != Pending {
		return &NotEditableError{Status: o.status}
	}

	if err := o.setItems(items); err != nil {
		return err
	}

	o.priority = priority
	o.scheduledFor = scheduledFor
	o.updatedAt = now
	return nil
}

// MarkPriority flags the order for priority handling.
// Used when a scheduled order comes due.
func (o *Order) MarkPriority(now time.Time) {
	if o.priority {
		return
	}
	o.priority = true
	o.updatedAt = now
}

// RevertToPacked returns a dispatch-bound order to the pickable pool.
// Only legal from the pre-delivery statuses Dispatched, InTransit and
// AtStore; it exists solely for the trip-cancellation cascade and is not a
// caller-facing action, which is why it bypasses the role-gated table.
func (o *Order) RevertToPacked(now time.Time) error {
	if o.status != Dispatched && o.status != InTransit && o.status != AtStore {
		return &InvalidTransitionError{Action: "revert", Status: o.status}
	}
	o.status = Packed
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("storeId", err)
	}
	o.storeID = id
	return nil
}

func (o *Order) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseId", err)
	}
	o.warehouseID = id
	return nil
}

func (o *Order) setAgentID(id *kernel.UUID) error {
	if id == nil {
		o.agentID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	o.agentID = id
	return nil
}

// setItems validates and stores the item list, then recomputes totals.
// An order always carries at least one item: submission requires it, and an
// edit that would empty the list is a removal of the order, not an edit.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.recomputeTotals()
	return nil
}

func (o *Order) recomputeTotals() {
	var subtotal kernel.Money
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	o.subtotal = subtotal
	o.tax = subtotal.Percent(TaxRatePercent)
	o.total = subtotal.Add(o.tax)
}
