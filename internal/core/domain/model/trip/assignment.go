package trip

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Assignment is a stop on a trip: the binding of one order to the trip with
// a delivery sequence number. The trip exclusively owns its assignments; the
// orderID is a non-owning reference to an order held by the order store.
//
// The status field mirrors the bound order's delivery-relevant status so
// trip views do not need to join against the order store. The orderTotal is
// a snapshot taken at assignment time for trip-value reporting; it is never
// re-read, which is safe because orders cannot be edited once past Pending.
type Assignment struct {
	orderID    kernel.UUID
	sequenceNo int
	status     order.Status
	orderTotal kernel.Money
	void       bool

	isConstructed bool
}

// NewAssignment creates a stop for a freshly dispatched order.
// Sequence numbers start at 1 and are contiguous within a trip; the trip
// aggregate assigns them.
func NewAssignment(orderID kernel.UUID, sequenceNo int, orderTotal kernel.Money) (Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return Assignment{}, err
	}
	if sequenceNo < 1 {
		return Assignment{}, errs.NewValueIsInvalidErrorWithCause(
			"sequenceNo",
			fmt.Errorf("%d is not at least 1", sequenceNo),
		)
	}

	return Assignment{
		orderID:       orderID,
		sequenceNo:    sequenceNo,
		status:        order.Dispatched,
		orderTotal:    orderTotal,
		isConstructed: true,
	}, nil
}

// RestoreAssignment reconstructs a stop from persistence.
func RestoreAssignment(
	orderID kernel.UUID, sequenceNo int, status order.Status, orderTotal kernel.Money, void bool,
) (Assignment, error) {
	a, err := NewAssignment(orderID, sequenceNo, orderTotal)
	if err != nil {
		return Assignment{}, err
	}
	if !status.IsDeliveryRelevant() {
		return Assignment{}, errs.NewValueIsInvalidErrorWithCause(
			"assignment status",
			fmt.Errorf("%s is not a delivery-relevant status", status),
		)
	}

	a.status = status
	a.void = void
	return a, nil
}

// Validate ensures the assignment was created via its constructor.
func (a Assignment) Validate() error {
	if !a.isConstructed {
		return errs.NewValueIsRequiredError("assignment must be created via NewAssignment")
	}
	return nil
}

// OrderID returns the bound order's identifier.
func (a Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// SequenceNo returns the delivery sequence position, starting at 1.
func (a Assignment) SequenceNo() int {
	return a.sequenceNo
}

// Status returns the mirrored order status.
func (a Assignment) Status() order.Status {
	return a.status
}

// OrderTotal returns the order-total snapshot taken at assignment time.
func (a Assignment) OrderTotal() kernel.Money {
	return a.orderTotal
}

// IsVoid reports whether the stop was voided by a trip cancellation.
func (a Assignment) IsVoid() bool {
	return a.void
}

// isPreDelivery reports whether the stop's order has not yet reached a
// terminal delivery outcome.
func (a Assignment) isPreDelivery() bool {
	return a.status == order.Dispatched || a.status == order.InTransit || a.status == order.AtStore
}
