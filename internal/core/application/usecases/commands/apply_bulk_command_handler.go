package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/trip"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Error kinds reported per failed bulk target. Kinds are coarse on purpose:
// the caller needs to group failures, not to reconstruct the exact error.
const (
	ErrorKindValidation        = "validation"
	ErrorKindInvalidTransition = "invalid_transition"
	ErrorKindNotFound          = "not_found"
	ErrorKindStaleState        = "stale_state"
	ErrorKindConflict          = "conflict"
	ErrorKindInternal          = "internal"
)

// BulkFailure is one failed target of a bulk action.
type BulkFailure struct {
	OrderID   kernel.UUID
	ErrorKind string
	Message   string
}

// BulkResult summarizes a bulk action: how many targets succeeded, how many
// failed, and why each failure happened.
type BulkResult struct {
	SuccessCount int
	FailureCount int
	Failures     []BulkFailure
}

// ApplyBulkCommandHandler applies one action across a selection of orders.
//
// Transition and export actions run sequentially, one target at a time: a
// failure on one target never rolls back or blocks the others, and the
// result reports per-target outcomes. The create-trip action is the
// deliberate exception; it delegates to CreateTripCommandHandler, which is
// all-or-nothing, so its result is either every target or none.
type ApplyBulkCommandHandler struct {
	transitionHandler TransitionOrderCommandHandler
	createTripHandler CreateTripCommandHandler
	uowFactory        OrderUoWFactory
	exporter          ports.OrderExporter
}

// NewApplyBulkCommandHandler creates a handler for bulk actions. The order
// unit of work factory and the exporter serve the export action, which reads
// each order and hands it to the export system.
func NewApplyBulkCommandHandler(
	transitionHandler TransitionOrderCommandHandler,
	createTripHandler CreateTripCommandHandler,
	uowFactory OrderUoWFactory,
	exporter ports.OrderExporter,
) ApplyBulkCommandHandler {
	return ApplyBulkCommandHandler{
		transitionHandler: transitionHandler,
		createTripHandler: createTripHandler,
		uowFactory:        uowFactory,
		exporter:          exporter,
	}
}

// Handle processes the bulk command and returns the per-target outcome.
// The returned error is non-nil only when the command itself is malformed;
// target-level failures land in the result.
func (h *ApplyBulkCommandHandler) Handle(ctx context.Context, cmd ApplyBulkCommand) (BulkResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkResult{}, err
	}

	if cmd.IsCreateTrip() {
		return h.handleCreateTrip(ctx, cmd)
	}
	if cmd.IsExport() {
		return h.handleExport(ctx, cmd)
	}
	return h.handleTransitions(ctx, cmd)
}

func (h *ApplyBulkCommandHandler) handleTransitions(
	ctx context.Context, cmd ApplyBulkCommand,
) (BulkResult, error) {
	var result BulkResult
	payload := order.TransitionPayload{
		Reason:      cmd.Reason(),
		WarehouseID: cmd.WarehouseID(),
	}

	for _, orderID := range cmd.OrderIDs() {
		transitionCmd, err := NewTransitionOrderCommand(orderID, cmd.ActionName(), cmd.Role(), payload)
		if err == nil {
			err = h.transitionHandler.Handle(ctx, transitionCmd)
		}
		if err != nil {
			result.FailureCount++
			result.Failures = append(result.Failures, BulkFailure{
				OrderID:   orderID,
				ErrorKind: classifyError(err),
				Message:   err.Error(),
			})
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

// handleExport submits each selected order to the export system. Targets are
// independent: an order the repository cannot find or the export system
// rejects is recorded as a failure and the rest proceed.
func (h *ApplyBulkCommandHandler) handleExport(
	ctx context.Context, cmd ApplyBulkCommand,
) (BulkResult, error) {
	var result BulkResult

	for _, orderID := range cmd.OrderIDs() {
		if err := h.exportOne(ctx, orderID); err != nil {
			result.FailureCount++
			result.Failures = append(result.Failures, BulkFailure{
				OrderID:   orderID,
				ErrorKind: classifyError(err),
				Message:   err.Error(),
			})
			continue
		}
		result.SuccessCount++
	}

	return result, nil
}

func (h *ApplyBulkCommandHandler) exportOne(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	// Export only reads; the transaction exists for a consistent snapshot
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	return h.exporter.Export(ctx, o)
}

// handleCreateTrip maps the all-or-nothing trip creation onto the bulk
// result shape: total success or every target failed for the same reason.
func (h *ApplyBulkCommandHandler) handleCreateTrip(
	ctx context.Context, cmd ApplyBulkCommand,
) (BulkResult, error) {
	details := cmd.TripDetails()

	createCmd, err := NewCreateTripCommand(
		details.TripID, details.WarehouseID, details.DispatcherID,
		cmd.OrderIDs(), cmd.Role(),
		details.Vehicle, details.DepartureAt, details.EstimatedReturn,
	)
	if err == nil {
		err = h.createTripHandler.Handle(ctx, createCmd)
	}
	if err != nil {
		var result BulkResult
		kind := classifyError(err)
		for _, orderID := range cmd.OrderIDs() {
			result.FailureCount++
			result.Failures = append(result.Failures, BulkFailure{
				OrderID:   orderID,
				ErrorKind: kind,
				Message:   err.Error(),
			})
		}
		return result, nil
	}

	return BulkResult{SuccessCount: len(cmd.OrderIDs())}, nil
}

// classifyError maps an error to its reporting kind.
func classifyError(err error) string {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ErrorKindNotFound
	case errors.Is(err, errs.ErrStaleState):
		return ErrorKindStaleState
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, trip.ErrInvalidTransition):
		return ErrorKindInvalidTransition
	case errors.Is(err, services.ErrOrdersNotEligible),
		errors.Is(err, trip.ErrNotReady),
		errors.Is(err, order.ErrNotEditable),
		errors.Is(err, trip.ErrNotEditable):
		return ErrorKindConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrInsufficientStock):
		return ErrorKindValidation
	default:
		return ErrorKindInternal
	}
}
