package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// bulkFixture wires an ApplyBulkCommandHandler whose per-order transactions
// run against programmable mocks. Each order transition opens its own UoW,
// so the factory returns a fresh mock per call.
type bulkFixture struct {
	factory      *MockUoWFactory
	orderFactory *MockOrderUoWFactory
	exporter     *MockOrderExporter
	handler      commands.ApplyBulkCommandHandler
}

func newBulkFixture() *bulkFixture {
	factory := new(MockUoWFactory)
	orderFactory := new(MockOrderUoWFactory)
	exporter := new(MockOrderExporter)
	transitionHandler := commands.NewTransitionOrderCommandHandler(factory)
	createTripHandler := commands.NewCreateTripCommandHandler(factory)
	return &bulkFixture{
		factory:      factory,
		orderFactory: orderFactory,
		exporter:     exporter,
		handler: commands.NewApplyBulkCommandHandler(
			transitionHandler, createTripHandler, orderFactory, exporter,
		),
	}
}

// expectTransition programs one per-order transaction.
func (f *bulkFixture) expectTransition(ctx interface{}, aggregate *order.Order, getErr, updateErr error) {
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("TripRepository").Return(new(MockTripRepository)).Maybe()
	if getErr != nil {
		repo.On("Get", mock.Anything, mock.Anything).Return(nil, getErr).Once()
	} else {
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
		repo.On("Update", mock.Anything, aggregate).Return(updateErr).Maybe()
	}
	uow.On("Commit", ctx).Return(nil).Maybe()
	uow.On("Rollback", ctx).Return(nil).Once()
	f.factory.On("Create").Return(uow).Once()
}

func TestApplyBulkCommandHandler_Handle_AllSucceed(t *testing.T) {
	ctx := t.Context()
	f := newBulkFixture()

	order1 := buildOrder(t, order.Pending)
	order2 := buildOrder(t, order.Pending)
	f.expectTransition(ctx, order1, nil, nil)
	f.expectTransition(ctx, order2, nil, nil)

	cmd, err := commands.NewApplyBulkCommand(
		"confirm", []kernel.UUID{order1.ID(), order2.ID()},
		kernel.RoleAdmin, "", order1.WarehouseID(), nil,
	)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
	assert.Empty(t, result.Failures)
	assert.Equal(t, order.Confirmed, order1.Status())
	assert.Equal(t, order.Confirmed, order2.Status())
}

func TestApplyBulkCommandHandler_Handle_MixedOutcome(t *testing.T) {
	ctx := t.Context()
	f := newBulkFixture()

	pendingOrder := buildOrder(t, order.Pending)
	packedOrder := buildOrder(t, order.Packed) // confirm is illegal from Packed
	missingID := kernel.NewUUID()

	f.expectTransition(ctx, pendingOrder, nil, nil)
	f.expectTransition(ctx, packedOrder, nil, nil)
	f.expectTransition(ctx, nil, errs.NewObjectNotFoundError("order", missingID.String()), nil)

	cmd, err := commands.NewApplyBulkCommand(
		"confirm", []kernel.UUID{pendingOrder.ID(), packedOrder.ID(), missingID},
		kernel.RoleAdmin, "", pendingOrder.WarehouseID(), nil,
	)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
	require.Len(t, result.Failures, 2)

	assert.True(t, result.Failures[0].OrderID.IsEqual(packedOrder.ID()))
	assert.Equal(t, commands.ErrorKindInvalidTransition, result.Failures[0].ErrorKind)
	assert.True(t, result.Failures[1].OrderID.IsEqual(missingID))
	assert.Equal(t, commands.ErrorKindNotFound, result.Failures[1].ErrorKind)

	// The failure on the second target did not block the first
	assert.Equal(t, order.Confirmed, pendingOrder.Status())
	assert.Equal(t, order.Packed, packedOrder.Status())
}

func TestApplyBulkCommandHandler_Handle_StaleTargetReported(t *testing.T) {
	ctx := t.Context()
	f := newBulkFixture()

	aggregate := buildOrder(t, order.Pending)
	f.expectTransition(ctx, aggregate, nil, errs.NewStaleStateError("order", aggregate.ID().String()))

	cmd, err := commands.NewApplyBulkCommand(
		"cancel", []kernel.UUID{aggregate.ID()},
		kernel.RoleAdmin, "duplicate", kernel.UUID{}, nil,
	)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, result.SuccessCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, commands.ErrorKindStaleState, result.Failures[0].ErrorKind)
}

// expectExport programs one per-order export read.
func (f *bulkFixture) expectExport(ctx interface{}, aggregate *order.Order, getErr error) {
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	if getErr != nil {
		repo.On("Get", mock.Anything, mock.Anything).Return(nil, getErr).Once()
	} else {
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()
	f.orderFactory.On("Create").Return(uow).Once()
}

func TestApplyBulkCommandHandler_Handle_ExportMixedOutcome(t *testing.T) {
	ctx := t.Context()
	f := newBulkFixture()

	exported := buildOrder(t, order.Delivered)
	rejected := buildOrder(t, order.Pending)
	missingID := kernel.NewUUID()

	f.expectExport(ctx, exported, nil)
	f.expectExport(ctx, nil, errs.NewObjectNotFoundError("order", missingID.String()))
	f.expectExport(ctx, rejected, nil)

	f.exporter.On("Export", mock.Anything, exported).Return(nil).Once()
	f.exporter.On("Export", mock.Anything, rejected).
		Return(errors.New("export service returned status 503")).Once()

	cmd, err := commands.NewApplyBulkCommand(
		commands.BulkActionExport,
		[]kernel.UUID{exported.ID(), missingID, rejected.ID()},
		kernel.RoleAdmin, "", kernel.UUID{}, nil,
	)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
	require.Len(t, result.Failures, 2)

	assert.True(t, result.Failures[0].OrderID.IsEqual(missingID))
	assert.Equal(t, commands.ErrorKindNotFound, result.Failures[0].ErrorKind)
	assert.True(t, result.Failures[1].OrderID.IsEqual(rejected.ID()))
	assert.Equal(t, commands.ErrorKindInternal, result.Failures[1].ErrorKind)
	f.exporter.AssertExpectations(t)
}

func TestApplyBulkCommandHandler_Handle_ExportAllSucceed(t *testing.T) {
	ctx := t.Context()
	f := newBulkFixture()

	order1 := buildOrder(t, order.Delivered)
	order2 := buildOrder(t, order.Confirmed)
	f.expectExport(ctx, order1, nil)
	f.expectExport(ctx, order2, nil)
	f.exporter.On("Export", mock.Anything, order1).Return(nil).Once()
	f.exporter.On("Export", mock.Anything, order2).Return(nil).Once()

	cmd, err := commands.NewApplyBulkCommand(
		commands.BulkActionExport,
		[]kernel.UUID{order1.ID(), order2.ID()},
		kernel.RoleAgent, "", kernel.UUID{}, nil,
	)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailureCount)
	assert.Empty(t, result.Failures)
	f.exporter.AssertExpectations(t)
}

func TestApplyBulkCommandHandler_Handle_CreateTripAllOrNothing(t *testing.T) {
	ctx := t.Context()
	f := newBulkFixture()

	packedOrder := buildOrder(t, order.Packed)
	pendingOrder := buildOrder(t, order.Pending)

	// One shared transaction for the create-trip delegate
	orderRepo := new(MockOrderRepository)
	tripRepo := new(MockTripRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("TripRepository").Return(tripRepo).Once()
	orderRepo.On("Get", mock.Anything, packedOrder.ID()).Return(packedOrder, nil).Once()
	orderRepo.On("Get", mock.Anything, pendingOrder.ID()).Return(pendingOrder, nil).Once()
	tripRepo.On("GetActiveOrderIDs", mock.Anything).Return(map[kernel.UUID]bool{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	f.factory.On("Create").Return(uow).Once()

	details := &commands.TripDetails{
		TripID:       kernel.NewUUID(),
		WarehouseID:  packedOrder.WarehouseID(),
		DispatcherID: kernel.NewUUID(),
	}
	cmd, err := commands.NewApplyBulkCommand(
		commands.BulkActionCreateTrip,
		[]kernel.UUID{packedOrder.ID(), pendingOrder.ID()},
		kernel.RoleDispatcher, "", kernel.UUID{}, details,
	)
	require.NoError(t, err)

	result, err := f.handler.Handle(ctx, cmd)
	require.NoError(t, err)

	// All-or-nothing: both targets report the same conflict
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
	for _, failure := range result.Failures {
		assert.Equal(t, commands.ErrorKindConflict, failure.ErrorKind)
	}
	assert.Equal(t, order.Packed, packedOrder.Status())
}

func TestNewApplyBulkCommand_CreateTripRequiresDetails(t *testing.T) {
	_, err := commands.NewApplyBulkCommand(
		commands.BulkActionCreateTrip, []kernel.UUID{kernel.NewUUID()},
		kernel.RoleDispatcher, "", kernel.UUID{}, nil,
	)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewApplyBulkCommand_UnknownAction(t *testing.T) {
	_, err := commands.NewApplyBulkCommand(
		"explode", []kernel.UUID{kernel.NewUUID()},
		kernel.RoleAdmin, "", kernel.UUID{}, nil,
	)
	require.Error(t, err)
}
