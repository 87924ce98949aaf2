package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/trip"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(
	ctx context.Context, status order.Status, warehouseID *kernel.UUID,
) ([]*order.Order, error) {
	args := m.Called(ctx, status, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetDueScheduled(ctx context.Context, until time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockTripRepository struct{ mock.Mock }

func (m *MockTripRepository) Add(ctx context.Context, t *trip.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepository) Update(ctx context.Context, t *trip.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) GetActiveOrderIDs(ctx context.Context) (map[kernel.UUID]bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]bool), args.Error(1)
}

func (m *MockTripRepository) GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TripRepository() ports.TripRepository {
	args := m.Called()
	return args.Get(0).(ports.TripRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderExporter struct{ mock.Mock }

func (m *MockOrderExporter) Export(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockStockLevelProvider struct{ mock.Mock }

func (m *MockStockLevelProvider) GetStockLevels(
	ctx context.Context, warehouseID kernel.UUID, productIDs []kernel.UUID,
) (map[kernel.UUID]services.StockLevel, error) {
	args := m.Called(ctx, warehouseID, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]services.StockLevel), args.Error(1)
}

// Test fixtures shared across handler tests.

func testItemInputs(productID kernel.UUID) []commands.ItemInput {
	return []commands.ItemInput{
		{
			ProductID:      productID,
			SKU:            "SKU-1",
			Name:           "Espresso beans",
			UnitPriceCents: 2500,
			Quantity:       2,
		},
	}
}

func buildOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	price, err := kernel.NewMoneyFromCents(2500)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "SKU-1", "Espresso beans", price, 2)
	require.NoError(t, err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:          kernel.NewUUID(),
		StoreID:     kernel.NewUUID(),
		WarehouseID: kernel.NewUUID(),
		Items:       []order.Item{item},
		Now:         time.Now(),
	})
	require.NoError(t, err)

	steps := []order.Action{
		order.ActionConfirm, order.ActionPack, order.ActionDispatch,
		order.ActionStartTransit, order.ActionArriveAtStore, order.ActionDeliver,
	}
	for _, action := range steps {
		if o.Status() == status {
			break
		}
		payload := order.TransitionPayload{}
		if action == order.ActionConfirm {
			payload.WarehouseID = o.WarehouseID()
		}
		require.NoError(t, o.Transition(action, kernel.RoleAdmin, payload, time.Now()))
	}
	require.Equal(t, status, o.Status())
	return o
}

func buildAssignedTrip(t *testing.T, warehouseID kernel.UUID, orderIDs ...kernel.UUID) *trip.Trip {
	t.Helper()

	tr, err := trip.NewTrip(trip.NewTripParams{
		ID:           kernel.NewUUID(),
		WarehouseID:  warehouseID,
		DispatcherID: kernel.NewUUID(),
		Now:          time.Now(),
	})
	require.NoError(t, err)

	total, err := kernel.NewMoneyFromCents(5600)
	require.NoError(t, err)
	for _, id := range orderIDs {
		require.NoError(t, tr.AddStop(id, total))
	}
	require.NoError(t, tr.Assign(time.Now()))
	return tr
}
