package triprepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/triprepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/trip"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// TripRepositoryIntegrationTestSuite provides integration tests for TripRepository
// using PostgreSQL containers to verify database persistence behavior.
type TripRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *triprepo.GormTripRepository
	tracker    *MockAggregateTracker
}

func (suite *TripRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&triprepo.TripDTO{}, &triprepo.AssignmentDTO{}))
}

func (suite *TripRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE trips, trip_assignments").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = triprepo.NewGormTripRepository(suite.db, suite.tracker)
}

func (suite *TripRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TripRepositoryIntegrationTestSuite) TestAdd_And_Get_RoundTrips() {
	ctx := context.Background()

	orderID1 := kernel.NewUUID()
	orderID2 := kernel.NewUUID()
	testTrip := suite.createAssignedTrip(orderID1, orderID2)
	suite.tracker.On("TrackAggregate", testTrip.ID(), testTrip).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testTrip))

	retrievedTrip, err := suite.repository.Get(ctx, testTrip.ID())
	suite.Require().NoError(err)

	suite.True(testTrip.ID().IsEqual(retrievedTrip.ID()))
	suite.True(testTrip.WarehouseID().IsEqual(retrievedTrip.WarehouseID()))
	suite.Equal(trip.Assigned, retrievedTrip.Status())

	// Stops come back in delivery sequence
	stops := retrievedTrip.Assignments()
	suite.Require().Len(stops, 2)
	suite.Equal(1, stops[0].SequenceNo())
	suite.True(orderID1.IsEqual(stops[0].OrderID()))
	suite.Equal(2, stops[1].SequenceNo())
	suite.True(orderID2.IsEqual(stops[1].OrderID()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestGet_NonExistentTrip_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedTrip, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrievedTrip)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *TripRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleProgress() {
	ctx := context.Background()

	testTrip := suite.createAssignedTrip(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", testTrip.ID(), testTrip).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testTrip))

	suite.Require().NoError(testTrip.Start(kernel.RoleDispatcher, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, testTrip))

	retrievedTrip, err := suite.repository.Get(ctx, testTrip.ID())
	suite.Require().NoError(err)
	suite.Equal(trip.Started, retrievedTrip.Status())
	suite.Equal(testTrip.Version()+1, retrievedTrip.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsStaleStateError() {
	ctx := context.Background()

	testTrip := suite.createAssignedTrip(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", testTrip.ID(), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testTrip))

	firstWriter, err := suite.repository.Get(ctx, testTrip.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(firstWriter.Start(kernel.RoleDispatcher, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, firstWriter))

	suite.Require().NoError(testTrip.Start(kernel.RoleDispatcher, time.Now()))
	err = suite.repository.Update(ctx, testTrip)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrStaleState)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestGetActiveOrderIDs_SkipsTerminalTripsAndVoidStops() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	activeOrderID := kernel.NewUUID()
	cancelledOrderID := kernel.NewUUID()

	activeTrip := suite.createAssignedTrip(activeOrderID)
	suite.Require().NoError(suite.repository.Add(ctx, activeTrip))

	cancelledTrip := suite.createAssignedTrip(cancelledOrderID)
	suite.Require().NoError(suite.repository.Add(ctx, cancelledTrip))
	_, err := cancelledTrip.Cancel(kernel.RoleDispatcher, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, cancelledTrip))

	active, err := suite.repository.GetActiveOrderIDs(ctx)
	suite.Require().NoError(err)
	suite.True(active[activeOrderID])
	suite.False(active[cancelledOrderID])

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TripRepositoryIntegrationTestSuite) TestGetActiveByOrderID() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Once()

	orderID := kernel.NewUUID()
	testTrip := suite.createAssignedTrip(orderID)
	suite.Require().NoError(suite.repository.Add(ctx, testTrip))

	suite.Run("should find active trip holding the order", func() {
		found, err := suite.repository.GetActiveByOrderID(ctx, orderID)
		suite.Require().NoError(err)
		suite.True(testTrip.ID().IsEqual(found.ID()))
	})

	suite.Run("should report not found for unbound order", func() {
		_, err := suite.repository.GetActiveByOrderID(ctx, kernel.NewUUID())
		suite.Require().Error(err)
		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	})

	suite.tracker.AssertExpectations(suite.T())
}

// createAssignedTrip builds an Assigned trip with one stop per given order id.
func (suite *TripRepositoryIntegrationTestSuite) createAssignedTrip(orderIDs ...kernel.UUID) *trip.Trip {
	testTrip, err := trip.NewTrip(trip.NewTripParams{
		ID:           kernel.NewUUID(),
		WarehouseID:  kernel.NewUUID(),
		DispatcherID: kernel.NewUUID(),
		Now:          time.Now(),
	})
	suite.Require().NoError(err)

	total, err := kernel.NewMoneyFromCents(5600)
	suite.Require().NoError(err)
	for _, orderID := range orderIDs {
		suite.Require().NoError(testTrip.AddStop(orderID, total))
	}
	suite.Require().NoError(testTrip.Assign(time.Now()))

	return testTrip
}

func TestTripRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TripRepositoryIntegrationTestSuite))
}
