// Package http exposes the fulfillment workflow over a REST API. Handlers
// translate requests into commands and queries, resolve the caller's role
// through the identity provider, and map domain errors onto HTTP statuses.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/trip"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// actorHeader identifies the caller; the identity service resolves it to a
// workflow role.
const actorHeader = "X-Actor-ID"

const dayFormat = "2006-01-02"

// Server implements the REST API for orders, trips, bulk actions, and
// reports. It coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler     commands.CreateOrderCommandHandler
	editOrderHandler       commands.EditOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	createTripHandler      commands.CreateTripCommandHandler
	editTripHandler        commands.EditTripCommandHandler
	transitionTripHandler  commands.TransitionTripCommandHandler
	applyBulkHandler       commands.ApplyBulkCommandHandler

	orderStatsHandler   queries.GetOrderStatsQueryHandler
	dailyTotalsHandler  queries.GetDailyTotalsQueryHandler
	orderBalanceHandler queries.GetOrderBalanceQueryHandler

	roleProvider ports.RoleProvider
	metrics      *metrics.Metrics
}

// ServerParams carries the dependencies for NewServer.
type ServerParams struct {
	CreateOrderHandler     commands.CreateOrderCommandHandler
	EditOrderHandler       commands.EditOrderCommandHandler
	TransitionOrderHandler commands.TransitionOrderCommandHandler
	CreateTripHandler      commands.CreateTripCommandHandler
	EditTripHandler        commands.EditTripCommandHandler
	TransitionTripHandler  commands.TransitionTripCommandHandler
	ApplyBulkHandler       commands.ApplyBulkCommandHandler

	OrderStatsHandler   queries.GetOrderStatsQueryHandler
	DailyTotalsHandler  queries.GetDailyTotalsQueryHandler
	OrderBalanceHandler queries.GetOrderBalanceQueryHandler

	RoleProvider ports.RoleProvider
	Metrics      *metrics.Metrics
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(params ServerParams) *Server {
	return &Server{
		createOrderHandler:     params.CreateOrderHandler,
		editOrderHandler:       params.EditOrderHandler,
		transitionOrderHandler: params.TransitionOrderHandler,
		createTripHandler:      params.CreateTripHandler,
		editTripHandler:        params.EditTripHandler,
		transitionTripHandler:  params.TransitionTripHandler,
		applyBulkHandler:       params.ApplyBulkHandler,
		orderStatsHandler:      params.OrderStatsHandler,
		dailyTotalsHandler:     params.DailyTotalsHandler,
		orderBalanceHandler:    params.OrderBalanceHandler,
		roleProvider:           params.RoleProvider,
		metrics:                params.Metrics,
	}
}

// RegisterRoutes wires the API onto the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.PUT("/orders/:id", s.EditOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.GET("/orders/:id/balance", s.GetOrderBalance)
	api.POST("/trips", s.CreateTrip)
	api.PUT("/trips/:id", s.EditTrip)
	api.POST("/trips/:id/transitions", s.TransitionTrip)
	api.POST("/bulk", s.ApplyBulk)
	api.GET("/reports/order-stats", s.GetOrderStats)
	api.GET("/reports/daily-totals", s.GetDailyTotals)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return respondError(ctx, err)
	}
	warehouseID, err := kernel.UUIDFromString(req.WarehouseID)
	if err != nil {
		return respondError(ctx, err)
	}
	agentID, err := optionalUUID(req.AgentID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, storeID, warehouseID, agentID,
		toItemInputs(req.Items), req.Priority, req.ScheduledFor,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// EditOrder handles PUT /api/v1/orders/:id.
func (s *Server) EditOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req EditOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewEditOrderCommand(orderID, toItemInputs(req.Items), req.Priority, req.ScheduledFor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.editOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req TransitionOrderRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	role, err := s.resolveRole(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	payload := order.TransitionPayload{
		Reason: req.Reason,
		Notes:  req.Notes,
	}
	if req.WarehouseID != nil {
		warehouseID, parseErr := kernel.UUIDFromString(*req.WarehouseID)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		payload.WarehouseID = warehouseID
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, req.Action, role, payload)
	if err != nil {
		return respondError(ctx, err)
	}

	err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	s.metrics.ObserveOrderTransition(req.Action, err)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderBalance handles GET /api/v1/orders/:id/balance.
func (s *Server) GetOrderBalance(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderBalanceQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	balance, err := s.orderBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BalanceResponse{
		OrderID:        balance.OrderID.String(),
		TotalCents:     balance.Total.Cents(),
		PaidCents:      balance.Paid.Cents(),
		RemainingCents: balance.Remaining.Cents(),
	})
}

// CreateTrip handles POST /api/v1/trips.
func (s *Server) CreateTrip(ctx echo.Context) error {
	var req CreateTripRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	role, err := s.resolveRole(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	warehouseID, err := kernel.UUIDFromString(req.WarehouseID)
	if err != nil {
		return respondError(ctx, err)
	}
	dispatcherID, err := kernel.UUIDFromString(req.DispatcherID)
	if err != nil {
		return respondError(ctx, err)
	}
	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return respondError(ctx, err)
	}

	tripID := kernel.NewUUID()
	cmd, err := commands.NewCreateTripCommand(
		tripID, warehouseID, dispatcherID, orderIDs, role,
		req.Vehicle, req.DepartureAt, req.EstimatedReturn,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: tripID.String()})
}

// EditTrip handles PUT /api/v1/trips/:id.
func (s *Server) EditTrip(ctx echo.Context) error {
	tripID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req EditTripRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	dispatcherID, err := optionalUUID(req.DispatcherID)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewEditTripCommand(tripID, dispatcherID, req.Vehicle, req.DepartureAt, req.EstimatedReturn)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.editTripHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionTrip handles POST /api/v1/trips/:id/transitions.
func (s *Server) TransitionTrip(ctx echo.Context) error {
	tripID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req TransitionTripRequest
	if err = bindAndValidate(ctx, &req); err != nil {
		return err
	}

	role, err := s.resolveRole(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionTripCommand(tripID, req.Action, role)
	if err != nil {
		return respondError(ctx, err)
	}

	err = s.transitionTripHandler.Handle(ctx.Request().Context(), cmd)
	s.metrics.ObserveTripTransition(req.Action, err)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApplyBulk handles POST /api/v1/bulk.
func (s *Server) ApplyBulk(ctx echo.Context) error {
	var req BulkRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	role, err := s.resolveRole(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return respondError(ctx, err)
	}

	var warehouseID kernel.UUID
	if req.WarehouseID != nil {
		warehouseID, err = kernel.UUIDFromString(*req.WarehouseID)
		if err != nil {
			return respondError(ctx, err)
		}
	}

	var tripDetails *commands.TripDetails
	if req.Trip != nil {
		tripWarehouseID, parseErr := kernel.UUIDFromString(req.Trip.WarehouseID)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		dispatcherID, parseErr := kernel.UUIDFromString(req.Trip.DispatcherID)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		tripDetails = &commands.TripDetails{
			TripID:          kernel.NewUUID(),
			WarehouseID:     tripWarehouseID,
			DispatcherID:    dispatcherID,
			Vehicle:         req.Trip.Vehicle,
			DepartureAt:     req.Trip.DepartureAt,
			EstimatedReturn: req.Trip.EstimatedReturn,
		}
	}

	cmd, err := commands.NewApplyBulkCommand(req.Action, orderIDs, role, req.Reason, warehouseID, tripDetails)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.applyBulkHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	s.metrics.ObserveBulkTargets(req.Action, result.SuccessCount, result.FailureCount)

	response := BulkResponse{
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
		Failures:     make([]BulkFailureResponse, 0, len(result.Failures)),
	}
	for _, failure := range result.Failures {
		response.Failures = append(response.Failures, BulkFailureResponse{
			OrderID: failure.OrderID.String(),
			Kind:    failure.ErrorKind,
			Message: failure.Message,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderStats handles GET /api/v1/reports/order-stats.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	var warehouseID *kernel.UUID
	if raw := ctx.QueryParam("warehouse_id"); raw != "" {
		parsed, err := kernel.UUIDFromString(raw)
		if err != nil {
			return respondError(ctx, err)
		}
		warehouseID = &parsed
	}

	query, err := queries.NewGetOrderStatsQuery(warehouseID)
	if err != nil {
		return respondError(ctx, err)
	}

	stats, err := s.orderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := OrderStatsResponse{
		CountByStatus: make(map[string]int, len(stats.CountByStatus)),
		Total:         stats.Total,
	}
	for status, count := range stats.CountByStatus {
		response.CountByStatus[status.String()] = count
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDailyTotals handles GET /api/v1/reports/daily-totals.
// Expects from and to as YYYY-MM-DD; the range is half-open.
func (s *Server) GetDailyTotals(ctx echo.Context) error {
	from, err := time.Parse(dayFormat, ctx.QueryParam("from"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("from", err))
	}
	to, err := time.Parse(dayFormat, ctx.QueryParam("to"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("to", err))
	}

	query, err := queries.NewGetDailyTotalsQuery(from, to)
	if err != nil {
		return respondError(ctx, err)
	}

	totals, err := s.dailyTotalsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]DailyTotalResponse, 0, len(totals))
	for _, total := range totals {
		response = append(response, DailyTotalResponse{
			Day:             total.Day.Format(dayFormat),
			OrderCount:      total.OrderCount,
			TotalValueCents: total.TotalValue.Cents(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// resolveRole resolves the caller's workflow role from the actor header.
func (s *Server) resolveRole(ctx echo.Context) (kernel.Role, error) {
	raw := ctx.Request().Header.Get(actorHeader)
	if raw == "" {
		return kernel.RoleUnknown, errs.NewValueIsRequiredError(actorHeader + " header")
	}

	actorID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.RoleUnknown, err
	}

	return s.roleProvider.GetRole(ctx.Request().Context(), actorID)
}

// bindAndValidate binds the request body and runs struct validation,
// responding with a validation error on failure.
func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Kind:    commands.ErrorKindValidation,
			Message: "invalid request body",
		})
	}
	if err := ctx.Validate(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Kind:    commands.ErrorKindValidation,
			Message: err.Error(),
		})
	}
	return nil
}

// respondError maps a domain error onto an HTTP status and uniform body.
func respondError(ctx echo.Context, err error) error {
	status, kind := classify(err)
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Kind:    kind,
		Message: err.Error(),
	})
}

// classify maps domain errors onto HTTP statuses and reporting kinds,
// mirroring the bulk handler's error taxonomy.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, commands.ErrorKindNotFound
	case errors.Is(err, errs.ErrStaleState):
		return http.StatusConflict, commands.ErrorKindStaleState
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, trip.ErrInvalidTransition):
		return http.StatusConflict, commands.ErrorKindInvalidTransition
	case errors.Is(err, services.ErrOrdersNotEligible),
		errors.Is(err, trip.ErrNotReady),
		errors.Is(err, order.ErrNotEditable),
		errors.Is(err, trip.ErrNotEditable):
		return http.StatusConflict, commands.ErrorKindConflict
	case errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, commands.ErrorKindValidation
	default:
		return http.StatusInternalServerError, commands.ErrorKindInternal
	}
}

// toItemInputs converts request lines into command inputs.
func toItemInputs(items []ItemRequest) []commands.ItemInput {
	inputs := make([]commands.ItemInput, 0, len(items))
	for _, item := range items {
		productID, err := kernel.UUIDFromString(item.ProductID)
		if err != nil {
			// Tag validation already rejected malformed ids
			continue
		}
		inputs = append(inputs, commands.ItemInput{
			ProductID:      productID,
			SKU:            item.SKU,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
	}
	return inputs
}

// optionalUUID parses a nullable uuid string, mapping absence to nil.
func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseUUIDs converts a validated list of uuid strings.
func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
