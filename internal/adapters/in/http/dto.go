package http

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator used by the HTTP server.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct tags on a bound request body.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// ItemRequest is one order line in a create or edit request.
// Prices travel as integer cents.
type ItemRequest struct {
	ProductID      string `json:"product_id" validate:"required,uuid"`
	SKU            string `json:"sku" validate:"required"`
	Name           string `json:"name" validate:"required"`
	UnitPriceCents int64  `json:"unit_price_cents" validate:"gte=0"`
	Quantity       int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	StoreID      string        `json:"store_id" validate:"required,uuid"`
	WarehouseID  string        `json:"warehouse_id" validate:"required,uuid"`
	AgentID      *string       `json:"agent_id,omitempty" validate:"omitempty,uuid"`
	Items        []ItemRequest `json:"items" validate:"required,min=1,dive"`
	Priority     bool          `json:"priority"`
	ScheduledFor *time.Time    `json:"scheduled_for,omitempty"`
}

// EditOrderRequest is the body of PUT /api/v1/orders/:id.
type EditOrderRequest struct {
	Items        []ItemRequest `json:"items" validate:"required,min=1,dive"`
	Priority     bool          `json:"priority"`
	ScheduledFor *time.Time    `json:"scheduled_for,omitempty"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:id/transitions.
type TransitionOrderRequest struct {
	Action      string  `json:"action" validate:"required"`
	Reason      string  `json:"reason,omitempty"`
	WarehouseID *string `json:"warehouse_id,omitempty" validate:"omitempty,uuid"`
	Notes       string  `json:"notes,omitempty"`
}

// CreateTripRequest is the body of POST /api/v1/trips.
type CreateTripRequest struct {
	WarehouseID     string     `json:"warehouse_id" validate:"required,uuid"`
	DispatcherID    string     `json:"dispatcher_id" validate:"required,uuid"`
	OrderIDs        []string   `json:"order_ids" validate:"required,min=1,dive,uuid"`
	Vehicle         *string    `json:"vehicle,omitempty"`
	DepartureAt     *time.Time `json:"departure_at,omitempty"`
	EstimatedReturn *time.Time `json:"estimated_return,omitempty"`
}

// EditTripRequest is the body of PUT /api/v1/trips/:id. Absent fields keep
// their current values.
type EditTripRequest struct {
	DispatcherID    *string    `json:"dispatcher_id,omitempty" validate:"omitempty,uuid"`
	Vehicle         *string    `json:"vehicle,omitempty"`
	DepartureAt     *time.Time `json:"departure_at,omitempty"`
	EstimatedReturn *time.Time `json:"estimated_return,omitempty"`
}

// TransitionTripRequest is the body of POST /api/v1/trips/:id/transitions.
type TransitionTripRequest struct {
	Action string `json:"action" validate:"required"`
}

// BulkTripDetails carries trip creation parameters for a create_trip bulk
// action.
type BulkTripDetails struct {
	WarehouseID     string     `json:"warehouse_id" validate:"required,uuid"`
	DispatcherID    string     `json:"dispatcher_id" validate:"required,uuid"`
	Vehicle         *string    `json:"vehicle,omitempty"`
	DepartureAt     *time.Time `json:"departure_at,omitempty"`
	EstimatedReturn *time.Time `json:"estimated_return,omitempty"`
}

// BulkRequest is the body of POST /api/v1/bulk.
type BulkRequest struct {
	Action      string           `json:"action" validate:"required"`
	OrderIDs    []string         `json:"order_ids" validate:"required,min=1,dive,uuid"`
	Reason      string           `json:"reason,omitempty"`
	WarehouseID *string          `json:"warehouse_id,omitempty" validate:"omitempty,uuid"`
	Trip        *BulkTripDetails `json:"trip,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// CreatedResponse returns the id of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// BulkFailureResponse is one failed target of a bulk action.
type BulkFailureResponse struct {
	OrderID string `json:"order_id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// BulkResponse summarizes a bulk action.
type BulkResponse struct {
	SuccessCount int                   `json:"success_count"`
	FailureCount int                   `json:"failure_count"`
	Failures     []BulkFailureResponse `json:"failures"`
}

// OrderStatsResponse is the status breakdown report.
type OrderStatsResponse struct {
	CountByStatus map[string]int `json:"count_by_status"`
	Total         int            `json:"total"`
}

// DailyTotalResponse is one day of the daily volume report.
type DailyTotalResponse struct {
	Day             string `json:"day"`
	OrderCount      int    `json:"order_count"`
	TotalValueCents int64  `json:"total_value_cents"`
}

// BalanceResponse reports how much of an order remains unpaid.
type BalanceResponse struct {
	OrderID        string `json:"order_id"`
	TotalCents     int64  `json:"total_cents"`
	PaidCents      int64  `json:"paid_cents"`
	RemainingCents int64  `json:"remaining_cents"`
}
