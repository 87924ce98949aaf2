// Package triprepo provides data transfer objects and mapping functions for trip persistence.
// This package implements the repository pattern for the trip domain aggregate, handling
// the conversion between domain entities and database representations.
package triprepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/trip"

	"github.com/google/uuid"
)

// TripDTO represents the database structure for persisting trip aggregates.
// Stop assignments live in their own table and are loaded in sequence order.
type TripDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID     uuid.UUID `gorm:"type:uuid;index"`
	DispatcherID    uuid.UUID `gorm:"type:uuid;index"`
	Vehicle         *string
	DepartureAt     *time.Time
	EstimatedReturn *time.Time
	Status          int             `gorm:"index"`
	Assignments     []AssignmentDTO `gorm:"foreignKey:TripID;references:ID;constraint:OnDelete:CASCADE"`
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for trip entities.
func (TripDTO) TableName() string {
	return "trips"
}

// AssignmentDTO represents one stop row belonging to a trip. The order status
// column mirrors the bound order and the order total is a snapshot in cents.
type AssignmentDTO struct {
	TripID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	SequenceNo  int       `gorm:"primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	OrderStatus int
	OrderTotal  int64
	Void        bool
}

// TableName specifies the database table name for trip stop assignments.
func (AssignmentDTO) TableName() string {
	return "trip_assignments"
}

// fromDomain converts a trip domain aggregate to its database representation.
func fromDomain(aggregate *trip.Trip) TripDTO {
	assignments := make([]AssignmentDTO, 0, len(aggregate.Assignments()))
	for _, a := range aggregate.Assignments() {
		assignments = append(assignments, AssignmentDTO{
			TripID:      aggregate.ID().Bytes(),
			SequenceNo:  a.SequenceNo(),
			OrderID:     a.OrderID().Bytes(),
			OrderStatus: int(a.Status()),
			OrderTotal:  a.OrderTotal().Cents(),
			Void:        a.IsVoid(),
		})
	}

	return TripDTO{
		ID:              aggregate.ID().Bytes(),
		WarehouseID:     aggregate.WarehouseID().Bytes(),
		DispatcherID:    aggregate.DispatcherID().Bytes(),
		Vehicle:         aggregate.Vehicle(),
		DepartureAt:     aggregate.DepartureAt(),
		EstimatedReturn: aggregate.EstimatedReturn(),
		Status:          int(aggregate.Status()),
		Assignments:     assignments,
		Version:         aggregate.Version(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a trip domain aggregate.
// Assignments must already be sorted by sequence number.
func toDomain(dto TripDTO) (*trip.Trip, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	dispatcherID, err := kernel.UUIDFromBytes(dto.DispatcherID[:])
	if err != nil {
		return nil, err
	}

	assignments := make([]trip.Assignment, 0, len(dto.Assignments))
	for _, aDTO := range dto.Assignments {
		orderID, aErr := kernel.UUIDFromBytes(aDTO.OrderID[:])
		if aErr != nil {
			return nil, aErr
		}

		orderTotal, aErr := kernel.NewMoneyFromCents(aDTO.OrderTotal)
		if aErr != nil {
			return nil, aErr
		}

		a, aErr := trip.RestoreAssignment(
			orderID, aDTO.SequenceNo, order.Status(aDTO.OrderStatus), orderTotal, aDTO.Void,
		)
		if aErr != nil {
			return nil, aErr
		}

		assignments = append(assignments, a)
	}

	return trip.RestoreTrip(trip.RestoreTripParams{
		ID:              id,
		WarehouseID:     warehouseID,
		DispatcherID:    dispatcherID,
		Vehicle:         dto.Vehicle,
		DepartureAt:     dto.DepartureAt,
		EstimatedReturn: dto.EstimatedReturn,
		Status:          trip.Status(dto.Status),
		Assignments:     assignments,
		Version:         dto.Version,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
	})
}
