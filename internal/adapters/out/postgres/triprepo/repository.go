package triprepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/trip"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTripRepository implements TripRepository using GORM.
type GormTripRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTripRepository creates a new GORM trip repository.
func NewGormTripRepository(db *gorm.DB, tracker aggregateTracker) *GormTripRepository {
	return &GormTripRepository{
		db:      db,
		tracker: tracker,
	}
}

// preloadStops loads assignments in delivery sequence.
func preloadStops(db *gorm.DB) *gorm.DB {
	return db.Order("sequence_no")
}

// Add saves a new trip to the database.
func (r *GormTripRepository) Add(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing trip to the database with the same version-checked
// write as the order repository. Stop rows are rewritten to match the
// aggregate since cancellation can void any subset of them.
func (r *GormTripRepository) Update(ctx context.Context, aggregate *trip.Trip) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&TripDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("Assignments", "id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStaleStateError("trip", aggregate.ID().String())
	}

	if err := r.replaceStops(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// replaceStops rewrites the assignment rows to match the aggregate.
func (r *GormTripRepository) replaceStops(ctx context.Context, dto TripDTO) error {
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", dto.ID).
		Delete(&AssignmentDTO{}).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto.Assignments).Error
}

// Get retrieves a trip by ID.
func (r *GormTripRepository) Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TripDTO
	err := r.db.WithContext(ctx).
		Preload("Assignments", preloadStops).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trip", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveOrderIDs retrieves the ids of every order bound through a non-void
// assignment to a trip that has not completed or been cancelled.
func (r *GormTripRepository) GetActiveOrderIDs(ctx context.Context) (map[kernel.UUID]bool, error) {
	rows, err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Select("trip_assignments.order_id").
		Joins("JOIN trips ON trips.id = trip_assignments.trip_id").
		Where("trips.status NOT IN ? AND trip_assignments.void = ?",
			[]int{int(trip.Completed), int(trip.Cancelled)}, false).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	active := make(map[kernel.UUID]bool)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}

		active[orderID] = true
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return active, nil
}

// GetActiveByOrderID retrieves the non-terminal trip holding a non-void
// assignment for the given order.
func (r *GormTripRepository) GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*trip.Trip, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TripDTO
	err := r.db.WithContext(ctx).
		Preload("Assignments", preloadStops).
		Joins("JOIN trip_assignments ON trip_assignments.trip_id = trips.id").
		Where("trip_assignments.order_id = ? AND trip_assignments.void = ?", orderID.Bytes(), false).
		Where("trips.status NOT IN ?", []int{int(trip.Completed), int(trip.Cancelled)}).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active trip for order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
