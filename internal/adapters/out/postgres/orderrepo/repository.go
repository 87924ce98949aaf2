package orderrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database. The write is guarded by the
// version the aggregate carried at load time: when another transaction got
// there first, no rows match and the update fails with errs.StaleStateError.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("Items", "id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStaleStateError("order", aggregate.ID().String())
	}

	if err := r.replaceItems(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// replaceItems rewrites the line item rows to match the aggregate.
func (r *GormOrderRepository) replaceItems(ctx context.Context, dto OrderDTO) error {
	err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Delete(&OrderItemDTO{}).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto.Items).Error
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStatus retrieves all orders in the given status, optionally
// narrowed to one warehouse.
func (r *GormOrderRepository) GetAllInStatus(
	ctx context.Context,
	status order.Status,
	warehouseID *kernel.UUID,
) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Preload("Items").Where("status = ?", int(status))
	if warehouseID != nil {
		if err := warehouseID.Validate(); err != nil {
			return nil, err
		}
		query = query.Where("warehouse_id = ?", warehouseID.Bytes())
	}

	var dtos []OrderDTO
	if err := query.Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetDueScheduled retrieves non-priority Pending orders whose scheduled
// fulfillment time is at or before the given moment.
func (r *GormOrderRepository) GetDueScheduled(ctx context.Context, until time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ? AND priority = ? AND scheduled_for IS NOT NULL AND scheduled_for <= ?",
			int(order.Pending), false, until).
		Order("scheduled_for").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
