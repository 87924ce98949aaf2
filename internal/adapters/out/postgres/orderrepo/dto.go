// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status, warehouse, and scheduled release time.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StoreID      uuid.UUID  `gorm:"type:uuid;index"`
	WarehouseID  uuid.UUID  `gorm:"type:uuid;index"`
	AgentID      *uuid.UUID `gorm:"type:uuid"`
	Status       int        `gorm:"index"`
	StatusReason string
	Priority     bool
	ScheduledFor *time.Time `gorm:"index"`
	Subtotal     int64
	Tax          int64
	Total        int64
	Items        []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one line item row belonging to an order.
// The unit price snapshot is stored in cents alongside the catalog identity.
type OrderItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU       string
	Name      string
	UnitPrice int64
	Quantity  int
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Line items become child rows keyed by the order id.
func fromDomain(aggregate *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := aggregate.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			SKU:       item.SKU(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Cents(),
			Quantity:  item.Quantity(),
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		StoreID:      aggregate.StoreID().Bytes(),
		WarehouseID:  aggregate.WarehouseID().Bytes(),
		AgentID:      agentID,
		Status:       int(aggregate.Status()),
		StatusReason: aggregate.StatusReason(),
		Priority:     aggregate.Priority(),
		ScheduledFor: aggregate.ScheduledFor(),
		Subtotal:     aggregate.Subtotal().Cents(),
		Tax:          aggregate.Tax().Cents(),
		Total:        aggregate.Total().Cents(),
		Items:        items,
		Version:      aggregate.Version(),
		CreatedAt:    aggregate.CreatedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including line items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		unitPrice, itemErr := kernel.NewMoneyFromCents(itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.SKU, itemDTO.Name, unitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}

		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:           id,
		StoreID:      storeID,
		WarehouseID:  warehouseID,
		AgentID:      agentID,
		Status:       order.Status(dto.Status),
		Priority:     dto.Priority,
		ScheduledFor: dto.ScheduledFor,
		StatusReason: dto.StatusReason,
		Items:        items,
		Version:      dto.Version,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}
