package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// StockLevelProvider supplies product availability from the inventory
// system. Implementations may cache; levels are advisory and can be stale.
type StockLevelProvider interface {
	// GetStockLevels returns the availability of the given products at one
	// warehouse, keyed by product id. Products unknown to the inventory
	// system are omitted from the result; the stock gate treats a missing
	// record the same as zero availability.
	GetStockLevels(
		ctx context.Context, warehouseID kernel.UUID, productIDs []kernel.UUID,
	) (map[kernel.UUID]services.StockLevel, error)
}

// BalanceProvider supplies the paid amount recorded against an order by the
// payment system. Used to derive the remaining balance on order views.
type BalanceProvider interface {
	// GetPaidAmount returns the total amount paid against the order.
	// Orders with no recorded payments return zero.
	GetPaidAmount(ctx context.Context, orderID kernel.UUID) (kernel.Money, error)
}

// OrderExporter hands order snapshots to the external export system, which
// owns document rendering. Submission is per order so bulk export reports
// per-target outcomes.
type OrderExporter interface {
	// Export submits one order for export.
	Export(ctx context.Context, o *order.Order) error
}

// RoleProvider resolves an actor's workflow role from the identity system.
type RoleProvider interface {
	// GetRole returns the role of the given actor.
	// Unknown actors fail with errs.ErrObjectNotFound.
	GetRole(ctx context.Context, actorID kernel.UUID) (kernel.Role, error)
}
