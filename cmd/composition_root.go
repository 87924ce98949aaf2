package cmd

import (
	"fmt"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/billing"
	"fulfillment/internal/adapters/out/export"
	"fulfillment/internal/adapters/out/identity"
	"fulfillment/internal/adapters/out/inventory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/metrics"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	stockProvider   ports.StockLevelProvider
	balanceProvider ports.BalanceProvider
	roleProvider    ports.RoleProvider
	orderExporter   ports.OrderExporter

	metrics *metrics.Metrics
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	var cache *redis.Client
	if config.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	}

	stockProvider, err := inventory.NewClient(config.InventoryBaseURL, nil, cache)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("inventory client: %w", err)
	}
	balanceProvider, err := billing.NewClient(config.BillingBaseURL, nil)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("billing client: %w", err)
	}
	roleProvider, err := identity.NewClient(config.IdentityBaseURL, nil, cache)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("identity client: %w", err)
	}
	orderExporter, err := export.NewClient(config.ExportBaseURL, nil)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("export client: %w", err)
	}

	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		stockProvider:   stockProvider,
		balanceProvider: balanceProvider,
		roleProvider:    roleProvider,
		orderExporter:   orderExporter,
		metrics:         metrics.New(),
	}, nil
}

func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.stockProvider)
}

func (c *CompositionRoot) CreateEditOrderCommandHandler() commands.EditOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditOrderCommandHandler(f, c.stockProvider)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateTripCommandHandler() commands.CreateTripCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTripCommandHandler(f)
}

func (c *CompositionRoot) CreateEditTripCommandHandler() commands.EditTripCommandHandler {
	var f commands.TripUoWFactory = FuncTripUoWFactory(func() commands.TripUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditTripCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionTripCommandHandler() commands.TransitionTripCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionTripCommandHandler(f)
}

func (c *CompositionRoot) CreateApplyBulkCommandHandler() commands.ApplyBulkCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyBulkCommandHandler(
		c.CreateTransitionOrderCommandHandler(),
		c.CreateCreateTripCommandHandler(),
		f,
		c.orderExporter,
	)
}

func (c *CompositionRoot) CreateReleaseScheduledOrdersCommandHandler() commands.ReleaseScheduledOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseScheduledOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDailyTotalsQueryHandler() queries.GetDailyTotalsQueryHandler {
	return queries.NewGetDailyTotalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderBalanceQueryHandler() queries.GetOrderBalanceQueryHandler {
	return queries.NewGetOrderBalanceQueryHandler(c.gormDB, c.balanceProvider)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.ServerParams{
		CreateOrderHandler:     c.CreateCreateOrderCommandHandler(),
		EditOrderHandler:       c.CreateEditOrderCommandHandler(),
		TransitionOrderHandler: c.CreateTransitionOrderCommandHandler(),
		CreateTripHandler:      c.CreateCreateTripCommandHandler(),
		EditTripHandler:        c.CreateEditTripCommandHandler(),
		TransitionTripHandler:  c.CreateTransitionTripCommandHandler(),
		ApplyBulkHandler:       c.CreateApplyBulkCommandHandler(),
		OrderStatsHandler:      c.CreateGetOrderStatsQueryHandler(),
		DailyTotalsHandler:     c.CreateGetDailyTotalsQueryHandler(),
		OrderBalanceHandler:    c.CreateGetOrderBalanceQueryHandler(),
		RoleProvider:           c.roleProvider,
		Metrics:                c.metrics,
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTripUoWFactory func() commands.TripUoW

func (f FuncTripUoWFactory) Create() commands.TripUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
