package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmarroquin/gearbox-backend/api/routes"
	"github.com/dmarroquin/gearbox-backend/internal/catalog"
	"github.com/dmarroquin/gearbox-backend/internal/customers"
	"github.com/dmarroquin/gearbox-backend/internal/dashboard"
	"github.com/dmarroquin/gearbox-backend/internal/inventory"
	"github.com/dmarroquin/gearbox-backend/internal/serviceitems"
	"github.com/dmarroquin/gearbox-backend/internal/vehicles"
	"github.com/dmarroquin/gearbox-backend/internal/workers"
	"github.com/dmarroquin/gearbox-backend/internal/workorders"
	"github.com/dmarroquin/gearbox-backend/pkg/config"
	"github.com/dmarroquin/gearbox-backend/pkg/db"
	"github.com/dmarroquin/gearbox-backend/pkg/logger"
	"github.com/dmarroquin/gearbox-backend/pkg/metrics"
	"github.com/dmarroquin/gearbox-backend/pkg/migrate"
	"github.com/dmarroquin/gearbox-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()

	workOrderService, err := workorders.NewService(
		workorders.NewRepository(gormDB),
		dbClient,
		catalog.NewResolver(),
		logg,
	)
	requireService(logg, "work orders", err)

	customerService, err := customers.NewService(customers.NewRepository(gormDB))
	requireService(logg, "customers", err)

	vehicleService, err := vehicles.NewService(vehicles.NewRepository(gormDB))
	requireService(logg, "vehicles", err)

	inventoryService, err := inventory.NewService(inventory.NewRepository(gormDB))
	requireService(logg, "inventory", err)

	serviceItemService, err := serviceitems.NewService(serviceitems.NewRepository(gormDB))
	requireService(logg, "services", err)

	workerService, err := workers.NewService(workers.NewRepository(gormDB))
	requireService(logg, "workers", err)

	dashboardService, err := dashboard.NewService(
		dashboard.NewRepository(gormDB),
		redisClient,
		cfg.Dashboard.SummaryCacheTTL,
		logg,
	)
	requireService(logg, "dashboard", err)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, promRegistry, routes.Services{
			WorkOrders:   workOrderService,
			Customers:    customerService,
			Vehicles:     vehicleService,
			Inventory:    inventoryService,
			ServiceItems: serviceItemService,
			Workers:      workerService,
			Dashboard:    dashboardService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
