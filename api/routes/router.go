package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmarroquin/gearbox-backend/api/controllers"
	"github.com/dmarroquin/gearbox-backend/api/middleware"
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
	"github.com/dmarroquin/gearbox-backend/pkg/redis"
)

// Services groups the wired application services the router exposes.
type Services struct {
	WorkOrders   workorders.Service
	Customers    customers.Service
	Vehicles     vehicles.Service
	Inventory    inventory.Service
	ServiceItems serviceitems.Service
	Workers      workers.Service
	Dashboard    dashboard.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/work-orders", func(r chi.Router) {
			r.Get("/", controllers.ListWorkOrders(svcs.WorkOrders, logg))
			r.Post("/", controllers.CreateWorkOrder(svcs.WorkOrders, logg))
			r.Get("/{id}", controllers.GetWorkOrder(svcs.WorkOrders, logg))
			r.Put("/{id}", controllers.UpdateWorkOrder(svcs.WorkOrders, logg))
			r.Delete("/{id}", controllers.DeleteWorkOrder(svcs.WorkOrders, logg))
			r.Post("/{id}/complete", controllers.CompleteWorkOrder(svcs.WorkOrders, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
			r.Post("/", controllers.CreateCustomer(svcs.Customers, logg))
			r.Get("/{id}", controllers.GetCustomer(svcs.Customers, logg))
			r.Put("/{id}", controllers.UpdateCustomer(svcs.Customers, logg))
			r.Delete("/{id}", controllers.DeleteCustomer(svcs.Customers, logg))
		})

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", controllers.ListVehicles(svcs.Vehicles, logg))
			r.Post("/", controllers.CreateVehicle(svcs.Vehicles, logg))
			r.Get("/{id}", controllers.GetVehicle(svcs.Vehicles, logg))
			r.Put("/{id}", controllers.UpdateVehicle(svcs.Vehicles, logg))
			r.Delete("/{id}", controllers.DeleteVehicle(svcs.Vehicles, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventoryItems(svcs.Inventory, logg))
			r.Post("/", controllers.CreateInventoryItem(svcs.Inventory, logg))
			r.Get("/{id}", controllers.GetInventoryItem(svcs.Inventory, logg))
			r.Put("/{id}", controllers.UpdateInventoryItem(svcs.Inventory, logg))
			r.Delete("/{id}", controllers.DeleteInventoryItem(svcs.Inventory, logg))
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", controllers.ListServiceItems(svcs.ServiceItems, logg))
			r.Post("/", controllers.CreateServiceItem(svcs.ServiceItems, logg))
			r.Get("/{id}", controllers.GetServiceItem(svcs.ServiceItems, logg))
			r.Put("/{id}", controllers.UpdateServiceItem(svcs.ServiceItems, logg))
			r.Delete("/{id}", controllers.DeleteServiceItem(svcs.ServiceItems, logg))
		})

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", controllers.ListWorkers(svcs.Workers, logg))
			r.Post("/", controllers.CreateWorker(svcs.Workers, logg))
			r.Get("/{id}", controllers.GetWorker(svcs.Workers, logg))
			r.Put("/{id}", controllers.UpdateWorker(svcs.Workers, logg))
			r.Delete("/{id}", controllers.DeleteWorker(svcs.Workers, logg))
		})

		r.Get("/dashboard/summary", controllers.DashboardSummary(svcs.Dashboard, logg))
	})

	return r
}
