package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/smartsort/inventory-backend/api/controllers"
	"github.com/smartsort/inventory-backend/api/middleware"
	"github.com/smartsort/inventory-backend/internal/inventory"
	"github.com/smartsort/inventory-backend/internal/reorder"
	"github.com/smartsort/inventory-backend/internal/suppliers"
	"github.com/smartsort/inventory-backend/pkg/config"
	"github.com/smartsort/inventory-backend/pkg/db"
	"github.com/smartsort/inventory-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP db.Pinger,
	inventoryService inventory.Service,
	supplierService suppliers.Service,
	reorderService reorder.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Get("/", controllers.InventoryList(inventoryService, logg))
		r.Post("/", controllers.InventoryReceive(inventoryService, logg))
		r.Post("/{itemID}/dispatch", controllers.InventoryDispatch(inventoryService, logg))
	})

	r.Route("/api/v1/suppliers", func(r chi.Router) {
		r.Get("/", controllers.SupplierList(supplierService, logg))
		r.Post("/", controllers.SupplierAdd(supplierService, logg))
		r.Delete("/{supplierID}", controllers.SupplierRemove(supplierService, logg))
	})

	r.Get("/api/v1/reorders", controllers.ReorderList(reorderService, logg))

	return r
}
