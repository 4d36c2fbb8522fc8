package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/santiagosuaza01/suaza-erp-system/internal/config"
	"github.com/santiagosuaza01/suaza-erp-system/internal/database"
	"github.com/santiagosuaza01/suaza-erp-system/internal/handler"
	mw "github.com/santiagosuaza01/suaza-erp-system/internal/middleware"
	"github.com/santiagosuaza01/suaza-erp-system/internal/service"
	"github.com/santiagosuaza01/suaza-erp-system/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Auth and role middleware are applied per route group.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:3000",
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket sale feed (handles auth internally via query param)
	r.Get("/ws/sales", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Transactional services share the pool; each builds its store from
	// whichever DBTX the transaction hands it.
	saleService := service.NewSaleService(pool, func(db database.DBTX) service.SaleStore {
		return database.New(db)
	})
	creditService := service.NewCreditService(pool, func(db database.DBTX) service.CreditStore {
		return database.New(db)
	})
	inventoryService := service.NewInventoryService(pool, func(db database.DBTX) service.InventoryStore {
		return database.New(db)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// User management (ADMIN only)
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole("ADMIN"))
			userHandler := handler.NewUserHandler(queries)
			r.Route("/users", userHandler.RegisterRoutes)
		})

		// Categories
		categoryHandler := handler.NewCategoryHandler(queries)
		r.Route("/categories", categoryHandler.RegisterRoutes)

		// Products and stock adjustments
		productHandler := handler.NewProductHandler(queries, inventoryService, hub)
		r.Route("/products", productHandler.RegisterRoutes)

		// Customers
		customerHandler := handler.NewCustomerHandler(queries)
		r.Route("/customers", customerHandler.RegisterRoutes)

		// Sales
		saleHandler := handler.NewSaleHandler(saleService, queries, hub)
		r.Route("/sales", saleHandler.RegisterRoutes)

		// Credits
		creditHandler := handler.NewCreditHandler(creditService, queries)
		r.Route("/credits", creditHandler.RegisterRoutes)

		// Inventory movement audit trail
		movementHandler := handler.NewMovementHandler(queries)
		r.Route("/inventory/movements", movementHandler.RegisterRoutes)

		// Reports
		reportsHandler := handler.NewReportsHandler(queries)
		r.Route("/reports", reportsHandler.RegisterRoutes)
	})

	return r
}
