package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"hearthwick-api/internal/handler"
	"hearthwick-api/internal/middleware"
)

// Config holds the configuration for creating a router.
type Config struct {
	HealthHandler         *handler.HealthHandler
	InventoryHandler      *handler.InventoryHandler
	PromoHandler          *handler.PromoHandler
	OrderHandler          *handler.OrderHandler
	AdminAuthHandler      *handler.AdminAuthHandler
	AdminInventoryHandler *handler.AdminInventoryHandler
	AdminPromoHandler     *handler.AdminPromoHandler
	AdminMediaHandler     *handler.AdminMediaHandler
	AdminAuth             func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC storefront routes (no auth)
	if cfg.HealthHandler != nil {
		r.Get("/api/status", cfg.HealthHandler.Status)
	}
	if cfg.InventoryHandler != nil {
		r.Get("/api/inventory", cfg.InventoryHandler.GetAvailability)
	}
	if cfg.PromoHandler != nil {
		r.Post("/api/promo/validate", cfg.PromoHandler.Validate)
	}
	if cfg.OrderHandler != nil {
		r.Post("/api/orders", cfg.OrderHandler.Submit)
		r.Post("/api/contact", cfg.OrderHandler.Contact)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.HealthHandler != nil {
			r.Get("/health", cfg.HealthHandler.Health)
		}

		// Login and the session probe stay outside the auth gate.
		if cfg.AdminAuthHandler != nil {
			r.Post("/admin/login", cfg.AdminAuthHandler.Login)
			r.Get("/admin/session", cfg.AdminAuthHandler.Session)
		}

		// AUTHENTICATED admin routes
		r.Route("/admin", func(r chi.Router) {
			if cfg.AdminAuth != nil {
				r.Use(cfg.AdminAuth)
			}

			if cfg.AdminAuthHandler != nil {
				r.Post("/logout", cfg.AdminAuthHandler.Logout)
			}
			if cfg.AdminInventoryHandler != nil {
				r.Get("/inventory", cfg.AdminInventoryHandler.List)
				r.Put("/inventory", cfg.AdminInventoryHandler.Update)
			}
			if cfg.AdminPromoHandler != nil {
				r.Route("/promos", func(r chi.Router) {
					r.Get("/", cfg.AdminPromoHandler.List)
					r.Post("/", cfg.AdminPromoHandler.Create)
					r.Put("/{code}", cfg.AdminPromoHandler.Update)
					r.Delete("/{code}", cfg.AdminPromoHandler.Delete)
				})
			}
			if cfg.AdminMediaHandler != nil {
				r.Get("/media", cfg.AdminMediaHandler.List)
				r.Post("/media", cfg.AdminMediaHandler.Upload)
				r.Delete("/media/*", cfg.AdminMediaHandler.Delete)
			}
		})
	})

	return r
}
