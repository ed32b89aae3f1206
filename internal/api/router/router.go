package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tayashahzad4-eng/Idea-validater/internal/api/handlers"
	"github.com/tayashahzad4-eng/Idea-validater/internal/api/middleware"
	"github.com/tayashahzad4-eng/Idea-validater/internal/config"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/metrics"
)

// Handlers bundles all HTTP handlers for route registration
type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Validation *handlers.ValidationHandler
	Billing    *handlers.BillingHandler
}

// New builds the HTTP router with all middleware and routes
func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(50, 100)) // 50 req/sec per IP, burst of 100
	r.Use(metrics.Middleware())

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())

		// Auth endpoints
		r.Post("/api/auth/signup", h.Auth.Signup)
		r.Post("/api/auth/login", h.Auth.Login)
		r.Post("/api/auth/refresh", h.Auth.Refresh)

		// Aliases for frontend compatibility
		r.Post("/api/signup", h.Auth.Signup)
		r.Post("/api/login", h.Auth.Login)

		// Stripe posts here; the signature header is the only auth.
		r.Post("/api/billing/webhook", h.Billing.Webhook)
		r.Post("/api/stripe/webhook", h.Billing.Webhook)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth.JWTSecret))

		r.Get("/api/auth/me", h.Auth.Me)
		r.Get("/api/me", h.Auth.Me)
		r.Post("/api/auth/logout", h.Auth.Logout)
		r.Post("/api/logout", h.Auth.Logout)

		r.Route("/api/validations", func(r chi.Router) {
			r.Post("/", h.Validation.Create)
			r.Get("/", h.Validation.List)
			r.Get("/{id}", h.Validation.Get)
		})
		// Alias used by the original frontend
		r.Post("/api/validate", h.Validation.Create)

		r.Post("/api/billing/create-checkout", h.Billing.CreateCheckout)
		r.Post("/api/stripe/create-checkout", h.Billing.CreateCheckout)
	})

	return r
}
