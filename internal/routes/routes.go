// internal/routes/routes.go
package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"assistant-backend/internal/handlers"
	"assistant-backend/internal/middleware"
	"assistant-backend/internal/services"
)

type Handlers struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Process *handlers.ProcessHandler
	Usage   *handlers.UsageHandler
	Admin   *handlers.AdminHandler
}

type Dependencies struct {
	AuthService   services.AuthService
	AccountLoader middleware.AccountLoader
	CORSOrigin    string
}

func SetupRoutes(h *Handlers, deps *Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger())
	r.Use(middleware.Recoverer())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.Timeout(90 * time.Second))
	r.Use(middleware.CORS(deps.CORSOrigin))
	r.Use(middleware.Metrics())

	// Health check routes
	r.Get("/", h.Health.HealthCheck)
	r.Get("/health", h.Health.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no authentication required)
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", h.Auth.Register)
			r.Post("/auth/login", h.Auth.Login)
		})

		// Protected routes (authentication required)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.AuthService, deps.AccountLoader))

			// Metered content processing
			r.Post("/process/{modality}", h.Process.ProcessContent)

			// Usage reporting and advisory pre-checks
			r.Route("/usage", func(r chi.Router) {
				r.Get("/analytics", h.Usage.GetAnalytics)
				r.Get("/limits", h.Usage.GetLimits)
				r.Get("/privileges", h.Usage.GetPrivileges)
				r.Get("/check-request/{modality}", h.Usage.CheckRequest)
				r.Post("/check-tokens", h.Usage.CheckTokens)
			})

			// Admin surface: role gate here, permission gates in the
			// admin service.
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly())

				r.Get("/accounts", h.Admin.ListAccounts)
				r.Get("/accounts/{userId}/analytics", h.Admin.GetAccountAnalytics)
				r.Put("/accounts/{userId}/settings", h.Admin.UpdateUserSettings)
				r.Put("/accounts/{userId}/admin-settings", h.Admin.UpdateAdminSettings)
				r.Put("/accounts/{userId}/active", h.Admin.SetActive)
				r.Get("/activity", h.Admin.GetActivity)
			})
		})
	})

	return r
}
