package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/bulletin-lectionary/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET  /health
//	GET  /api/calendar/{date}
//	GET  /api/lectionary/today
//	GET  /api/lectionary/range?start=&end=
//	GET  /api/lectionary/{date}
//	GET  /api/bulletin/{date}/fields
//	POST /api/admin/cache/purge        (X-API-Key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteMethodNotAllowed(w, "Method not allowed")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/calendar/{date}", handlers.GetCalendar)

		r.Route("/lectionary", func(r chi.Router) {
			r.Get("/today", handlers.GetTodayLectionary)
			r.Get("/range", handlers.GetRangeLectionary)
			r.Get("/{date}", handlers.GetDateLectionary)
		})

		r.Get("/bulletin/{date}/fields", handlers.GetBulletinFields)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))
			r.Post("/admin/cache/purge", handlers.PurgeCache)
		})
	})

	return r
}
