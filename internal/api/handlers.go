package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/bulletin-lectionary/internal/bulletin"
	"github.com/zapponejosh/bulletin-lectionary/internal/calendar"
	"github.com/zapponejosh/bulletin-lectionary/internal/config"
	"github.com/zapponejosh/bulletin-lectionary/internal/logger"
)

// CachePurger removes expired cache entries.
type CachePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// HealthChecker reports whether a backing store is usable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps are the collaborators behind the handlers. Purger and Health may be
// nil when the cache lives in memory.
type Deps struct {
	Calendar bulletin.CalendarSource
	Readings bulletin.ReadingsSource
	Purger   CachePurger
	Health   HealthChecker
}

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	calendar bulletin.CalendarSource
	resolver *bulletin.Resolver
	purger   CachePurger
	health   HealthChecker
	cfg      *config.Config
	logger   *slog.Logger
	now      func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps Deps, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		calendar: deps.Calendar,
		resolver: bulletin.NewResolver(deps.Calendar, deps.Readings),
		purger:   deps.Purger,
		health:   deps.Health,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cache := "memory"
	if h.health != nil {
		cache = "sqlite"
		if err := h.health.Health(ctx); err != nil {
			logger.With(ctx, h.logger).Warn("health check failed", slog.Any("error", err))
			WriteUnavailable(w, "Cache database unhealthy")
			return
		}
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
		"cache":  cache,
	})
}

// GetCalendar handles GET /api/calendar/{date}
func (h *Handlers) GetCalendar(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, h.calendar.Info(r.Context(), date))
}

// GetTodayLectionary handles GET /api/lectionary/today
func (h *Handlers) GetTodayLectionary(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.resolver.Day(r.Context(), h.now()))
}

// GetDateLectionary handles GET /api/lectionary/{date}
func (h *Handlers) GetDateLectionary(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, h.resolver.Day(r.Context(), date))
}

// GetRangeLectionary handles GET /api/lectionary/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRangeLectionary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	startDate, err := calendar.ParseDateString(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}

	endDate, err := calendar.ParseDateString(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return
	}

	if startDate.After(endDate) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	if bulletin.RangeDays(startDate, endDate) > bulletin.MaxRangeDays {
		WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", bulletin.MaxRangeDays))
		return
	}

	days, err := h.resolver.Range(ctx, startDate, endDate)
	if err != nil {
		logger.With(ctx, h.logger).Warn("range lookup aborted", slog.Any("error", err))
		WriteUnavailable(w, "Request cancelled")
		return
	}

	WriteSuccess(w, map[string]any{
		"start": calendar.FormatDate(startDate),
		"end":   calendar.FormatDate(endDate),
		"days":  days,
	})
}

// GetBulletinFields handles GET /api/bulletin/{date}/fields
func (h *Handlers) GetBulletinFields(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, h.resolver.Day(r.Context(), date).Fields())
}

// PurgeCache handles POST /api/admin/cache/purge
func (h *Handlers) PurgeCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.purger == nil {
		WriteSuccess(w, map[string]any{"removed": 0, "cache": "memory"})
		return
	}

	removed, err := h.purger.PurgeExpired(ctx)
	if err != nil {
		logger.With(ctx, h.logger).Error("cache purge failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to purge cache")
		return
	}

	WriteSuccess(w, map[string]any{"removed": removed, "cache": "sqlite"})
}

// pathDate parses the {date} URL parameter, writing a 400 on failure.
func (h *Handlers) pathDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := chi.URLParam(r, "date")
	if dateStr == "" {
		WriteBadRequest(w, "Date parameter is required")
		return time.Time{}, false
	}

	date, err := calendar.ParseDateString(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return time.Time{}, false
	}
	return date, true
}
