package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/zapponejosh/bulletin-lectionary/internal/calendar"
	"github.com/zapponejosh/bulletin-lectionary/internal/config"
	"github.com/zapponejosh/bulletin-lectionary/internal/database"
	"github.com/zapponejosh/bulletin-lectionary/internal/lectionary"
)

// =============================================================================
// TEST SETUP HELPERS
// =============================================================================

// testEnv holds a router wired to real collaborators.
type testEnv struct {
	db       *database.DB
	cache    *database.Cache
	cfg      *config.Config
	handlers *Handlers
	router   http.Handler
	apiKey   string
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTest creates a fresh environment backed by an in-memory SQLite cache
// and the built-in calendar and reading table.
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	log := quietLogger()

	db, err := database.Open(database.DefaultConfig(database.MemoryPath), log)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cache := database.NewCache(db)
	apiKey := "admin-test-key"
	cfg := &config.Config{
		Port:      8080,
		Env:       config.EnvStaging,
		APIKey:    apiKey,
		LogLevel:  "error",
		LogFormat: "text",
	}

	readings := lectionary.NewService(lectionary.Options{
		Cache:   cache,
		Builtin: lectionary.DefaultBuiltinTable(),
		Logger:  log,
	})

	handlers := NewHandlers(Deps{
		Calendar: calendar.NewProvider(nil, log),
		Readings: readings,
		Purger:   cache,
		Health:   db,
	}, cfg, log)

	return &testEnv{
		db:       db,
		cache:    cache,
		cfg:      cfg,
		handlers: handlers,
		router:   SetupRoutes(handlers, cfg, log),
		apiKey:   apiKey,
	}
}

// do sends a request through the full router.
func (env *testEnv) do(method, path, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// envelope mirrors Response with a typed payload.
type envelope[T any] struct {
	Success bool       `json:"success"`
	Data    T          `json:"data"`
	Error   *ErrorInfo `json:"error"`
}

// parseResponse parses JSON response
func parseResponse(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v, body: %s", err, rr.Body.String())
	}
}

// calendarPayload is the JSON form of calendar.LiturgicalDate.
type calendarPayload struct {
	Date           string `json:"date"`
	DayName        string `json:"day_name"`
	Season         string `json:"season"`
	Color          string `json:"color"`
	RCLYear        string `json:"rcl_year"`
	LectionaryYear string `json:"lectionary_year"`
	LiturgicalYear int    `json:"liturgical_year"`
	EasterDate     string `json:"easter_date"`
	IsSunday       bool   `json:"is_sunday"`
	Source         string `json:"source"`
}

type dayPayload struct {
	Date     string            `json:"date"`
	Calendar calendarPayload   `json:"calendar"`
	Readings lectionary.Result `json:"readings"`
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

func TestHealthCheck(t *testing.T) {
	env := setupTest(t)

	rr := env.do("GET", "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp envelope[map[string]string]
	parseResponse(t, rr, &resp)
	if resp.Data["status"] != "healthy" || resp.Data["cache"] != "sqlite" {
		t.Errorf("Data = %v, want healthy sqlite", resp.Data)
	}
}

func TestGetCalendar(t *testing.T) {
	env := setupTest(t)

	rr := env.do("GET", "/api/calendar/2026-01-25", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d; body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp envelope[calendarPayload]
	parseResponse(t, rr, &resp)

	got := resp.Data
	if got.Season != "epiphany" || got.Color != "Green" {
		t.Errorf("Season/Color = %s/%s, want epiphany/Green", got.Season, got.Color)
	}
	if got.RCLYear != "A" || got.LiturgicalYear != 2025 {
		t.Errorf("RCLYear/LiturgicalYear = %s/%d, want A/2025", got.RCLYear, got.LiturgicalYear)
	}
	if got.DayName != "The Third Sunday after the Epiphany" {
		t.Errorf("DayName = %q", got.DayName)
	}
	if !got.IsSunday || got.EasterDate != "2026-04-05" {
		t.Errorf("IsSunday/EasterDate = %v/%s, want true/2026-04-05", got.IsSunday, got.EasterDate)
	}
}

func TestGetDateLectionary_BuiltinThenCache(t *testing.T) {
	env := setupTest(t)

	wantSources := []lectionary.Tier{lectionary.TierBuiltin, lectionary.TierCache}
	for i, want := range wantSources {
		rr := env.do("GET", "/api/lectionary/2026-01-25", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: Status = %d, want %d", i, rr.Code, http.StatusOK)
		}

		var resp envelope[dayPayload]
		parseResponse(t, rr, &resp)

		if resp.Data.Readings.Source != want {
			t.Errorf("request %d: Source = %s, want %s", i, resp.Data.Readings.Source, want)
		}
		if resp.Data.Readings.Readings.FirstLesson != "Isaiah 9:1-4" {
			t.Errorf("request %d: FirstLesson = %q, want %q", i, resp.Data.Readings.Readings.FirstLesson, "Isaiah 9:1-4")
		}
		if resp.Data.Calendar.Season != "epiphany" {
			t.Errorf("request %d: Season = %q", i, resp.Data.Calendar.Season)
		}
	}
}

func TestGetTodayLectionary(t *testing.T) {
	env := setupTest(t)
	env.handlers.now = func() time.Time {
		return time.Date(2025, time.December, 25, 9, 0, 0, 0, time.UTC)
	}

	rr := env.do("GET", "/api/lectionary/today", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp envelope[dayPayload]
	parseResponse(t, rr, &resp)

	if resp.Data.Date != "2025-12-25" {
		t.Errorf("Date = %q, want %q", resp.Data.Date, "2025-12-25")
	}
	if resp.Data.Calendar.Season != "christmas" || resp.Data.Calendar.Color != "White" {
		t.Errorf("Season/Color = %s/%s, want christmas/White", resp.Data.Calendar.Season, resp.Data.Calendar.Color)
	}
	if resp.Data.Readings.Source != lectionary.TierBuiltin {
		t.Errorf("Source = %s, want builtin (Christmas entry)", resp.Data.Readings.Source)
	}
}

func TestGetRangeLectionary(t *testing.T) {
	env := setupTest(t)

	rr := env.do("GET", "/api/lectionary/range?start=2026-01-18&end=2026-02-01", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d; body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp envelope[struct {
		Start string       `json:"start"`
		End   string       `json:"end"`
		Days  []dayPayload `json:"days"`
	}]
	parseResponse(t, rr, &resp)

	if len(resp.Data.Days) != 15 {
		t.Fatalf("len(Days) = %d, want 15", len(resp.Data.Days))
	}
	start := time.Date(2026, time.January, 18, 0, 0, 0, 0, time.UTC)
	for i, d := range resp.Data.Days {
		want := calendar.FormatDate(start.AddDate(0, 0, i))
		if d.Date != want {
			t.Errorf("Days[%d].Date = %s, want %s", i, d.Date, want)
		}
	}
	if got := resp.Data.Days[7].Readings.Readings.Gospel; got != "Matthew 4:12-23" {
		t.Errorf("2026-01-25 Gospel = %q, want %q", got, "Matthew 4:12-23")
	}
}

func TestGetBulletinFields(t *testing.T) {
	env := setupTest(t)

	rr := env.do("GET", "/api/bulletin/2026-01-25/fields", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp envelope[map[string]string]
	parseResponse(t, rr, &resp)

	want := map[string]string{
		"season":          "The Season after the Epiphany",
		"color":           "Green",
		"rcl_year":        "A",
		"lectionary_year": "Year One",
		"psalm":           "Psalm 27:1, 5-13",
		"readings_source": "builtin",
	}
	for k, v := range want {
		if resp.Data[k] != v {
			t.Errorf("fields[%s] = %q, want %q", k, resp.Data[k], v)
		}
	}
	if len(resp.Data) != 13 {
		t.Errorf("len(fields) = %d, want 13", len(resp.Data))
	}
}

func TestBadDates(t *testing.T) {
	env := setupTest(t)

	paths := []string{
		"/api/calendar/2026-13-01",
		"/api/calendar/yesterday",
		"/api/lectionary/2026-02-30",
		"/api/bulletin/25-01-2026/fields",
		"/api/lectionary/range?start=2026-01-01",
		"/api/lectionary/range?start=2026-01-01&end=nope",
		"/api/lectionary/range?start=2026-02-01&end=2026-01-01",
		"/api/lectionary/range?start=2026-01-01&end=2026-02-01",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rr := env.do("GET", path, "")
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Status = %d, want %d", rr.Code, http.StatusBadRequest)
			}

			var resp envelope[any]
			parseResponse(t, rr, &resp)
			if resp.Success || resp.Error == nil || resp.Error.Code != "BAD_REQUEST" {
				t.Errorf("response = %+v, want BAD_REQUEST error", resp)
			}
		})
	}
}

func TestRangeLimitInclusive(t *testing.T) {
	env := setupTest(t)

	rr := env.do("GET", "/api/lectionary/range?start=2026-01-01&end=2026-01-31", "")
	if rr.Code != http.StatusOK {
		t.Errorf("31-day range Status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestNotFoundRoute(t *testing.T) {
	env := setupTest(t)

	rr := env.do("GET", "/api/v1/readings/today", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

// =============================================================================
// ADMIN TESTS
// =============================================================================

func TestPurgeCache(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	if err := env.cache.Set(ctx, "rcl:2000-01-01", []byte("{}"), time.Nanosecond); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	rr := env.do("POST", "/api/admin/cache/purge", env.apiKey)
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d; body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp envelope[struct {
		Removed int64 `json:"removed"`
	}]
	parseResponse(t, rr, &resp)
	if resp.Data.Removed != 1 {
		t.Errorf("Removed = %d, want 1", resp.Data.Removed)
	}
}

func TestPurgeCache_RequiresKey(t *testing.T) {
	env := setupTest(t)

	tests := []struct {
		name string
		key  string
	}{
		{"missing key", ""},
		{"wrong key", "not-the-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do("POST", "/api/admin/cache/purge", tt.key)
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("Status = %d, want %d", rr.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestPurgeCache_Failure(t *testing.T) {
	env := setupTest(t)
	env.handlers.purger = failingPurger{}

	rr := env.do("POST", "/api/admin/cache/purge", env.apiKey)
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

type failingPurger struct{}

func (failingPurger) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, errors.New("disk I/O error")
}

// =============================================================================
// MIDDLEWARE TESTS
// =============================================================================

func TestAuthMiddleware_DevelopmentWithoutKey(t *testing.T) {
	cfg := &config.Config{Env: config.EnvDevelopment}
	handler := AuthMiddleware(cfg, quietLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/admin/cache/purge", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	env := setupTest(t)

	rr := env.do("GET", "/health", "")
	if _, err := uuid.Parse(rr.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated %s = %q, want a UUID", RequestIDHeader, rr.Header().Get(RequestIDHeader))
	}

	incoming := uuid.NewString()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	if got := rr.Header().Get(RequestIDHeader); got != incoming {
		t.Errorf("%s = %q, want incoming %q", RequestIDHeader, got, incoming)
	}
}

func TestErrorEnvelopeCarriesRequestID(t *testing.T) {
	env := setupTest(t)

	incoming := uuid.NewString()
	req := httptest.NewRequest("GET", "/api/calendar/not-a-date", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	var resp envelope[any]
	parseResponse(t, rr, &resp)
	if resp.Error == nil {
		t.Fatal("Error = nil, want error details")
	}
	if resp.Error.Code != CodeBadRequest {
		t.Errorf("Code = %q, want %q", resp.Error.Code, CodeBadRequest)
	}
	if resp.Error.RequestID != incoming {
		t.Errorf("RequestID = %q, want %q", resp.Error.RequestID, incoming)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := setupTest(t)

	rr := env.do("DELETE", "/api/calendar/2026-01-25", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}

	var resp envelope[any]
	parseResponse(t, rr, &resp)
	if resp.Error == nil || resp.Error.Code != CodeMethodNotAllowed {
		t.Errorf("Error = %+v, want code %s", resp.Error, CodeMethodNotAllowed)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(quietLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}),
	)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupTest(t)

	rr := env.do("OPTIONS", "/api/calendar/2026-01-25", "")
	if rr.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}
