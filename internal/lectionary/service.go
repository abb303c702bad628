package lectionary

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// Source is a tier that can answer for a date on its own.
type Source interface {
	Lookup(ctx context.Context, date time.Time) (Readings, error)
}

// Options configures a Service. Nil sources are skipped.
type Options struct {
	Cache   Cache
	Dataset Source
	Remote  Source
	Builtin *BuiltinTable
	TTL     time.Duration
	Logger  *slog.Logger
}

// Service resolves readings through cache, dataset, remote, and built-in
// tiers, in that order. It is safe for concurrent use.
type Service struct {
	cache   Cache
	dataset Source
	remote  Source
	builtin *BuiltinTable
	ttl     time.Duration
	logger  *slog.Logger
}

// cachedResult is the stored form of a resolved lookup.
type cachedResult struct {
	Source   Tier     `json:"source"`
	Readings Readings `json:"readings"`
}

// NewService creates a Service. A zero TTL uses DefaultCacheTTL.
func NewService(opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		cache:   opts.Cache,
		dataset: opts.Dataset,
		remote:  opts.Remote,
		builtin: opts.Builtin,
		ttl:     opts.TTL,
		logger:  opts.Logger,
	}
}

// Readings returns the readings for a date. dayName is only consulted by
// the built-in tier and may be empty. Readings never fails: when every
// tier misses the result has Source TierNone and empty readings.
func (s *Service) Readings(ctx context.Context, date time.Time, dayName string) Result {
	key := CacheKey(date)
	result := Result{Date: isoDate(date), Source: TierNone}
	logger := s.logger.With("date", result.Date)

	if cached, ok := s.fromCache(ctx, key, logger); ok {
		result.Source = TierCache
		result.Origin = cached.Source
		result.Readings = cached.Readings
		return result
	}

	tier, readings, ok := s.resolve(ctx, date, dayName, logger)
	if !ok {
		logger.InfoContext(ctx, "no readings found", "day_name", dayName)
		return result
	}

	result.Source = tier
	result.Readings = readings
	s.store(ctx, key, cachedResult{Source: tier, Readings: readings}, logger)
	return result
}

// resolve tries tiers 2 through 4 in order.
func (s *Service) resolve(ctx context.Context, date time.Time, dayName string, logger *slog.Logger) (Tier, Readings, bool) {
	if s.dataset != nil {
		if r, ok := s.try(ctx, TierDataset, s.dataset, date, logger); ok {
			return TierDataset, r, true
		}
	}

	if s.remote != nil {
		if r, ok := s.try(ctx, TierRemote, s.remote, date, logger); ok {
			return TierRemote, r, true
		}
	}

	if s.builtin != nil && dayName != "" {
		if entry, ok := s.builtin.Lookup(dayName); ok {
			logger.DebugContext(ctx, "builtin match", "day_name", dayName, "entry", entry.Name)
			return TierBuiltin, entry.Readings, true
		}
	}

	return TierNone, Readings{}, false
}

func (s *Service) try(ctx context.Context, tier Tier, src Source, date time.Time, logger *slog.Logger) (Readings, bool) {
	r, err := src.Lookup(ctx, date)
	switch {
	case errors.Is(err, ErrNotFound):
		logger.DebugContext(ctx, "tier miss", "tier", tier)
		return Readings{}, false
	case err != nil:
		logger.WarnContext(ctx, "tier failed", "tier", tier, "error", err)
		return Readings{}, false
	case r.IsEmpty():
		logger.DebugContext(ctx, "tier returned no citations", "tier", tier)
		return Readings{}, false
	}
	return r, true
}

func (s *Service) fromCache(ctx context.Context, key string, logger *slog.Logger) (cachedResult, bool) {
	if s.cache == nil {
		return cachedResult{}, false
	}

	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return cachedResult{}, false
	}
	if !ok {
		return cachedResult{}, false
	}

	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key, "error", err)
		return cachedResult{}, false
	}
	if cached.Readings.IsEmpty() {
		logger.WarnContext(ctx, "discarding empty cache entry", "key", key)
		return cachedResult{}, false
	}
	return cached, true
}

func (s *Service) store(ctx context.Context, key string, entry cachedResult, logger *slog.Logger) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		logger.WarnContext(ctx, "encode cache entry", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
