package calendar

import (
	"context"
	"log/slog"
	"time"
)

// Provider answers calendar questions for callers that must never see a
// failure. The resolution strategy is chosen once, at construction.
type Provider struct {
	primary  Resolver
	fallback BuiltinResolver
	logger   *slog.Logger
}

// NewProvider selects the authority-backed strategy when an authority is
// available, and the built-in one otherwise.
func NewProvider(authority Authority, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}

	var primary Resolver = BuiltinResolver{}
	if authority != nil {
		primary = NewAuthorityResolver(authority)
	}

	return &Provider{
		primary: primary,
		logger:  logger,
	}
}

// Info returns the liturgical identity of a date. Any failure of the
// selected strategy falls back to the built-in computation.
func (p *Provider) Info(ctx context.Context, date time.Time) LiturgicalDate {
	d, err := p.primary.Resolve(ctx, date)
	if err == nil {
		return d
	}

	p.logger.WarnContext(ctx, "calendar authority failed, using built-in calendar",
		slog.String("date", FormatDate(date)),
		slog.Any("error", err),
	)

	d, _ = p.fallback.Resolve(ctx, date)
	return d
}
