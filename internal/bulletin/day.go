package bulletin

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/bulletin-lectionary/internal/calendar"
	"github.com/zapponejosh/bulletin-lectionary/internal/lectionary"
)

// MaxRangeDays caps how many dates the HTTP range endpoint resolves at once.
const MaxRangeDays = 31

// rangeWorkers bounds concurrent lookups within one range.
const rangeWorkers = 4

// CalendarSource resolves the liturgical identity of a date.
type CalendarSource interface {
	Info(ctx context.Context, date time.Time) calendar.LiturgicalDate
}

// ReadingsSource resolves the readings for a date.
type ReadingsSource interface {
	Readings(ctx context.Context, date time.Time, dayName string) lectionary.Result
}

// Day is a date with its calendar information and readings.
type Day struct {
	Date     string                  `json:"date"`
	Calendar calendar.LiturgicalDate `json:"calendar"`
	Readings lectionary.Result       `json:"readings"`
}

// Fields returns the renderer slot map for the day.
func (d Day) Fields() map[string]string {
	return Fields(d.Calendar, d.Readings)
}

// Resolver pairs the calendar with the readings lookup. The calendar's day
// name feeds the built-in readings tier.
type Resolver struct {
	calendar CalendarSource
	readings ReadingsSource
}

// NewResolver creates a Resolver.
func NewResolver(cal CalendarSource, readings ReadingsSource) *Resolver {
	return &Resolver{calendar: cal, readings: readings}
}

// Day resolves one date. It never fails.
func (r *Resolver) Day(ctx context.Context, date time.Time) Day {
	date = calendar.NormalizeToMidnight(date)
	info := r.calendar.Info(ctx, date)
	return Day{
		Date:     calendar.FormatDate(date),
		Calendar: info,
		Readings: r.readings.Readings(ctx, date, info.DayName),
	}
}

// Range resolves every date from start to end inclusive, in date order.
// Dates are looked up concurrently; each lookup is still sequential
// through its tiers. Only a cancelled context makes Range fail.
func (r *Resolver) Range(ctx context.Context, start, end time.Time) ([]Day, error) {
	start = calendar.NormalizeToMidnight(start)
	end = calendar.NormalizeToMidnight(end)
	if end.Before(start) {
		return nil, fmt.Errorf("range end %s is before start %s", calendar.FormatDate(end), calendar.FormatDate(start))
	}

	n := calendar.DaysBetween(start, end) + 1
	days := make([]Day, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rangeWorkers)
	for i := 0; i < n; i++ {
		i := i
		date := start.AddDate(0, 0, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			days[i] = r.Day(ctx, date)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve range: %w", err)
	}
	return days, nil
}

// RangeDays returns the number of dates in [start, end].
func RangeDays(start, end time.Time) int {
	return calendar.DaysBetween(calendar.NormalizeToMidnight(start), calendar.NormalizeToMidnight(end)) + 1
}
