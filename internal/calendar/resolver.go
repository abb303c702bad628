package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Source identifies which resolver produced a LiturgicalDate.
type Source string

const (
	SourceBuiltin   Source = "builtin"
	SourceAuthority Source = "authority"
)

// ErrUnmappedSeason is returned when an authority reports a season that
// has no counterpart in this calendar's vocabulary.
var ErrUnmappedSeason = errors.New("unmapped authority season")

// LiturgicalDate is the resolved liturgical identity of a calendar date.
// It is a value: nothing modifies it after Resolve returns.
type LiturgicalDate struct {
	Date           time.Time
	IsSunday       bool
	SundayCycle    SundayCycle
	DailyCycle     DailyCycle
	LiturgicalYear int
	EasterDate     time.Time
	Season         Season
	DayName        string
	Color          Color
	WeekOfSeason   int

	// Source is diagnostic only.
	Source Source
}

// MarshalJSON renders dates as YYYY-MM-DD and the season by key and label.
func (d LiturgicalDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date           string      `json:"date"`
		DayName        string      `json:"day_name"`
		Season         Season      `json:"season"`
		SeasonLabel    string      `json:"season_label"`
		Color          Color       `json:"color"`
		SundayCycle    SundayCycle `json:"rcl_year"`
		DailyCycle     DailyCycle  `json:"lectionary_year"`
		LiturgicalYear int         `json:"liturgical_year"`
		EasterDate     string      `json:"easter_date"`
		IsSunday       bool        `json:"is_sunday"`
		WeekOfSeason   int         `json:"week_of_season"`
		Source         Source      `json:"source"`
	}{
		Date:           FormatDate(d.Date),
		DayName:        d.DayName,
		Season:         d.Season,
		SeasonLabel:    d.Season.Label(),
		Color:          d.Color,
		SundayCycle:    d.SundayCycle,
		DailyCycle:     d.DailyCycle,
		LiturgicalYear: d.LiturgicalYear,
		EasterDate:     FormatDate(d.EasterDate),
		IsSunday:       d.IsSunday,
		WeekOfSeason:   d.WeekOfSeason,
		Source:         d.Source,
	})
}

// Resolver turns a calendar date into its liturgical identity.
type Resolver interface {
	Resolve(ctx context.Context, date time.Time) (LiturgicalDate, error)
}

// BuiltinResolver computes everything locally and never fails.
type BuiltinResolver struct{}

// Resolve implements Resolver.
func (BuiltinResolver) Resolve(_ context.Context, date time.Time) (LiturgicalDate, error) {
	return Builtin(date), nil
}

// Builtin resolves a date from the computus and the season tables alone.
func Builtin(date time.Time) LiturgicalDate {
	date = NormalizeToMidnight(date)
	info := GetSeasonInfo(date)

	d := baseDate(date, info.LiturgicalYear)
	d.Season = info.Season
	d.Color = info.Season.Color()
	d.DayName = DayNameFor(date, info)
	d.WeekOfSeason = info.Week
	d.Source = SourceBuiltin
	return d
}

// baseDate fills the fields every resolver derives the same way.
func baseDate(date time.Time, litYear int) LiturgicalDate {
	return LiturgicalDate{
		Date:           date,
		IsSunday:       date.Weekday() == time.Sunday,
		SundayCycle:    SundayCycleForYear(litYear),
		DailyCycle:     DailyCycleForYear(litYear),
		LiturgicalYear: litYear,
		EasterDate:     CalculateEaster(date.Year()),
	}
}

// authoritySeasons translates the Church of England season vocabulary
// into this calendar's seasons.
var authoritySeasons = map[string]Season{
	"Advent":        SeasonAdvent,
	"Christmas":     SeasonChristmas,
	"Epiphany":      SeasonEpiphany,
	"before Lent":   SeasonEpiphany,
	"Lent":          SeasonLent,
	"Holy Week":     SeasonLent,
	"Easter":        SeasonEaster,
	"Pentecost":     SeasonPentecost,
	"Trinity":       SeasonPentecost,
	"before Advent": SeasonPentecost,
	"Ordinary Time": SeasonPentecost,
}

// TranslateSeason maps an authority season name to a Season.
func TranslateSeason(name string) (Season, error) {
	season, ok := authoritySeasons[strings.TrimSpace(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnmappedSeason, name)
	}
	return season, nil
}

// AuthorityResolver asks an external calendar authority for the season and
// week, then names the day with the local positional tables.
type AuthorityResolver struct {
	authority Authority
}

// NewAuthorityResolver creates a resolver backed by the given authority.
func NewAuthorityResolver(authority Authority) *AuthorityResolver {
	return &AuthorityResolver{authority: authority}
}

// Resolve implements Resolver.
func (r *AuthorityResolver) Resolve(ctx context.Context, date time.Time) (LiturgicalDate, error) {
	date = NormalizeToMidnight(date)

	day, err := r.authority.Lookup(ctx, FormatDate(date))
	if err != nil {
		return LiturgicalDate{}, fmt.Errorf("authority lookup: %w", err)
	}

	season, err := TranslateSeason(day.Season)
	if err != nil {
		return LiturgicalDate{}, err
	}

	d := baseDate(date, LiturgicalYear(date))
	d.Season = season
	d.Color = season.Color()
	d.DayName = authorityDayName(season, day)
	d.WeekOfSeason = day.WeekNo
	d.Source = SourceAuthority
	return d, nil
}

func authorityDayName(season Season, day AuthorityDay) string {
	if season == SeasonEpiphany && (day.Name == "Epiphany" || day.Name == "The Epiphany") {
		return "The Epiphany"
	}
	// The authority numbers every week after Pentecost from its own
	// calendar, so its weeks map to Propers rather than the positional
	// Pentecost and Trinity entries.
	if season == SeasonPentecost && day.WeekNo > 0 {
		return properName(day.WeekNo)
	}
	return SundayName(season, day.WeekNo)
}
