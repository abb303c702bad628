package calendar

import (
	"strings"
	"time"
)

// Season represents a liturgical season.
type Season string

const (
	SeasonAdvent    Season = "advent"
	SeasonChristmas Season = "christmas"
	SeasonEpiphany  Season = "epiphany"
	SeasonLent      Season = "lent"
	SeasonEaster    Season = "easter"
	SeasonPentecost Season = "pentecost"
)

// ValidSeasons returns all valid liturgical seasons in calendar order,
// starting from Advent.
func ValidSeasons() []Season {
	return []Season{
		SeasonAdvent,
		SeasonChristmas,
		SeasonEpiphany,
		SeasonLent,
		SeasonEaster,
		SeasonPentecost,
	}
}

// IsValid checks if a season is valid.
func (s Season) IsValid() bool {
	for _, valid := range ValidSeasons() {
		if s == valid {
			return true
		}
	}
	return false
}

// String returns the season key.
func (s Season) String() string {
	return string(s)
}

// Label returns the display name used in the Book of Common Prayer.
func (s Season) Label() string {
	switch s {
	case SeasonAdvent:
		return "Advent"
	case SeasonChristmas:
		return "Christmas"
	case SeasonEpiphany:
		return "The Season after the Epiphany"
	case SeasonLent:
		return "Lent"
	case SeasonEaster:
		return "Easter"
	case SeasonPentecost:
		return "The Season after Pentecost"
	default:
		return string(s)
	}
}

// Color returns the liturgical color of the season.
func (s Season) Color() Color {
	switch s {
	case SeasonAdvent, SeasonLent:
		return ColorPurple
	case SeasonChristmas, SeasonEaster:
		return ColorWhite
	default:
		return ColorGreen
	}
}

// ParseSeason accepts either the season key ("epiphany") or its label
// ("The Season after the Epiphany"), case-insensitively.
func ParseSeason(s string) (Season, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, season := range ValidSeasons() {
		if needle == string(season) || needle == strings.ToLower(season.Label()) {
			return season, nil
		}
	}
	return "", &ParseError{Type: "Season", Value: s}
}

// Color is a liturgical vestment color.
type Color string

const (
	ColorPurple Color = "Purple"
	ColorWhite  Color = "White"
	ColorGreen  Color = "Green"
)

// ParseError is returned when a string does not name a known value
// of an enum-like calendar type.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Season").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

func (e *ParseError) Error() string {
	return "calendar: invalid " + e.Type + " value: " + e.Value
}

// SeasonInfo is the season and cycle position of a single date.
type SeasonInfo struct {
	Season         Season
	SundayCycle    SundayCycle
	DailyCycle     DailyCycle
	LiturgicalYear int

	// AdventStart is the first Sunday of Advent that opened the liturgical year.
	AdventStart time.Time

	// SeasonStart is the first day of the season containing the date.
	SeasonStart time.Time

	// Week is the number of Sundays from SeasonStart through the date.
	// Christmas and Epiphany count only Sundays after their feast day.
	// Christmas, Epiphany and Lent have a week 0 before their first Sunday.
	Week int
}

// SeasonFor returns the season containing the date. The partition is
// total: every date belongs to exactly one season.
func SeasonFor(date time.Time) Season {
	season, _ := seasonAndStart(NormalizeToMidnight(date))
	return season
}

// GetSeasonInfo computes season, cycles and week-of-season for a date.
func GetSeasonInfo(date time.Time) SeasonInfo {
	date = NormalizeToMidnight(date)
	litYear := LiturgicalYear(date)
	season, start := seasonAndStart(date)

	week := CountSundays(start, date)
	if season == SeasonChristmas || season == SeasonEpiphany {
		// The opening feast is never one of the numbered Sundays, even
		// when it falls on a Sunday.
		week = CountSundays(start.AddDate(0, 0, 1), date)
	}

	return SeasonInfo{
		Season:         season,
		SundayCycle:    SundayCycleForYear(litYear),
		DailyCycle:     DailyCycleForYear(litYear),
		LiturgicalYear: litYear,
		AdventStart:    CalculateAdvent(litYear),
		SeasonStart:    start,
		Week:           week,
	}
}

// seasonAndStart walks the boundaries of the date's calendar year in order.
// Ash Wednesday, Easter and Pentecost come from that year's computus.
func seasonAndStart(date time.Time) (Season, time.Time) {
	year := date.Year()
	epiphany := time.Date(year, time.January, 6, 0, 0, 0, 0, time.UTC)
	ashWednesday := CalculateAshWednesday(year)
	easter := CalculateEaster(year)
	pentecost := CalculatePentecost(year)
	advent := CalculateAdvent(year)
	christmas := time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)

	switch {
	case date.Before(epiphany):
		return SeasonChristmas, time.Date(year-1, time.December, 25, 0, 0, 0, 0, time.UTC)
	case date.Before(ashWednesday):
		return SeasonEpiphany, epiphany
	case date.Before(easter):
		return SeasonLent, ashWednesday
	case date.Before(pentecost):
		return SeasonEaster, easter
	case date.Before(advent):
		return SeasonPentecost, pentecost
	case date.Before(christmas):
		return SeasonAdvent, advent
	default:
		return SeasonChristmas, christmas
	}
}
