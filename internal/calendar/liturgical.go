package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used at every boundary.
const DateLayout = "2006-01-02"

// ordinalWords spells out the ordinals used in Sunday names.
var ordinalWords = []string{
	"First", "Second", "Third", "Fourth", "Fifth",
	"Sixth", "Seventh", "Eighth", "Ninth", "Tenth",
}

// OrdinalWord returns the spelled ordinal ("First", "Second", ...).
// Numbers past the word table fall back to the numeric form (11th, 12th).
func OrdinalWord(n int) string {
	if n >= 1 && n <= len(ordinalWords) {
		return ordinalWords[n-1]
	}
	return Ordinal(n)
}

// Ordinal returns the ordinal form of a number (1st, 2nd, 3rd, 4th, etc.)
func Ordinal(n int) string {
	suffix := "th"
	switch n % 10 {
	case 1:
		if n%100 != 11 {
			suffix = "st"
		}
	case 2:
		if n%100 != 12 {
			suffix = "nd"
		}
	case 3:
		if n%100 != 13 {
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// DaysBetween calculates the number of days between two dates.
// Returns a positive number if end is after start.
func DaysBetween(start, end time.Time) int {
	return int(NormalizeToMidnight(end).Sub(NormalizeToMidnight(start)).Hours() / 24)
}

// CountSundays returns how many Sundays fall in [start, date].
// Returns 0 when date is before start.
func CountSundays(start, date time.Time) int {
	days := DaysBetween(start, date)
	if days < 0 {
		return 0
	}

	// Days from start until its first Sunday (0 when start is a Sunday).
	toFirst := (7 - int(start.Weekday())) % 7
	if days < toFirst {
		return 0
	}
	return (days-toFirst)/7 + 1
}

// IsSameDay returns true if two times represent the same calendar day.
func IsSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// NormalizeToMidnight returns the date at midnight UTC.
// This is useful for consistent date comparisons.
func NormalizeToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDateString parses a date string in YYYY-MM-DD format.
func ParseDateString(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", dateStr, err)
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
