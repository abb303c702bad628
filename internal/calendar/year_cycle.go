package calendar

import (
	"fmt"
	"time"
)

// SundayCycle is the letter of the three-year Revised Common Lectionary cycle.
type SundayCycle string

const (
	CycleA SundayCycle = "A"
	CycleB SundayCycle = "B"
	CycleC SundayCycle = "C"
)

// DailyCycle is the label of the two-year Daily Office cycle.
type DailyCycle string

const (
	// DailyCycleOne is used in liturgical years that begin in an odd year.
	DailyCycleOne DailyCycle = "One"

	// DailyCycleTwo is used in liturgical years that begin in an even year.
	DailyCycleTwo DailyCycle = "Two"
)

// YearLabel returns the form used in printed lectionaries ("Year One").
func (c DailyCycle) YearLabel() string {
	return fmt.Sprintf("Year %s", string(c))
}

// LiturgicalYear returns the starting year of the liturgical year
// that contains the given date.
//
// The liturgical year is identified by the year in which its Advent begins.
// For example, the liturgical year "2024" runs from Advent 2024 through
// the Saturday before Advent 2025.
func LiturgicalYear(date time.Time) int {
	date = NormalizeToMidnight(date)
	year := date.Year()

	if date.Before(CalculateAdvent(year)) {
		return year - 1
	}
	return year
}

// SundayCycleForYear maps a liturgical year to its RCL cycle letter.
// Liturgical years divisible by three are Year A.
func SundayCycleForYear(liturgicalYear int) SundayCycle {
	switch mod(liturgicalYear, 3) {
	case 0:
		return CycleA
	case 1:
		return CycleB
	default:
		return CycleC
	}
}

// DailyCycleForYear maps a liturgical year to its Daily Office cycle.
func DailyCycleForYear(liturgicalYear int) DailyCycle {
	if mod(liturgicalYear, 2) == 0 {
		return DailyCycleTwo
	}
	return DailyCycleOne
}

// GetSundayCycle determines the RCL cycle letter in effect on a date.
//
// Examples:
//   - November 30, 2025 (Advent Sunday): liturgical year 2025, Year A
//   - November 29, 2025 (the day before): liturgical year 2024, Year C
func GetSundayCycle(date time.Time) SundayCycle {
	return SundayCycleForYear(LiturgicalYear(date))
}

// GetDailyCycle determines which Daily Office year applies to a given date.
//
// The Daily Office operates on a two-year cycle. The liturgical year begins
// on the first Sunday of Advent, not January 1, so dates in December after
// Advent Sunday already belong to the next cycle year.
func GetDailyCycle(date time.Time) DailyCycle {
	return DailyCycleForYear(LiturgicalYear(date))
}

// mod is a modulus that stays non-negative for negative years.
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
