// Package calendar provides liturgical calendar calculations.
package calendar

import (
	"time"
)

// CalculateEaster calculates the date of Easter Sunday for a given year
// using the computus algorithm for the Gregorian calendar.
//
// The algorithm is the anonymous Gregorian method (Meeus/Jones/Butcher)
// and is valid for every year from 1583 onward.
func CalculateEaster(year int) time.Time {
	a := year % 19 // position in the Metonic cycle
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30 // epact
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// CalculateAdvent calculates the date of the first Sunday of Advent
// (the 4th Sunday before Christmas) for a given year.
//
// Walk back from Christmas to the Sunday strictly before it (the fourth
// Sunday of Advent), then back three more weeks. The result always falls
// between November 27 and December 3.
func CalculateAdvent(year int) time.Time {
	christmas := time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)

	daysBack := int(christmas.Weekday())
	if daysBack == 0 {
		daysBack = 7
	}
	fourthSunday := christmas.AddDate(0, 0, -daysBack)

	return fourthSunday.AddDate(0, 0, -21)
}

// CalculateAshWednesday calculates Ash Wednesday for a given year.
// Ash Wednesday is 46 days before Easter (40 days of Lent + 6 Sundays).
func CalculateAshWednesday(year int) time.Time {
	easter := CalculateEaster(year)
	return easter.AddDate(0, 0, -46)
}

// CalculateAscension calculates Ascension Day for a given year.
// Ascension is 39 days after Easter (always on a Thursday).
func CalculateAscension(year int) time.Time {
	easter := CalculateEaster(year)
	return easter.AddDate(0, 0, 39)
}

// CalculatePentecost calculates Pentecost Sunday for a given year.
// Pentecost is 49 days after Easter (7 weeks).
func CalculatePentecost(year int) time.Time {
	easter := CalculateEaster(year)
	return easter.AddDate(0, 0, 49)
}
