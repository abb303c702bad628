package calendar

import (
	"fmt"
	"strings"
	"time"
)

// ProperOffset converts a week of the season after Pentecost into the
// number of its Proper.
const ProperOffset = 1

// sundayNames maps a season's week index to the name of that week's Sunday.
// Index 0 is the stretch before the season's first Sunday.
var sundayNames = map[Season]map[int]string{
	SeasonAdvent: {
		1: "The First Sunday of Advent",
		2: "The Second Sunday of Advent",
		3: "The Third Sunday of Advent",
		4: "The Fourth Sunday of Advent",
	},
	SeasonChristmas: {
		0: "Christmastide",
		1: "The First Sunday after Christmas Day",
		2: "The Second Sunday after Christmas Day",
	},
	SeasonEpiphany: {
		0: "The Epiphany",
		1: "The First Sunday after the Epiphany: The Baptism of our Lord",
		2: "The Second Sunday after the Epiphany",
		3: "The Third Sunday after the Epiphany",
		4: "The Fourth Sunday after the Epiphany",
		5: "The Fifth Sunday after the Epiphany",
		6: "The Sixth Sunday after the Epiphany",
		7: "The Seventh Sunday after the Epiphany",
		8: "The Eighth Sunday after the Epiphany",
		9: "The Last Sunday after the Epiphany",
	},
	SeasonLent: {
		0: "Ash Wednesday and Following",
		1: "The First Sunday in Lent",
		2: "The Second Sunday in Lent",
		3: "The Third Sunday in Lent",
		4: "The Fourth Sunday in Lent",
		5: "The Fifth Sunday in Lent",
		6: "Palm Sunday",
	},
	SeasonEaster: {
		1: "Easter Day",
		2: "The Second Sunday of Easter",
		3: "The Third Sunday of Easter",
		4: "The Fourth Sunday of Easter",
		5: "The Fifth Sunday of Easter",
		6: "The Sixth Sunday of Easter",
		7: "The Sunday after the Ascension",
		8: "The Day of Pentecost",
	},
	SeasonPentecost: {
		1: "The Day of Pentecost",
		2: "Trinity Sunday",
	},
}

// SundayName maps a season and week index to a Sunday name.
//
// Weeks of the season after Pentecost past Trinity Sunday are numbered as
// Propers. Any other index missing from the season's table is labelled
// with the season name, plus the week when it lies past the table's end.
func SundayName(season Season, week int) string {
	table := sundayNames[season]
	if name, ok := table[week]; ok {
		return name
	}

	if season == SeasonPentecost && week > 0 {
		return properName(week)
	}

	if week > lastIndex(table) {
		return fmt.Sprintf("%s (Week %d)", season.Label(), week)
	}
	return season.Label()
}

// properName numbers a week of the season after Pentecost as a Proper.
func properName(week int) string {
	return fmt.Sprintf("Proper %d (%s)", week+ProperOffset, SeasonPentecost.Label())
}

func lastIndex(table map[int]string) int {
	last := 0
	for k := range table {
		if k > last {
			last = k
		}
	}
	return last
}

// DayNameFor resolves the human-readable name of a date.
//
// Fixed feasts and the days of Holy Week are named directly. Sundays take
// the positional name of their week. Other days are named after the
// Sunday that began their week.
func DayNameFor(date time.Time, info SeasonInfo) string {
	date = NormalizeToMidnight(date)

	if name, ok := namedDay(date); ok {
		return name
	}
	if info.Week == 0 {
		return SundayName(info.Season, 0)
	}

	sunday := date.AddDate(0, 0, -int(date.Weekday()))
	name := sundayNameFor(sunday, info.Season, info.Week)
	if date.Weekday() == time.Sunday {
		return name
	}
	return fmt.Sprintf("%s after %s", date.Weekday(), lowerArticle(name))
}

// sundayNameFor applies the two Sundays named relative to the following
// season before falling back to the positional table.
func sundayNameFor(sunday time.Time, season Season, week int) string {
	year := sunday.Year()

	switch season {
	case SeasonEpiphany:
		if IsSameDay(sunday, CalculateAshWednesday(year).AddDate(0, 0, -3)) {
			return "The Last Sunday after the Epiphany"
		}
	case SeasonPentecost:
		if IsSameDay(sunday, CalculateAdvent(year).AddDate(0, 0, -7)) {
			return "The Last Sunday after Pentecost: Christ the King"
		}
	}
	return SundayName(season, week)
}

// namedDay returns the proper name of fixed and movable holy days.
func namedDay(date time.Time) (string, bool) {
	year := date.Year()

	switch {
	case date.Month() == time.December && date.Day() == 25:
		return "Christmas Day", true
	case date.Month() == time.January && date.Day() == 6:
		return "The Epiphany", true
	case IsSameDay(date, CalculateAshWednesday(year)):
		return "Ash Wednesday", true
	case IsSameDay(date, CalculateAscension(year)):
		return "Ascension Day", true
	}

	easter := CalculateEaster(year)
	switch DaysBetween(date, easter) {
	case 1:
		return "Holy Saturday", true
	case 2:
		return "Good Friday", true
	case 3:
		return "Maundy Thursday", true
	case 4, 5, 6:
		return fmt.Sprintf("%s in Holy Week", date.Weekday()), true
	}

	return "", false
}

func lowerArticle(name string) string {
	if strings.HasPrefix(name, "The ") {
		return "the " + name[len("The "):]
	}
	return name
}
