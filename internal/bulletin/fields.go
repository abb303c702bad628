// Package bulletin flattens a resolved date and its readings into the slot
// map consumed by the bulletin document renderer.
package bulletin

import (
	"strconv"

	"github.com/zapponejosh/bulletin-lectionary/internal/calendar"
	"github.com/zapponejosh/bulletin-lectionary/internal/lectionary"
)

// Slot keys. Every key is present in a Fields map; an empty value means the
// renderer should leave the slot out.
const (
	KeyDate           = "date"
	KeyDayName        = "day_name"
	KeySeason         = "season"
	KeyColor          = "color"
	KeyRCLYear        = "rcl_year"
	KeyLectionaryYear = "lectionary_year"
	KeyEasterDate     = "easter_date"
	KeyIsSunday       = "is_sunday"
	KeyFirstLesson    = "first_lesson"
	KeyPsalm          = "psalm"
	KeySecondLesson   = "second_lesson"
	KeyGospel         = "gospel"
	KeyReadingsSource = "readings_source"
)

// Keys returns every slot key in display order.
func Keys() []string {
	return []string{
		KeyDate,
		KeyDayName,
		KeySeason,
		KeyColor,
		KeyRCLYear,
		KeyLectionaryYear,
		KeyEasterDate,
		KeyIsSunday,
		KeyFirstLesson,
		KeyPsalm,
		KeySecondLesson,
		KeyGospel,
		KeyReadingsSource,
	}
}

// Fields builds the slot map for one date.
func Fields(day calendar.LiturgicalDate, result lectionary.Result) map[string]string {
	fields := make(map[string]string, len(Keys()))
	for _, key := range Keys() {
		fields[key] = ""
	}

	if !day.Date.IsZero() {
		fields[KeyDate] = calendar.FormatDate(day.Date)
		fields[KeyIsSunday] = strconv.FormatBool(day.IsSunday)
	}
	if !day.EasterDate.IsZero() {
		fields[KeyEasterDate] = calendar.FormatDate(day.EasterDate)
	}
	if day.Season != "" {
		fields[KeySeason] = day.Season.Label()
	}
	if day.DailyCycle != "" {
		fields[KeyLectionaryYear] = day.DailyCycle.YearLabel()
	}
	fields[KeyDayName] = day.DayName
	fields[KeyColor] = string(day.Color)
	fields[KeyRCLYear] = string(day.SundayCycle)

	fields[KeyFirstLesson] = result.Readings.FirstLesson
	fields[KeyPsalm] = result.Readings.Psalm
	fields[KeySecondLesson] = result.Readings.SecondLesson
	fields[KeyGospel] = result.Readings.Gospel
	if result.Found() && result.Source != "" {
		fields[KeyReadingsSource] = string(result.Source)
	}

	return fields
}
