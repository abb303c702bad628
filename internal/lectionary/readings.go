// Package lectionary resolves the scripture readings for a date through an
// ordered chain of sources: cache, local Daily Office dataset, remote
// lectionary service, and a built-in Year A table.
package lectionary

import (
	"errors"
	"time"
)

// dateLayout is the ISO 8601 date format used for cache keys and requests.
const dateLayout = "2006-01-02"

// ErrNotFound is returned by a source that has no readings for a date.
var ErrNotFound = errors.New("readings not found")

// Tier identifies the source that produced a Result.
type Tier string

const (
	TierCache   Tier = "cache"
	TierDataset Tier = "local-dataset"
	TierRemote  Tier = "remote-service"
	TierBuiltin Tier = "builtin"
	TierNone    Tier = "none"
)

// Slot names, in liturgical order.
const (
	SlotFirstLesson  = "first_lesson"
	SlotPsalm        = "psalm"
	SlotSecondLesson = "second_lesson"
	SlotGospel       = "gospel"
)

// Slots returns the reading slot names in liturgical order.
func Slots() []string {
	return []string{SlotFirstLesson, SlotPsalm, SlotSecondLesson, SlotGospel}
}

// Readings holds scripture citations by slot. Any slot may be empty.
type Readings struct {
	FirstLesson  string `json:"first_lesson" yaml:"first_lesson"`
	Psalm        string `json:"psalm" yaml:"psalm"`
	SecondLesson string `json:"second_lesson" yaml:"second_lesson"`
	Gospel       string `json:"gospel" yaml:"gospel"`
}

// IsEmpty reports whether no slot is populated.
func (r Readings) IsEmpty() bool {
	return r == Readings{}
}

// Map returns every slot keyed by name, empty slots included.
func (r Readings) Map() map[string]string {
	return map[string]string{
		SlotFirstLesson:  r.FirstLesson,
		SlotPsalm:        r.Psalm,
		SlotSecondLesson: r.SecondLesson,
		SlotGospel:       r.Gospel,
	}
}

// set assigns a citation to a named slot. Unknown slots are ignored.
func (r *Readings) set(slot, citation string) {
	switch slot {
	case SlotFirstLesson:
		r.FirstLesson = citation
	case SlotPsalm:
		r.Psalm = citation
	case SlotSecondLesson:
		r.SecondLesson = citation
	case SlotGospel:
		r.Gospel = citation
	}
}

// Result is the outcome of one lookup.
type Result struct {
	Date     string   `json:"date"`
	Source   Tier     `json:"source"`
	Origin   Tier     `json:"origin,omitempty"` // tier that filled the cache, on cache hits
	Readings Readings `json:"readings"`
}

// Found reports whether any tier answered.
func (r Result) Found() bool {
	return r.Source != TierNone
}

func isoDate(date time.Time) string {
	return date.Format(dateLayout)
}
