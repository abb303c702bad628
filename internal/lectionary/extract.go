package lectionary

import (
	"strings"
)

// slotAliases lists the field names accepted for each slot, most specific first.
var slotAliases = map[string][]string{
	SlotFirstLesson:  {"first_lesson", "firstLesson", "first", "old_testament", "ot", "lesson1"},
	SlotPsalm:        {"psalm", "psalms", "ps"},
	SlotSecondLesson: {"second_lesson", "secondLesson", "second", "epistle", "nt", "lesson2"},
	SlotGospel:       {"gospel", "gospels"},
}

// nestedKeys are objects searched for slots when the top level lacks them.
var nestedKeys = []string{"readings", "lessons", "morning", "evening"}

// extractReadings pulls citations out of a loosely shaped JSON object.
// Slots already filled at a shallower level are never overwritten.
func extractReadings(obj map[string]any) Readings {
	var r Readings
	fillReadings(&r, obj, 0)
	return r
}

func fillReadings(r *Readings, obj map[string]any, depth int) {
	if depth > 3 {
		return
	}

	current := r.Map()
	for _, slot := range Slots() {
		if current[slot] != "" {
			continue
		}
		for _, key := range slotAliases[slot] {
			if v, ok := obj[key]; ok {
				if citation := citationOf(v); citation != "" {
					r.set(slot, citation)
					break
				}
			}
		}
	}

	for _, key := range nestedKeys {
		switch nested := obj[key].(type) {
		case map[string]any:
			fillReadings(r, nested, depth+1)
		case []any:
			if depth == 0 || key == "readings" {
				fillOrdered(r, nested)
			}
		}
	}
}

// fillOrdered assigns an ordered list of readings to slots by position:
// first lesson, psalm, second lesson, gospel. Filled slots are kept.
func fillOrdered(r *Readings, items []any) {
	current := r.Map()
	for i, slot := range Slots() {
		if i >= len(items) {
			return
		}
		if current[slot] != "" {
			continue
		}
		r.set(slot, citationOf(items[i]))
	}
}

// citationOf renders a JSON value as a citation string. Lists are joined
// with "; ". Objects contribute their citation-like field, or failing that
// their morning and evening citations.
func citationOf(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := citationOf(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		for _, key := range []string{"citation", "reference", "ref", "text", "display"} {
			if s, ok := val[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		// Psalms split by office: {"morning": [...], "evening": [...]}.
		parts := make([]string, 0, 2)
		for _, key := range []string{"morning", "evening"} {
			if s := citationOf(val[key]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	}
	return ""
}
