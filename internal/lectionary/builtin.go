package lectionary

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed builtin_year_a.yaml
var builtinYearA []byte

// BuiltinEntry is one named day of the built-in table.
type BuiltinEntry struct {
	Name     string   `yaml:"name"`
	Readings Readings `yaml:"readings"`
}

// BuiltinTable is a read-only, ordered table of readings by day name.
// It is safe for concurrent use because nothing writes to it after loading.
type BuiltinTable struct {
	entries []BuiltinEntry
	folded  []string // case-folded names, same order as entries
}

// defaultBuiltin is parsed once, at package initialization.
var defaultBuiltin = mustLoadBuiltin(builtinYearA)

// DefaultBuiltinTable returns the embedded Year A table.
func DefaultBuiltinTable() *BuiltinTable {
	return defaultBuiltin
}

// LoadBuiltinTable parses a YAML list of named readings.
func LoadBuiltinTable(data []byte) (*BuiltinTable, error) {
	var entries []BuiltinEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse builtin table: %w", err)
	}

	t := &BuiltinTable{
		entries: entries,
		folded:  make([]string, len(entries)),
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("builtin table entry %d has no name", i)
		}
		t.folded[i] = fold(e.Name)
	}
	return t, nil
}

func mustLoadBuiltin(data []byte) *BuiltinTable {
	t, err := LoadBuiltinTable(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of entries.
func (t *BuiltinTable) Len() int {
	return len(t.entries)
}

// Candidate is a table entry whose name occurs inside a day name.
type Candidate struct {
	Index  int    // position in the table
	Name   string // entry name as written in the table
	Length int    // length of the case-folded name, in characters
}

// Candidates returns every entry whose case-folded name is a substring of
// the case-folded day name, ranked by name length descending and then by
// table order ascending.
func (t *BuiltinTable) Candidates(dayName string) []Candidate {
	target := fold(dayName)
	if target == "" {
		return nil
	}

	var out []Candidate
	for i, name := range t.folded {
		if strings.Contains(target, name) {
			out = append(out, Candidate{
				Index:  i,
				Name:   t.entries[i].Name,
				Length: utf8.RuneCountInString(name),
			})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Length != out[b].Length {
			return out[a].Length > out[b].Length
		}
		return out[a].Index < out[b].Index
	})
	return out
}

// Lookup finds the readings for a day name: an exact case-insensitive match
// first, then the top-ranked substring candidate.
func (t *BuiltinTable) Lookup(dayName string) (BuiltinEntry, bool) {
	target := fold(dayName)
	if target == "" {
		return BuiltinEntry{}, false
	}

	for i, name := range t.folded {
		if name == target {
			return t.entries[i], true
		}
	}

	candidates := t.Candidates(dayName)
	if len(candidates) == 0 {
		return BuiltinEntry{}, false
	}
	return t.entries[candidates[0].Index], true
}

// fold normalizes a name for caseless comparison: NFC first, then Unicode
// case folding. A Caser holds state, so each call builds its own.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
