// Package lexicon holds grapheme to phoneme mappings built from transcribed
// token layers, together with helpers to fold, group and persist them.
package lexicon

import (
	"encoding/json"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Map is a one-to-many mapping from a folded grapheme to the phoneme strings
// observed for it, in the order they were added. Entries are never removed.
// The zero value is ready to use.
type Map struct {
	entries map[string][]string
	order   []string
}

// New returns an empty Map.
func New() *Map {
	return &Map{entries: make(map[string][]string)}
}

// Add appends phoneme to the list for grapheme.
func (m *Map) Add(grapheme, phoneme string) {
	if m.entries == nil {
		m.entries = make(map[string][]string)
	}
	if _, ok := m.entries[grapheme]; !ok {
		m.order = append(m.order, grapheme)
	}
	m.entries[grapheme] = append(m.entries[grapheme], phoneme)
}

// Phonemes returns the phonemes recorded for grapheme. The returned slice
// must not be modified.
func (m *Map) Phonemes(grapheme string) []string {
	return m.entries[grapheme]
}

// Len returns the number of distinct graphemes.
func (m *Map) Len() int {
	return len(m.order)
}

// Graphemes returns the graphemes in first-seen order.
func (m *Map) Graphemes() []string {
	return append([]string(nil), m.order...)
}

// Sorted returns the graphemes in lexical order.
func (m *Map) Sorted() []string {
	keys := m.Graphemes()
	sort.Strings(keys)
	return keys
}

// Entries returns a copy of the mapping.
func (m *Map) Entries() map[string][]string {
	out := make(map[string][]string, len(m.entries))
	for k, v := range m.entries {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// MarshalJSON encodes the map as a JSON object of string arrays.
func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Entries())
}

// Folder lower-cases graphemes with Unicode case mapping. A Folder is not
// safe for concurrent use.
type Folder struct {
	caser cases.Caser
}

// NewFolder returns a Folder for the given language. language.Und applies
// the default Unicode mapping without locale tailoring.
func NewFolder(tag language.Tag) *Folder {
	return &Folder{caser: cases.Lower(tag)}
}

// Fold returns the lower-cased form of s.
func (f *Folder) Fold(s string) string {
	return f.caser.String(s)
}

// Fold lower-cases s with the default Unicode mapping.
func Fold(s string) string {
	return NewFolder(language.Und).Fold(s)
}
