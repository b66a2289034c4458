package lexicon

import (
	"fmt"
	"sort"

	"github.com/kljensen/snowball"
)

// DefaultStemLanguage is the Snowball language used when none is configured.
// The Go Snowball port ships no German stemmer, so callers working on German
// corpora pick the closest available language or skip stem grouping.
const DefaultStemLanguage = "english"

// StemGroups groups the graphemes of m by their Snowball stem so inflected
// forms of one word can be looked up together. Each group lists graphemes in
// first-seen order. An empty lang uses DefaultStemLanguage; an unsupported
// one is reported before any grouping.
func StemGroups(m *Map, lang string) (map[string][]string, error) {
	if lang == "" {
		lang = DefaultStemLanguage
	}
	if _, err := snowball.Stem("probe", lang, true); err != nil {
		return nil, fmt.Errorf("stem language %q: %w", lang, err)
	}

	groups := make(map[string][]string)
	for _, g := range m.order {
		stem, err := snowball.Stem(g, lang, true)
		if err != nil {
			stem = g
		}
		groups[stem] = append(groups[stem], g)
	}
	return groups, nil
}

// StemKeys returns the keys of a StemGroups result in lexical order.
func StemKeys(groups map[string][]string) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
