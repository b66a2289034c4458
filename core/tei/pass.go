package tei

import "strings"

// Pass selects the accumulators a scan updates.
type Pass uint16

const (
	// PassHeader captures the teiHeader subtree.
	PassHeader Pass = 1 << iota
	// PassMetadata collects author, year, genre and period.
	PassMetadata
	// PassPoems collects poem-boundary elements.
	PassPoems
	// PassTokens indexes token text by identifier.
	PassTokens
	// PassTranscriptions indexes trs text by token reference.
	PassTranscriptions
	// PassSentences indexes sentence token references.
	PassSentences
	// PassText captures the normalized text of the text element.
	PassText
	// PassTokenTexts lists every token text in scan order.
	PassTokenTexts
	// PassTranscriptionTexts lists every trs text in scan order.
	PassTranscriptionTexts

	// PassRead is what Document.Read performs.
	PassRead = PassHeader | PassMetadata | PassPoems
	// PassAll enables every accumulator.
	PassAll = PassRead | PassTokens | PassTranscriptions | PassSentences |
		PassText | PassTokenTexts | PassTranscriptionTexts
)

var passNames = []struct {
	pass Pass
	name string
}{
	{PassHeader, "header"},
	{PassMetadata, "metadata"},
	{PassPoems, "poems"},
	{PassTokens, "tokens"},
	{PassTranscriptions, "transcriptions"},
	{PassSentences, "sentences"},
	{PassText, "text"},
	{PassTokenTexts, "token_texts"},
	{PassTranscriptionTexts, "transcription_texts"},
}

// Has reports whether every pass in q is enabled.
func (p Pass) Has(q Pass) bool {
	return p&q == q
}

// Any reports whether at least one pass in q is enabled.
func (p Pass) Any(q Pass) bool {
	return p&q != 0
}

func (p Pass) String() string {
	if p == 0 {
		return "none"
	}
	var names []string
	for _, pn := range passNames {
		if p.Has(pn.pass) {
			names = append(names, pn.name)
		}
	}
	return strings.Join(names, "|")
}
