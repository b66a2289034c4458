package tei

import (
	"github.com/FocuswithJustin/teiscan/core/lexicon"
	"github.com/FocuswithJustin/teiscan/internal/logging"
)

// GraphemePhonemes scans path for token and trs elements and joins them
// into a grapheme to phoneme map. See JoinGraphemes.
func GraphemePhonemes(path string, opts ...Option) (*lexicon.Map, error) {
	return graphemePhonemes(path, buildOptions(opts))
}

// Sentences scans path for token and sentence elements and returns the
// token index and the sentence index. Sentence references are not checked
// against the token index.
func Sentences(path string, opts ...Option) (*Index, *SentenceIndex, error) {
	return sentences(path, buildOptions(opts))
}

// TranscriptionTexts returns the text of every trs element with text, in
// scan order.
func TranscriptionTexts(path string, opts ...Option) ([]string, error) {
	return transcriptionTexts(path, buildOptions(opts))
}

// TokenTexts returns the text of every token element with text, in scan
// order.
func TokenTexts(path string, opts ...Option) ([]string, error) {
	return tokenTexts(path, buildOptions(opts))
}

func graphemePhonemes(path string, opts Options) (*lexicon.Map, error) {
	res, err := scan(path, PassTokens|PassTranscriptions, opts, metadata{})
	if res == nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger = logger.With("path", path)
	m, mismatches := JoinGraphemes(res.Tokens, res.Transcriptions, lexicon.NewFolder(opts.Language), logger)
	logger.Debug("graphemes_joined",
		"graphemes", m.Len(),
		"tokens", res.Tokens.Len(),
		"mismatches", mismatches,
	)
	return m, err
}

func sentences(path string, opts Options) (*Index, *SentenceIndex, error) {
	res, err := scan(path, PassTokens|PassSentences, opts, metadata{})
	if res == nil {
		return nil, nil, err
	}
	return res.Tokens, res.Sentences, err
}

func transcriptionTexts(path string, opts Options) ([]string, error) {
	res, err := scan(path, PassTranscriptionTexts, opts, metadata{})
	if res == nil {
		return nil, err
	}
	return nonNil(res.TranscriptionTexts), err
}

func tokenTexts(path string, opts Options) ([]string, error) {
	res, err := scan(path, PassTokenTexts, opts, metadata{})
	if res == nil {
		return nil, err
	}
	return nonNil(res.TokenTexts), err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
