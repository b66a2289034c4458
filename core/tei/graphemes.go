package tei

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/FocuswithJustin/teiscan/core/errors"
	"github.com/FocuswithJustin/teiscan/core/lexicon"
	"github.com/FocuswithJustin/teiscan/internal/logging"
)

// JoinGraphemes joins tokens and transcriptions by identifier. For each
// token in insertion order the folded token text becomes the grapheme and
// the transcription text is appended to its phoneme list. Tokens without
// text, without a transcription, or whose transcription has no text are
// skipped; the number skipped is returned as mismatches and each one is
// logged at debug level.
func JoinGraphemes(tokens, transcriptions *Index, folder *lexicon.Folder, logger *slog.Logger) (m *lexicon.Map, mismatches int) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if folder == nil {
		folder = lexicon.NewFolder(language.Und)
	}
	m = lexicon.New()
	for _, tok := range tokens.records {
		reason := ""
		trs, ok := transcriptions.Get(tok.ID)
		switch {
		case !tok.HasText:
			reason = "token has no text"
		case !ok:
			reason = "no transcription"
		case !trs.HasText:
			reason = "transcription has no text"
		}
		if reason != "" {
			mismatches++
			logging.JoinMismatch(logger, &errors.JoinMismatchError{TokenID: tok.ID, Reason: reason})
			continue
		}
		m.Add(folder.Fold(tok.Text), trs.Text)
	}
	return m, mismatches
}
