package tei

import (
	stdxml "encoding/xml"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/FocuswithJustin/teiscan/core/errors"
	"github.com/FocuswithJustin/teiscan/core/xml"
	"github.com/FocuswithJustin/teiscan/internal/logging"
	"github.com/FocuswithJustin/teiscan/internal/source"
)

// Result holds every accumulator of one scan. Metadata fields start from
// the seed passed to the scan, so a scan that never sees an author keeps
// the seeded one.
type Result struct {
	Passes Pass

	Header *xml.Node
	Author string
	Year   string
	Genre  string
	Period string
	Poems  []Poem

	Tokens             *Index
	Transcriptions     *Index
	Sentences          *SentenceIndex
	TokenTexts         []string
	TranscriptionTexts []string
	Text               string

	// Digest is the BLAKE3 hex digest of the raw bytes consumed.
	Digest string
	// Elements counts start tags seen.
	Elements int
	// Malformed counts elements skipped for lacking a namespace.
	Malformed int
}

// metadata is the document state a scan starts from.
type metadata struct {
	header *xml.Node
	author string
	year   string
	genre  string
	period string
}

// frame is the per-element state between a start tag and its end tag.
type frame struct {
	kind string    // dispatch key, empty when the end tag needs no handling
	node *xml.Node // captured subtree, nil when not captured
	attr string    // attribute value read at the start tag
	slot int       // reserved poem slot
	seen metadata  // metadata known at the start tag (poems only)
}

const (
	kindHeader    = "teiHeader"
	kindAuthor    = "author"
	kindDate      = "date"
	kindClassCode = "classCode"
	kindPoem      = "poem"
	kindToken     = "token"
	kindTrs       = "trs"
	kindText      = "text"
)

type scanner struct {
	path    string
	passes  Pass
	opts    Options
	logger  *slog.Logger
	decoder *stdxml.Decoder
	builder *xml.TreeBuilder
	frames  []frame
	res     *Result
}

// scan performs one forward pass over path updating the accumulators
// selected by passes. The source handle is released on every return path.
// On a decoder failure the results gathered so far are returned together
// with a *errors.ParseError or *errors.IOError.
func scan(path string, passes Pass, opts Options, seed metadata) (*Result, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	s := &scanner{
		path:    path,
		passes:  passes,
		opts:    opts,
		logger:  logging.ForScan(opts.Logger, path),
		decoder: xml.NewDecoder(src, opts.Strict),
		builder: xml.NewTreeBuilder(),
		res: &Result{
			Passes:         passes,
			Header:         seed.header,
			Author:         seed.author,
			Year:           seed.year,
			Genre:          seed.genre,
			Period:         seed.period,
			Poems:          []Poem{},
			Tokens:         NewIndex(),
			Transcriptions: NewIndex(),
			Sentences:      NewSentenceIndex(),
		},
	}
	if s.opts.PoemBuilder == nil {
		s.opts.PoemBuilder = DefaultPoemBuilder
	}

	start := time.Now()
	logging.ScanStart(s.logger, passes.String(),
		"compression", string(src.Compression()),
		"bytes", src.Size(),
	)

	err = s.run()
	s.flush()
	s.res.Digest = src.Digest()

	logging.ScanDone(s.logger, s.res.Elements, time.Since(start),
		"poems", len(s.res.Poems),
		"malformed", s.res.Malformed,
	)
	return s.res, err
}

func (s *scanner) run() error {
	for {
		tok, err := s.decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var syntax *stdxml.SyntaxError
			if errors.As(err, &syntax) {
				s.logger.Warn("scan_aborted", "error", err.Error(), "line", syntax.Line)
				return errors.NewParse("TEI", s.path, err)
			}
			return errors.NewIO("read", s.path, err)
		}

		switch t := tok.(type) {
		case stdxml.StartElement:
			s.start(t)
		case stdxml.EndElement:
			s.end()
		case stdxml.CharData:
			if s.builder.Active() {
				line, _ := s.decoder.InputPos()
				s.builder.Text(t, line)
			}
		}
	}
}

// localName resolves the dispatch name of an element, or "" when the
// element is skipped.
func (s *scanner) localName(se stdxml.StartElement) string {
	name := xml.NameOf(se.Name)
	local, err := name.LocalName()
	if err == nil {
		return local
	}
	if s.opts.AllowUnqualified {
		return name.Local
	}
	s.res.Malformed++
	line, col := s.decoder.InputPos()
	logging.MalformedTag(s.logger, name.Local, line, col)
	return ""
}

func (s *scanner) start(se stdxml.StartElement) {
	s.res.Elements++
	f := frame{slot: -1}

	switch s.localName(se) {
	case "teiHeader":
		if s.passes.Has(PassHeader) {
			f.kind = kindHeader
		}
	case "author":
		if s.passes.Has(PassMetadata) {
			f.kind = kindAuthor
		}
	case "date":
		if s.passes.Has(PassMetadata) && attr(se, "type") == s.opts.PublicationDateType {
			f.kind = kindDate
		}
	case "classCode":
		if s.passes.Has(PassMetadata) {
			f.kind = kindClassCode
			f.attr = attr(se, "scheme")
		}
	case s.opts.PoemTag:
		if s.passes.Has(PassPoems) && attr(se, "type") == s.opts.PoemType {
			f.kind = kindPoem
			f.slot = len(s.res.Poems)
			f.seen = s.snapshot()
			s.res.Poems = append(s.res.Poems, nil)
		}
	case "token":
		if s.passes.Any(PassTokens | PassTokenTexts) {
			f.kind = kindToken
			f.attr = attr(se, s.opts.TokenIDAttr)
		}
	case "trs":
		if s.passes.Any(PassTranscriptions | PassTranscriptionTexts) {
			f.kind = kindTrs
			f.attr = attr(se, s.opts.TokenRefAttr)
		}
	case "sentence":
		if s.passes.Has(PassSentences) {
			s.res.Sentences.Set(attr(se, s.opts.TokenIDAttr), strings.Fields(attr(se, s.opts.TokenRefAttr)))
		}
	case "text":
		if s.passes.Has(PassText) {
			f.kind = kindText
		}
	}

	line, _ := s.decoder.InputPos()
	f.node = s.builder.Start(se, line, f.kind != "")
	s.frames = append(s.frames, f)
}

func (s *scanner) end() {
	s.builder.End()
	if len(s.frames) == 0 {
		return
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	s.handle(f)
}

func (s *scanner) handle(f frame) {
	switch f.kind {
	case kindHeader:
		s.res.Header = f.node
	case kindAuthor:
		s.author(f.node)
	case kindDate:
		s.res.Year, _ = f.node.LeadingText()
	case kindClassCode:
		s.classCode(f.attr, f.node)
	case kindPoem:
		s.poem(f)
	case kindToken:
		text, ok := f.node.LeadingText()
		if s.passes.Has(PassTokens) {
			s.res.Tokens.Set(f.attr, text, ok)
		}
		if s.passes.Has(PassTokenTexts) && ok {
			s.res.TokenTexts = append(s.res.TokenTexts, text)
		}
	case kindTrs:
		text, ok := f.node.LeadingText()
		if s.passes.Has(PassTranscriptions) {
			s.res.Transcriptions.Set(f.attr, text, ok)
		}
		if s.passes.Has(PassTranscriptionTexts) && ok {
			s.res.TranscriptionTexts = append(s.res.TranscriptionTexts, text)
		}
	case kindText:
		s.res.Text = normalizeSpace(f.node.InnerText())
	}
}

// flush builds poems whose end tag never arrived, innermost first.
func (s *scanner) flush() {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == kindPoem {
			s.poem(s.frames[i])
		}
	}
	s.frames = nil
}

func (s *scanner) snapshot() metadata {
	return metadata{
		header: s.res.Header,
		author: s.res.Author,
		year:   s.res.Year,
		period: s.res.Period,
	}
}

func attr(se stdxml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
