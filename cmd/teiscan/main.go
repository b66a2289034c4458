// Command teiscan extracts metadata, poems and grapheme/phoneme tables from
// TEI corpus documents and prints them as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/FocuswithJustin/teiscan/core/errors"
	"github.com/FocuswithJustin/teiscan/core/lexicon"
	"github.com/FocuswithJustin/teiscan/core/poem"
	"github.com/FocuswithJustin/teiscan/core/sqlite"
	"github.com/FocuswithJustin/teiscan/core/tei"
	"github.com/FocuswithJustin/teiscan/core/xml"
	"github.com/FocuswithJustin/teiscan/internal/config"
	"github.com/FocuswithJustin/teiscan/internal/logging"
)

const version = "0.1.0"

// stdout receives command output; tests replace it.
var stdout io.Writer = os.Stdout

// CLI defines the command-line interface for teiscan.
var CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"YAML configuration file" type:"path"`
	LogLevel  string `name:"log-level" help:"Override log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Override log format (text, json)"`

	Read           ReadCmd           `cmd:"" help:"Read header, metadata and poems in one pass"`
	Header         HeaderCmd         `cmd:"" help:"Print the teiHeader"`
	Poems          PoemsCmd          `cmd:"" help:"List poems with their metadata"`
	Graphemes      GraphemesCmd      `cmd:"" help:"Print the grapheme to phoneme map"`
	Sentences      SentencesCmd      `cmd:"" help:"Print token and sentence indices"`
	Tokens         TokensCmd         `cmd:"" help:"Print token texts in document order"`
	Transcriptions TranscriptionsCmd `cmd:"" help:"Print transcription texts in document order"`
	Text           TextCmd           `cmd:"" help:"Print the normalized body text"`
	Export         ExportCmd         `cmd:"" help:"Store the grapheme to phoneme map in SQLite"`
	Version        VersionCmd        `cmd:"" help:"Print version information"`
}

// env is the configuration shared by all commands.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	opts   tei.Options
}

// setup loads configuration, applies flag overrides and initializes logging.
func setup() (*env, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.Log.Format = CLI.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	logging.InitLogger(os.Stderr, logging.ParseLevel(cfg.Log.Level), logging.ParseFormat(cfg.Log.Format))
	logger := logging.GetLogger()
	return &env{cfg: cfg, logger: logger, opts: cfg.TEIOptions(logger)}, nil
}

func (e *env) document(path string) *tei.Document {
	return tei.NewDocument(path, tei.WithOptions(e.opts))
}

func writeJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// finish prints v when the scan produced results. A stream that broke off
// midway still prints what was collected before the error is reported.
func finish(v any, err error) error {
	var parseErr *errors.ParseError
	if err != nil && !errors.As(err, &parseErr) {
		return err
	}
	if werr := writeJSON(v); werr != nil {
		return werr
	}
	return err
}

// PoemInfo is the JSON form of a poem.
type PoemInfo struct {
	Title  string   `json:"title"`
	Author string   `json:"author,omitempty"`
	Year   string   `json:"year,omitempty"`
	Period string   `json:"period,omitempty"`
	Line   int      `json:"line,omitempty"`
	Lines  []string `json:"lines,omitempty"`
}

func poemInfos(poems []tei.Poem, withLines bool) []PoemInfo {
	infos := make([]PoemInfo, 0, len(poems))
	for _, p := range poems {
		info := PoemInfo{Title: p.Title(), Period: p.Period()}
		if pp, ok := p.(*poem.Poem); ok {
			info.Author = pp.Author()
			info.Year = pp.Year()
			info.Line = pp.Line()
			if withLines {
				info.Lines = pp.Lines()
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// DocumentInfo is the JSON form of a read document.
type DocumentInfo struct {
	Path   string     `json:"path"`
	Size   string     `json:"size,omitempty"`
	Digest string     `json:"digest"`
	Author string     `json:"author"`
	Year   string     `json:"year"`
	Genre  string     `json:"genre"`
	Period string     `json:"period"`
	Header bool       `json:"header"`
	Poems  []PoemInfo `json:"poems"`
}

// ReadCmd reads a document.
type ReadCmd struct {
	Path string `arg:"" help:"TEI document" type:"existingfile"`
}

func (c *ReadCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	doc := e.document(c.Path)
	err = doc.Read()

	info := DocumentInfo{
		Path:   doc.Path(),
		Digest: doc.Digest(),
		Author: doc.Author(),
		Year:   doc.Year(),
		Genre:  doc.Genre(),
		Period: doc.Period(),
		Header: doc.Header() != nil,
		Poems:  poemInfos(doc.Poems(), false),
	}
	if st, serr := os.Stat(c.Path); serr == nil {
		info.Size = humanize.Bytes(uint64(st.Size()))
	}
	return finish(info, err)
}

// HeaderCmd prints the teiHeader.
type HeaderCmd struct {
	Path   string `arg:"" help:"TEI document" type:"existingfile"`
	Indent string `help:"Indentation" default:"  "`
}

func (c *HeaderCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	doc := e.document(c.Path)
	if err := doc.FindHeader(); err != nil {
		return err
	}
	if doc.Header() == nil {
		return fmt.Errorf("%s: no teiHeader", c.Path)
	}
	out, err := xml.Format([]byte(doc.Header().OutputXML()), xml.FormatOptions{Indent: c.Indent})
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

// PoemsCmd lists poems.
type PoemsCmd struct {
	Path  string `arg:"" help:"TEI document" type:"existingfile"`
	Lines bool   `help:"Include verse lines"`
}

func (c *PoemsCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	doc := e.document(c.Path)
	err = doc.Read()
	return finish(poemInfos(doc.Poems(), c.Lines), err)
}

// GraphemesCmd prints the grapheme to phoneme map.
type GraphemesCmd struct {
	Path  string `arg:"" help:"TCF document" type:"existingfile"`
	Stems bool   `help:"Group graphemes by Snowball stem"`
}

func (c *GraphemesCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	m, err := tei.GraphemePhonemes(c.Path, tei.WithOptions(e.opts))
	if m == nil {
		return err
	}
	if !c.Stems {
		return finish(m, err)
	}

	groups, serr := lexicon.StemGroups(m, e.cfg.Lexicon.StemLanguage)
	if serr != nil {
		return serr
	}
	return finish(groups, err)
}

// SentencesCmd prints token and sentence indices.
type SentencesCmd struct {
	Path string `arg:"" help:"TCF document" type:"existingfile"`
}

func (c *SentencesCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	tokens, sentences, err := tei.Sentences(c.Path, tei.WithOptions(e.opts))
	if tokens == nil {
		return err
	}
	return finish(struct {
		Tokens    []tei.Record   `json:"tokens"`
		Sentences []tei.Sentence `json:"sentences"`
	}{tokens.Records(), sentences.Sentences()}, err)
}

// TokensCmd prints token texts.
type TokensCmd struct {
	Path string `arg:"" help:"TCF document" type:"existingfile"`
}

func (c *TokensCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	texts, err := tei.TokenTexts(c.Path, tei.WithOptions(e.opts))
	if texts == nil {
		return err
	}
	return finish(texts, err)
}

// TranscriptionsCmd prints transcription texts.
type TranscriptionsCmd struct {
	Path string `arg:"" help:"TCF document" type:"existingfile"`
}

func (c *TranscriptionsCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	texts, err := tei.TranscriptionTexts(c.Path, tei.WithOptions(e.opts))
	if texts == nil {
		return err
	}
	return finish(texts, err)
}

// TextCmd prints the body text.
type TextCmd struct {
	Path string `arg:"" help:"TEI document" type:"existingfile"`
}

func (c *TextCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	text, err := e.document(c.Path).FindText()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, text)
	return err
}

// ExportCmd stores the grapheme to phoneme map of a document in SQLite.
type ExportCmd struct {
	Path string `arg:"" help:"TCF document" type:"existingfile"`
	DB   string `name:"db" help:"SQLite database (default from config)" type:"path"`
}

func (c *ExportCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	dbPath := c.DB
	if dbPath == "" {
		dbPath = e.cfg.Lexicon.Database
	}

	res, err := e.document(c.Path).Scan(tei.PassTokens | tei.PassTranscriptions)
	if err != nil {
		return err
	}
	m, mismatches := tei.JoinGraphemes(res.Tokens, res.Transcriptions, lexicon.NewFolder(e.opts.Language), e.logger)

	store, err := lexicon.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Save(res.Digest, c.Path, m); err != nil {
		return err
	}

	e.logger.Info("lexicon_exported",
		"db", dbPath,
		"digest", res.Digest,
		"graphemes", humanize.Comma(int64(m.Len())),
		"unmatched_tokens", humanize.Comma(int64(mismatches)),
		"driver", sqlite.DriverType(),
	)
	return writeJSON(struct {
		Digest     string `json:"digest"`
		Database   string `json:"database"`
		Graphemes  int    `json:"graphemes"`
		Mismatches int    `json:"mismatches"`
	}{res.Digest, dbPath, m.Len(), mismatches})
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := sqlite.GetInfo()
	fmt.Fprintf(stdout, "teiscan version %s (sqlite: %s)\n", version, info.DriverType)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("teiscan"),
		kong.Description("teiscan - streaming extraction from TEI corpus documents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
