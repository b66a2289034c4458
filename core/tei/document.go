// Package tei extracts metadata, poems and token/transcription tables from
// TEI corpus documents in one forward pass over the XML stream.
//
// Every entry point opens its own handle on the source and releases it
// before returning. A Document keeps the results of its scans; the
// standalone queries return theirs directly.
package tei

import (
	"github.com/FocuswithJustin/teiscan/core/lexicon"
	"github.com/FocuswithJustin/teiscan/core/xml"
)

// Document is one TEI source together with the metadata and poems
// extracted from it. It is not safe for concurrent use.
type Document struct {
	path string
	opts Options

	header *xml.Node
	author string
	year   string
	genre  string
	period string
	poems  []Poem
	text   string
	digest string
}

// NewDocument returns a Document for path. Nothing is read until one of the
// scanning methods is called.
func NewDocument(path string, opts ...Option) *Document {
	return &Document{
		path:  path,
		opts:  buildOptions(opts),
		poems: []Poem{},
	}
}

// Read captures the header, metadata and poems in a single pass.
func (d *Document) Read() error {
	_, err := d.Scan(PassRead)
	return err
}

// FindHeader captures the teiHeader subtree. The last header wins.
func (d *Document) FindHeader() error {
	_, err := d.Scan(PassHeader)
	return err
}

// FindMetadata collects author, year, genre and period.
func (d *Document) FindMetadata() error {
	_, err := d.Scan(PassMetadata)
	return err
}

// FindPoems collects the poems. Poems receive the metadata the document
// already holds plus whatever the scan finds before each poem starts.
func (d *Document) FindPoems() error {
	_, err := d.Scan(PassPoems)
	return err
}

// FindText returns the whitespace-normalized text content of the document's
// text element, or "" if there is none.
func (d *Document) FindText() (string, error) {
	_, err := d.Scan(PassText)
	return d.text, err
}

// Scan runs one pass with the given accumulators and merges the results
// into the document. A scan that stopped on a malformed stream still merges
// what it collected and returns the error alongside.
func (d *Document) Scan(passes Pass) (*Result, error) {
	res, err := scan(d.path, passes, d.opts, metadata{
		header: d.header,
		author: d.author,
		year:   d.year,
		genre:  d.genre,
		period: d.period,
	})
	if res == nil {
		return nil, err
	}

	d.header = res.Header
	d.author = res.Author
	d.year = res.Year
	d.genre = res.Genre
	d.period = res.Period
	if passes.Has(PassPoems) {
		d.poems = res.Poems
	}
	if passes.Has(PassText) {
		d.text = res.Text
	}
	d.digest = res.Digest
	return res, err
}

// Path returns the source path.
func (d *Document) Path() string { return d.path }

// Author returns the composed author name, or "".
func (d *Document) Author() string { return d.author }

// Year returns the publication year, or "".
func (d *Document) Year() string { return d.year }

// Header returns the captured teiHeader, or nil.
func (d *Document) Header() *xml.Node { return d.header }

// Genre returns the genre classification, or "".
func (d *Document) Genre() string { return d.genre }

// Period returns the period classification, or "".
func (d *Document) Period() string { return d.period }

// Poems returns the poems in document order.
func (d *Document) Poems() []Poem { return d.poems }

// Digest returns the BLAKE3 hex digest of the source bytes read by the
// last scan.
func (d *Document) Digest() string { return d.digest }

// GraphemePhonemes builds the grapheme to phoneme map of the document.
func (d *Document) GraphemePhonemes() (*lexicon.Map, error) {
	return graphemePhonemes(d.path, d.opts)
}

// Sentences indexes the document's tokens and sentences.
func (d *Document) Sentences() (*Index, *SentenceIndex, error) {
	return sentences(d.path, d.opts)
}

// TranscriptionTexts lists the document's transcription texts.
func (d *Document) TranscriptionTexts() ([]string, error) {
	return transcriptionTexts(d.path, d.opts)
}

// TokenTexts lists the document's token texts.
func (d *Document) TokenTexts() ([]string, error) {
	return tokenTexts(d.path, d.opts)
}
