package tei

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/FocuswithJustin/teiscan/core/poem"
	"github.com/FocuswithJustin/teiscan/core/xml"
)

// Poem is the entity built for each poem-boundary element. The engine only
// triggers title discovery and period assignment; everything else about a
// poem is up to the implementation.
type Poem interface {
	FindTitle()
	SetPeriod(period string)
	Title() string
	Period() string
}

// PoemBuilder constructs a Poem from its subtree, the document header (nil
// if none was seen yet) and the author and year known at its start tag.
type PoemBuilder func(node, header *xml.Node, author, year string) Poem

// DefaultPoemBuilder builds *poem.Poem values.
func DefaultPoemBuilder(node, header *xml.Node, author, year string) Poem {
	return poem.New(node, header, author, year)
}

// Options controls tag dispatch and scanner behavior.
type Options struct {
	// PoemTag is the local name of poem-boundary elements.
	PoemTag string
	// PoemType is the value of the type attribute marking a poem.
	PoemType string
	// GenreSchemeSuffix selects classCode elements holding the genre.
	GenreSchemeSuffix string
	// PeriodSchemeSuffix selects classCode elements holding the period.
	PeriodSchemeSuffix string
	// PublicationDateType is the date type attribute holding the year.
	PublicationDateType string
	// TokenIDAttr is the identifier attribute of token and sentence elements.
	TokenIDAttr string
	// TokenRefAttr is the token reference attribute of trs and sentence elements.
	TokenRefAttr string

	// Strict rejects unknown entities and unbalanced tags in the decoder.
	Strict bool
	// AllowUnqualified dispatches elements without a namespace on their raw
	// name instead of skipping them.
	AllowUnqualified bool
	// Language tailors grapheme case folding. language.Und applies the
	// default Unicode mapping.
	Language language.Tag

	// Logger receives scan diagnostics. Nil uses the global logger.
	Logger *slog.Logger
	// PoemBuilder constructs poems. Nil uses DefaultPoemBuilder.
	PoemBuilder PoemBuilder
}

// DefaultOptions returns the options for DTA basis format documents.
func DefaultOptions() Options {
	return Options{
		PoemTag:             "lg",
		PoemType:            "poem",
		GenreSchemeSuffix:   "dwds1sub",
		PeriodSchemeSuffix:  "period",
		PublicationDateType: "publication",
		TokenIDAttr:         "ID",
		TokenRefAttr:        "tokenIDs",
		Strict:              true,
		Language:            language.Und,
		PoemBuilder:         DefaultPoemBuilder,
	}
}

// Option modifies Options.
type Option func(*Options)

// WithOptions replaces all options. Empty names fall back to the defaults.
func WithOptions(o Options) Option {
	return func(dst *Options) {
		def := DefaultOptions()
		fill(&o.PoemTag, def.PoemTag)
		fill(&o.PoemType, def.PoemType)
		fill(&o.GenreSchemeSuffix, def.GenreSchemeSuffix)
		fill(&o.PeriodSchemeSuffix, def.PeriodSchemeSuffix)
		fill(&o.PublicationDateType, def.PublicationDateType)
		fill(&o.TokenIDAttr, def.TokenIDAttr)
		fill(&o.TokenRefAttr, def.TokenRefAttr)
		if o.PoemBuilder == nil {
			o.PoemBuilder = def.PoemBuilder
		}
		*dst = o
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithPoemBuilder sets the poem constructor.
func WithPoemBuilder(b PoemBuilder) Option {
	return func(o *Options) {
		if b != nil {
			o.PoemBuilder = b
		}
	}
}

// WithStrict toggles strict XML decoding.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithAllowUnqualified toggles dispatch of elements without a namespace.
func WithAllowUnqualified(allow bool) Option {
	return func(o *Options) { o.AllowUnqualified = allow }
}

func fill(s *string, def string) {
	if *s == "" {
		*s = def
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
