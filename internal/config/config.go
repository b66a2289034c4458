// Package config loads teiscan settings from YAML and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/text/language"

	"github.com/FocuswithJustin/teiscan/core/tei"
)

// Config is the root configuration.
type Config struct {
	TEI     TEIConfig     `yaml:"tei"`
	Log     LogConfig     `yaml:"log"`
	Lexicon LexiconConfig `yaml:"lexicon"`
}

// TEIConfig controls tag dispatch. Defaults follow the DTA basis format.
type TEIConfig struct {
	PoemTag             string `yaml:"poem_tag"              env:"TEISCAN_POEM_TAG"              env-default:"lg"`
	PoemType            string `yaml:"poem_type"             env:"TEISCAN_POEM_TYPE"             env-default:"poem"`
	GenreSchemeSuffix   string `yaml:"genre_scheme_suffix"   env:"TEISCAN_GENRE_SCHEME_SUFFIX"   env-default:"dwds1sub"`
	PeriodSchemeSuffix  string `yaml:"period_scheme_suffix"  env:"TEISCAN_PERIOD_SCHEME_SUFFIX"  env-default:"period"`
	PublicationDateType string `yaml:"publication_date_type" env:"TEISCAN_PUBLICATION_DATE_TYPE" env-default:"publication"`
	TokenIDAttr         string `yaml:"token_id_attr"         env:"TEISCAN_TOKEN_ID_ATTR"         env-default:"ID"`
	TokenRefAttr        string `yaml:"token_ref_attr"        env:"TEISCAN_TOKEN_REF_ATTR"        env-default:"tokenIDs"`
	// Lenient tolerates HTML entities and unbalanced tags.
	Lenient          bool   `yaml:"lenient"           env:"TEISCAN_LENIENT"`
	AllowUnqualified bool   `yaml:"allow_unqualified" env:"TEISCAN_ALLOW_UNQUALIFIED"`
	Language         string `yaml:"language"          env:"TEISCAN_LANGUAGE"          env-default:"und"`
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	Level  string `yaml:"level"  env:"TEISCAN_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"TEISCAN_LOG_FORMAT" env-default:"text"`
}

// LexiconConfig controls lexicon export.
type LexiconConfig struct {
	StemLanguage string `yaml:"stem_language" env:"TEISCAN_STEM_LANGUAGE" env-default:"english"`
	Database     string `yaml:"database"      env:"TEISCAN_LEXICON_DB"    env-default:"lexicon.db"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). With an empty
// path only ENV and defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks that every name is set and every enumerated value is known.
func (c *Config) Validate() error {
	names := []struct {
		key, value string
	}{
		{"tei.poem_tag", c.TEI.PoemTag},
		{"tei.poem_type", c.TEI.PoemType},
		{"tei.genre_scheme_suffix", c.TEI.GenreSchemeSuffix},
		{"tei.period_scheme_suffix", c.TEI.PeriodSchemeSuffix},
		{"tei.publication_date_type", c.TEI.PublicationDateType},
		{"tei.token_id_attr", c.TEI.TokenIDAttr},
		{"tei.token_ref_attr", c.TEI.TokenRefAttr},
		{"lexicon.stem_language", c.Lexicon.StemLanguage},
	}
	for _, n := range names {
		if strings.TrimSpace(n.value) == "" {
			return fmt.Errorf("%s must not be empty", n.key)
		}
	}

	if _, err := language.Parse(c.TEI.Language); err != nil {
		return fmt.Errorf("tei.language %q: %w", c.TEI.Language, err)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: want text or json", c.Log.Format)
	}
	return nil
}

// TEIOptions converts the TEI section into scanner options.
func (c *Config) TEIOptions(logger *slog.Logger) tei.Options {
	opts := tei.DefaultOptions()
	opts.PoemTag = c.TEI.PoemTag
	opts.PoemType = c.TEI.PoemType
	opts.GenreSchemeSuffix = c.TEI.GenreSchemeSuffix
	opts.PeriodSchemeSuffix = c.TEI.PeriodSchemeSuffix
	opts.PublicationDateType = c.TEI.PublicationDateType
	opts.TokenIDAttr = c.TEI.TokenIDAttr
	opts.TokenRefAttr = c.TEI.TokenRefAttr
	opts.Strict = !c.TEI.Lenient
	opts.AllowUnqualified = c.TEI.AllowUnqualified
	if tag, err := language.Parse(c.TEI.Language); err == nil {
		opts.Language = tag
	}
	opts.Logger = logger
	return opts
}
