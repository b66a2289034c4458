package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teiscan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TEI.PoemTag != "lg" || cfg.TEI.PoemType != "poem" {
		t.Errorf("poem marker = %s/%s, want lg/poem", cfg.TEI.PoemTag, cfg.TEI.PoemType)
	}
	if cfg.TEI.GenreSchemeSuffix != "dwds1sub" || cfg.TEI.PeriodSchemeSuffix != "period" {
		t.Errorf("scheme suffixes = %s/%s", cfg.TEI.GenreSchemeSuffix, cfg.TEI.PeriodSchemeSuffix)
	}
	if cfg.TEI.Lenient || cfg.TEI.AllowUnqualified {
		t.Error("lenient decoding and unqualified names should be off by default")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log = %s/%s, want info/text", cfg.Log.Level, cfg.Log.Format)
	}
	if cfg.Lexicon.StemLanguage != "english" {
		t.Errorf("StemLanguage = %q, want english", cfg.Lexicon.StemLanguage)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeYAML(t, `
tei:
  poem_tag: div
  poem_type: gedicht
  lenient: true
  language: de
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TEI.PoemTag != "div" || cfg.TEI.PoemType != "gedicht" {
		t.Errorf("poem marker = %s/%s, want div/gedicht", cfg.TEI.PoemTag, cfg.TEI.PoemType)
	}
	if !cfg.TEI.Lenient {
		t.Error("Lenient should be read from YAML")
	}
	if cfg.TEI.TokenRefAttr != "tokenIDs" {
		t.Errorf("TokenRefAttr = %q, want default tokenIDs", cfg.TEI.TokenRefAttr)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, "tei:\n  poem_tag: div\n")
	t.Setenv("TEISCAN_POEM_TAG", "sp")
	t.Setenv("TEISCAN_ALLOW_UNQUALIFIED", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TEI.PoemTag != "sp" {
		t.Errorf("PoemTag = %q, want env value sp", cfg.TEI.PoemTag)
	}
	if !cfg.TEI.AllowUnqualified {
		t.Error("AllowUnqualified should be read from env")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should fail for a missing explicit file")
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		want string
	}{
		{"language", "TEISCAN_LANGUAGE", "not a tag!", "tei.language"},
		{"log level", "TEISCAN_LOG_LEVEL", "verbose", "log.level"},
		{"log format", "TEISCAN_LOG_FORMAT", "xml", "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.val)
			_, err := Load("")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestValidateEmptyName(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.TEI.TokenIDAttr = " "
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "tei.token_id_attr") {
		t.Errorf("Validate() = %v, want token_id_attr error", err)
	}
}

func TestTEIOptions(t *testing.T) {
	t.Setenv("TEISCAN_LENIENT", "true")
	t.Setenv("TEISCAN_LANGUAGE", "de")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	opts := cfg.TEIOptions(nil)
	if opts.Strict {
		t.Error("Strict should be false when lenient")
	}
	if opts.Language != language.German {
		t.Errorf("Language = %v, want de", opts.Language)
	}
	if opts.PoemTag != "lg" || opts.TokenIDAttr != "ID" {
		t.Errorf("options = %+v", opts)
	}
	if opts.PoemBuilder == nil {
		t.Error("PoemBuilder should default to the poem package")
	}
}
