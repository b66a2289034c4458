package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FocuswithJustin/teiscan/core/lexicon"
)

const poemFixture = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <author><persName><surname>Droste-Hülshoff</surname><forename>Annette von</forename></persName></author>
    <date type="publication">1844</date>
    <classCode scheme="#dwds1sub">Lyrik</classCode>
  </teiHeader>
  <text><body>
    <lg type="poem">
      <head>Im Moose</head>
      <l>Als jüngst die Nacht</l>
      <l>dem sonnenmüden Land</l>
    </lg>
  </body></text>
</TEI>
`

const tcfFixture = `<D-Spin xmlns="http://www.dspin.de/data"><TextCorpus xmlns="http://www.dspin.de/data/textcorpus">
<tokens><token ID="t1">Moose</token><token ID="t2">Land</token></tokens>
<phonetics><trs tokenIDs="t1">moːzə</trs></phonetics>
</TextCorpus></D-Spin>`

// Test helper functions

func createTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// captureStdout redirects command output into a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestReadCmd(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "droste.xml", poemFixture)
	out := captureStdout(t)

	cmd := &ReadCmd{Path: path}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var info DocumentInfo
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out.String())
	}
	if info.Author != "Droste-Hülshoff, Annette von" {
		t.Errorf("Author = %q", info.Author)
	}
	if info.Year != "1844" || info.Genre != "Lyrik" {
		t.Errorf("Year/Genre = %q/%q", info.Year, info.Genre)
	}
	if !info.Header || info.Size == "" || len(info.Digest) != 64 {
		t.Errorf("Header=%v Size=%q Digest=%q", info.Header, info.Size, info.Digest)
	}
	if len(info.Poems) != 1 || info.Poems[0].Title != "Im Moose" {
		t.Errorf("Poems = %+v", info.Poems)
	}
}

func TestPoemsCmdLines(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "droste.xml", poemFixture)
	out := captureStdout(t)

	cmd := &PoemsCmd{Path: path, Lines: true}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var poems []PoemInfo
	if err := json.Unmarshal(out.Bytes(), &poems); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(poems) != 1 || len(poems[0].Lines) != 2 {
		t.Fatalf("poems = %+v", poems)
	}
	if poems[0].Lines[1] != "dem sonnenmüden Land" {
		t.Errorf("second line = %q", poems[0].Lines[1])
	}
}

func TestHeaderCmd(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "droste.xml", poemFixture)
	out := captureStdout(t)

	cmd := &HeaderCmd{Path: path, Indent: "  "}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "<surname>Droste-Hülshoff</surname>") {
		t.Errorf("header output = %s", out.String())
	}
}

func TestTextCmd(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "droste.xml", poemFixture)
	out := captureStdout(t)

	cmd := &TextCmd{Path: path}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "Im Moose Als jüngst die Nacht dem sonnenmüden Land" {
		t.Errorf("text = %q", got)
	}
}

func TestGraphemesCmd(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "tcf.xml", tcfFixture)
	out := captureStdout(t)

	cmd := &GraphemesCmd{Path: path}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	var m map[string][]string
	if err := json.Unmarshal(out.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(m) != 1 || m["moose"][0] != "moːzə" {
		t.Errorf("graphemes = %v", m)
	}
}

func TestTokensCmd(t *testing.T) {
	path := createTestFile(t, t.TempDir(), "tcf.xml", tcfFixture)
	out := captureStdout(t)

	cmd := &TokensCmd{Path: path}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	var tokens []string
	if err := json.Unmarshal(out.Bytes(), &tokens); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if strings.Join(tokens, " ") != "Moose Land" {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	path := createTestFile(t, dir, "tcf.xml", tcfFixture)
	dbPath := filepath.Join(dir, "lexicon.db")
	out := captureStdout(t)

	cmd := &ExportCmd{Path: path, DB: dbPath}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var result struct {
		Digest     string `json:"digest"`
		Graphemes  int    `json:"graphemes"`
		Mismatches int    `json:"mismatches"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if result.Graphemes != 1 || result.Mismatches != 1 {
		t.Errorf("result = %+v", result)
	}

	store, err := lexicon.OpenStore(dbPath)
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer store.Close()
	m, err := store.Load(result.Digest)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := m.Phonemes("moose"); len(got) != 1 || got[0] != "moːzə" {
		t.Errorf("stored phonemes = %v", got)
	}
}

func TestVersionCmd(t *testing.T) {
	out := captureStdout(t)
	cmd := &VersionCmd{}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "teiscan version "+version) {
		t.Errorf("output = %q", out.String())
	}
}
