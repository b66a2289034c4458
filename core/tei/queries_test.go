package tei

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/FocuswithJustin/teiscan/core/lexicon"
)

func TestGraphemePhonemes(t *testing.T) {
	var buf bytes.Buffer
	m, err := GraphemePhonemes(writeFixture(t, "tcf.xml", tcfFixture), WithLogger(bufferLogger(&buf)))
	if err != nil {
		t.Fatalf("GraphemePhonemes failed: %v", err)
	}

	want := map[string][]string{"rose": {"ʁoːzə", "ʁoːz"}}
	if !reflect.DeepEqual(m.Entries(), want) {
		t.Errorf("Entries() = %v, want %v", m.Entries(), want)
	}
	if m.Phonemes("dorn") != nil {
		t.Error("token without transcription text should contribute nothing")
	}
	if got := strings.Count(buf.String(), "join_mismatch"); got != 2 {
		t.Errorf("join_mismatch logged %d times, want 2:\n%s", got, buf.String())
	}
}

func TestDocumentGraphemePhonemes(t *testing.T) {
	doc := NewDocument(writeFixture(t, "tcf.xml", tcfFixture))
	m, err := doc.GraphemePhonemes()
	if err != nil {
		t.Fatalf("GraphemePhonemes failed: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestJoinGraphemes(t *testing.T) {
	tokens := NewIndex()
	tokens.Set("t1", "Rose", true)
	tokens.Set("t2", "ROSE", true)
	tokens.Set("t3", "Dorn", true)
	tokens.Set("t4", "", false)
	tokens.Set("t5", "Blatt", true)

	trs := NewIndex()
	trs.Set("t2", "b", true)
	trs.Set("t1", "a", true)
	trs.Set("t4", "x", true)
	trs.Set("t5", "", false)

	m, mismatches := JoinGraphemes(tokens, trs, nil, bufferLogger(&bytes.Buffer{}))
	if mismatches != 3 {
		t.Errorf("mismatches = %d, want 3", mismatches)
	}
	if got := m.Phonemes("rose"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Phonemes(rose) = %v, want [a b]", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestJoinGraphemesGroupKey(t *testing.T) {
	tokens := NewIndex()
	tokens.Set("t1", "zu", true)
	tokens.Set("t2", "Hause", true)

	trs := NewIndex()
	trs.Set("t1 t2", "tsuːhaʊ̯zə", true)

	m, mismatches := JoinGraphemes(tokens, trs, lexicon.NewFolder(language.German), nil)
	if m.Len() != 0 || mismatches != 2 {
		t.Errorf("group transcriptions should not join single tokens: len=%d mismatches=%d", m.Len(), mismatches)
	}
}

func TestSentences(t *testing.T) {
	tokens, sentences, err := Sentences(writeFixture(t, "tcf.xml", tcfFixture))
	if err != nil {
		t.Fatalf("Sentences failed: %v", err)
	}

	if got, _ := sentences.Get("s1"); !reflect.DeepEqual(got, []string{"t1", "t2", "t3"}) {
		t.Errorf("s1 = %v, want [t1 t2 t3]", got)
	}
	got, ok := sentences.Get("s2")
	if !ok || got == nil || len(got) != 0 {
		t.Errorf("s2 = %v (ok=%v), want empty list", got, ok)
	}
	if sentences.Len() != 2 {
		t.Errorf("Sentences.Len() = %d, want 2", sentences.Len())
	}

	if tokens.Len() != 4 {
		t.Errorf("Tokens.Len() = %d, want 4", tokens.Len())
	}
	if r, ok := tokens.Get("t4"); !ok || r.HasText {
		t.Errorf("t4 = %+v (ok=%v), want present without text", r, ok)
	}
	if texts := tokens.Texts(); texts["t1"] != "Rose" || len(texts) != 3 {
		t.Errorf("Texts() = %v", texts)
	}
}

func TestFlatTexts(t *testing.T) {
	path := writeFixture(t, "tcf.xml", tcfFixture)

	tokens, err := TokenTexts(path)
	if err != nil {
		t.Fatalf("TokenTexts failed: %v", err)
	}
	if want := []string{"Rose", "rose", "Dorn", "ohne"}; !reflect.DeepEqual(tokens, want) {
		t.Errorf("TokenTexts() = %v, want %v", tokens, want)
	}

	trs, err := TranscriptionTexts(path)
	if err != nil {
		t.Fatalf("TranscriptionTexts failed: %v", err)
	}
	if want := []string{"ʁoːzə", "ʁoːz", "leer", "gruppe"}; !reflect.DeepEqual(trs, want) {
		t.Errorf("TranscriptionTexts() = %v, want %v", trs, want)
	}

	doc := NewDocument(path)
	docTokens, err := doc.TokenTexts()
	if err != nil || len(docTokens) != 4 {
		t.Errorf("Document.TokenTexts() = %v, %v", docTokens, err)
	}
	docTrs, err := doc.TranscriptionTexts()
	if err != nil || len(docTrs) != 4 {
		t.Errorf("Document.TranscriptionTexts() = %v, %v", docTrs, err)
	}
	_, docSentences, err := doc.Sentences()
	if err != nil || docSentences.Len() != 2 {
		t.Errorf("Document.Sentences() failed: %v", err)
	}

	empty, err := TokenTexts(writeFixture(t, "empty.xml", `<TEI xmlns="x"/>`))
	if err != nil {
		t.Fatalf("TokenTexts failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("TokenTexts() = %v, want empty non-nil list", empty)
	}
}
