package tei

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const dtaFixture = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <fileDesc>
      <titleStmt>
        <author><persName><surname>Mann</surname><forename>Thomas</forename></persName></author>
      </titleStmt>
      <sourceDesc><biblFull><publicationStmt>
        <date type="publication">1901</date>
        <date type="creation">1899</date>
      </publicationStmt></biblFull></sourceDesc>
    </fileDesc>
    <profileDesc><textClass>
      <classCode scheme="http://www.deutschestextarchiv.de/doku/klassifikation#dwds1sub">Lyrik</classCode>
      <classCode scheme="http://www.deutschestextarchiv.de/doku/klassifikation#period">Barock</classCode>
      <classCode scheme="http://www.deutschestextarchiv.de/doku/klassifikation#dwds1main">Belletristik</classCode>
    </textClass></profileDesc>
  </teiHeader>
  <text>
    <body>
      <lg type="poem">
        <head>Erstes</head>
        <lg type="stanza"><l>eins</l></lg>
      </lg>
      <lg type="poem">
        <head>Zweites</head>
      </lg>
      <lg type="stanza"><l>drei</l></lg>
    </body>
  </text>
</TEI>
`

const tcfFixture = `<?xml version="1.0" encoding="UTF-8"?>
<D-Spin xmlns="http://www.dspin.de/data">
  <TextCorpus xmlns="http://www.dspin.de/data/textcorpus" lang="de">
    <tokens>
      <token ID="t1">Rose</token>
      <token ID="t2">rose</token>
      <token ID="t3">Dorn</token>
      <token ID="t4"/>
      <token>ohne</token>
    </tokens>
    <sentences>
      <sentence ID="s1" tokenIDs="t1  t2 t3"/>
      <sentence ID="s2"/>
      <sentence tokenIDs="t4"/>
    </sentences>
    <phonetics>
      <trs tokenIDs="t1">ʁoːzə</trs>
      <trs tokenIDs="t2">ʁoːz</trs>
      <trs tokenIDs="t4">leer</trs>
      <trs tokenIDs="t5 t6">gruppe</trs>
      <trs tokenIDs="t3"/>
    </phonetics>
  </TextCorpus>
</D-Spin>
`

// writeFixture writes content to name inside a fresh temp dir.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// bufferLogger returns a debug-level text logger writing into buf.
func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
