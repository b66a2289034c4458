package lexicon

import (
	"database/sql"
	"fmt"

	"github.com/FocuswithJustin/teiscan/core/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sources (
	digest    TEXT PRIMARY KEY,
	path      TEXT NOT NULL,
	graphemes INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS phonemes (
	digest   TEXT NOT NULL REFERENCES sources(digest) ON DELETE CASCADE,
	grapheme TEXT NOT NULL,
	seq      INTEGER NOT NULL,
	phoneme  TEXT NOT NULL,
	PRIMARY KEY (digest, grapheme, seq)
);
CREATE INDEX IF NOT EXISTS idx_phonemes_grapheme ON phonemes(grapheme);
`

// Store persists grapheme/phoneme maps in SQLite, keyed by the digest of
// the source document they were extracted from.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) a lexicon database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create lexicon schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the entries stored for digest with m.
func (s *Store) Save(digest, path string, m *Map) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM phonemes WHERE digest = ?`, digest); err != nil {
		return fmt.Errorf("clear phonemes: %w", err)
	}
	if _, err = tx.Exec(`INSERT OR REPLACE INTO sources (digest, path, graphemes) VALUES (?, ?, ?)`,
		digest, path, m.Len()); err != nil {
		return fmt.Errorf("insert source: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO phonemes (digest, grapheme, seq, phoneme) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, g := range m.order {
		for i, p := range m.entries[g] {
			if _, err = stmt.Exec(digest, g, i, p); err != nil {
				return fmt.Errorf("insert phoneme %q: %w", g, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load rebuilds the map stored for digest. Unknown digests yield an empty map.
func (s *Store) Load(digest string) (*Map, error) {
	rows, err := s.db.Query(`SELECT grapheme, phoneme FROM phonemes WHERE digest = ? ORDER BY rowid`, digest)
	if err != nil {
		return nil, fmt.Errorf("query phonemes: %w", err)
	}
	defer rows.Close()

	m := New()
	for rows.Next() {
		var g, p string
		if err := rows.Scan(&g, &p); err != nil {
			return nil, fmt.Errorf("scan phoneme: %w", err)
		}
		m.Add(g, p)
	}
	return m, rows.Err()
}

// Sources lists the stored documents as digest -> path.
func (s *Store) Sources() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT digest, path FROM sources`)
	if err != nil {
		return nil, fmt.Errorf("query sources: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var digest, path string
		if err := rows.Scan(&digest, &path); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		out[digest] = path
	}
	return out, rows.Err()
}
