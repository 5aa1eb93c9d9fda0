// Package store is the SQLite-backed row store for the dictionary dataset.
// It owns the stardict table: CSV import and export, full scans for the
// rendering pipeline, and the per-word lookups and updates the enrichment
// stages need.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/quillon/mdxgen/internal/dict"
)

// ErrMissingSourceData reports an absent input file. The pipeline is a
// one-shot batch job; there is nothing to retry.
var ErrMissingSourceData = errors.New("source data not found")

// ErrDestinationExists reports an output artifact that is already present.
// The pipeline refuses to overwrite silently.
var ErrDestinationExists = errors.New("destination already exists")

// columns is the stardict table schema, matching the ECDICT CSV layout.
// pos, detail and audio are carried for round-trip export but the pipeline
// itself never reads them.
var columns = []string{
	"word", "phonetic", "definition", "translation", "pos",
	"collins", "oxford", "tag", "bnc", "frq",
	"exchange", "detail", "audio",
}

// Store wraps the SQLite database holding the dictionary rows.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens an existing row store.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSourceData, path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening row store: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Create creates a new row store with an empty stardict table. It fails if
// the file already exists.
func Create(path string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDestinationExists, path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("creating row store: %w", err)
	}
	s := &Store{db: db, path: path}
	if err := s.createTable(); err != nil {
		db.Close()
		os.Remove(path)
		return nil, err
	}
	return s, nil
}

func (s *Store) createTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE stardict (
			word        TEXT NOT NULL,
			phonetic    TEXT NOT NULL DEFAULT '',
			definition  TEXT NOT NULL DEFAULT '',
			translation TEXT NOT NULL DEFAULT '',
			pos         TEXT NOT NULL DEFAULT '',
			collins     INTEGER NOT NULL DEFAULT 0,
			oxford      INTEGER NOT NULL DEFAULT 0,
			tag         TEXT NOT NULL DEFAULT '',
			bnc         INTEGER NOT NULL DEFAULT 0,
			frq         INTEGER NOT NULL DEFAULT 0,
			exchange    TEXT NOT NULL DEFAULT '',
			detail      TEXT NOT NULL DEFAULT '',
			audio       TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX idx_stardict_word ON stardict (word);
	`)
	if err != nil {
		return fmt.Errorf("creating stardict table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Count returns the number of rows in the store.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM stardict`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}

// Scan iterates every row in table order and hands it to fn. Iteration
// stops on the first error fn returns.
func (s *Store) Scan(fn func(dict.Row) error) error {
	rows, err := s.db.Query(`
		SELECT word, phonetic, definition, translation, collins, oxford,
		       tag, bnc, frq, exchange
		FROM stardict
	`)
	if err != nil {
		return fmt.Errorf("scanning rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r dict.Row
		err := rows.Scan(
			&r.Word, &r.Phonetic, &r.Definition, &r.Translation,
			&r.Collins, &r.Oxford, &r.Tag, &r.BNC, &r.Frq, &r.Exchange,
		)
		if err != nil {
			return fmt.Errorf("reading row: %w", err)
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("scanning rows: %w", err)
	}
	return nil
}

// Get returns the row for a headword. The second result is false when the
// word is not in the store.
func (s *Store) Get(word string) (dict.Row, bool, error) {
	var r dict.Row
	err := s.db.QueryRow(`
		SELECT word, phonetic, definition, translation, collins, oxford,
		       tag, bnc, frq, exchange
		FROM stardict WHERE word = ? LIMIT 1
	`, word).Scan(
		&r.Word, &r.Phonetic, &r.Definition, &r.Translation,
		&r.Collins, &r.Oxford, &r.Tag, &r.BNC, &r.Frq, &r.Exchange,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return dict.Row{}, false, nil
	}
	if err != nil {
		return dict.Row{}, false, fmt.Errorf("looking up %q: %w", word, err)
	}
	return r, true, nil
}

// Words returns up to limit headwords, optionally filtered by a
// case-insensitive substring, in table order.
func (s *Store) Words(filter string, limit int) ([]string, error) {
	query := `SELECT word FROM stardict`
	args := []any{}
	if filter != "" {
		query += ` WHERE word LIKE ?`
		args = append(args, "%"+filter+"%")
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("listing words: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing words: %w", err)
	}
	return words, nil
}

// SetPhonetic fills the phonetic column for a headword. Returns whether a
// row was updated.
func (s *Store) SetPhonetic(word, phonetic string) (bool, error) {
	res, err := s.db.Exec(`UPDATE stardict SET phonetic = ? WHERE word = ?`, phonetic, word)
	if err != nil {
		return false, fmt.Errorf("updating phonetic for %q: %w", word, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddTag appends a study-list code to a headword's tag set unless it is
// already present. Returns whether the row changed.
func (s *Store) AddTag(word, code string) (bool, error) {
	row, ok, err := s.Get(word)
	if err != nil || !ok {
		return false, err
	}
	if dict.HasTag(row.Tag, code) {
		return false, nil
	}
	tag := code
	if row.Tag != "" {
		tag = row.Tag + " " + code
	}
	if _, err := s.db.Exec(`UPDATE stardict SET tag = ? WHERE word = ?`, tag, word); err != nil {
		return false, fmt.Errorf("updating tag for %q: %w", word, err)
	}
	return true, nil
}
