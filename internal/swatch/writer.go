package swatch

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/MeKo-Tech/polished/internal/color"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// DefaultBatchSize is the number of swatches to buffer before flushing to the database.
	DefaultBatchSize = 100
)

// Writer writes swatches to a swatch book.
type Writer struct {
	db        *sql.DB
	batch     []Swatch
	batchSize int
	mu        sync.Mutex
}

// New opens (or creates) a swatch book for writing.
// The schema is initialized and metadata replaced.
func New(path string, metadata Metadata) (*Writer, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := insertMetadata(db, metadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to insert metadata: %w", err)
	}

	return &Writer{
		db:        db,
		batch:     make([]Swatch, 0, DefaultBatchSize),
		batchSize: DefaultBatchSize,
	}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS metadata (
			name TEXT NOT NULL,
			value TEXT
		);

		CREATE TABLE IF NOT EXISTS swatches (
			name TEXT NOT NULL PRIMARY KEY,
			source TEXT NOT NULL,
			canonical TEXT NOT NULL,
			red INTEGER NOT NULL,
			green INTEGER NOT NULL,
			blue INTEGER NOT NULL,
			alpha REAL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func insertMetadata(db *sql.DB, meta Metadata) error {
	// Clear existing metadata
	if _, err := db.Exec("DELETE FROM metadata"); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}

	stmt, err := db.Prepare("INSERT INTO metadata (name, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare metadata insert: %w", err)
	}
	defer stmt.Close()

	for key, value := range meta.ToMap() {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("failed to insert metadata %q: %w", key, err)
		}
	}

	return nil
}

// Put parses source and adds it to the batch under name. Invalid colours are
// rejected before anything is buffered. A full batch is flushed automatically.
func (w *Writer) Put(name, source string) (Swatch, error) {
	key := NormalizeName(name)
	if key == "" {
		return Swatch{}, errors.New("swatch name must not be empty")
	}

	c, err := color.ParseToRGB(source)
	if err != nil {
		return Swatch{}, fmt.Errorf("swatch %q: %w", key, err)
	}

	s := Swatch{Name: key, Source: source, Color: c}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.batch = append(w.batch, s)
	if len(w.batch) >= w.batchSize {
		return s, w.flushLocked()
	}
	return s, nil
}

// Flush writes any buffered swatches to the database.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

// flushLocked writes buffered swatches to the database. Must be called with lock held.
func (w *Writer) flushLocked() error {
	if len(w.batch) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO swatches (name, source, canonical, red, green, blue, alpha) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range w.batch {
		alpha := sql.NullFloat64{Float64: s.Color.Alpha.Value, Valid: s.Color.Alpha.Valid}
		if _, err := stmt.Exec(s.Name, s.Source, s.Canonical(), s.Color.Red, s.Color.Green, s.Color.Blue, alpha); err != nil {
			return fmt.Errorf("failed to insert swatch %q: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.batch = w.batch[:0]
	return nil
}

// Close flushes any remaining swatches and closes the database.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.db.Close()
		return err
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
