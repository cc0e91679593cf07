package swatch

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/MeKo-Tech/polished/internal/color"
)

// Reader reads swatches from a swatch book.
type Reader struct {
	db *sql.DB
}

// OpenReader opens a swatch book for reading.
// Connections are query-only; the file must already exist.
func OpenReader(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open swatch book: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify schema exists
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='swatches'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, errors.New("database does not contain swatches table")
	}

	return &Reader{db: db}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSwatch(row scanner) (Swatch, error) {
	var (
		s       Swatch
		r, g, b int
		alpha   sql.NullFloat64
	)
	if err := row.Scan(&s.Name, &s.Source, &r, &g, &b, &alpha); err != nil {
		return Swatch{}, err
	}
	s.Color = color.RGB{Red: uint8(r), Green: uint8(g), Blue: uint8(b)}
	if alpha.Valid {
		s.Color.Alpha = color.NewAlpha(alpha.Float64)
	}
	return s, nil
}

// Get returns the swatch stored under name. Unknown names yield ErrNotFound.
func (r *Reader) Get(name string) (Swatch, error) {
	key := NormalizeName(name)
	row := r.db.QueryRow("SELECT name, source, red, green, blue, alpha FROM swatches WHERE name = ?", key)

	s, err := scanSwatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Swatch{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return Swatch{}, fmt.Errorf("failed to query swatch: %w", err)
	}
	return s, nil
}

// List returns all swatches ordered by name.
func (r *Reader) List() ([]Swatch, error) {
	rows, err := r.db.Query("SELECT name, source, red, green, blue, alpha FROM swatches ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query swatches: %w", err)
	}
	defer rows.Close()

	var out []Swatch
	for rows.Next() {
		s, err := scanSwatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swatch row: %w", err)
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating swatches: %w", err)
	}
	return out, nil
}

// Metadata reads metadata from the database.
func (r *Reader) Metadata() (Metadata, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	metaMap := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		metaMap[name] = value
	}

	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("error iterating metadata: %w", err)
	}

	return Metadata{
		Name:        metaMap["name"],
		Description: metaMap["description"],
		Author:      metaMap["author"],
		Version:     metaMap["version"],
	}, nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
