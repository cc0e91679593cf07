// Package swatch stores named colours in a SQLite swatch book.
package swatch

import (
	"errors"
	"strings"

	"github.com/MeKo-Tech/polished/internal/color"
	"golang.org/x/text/cases"
)

// ErrNotFound is returned when a swatch name is not in the book.
var ErrNotFound = errors.New("swatch not found")

// Metadata describes a swatch book.
type Metadata struct {
	Name        string // Human-readable book name
	Description string
	Author      string
	Version     string
}

// ToMap converts Metadata to a map for database insertion.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Author != "" {
		result["author"] = m.Author
	}
	if m.Version != "" {
		result["version"] = m.Version
	}

	return result
}

// Swatch is a named, already validated colour.
type Swatch struct {
	Name   string    `json:"name"`
	Source string    `json:"source"` // colour string as it was given
	Color  color.RGB `json:"color"`
}

// Canonical returns the colour in canonical CSS form.
func (s Swatch) Canonical() string {
	return s.Color.String()
}

// NormalizeName folds a swatch name so lookups ignore case and padding.
func NormalizeName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
