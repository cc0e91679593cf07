// Package style provides the small CSS-in-Go helpers that sit next to the
// colour engine: unit conversion, modular scales, fluid ranges and
// directional shorthands. Results are plain strings or Styles maps.
package style

import (
	"fmt"
	"regexp"
	"strconv"
)

// Styles is a CSS-in-Go declaration block. Values are strings or nested Styles.
type Styles map[string]any

var cssValuePattern = regexp.MustCompile(`^([+-]?(?:\d+|\d*\.\d+))([a-z]*|%)$`)

// StripUnit splits a CSS value such as "1.5rem" into 1.5 and "rem".
// A bare number has an empty unit.
func StripUnit(value string) (float64, string, error) {
	m := cssValuePattern.FindStringSubmatch(value)
	if m == nil {
		return 0, "", fmt.Errorf("invalid CSS value %q", value)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid CSS value %q: %w", value, err)
	}
	return v, m[2], nil
}

// Rem converts a pixel value to rem. base defaults to "16px".
//
//	Rem("16px", "") // "1rem"
func Rem(px, base string) (string, error) {
	return pxTo("rem", px, base)
}

// Em converts a pixel value to em. base defaults to "16px".
func Em(px, base string) (string, error) {
	return pxTo("em", px, base)
}

func pxTo(to, px, base string) (string, error) {
	if base == "" {
		base = "16px"
	}
	v, err := pixels(px)
	if err != nil {
		return "", fmt.Errorf("%s: first argument: %w", to, err)
	}
	b, err := pixels(base)
	if err != nil {
		return "", fmt.Errorf("%s: base: %w", to, err)
	}
	if b == 0 {
		return "", fmt.Errorf("%s: base must not be zero", to)
	}
	return formatNumber(v/b) + to, nil
}

// pixels accepts "12px" or a bare number.
func pixels(value string) (float64, error) {
	v, unit, err := StripUnit(value)
	if err != nil {
		return 0, err
	}
	if unit != "" && unit != "px" {
		return 0, fmt.Errorf("expected a value in px, got %q", value)
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
