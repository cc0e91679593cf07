// Package color parses CSS colour strings, converts between RGB and HSL, applies
// hue/saturation/mix transforms and serializes results back to canonical CSS text.
//
// Every function in this package is pure and safe for concurrent use.
package color

import (
	"encoding/json"
	"math"
)

// Alpha is an optional opacity in [0, 1].
// The zero value means "absent", which is fully opaque.
type Alpha struct {
	Value float64
	Valid bool
}

// NewAlpha returns a present alpha clamped into [0, 1].
func NewAlpha(v float64) Alpha {
	return Alpha{Value: Guard(0, 1, v), Valid: true}
}

// Float returns the opacity used in arithmetic: 1 when absent.
func (a Alpha) Float() float64 {
	if !a.Valid {
		return 1
	}
	return a.Value
}

// Opaque reports whether the alpha is absent or exactly 1.
func (a Alpha) Opaque() bool {
	return !a.Valid || a.Value == 1
}

// MarshalJSON encodes a present alpha as a number and an absent one as null.
func (a Alpha) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts a number or null.
func (a *Alpha) UnmarshalJSON(data []byte) error {
	var v *float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*a = Alpha{}
		return nil
	}
	*a = NewAlpha(*v)
	return nil
}

// RGB is a colour in the sRGB model with 8-bit channels.
type RGB struct {
	Red   uint8 `json:"red"`
	Green uint8 `json:"green"`
	Blue  uint8 `json:"blue"`
	Alpha Alpha `json:"alpha,omitzero"`
}

// HSL is a colour in the HSL model.
// Hue is in [0, 360); Saturation and Lightness are in [0, 1].
type HSL struct {
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
	Alpha      Alpha   `json:"alpha,omitzero"`
}

// Input is anything a transform can operate on: Text, RGB or HSL.
type Input interface {
	toRGB() (RGB, error)
}

// Text is an unparsed colour string such as "#448" or "rgba(255,0,0,0.5)".
type Text string

func (t Text) toRGB() (RGB, error) { return ParseToRGB(string(t)) }

func (c RGB) toRGB() (RGB, error) { return c, nil }

func (c HSL) toRGB() (RGB, error) { return HSLToRGB(c), nil }

// resolve dispatches on the input variant and returns its RGB form.
func resolve(in Input) (RGB, error) {
	if in == nil {
		return RGB{}, &ParseError{Reason: "no colour given"}
	}
	return in.toRGB()
}

// resolveHSL is resolve followed by a model conversion. HSL inputs are
// returned untouched so no precision is lost.
func resolveHSL(in Input) (HSL, error) {
	if h, ok := in.(HSL); ok {
		return normalizeHSL(h), nil
	}
	c, err := resolve(in)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(c), nil
}

// normalizeHue wraps any angle into [0, 360).
func normalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// -1e-15 + 360 rounds to 360
	if h >= 360 {
		h = 0
	}
	return h
}

func normalizeHSL(h HSL) HSL {
	h.Hue = normalizeHue(h.Hue)
	h.Saturation = Guard(0, 1, h.Saturation)
	h.Lightness = Guard(0, 1, h.Lightness)
	return h
}

// Guard clamps v into the closed range [lo, hi]. NaN clamps to lo.
func Guard(lo, hi, v float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return max(lo, min(hi, v))
}

// channel rounds a 0–255 float to the nearest integer and clamps it.
func channel(v float64) uint8 {
	return uint8(Guard(0, 255, math.Round(v)))
}
