package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a numeric transform argument, which may also be given in its
// decimal string form such as "0.2".
type Amount interface {
	float64 | int | string
}

var (
	white = RGB{Red: 255, Green: 255, Blue: 255}
	black = RGB{}
)

// ParseAmount coerces an Amount to float64. Non-finite values are rejected.
func ParseAmount[T Amount](v T) (float64, error) {
	var f float64
	switch x := any(v).(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case string:
		n, ok := parseNumber(strings.TrimSpace(x))
		if !ok {
			return 0, &AmountError{Value: x, Err: strconv.ErrSyntax}
		}
		f = n
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &AmountError{Value: fmt.Sprint(v), Err: strconv.ErrRange}
	}
	return f, nil
}

// AdjustHue rotates the hue of c by degree. The result is wrapped into [0, 360).
//
//	AdjustHue(180, Text("#448")) // "#888844"
func AdjustHue[T Amount](degree T, c Input) (string, error) {
	d, err := ParseAmount(degree)
	if err != nil {
		return "", err
	}
	h, err := resolveHSL(c)
	if err != nil {
		return "", err
	}
	h.Hue = normalizeHue(h.Hue + d)
	return h.String(), nil
}

// Saturate increases the saturation of c by amount, clamped into [0, 1].
//
//	Saturate(0.2, Text("#CCCD64")) // "#e0e250"
func Saturate[T Amount](amount T, c Input) (string, error) {
	return adjustHSL(amount, c, func(h *HSL, v float64) {
		h.Saturation = Guard(0, 1, h.Saturation+v)
	})
}

// Desaturate decreases the saturation of c by amount.
func Desaturate[T Amount](amount T, c Input) (string, error) {
	return adjustHSL(amount, c, func(h *HSL, v float64) {
		h.Saturation = Guard(0, 1, h.Saturation-v)
	})
}

// Lighten increases the lightness of c by amount.
func Lighten[T Amount](amount T, c Input) (string, error) {
	return adjustHSL(amount, c, func(h *HSL, v float64) {
		h.Lightness = Guard(0, 1, h.Lightness+v)
	})
}

// Darken decreases the lightness of c by amount.
func Darken[T Amount](amount T, c Input) (string, error) {
	return adjustHSL(amount, c, func(h *HSL, v float64) {
		h.Lightness = Guard(0, 1, h.Lightness-v)
	})
}

func adjustHSL[T Amount](amount T, c Input, apply func(*HSL, float64)) (string, error) {
	v, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	h, err := resolveHSL(c)
	if err != nil {
		return "", err
	}
	apply(&h, v)
	return h.String(), nil
}

// Mix blends c1 and c2: each channel is c1*weight + c2*(1-weight), rounded.
// Alpha is blended the same way when either colour has one.
//
// Weight is not clamped; values outside [0, 1] extrapolate and
// only the resulting channels are clamped.
func Mix[T Amount](weight T, c1, c2 Input) (string, error) {
	w, err := ParseAmount(weight)
	if err != nil {
		return "", err
	}
	a, err := resolve(c1)
	if err != nil {
		return "", err
	}
	b, err := resolve(c2)
	if err != nil {
		return "", err
	}
	return MixRGB(w, a, b).String(), nil
}

// MixRGB is Mix on already parsed colours.
func MixRGB(w float64, a, b RGB) RGB {
	lerp := func(x, y float64) float64 { return x*w + y*(1-w) }
	out := RGB{
		Red:   channel(lerp(float64(a.Red), float64(b.Red))),
		Green: channel(lerp(float64(a.Green), float64(b.Green))),
		Blue:  channel(lerp(float64(a.Blue), float64(b.Blue))),
	}
	if a.Alpha.Valid || b.Alpha.Valid {
		out.Alpha = NewAlpha(lerp(a.Alpha.Float(), b.Alpha.Float()))
	}
	return out
}

// Tint mixes c with opaque white, percentage being the share of c:
// 1 leaves c unchanged and 0 yields white.
//
//	Tint(0.25, Text("#00f")) // "#bfbfff"
func Tint[T Amount](percentage T, c Input) (string, error) {
	return Mix(percentage, c, white)
}

// Shade mixes c with opaque black, percentage being the share of c.
func Shade[T Amount](percentage T, c Input) (string, error) {
	return Mix(percentage, c, black)
}

// Complement returns the colour opposite c on the colour wheel.
func Complement(c Input) (string, error) {
	return AdjustHue(180, c)
}

// Grayscale removes all saturation from c.
func Grayscale(c Input) (string, error) {
	return Desaturate(1, c)
}

// Invert inverts the red, green and blue channels of c, keeping alpha.
func Invert(c Input) (string, error) {
	rgb, err := resolve(c)
	if err != nil {
		return "", err
	}
	rgb.Red, rgb.Green, rgb.Blue = 255-rgb.Red, 255-rgb.Green, 255-rgb.Blue
	return rgb.String(), nil
}
