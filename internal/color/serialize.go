package color

import (
	"fmt"
	"math"
	"strconv"
)

// ToColorString renders a colour in canonical CSS form: lowercase "#rrggbb"
// when the colour is opaque, "rgba(r,g,b,a)" otherwise. Text input is parsed
// first and HSL input converted to RGB, so the output never depends on the
// notation the colour came from.
func ToColorString(in Input) (string, error) {
	c, err := resolve(in)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// String implements fmt.Stringer with the canonical form of ToColorString.
func (c RGB) String() string {
	if c.Alpha.Opaque() {
		return c.Hex()
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.Red, c.Green, c.Blue, formatFloat(c.Alpha.Value))
}

// Hex returns "#rrggbb", ignoring alpha.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// String implements fmt.Stringer via the RGB canonical form.
func (c HSL) String() string {
	return HSLToRGB(c).String()
}

// ToHSLString renders a colour in HSL notation, "hsl(h,s%,l%)" or
// "hsla(h,s%,l%,a)" when alpha is below 1. Values keep two decimals.
func ToHSLString(c HSL) string {
	c = normalizeHSL(c)
	hue := round2(c.Hue)
	if hue >= 360 {
		hue = 0
	}
	h := formatFloat(hue)
	s := formatFloat(round2(c.Saturation * 100))
	l := formatFloat(round2(c.Lightness * 100))
	if c.Alpha.Opaque() {
		return fmt.Sprintf("hsl(%s,%s%%,%s%%)", h, s, l)
	}
	return fmt.Sprintf("hsla(%s,%s%%,%s%%,%s)", h, s, l, formatFloat(c.Alpha.Value))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatFloat prints the shortest decimal that round-trips, without exponent.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
