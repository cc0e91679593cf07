package color

import "math"

// RGBToHSL converts an RGB colour to HSL. Alpha passes through unchanged.
func RGBToHSL(c RGB) HSL {
	r := float64(c.Red) / 255
	g := float64(c.Green) / 255
	b := float64(c.Blue) / 255

	maxv := max(r, g, b)
	minv := min(r, g, b)
	l := (maxv + minv) / 2

	// Achromatic
	if maxv == minv {
		return HSL{Hue: 0, Saturation: 0, Lightness: l, Alpha: c.Alpha}
	}

	// delta / (1 - |2L-1|), split at L = 0.5
	delta := maxv - minv
	var s float64
	if l > 0.5 {
		s = delta / (2 - maxv - minv)
	} else {
		s = delta / (maxv + minv)
	}

	var h float64
	switch maxv {
	case r:
		// sector 0 or 5
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		// sector 2
		h = (b-r)/delta + 2
	default:
		// sector 4
		h = (r-g)/delta + 4
	}

	return HSL{
		Hue:        normalizeHue(h * 60),
		Saturation: Guard(0, 1, s),
		Lightness:  l,
		Alpha:      c.Alpha,
	}
}

// HSLToRGB converts an HSL colour to RGB, rounding each channel to the nearest
// integer. Hue is wrapped and saturation/lightness clamped first.
func HSLToRGB(c HSL) RGB {
	c = normalizeHSL(c)

	// Achromatic (gray)
	if c.Saturation == 0 {
		v := channel(c.Lightness * 255)
		return RGB{Red: v, Green: v, Blue: v, Alpha: c.Alpha}
	}

	// C = (1 - |2L-1|) * S
	chroma := (1 - math.Abs(2*c.Lightness-1)) * c.Saturation
	hp := c.Hue / 60
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = chroma, x, 0
	case hp < 2:
		r, g, b = x, chroma, 0
	case hp < 3:
		r, g, b = 0, chroma, x
	case hp < 4:
		r, g, b = 0, x, chroma
	case hp < 5:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}

	m := c.Lightness - chroma/2
	return RGB{
		Red:   channel((r + m) * 255),
		Green: channel((g + m) * 255),
		Blue:  channel((b + m) * 255),
		Alpha: c.Alpha,
	}
}
