package style

import (
	"fmt"
	"math"
	"strconv"
)

// RatioNames maps the named musical scales to their ratios.
var RatioNames = map[string]float64{
	"minorSecond":   1.067,
	"majorSecond":   1.125,
	"minorThird":    1.2,
	"majorThird":    1.25,
	"perfectFourth": 1.333,
	"augFourth":     1.414,
	"perfectFifth":  1.5,
	"minorSixth":    1.6,
	"goldenSection": 1.618,
	"majorSixth":    1.667,
	"minorSeventh":  1.778,
	"majorSeventh":  1.875,
	"octave":        2,
	"majorTenth":    2.5,
	"majorEleventh": 2.667,
	"majorTwelfth":  3,
	"doubleOctave":  4,
}

// ModularScale moves steps up (or down, when negative) a modular scale from
// base. base defaults to "1em" and ratio to "perfectFourth"; ratio may also
// be a plain number such as "1.5".
//
//	ModularScale(2, "", "") // "1.776889em"
func ModularScale(steps float64, base, ratio string) (string, error) {
	if base == "" {
		base = "1em"
	}
	if ratio == "" {
		ratio = "perfectFourth"
	}

	r, ok := RatioNames[ratio]
	if !ok {
		var err error
		if r, err = strconv.ParseFloat(ratio, 64); err != nil {
			return "", fmt.Errorf("ratio %q is neither a number nor a predefined scale", ratio)
		}
	}

	b, _, err := StripUnit(base)
	if err != nil {
		return "", fmt.Errorf("invalid base for modular scale, expected number or em string: %w", err)
	}

	return formatNumber(b*math.Pow(r, steps)) + "em", nil
}
