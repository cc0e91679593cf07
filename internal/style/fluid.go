package style

import (
	"errors"
	"fmt"
)

// Screen bounds used when Between or FluidRange get none.
const (
	DefaultMinScreen = "320px"
	DefaultMaxScreen = "1200px"
)

// Between returns a calc() expression that scales linearly from fromSize at
// minScreen to toSize at maxScreen. Empty screens use the defaults.
//
//	Between("20px", "100px", "400px", "1000px")
//	// "calc(-33.33333333333334px + 13.333333333333334vw)"
func Between(fromSize, toSize, minScreen, maxScreen string) (string, error) {
	if minScreen == "" {
		minScreen = DefaultMinScreen
	}
	if maxScreen == "" {
		maxScreen = DefaultMaxScreen
	}

	minS, minUnit, err1 := StripUnit(minScreen)
	maxS, maxUnit, err2 := StripUnit(maxScreen)
	if err := errors.Join(err1, err2); err != nil || minUnit == "" || minUnit != maxUnit {
		return "", errors.New("minScreen and maxScreen must be provided as stringified numbers with the same units")
	}
	if minS == maxS {
		return "", errors.New("minScreen and maxScreen must differ")
	}

	from, fromUnit, err1 := StripUnit(fromSize)
	to, toUnit, err2 := StripUnit(toSize)
	if err := errors.Join(err1, err2); err != nil || fromUnit == "" || fromUnit != toUnit {
		return "", errors.New("fromSize and toSize must be provided as stringified numbers with the same units")
	}

	slope := (from - to) / (minS - maxS)
	base := to - slope*maxS
	return fmt.Sprintf("calc(%s%s + %svw)", formatNumber(base), fromUnit, formatNumber(100*slope)), nil
}

// FluidProp is one property handed to FluidRange.
type FluidProp struct {
	Prop     string `json:"prop" mapstructure:"prop"`
	FromSize string `json:"fromSize" mapstructure:"from_size"`
	ToSize   string `json:"toSize" mapstructure:"to_size"`
}

// FluidRange builds fallbacks plus two media queries that make each property
// scale fluidly between minScreen and maxScreen.
func FluidRange(props []FluidProp, minScreen, maxScreen string) (Styles, error) {
	if len(props) == 0 {
		return nil, errors.New("fluid range needs at least one property")
	}
	if minScreen == "" {
		minScreen = DefaultMinScreen
	}
	if maxScreen == "" {
		maxScreen = DefaultMaxScreen
	}

	minQuery := fmt.Sprintf("@media (min-width: %s)", minScreen)
	maxQuery := fmt.Sprintf("@media (min-width: %s)", maxScreen)
	atMin := Styles{}
	atMax := Styles{}
	out := Styles{}

	for _, p := range props {
		if p.Prop == "" || p.FromSize == "" || p.ToSize == "" {
			return nil, errors.New("fluid range properties need prop, fromSize and toSize")
		}
		calc, err := Between(p.FromSize, p.ToSize, minScreen, maxScreen)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Prop, err)
		}
		out[p.Prop] = p.FromSize
		atMin[p.Prop] = calc
		atMax[p.Prop] = p.ToSize
	}

	out[minQuery] = atMin
	out[maxQuery] = atMax
	return out, nil
}
