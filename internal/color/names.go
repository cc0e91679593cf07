package color

import (
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// transparent is the only keyword outside the CSS extended colour list.
var transparent = RGB{Alpha: Alpha{Value: 0, Valid: true}}

// lookupName resolves a CSS colour keyword, ignoring case.
func lookupName(name string) (RGB, bool) {
	// cases.Caser is stateful, so each lookup gets its own.
	key := cases.Fold().String(strings.TrimSpace(name))
	if key == "transparent" {
		return transparent, true
	}
	c, ok := colornames.Map[key]
	if !ok {
		return RGB{}, false
	}
	return RGB{Red: c.R, Green: c.G, Blue: c.B}, true
}

// Names returns the recognised colour keywords, including "transparent".
func Names() []string {
	out := make([]string, 0, len(colornames.Names)+1)
	out = append(out, colornames.Names...)
	return append(out, "transparent")
}
