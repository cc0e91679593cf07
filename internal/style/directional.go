package style

import (
	"regexp"
	"strings"
)

var positions = [4]string{"Top", "Right", "Bottom", "Left"}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// DirectionalProperty expands up to four values into top/right/bottom/left
// properties using CSS shorthand defaulting. An empty value skips that side
// and an empty property yields bare "top", "right", ... keys.
//
//	DirectionalProperty("padding", "12px", "24px")
//	// {paddingTop: 12px, paddingRight: 24px, paddingBottom: 12px, paddingLeft: 24px}
func DirectionalProperty(property string, values ...string) Styles {
	var v [4]string
	copy(v[:], values)
	switch len(values) {
	case 0:
		return Styles{}
	case 1:
		v[1], v[2], v[3] = v[0], v[0], v[0]
	case 2:
		v[2], v[3] = v[0], v[1]
	case 3:
		v[3] = v[1]
	}

	out := Styles{}
	for i, val := range v {
		if val == "" {
			continue
		}
		out[sideProperty(property, positions[i])] = val
	}
	return out
}

// sideProperty turns ("border-width", "Top") into "borderTopWidth" and
// ("padding", "Top") into "paddingTop".
func sideProperty(property, position string) string {
	if property == "" {
		return strings.ToLower(position)
	}
	if parts := strings.Split(property, "-"); len(parts) > 1 {
		var b strings.Builder
		b.WriteString(parts[0])
		b.WriteString(position)
		for _, p := range parts[1:] {
			b.WriteString(capitalize(p))
		}
		return b.String()
	}
	joined := camelBoundary.ReplaceAllString(property, "${1}"+position+"${2}")
	if joined == property {
		return property + position
	}
	return joined
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Cover fills the containing block, inset by offset (default "0").
func Cover(offset string) Styles {
	if offset == "" {
		offset = "0"
	}
	return Styles{
		"position": "absolute",
		"top":      offset,
		"right":    offset,
		"bottom":   offset,
		"left":     offset,
	}
}
