package color

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern is a CSS <number>: no hex floats, no Inf/NaN.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseToRGB parses a CSS colour string. Supported forms, tried in order:
//
//	#rgb #rgba #rrggbb #rrggbbaa
//	rgb(r, g, b)  rgba(r, g, b, a)  rgb(r g b / a)
//	hsl(h, s%, l%)  hsla(h, s%, l%, a)  hsl(h s% l% / a)
//	named keywords (case-insensitive), including "transparent"
//
// Out-of-range numbers are clamped. Anything else yields a *ParseError.
func ParseToRGB(s string) (RGB, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return RGB{}, &ParseError{Input: s, Reason: "empty string"}
	}

	if hex, ok := strings.CutPrefix(in, "#"); ok {
		return parseHex(s, hex)
	}

	if name, args, ok := splitFunc(in); ok {
		switch strings.ToLower(name) {
		case "rgb", "rgba":
			return parseRGBFunc(s, strings.ToLower(name), args)
		case "hsl", "hsla":
			return parseHSLFunc(s, strings.ToLower(name), args)
		default:
			return RGB{}, &ParseError{Input: s, Reason: "unsupported function " + name + "()"}
		}
	}

	if c, ok := lookupName(in); ok {
		return c, nil
	}
	return RGB{}, &ParseError{Input: s, Reason: "unknown color keyword"}
}

// ParseToHSL parses a CSS colour string and converts it to HSL.
func ParseToHSL(s string) (HSL, error) {
	c, err := ParseToRGB(s)
	if err != nil {
		return HSL{}, err
	}
	return RGBToHSL(c), nil
}

func parseHex(input, hex string) (RGB, error) {
	switch len(hex) {
	case 3, 4:
		// #abc => #aabbcc
		var b strings.Builder
		for i := 0; i < len(hex); i++ {
			b.WriteByte(hex[i])
			b.WriteByte(hex[i])
		}
		hex = b.String()
	case 6, 8:
	default:
		return RGB{}, &ParseError{Input: input, Reason: "hex color must have 3, 4, 6 or 8 digits"}
	}

	v, ok := parseHexDigits(hex)
	if !ok {
		return RGB{}, &ParseError{Input: input, Reason: "invalid hex digit"}
	}

	if len(hex) == 6 {
		return RGB{Red: uint8(v >> 16), Green: uint8(v >> 8), Blue: uint8(v)}, nil
	}

	// Hex alpha is kept to two decimals, so #ff000080 reads as 0.5.
	a := math.Round(float64(uint8(v))/255*100) / 100
	return RGB{
		Red:   uint8(v >> 24),
		Green: uint8(v >> 16),
		Blue:  uint8(v >> 8),
		Alpha: NewAlpha(a),
	}, nil
}

func parseHexDigits(text string) (uint32, bool) {
	hex := uint32(0)
	for _, c := range text {
		hex <<= 4
		switch {
		case c >= '0' && c <= '9':
			hex |= uint32(c) - '0'
		case c >= 'a' && c <= 'f':
			hex |= uint32(c) - ('a' - 10)
		case c >= 'A' && c <= 'F':
			hex |= uint32(c) - ('A' - 10)
		default:
			return 0, false
		}
	}
	return hex, true
}

// splitFunc splits "name(args)" into its name and raw argument text.
func splitFunc(in string) (name, args string, ok bool) {
	open := strings.IndexByte(in, '(')
	if open <= 0 || !strings.HasSuffix(in, ")") {
		return "", "", false
	}
	name = strings.TrimSpace(in[:open])
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return "", "", false
		}
	}
	return name, in[open+1 : len(in)-1], true
}

// funcArgs holds the tokens of a functional colour notation.
type funcArgs struct {
	values []string
	alpha  string
	comma  bool
}

// splitArgs accepts both "a, b, c, d" and "a b c / d".
func splitArgs(args string) (funcArgs, bool) {
	if strings.Contains(args, ",") {
		parts := strings.Split(args, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
			if parts[i] == "" {
				return funcArgs{}, false
			}
		}
		return funcArgs{values: parts, comma: true}, true
	}

	vals, alpha, hasAlpha := strings.Cut(args, "/")
	fa := funcArgs{values: strings.Fields(vals)}
	if hasAlpha {
		fields := strings.Fields(alpha)
		if len(fields) != 1 {
			return funcArgs{}, false
		}
		fa.alpha = fields[0]
	}
	return fa, true
}

// arity checks the argument count for name and moves a trailing comma-separated
// alpha into fa.alpha.
func (fa *funcArgs) arity(name string) bool {
	if !fa.comma {
		return len(fa.values) == 3
	}
	want := 3
	if strings.HasSuffix(name, "a") {
		want = 4
	}
	if len(fa.values) != want {
		return false
	}
	if want == 4 {
		fa.alpha = fa.values[3]
		fa.values = fa.values[:3]
	}
	return true
}

func parseRGBFunc(input, name, args string) (RGB, error) {
	fa, ok := splitArgs(args)
	if !ok || !fa.arity(name) {
		return RGB{}, &ParseError{Input: input, Reason: "wrong number of arguments to " + name + "()"}
	}

	var ch [3]uint8
	for i, tok := range fa.values {
		v, ok := parseChannel(tok)
		if !ok {
			return RGB{}, &ParseError{Input: input, Reason: "invalid channel value " + strconv.Quote(tok)}
		}
		ch[i] = v
	}

	c := RGB{Red: ch[0], Green: ch[1], Blue: ch[2]}
	if fa.alpha != "" {
		a, ok := parseAlpha(fa.alpha)
		if !ok {
			return RGB{}, &ParseError{Input: input, Reason: "invalid alpha value " + strconv.Quote(fa.alpha)}
		}
		c.Alpha = a
	}
	return c, nil
}

func parseHSLFunc(input, name, args string) (RGB, error) {
	fa, ok := splitArgs(args)
	if !ok || !fa.arity(name) {
		return RGB{}, &ParseError{Input: input, Reason: "wrong number of arguments to " + name + "()"}
	}

	hue, ok := parseHue(fa.values[0])
	if !ok {
		return RGB{}, &ParseError{Input: input, Reason: "invalid hue " + strconv.Quote(fa.values[0])}
	}
	sat, ok := parsePercent(fa.values[1])
	if !ok {
		return RGB{}, &ParseError{Input: input, Reason: "saturation must be a percentage"}
	}
	light, ok := parsePercent(fa.values[2])
	if !ok {
		return RGB{}, &ParseError{Input: input, Reason: "lightness must be a percentage"}
	}

	h := HSL{Hue: hue, Saturation: sat, Lightness: light}
	if fa.alpha != "" {
		a, ok := parseAlpha(fa.alpha)
		if !ok {
			return RGB{}, &ParseError{Input: input, Reason: "invalid alpha value " + strconv.Quote(fa.alpha)}
		}
		h.Alpha = a
	}
	return HSLToRGB(h), nil
}

// parseNumber reads a CSS number. Literals too large for a float64 come back
// as ±Inf so callers can clamp them.
func parseNumber(tok string) (float64, bool) {
	if !numberPattern.MatchString(tok) {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// parseChannel reads an integer 0–255 or a percentage of 255.
func parseChannel(tok string) (uint8, bool) {
	if pct, ok := strings.CutSuffix(tok, "%"); ok {
		v, ok := parseNumber(pct)
		if !ok {
			return 0, false
		}
		return channel(v / 100 * 255), true
	}
	v, ok := parseNumber(tok)
	if !ok {
		return 0, false
	}
	return channel(v), true
}

// parseAlpha reads a real 0–1 or a percentage.
func parseAlpha(tok string) (Alpha, bool) {
	if pct, ok := strings.CutSuffix(tok, "%"); ok {
		v, ok := parseNumber(pct)
		if !ok {
			return Alpha{}, false
		}
		return NewAlpha(v / 100), true
	}
	v, ok := parseNumber(tok)
	if !ok {
		return Alpha{}, false
	}
	return NewAlpha(v), true
}

// parseHue reads a bare number of degrees, optionally suffixed with "deg".
func parseHue(tok string) (float64, bool) {
	if len(tok) > 3 && strings.EqualFold(tok[len(tok)-3:], "deg") {
		tok = tok[:len(tok)-3]
	}
	v, ok := parseNumber(tok)
	if !ok || math.IsInf(v, 0) {
		return 0, false
	}
	return normalizeHue(v), true
}

// parsePercent reads "n%" as n/100 clamped into [0, 1].
func parsePercent(tok string) (float64, bool) {
	pct, ok := strings.CutSuffix(tok, "%")
	if !ok {
		return 0, false
	}
	v, ok := parseNumber(pct)
	if !ok {
		return 0, false
	}
	return Guard(0, 1, v/100), true
}
