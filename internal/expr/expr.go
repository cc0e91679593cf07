// Package expr evaluates one-line colour expressions such as
//
//	tint 0.25 #00f
//	mix 0.5 rgb(255, 0, 0) hsl(240, 100%, 50%)
//
// Arguments are separated by whitespace outside parentheses.
package expr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MeKo-Tech/polished/internal/color"
)

// SyntaxError reports an expression that is not a known operation or has the
// wrong number of arguments.
type SyntaxError struct {
	Expr   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid expression %q: %s", e.Expr, e.Reason)
}

type op struct {
	args  int
	usage string
	run   func(args []string) (string, error)
}

func amountOp(f func(string, color.Input) (string, error)) func([]string) (string, error) {
	return func(a []string) (string, error) { return f(a[0], color.Text(a[1])) }
}

func unaryOp(f func(color.Input) (string, error)) func([]string) (string, error) {
	return func(a []string) (string, error) { return f(color.Text(a[0])) }
}

var ops = map[string]op{
	"parse": {1, "parse <color>", unaryOp(color.ToColorString)},
	"hsl": {1, "hsl <color>", func(a []string) (string, error) {
		h, err := color.ParseToHSL(a[0])
		if err != nil {
			return "", err
		}
		return color.ToHSLString(h), nil
	}},
	"adjust-hue": {2, "adjust-hue <degree> <color>", amountOp(color.AdjustHue[string])},
	"saturate":   {2, "saturate <amount> <color>", amountOp(color.Saturate[string])},
	"desaturate": {2, "desaturate <amount> <color>", amountOp(color.Desaturate[string])},
	"lighten":    {2, "lighten <amount> <color>", amountOp(color.Lighten[string])},
	"darken":     {2, "darken <amount> <color>", amountOp(color.Darken[string])},
	"tint":       {2, "tint <percentage> <color>", amountOp(color.Tint[string])},
	"shade":      {2, "shade <percentage> <color>", amountOp(color.Shade[string])},
	"mix": {3, "mix <weight> <color1> <color2>", func(a []string) (string, error) {
		return color.Mix(a[0], color.Text(a[1]), color.Text(a[2]))
	}},
	"complement": {1, "complement <color>", unaryOp(color.Complement)},
	"invert":     {1, "invert <color>", unaryOp(color.Invert)},
	"grayscale":  {1, "grayscale <color>", unaryOp(color.Grayscale)},
}

// Ops lists the supported operation names, sorted.
func Ops() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usage returns the argument synopsis of an operation.
func Usage(name string) (string, bool) {
	o, ok := ops[name]
	return o.usage, ok
}

// Eval evaluates a single expression and returns the serialized colour.
// Colour and amount errors from the color package are returned unwrapped.
func Eval(expression string) (string, error) {
	fields, err := Split(expression)
	if err != nil {
		return "", &SyntaxError{Expr: expression, Reason: err.Error()}
	}
	if len(fields) == 0 {
		return "", &SyntaxError{Expr: expression, Reason: "empty expression"}
	}

	name := strings.ToLower(fields[0])
	o, ok := ops[name]
	if !ok {
		return "", &SyntaxError{Expr: expression, Reason: "unknown operation " + fields[0]}
	}
	if len(fields)-1 != o.args {
		return "", &SyntaxError{Expr: expression, Reason: "usage: " + o.usage}
	}
	return o.run(fields[1:])
}

// Split breaks an expression into whitespace-separated fields, keeping
// anything inside parentheses together.
func Split(s string) ([]string, error) {
	var (
		fields []string
		cur    strings.Builder
		depth  int
	)
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced ')'")
			}
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	if depth != 0 {
		return nil, errors.New("unbalanced '('")
	}
	flush()
	return fields, nil
}
