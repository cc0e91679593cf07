package color

// Transform is a colour operation with its leading arguments already applied.
type Transform func(Input) (string, error)

// Curry2 splits the first argument off f, so f(a, b) becomes Curry2(f)(a)(b).
func Curry2[A, B, R any](f func(A, B) (R, error)) func(A) func(B) (R, error) {
	return func(a A) func(B) (R, error) {
		return func(b B) (R, error) {
			return f(a, b)
		}
	}
}

// Curry3 is Curry2 for three-argument functions.
func Curry3[A, B, C, R any](f func(A, B, C) (R, error)) func(A) func(B) func(C) (R, error) {
	return func(a A) func(B) func(C) (R, error) {
		return func(b B) func(C) (R, error) {
			return func(c C) (R, error) {
				return f(a, b, c)
			}
		}
	}
}

// AdjustHueBy returns AdjustHue with degree applied.
func AdjustHueBy[T Amount](degree T) Transform {
	return Curry2(AdjustHue[T])(degree)
}

// SaturateBy returns Saturate with amount applied.
func SaturateBy[T Amount](amount T) Transform {
	return Curry2(Saturate[T])(amount)
}

// DesaturateBy returns Desaturate with amount applied.
func DesaturateBy[T Amount](amount T) Transform {
	return Curry2(Desaturate[T])(amount)
}

// LightenBy returns Lighten with amount applied.
func LightenBy[T Amount](amount T) Transform {
	return Curry2(Lighten[T])(amount)
}

// DarkenBy returns Darken with amount applied.
func DarkenBy[T Amount](amount T) Transform {
	return Curry2(Darken[T])(amount)
}

// TintBy returns Tint with percentage applied.
func TintBy[T Amount](percentage T) Transform {
	return Curry2(Tint[T])(percentage)
}

// ShadeBy returns Shade with percentage applied.
func ShadeBy[T Amount](percentage T) Transform {
	return Curry2(Shade[T])(percentage)
}

// MixWith returns Mix with weight and the first colour applied; the
// transform's input becomes the second colour.
func MixWith[T Amount](weight T, c1 Input) Transform {
	return Curry3(Mix[T])(weight)(c1)
}

// Pipe chains transforms left to right. The input is normalized first and
// each step receives the previous step's output as Text.
func Pipe(ts ...Transform) Transform {
	return func(in Input) (string, error) {
		out, err := ToColorString(in)
		if err != nil {
			return "", err
		}
		for _, t := range ts {
			if out, err = t(Text(out)); err != nil {
				return "", err
			}
		}
		return out, nil
	}
}
