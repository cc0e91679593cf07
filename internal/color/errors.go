package color

import (
	"errors"
	"fmt"
)

// ErrInvalidColor is matched by every *ParseError via errors.Is.
var ErrInvalidColor = errors.New("invalid color")

// ParseError reports an input that matches none of the supported colour grammars.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("couldn't parse color: %s", e.Reason)
	}
	return fmt.Sprintf("couldn't parse color %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrInvalidColor }

// AmountError reports a numeric argument that is not a finite decimal number.
type AmountError struct {
	Value string
	Err   error
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("invalid amount %q: %v", e.Value, e.Err)
}

func (e *AmountError) Unwrap() error { return e.Err }
