package pyast

import (
	"errors"
	"fmt"
)

// ErrSyntax is wrapped by every error reporting invalid Python source.
var ErrSyntax = errors.New("invalid syntax")

// SyntaxError describes invalid source at a given position.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	name := e.Filename
	if name == "" {
		name = "<stdin>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", name, e.Line, e.Column+1, e.Msg)
}

// Unwrap makes errors.Is(err, ErrSyntax) hold for every SyntaxError.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
