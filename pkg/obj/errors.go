package obj

import (
	"errors"
	"fmt"
)

// Parse error kinds. Use errors.Is to classify an error returned by Parse.
var (
	ErrOpenFailed         = errors.New("failed to open obj file")
	ErrReadFailed         = errors.New("failed to read obj file")
	ErrSyntax             = errors.New("syntax error")
	ErrUnsupportedFeature = errors.New("unsupported feature")
	ErrAllocationFailed   = errors.New("allocation failed")
)

// ParseError is a fatal diagnostic raised while parsing.
// The same message has already been passed to Callback.Error.
type ParseError struct {
	File string
	Line int
	Msg  string
	Kind error
}

// Error returns the diagnostic as "file(line): msg".
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s(%d): %s", e.File, e.Line, e.Msg)
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Describe returns a short human-readable description of the error kind.
func Describe(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrOpenFailed):
		return "failed to open obj file"
	case errors.Is(err, ErrReadFailed):
		return "failed to read obj file"
	case errors.Is(err, ErrSyntax):
		return "syntax error"
	case errors.Is(err, ErrUnsupportedFeature):
		return "unsupported feature"
	case errors.Is(err, ErrAllocationFailed):
		return "allocation failed"
	default:
		return "unknown error"
	}
}
