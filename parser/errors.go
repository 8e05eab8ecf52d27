package parser

import "github.com/pkg/errors"

// SyntaxError carries the parser's message-only syntax errors (unexpected
// tokens, malformed or out-of-range numeric literals), so callers can
// distinguish them from I/O failures further up the pipeline.
// WrongLineNumber and UndeclaredIdentifier are returned as errors of
// their own types and are not wrapped in a SyntaxError.
type SyntaxError struct {
	cause error
}

func (e *SyntaxError) Error() string { return e.cause.Error() }
func (e *SyntaxError) Unwrap() error { return e.cause }

func syntaxError(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{cause: errors.Errorf(format, args...)}
}

// WrongLineNumber is returned when a line's number does not strictly
// increase over the previous one.
type WrongLineNumber struct {
	Line int
}

func (e *WrongLineNumber) Error() string {
	return errors.Errorf("line number %d is not greater than the previous line", e.Line).Error()
}

// UndeclaredIdentifier is returned when a Cond references a name never
// introduced by LET or INPUT - the eager rejection this compiler chose
// for the open question on undeclared identifiers in conditions.
type UndeclaredIdentifier struct {
	Name string
}

func (e *UndeclaredIdentifier) Error() string {
	return errors.Errorf("undeclared identifier %q used in a condition", e.Name).Error()
}
