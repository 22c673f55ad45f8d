package parse

import "fmt"

// ParseError reports a file whose content is not the expected JSON.
// Line is 1-based for line-delimited files and 0 otherwise.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a record with a missing or ill-typed field.
type ValidationError struct {
	Path   string
	Line   int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("validate %s:%d: field %q %s", e.Path, e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("validate %s: field %q %s", e.Path, e.Field, e.Reason)
}

const (
	reasonMissing = "is required"
	reasonType    = "has the wrong type"
)
