package storage

import (
	"errors"
	"fmt"
)

var (
	errFieldCount = errors.New("unexpected number of fields")
	errBool       = errors.New(`availability must be "true" or "false"`)
)

// ParseError reports a store line that does not match the record layout.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: malformed record %q: %v", e.Path, e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
