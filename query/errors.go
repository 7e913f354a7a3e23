// errors.go defines the sentinel errors returned by the query engine.
//
// Three categories exist: configuration (bad key schema, unusable query
// object, bad sort direction), parsing (malformed query strings) and
// matching (a cast or match function failed). Callers distinguish them with
// errors.Is; ParseError adds the byte offset for parse failures.
// ErrInexpressible is not a failure of any operation: it marks trees that
// Format cannot write exactly.

package query

import (
	"errors"
	"fmt"
)

var (
	ErrConfig = errors.New("query configuration error")
	ErrParse  = errors.New("query parse error")
	ErrMatch  = errors.New("query match error")

	// ErrInexpressible is returned by Expressible for trees that have no
	// exact text form.
	ErrInexpressible = errors.New("query has no exact text form")
)

// ParseError reports where in the input a query string stopped making sense.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", ErrParse, e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func parseErr(offset int, format string, args ...any) error {
	return &ParseError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
