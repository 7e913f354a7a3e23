// errors.go defines sentinel errors for validation failures.
//
// Detailed messages are provided by wrapping these with fmt.Errorf in the
// validation functions.

package validate

import "errors"

var (
	ErrEmptyID      = errors.New("empty document id")
	ErrInvalidID    = errors.New("invalid document id")
	ErrIDTooLong    = errors.New("document id too long")
	ErrBodyTooLarge = errors.New("document too large")
	ErrQueryTooLong = errors.New("query too long")
)
