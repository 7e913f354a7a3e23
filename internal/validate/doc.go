// Package validate provides input validation for docq's domain types.
//
// This package enforces integrity rules at the boundary between user input
// and the storage layer. Each validation function returns nil on success or
// an error wrapping one of the sentinels in errors.go.
//
// # Validation Functions
//
// ID validates document identifiers.
// Body validates encoded document size.
// Query validates query string length.
//
// # Error Handling
//
// Use errors.Is() for type-safe error checking:
//
//	if errors.Is(err, validate.ErrIDTooLong) {
//	    // handle long id
//	}
package validate
