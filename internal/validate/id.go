// id.go implements document id validation.
//
// Ids are opaque strings chosen by the caller or generated by the store.
// Only inputs that would be ambiguous on the command line or in the audit
// log are rejected.

package validate

import (
	"fmt"
	"strings"
	"unicode"
)

// ID validates a document id.
//
// Validation rules:
//   - Empty ids rejected
//   - Control characters (including null bytes) rejected
//   - Leading or trailing whitespace rejected
//   - Max length in bytes enforced if maxLen > 0
func ID(id string, maxLen int) error {
	if id == "" {
		return ErrEmptyID
	}
	if maxLen > 0 && len(id) > maxLen {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrIDTooLong, len(id), maxLen)
	}
	if strings.ContainsFunc(id, unicode.IsControl) {
		return fmt.Errorf("%w: control character in %q", ErrInvalidID, id)
	}
	if strings.TrimSpace(id) != id {
		return fmt.Errorf("%w: surrounding whitespace in %q", ErrInvalidID, id)
	}
	return nil
}
