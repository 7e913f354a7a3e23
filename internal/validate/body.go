// body.go implements document size and query length validation.
//
// Only size is checked. Document shape is free-form JSON and query syntax is
// the parser's concern.

package validate

import "fmt"

// Body validates the size of an encoded document. A maxLen of 0 means no limit.
func Body(body []byte, maxLen int64) error {
	if maxLen > 0 && int64(len(body)) > maxLen {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrBodyTooLarge, len(body), maxLen)
	}
	return nil
}

// Query validates the length of a query string. A maxLen of 0 means no limit.
func Query(q string, maxLen int) error {
	if maxLen > 0 && len(q) > maxLen {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrQueryTooLong, len(q), maxLen)
	}
	return nil
}
