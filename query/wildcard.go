// wildcard.go compiles query values into regular expressions.
//
// % stands for any run of characters and _ for exactly one. Wildcards are
// only active when the value contains a %; otherwise the value is compared
// literally, so "__" matches the two-character string "__" and nothing else.
// Everything that is not a wildcard is quoted, which keeps a backslash or a
// dot in the value literal.

package query

import (
	"regexp"
	"strings"
)

// wildcardPattern returns the regexp source for value. Anchored patterns
// must match the whole candidate; unanchored ones match a substring.
func wildcardPattern(value string, anchored bool) string {
	wild := strings.Contains(value, "%")

	var b strings.Builder
	b.WriteString("(?s)")
	if anchored {
		b.WriteString(`\A`)
	}
	start := 0
	for i := 0; i < len(value); i++ {
		c := value[i]
		if !wild || (c != '%' && c != '_') {
			continue
		}
		b.WriteString(regexp.QuoteMeta(value[start:i]))
		if c == '%' {
			b.WriteString(".*")
		} else {
			b.WriteString(".")
		}
		start = i + 1
	}
	b.WriteString(regexp.QuoteMeta(value[start:]))
	if anchored {
		b.WriteString(`\z`)
	}
	return b.String()
}

// compileWildcard compiles value for equality. Full-text patterns are
// case-insensitive substring matches.
func compileWildcard(value string, fullText bool) (*regexp.Regexp, error) {
	src := wildcardPattern(value, !fullText)
	if fullText {
		src = "(?i)" + src
	}
	return regexp.Compile(src)
}
