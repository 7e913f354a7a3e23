// builtins.go defines the cast and match functions a schema file can name.

package keyschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/docq/query"
	"github.com/jpl-au/docq/query/datekey"
)

// ErrNotNumber is returned by the number cast for non-numeric values.
var ErrNotNumber = errors.New("not a number")

// Casts returns the builtin cast functions:
//
//	date    precision date (see datekey.Parse)
//	number  float64 from a number or numeric string
//	lower   lower-cased string, other values unchanged
func Casts() map[string]query.CastFunc {
	return map[string]query.CastFunc{
		"date":   datekey.Cast,
		"number": castNumber,
		"lower":  castLower,
	}
}

// Matchers returns the builtin equality functions:
//
//	sameYear, sameMonth, sameDay  calendar comparison of dates
//	equalFold                     case-insensitive string equality
func Matchers() map[string]query.MatchFunc {
	return map[string]query.MatchFunc{
		"sameYear":  datekey.SameYear,
		"sameMonth": datekey.SameMonth,
		"sameDay":   datekey.SameDay,
		"equalFold": equalFold,
	}
}

func castNumber(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotNumber, n)
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotNumber, v)
}

func castLower(v any) (any, error) {
	if s, ok := v.(string); ok {
		return strings.ToLower(s), nil
	}
	return v, nil
}

func equalFold(a, b any) (bool, error) {
	return strings.EqualFold(fmt.Sprint(a), fmt.Sprint(b)), nil
}
