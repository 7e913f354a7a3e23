// compare.go holds value normalisation and ordering.
//
// Documents arrive as decoded JSON, so a field is a string, a float64, a
// bool, an array or an object. Arrays are multi-valued and objects with a
// "content" member are rich values compared by that member. Values that
// implement Comparable order themselves; everything else falls back to
// numeric comparison when either side is a number and to string comparison
// otherwise.

package query

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Comparable is implemented by values that define their own ordering, such
// as the precision dates in the datekey package. Cmp returns a negative
// number, zero or a positive number as the receiver is less than, equal to
// or greater than other.
type Comparable interface {
	Cmp(other any) (int, error)
}

// unwrap returns the content of a rich value and v otherwise.
func unwrap(v any) any {
	if m, ok := v.(map[string]any); ok {
		if c, ok := m["content"]; ok {
			return c
		}
	}
	return v
}

// candidates returns the values a field contributes to a comparison.
func candidates(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			if e = unwrap(e); e != nil {
				out = append(out, e)
			}
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	}
	if u := unwrap(v); u != nil {
		return []any{u}
	}
	return nil
}

// stringify renders a scalar the way it is written in a query.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

func numericString(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// compareNative orders two plain values. ok is false when a number meets a
// string that is not numeric, or either side is NaN.
func compareNative(a, b any) (n int, ok bool) {
	af, aNum := number(a)
	bf, bNum := number(b)
	if aNum || bNum {
		if !aNum {
			af, aNum = numericString(a)
		}
		if !bNum {
			bf, bNum = numericString(b)
		}
		if !aNum || !bNum || math.IsNaN(af) || math.IsNaN(bf) {
			return 0, false
		}
		return cmp.Compare(af, bf), true
	}
	return strings.Compare(stringify(a), stringify(b)), true
}

// compareValues orders a against b, preferring a's own Cmp.
func compareValues(a, b any) (int, bool, error) {
	if c, ok := a.(Comparable); ok {
		n, err := c.Cmp(b)
		if err != nil {
			return 0, false, err
		}
		return n, true, nil
	}
	n, ok := compareNative(a, b)
	return n, ok, nil
}

// ordered applies an ordering operator to a comparison result.
func ordered(op Operator, n int) bool {
	switch op {
	case OpLt:
		return n < 0
	case OpLe:
		return n <= 0
	case OpGt:
		return n > 0
	case OpGe:
		return n >= 0
	}
	return false
}
