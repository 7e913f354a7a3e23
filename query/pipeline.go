// pipeline.go shapes a matched result set: sort, limit and select.
//
// Each stage is exported on its own so that a storage adapter can slot its
// own steps between them (the document store keeps ids outside the selected
// fields, for example). Exec runs them in the fixed order filter, sort,
// limit, select.

package query

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// ParseDirection accepts "ascending" and "descending".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "ascending":
		return Ascending, nil
	case "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("%w: unsupported sort direction %q", ErrConfig, s)
}

// ParseSortKey reads the command-line form of a sort key: "field",
// "field:asc" or "field:desc". The long direction names are accepted too. A
// colon followed by anything else is part of the field name.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortKey{}, fmt.Errorf("%w: empty sort key", ErrConfig)
	}
	if i := strings.LastIndexByte(s, ':'); i > 0 {
		switch s[i+1:] {
		case "asc", "ascending":
			return SortKey{Field: s[:i], Direction: Ascending}, nil
		case "desc", "descending":
			return SortKey{Field: s[:i], Direction: Descending}, nil
		}
	}
	return SortKey{Field: s}, nil
}

// SortKey is one [field, direction] pair of sort_on.
type SortKey struct {
	Field     string
	Direction Direction
}

func (k SortKey) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{k.Field, k.Direction.String()})
}

func (k *SortKey) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: sort_on entry must be [field, direction]: %w", ErrConfig, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: sort_on entry must be [field, direction], got %d items", ErrConfig, len(pair))
	}
	dir, err := ParseDirection(pair[1])
	if err != nil {
		return err
	}
	k.Field, k.Direction = pair[0], dir
	return nil
}

// Options shapes the result of Exec. Schema, when set, is used to resolve
// sort_on keys the same way the query resolves its keys.
//
// Limit is either [n], keeping the first n documents, or [offset, count],
// dropping offset documents and then keeping count of them (all of them when
// count is 0).
type Options struct {
	SelectList []string   `json:"select_list,omitempty"`
	SortOn     []SortKey  `json:"sort_on,omitempty"`
	Limit      []int      `json:"limit,omitempty"`
	Schema     *KeySchema `json:"-"`
}

// Validate checks limit and sort_on.
func (o Options) Validate() error {
	if len(o.Limit) > 2 {
		return fmt.Errorf("%w: limit takes at most two numbers, got %d", ErrConfig, len(o.Limit))
	}
	for _, n := range o.Limit {
		if n < 0 {
			return fmt.Errorf("%w: limit must not be negative, got %v", ErrConfig, o.Limit)
		}
	}
	for _, k := range o.SortOn {
		if k.Field == "" {
			return fmt.Errorf("%w: sort_on entry without field", ErrConfig)
		}
		if k.Direction != Ascending && k.Direction != Descending {
			return fmt.Errorf("%w: unsupported sort direction %v", ErrConfig, int(k.Direction))
		}
	}
	return nil
}

// sortEntry holds a document and its precomputed sort values.
type sortEntry struct {
	doc  Document
	vals [][]any // per sort key; nil when the field is absent
}

// Sort returns docs ordered by keys, the first key deciding first. Equal
// documents keep their relative order. A document without the field sorts
// after the others when ascending and before them when descending. Keys
// defined in schema read from their read_from field and go through their
// cast.
func Sort(docs []Document, keys []SortKey, schema *KeySchema) ([]Document, error) {
	if len(keys) == 0 {
		return docs, nil
	}
	type source struct {
		field string
		cast  CastFunc
	}
	srcs := make([]source, len(keys))
	for i, k := range keys {
		srcs[i].field = k.Field
		if d, ok := schema.descriptor(k.Field); ok {
			cast, _, err := schema.functions(k.Field, d)
			if err != nil {
				return nil, err
			}
			srcs[i] = source{field: d.ReadFrom, cast: cast}
		}
	}

	entries := make([]sortEntry, len(docs))
	for i, doc := range docs {
		entries[i] = sortEntry{doc: doc, vals: make([][]any, len(keys))}
		for j, src := range srcs {
			vals := candidates(doc[src.field])
			if len(vals) == 0 {
				continue
			}
			if src.cast != nil {
				for n, v := range vals {
					cv, err := src.cast(v)
					if err != nil {
						return nil, fmt.Errorf("%w: cast %q for sort: %w", ErrMatch, src.field, err)
					}
					vals[n] = cv
				}
			}
			entries[i].vals[j] = vals
		}
	}

	slices.SortStableFunc(entries, func(a, b sortEntry) int {
		for j, k := range keys {
			n := compareSortValues(a.vals[j], b.vals[j])
			if k.Direction == Descending {
				n = -n
			}
			if n != 0 {
				return n
			}
		}
		return 0
	})

	out := make([]Document, len(entries))
	for i, e := range entries {
		out[i] = e.doc
	}
	return out, nil
}

// compareSortValues orders two candidate lists element by element. Absent
// values order after present ones, and a list that is a prefix of the other
// orders first.
func compareSortValues(a, b []any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if n := compareSortValue(a[i], b[i]); n != 0 {
			return n
		}
	}
	return len(a) - len(b)
}

// Sort ranks. Values of different ranks never compare by content, which
// keeps the order total when numbers and strings share a field.
const (
	rankNumber = iota
	rankString
	rankBool
	rankOther
)

func sortRank(v any) int {
	switch v.(type) {
	case string:
		return rankString
	case bool:
		return rankBool
	}
	if _, ok := number(v); ok {
		return rankNumber
	}
	return rankOther
}

// compareSortValue orders two single values: by Cmp when a defines it and
// accepts b, otherwise numbers before strings before booleans, each compared
// within its own kind.
func compareSortValue(a, b any) int {
	if c, ok := a.(Comparable); ok {
		if n, err := c.Cmp(b); err == nil {
			return n
		}
	}
	ra, rb := sortRank(a), sortRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNumber:
		af, _ := number(a)
		bf, _ := number(b)
		return cmp.Compare(af, bf)
	case rankBool:
		switch {
		case a == b:
			return 0
		case a == false:
			return -1
		}
		return 1
	}
	return strings.Compare(stringify(a), stringify(b))
}

// Limit applies a [n] or [offset, count] limit.
func Limit(docs []Document, limit []int) []Document {
	switch len(limit) {
	case 1:
		return docs[:min(max(limit[0], 0), len(docs))]
	case 2:
		offset := min(max(limit[0], 0), len(docs))
		docs = docs[offset:]
		if count := limit[1]; count > 0 && count < len(docs) {
			docs = docs[:count]
		}
	}
	return docs
}

// Select projects each document onto fields, leaving out fields a document
// does not have. An empty field list returns docs unchanged.
func Select(docs []Document, fields []string) []Document {
	if len(fields) == 0 {
		return docs
	}
	out := make([]Document, len(docs))
	for i, doc := range docs {
		p := make(Document, len(fields))
		for _, f := range fields {
			if v, ok := doc[f]; ok {
				p[f] = v
			}
		}
		out[i] = p
	}
	return out
}
