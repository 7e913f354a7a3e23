// keyschema.go implements key indirection for Simple queries.
//
// A key schema maps the key written in a query to the document field it reads
// and to optional cast and equality functions. Casts apply to both the
// document value and the query value, which is how a key like "date_day" can
// compare "2013-02-02" against "2013-02-02T10:00:00" as calendar days.
//
// Functions are referenced by name through CastLookup and MatchLookup, or set
// directly on a descriptor. Every name is checked when the schema is bound to
// a query, so a typo fails at Create rather than silently comparing raw
// strings.

package query

import (
	"fmt"
	"slices"
	"sort"
)

// CastFunc converts a document or query value before comparison.
type CastFunc func(v any) (any, error)

// MatchFunc replaces default equality. docValue is one candidate from the
// document (after cast), queryValue is the query value (after cast).
type MatchFunc func(docValue, queryValue any) (bool, error)

// KeyDescriptor describes how a logical key is read and compared.
// Cast and Match, when set, take precedence over CastTo and EqualMatch.
type KeyDescriptor struct {
	ReadFrom   string
	CastTo     string
	Cast       CastFunc
	EqualMatch string
	Match      MatchFunc
}

// Alias returns a descriptor that only renames a field.
func Alias(field string) KeyDescriptor {
	return KeyDescriptor{ReadFrom: field}
}

// KeySchema is read-only configuration shared by every node of a query.
type KeySchema struct {
	KeySet      map[string]KeyDescriptor
	CastLookup  map[string]CastFunc
	MatchLookup map[string]MatchFunc
}

var (
	schemaProps     = []string{"key_set", "cast_lookup", "match_lookup"}
	descriptorProps = []string{"read_from", "cast_to", "equal_match"}
)

// Validate checks that key_set is present and that every descriptor can be
// resolved. A nil schema is valid.
func (s *KeySchema) Validate() error {
	if s == nil {
		return nil
	}
	if s.KeySet == nil {
		return fmt.Errorf("%w: key schema requires key_set", ErrConfig)
	}
	names := make([]string, 0, len(s.KeySet))
	for name := range s.KeySet {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, _, err := s.functions(name, s.KeySet[name]); err != nil {
			return err
		}
	}
	return nil
}

// functions resolves the cast and match functions of d. name is only used in
// error messages.
func (s *KeySchema) functions(name string, d KeyDescriptor) (CastFunc, MatchFunc, error) {
	if d.ReadFrom == "" {
		return nil, nil, fmt.Errorf("%w: key %q: descriptor requires read_from", ErrConfig, name)
	}

	cast := d.Cast
	if cast == nil && d.CastTo != "" {
		var ok bool
		if s != nil {
			cast, ok = s.CastLookup[d.CastTo]
		}
		if !ok || cast == nil {
			return nil, nil, fmt.Errorf("%w: key %q: unknown cast_to %q", ErrConfig, name, d.CastTo)
		}
	}

	match := d.Match
	if match == nil && d.EqualMatch != "" {
		var ok bool
		if s != nil {
			match, ok = s.MatchLookup[d.EqualMatch]
		}
		if !ok || match == nil {
			return nil, nil, fmt.Errorf("%w: key %q: unknown equal_match %q", ErrConfig, name, d.EqualMatch)
		}
	}
	return cast, match, nil
}

// descriptor returns the descriptor for key, if the schema defines one.
func (s *KeySchema) descriptor(key string) (KeyDescriptor, bool) {
	if s == nil {
		return KeyDescriptor{}, false
	}
	d, ok := s.KeySet[key]
	return d, ok
}

// ParseKeySchema builds a schema from its plain-object form:
//
//	{
//	    "key_set": {
//	        "day":   {"read_from": "date", "cast_to": "date", "equal_match": "sameDay"},
//	        "title": "dc_title"
//	    },
//	    "cast_lookup":  map[string]CastFunc{...},
//	    "match_lookup": map[string]MatchFunc{...}
//	}
//
// A key_set entry is either a field name (an alias) or a descriptor object.
// Unknown properties at either level are rejected. cast_to and equal_match
// may hold a name or a function.
func ParseKeySchema(raw map[string]any) (*KeySchema, error) {
	if err := onlyProps("key schema", raw, schemaProps); err != nil {
		return nil, err
	}
	rawSet, ok := raw["key_set"]
	if !ok {
		return nil, fmt.Errorf("%w: key schema requires key_set", ErrConfig)
	}
	set, ok := rawSet.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: key_set must be an object, got %T", ErrConfig, rawSet)
	}

	s := &KeySchema{
		KeySet:      make(map[string]KeyDescriptor, len(set)),
		CastLookup:  map[string]CastFunc{},
		MatchLookup: map[string]MatchFunc{},
	}
	if err := decodeLookup(raw["cast_lookup"], "cast_lookup", s.CastLookup, toCast); err != nil {
		return nil, err
	}
	if err := decodeLookup(raw["match_lookup"], "match_lookup", s.MatchLookup, toMatch); err != nil {
		return nil, err
	}

	for name, v := range set {
		switch d := v.(type) {
		case string:
			s.KeySet[name] = Alias(d)
		case KeyDescriptor:
			s.KeySet[name] = d
		case map[string]any:
			desc, err := parseDescriptor(name, d)
			if err != nil {
				return nil, err
			}
			s.KeySet[name] = desc
		default:
			return nil, fmt.Errorf("%w: key %q: expected field name or descriptor, got %T", ErrConfig, name, v)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseDescriptor decodes {read_from, cast_to, equal_match}. It is also used
// for keys given inline in the JSON form of a Simple query.
func parseDescriptor(name string, m map[string]any) (KeyDescriptor, error) {
	var d KeyDescriptor
	if err := onlyProps(fmt.Sprintf("key %q", name), m, descriptorProps); err != nil {
		return d, err
	}
	rf, ok := m["read_from"].(string)
	if !ok || rf == "" {
		return d, fmt.Errorf("%w: key %q: descriptor requires read_from", ErrConfig, name)
	}
	d.ReadFrom = rf

	if v, ok := m["cast_to"]; ok {
		if fn, ok := toCast(v); ok {
			d.Cast = fn
		} else if n, ok := v.(string); ok {
			d.CastTo = n
		} else {
			return d, fmt.Errorf("%w: key %q: cast_to must be a name or function, got %T", ErrConfig, name, v)
		}
	}
	if v, ok := m["equal_match"]; ok {
		if fn, ok := toMatch(v); ok {
			d.Match = fn
		} else if n, ok := v.(string); ok {
			d.EqualMatch = n
		} else {
			return d, fmt.Errorf("%w: key %q: equal_match must be a name or function, got %T", ErrConfig, name, v)
		}
	}
	return d, nil
}

func onlyProps(what string, m map[string]any, allowed []string) error {
	var unknown []string
	for k := range m {
		if !slices.Contains(allowed, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: %s: unknown property %q", ErrConfig, what, unknown[0])
}

func toCast(v any) (CastFunc, bool) {
	switch fn := v.(type) {
	case CastFunc:
		return fn, fn != nil
	case func(any) (any, error):
		return fn, fn != nil
	}
	return nil, false
}

func toMatch(v any) (MatchFunc, bool) {
	switch fn := v.(type) {
	case MatchFunc:
		return fn, fn != nil
	case func(any, any) (bool, error):
		return fn, fn != nil
	}
	return nil, false
}

// decodeLookup copies a lookup table given either as a typed map or as an
// object of functions.
func decodeLookup[F any](v any, what string, dst map[string]F, conv func(any) (F, bool)) error {
	switch m := v.(type) {
	case nil:
		return nil
	case map[string]F:
		for k, fn := range m {
			dst[k] = fn
		}
		return nil
	case map[string]any:
		for k, raw := range m {
			fn, ok := conv(raw)
			if !ok {
				return fmt.Errorf("%w: %s[%q]: expected function, got %T", ErrConfig, what, k, raw)
			}
			dst[k] = fn
		}
		return nil
	}
	return fmt.Errorf("%w: %s must be an object, got %T", ErrConfig, what, v)
}
