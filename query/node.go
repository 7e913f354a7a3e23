// node.go defines the query tree.
//
// A Query is either a *Simple comparison or a *Complex boolean combination.
// The interface is sealed; behaviour lives in package functions (Match,
// Format, Serialize) that switch on the concrete type. Nodes built by Create
// carry their resolved key schema and compiled patterns, and are never
// modified afterwards, so one tree can be matched from many goroutines.

package query

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Document is a decoded JSON object.
type Document = map[string]any

// Query is a node of a compiled query tree: *Simple or *Complex.
type Query interface {
	fmt.Stringer
	json.Marshaler
	node()
}

// Simple compares one field against a value.
//
// Key names the field, or a key_set entry when a schema is bound. Descriptor,
// when set, is an inline key description used instead of the schema. An empty
// Key with no Descriptor is a full-text term matched against every field.
type Simple struct {
	Key        string
	Descriptor *KeyDescriptor
	Operator   Operator
	Value      any

	prep *prepared
}

// Complex combines child queries. Not takes exactly one child.
type Complex struct {
	Operator Logical
	Children []Query
}

func (*Simple) node()  {}
func (*Complex) node() {}

func (s *Simple) String() string  { return Format(s) }
func (c *Complex) String() string { return Format(c) }

func (s *Simple) MarshalJSON() ([]byte, error)  { return json.Marshal(Serialize(s)) }
func (c *Complex) MarshalJSON() ([]byte, error) { return json.Marshal(Serialize(c)) }

// FullText reports whether s matches against every field instead of one.
func (s *Simple) FullText() bool {
	return s.Key == "" && s.Descriptor == nil && equality(s.Operator)
}

func equality(op Operator) bool {
	return op == OpNone || op == OpEq || op == OpNe
}

// prepared is the per-node state derived from the key schema.
type prepared struct {
	field    string
	cast     CastFunc
	match    MatchFunc
	value    any
	re       *regexp.Regexp
	fullText bool
}

// prepare resolves s against schema and compiles its equality pattern.
func prepare(s *Simple, schema *KeySchema) (*prepared, error) {
	p := &prepared{field: s.Key, fullText: s.FullText(), value: s.Value}

	var (
		d    KeyDescriptor
		name = s.Key
		ok   bool
	)
	if s.Descriptor != nil {
		d, ok, name = *s.Descriptor, true, s.Descriptor.ReadFrom
	} else {
		d, ok = schema.descriptor(s.Key)
	}
	if ok {
		cast, match, err := schema.functions(name, d)
		if err != nil {
			return nil, err
		}
		p.field, p.cast, p.match = d.ReadFrom, cast, match
	}

	if p.cast != nil && p.value != nil {
		v, err := p.cast(p.value)
		if err != nil {
			return nil, fmt.Errorf("%w: cast query value for %q: %w", ErrMatch, name, err)
		}
		p.value = v
	}

	if p.value != nil && p.match == nil && equality(s.Operator) {
		re, err := compileWildcard(stringify(p.value), p.fullText)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern for %q: %w", ErrConfig, name, err)
		}
		p.re = re
	}
	return p, nil
}

// Serialize returns the plain JSON form of q, suitable for Create.
func Serialize(q Query) map[string]any {
	switch n := q.(type) {
	case *Simple:
		m := map[string]any{"type": "simple"}
		switch {
		case n.Descriptor != nil:
			m["key"] = serializeDescriptor(*n.Descriptor)
		case n.Key != "":
			m["key"] = n.Key
		}
		if n.Operator != OpNone {
			m["operator"] = n.Operator.String()
		}
		if n.Value != nil {
			m["value"] = n.Value
		}
		return m
	case *Complex:
		list := make([]any, len(n.Children))
		for i, c := range n.Children {
			list[i] = Serialize(c)
		}
		return map[string]any{
			"type":       "complex",
			"operator":   n.Operator.String(),
			"query_list": list,
		}
	}
	return nil
}

func serializeDescriptor(d KeyDescriptor) map[string]any {
	m := map[string]any{"read_from": d.ReadFrom}
	if d.CastTo != "" {
		m["cast_to"] = d.CastTo
	}
	if d.EqualMatch != "" {
		m["equal_match"] = d.EqualMatch
	}
	return m
}

// Format renders q in the query language. When Expressible(q) is nil,
// parsing the result yields a tree that matches the same documents; trees
// from Parse always qualify. Serialize is exact for every tree.
func Format(q Query) string {
	var b strings.Builder
	format(&b, q)
	return b.String()
}

func format(b *strings.Builder, q Query) {
	switch n := q.(type) {
	case *Simple:
		switch {
		case n.Descriptor != nil:
			b.WriteString(formatKey(n.Descriptor.ReadFrom))
			b.WriteString(": ")
		case n.Key != "":
			b.WriteString(formatKey(n.Key))
			b.WriteString(": ")
		}
		if n.Operator != OpNone {
			b.WriteString(n.Operator.String())
			b.WriteByte(' ')
		}
		b.WriteString(quote(stringify(n.Value)))
	case *Complex:
		switch {
		case n.Operator == Not && len(n.Children) == 1:
			b.WriteString("NOT ( ")
			format(b, n.Children[0])
			b.WriteString(" )")
		case len(n.Children) == 0 && n.Operator == Or:
			b.WriteString("NOT ( ( ) )")
		case len(n.Children) == 0:
			b.WriteString("( )")
		default:
			// Also reached by a NOT without exactly one operand, which
			// Create rejects and Expressible reports.
			b.WriteString("( ")
			for i, c := range n.Children {
				if i > 0 {
					b.WriteByte(' ')
					b.WriteString(n.Operator.String())
					b.WriteByte(' ')
				}
				format(b, c)
			}
			b.WriteString(" )")
		}
	}
}

// formatKey writes key bare when the lexer reads it back as one word and
// quoted otherwise.
func formatKey(key string) string {
	if key == "" || strings.ContainsAny(key[:1], `<>=!`) {
		return quote(key)
	}
	for _, r := range key {
		if unicode.IsSpace(r) || strings.ContainsRune(`()":`, r) {
			return quote(key)
		}
	}
	return key
}

// Expressible reports why Format cannot write q exactly, or nil when it can.
// The query language has no syntax for inline key descriptors or for a term
// without a value, writes every value as a string, and gives NOT exactly one
// operand.
func Expressible(q Query) error {
	switch n := q.(type) {
	case *Simple:
		if n.Descriptor != nil {
			return fmt.Errorf("%w: inline descriptor for %q", ErrInexpressible, n.Descriptor.ReadFrom)
		}
		if n.Value == nil {
			return fmt.Errorf("%w: no value for %q", ErrInexpressible, n.Key)
		}
		if _, ok := n.Value.(string); !ok && !equality(n.Operator) {
			return fmt.Errorf("%w: %T value for %q with %s", ErrInexpressible, n.Value, n.Key, n.Operator)
		}
	case *Complex:
		if n.Operator == Not && len(n.Children) != 1 {
			return fmt.Errorf("%w: NOT with %d operands", ErrInexpressible, len(n.Children))
		}
		for _, c := range n.Children {
			if err := Expressible(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// quote wraps s in double quotes, escaping backslashes and quotes.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
