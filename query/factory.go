// factory.go is the entry point that turns any query specification into a
// bound tree.
//
// A specification is a query string, the JSON form (raw bytes or a decoded
// map) or an existing tree. In every case Create returns fresh nodes with the
// key schema resolved and patterns compiled; the input is never modified.

package query

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Create builds a query from spec and binds schema (which may be nil).
//
// Accepted specs: string, []byte and json.RawMessage (JSON form),
// map[string]any (decoded JSON form) and Query.
func Create(spec any, schema *KeySchema) (Query, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	b := binder{schema: schema}

	switch v := spec.(type) {
	case string:
		q, err := Parse(v)
		if err != nil {
			return nil, err
		}
		return b.bind(q)
	case []byte:
		return b.fromJSON(v)
	case json.RawMessage:
		return b.fromJSON(v)
	case map[string]any:
		return b.fromObject(v)
	case *Simple:
		if v == nil {
			break
		}
		return b.bind(v)
	case *Complex:
		if v == nil {
			break
		}
		return b.bind(v)
	}
	return nil, fmt.Errorf("%w: unparsable query specification of type %T", ErrConfig, spec)
}

// MustCreate is like Create but panics on error.
func MustCreate(spec any, schema *KeySchema) Query {
	q, err := Create(spec, schema)
	if err != nil {
		panic(fmt.Sprintf("query.MustCreate: %v", err))
	}
	return q
}

type binder struct {
	schema *KeySchema
}

// bind copies q, preparing every Simple against the schema.
func (b binder) bind(q Query) (Query, error) {
	switch n := q.(type) {
	case *Simple:
		if n == nil {
			break
		}
		s := &Simple{Key: n.Key, Operator: n.Operator, Value: n.Value}
		if n.Descriptor != nil {
			d := *n.Descriptor
			s.Descriptor = &d
		}
		p, err := prepare(s, b.schema)
		if err != nil {
			return nil, err
		}
		s.prep = p
		return s, nil
	case *Complex:
		if n == nil {
			break
		}
		if n.Operator == Not && len(n.Children) != 1 {
			return nil, fmt.Errorf("%w: NOT takes one query, got %d", ErrConfig, len(n.Children))
		}
		c := &Complex{Operator: n.Operator, Children: make([]Query, len(n.Children))}
		for i, child := range n.Children {
			bc, err := b.bind(child)
			if err != nil {
				return nil, err
			}
			c.Children[i] = bc
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: unparsable query specification of type %T", ErrConfig, q)
}

func (b binder) fromJSON(data []byte) (Query, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: unparsable query specification: %w", ErrConfig, err)
	}
	return b.fromObject(m)
}

func (b binder) fromObject(m map[string]any) (Query, error) {
	q, err := decodeObject(m)
	if err != nil {
		return nil, err
	}
	return b.bind(q)
}

// decodeObject converts the JSON form into an unbound tree.
func decodeObject(m map[string]any) (Query, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: unparsable query specification: null", ErrConfig)
	}
	typ, _ := m["type"].(string)
	switch strings.ToLower(typ) {
	case "simple":
		return decodeSimple(m)
	case "complex":
		return decodeComplex(m)
	}
	return nil, fmt.Errorf("%w: unparsable query specification: type %q", ErrConfig, typ)
}

func decodeSimple(m map[string]any) (Query, error) {
	s := &Simple{Value: m["value"]}

	switch k := m["key"].(type) {
	case nil:
	case string:
		s.Key = k
	case map[string]any:
		d, err := parseDescriptor("inline", k)
		if err != nil {
			return nil, err
		}
		s.Descriptor = &d
	default:
		return nil, fmt.Errorf("%w: simple query key must be a string or descriptor, got %T", ErrConfig, k)
	}

	if raw, ok := m["operator"]; ok && raw != nil {
		name, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: simple query operator must be a string, got %T", ErrConfig, raw)
		}
		op, err := ParseOperator(name)
		if err != nil {
			return nil, err
		}
		s.Operator = op
	}
	return s, nil
}

func decodeComplex(m map[string]any) (Query, error) {
	name, _ := m["operator"].(string)
	op, err := ParseLogical(name)
	if err != nil {
		return nil, err
	}
	c := &Complex{Operator: op}

	var items []any
	switch list := m["query_list"].(type) {
	case nil:
	case []any:
		items = list
	case []map[string]any:
		for _, e := range list {
			items = append(items, e)
		}
	case []Query:
		for _, e := range list {
			items = append(items, e)
		}
	default:
		return nil, fmt.Errorf("%w: query_list must be a list, got %T", ErrConfig, list)
	}

	for i, item := range items {
		var child Query
		switch v := item.(type) {
		case map[string]any:
			if child, err = decodeObject(v); err != nil {
				return nil, err
			}
		case *Simple:
			child = v
		case *Complex:
			child = v
		default:
			return nil, fmt.Errorf("%w: query_list[%d]: unparsable query specification of type %T", ErrConfig, i, item)
		}
		c.Children = append(c.Children, child)
	}
	return c, nil
}
