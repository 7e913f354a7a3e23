// match.go evaluates a query tree against one document.
//
// Complex nodes evaluate children left to right and stop at the first child
// that decides the result. Simple nodes follow these rules:
//
//   - equality holds if any candidate of a multi-valued field matches
//   - != is the negation of equality over the whole field
//   - ordering operators look at the first candidate only
//   - a missing field never matches, except that a query without a value
//     asks whether the field is missing
//
// Errors from cast and match functions stop evaluation and are returned
// wrapped in ErrMatch.

package query

import (
	"fmt"
	"sort"
)

// Match reports whether doc satisfies q.
func Match(q Query, doc Document) (bool, error) {
	switch n := q.(type) {
	case *Simple:
		return matchSimple(n, doc)
	case *Complex:
		return matchComplex(n, doc)
	case nil:
		return false, fmt.Errorf("%w: nil query", ErrConfig)
	}
	return false, fmt.Errorf("%w: unsupported query node %T", ErrConfig, q)
}

func matchComplex(c *Complex, doc Document) (bool, error) {
	switch c.Operator {
	case And:
		for _, child := range c.Children {
			ok, err := Match(child, doc)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case Or:
		for _, child := range c.Children {
			ok, err := Match(child, doc)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	case Not:
		if len(c.Children) != 1 {
			return false, fmt.Errorf("%w: NOT takes one query, got %d", ErrConfig, len(c.Children))
		}
		ok, err := Match(c.Children[0], doc)
		return !ok && err == nil, err
	}
	return false, fmt.Errorf("%w: unsupported logical operator %v", ErrConfig, c.Operator)
}

func matchSimple(s *Simple, doc Document) (bool, error) {
	p := s.prep
	if p == nil {
		var err error
		if p, err = prepare(s, nil); err != nil {
			return false, err
		}
	}

	if p.fullText && p.value != nil {
		ok := p.fullTextMatch(doc)
		if s.Operator == OpNe {
			return !ok, nil
		}
		return ok, nil
	}

	raw, present := doc[p.field]
	present = present && raw != nil

	if p.value == nil {
		switch s.Operator {
		case OpNone, OpEq:
			return !present, nil
		case OpNe:
			return present, nil
		}
		return false, nil
	}
	if !present {
		return false, nil
	}

	cands := candidates(raw)
	if p.cast != nil {
		for i, c := range cands {
			v, err := p.cast(c)
			if err != nil {
				return false, fmt.Errorf("%w: cast %q: %w", ErrMatch, p.field, err)
			}
			cands[i] = v
		}
	}

	switch s.Operator {
	case OpNone, OpEq:
		return p.equal(cands)
	case OpNe:
		ok, err := p.equal(cands)
		return !ok && err == nil, err
	}

	if len(cands) == 0 {
		return false, nil
	}
	n, ok, err := compareValues(cands[0], p.value)
	if err != nil {
		return false, fmt.Errorf("%w: compare %q: %w", ErrMatch, p.field, err)
	}
	return ok && ordered(s.Operator, n), nil
}

// equal reports whether any candidate equals the query value.
func (p *prepared) equal(cands []any) (bool, error) {
	for _, c := range cands {
		var (
			ok  bool
			err error
		)
		switch cv := c.(type) {
		case Comparable:
			if p.match != nil {
				ok, err = p.match(c, p.value)
				break
			}
			var n int
			n, err = cv.Cmp(p.value)
			ok = n == 0
		default:
			if p.match != nil {
				ok, err = p.match(c, p.value)
			} else {
				ok = p.re.MatchString(stringify(c))
			}
		}
		if err != nil {
			return false, fmt.Errorf("%w: equality on %q: %w", ErrMatch, p.field, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// fullTextMatch searches every top-level field in key order.
func (p *prepared) fullTextMatch(doc Document) bool {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, c := range candidates(doc[k]) {
			if p.re.MatchString(stringify(c)) {
				return true
			}
		}
	}
	return false
}
