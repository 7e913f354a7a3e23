// parser.go builds query trees from the query language.
//
// Grammar, loosest binding first:
//
//	query   := orExpr? EOF
//	orExpr  := andExpr ( "OR" andExpr )*
//	andExpr := notExpr ( "AND"? notExpr )*
//	notExpr := "NOT" notExpr | primary
//	primary := "(" orExpr? ")" | term
//	term    := KEY ":" op? ( value | "(" orExpr ")" ) | op? value
//
// Terms written next to each other are joined with AND. A key in front of a
// group applies to every term inside it that has no key of its own, and an
// operator in front of a group applies to every term that has none:
//
//	title:(hello OR world)   ->  title: "hello" OR title: "world"
//
// The parser flattens nested AND/AND and OR/OR groups, collapses NOT NOT and
// unwraps groups with a single member.

package query

import "fmt"

// scope carries the key and operator of an enclosing key group.
type scope struct {
	key string
	op  Operator
}

type parser struct {
	toks []token
	pos  int
}

// Parse converts a query string into an unbound tree. Use Create to bind a
// key schema. The empty string yields an AND with no children, which matches
// every document.
func Parse(input string) (Query, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return &Complex{Operator: And}, nil
	}

	q, err := p.orExpr(scope{})
	if err != nil {
		return nil, err
	}
	switch t := p.peek(); t.kind {
	case tokEOF:
		return q, nil
	case tokRParen:
		return nil, parseErr(t.pos, "unbalanced ')'")
	default:
		return nil, parseErr(t.pos, "unexpected %s", t.kind)
	}
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) orExpr(sc scope) (Query, error) {
	first, err := p.andExpr(sc)
	if err != nil {
		return nil, err
	}
	children := []Query{first}
	for p.peek().kind == tokOr {
		p.advance()
		next, err := p.andExpr(sc)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
	return combine(Or, children), nil
}

func (p *parser) andExpr(sc scope) (Query, error) {
	first, err := p.notExpr(sc)
	if err != nil {
		return nil, err
	}
	children := []Query{first}
	for {
		switch p.peek().kind {
		case tokAnd:
			p.advance()
		case tokLParen, tokKey, tokOp, tokWord, tokString, tokNot:
		default:
			return combine(And, children), nil
		}
		next, err := p.notExpr(sc)
		if err != nil {
			return nil, err
		}
		children = append(children, next)
	}
}

func (p *parser) notExpr(sc scope) (Query, error) {
	if p.peek().kind != tokNot {
		return p.primary(sc)
	}
	p.advance()
	child, err := p.notExpr(sc)
	if err != nil {
		return nil, err
	}
	return negate(child), nil
}

func (p *parser) primary(sc scope) (Query, error) {
	t := p.peek()
	switch t.kind {
	case tokLParen:
		return p.group(sc)
	case tokKey:
		p.advance()
		if t.text == "" {
			return nil, parseErr(t.pos, "empty key")
		}
		inner := scope{key: t.text}
		op, err := p.operator()
		if err != nil {
			return nil, err
		}
		inner.op = op
		if p.peek().kind == tokLParen {
			return p.group(inner)
		}
		return p.value(inner)
	case tokOp:
		op, err := p.operator()
		if err != nil {
			return nil, err
		}
		return p.value(scope{key: sc.key, op: op})
	case tokWord, tokString:
		return p.value(sc)
	case tokRParen:
		return nil, parseErr(t.pos, "unbalanced ')'")
	case tokEOF:
		return nil, parseErr(t.pos, "unexpected end of query")
	}
	return nil, parseErr(t.pos, "unexpected %s", t.kind)
}

// group parses a parenthesised expression. "( )" is the empty AND.
func (p *parser) group(sc scope) (Query, error) {
	open := p.advance()
	if p.peek().kind == tokRParen {
		p.advance()
		return &Complex{Operator: And}, nil
	}
	q, err := p.orExpr(sc)
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokRParen {
		return nil, parseErr(open.pos, "unbalanced '('")
	}
	p.advance()
	return q, nil
}

// operator consumes an optional operator token. Two operators in a row are
// reported together as one unknown operator.
func (p *parser) operator() (Operator, error) {
	t := p.peek()
	if t.kind != tokOp {
		return OpNone, nil
	}
	p.advance()
	if n := p.peek(); n.kind == tokOp {
		return OpNone, parseErr(t.pos, "unknown operator %q", t.text+n.text)
	}
	op, err := ParseOperator(t.text)
	if err != nil {
		return OpNone, parseErr(t.pos, "unknown operator %q", t.text)
	}
	return op, nil
}

func (p *parser) value(sc scope) (Query, error) {
	t := p.peek()
	if t.kind != tokWord && t.kind != tokString {
		if sc.key != "" {
			return nil, parseErr(t.pos, "missing value for key %q", sc.key)
		}
		return nil, parseErr(t.pos, "missing value, found %s", t.kind)
	}
	p.advance()
	return &Simple{Key: sc.key, Operator: sc.op, Value: t.text}, nil
}

// combine joins children under op, lifting children that already use op.
func combine(op Logical, children []Query) Query {
	if len(children) == 1 {
		return children[0]
	}
	flat := make([]Query, 0, len(children))
	for _, c := range children {
		if cc, ok := c.(*Complex); ok && cc.Operator == op {
			flat = append(flat, cc.Children...)
			continue
		}
		flat = append(flat, c)
	}
	return &Complex{Operator: op, Children: flat}
}

func negate(q Query) Query {
	if c, ok := q.(*Complex); ok && c.Operator == Not && len(c.Children) == 1 {
		return c.Children[0]
	}
	return &Complex{Operator: Not, Children: []Query{q}}
}

// MustParse is like Parse but panics on error. It is meant for queries
// written into code.
func MustParse(input string) Query {
	q, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("query.MustParse(%q): %v", input, err))
	}
	return q
}
