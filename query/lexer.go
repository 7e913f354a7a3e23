// lexer.go splits a query string into tokens.
//
// The lexer is modal. In term position a word directly followed by ':' is a
// key, and AND, OR and NOT are keywords. After a key the lexer is in value
// position: ':' and keyword spellings are ordinary characters, so
// `time: 12:30` and `status: AND` read as values. A quoted string directly
// followed by ':' in term position is a key, for keys that are not words.
//
// Quoted strings honour \" and \\; any other backslash is kept as written, so
// "a\%" is the three characters a, \ and %.

package query

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokKey
	tokOp
	tokWord
	tokString
	tokAnd
	tokOr
	tokNot
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of query"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokKey:
		return "key"
	case tokOp:
		return "operator"
	case tokWord, tokString:
		return "value"
	case tokAnd:
		return "AND"
	case tokOr:
		return "OR"
	case tokNot:
		return "NOT"
	}
	return fmt.Sprintf("token(%d)", int(k))
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	src      string
	pos      int
	valuePos bool
}

// lex tokenizes src. The result always ends with a tokEOF token.
func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	var toks []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += w
	}
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	switch c := l.src[l.pos]; c {
	case '(':
		l.pos++
		l.valuePos = false
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case ')':
		l.pos++
		l.valuePos = false
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case '"':
		s, err := l.quoted()
		if err != nil {
			return token{}, err
		}
		if !l.valuePos && l.pos < len(l.src) && l.src[l.pos] == ':' {
			l.pos++
			l.valuePos = true
			return token{kind: tokKey, text: s, pos: start}, nil
		}
		l.valuePos = false
		return token{kind: tokString, text: s, pos: start}, nil
	case '<', '>', '=', '!':
		if op := l.operator(); op != "" {
			return token{kind: tokOp, text: op, pos: start}, nil
		}
	case ':':
		if !l.valuePos {
			return token{}, parseErr(start, "missing key before ':'")
		}
	}

	return l.word(start)
}

// operator consumes the longest operator at the current position.
func (l *lexer) operator() string {
	rest := l.src[l.pos:]
	for _, op := range []string{"!=", "<=", ">=", "<", ">", "="} {
		if strings.HasPrefix(rest, op) {
			l.pos += len(op)
			return op
		}
	}
	return ""
}

func (l *lexer) word(start int) (token, error) {
	for l.pos < len(l.src) {
		r, w := utf8.DecodeRuneInString(l.src[l.pos:])
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == '"' {
			break
		}
		if r == ':' && !l.valuePos {
			text := l.src[start:l.pos]
			l.pos += w
			l.valuePos = true
			return token{kind: tokKey, text: text, pos: start}, nil
		}
		l.pos += w
	}
	text := l.src[start:l.pos]
	if !l.valuePos {
		switch text {
		case "AND":
			return token{kind: tokAnd, text: text, pos: start}, nil
		case "OR":
			return token{kind: tokOr, text: text, pos: start}, nil
		case "NOT":
			return token{kind: tokNot, text: text, pos: start}, nil
		}
	}
	l.valuePos = false
	return token{kind: tokWord, text: text, pos: start}, nil
}

// quoted consumes a double-quoted string and returns its unescaped content.
func (l *lexer) quoted() (string, error) {
	start := l.pos
	l.pos++
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '"':
			l.pos++
			return b.String(), nil
		case c == '\\' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == '"' || l.src[l.pos+1] == '\\'):
			b.WriteByte(l.src[l.pos+1])
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
	return "", parseErr(start, "unterminated string")
}
