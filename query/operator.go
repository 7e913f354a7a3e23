// operator.go defines the comparison and logical operators.
//
// Operators are small enums rather than strings so that matching dispatches
// through a switch. The string forms are the ones used by both the query
// language and the JSON shape.

package query

import (
	"fmt"
	"strings"
)

// Operator is a Simple comparison operator. The zero value, OpNone, records
// that the query did not name one; it compares like OpEq.
type Operator int

const (
	OpNone Operator = iota
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var operatorNames = [...]string{
	OpNone: "",
	OpEq:   "=",
	OpNe:   "!=",
	OpLt:   "<",
	OpLe:   "<=",
	OpGt:   ">",
	OpGe:   ">=",
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorNames) {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorNames[o]
}

// ParseOperator returns the operator for s. The empty string is OpNone.
func ParseOperator(s string) (Operator, error) {
	for i, name := range operatorNames {
		if name == s {
			return Operator(i), nil
		}
	}
	return OpNone, fmt.Errorf("%w: unknown operator %q", ErrConfig, s)
}

// Logical is a Complex combinator.
type Logical int

const (
	And Logical = iota
	Or
	Not
)

func (l Logical) String() string {
	switch l {
	case And:
		return "AND"
	case Or:
		return "OR"
	case Not:
		return "NOT"
	}
	return fmt.Sprintf("Logical(%d)", int(l))
}

// ParseLogical accepts AND, OR and NOT in any case. The empty string is And.
func ParseLogical(s string) (Logical, error) {
	switch strings.ToUpper(s) {
	case "", "AND":
		return And, nil
	case "OR":
		return Or, nil
	case "NOT":
		return Not, nil
	}
	return And, fmt.Errorf("%w: unknown logical operator %q", ErrConfig, s)
}
