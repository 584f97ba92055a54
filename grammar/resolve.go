package grammar

import (
	"strconv"

	"github.com/npillmayer/laver"
	"github.com/npillmayer/laver/symtab"
)

// Resolve classifies a token in expression position. Checks are done in
// this order, first match wins:
//
//   (1) token consists of decimal digits only ⇒ number literal
//   (2) token names a known variable ⇒ string literal with the variable's current value
//   (3) token names a known array ⇒ array reference with the array's elements
//   (4) otherwise ⇒ identifier
//
// Values are copied: a later change of a variable or array does not affect
// expressions resolved before. Resolve never fails; free names are left for
// an executor to deal with.
func Resolve(token string, tables *symtab.Tables) laver.Expr {
	if isDigits(token) {
		if n, err := strconv.Atoi(token); err == nil {
			return laver.NumberLiteral{Value: n}
		}
		tracer().Errorf("number literal out of range: %s", token)
	}
	if v, ok := tables.Variable(token); ok {
		return laver.StringLiteral{Value: v}
	}
	if a, ok := tables.Array(token); ok {
		return laver.ArrayRef{Name: token, Elements: a}
	}
	return laver.Identifier{Name: token}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
