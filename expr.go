package laver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'laver'.
func tracer() tracing.Trace {
	return tracing.Select("laver")
}

// ExprType represents the kind of an expression.
type ExprType int8

// Expression kinds produced by the resolver and the statement rules.
const (
	NoExpr ExprType = iota
	NumberExpr
	StringExpr
	VariableExpr
	ArrayExpr
	IdentifierExpr
	ArrayLiteralExpr
	EqualityExpr
)

func (t ExprType) String() string {
	switch t {
	case NumberExpr:
		return "number"
	case StringExpr:
		return "string"
	case VariableExpr:
		return "variable"
	case ArrayExpr:
		return "array"
	case IdentifierExpr:
		return "identifier"
	case ArrayLiteralExpr:
		return "array-literal"
	case EqualityExpr:
		return "equality"
	}
	return "<undefined>"
}

// --- Expr ------------------------------------------------------------------

// Expr is an interface for all expressions the translator can produce.
// Expressions are values: once resolved they never refer back into a
// symbol table.
type Expr interface {
	ExprType() ExprType
	String() string
	isExpr()
}

// NumberLiteral is a decimal integer literal.
type NumberLiteral struct {
	Value int
}

// ExprType returns NumberExpr.
func (n NumberLiteral) ExprType() ExprType { return NumberExpr }

func (n NumberLiteral) String() string { return strconv.Itoa(n.Value) }

func (NumberLiteral) isExpr() {}

// StringLiteral is a string value, either written literally or substituted
// from a variable at resolution time.
type StringLiteral struct {
	Value string
}

// ExprType returns StringExpr.
func (s StringLiteral) ExprType() ExprType { return StringExpr }

func (s StringLiteral) String() string { return strconv.Quote(s.Value) }

func (StringLiteral) isExpr() {}

// VariableRef names a variable. Resolved holds what the name resolved to at
// the point of reference, which is nil if it was not resolved at all.
type VariableRef struct {
	Name     string
	Resolved Expr
}

// ExprType returns VariableExpr.
func (v VariableRef) ExprType() ExprType { return VariableExpr }

func (v VariableRef) String() string { return "&" + v.Name }

func (VariableRef) isExpr() {}

// ArrayRef is a reference to a known array, carrying a copy of the array's
// elements as they were stored.
type ArrayRef struct {
	Name     string
	Elements []Expr
}

// ExprType returns ArrayExpr.
func (a ArrayRef) ExprType() ExprType { return ArrayExpr }

func (a ArrayRef) String() string { return listString(a.Elements) }

func (ArrayRef) isExpr() {}

// Identifier is a free name, to be resolved by an executor.
type Identifier struct {
	Name string
}

// ExprType returns IdentifierExpr.
func (id Identifier) ExprType() ExprType { return IdentifierExpr }

func (id Identifier) String() string { return id.Name }

func (Identifier) isExpr() {}

// ArrayDefinition is an array literal, the value of an array definition.
type ArrayDefinition struct {
	Elements []Expr
}

// ExprType returns ArrayLiteralExpr.
func (a ArrayDefinition) ExprType() ExprType { return ArrayLiteralExpr }

func (a ArrayDefinition) String() string { return listString(a.Elements) }

func (ArrayDefinition) isExpr() {}

// Equality is the test of a conditional: Left == Right.
type Equality struct {
	Left  Expr
	Right Expr
}

// ExprType returns EqualityExpr.
func (eq Equality) ExprType() ExprType { return EqualityExpr }

func (eq Equality) String() string {
	return fmt.Sprintf("%s == %s", eq.Left, eq.Right)
}

func (Equality) isExpr() {}

func listString(elems []Expr) string {
	s := make([]string, len(elems))
	for i, e := range elems {
		s[i] = e.String()
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// CopyExprs returns a copy of a slice of expressions. Nested array values are
// copied as well.
func CopyExprs(elems []Expr) []Expr {
	if elems == nil {
		return nil
	}
	c := make([]Expr, len(elems))
	for i, e := range elems {
		switch x := e.(type) {
		case ArrayRef:
			c[i] = ArrayRef{Name: x.Name, Elements: CopyExprs(x.Elements)}
		case ArrayDefinition:
			c[i] = ArrayDefinition{Elements: CopyExprs(x.Elements)}
		default:
			c[i] = e
		}
	}
	return c
}

// EqualExpr is a predicate: are two expressions structurally equal?
func EqualExpr(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.ExprType() != b.ExprType() {
		return false
	}
	switch x := a.(type) {
	case NumberLiteral, StringLiteral, Identifier:
		return a == b
	case VariableRef:
		y := b.(VariableRef)
		return x.Name == y.Name && EqualExpr(x.Resolved, y.Resolved)
	case ArrayRef:
		y := b.(ArrayRef)
		return x.Name == y.Name && equalExprs(x.Elements, y.Elements)
	case ArrayDefinition:
		return equalExprs(x.Elements, b.(ArrayDefinition).Elements)
	case Equality:
		y := b.(Equality)
		return EqualExpr(x.Left, y.Left) && EqualExpr(x.Right, y.Right)
	}
	tracer().Errorf("cannot compare expressions of type %T", a)
	return false
}

func equalExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}
