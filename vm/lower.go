package vm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/laver"
)

// ErrDanglingElse flags an else-block which does not follow an if-block.
var ErrDanglingElse = errors.New("else without preceding if")

// ErrInvalidName flags a name which cannot be used as a Lua name.
var ErrInvalidName = errors.New("not a valid name")

// LoweringError is an error lowering a node to Lua.
type LoweringError struct {
	Line int
	Node string
	Err  error
}

func (e *LoweringError) Error() string {
	return fmt.Sprintf("line %d: cannot lower '%s': %v", e.Line, e.Node, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoweringError) Unwrap() error {
	return e.Err
}

// Lower translates a sequence of nodes into a Lua chunk.
func Lower(nodes []laver.Node) (string, error) {
	l := &lowerer{}
	if err := l.block(nodes); err != nil {
		return "", err
	}
	chunk := l.out.String()
	tracer().Debugf("lowered %d nodes to Lua:\n%s", len(nodes), chunk)
	return chunk, nil
}

type lowerer struct {
	out    strings.Builder
	indent int
}

func (l *lowerer) linef(format string, args ...interface{}) {
	l.out.WriteString(strings.Repeat("  ", l.indent))
	fmt.Fprintf(&l.out, format, args...)
	l.out.WriteByte('\n')
}

func (l *lowerer) block(nodes []laver.Node) error {
	for _, n := range nodes {
		if err := l.statement(n); err != nil {
			return err
		}
	}
	return nil
}

func (l *lowerer) body(b *laver.Block) error {
	if b == nil {
		return nil
	}
	l.indent++
	defer func() { l.indent-- }()
	return l.block(b.Nodes)
}

func (l *lowerer) statement(n laver.Node) (err error) {
	fail := func(e error) error {
		return &LoweringError{Line: n.Line(), Node: n.String(), Err: e}
	}
	switch x := n.(type) {
	case *laver.PrintStatement:
		l.linef("print(%s)", quote(x.Text))
	case *laver.Assignment:
		var v string
		if v, err = expr(x.Value); err != nil {
			return fail(err)
		}
		if !isName(x.Target) {
			return fail(ErrInvalidName)
		}
		l.linef("%s = %s", x.Target, v)
	case *laver.VariableLookup:
		if !isName(x.Ref.Name) {
			return fail(ErrInvalidName)
		}
		l.linef("local _ = %s", x.Ref.Name)
	case *laver.ConditionalBlock:
		if x.IsElse() {
			if !x.Bound {
				return fail(ErrDanglingElse)
			}
			return nil // lowered together with its if-block
		}
		var cond string
		if cond, err = expr(x.Cond); err != nil {
			return fail(err)
		}
		l.linef("if %s then", cond)
		if err = l.body(x.Then); err != nil {
			return err
		}
		if x.Else != nil {
			l.linef("else")
			if err = l.body(x.Else); err != nil {
				return err
			}
		}
		l.linef("end")
	case *laver.LoopBlock:
		first, last, step := 0, -1, 1 // empty range
		if cnt := x.Iterations(); cnt > 0 {
			first, last, step = x.Start, x.Start+(cnt-1)*x.Step, x.Step
		}
		l.linef("for _ = %d, %d, %d do", first, last, step)
		if err = l.body(x.Body); err != nil {
			return err
		}
		l.linef("end")
	case *laver.FunctionDef:
		if !isName(x.Name) {
			return fail(ErrInvalidName)
		}
		l.linef("function %s()", x.Name)
		if err = l.body(x.Body); err != nil {
			return err
		}
		l.linef("end")
	case *laver.FunctionCall:
		if !isName(x.Name) {
			return fail(ErrInvalidName)
		}
		var args string
		if args, err = exprList(x.Args); err != nil {
			return fail(err)
		}
		l.linef("%s(%s)", x.Name, args)
	case *laver.ImportStatement:
		if !isName(x.Module) {
			return fail(ErrInvalidName)
		}
		l.linef("%s = require(%s)", x.Module, quote(x.Module))
	case *laver.NoOp:
		// nothing to do
	default:
		tracer().Errorf("cannot lower node of type %T", n)
		return fail(fmt.Errorf("unknown node type %T", n))
	}
	return nil
}

func expr(e laver.Expr) (string, error) {
	switch x := e.(type) {
	case laver.NumberLiteral:
		return strconv.Itoa(x.Value), nil
	case laver.StringLiteral:
		return quote(x.Value), nil
	case laver.VariableRef:
		if !isName(x.Name) {
			return "", fmt.Errorf("%w: %q", ErrInvalidName, x.Name)
		}
		return x.Name, nil
	case laver.Identifier:
		if !isName(x.Name) {
			return "", fmt.Errorf("%w: %q", ErrInvalidName, x.Name)
		}
		return x.Name, nil
	case laver.ArrayRef:
		return table(x.Elements)
	case laver.ArrayDefinition:
		return table(x.Elements)
	case laver.Equality:
		left, err := expr(x.Left)
		if err != nil {
			return "", err
		}
		right, err := expr(x.Right)
		if err != nil {
			return "", err
		}
		return left + " == " + right, nil
	}
	return "", fmt.Errorf("unknown expression type %T", e)
}

func exprList(elems []laver.Expr) (string, error) {
	s := make([]string, len(elems))
	for i, e := range elems {
		var err error
		if s[i], err = expr(e); err != nil {
			return "", err
		}
	}
	return strings.Join(s, ", "), nil
}

func table(elems []laver.Expr) (string, error) {
	list, err := exprList(elems)
	if err != nil {
		return "", err
	}
	return "{" + list + "}", nil
}

var nameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var luaKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

func isName(s string) bool {
	return nameRegexp.MatchString(s) && !luaKeywords[s]
}

// quote returns s as a Lua string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, "\\%03d", c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
