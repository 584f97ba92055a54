package grammar

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/laver"
	"github.com/npillmayer/laver/symtab"
)

// BlockKind categorizes blocks opened or closed by a statement.
type BlockKind int8

// Kinds of blocks
const (
	NoBlock        BlockKind = iota
	StatementBlock           // if, else, for … end
	FunctionBlock            // newfunc … endfunc
)

// Effect is the outcome of recognizing a statement.
//
// Node is the node the statement produces, if any. A statement opening a block
// sets Opens to the block which captures subsequent statements, with Kind
// telling which kind of block has been opened. Statements closing a block set
// Closes, with Kind telling which kind of block they close.
type Effect struct {
	Node   laver.Node
	Opens  *laver.Block
	Closes bool
	Kind   BlockKind
}

// IsEmpty is a predicate: did a statement produce nothing (blank line)?
func (e Effect) IsEmpty() bool {
	return e.Node == nil
}

// --- Rules -----------------------------------------------------------------

// input is the context a builder operates in.
type input struct {
	line   int
	text   string
	tables *symtab.Tables
}

func (in input) pos() laver.Pos {
	return laver.Pos{SourceLine: in.line}
}

func (in input) syntaxError(reason string) error {
	return &laver.SyntaxError{Line: in.line, Text: in.text, Reason: reason}
}

type rule struct {
	name    string
	pattern *regexp.Regexp
	build   func(m []string, in input) (Effect, error)
}

// The order of rules is significant: first match wins.
var rules = []rule{
	{"print-literal", regexp.MustCompile(`^p: "(.+)"$`), printLiteral},
	{"variable-definition", regexp.MustCompile(`^var ([^ ]+) = "(.+)"$`), variableDefinition},
	{"array-definition", regexp.MustCompile(`^array ([^:]+): \[(.+)\]$`), arrayDefinition},
	{"variable-reference", regexp.MustCompile(`^i: &([^ ]+)$`), variableReference},
	{"conditional-if", regexp.MustCompile(`^if: &([^ ]+) == "(.+)" \{$`), conditionalIf},
	{"conditional-else", regexp.MustCompile(`^else \{$`), conditionalElse},
	{"conditional-elseif", regexp.MustCompile(`^elseif\b.*$`), noOp},
	{"loop-for", regexp.MustCompile(`^for: \{([^;]+);([^;]+);([^}]+)\} \{$`), loopFor},
	{"function-start", regexp.MustCompile(`^newfunc: ([^:{}]+) \{$`), functionStart},
	{"function-end", regexp.MustCompile(`^endfunc$`), functionEnd},
	{"function-call-noargs", regexp.MustCompile(`^func: ([^:{}]+) \{( *\})?$`), functionCall},
	{"block-close", regexp.MustCompile(`^end$`), blockClose},
	{"assignment", regexp.MustCompile(`^([^ ]+) = (.+)$`), assignment},
	{"call-noargs", regexp.MustCompile(`^([^ ]+)\(\)$`), callNoArgs},
	{"call-with-args", regexp.MustCompile(`^([^ ]+)\(([^)]+)\)$`), callWithArgs},
	{"import", regexp.MustCompile(`^import ([^ ]+)$`), importStatement},
}

// Rules returns the names of the statement rules in the order they are tried.
func Rules() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

// Recognize translates one line of source. line is the 1-based line number,
// used for error messages and node positions. Blank lines produce an empty
// effect.
//
// If no statement form matches, Recognize returns a *laver.SyntaxError
// carrying the line. A call of an undefined function with 'func:' results
// in a *laver.UndefinedFunctionError. In case of an error, no node is
// produced.
func Recognize(text string, line int, tables *symtab.Tables) (Effect, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Effect{}, nil
	}
	in := input{line: line, text: text, tables: tables}
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(text); m != nil {
			tracer().Debugf("line %d matches %s", line, r.name)
			return r.build(m, in)
		}
	}
	tracer().Errorf("line %d: no statement form matches %q", line, text)
	return Effect{}, in.syntaxError("")
}

// RuleFor returns the name of the first rule matching a line, or "".
// Symbol tables are not consulted or changed.
func RuleFor(text string) string {
	text = strings.TrimSpace(text)
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.name
		}
	}
	return ""
}

// --- Builders --------------------------------------------------------------

func printLiteral(m []string, in input) (Effect, error) {
	return Effect{Node: &laver.PrintStatement{Pos: in.pos(), Text: m[1]}}, nil
}

func variableDefinition(m []string, in input) (Effect, error) {
	name, value := m[1], m[2]
	in.tables.DefineVariable(name, value)
	return Effect{Node: &laver.Assignment{
		Pos:    in.pos(),
		Target: name,
		Value:  laver.StringLiteral{Value: value},
	}}, nil
}

func arrayDefinition(m []string, in input) (Effect, error) {
	name := strings.TrimSpace(m[1])
	elems, err := resolveList(m[2], in)
	if err != nil {
		return Effect{}, err
	}
	in.tables.DefineArray(name, elems)
	return Effect{Node: &laver.Assignment{
		Pos:    in.pos(),
		Target: name,
		Value:  laver.ArrayDefinition{Elements: elems},
	}}, nil
}

func variableReference(m []string, in input) (Effect, error) {
	return Effect{Node: &laver.VariableLookup{
		Pos: in.pos(),
		Ref: reference(m[1], in),
	}}, nil
}

func conditionalIf(m []string, in input) (Effect, error) {
	cond := laver.Equality{
		Left:  reference(m[1], in),
		Right: laver.StringLiteral{Value: m[2]},
	}
	node := &laver.ConditionalBlock{Pos: in.pos(), Cond: cond, Then: laver.NewBlock()}
	return Effect{Node: node, Opens: node.Then, Kind: StatementBlock}, nil
}

func conditionalElse(m []string, in input) (Effect, error) {
	node := &laver.ConditionalBlock{Pos: in.pos(), Then: laver.NewBlock()}
	return Effect{Node: node, Opens: node.Then, Kind: StatementBlock}, nil
}

func loopFor(m []string, in input) (Effect, error) {
	var bounds [3]int
	for i := range bounds {
		n, err := strconv.Atoi(strings.TrimSpace(m[i+1]))
		if err != nil {
			return Effect{}, in.syntaxError("loop range must be integers")
		}
		bounds[i] = n
	}
	if bounds[2] == 0 {
		return Effect{}, in.syntaxError("loop step must not be zero")
	}
	node := &laver.LoopBlock{
		Pos:   in.pos(),
		Start: bounds[0],
		Stop:  bounds[1],
		Step:  bounds[2],
		Body:  laver.NewBlock(),
	}
	return Effect{Node: node, Opens: node.Body, Kind: StatementBlock}, nil
}

func functionStart(m []string, in input) (Effect, error) {
	name := strings.TrimSpace(m[1])
	body, err := in.tables.StartFunction(name)
	if err != nil {
		return Effect{}, in.syntaxError(err.Error())
	}
	node := &laver.FunctionDef{Pos: in.pos(), Name: name, Body: body}
	return Effect{Node: node, Opens: body, Kind: FunctionBlock}, nil
}

func functionEnd(m []string, in input) (Effect, error) {
	in.tables.EndFunction()
	return Effect{Node: &laver.NoOp{Pos: in.pos()}, Closes: true, Kind: FunctionBlock}, nil
}

func functionCall(m []string, in input) (Effect, error) {
	name := strings.TrimSpace(m[1])
	if _, ok := in.tables.Function(name); !ok {
		tracer().P("func", name).Errorf("call of undefined function")
		return Effect{}, &laver.UndefinedFunctionError{Line: in.line, Name: name}
	}
	return Effect{Node: &laver.FunctionCall{Pos: in.pos(), Name: name, Args: []laver.Expr{}}}, nil
}

func blockClose(m []string, in input) (Effect, error) {
	return Effect{Node: &laver.NoOp{Pos: in.pos()}, Closes: true, Kind: StatementBlock}, nil
}

func assignment(m []string, in input) (Effect, error) {
	return Effect{Node: &laver.Assignment{
		Pos:    in.pos(),
		Target: m[1],
		Value:  Resolve(strings.TrimSpace(m[2]), in.tables),
	}}, nil
}

func callNoArgs(m []string, in input) (Effect, error) {
	return Effect{Node: &laver.FunctionCall{Pos: in.pos(), Name: m[1], Args: []laver.Expr{}}}, nil
}

func callWithArgs(m []string, in input) (Effect, error) {
	args, err := resolveList(m[2], in)
	if err != nil {
		return Effect{}, err
	}
	return Effect{Node: &laver.FunctionCall{Pos: in.pos(), Name: m[1], Args: args}}, nil
}

func importStatement(m []string, in input) (Effect, error) {
	return Effect{Node: &laver.ImportStatement{Pos: in.pos(), Module: m[1]}}, nil
}

func noOp(m []string, in input) (Effect, error) {
	return Effect{Node: &laver.NoOp{Pos: in.pos()}}, nil
}

// --- Helpers ---------------------------------------------------------------

func reference(name string, in input) laver.VariableRef {
	return laver.VariableRef{Name: name, Resolved: Resolve(name, in.tables)}
}

func resolveList(text string, in input) ([]laver.Expr, error) {
	items, err := SplitList(text)
	if err != nil {
		return nil, in.syntaxError(err.Error())
	}
	elems := make([]laver.Expr, len(items))
	for i, item := range items {
		elems[i] = Resolve(item, in.tables)
	}
	return elems, nil
}
