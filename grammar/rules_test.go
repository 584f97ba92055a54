package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/laver"
	"github.com/npillmayer/laver/symtab"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRuleOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	expect := []string{
		"print-literal", "variable-definition", "array-definition",
		"variable-reference", "conditional-if", "conditional-else",
		"conditional-elseif", "loop-for", "function-start", "function-end",
		"function-call-noargs", "block-close", "assignment", "call-noargs",
		"call-with-args", "import",
	}
	names := Rules()
	if len(names) != len(expect) {
		t.Fatalf("expected %d rules, have %d", len(expect), len(names))
	}
	for i, name := range expect {
		if names[i] != name {
			t.Errorf("expected rule #%d to be %s, is %s", i+1, name, names[i])
		}
	}
}

func TestRuleFor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	for i, test := range []struct {
		line string
		rule string
	}{
		{`p: "Hello World"`, "print-literal"},
		{`var x = "5"`, "variable-definition"},
		{`x = 5`, "assignment"},
		{`array a: [1, 2, x]`, "array-definition"},
		{`i: &x`, "variable-reference"},
		{`if: &x == "5" {`, "conditional-if"},
		{`else {`, "conditional-else"},
		{`elseif`, "conditional-elseif"},
		{`elseif: &x == "6" {`, "conditional-elseif"},
		{`for: {0;10;2} {`, "loop-for"},
		{`newfunc: greet {`, "function-start"},
		{`endfunc`, "function-end"},
		{`func: greet {`, "function-call-noargs"},
		{`func: greet { }`, "function-call-noargs"},
		{`end`, "block-close"},
		{`endless = 1`, "assignment"},
		{`greet()`, "call-noargs"},
		{`print(a, b)`, "call-with-args"},
		{`import math`, "import"},
		{`$$$garbage$$$`, ""},
		{`   end   `, "block-close"},
	} {
		if r := RuleFor(test.line); r != test.rule {
			t.Errorf("test %d: expected %q to match %q, matched %q", i, test.line, test.rule, r)
		}
	}
}

func TestVariableDefinition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	eff, err := Recognize(`var x = "5"`, 1, tables)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := eff.Node.(*laver.Assignment)
	if !ok {
		t.Fatalf("expected an assignment, have %T", eff.Node)
	}
	if a.Target != "x" || !laver.EqualExpr(a.Value, laver.StringLiteral{Value: "5"}) {
		t.Errorf("expected x = \"5\", have %s", a)
	}
	if v, ok := tables.Variable("x"); !ok || v != "5" {
		t.Errorf("expected variable table to hold x = \"5\", has %q", v)
	}
}

func TestGenericAssignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	eff, err := Recognize(`x = 5`, 1, tables)
	if err != nil {
		t.Fatal(err)
	}
	a := eff.Node.(*laver.Assignment)
	if !laver.EqualExpr(a.Value, laver.NumberLiteral{Value: 5}) {
		t.Errorf("expected x = 5, have %s", a)
	}
	if _, ok := tables.Variable("x"); ok {
		t.Error("expected generic assignment to leave the variable table alone")
	}
}

func TestVariableReferenceSnapshot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	mustRecognize(t, `var name = "V"`, tables)
	eff := mustRecognize(t, `i: &name`, tables)
	lookup, ok := eff.Node.(*laver.VariableLookup)
	if !ok {
		t.Fatalf("expected a variable lookup, have %T", eff.Node)
	}
	if !laver.EqualExpr(lookup.Ref.Resolved, laver.StringLiteral{Value: "V"}) {
		t.Errorf("expected reference to resolve to \"V\", is %v", lookup.Ref.Resolved)
	}
}

func TestArrayResolvedAtDefinition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	mustRecognize(t, `var x = "3"`, tables)
	mustRecognize(t, `array A: [1, 2, x]`, tables)
	mustRecognize(t, `var x = "4"`, tables)
	expect := []laver.Expr{
		laver.NumberLiteral{Value: 1},
		laver.NumberLiteral{Value: 2},
		laver.StringLiteral{Value: "3"},
	}
	stored, ok := tables.Array("A")
	if !ok {
		t.Fatal("expected array A to be defined")
	}
	if !laver.EqualExpr(laver.ArrayDefinition{Elements: stored}, laver.ArrayDefinition{Elements: expect}) {
		t.Errorf("expected A = %v, is %v", expect, stored)
	}
}

func TestArrayOfArray(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	mustRecognize(t, `array a: [1, 2]`, tables)
	eff := mustRecognize(t, `array b: [a, "x, y", free]`, tables)
	def := eff.Node.(*laver.Assignment).Value.(laver.ArrayDefinition)
	if len(def.Elements) != 3 {
		t.Fatalf("expected 3 elements, have %v", def.Elements)
	}
	if ref, ok := def.Elements[0].(laver.ArrayRef); !ok || len(ref.Elements) != 2 {
		t.Errorf("expected first element to be array a, is %v", def.Elements[0])
	}
	if !laver.EqualExpr(def.Elements[1], laver.Identifier{Name: `"x, y"`}) {
		t.Errorf("expected quoted element to stay intact, is %v", def.Elements[1])
	}
	if !laver.EqualExpr(def.Elements[2], laver.Identifier{Name: "free"}) {
		t.Errorf("expected free name, is %v", def.Elements[2])
	}
}

func TestConditionalOpensBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	eff := mustRecognize(t, `if: &x == "yes" {`, tables)
	c, ok := eff.Node.(*laver.ConditionalBlock)
	if !ok {
		t.Fatalf("expected a conditional, have %T", eff.Node)
	}
	if eff.Opens != c.Then || eff.Kind != StatementBlock {
		t.Error("expected conditional to open its then-block")
	}
	eq := c.Cond.(laver.Equality)
	if eq.Left.(laver.VariableRef).Name != "x" || !laver.EqualExpr(eq.Right, laver.StringLiteral{Value: "yes"}) {
		t.Errorf("unexpected condition %s", eq)
	}
	eff = mustRecognize(t, `else {`, tables)
	if !eff.Node.(*laver.ConditionalBlock).IsElse() {
		t.Error("expected else to produce an else-block")
	}
	eff = mustRecognize(t, `end`, tables)
	if !eff.Closes || eff.Kind != StatementBlock {
		t.Error("expected end to close a statement block")
	}
}

func TestLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	eff := mustRecognize(t, `for: { 10; -2 ;-3} {`, tables)
	loop := eff.Node.(*laver.LoopBlock)
	if loop.Start != 10 || loop.Stop != -2 || loop.Step != -3 {
		t.Errorf("unexpected loop range %s", loop)
	}
	if loop.Iterations() != 4 {
		t.Errorf("expected 4 iterations, have %d", loop.Iterations())
	}
	for _, line := range []string{`for: {a;10;1} {`, `for: {0;10;0} {`} {
		_, err := Recognize(line, 7, tables)
		var serr *laver.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("expected syntax error for %q, have %v", line, err)
		}
	}
}

func TestFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	eff := mustRecognize(t, `newfunc: greet {`, tables)
	def := eff.Node.(*laver.FunctionDef)
	body, _ := tables.Function("greet")
	if def.Body != body || eff.Opens != body || eff.Kind != FunctionBlock {
		t.Error("expected function definition to share its body with the function table")
	}
	if _, err := Recognize(`newfunc: other {`, 2, tables); err == nil {
		t.Error("expected nested function definition to fail")
	}
	eff = mustRecognize(t, `endfunc`, tables)
	if !eff.Closes || eff.Kind != FunctionBlock {
		t.Error("expected endfunc to close a function block")
	}
	eff = mustRecognize(t, `func: greet { }`, tables)
	call := eff.Node.(*laver.FunctionCall)
	if call.Name != "greet" || len(call.Args) != 0 {
		t.Errorf("unexpected call %s", call)
	}
}

func TestUndefinedFunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	eff, err := Recognize(`func: nowhere { }`, 3, tables)
	var uerr *laver.UndefinedFunctionError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected undefined function error, have %v", err)
	}
	if uerr.Name != "nowhere" || uerr.Line != 3 {
		t.Errorf("unexpected error details: %v", uerr)
	}
	if !eff.IsEmpty() {
		t.Error("expected no node for failed call")
	}
}

func TestCalls(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	mustRecognize(t, `var s = "str"`, tables)
	eff := mustRecognize(t, `print(1, s, t)`, tables)
	call := eff.Node.(*laver.FunctionCall)
	expect := []laver.Expr{
		laver.NumberLiteral{Value: 1},
		laver.StringLiteral{Value: "str"},
		laver.Identifier{Name: "t"},
	}
	if !laver.EqualExpr(laver.ArrayDefinition{Elements: call.Args}, laver.ArrayDefinition{Elements: expect}) {
		t.Errorf("expected args %v, have %v", expect, call.Args)
	}
	eff = mustRecognize(t, `undefined()`, tables)
	if len(eff.Node.(*laver.FunctionCall).Args) != 0 {
		t.Error("expected call without arguments")
	}
	if _, err := Recognize(`f(1,,2)`, 1, tables); err == nil {
		t.Error("expected empty argument to be rejected")
	}
}

func TestSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	tables := symtab.New()
	eff, err := Recognize("  $$$garbage$$$ ", 42, tables)
	var serr *laver.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error, have %v", err)
	}
	if serr.Text != "$$$garbage$$$" || serr.Line != 42 {
		t.Errorf("unexpected error details: %v", serr)
	}
	if !strings.Contains(err.Error(), "$$$garbage$$$") {
		t.Errorf("expected error message to contain the line, is %q", err.Error())
	}
	if !eff.IsEmpty() {
		t.Error("expected no node for syntax error")
	}
}

func TestBlankLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	eff, err := Recognize(" \t ", 1, symtab.New())
	if err != nil || !eff.IsEmpty() {
		t.Errorf("expected blank line to produce nothing, have %v/%v", eff.Node, err)
	}
}

// --- Helpers ---------------------------------------------------------------

func mustRecognize(t *testing.T, line string, tables *symtab.Tables) Effect {
	t.Helper()
	eff, err := Recognize(line, 1, tables)
	if err != nil {
		t.Fatalf("cannot recognize %q: %v", line, err)
	}
	return eff
}
