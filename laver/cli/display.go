package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/laver"
	"github.com/npillmayer/laver/symtab"
	"github.com/npillmayer/laver/translator"
)

// programTable renders the nodes of a program, one row per node, with
// block bodies indented below the node owning them.
func programTable(title string, prog *translator.Program) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Node", "Statement"})
	prog.Walk(func(n laver.Node, depth int) bool {
		t.AppendRow(table.Row{n.Line(), n.NodeType(), strings.Repeat("  ", depth) + n.String()})
		return true
	})
	if len(prog.Imports) > 0 {
		t.AppendFooter(table.Row{"", "imports", strings.Join(prog.Imports, ", ")})
	}
	return t
}

// symbolTable renders the symbol tables: variables, arrays and functions,
// in order of definition.
func symbolTable(tables *symtab.Tables) table.Writer {
	t := table.NewWriter()
	t.SetTitle("Symbols")
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Name", "Value"})
	for _, name := range tables.VariableNames() {
		v, _ := tables.Variable(name)
		t.AppendRow(table.Row{"variable", name, strconv.Quote(v)})
	}
	for _, name := range tables.ArrayNames() {
		elems, _ := tables.Array(name)
		t.AppendRow(table.Row{"array", name, laver.ArrayDefinition{Elements: elems}})
	}
	for _, name := range tables.FunctionNames() {
		body, _ := tables.Function(name)
		t.AppendRow(table.Row{"function", name, fmt.Sprintf("%d statements", body.Len())})
	}
	return t
}
