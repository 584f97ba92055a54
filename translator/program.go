package translator

import (
	"github.com/npillmayer/laver"
	"github.com/npillmayer/laver/symtab"
)

// Program is a translated Laver program, ready to be handed to an executor.
type Program struct {
	Nodes     []laver.Node   // top-level statements in source order
	Functions []string       // names of defined functions, in definition order
	Imports   []string       // modules imported anywhere in the program
	Tables    *symtab.Tables // symbol tables as left by translation
}

// Build wraps a sequence of top-level nodes into a program. It performs
// no checks.
func Build(nodes []laver.Node, tables *symtab.Tables) *Program {
	prog := &Program{
		Nodes:  nodes,
		Tables: tables,
	}
	if tables != nil {
		prog.Functions = tables.FunctionNames()
	}
	prog.Walk(func(n laver.Node, depth int) bool {
		if imp, ok := n.(*laver.ImportStatement); ok {
			prog.Imports = append(prog.Imports, imp.Module)
		}
		return true
	})
	tracer().Debugf("built program with %d top-level statements", len(nodes))
	return prog
}

// IsEmpty is a predicate: does the program have no statements at all?
func (prog *Program) IsEmpty() bool {
	return prog == nil || len(prog.Nodes) == 0
}

// Walk calls f for every node of the program in source order, depth-first.
// depth is 0 for top-level nodes. If f returns false, the children of
// a node are skipped.
//
// Bodies of bound else-blocks are visited as children of the else-block, not
// a second time as the else-branch of their if-block.
func (prog *Program) Walk(f func(n laver.Node, depth int) bool) {
	walk(prog.Nodes, 0, f)
}

func walk(nodes []laver.Node, depth int, f func(laver.Node, int) bool) {
	for _, n := range nodes {
		if !f(n, depth) {
			continue
		}
		for _, b := range Children(n) {
			walk(b.Nodes, depth+1, f)
		}
	}
}

// Children returns the blocks owned by a node.
func Children(n laver.Node) []*laver.Block {
	switch x := n.(type) {
	case *laver.ConditionalBlock:
		return []*laver.Block{x.Then}
	case *laver.LoopBlock:
		return []*laver.Block{x.Body}
	case *laver.FunctionDef:
		return []*laver.Block{x.Body}
	}
	return nil
}
