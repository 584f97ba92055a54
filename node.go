package laver

import (
	"fmt"
	"strings"
)

// NodeType represents the kind of an IR node.
type NodeType int8

// Node kinds of the intermediate representation.
const (
	NoNode NodeType = iota
	PrintNode
	AssignmentNode
	LookupNode
	ConditionalNode
	LoopNode
	FunctionDefNode
	FunctionCallNode
	ImportNode
	NoOpNode
)

func (t NodeType) String() string {
	switch t {
	case PrintNode:
		return "print"
	case AssignmentNode:
		return "assignment"
	case LookupNode:
		return "lookup"
	case ConditionalNode:
		return "conditional"
	case LoopNode:
		return "loop"
	case FunctionDefNode:
		return "function-def"
	case FunctionCallNode:
		return "function-call"
	case ImportNode:
		return "import"
	case NoOpNode:
		return "no-op"
	}
	return "<undefined>"
}

// --- Node ------------------------------------------------------------------

// Node is one unit of the intermediate representation produced by
// translation.
type Node interface {
	NodeType() NodeType
	Line() int // 1-based source line the node stems from, 0 if unknown
	String() string
}

// Pos is the source position of a node. It is embedded into every node type.
type Pos struct {
	SourceLine int
}

// Line returns the 1-based source line.
func (p Pos) Line() int { return p.SourceLine }

// Block is a sequence of nodes. Blocks are shared by pointer: a function
// definition and the function table hold the same block.
type Block struct {
	Nodes []Node
}

// NewBlock creates an empty block.
func NewBlock() *Block {
	return &Block{}
}

// Append adds a node at the end of a block.
func (b *Block) Append(n Node) {
	b.Nodes = append(b.Nodes, n)
}

// Len returns the number of nodes in a block. A nil block is empty.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Nodes)
}

// Last returns the last node of a block, or nil.
func (b *Block) Last() Node {
	if b.Len() == 0 {
		return nil
	}
	return b.Nodes[len(b.Nodes)-1]
}

// PrintStatement prints a literal text.
type PrintStatement struct {
	Pos
	Text string
}

// NodeType returns PrintNode.
func (p *PrintStatement) NodeType() NodeType { return PrintNode }

func (p *PrintStatement) String() string { return fmt.Sprintf("print %q", p.Text) }

// Assignment assigns a value to a name.
type Assignment struct {
	Pos
	Target string
	Value  Expr
}

// NodeType returns AssignmentNode.
func (a *Assignment) NodeType() NodeType { return AssignmentNode }

func (a *Assignment) String() string { return fmt.Sprintf("%s = %s", a.Target, a.Value) }

// VariableLookup is a bare variable reference in statement position.
type VariableLookup struct {
	Pos
	Ref VariableRef
}

// NodeType returns LookupNode.
func (v *VariableLookup) NodeType() NodeType { return LookupNode }

func (v *VariableLookup) String() string { return "lookup " + v.Ref.String() }

// ConditionalBlock is an if-block, or an else-block if Cond is nil.
//
// The translator binds an else-block to an immediately preceding
// if-block: the if-block's Else then is the else-block's Then, and the
// else-block is flagged as Bound.
type ConditionalBlock struct {
	Pos
	Cond  Expr
	Then  *Block
	Else  *Block
	Bound bool
}

// NodeType returns ConditionalNode.
func (c *ConditionalBlock) NodeType() NodeType { return ConditionalNode }

// IsElse is a predicate: is this the opening of an else-block?
func (c *ConditionalBlock) IsElse() bool { return c.Cond == nil }

func (c *ConditionalBlock) String() string {
	if c.IsElse() {
		return fmt.Sprintf("else {%d}", c.Then.Len())
	}
	return fmt.Sprintf("if %s {%d} else {%d}", c.Cond, c.Then.Len(), c.Else.Len())
}

// LoopBlock is a counted loop over the half-open range [Start, Stop) with
// increment Step.
type LoopBlock struct {
	Pos
	Start, Stop, Step int
	Body              *Block
}

// NodeType returns LoopNode.
func (l *LoopBlock) NodeType() NodeType { return LoopNode }

func (l *LoopBlock) String() string {
	return fmt.Sprintf("for {%d;%d;%d} {%d}", l.Start, l.Stop, l.Step, l.Body.Len())
}

// Iterations returns the number of times the loop body is run.
func (l *LoopBlock) Iterations() int {
	switch {
	case l.Step > 0 && l.Start < l.Stop:
		return (l.Stop - l.Start + l.Step - 1) / l.Step
	case l.Step < 0 && l.Start > l.Stop:
		return (l.Start - l.Stop - l.Step - 1) / -l.Step
	}
	return 0
}

// FunctionDef defines a parameterless function.
type FunctionDef struct {
	Pos
	Name string
	Body *Block
}

// NodeType returns FunctionDefNode.
func (f *FunctionDef) NodeType() NodeType { return FunctionDefNode }

func (f *FunctionDef) String() string { return fmt.Sprintf("newfunc %s {%d}", f.Name, f.Body.Len()) }

// FunctionCall calls a function by name.
type FunctionCall struct {
	Pos
	Name string
	Args []Expr
}

// NodeType returns FunctionCallNode.
func (f *FunctionCall) NodeType() NodeType { return FunctionCallNode }

func (f *FunctionCall) String() string {
	s := make([]string, len(f.Args))
	for i, a := range f.Args {
		s[i] = a.String()
	}
	return f.Name + "(" + strings.Join(s, ", ") + ")"
}

// ImportStatement declares an import of a module.
type ImportStatement struct {
	Pos
	Module string
}

// NodeType returns ImportNode.
func (i *ImportStatement) NodeType() NodeType { return ImportNode }

func (i *ImportStatement) String() string { return "import " + i.Module }

// NoOp does nothing.
type NoOp struct {
	Pos
}

// NodeType returns NoOpNode.
func (n *NoOp) NodeType() NodeType { return NoOpNode }

func (n *NoOp) String() string { return "pass" }

var _ Node = &PrintStatement{}
var _ Node = &Assignment{}
var _ Node = &VariableLookup{}
var _ Node = &ConditionalBlock{}
var _ Node = &LoopBlock{}
var _ Node = &FunctionDef{}
var _ Node = &FunctionCall{}
var _ Node = &ImportStatement{}
var _ Node = &NoOp{}
