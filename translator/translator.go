package translator

import (
	"errors"
	"strings"

	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/npillmayer/laver"
	"github.com/npillmayer/laver/grammar"
	"github.com/npillmayer/laver/symtab"
)

// frame is an open block on the block stack.
type frame struct {
	node laver.Node        // node which opened the block
	body *laver.Block      // captures statements until the block is closed
	kind grammar.BlockKind // statement block or function body
}

// Translator is the state of one translation run: symbol tables, the
// top-level node sequence and the stack of blocks currently open.
type Translator struct {
	tables  *symtab.Tables
	root    *laver.Block
	open    *linkedliststack.Stack // of *frame
	line    int                    // lines consumed so far
	drained int                    // top-level nodes handed out by Drain
	norm    func(string) string    // applied to lines before recognition
}

// Option configures a Translator.
type Option func(*Translator)

// Normalize sets a function which rewrites every line before it is
// recognized. Syntax errors still report the line as given.
func Normalize(f func(string) string) Option {
	return func(t *Translator) {
		t.norm = f
	}
}

// New creates a translator with fresh symbol tables.
func New(opts ...Option) *Translator {
	t := &Translator{
		tables: symtab.New(),
		root:   laver.NewBlock(),
		open:   linkedliststack.New(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate translates a complete Laver source text into a program.
// Translation stops at the first line in error; there is no partial result.
func Translate(source string, opts ...Option) (*Program, error) {
	t := New(opts...)
	for _, line := range strings.Split(source, "\n") {
		if err := t.Line(line); err != nil {
			return nil, err
		}
	}
	return t.Program(), nil
}

// Tables returns the symbol tables of this translation run.
func (t *Translator) Tables() *symtab.Tables {
	return t.tables
}

// Line translates the next line of source. Blank lines are skipped, but
// counted.
func (t *Translator) Line(text string) error {
	t.line++
	line := text
	if t.norm != nil {
		line = t.norm(text)
	}
	eff, err := grammar.Recognize(line, t.line, t.tables)
	if err != nil {
		var serr *laver.SyntaxError
		if errors.As(err, &serr) {
			serr.Text = text
		}
		return err
	}
	if eff.IsEmpty() {
		return nil
	}
	if eff.Closes {
		t.close(eff.Kind)
		t.emit(eff.Node)
		return nil
	}
	t.emit(eff.Node)
	if eff.Opens != nil {
		tracer().Debugf("line %d opens %s", t.line, eff.Node.NodeType())
		t.open.Push(&frame{node: eff.Node, body: eff.Opens, kind: eff.Kind})
	}
	return nil
}

// Depth returns the number of blocks currently open.
func (t *Translator) Depth() int {
	return t.open.Size()
}

// Drain returns the top-level nodes completed since the last call of Drain.
// While a block is open, nothing is returned. An else-block cannot bind to
// an if-block which has already been drained.
func (t *Translator) Drain() []laver.Node {
	if t.Depth() > 0 {
		return nil
	}
	nodes := t.root.Nodes[t.drained:]
	t.drained = len(t.root.Nodes)
	return nodes
}

// Program closes all blocks still open and wraps the top-level nodes into a
// program.
func (t *Translator) Program() *Program {
	for !t.open.Empty() {
		top, _ := t.open.Pop()
		f := top.(*frame)
		tracer().Infof("%s opened in line %d not closed at end of input",
			f.node.NodeType(), f.node.Line())
	}
	t.tables.EndFunction()
	return Build(t.root.Nodes, t.tables)
}

// target is where nodes currently go: the body of the innermost open block,
// or the top level.
func (t *Translator) target() *laver.Block {
	if top, ok := t.open.Peek(); ok {
		return top.(*frame).body
	}
	return t.root
}

func (t *Translator) emit(node laver.Node) {
	target := t.target()
	if c, ok := node.(*laver.ConditionalBlock); ok && c.IsElse() {
		from := 0
		if target == t.root {
			from = t.drained
		}
		bindElse(target, from, c)
	}
	target.Append(node)
}

// bindElse connects an else-block to the if-block immediately preceding it.
// Closing no-ops between the two are skipped. Nodes before index from have
// already been handed out by Drain and are not considered.
func bindElse(target *laver.Block, from int, elseBlock *laver.ConditionalBlock) {
	for i := target.Len() - 1; i >= from; i-- {
		switch n := target.Nodes[i].(type) {
		case *laver.NoOp:
			continue
		case *laver.ConditionalBlock:
			if !n.IsElse() && n.Else == nil {
				n.Else = elseBlock.Then
				elseBlock.Bound = true
				tracer().Debugf("else in line %d bound to if in line %d", elseBlock.Line(), n.Line())
			}
		}
		break
	}
	if !elseBlock.Bound {
		tracer().Errorf("else in line %d does not follow an if-block", elseBlock.Line())
	}
}

// close closes blocks for 'end' and 'endfunc'. 'end' closes the innermost
// statement block, but never crosses a function body. 'endfunc' closes the
// function body together with any statement blocks left open within it.
// Closing with nothing open is not an error.
func (t *Translator) close(kind grammar.BlockKind) {
	switch kind {
	case grammar.StatementBlock:
		if top, ok := t.open.Peek(); ok && top.(*frame).kind == grammar.StatementBlock {
			t.open.Pop()
			return
		}
		tracer().Debugf("line %d: end without open block", t.line)
	case grammar.FunctionBlock:
		if !t.inFunction() {
			tracer().Debugf("line %d: endfunc without open function", t.line)
			return
		}
		for {
			top, _ := t.open.Pop()
			f := top.(*frame)
			if f.kind == grammar.FunctionBlock {
				return
			}
			tracer().Infof("%s opened in line %d closed by endfunc in line %d",
				f.node.NodeType(), f.node.Line(), t.line)
		}
	}
}

func (t *Translator) inFunction() bool {
	for _, v := range t.open.Values() {
		if v.(*frame).kind == grammar.FunctionBlock {
			return true
		}
	}
	return false
}
