package symtab

import (
	"errors"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/laver"
)

// ErrNestedFunction flags the start of a function definition while another
// function is still being defined.
var ErrNestedFunction = errors.New("nested function definition")

// Tables holds the variable, array and function tables of one translation
// run, together with the cursor for the function currently being defined.
//
// Tables are not safe for concurrent use.
type Tables struct {
	variables *linkedhashmap.Map // name -> string
	arrays    *linkedhashmap.Map // name -> []laver.Expr
	functions *linkedhashmap.Map // name -> *laver.Block
	current   string             // function being defined
	defining  bool               // is current valid?
}

// New creates a fresh and empty set of tables.
func New() *Tables {
	return &Tables{
		variables: linkedhashmap.New(),
		arrays:    linkedhashmap.New(),
		functions: linkedhashmap.New(),
	}
}

// --- Variables -------------------------------------------------------------

// DefineVariable sets the value of a variable, creating it if necessary.
func (t *Tables) DefineVariable(name, value string) {
	tracer().P("var", name).Debugf("define variable = %q", value)
	t.variables.Put(name, value)
}

// Variable returns the current value of a variable.
func (t *Tables) Variable(name string) (string, bool) {
	v, ok := t.variables.Get(name)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// VariableNames returns the names of all variables in definition order.
func (t *Tables) VariableNames() []string {
	return keys(t.variables)
}

// --- Arrays ----------------------------------------------------------------

// DefineArray stores the elements of an array. The table keeps its own copy
// of elems.
func (t *Tables) DefineArray(name string, elems []laver.Expr) {
	tracer().P("array", name).Debugf("define array with %d elements", len(elems))
	t.arrays.Put(name, laver.CopyExprs(elems))
}

// Array returns a copy of the elements of an array.
func (t *Tables) Array(name string) ([]laver.Expr, bool) {
	a, ok := t.arrays.Get(name)
	if !ok {
		return nil, false
	}
	return laver.CopyExprs(a.([]laver.Expr)), true
}

// ArrayNames returns the names of all arrays in definition order.
func (t *Tables) ArrayNames() []string {
	return keys(t.arrays)
}

// --- Functions -------------------------------------------------------------

// StartFunction enters a function into the function table and makes it the
// current function. The function body is an empty block, which is
// returned. A function defined earlier with the same name is replaced.
//
// If another function is current, StartFunction returns ErrNestedFunction.
func (t *Tables) StartFunction(name string) (*laver.Block, error) {
	if t.defining {
		tracer().P("func", name).Errorf("function %s is still open", t.current)
		return nil, ErrNestedFunction
	}
	body := laver.NewBlock()
	t.functions.Put(name, body)
	t.current, t.defining = name, true
	tracer().P("func", name).Debugf("start function definition")
	return body, nil
}

// EndFunction clears the current function. It returns the name of the
// function which has been current, if any.
func (t *Tables) EndFunction() (string, bool) {
	name, was := t.current, t.defining
	t.current, t.defining = "", false
	if was {
		tracer().P("func", name).Debugf("end function definition")
	}
	return name, was
}

// CurrentFunction returns the name of the function currently being defined.
func (t *Tables) CurrentFunction() (string, bool) {
	return t.current, t.defining
}

// Function returns the body of a function.
func (t *Tables) Function(name string) (*laver.Block, bool) {
	f, ok := t.functions.Get(name)
	if !ok {
		return nil, false
	}
	return f.(*laver.Block), true
}

// FunctionNames returns the names of all functions in definition order.
func (t *Tables) FunctionNames() []string {
	return keys(t.functions)
}

func keys(m *linkedhashmap.Map) []string {
	names := make([]string, 0, m.Size())
	m.Each(func(k, _ interface{}) {
		names = append(names, k.(string))
	})
	return names
}
