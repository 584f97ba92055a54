package vm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/laver"
	"github.com/npillmayer/laver/translator"
	lua "github.com/yuin/gopher-lua"
)

// ErrNoProgramToExecute flags an empty input program
var ErrNoProgramToExecute error = errors.New("no program to execute")

// VM runs Laver programs in an embedded Lua interpreter. Global state
// persists between runs, thus a VM may run a program in pieces, as an
// interactive session does.
//
// A VM is not safe for concurrent use.
type VM struct {
	state   *lua.LState
	out     io.Writer
	modules map[string]lua.LGFunction
}

// Option configures a VM.
type Option func(*VM)

// Output sets the writer 'print' writes to. Default is os.Stdout.
func Output(w io.Writer) Option {
	return func(vm *VM) {
		vm.out = w
	}
}

// Module makes a Lua module available for Laver's 'import'.
func Module(name string, loader lua.LGFunction) Option {
	return func(vm *VM) {
		vm.modules[name] = loader
	}
}

// New creates a VM with a fresh Lua state.
func New(opts ...Option) *VM {
	vm := &VM{
		out:     os.Stdout,
		modules: make(map[string]lua.LGFunction),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.state = lua.NewState()
	vm.state.SetGlobal("print", vm.state.NewFunction(vm.print))
	for name, loader := range vm.modules {
		tracer().P("module", name).Debugf("preloading module")
		vm.state.PreloadModule(name, loader)
	}
	strict := vm.state.NewTable()
	vm.state.SetField(strict, "__index", vm.state.NewFunction(undefinedName))
	vm.state.SetMetatable(vm.state.G.Global, strict)
	return vm
}

// Close releases the Lua state.
func (vm *VM) Close() {
	vm.state.Close()
}

// Run executes a program.
func (vm *VM) Run(ctx context.Context, prog *translator.Program) error {
	if prog.IsEmpty() {
		tracer().Errorf("empty program?")
		return ErrNoProgramToExecute
	}
	return vm.RunNodes(ctx, prog.Nodes)
}

// RunNodes executes a sequence of top-level nodes.
func (vm *VM) RunNodes(ctx context.Context, nodes []laver.Node) error {
	chunk, err := Lower(nodes)
	if err != nil {
		return err
	}
	return vm.exec(ctx, chunk)
}

func (vm *VM) exec(ctx context.Context, chunk string) error {
	vm.state.SetContext(ctx)
	defer vm.state.RemoveContext()
	err := vm.state.DoString(chunk)
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*lua.ApiError); ok {
		if ud, ok := apiErr.Object.(*lua.LUserData); ok {
			if nameErr, ok := ud.Value.(*laver.UndefinedNameError); ok {
				tracer().Errorf("%v", nameErr)
				return nameErr
			}
		}
	}
	if ctx.Err() != nil {
		tracer().Infof("program cancelled")
		return ctx.Err()
	}
	tracer().Errorf("runtime error: %v", err)
	return fmt.Errorf("runtime error: %w", err)
}

// Global returns the value of a global name, formatted for display. The
// second return value is false if the name is not set.
func (vm *VM) Global(name string) (string, bool) {
	v := vm.state.G.Global.RawGetString(name)
	if v == lua.LNil {
		return "", false
	}
	return format(v, false), true
}

// undefinedName is the __index metamethod of the globals table.
func undefinedName(L *lua.LState) int {
	name := L.CheckString(2)
	ud := L.NewUserData()
	ud.Value = &laver.UndefinedNameError{Name: name}
	L.Error(ud, 1)
	return 0
}

// print writes its arguments separated by blanks, terminated by a newline.
func (vm *VM) print(L *lua.LState) int {
	n := L.GetTop()
	s := make([]string, n)
	for i := 1; i <= n; i++ {
		s[i-1] = format(L.Get(i), false)
	}
	io.WriteString(vm.out, strings.Join(s, " ")+"\n")
	return 0
}

// format renders a Lua value the way Laver prints values: strings plain on
// the top level and single-quoted inside arrays, integral numbers without
// a fraction, tables as arrays.
func format(v lua.LValue, nested bool) string {
	switch x := v.(type) {
	case *lua.LNilType:
		return "None"
	case lua.LBool:
		if x {
			return "True"
		}
		return "False"
	case lua.LNumber:
		f := float64(x)
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case lua.LString:
		if nested {
			return "'" + string(x) + "'"
		}
		return string(x)
	case *lua.LTable:
		n := x.Len()
		s := make([]string, n)
		for i := 1; i <= n; i++ {
			s[i-1] = format(x.RawGetInt(i), true)
		}
		return "[" + strings.Join(s, ", ") + "]"
	case *lua.LFunction:
		return "<function>"
	}
	return v.String()
}
