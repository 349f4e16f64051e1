package interp

import (
	"fmt"

	"github.com/loxlang/glox/internal/ast"
)

// returnSignal is the dedicated non-error control-flow value used to
// unwind a function call on `return`. It is never surfaced to Lox code
// and is caught only by Function.Call, matching spec.md §7's directive
// not to conflate return with error.
type returnSignal struct {
	value Value
}

func (returnSignal) Error() string { return "return outside of a function" }

// Function is a user-defined Lox function or method: the declaring node,
// the environment captured at declaration time (its closure), and
// whether it is a class initializer (whose implicit/explicit return
// always yields the bound instance).
type Function struct {
	decl      *ast.FunctionStmt
	closure   *Environment
	isInit    bool
}

func NewFunction(decl *ast.FunctionStmt, closure *Environment, isInit bool) *Function {
	return &Function{decl: decl, closure: closure, isInit: isInit}
}

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme) }

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.decl.Body, env)
	if ret, ok := err.(returnSignal); ok {
		if f.isInit {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.isInit {
		return f.closure.GetAt(0, "this"), nil
	}
	return Nil{}, nil
}

// bind returns a copy of f whose closure additionally defines "this" as
// instance — the mechanism by which `obj.method` yields a callable
// already bound to its receiver.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.decl, env, f.isInit)
}

// NativeFunction wraps a Go function as a callable Lox value, e.g. the
// single `clock()` builtin spec.md §6 requires.
type NativeFunction struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) String() string { return "<native fn>" }
func (n *NativeFunction) Arity() int     { return n.arity }
func (n *NativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return n.fn(in, args)
}
