// Package interp executes a resolved Lox statement tree: it owns the
// global environment, the environment chain created for each block and
// call, and the runtime value model (numbers, strings, functions,
// classes, instances).
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/loxlang/glox/internal/ast"
	"github.com/loxlang/glox/internal/diag"
	"github.com/loxlang/glox/internal/resolver"
	"github.com/loxlang/glox/internal/token"
)

// Interpreter executes statements against an environment chain, using a
// resolver.Bindings side-table to resolve local variable/assignment
// expressions to a scope distance instead of a name search.
type Interpreter struct {
	globals  *Environment
	env      *Environment
	bindings resolver.Bindings
	stdout   io.Writer
}

// New returns an Interpreter that prints `print` output to stdout and
// has clock() bound in its global environment.
func New(stdout io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{globals: globals, env: globals, stdout: stdout}
	globals.Define("clock", &NativeFunction{
		name: "clock", arity: 0,
		fn: func(*Interpreter, []Value) (Value, error) {
			return Number(float64(time.Now().UnixNano()) / 1e9), nil
		},
	})
	return in
}

// Run executes stmts using bindings produced by the resolver for the
// same tree. It returns a *diag.Error (Stage == StageRuntime) if
// execution aborted with an uncaught runtime error.
func (in *Interpreter) Run(stmts []ast.Stmt, bindings resolver.Bindings) error {
	in.bindings = bindings
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// execute runs one statement. The returned error is either nil, a
// returnSignal unwinding to the nearest Function.Call, or a
// *diag.Error carrying a runtime failure.
func (in *Interpreter) execute(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(n.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.evaluate(n.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, v.String())
		return nil

	case *ast.VarStmt:
		var v Value = Nil{}
		if n.Initializer != nil {
			var err error
			v, err = in.evaluate(n.Initializer)
			if err != nil {
				return err
			}
		}
		in.env.Define(n.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(n.Stmts, NewEnvironment(in.env))

	case *ast.IfStmt:
		cond, err := in.evaluate(n.Cond)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return in.execute(n.Then)
		} else if n.Else != nil {
			return in.execute(n.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(n.Cond)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := in.execute(n.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := NewFunction(n, in.env, false)
		in.env.Define(n.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var v Value = Nil{}
		if n.Value != nil {
			var err error
			v, err = in.evaluate(n.Value)
			if err != nil {
				return err
			}
		}
		return returnSignal{value: v}

	case *ast.ClassStmt:
		return in.executeClass(n)

	default:
		panic("interp: unhandled statement type")
	}
}

// executeBlock runs stmts in a fresh environment, always restoring the
// caller's environment on every exit path — normal completion, an
// uncaught runtime error, or a return unwind.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeClass(n *ast.ClassStmt) error {
	var superclass *Class
	if n.Superclass != nil {
		v, err := in.evaluate(n.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return in.runtimeErr(n.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	// Declare the class name before building methods so they can
	// reference the class recursively (e.g. a method returning `this`
	// of a class that refers to itself by name is unnecessary, but a
	// sibling function referencing the class while it's being defined
	// must see it).
	in.env.Define(n.Name.Lexeme, Nil{})

	env := in.env
	if superclass != nil {
		env = NewEnvironment(in.env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, env, m.Name.Lexeme == "init")
	}

	class := &Class{Name: n.Name.Lexeme, Superclass: superclass, Methods: methods}
	in.env.Assign(n.Name.Lexeme, class)
	return nil
}

// evaluate computes the value of an expression. It returns a *diag.Error
// on a runtime failure; returnSignal never originates here.
func (in *Interpreter) evaluate(e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return literalValue(n.Value), nil

	case *ast.Grouping:
		return in.evaluate(n.Inner)

	case *ast.Unary:
		right, err := in.evaluate(n.Right)
		if err != nil {
			return nil, err
		}
		switch n.Op.Kind {
		case token.Bang:
			return Bool(!IsTruthy(right)), nil
		case token.Minus:
			num, ok := right.(Number)
			if !ok {
				return nil, in.runtimeErr(n.Op, "Operand must be a number.")
			}
			return -num, nil
		}
		panic("interp: unhandled unary operator")

	case *ast.Binary:
		return in.evalBinary(n)

	case *ast.Logical:
		left, err := in.evaluate(n.Left)
		if err != nil {
			return nil, err
		}
		truthy := IsTruthy(left)
		if n.Op.Kind == token.Or {
			if truthy {
				return left, nil
			}
		} else if !truthy {
			return left, nil
		}
		return in.evaluate(n.Right)

	case *ast.Variable:
		return in.lookUpVariable(n.Name, n)

	case *ast.Assign:
		value, err := in.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.bindings[n]; ok {
			in.env.AssignAt(distance, n.Name.Lexeme, value)
		} else if !in.globals.Assign(n.Name.Lexeme, value) {
			return nil, in.runtimeErr(n.Name, "Undefined variable '"+n.Name.Lexeme+"'.")
		}
		return value, nil

	case *ast.Call:
		return in.evalCall(n)

	case *ast.Get:
		obj, err := in.evaluate(n.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, in.runtimeErr(n.Name, "Only instances have properties.")
		}
		v, ok := instance.Get(n.Name.Lexeme)
		if !ok {
			return nil, in.runtimeErr(n.Name, "Undefined property '"+n.Name.Lexeme+"'.")
		}
		return v, nil

	case *ast.Set:
		obj, err := in.evaluate(n.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, in.runtimeErr(n.Name, "Only instances have fields.")
		}
		value, err := in.evaluate(n.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(n.Name.Lexeme, value)
		return value, nil

	case *ast.This:
		return in.lookUpVariable(n.Keyword, n)

	case *ast.Super:
		return in.evalSuper(n)

	default:
		panic("interp: unhandled expression type")
	}
}

func (in *Interpreter) evalBinary(n *ast.Binary) (Value, error) {
	left, err := in.evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.Plus:
		if ls, ok := left.(String); ok {
			if rs, ok := right.(String); ok {
				return ls + rs, nil
			}
		}
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln + rn, nil
			}
		}
		return nil, in.runtimeErr(n.Op, "Operands must be two numbers or two strings.")

	case token.Minus:
		l, r, err := in.numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil

	case token.Star:
		l, r, err := in.numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil

	case token.Slash:
		l, r, err := in.numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil

	case token.Greater:
		l, r, err := in.numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l > r), nil

	case token.GreaterEqual:
		l, r, err := in.numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l >= r), nil

	case token.Less:
		l, r, err := in.numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l < r), nil

	case token.LessEqual:
		l, r, err := in.numberOperands(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Bool(l <= r), nil

	case token.EqualEqual:
		return Bool(Equal(left, right)), nil

	case token.BangEqual:
		return Bool(!Equal(left, right)), nil
	}
	panic("interp: unhandled binary operator")
}

func (in *Interpreter) evalCall(n *ast.Call) (Value, error) {
	callee, err := in.evaluate(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, in.runtimeErr(n.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, in.runtimeErr(n.Paren,
			fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) evalSuper(n *ast.Super) (Value, error) {
	distance := in.bindings[n] // always present: resolver rejects super outside a subclass method
	superVal := in.env.GetAt(distance, "super")
	super := superVal.(*Class)

	thisVal := in.env.GetAt(distance-1, "this")
	this := thisVal.(*Instance)

	method := super.FindMethod(n.Method.Lexeme)
	if method == nil {
		return nil, in.runtimeErr(n.Method, "Undefined property '"+n.Method.Lexeme+"'.")
	}
	return method.bind(this), nil
}

func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if distance, ok := in.bindings[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	if v, ok := in.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, in.runtimeErr(name, "Undefined variable '"+name.Lexeme+"'.")
}

func (in *Interpreter) numberOperands(op token.Token, left, right Value) (Number, Number, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return 0, 0, in.runtimeErr(op, "Operands must be numbers.")
	}
	return l, r, nil
}

func (in *Interpreter) runtimeErr(tok token.Token, msg string) error {
	return &diag.Error{Stage: diag.StageRuntime, Line: tok.Line, Msg: msg}
}

func literalValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return Nil{}
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case string:
		return String(val)
	default:
		panic("interp: unhandled literal payload type")
	}
}
