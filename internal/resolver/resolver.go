// Package resolver performs the static pass between parsing and
// interpretation: for every variable reference and assignment, it works
// out how many enclosing environments to walk at runtime ("scope
// distance") and hands that back to the interpreter via a Bindings map
// keyed by expression pointer identity. It also catches a family of
// static errors (self-referential initializers, duplicate locals,
// top-level return, this/super misuse) that are cheaper to reject here
// than at runtime.
package resolver

import (
	"github.com/loxlang/glox/internal/ast"
	"github.com/loxlang/glox/internal/diag"
	"github.com/loxlang/glox/internal/token"
)

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnInitializer
	fnMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Bindings maps an expression node (by pointer identity) to its resolved
// scope distance. Expressions with no entry are globals.
type Bindings map[ast.Expr]int

// Resolver walks a statement tree exactly once before interpretation.
type Resolver struct {
	reporter *diag.Reporter
	bindings Bindings

	scopes      []map[string]bool
	currentFn   functionType
	currentCls  classType
}

// New returns a Resolver that reports static errors to r.
func New(r *diag.Reporter) *Resolver {
	return &Resolver{reporter: r, bindings: make(Bindings)}
}

// Resolve walks stmts and returns the resulting Bindings for the
// interpreter to consult at variable-access time.
func (r *Resolver) Resolve(stmts []ast.Stmt) Bindings {
	r.resolveStmts(stmts)
	return r.bindings
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(n.Stmts)
		r.endScope()

	case *ast.VarStmt:
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpr(n.Initializer)
		}
		r.define(n.Name)

	case *ast.FunctionStmt:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, fnFunction)

	case *ast.ClassStmt:
		r.resolveClass(n)

	case *ast.ExpressionStmt:
		r.resolveExpr(n.Expr)

	case *ast.IfStmt:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Then)
		if n.Else != nil {
			r.resolveStmt(n.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(n.Expr)

	case *ast.ReturnStmt:
		if r.currentFn == fnNone {
			r.err(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFn == fnInitializer {
				r.err(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(n.Value)
		}

	case *ast.WhileStmt:
		r.resolveExpr(n.Cond)
		r.resolveStmt(n.Body)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(n *ast.ClassStmt) {
	enclosingCls := r.currentCls
	r.currentCls = classClass

	r.declare(n.Name)
	r.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.err(n.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentCls = classSubclass
		r.resolveExpr(n.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range n.Methods {
		fnType := fnMethod
		if method.Name.Lexeme == "init" {
			fnType = fnInitializer
		}
		r.resolveFunction(method, fnType)
	}

	r.endScope()
	if n.Superclass != nil {
		r.endScope()
	}

	r.currentCls = enclosingCls
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ functionType) {
	enclosingFn := r.currentFn
	r.currentFn = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFn = enclosingFn
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][n.Name.Lexeme]; declared && !defined {
				r.err(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name)

	case *ast.Assign:
		r.resolveExpr(n.Value)
		r.resolveLocal(n, n.Name)

	case *ast.Binary:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.Logical:
		r.resolveExpr(n.Left)
		r.resolveExpr(n.Right)

	case *ast.Call:
		r.resolveExpr(n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(n.Object)

	case *ast.Set:
		r.resolveExpr(n.Value)
		r.resolveExpr(n.Object)

	case *ast.Grouping:
		r.resolveExpr(n.Inner)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Unary:
		r.resolveExpr(n.Right)

	case *ast.This:
		if r.currentCls == classNone {
			r.err(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n, n.Keyword)

	case *ast.Super:
		switch r.currentCls {
		case classNone:
			r.err(n.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.err(n.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(n, n.Keyword)

	default:
		panic("resolver: unhandled expression type")
	}
}

// resolveLocal walks the scope stack from innermost outward, recording
// the distance on first hit. No hit means a global: no entry is
// recorded, and the interpreter falls back to name lookup in globals.
func (r *Resolver) resolveLocal(e ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.bindings[e] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.err(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) err(tok token.Token, msg string) {
	where := diag.At(tok.Lexeme)
	if tok.Kind == token.EOF {
		where = diag.AtEOF
	}
	r.reporter.Report(&diag.Error{Stage: diag.StageResolve, Line: tok.Line, Where: where, Msg: msg})
}
