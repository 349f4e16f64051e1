// Package ast defines the expression and statement tree produced by the
// parser and walked by the resolver and interpreter.
//
// Every node is a distinct pointer-typed struct, so its pointer identity
// doubles as the stable key the resolver uses to record scope distances
// (see internal/resolver). Nodes are plain data; behavior lives in the
// resolver and interpreter packages, which switch on concrete type.
package ast

import "github.com/loxlang/glox/internal/token"

// Expr is any expression node. The interface carries only an unexported
// marker method: callers type-switch on the concrete pointer type, which keeps the AST a flat set
// of structs instead of a class hierarchy with per-node visitor methods.
type Expr interface {
	exprNode()
}

type Literal struct {
	Value any // nil, bool, float64, or string
}

type Grouping struct {
	Inner Expr
}

type Unary struct {
	Op    token.Token
	Right Expr
}

type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// Variable is a reference to a name. The resolver records its scope
// distance (if local) keyed by the node's own pointer.
type Variable struct {
	Name token.Token
}

// Assign is `name = value`. Like Variable, it is resolved by pointer
// identity.
type Assign struct {
	Name  token.Token
	Value Expr
}

type Call struct {
	Callee Expr
	Paren  token.Token // closing ')', used for error line reporting
	Args   []Expr
}

type Get struct {
	Object Expr
	Name   token.Token
}

type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

type This struct {
	Keyword token.Token
}

type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}
