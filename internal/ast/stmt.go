package ast

import "github.com/loxlang/glox/internal/token"

// Stmt is any statement node. See the comment on Expr for why this
// interface carries only a marker method.
type Stmt interface {
	stmtNode()
}

type ExpressionStmt struct {
	Expr Expr
}

type PrintStmt struct {
	Expr Expr
}

type VarStmt struct {
	Name        token.Token
	Initializer Expr // nil if absent
}

type BlockStmt struct {
	Stmts []Stmt
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// FunctionStmt doubles as both a top-level `fun` declaration and a class
// method; Resolver/Interpreter distinguish the two by context, not by a
// separate node type, matching how methods are just FunDecls in a
// ClassDecl's method list.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if bare `return;`
}

type ClassStmt struct {
	Name       token.Token
	Superclass *Variable // nil if no superclass
	Methods    []*FunctionStmt
}

func (*ExpressionStmt) stmtNode() {}
func (*PrintStmt) stmtNode()      {}
func (*VarStmt) stmtNode()        {}
func (*BlockStmt) stmtNode()      {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*FunctionStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode()     {}
func (*ClassStmt) stmtNode()      {}
