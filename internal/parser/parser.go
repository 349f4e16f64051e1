// Package parser implements a recursive-descent, precedence-climbing
// parser that turns a token stream into the statement tree defined in
// internal/ast.
package parser

import (
	"github.com/loxlang/glox/internal/ast"
	"github.com/loxlang/glox/internal/diag"
	"github.com/loxlang/glox/internal/token"
)

const maxArgs = 255

// parseError unwinds the current declaration to Parser.synchronize. It is
// not a user-visible error type; Parser.Parse reports the diagnostic
// before panicking with it.
type parseError struct{}

// Parser consumes a token slice and produces a list of top-level
// statements, recovering from syntax errors at statement boundaries so a
// single mistake doesn't abort the whole file.
type Parser struct {
	tokens   []token.Token
	cur      int
	reporter *diag.Reporter
}

// New returns a Parser over tokens that reports syntax errors to r.
func New(tokens []token.Token, r *diag.Reporter) *Parser {
	return &Parser{tokens: tokens, reporter: r}
}

// Parse returns the program's top-level declarations. A declaration that
// fails to parse is omitted (not replaced with a placeholder) after the
// parser has synchronized to the next statement boundary; downstream
// passes only ever see well-formed nodes.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// ParseExpression parses a single expression; the parser tests use it to
// check precedence and associativity. It does not attempt recovery.
func (p *Parser) ParseExpression() (e ast.Expr, err bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				err = true
				return
			}
			panic(r)
		}
	}()
	return p.expression(), false
}

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.Less) {
		p.consume(token.Identifier, "Expect superclass name.")
		superclass = &ast.Variable{Name: p.previous()}
	}

	p.consume(token.LeftBrace, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		methods = append(methods, p.function("method").(*ast.FunctionStmt))
	}
	p.consume(token.RightBrace, "Expect '}' after class body.")

	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) ast.Stmt {
	name := p.consume(token.Identifier, "Expect "+kind+" name.")
	p.consume(token.LeftParen, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.reportError(p.peek(), "Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Identifier, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")

	p.consume(token.LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()
	return &ast.FunctionStmt{Name: name, Params: params, Body: body}
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Identifier, "Expect variable name.")

	var init ast.Expr
	if p.match(token.Equal) {
		init = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarStmt{Name: name, Initializer: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.LeftBrace):
		return &ast.BlockStmt{Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

func (p *Parser) forStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(token.Semicolon):
		initializer = nil
	case p.match(token.Var):
		initializer = p.varDecl()
	default:
		initializer = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(token.RightParen) {
		increment = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	// Desugar: for (init; cond; incr) body  =>
	//   { init; while (cond) { body; incr; } }
	if increment != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}}}
	}
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	body = &ast.WhileStmt{Cond: cond, Body: body}
	if initializer != nil {
		body = &ast.BlockStmt{Stmts: []ast.Stmt{initializer, body}}
	}
	return body
}

func (p *Parser) ifStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *Parser) printStmt() ast.Stmt {
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Expr: value}
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment() // right-associative

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.reportError(equals, "Invalid assignment target.")
		}
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Identifier, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.reportError(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: false}
	case p.match(token.True):
		return &ast.Literal{Value: true}
	case p.match(token.Nil):
		return &ast.Literal{Value: nil}
	case p.match(token.Number, token.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Identifier, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.This):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	default:
		p.errorAt(p.peek(), "Expect expression.")
		panic(parseError{}) // errorAt never returns; kept for the type checker
	}
}

// --------------------------------------------------------------------
// Token-stream primitives
// --------------------------------------------------------------------

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(k token.Kind, msg string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorAt(p.peek(), msg)
	panic(parseError{}) // unreachable: errorAt panics
}

func (p *Parser) check(k token.Kind) bool {
	return !p.atEnd() && p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.cur++
	}
	return p.previous()
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.cur]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.cur-1]
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	p.reportError(tok, msg)
	panic(parseError{})
}

// reportError records a diagnostic without unwinding the current
// declaration, for errors that shouldn't stop parsing (e.g. the
// 255-argument/parameter caps — the list keeps parsing past the cap).
func (p *Parser) reportError(tok token.Token, msg string) {
	where := diag.At(tok.Lexeme)
	if tok.Kind == token.EOF {
		where = diag.AtEOF
	}
	p.reporter.Report(&diag.Error{Stage: diag.StageParse, Line: tok.Line, Where: where, Msg: msg})
}

// synchronize discards tokens until it reaches a likely statement
// boundary: the token after a ';', or a keyword that starts a new
// declaration/statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}
