package parser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxlang/glox/internal/ast"
	"github.com/loxlang/glox/internal/diag"
	"github.com/loxlang/glox/internal/parser"
	"github.com/loxlang/glox/internal/scanner"
)

func parseExpr(t *testing.T, src string) (ast.Expr, string) {
	t.Helper()
	var errBuf bytes.Buffer
	r := diag.NewReporter(&errBuf)
	toks := scanner.New(src, r).Scan()
	e, failed := parser.New(toks, r).ParseExpression()
	if failed {
		return nil, errBuf.String()
	}
	return e, errBuf.String()
}

func parseStmts(t *testing.T, src string) ([]ast.Stmt, string) {
	t.Helper()
	var errBuf bytes.Buffer
	r := diag.NewReporter(&errBuf)
	toks := scanner.New(src, r).Scan()
	stmts := parser.New(toks, r).Parse()
	return stmts, errBuf.String()
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"-1 + 2", "(+ (- 1) 2)"},
		{"1 < 2 == 3 < 4", "(== (< 1 2) (< 3 4))"},
		{"a or b and c", "(or a (and b c))"},
	}
	for _, c := range cases {
		e, errs := parseExpr(t, c.src)
		require.Empty(t, errs, c.src)
		assert.Equal(t, c.want, ast.Print(e), c.src)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	stmts, errs := parseStmts(t, "a = b = c;")
	require.Empty(t, errs)
	require.Len(t, stmts, 1)
	es := stmts[0].(*ast.ExpressionStmt)
	outer, ok := es.Expr.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Name.Lexeme)
	inner, ok := outer.Value.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name.Lexeme)
}

func TestInvalidAssignmentTargetIsStaticError(t *testing.T) {
	_, errs := parseStmts(t, "1 + 2 = 3;")
	assert.Contains(t, errs, "Invalid assignment target")
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	stmts, errs := parseStmts(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.Empty(t, errs)
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok, "for loop desugars to a block")
	require.Len(t, block.Stmts, 2)

	_, ok = block.Stmts[0].(*ast.VarStmt)
	assert.True(t, ok, "first stmt is the initializer")

	while, ok := block.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok, "second stmt is the desugared while loop")

	innerBlock, ok := while.Body.(*ast.BlockStmt)
	require.True(t, ok, "while body wraps body+increment in a block")
	require.Len(t, innerBlock.Stmts, 2)
}

func TestForLoopWithoutConditionDesugarsToTrue(t *testing.T) {
	stmts, errs := parseStmts(t, "for (;;) print 1;")
	require.Empty(t, errs)
	while := stmts[0].(*ast.WhileStmt)
	lit, ok := while.Cond.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, true, lit.Value)
}

func TestClassDeclWithSuperclassAndMethods(t *testing.T) {
	stmts, errs := parseStmts(t, `
		class B < A {
			greet() { print "hi"; }
			init(x) { this.x = x; }
		}
	`)
	require.Empty(t, errs)
	require.Len(t, stmts, 1)
	cls := stmts[0].(*ast.ClassStmt)
	assert.Equal(t, "B", cls.Name.Lexeme)
	require.NotNil(t, cls.Superclass)
	assert.Equal(t, "A", cls.Superclass.Name.Lexeme)
	require.Len(t, cls.Methods, 2)
	assert.Equal(t, "greet", cls.Methods[0].Name.Lexeme)
	assert.Equal(t, "init", cls.Methods[1].Name.Lexeme)
}

func TestParseErrorSynchronizesAtStatementBoundary(t *testing.T) {
	// `var 1 = 2;` is malformed (IDENT missing); synchronize should skip to
	// after the next ';' and still parse the following statement.
	stmts, errs := parseStmts(t, "var 1 = 2; print 3;")
	assert.NotEmpty(t, errs)
	require.Len(t, stmts, 1)
	ps, ok := stmts[0].(*ast.PrintStmt)
	require.True(t, ok)
	lit := ps.Expr.(*ast.Literal)
	assert.Equal(t, 3.0, lit.Value)
}

func TestCallAndGetChain(t *testing.T) {
	e, errs := parseExpr(t, "a.b.c(1, 2)")
	require.Empty(t, errs)
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	get, ok := call.Callee.(*ast.Get)
	require.True(t, ok)
	assert.Equal(t, "c", get.Name.Lexeme)
}

func TestTooManyArgumentsIsStaticError(t *testing.T) {
	src := "f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ")"
	_, errs := parseExpr(t, src)
	assert.Contains(t, errs, "Can't have more than 255 arguments.")
}
