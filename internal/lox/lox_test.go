package lox_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loxlang/glox/internal/lox"
)

// run is a small harness in the spirit of the teacher's TestCase/
// TestFramework (sam-decook-lox/main.go): collect a source program and
// compare its observed stdout/exit-result against what's expected.
// Unlike the teacher's harness, this runs the interpreter in-process
// instead of shelling out to a reference binary, which is the only
// option available when there is no second implementation to diff
// against.
func run(t *testing.T, src string) (stdout, stderr string, result lox.Result) {
	t.Helper()
	var out, errBuf bytes.Buffer
	res := lox.New(&out, &errBuf).Run(src)
	return out.String(), errBuf.String(), res
}

func TestArithmeticPrecedence(t *testing.T) {
	out, errs, res := run(t, `print 1 + 2 * 3;`)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "7\n", out)
}

func TestClosureState(t *testing.T) {
	src := `
		fun makeCounter() {
			var i = 0;
			fun c() {
				i = i + 1;
				print i;
			}
			return c;
		}
		var c = makeCounter();
		c(); c(); c();
	`
	out, errs, res := run(t, src)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestLexicalCaptureOverLaterShadowing(t *testing.T) {
	src := `
		var a = "global";
		{
			fun show() { print a; }
			show();
			var a = "block";
			show();
		}
	`
	out, errs, res := run(t, src)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "global\nglobal\n", out)
}

func TestSelfReferentialInitializerExitsCompileError(t *testing.T) {
	_, errs, res := run(t, `{ var a = a; }`)
	assert.Equal(t, lox.CompileError, res)
	assert.Contains(t, errs, "Can't read local variable in its own initializer")
}

func TestStringMinusNumberIsRuntimeError(t *testing.T) {
	_, errs, res := run(t, `print "a" - 1;`)
	assert.Equal(t, lox.RuntimeError, res)
	assert.Contains(t, errs, "Operands must be numbers")
	assert.Contains(t, errs, "[line 1]")
}

func TestInheritanceWithSuper(t *testing.T) {
	src := `
		class A { greet() { print "A"; } }
		class B < A {
			greet() {
				super.greet();
				print "B";
			}
		}
		B().greet();
	`
	out, errs, res := run(t, src)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "A\nB\n", out)
}

func TestInitializerReturnYieldsInstance(t *testing.T) {
	out, errs, res := run(t, `class C { init() { return; } } print C();`)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "<C instance>\n", out)
}

func TestEmptyProgramProducesNoOutput(t *testing.T) {
	out, errs, res := run(t, ``)
	assert.Equal(t, lox.OK, res)
	assert.Empty(t, out)
	assert.Empty(t, errs)
}

func TestClockIsCallableAndReturnsNumber(t *testing.T) {
	src := `
		var t = clock();
		print t >= 0;
	`
	out, errs, res := run(t, src)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "true\n", out)
}

func TestClockCanBeShadowedByLocalFunction(t *testing.T) {
	// Regression: clock must be a real global binding, not special-cased
	// in the call-expression evaluator, or shadowing it would silently
	// keep calling the native clock instead of the user's function.
	src := `
		fun outer() {
			fun clock() { return "shadowed"; }
			print clock();
		}
		outer();
	`
	out, errs, res := run(t, src)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "shadowed\n", out)
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, errs, res := run(t, `print nope;`)
	assert.Equal(t, lox.RuntimeError, res)
	assert.Contains(t, errs, "Undefined variable 'nope'")
}

func TestAssignToUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, errs, res := run(t, `nope = 1;`)
	assert.Equal(t, lox.RuntimeError, res)
	assert.Contains(t, errs, "Undefined variable 'nope'")
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, errs, res := run(t, `fun f(a, b) { return a + b; } f(1);`)
	assert.Equal(t, lox.RuntimeError, res)
	assert.Contains(t, errs, "Expected 2 arguments but got 1.")
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, errs, res := run(t, `var x = 1; x();`)
	assert.Equal(t, lox.RuntimeError, res)
	assert.Contains(t, errs, "Can only call functions and classes.")
}

func TestFieldsShadowMethods(t *testing.T) {
	src := `
		class Box { value() { return "method"; } }
		var b = Box();
		b.value = "field";
		print b.value;
	`
	out, errs, res := run(t, src)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "field\n", out)
}

func TestUndefinedPropertyIsRuntimeError(t *testing.T) {
	_, errs, res := run(t, `class Box {} print Box().nope;`)
	assert.Equal(t, lox.RuntimeError, res)
	assert.Contains(t, errs, "Undefined property 'nope'")
}

func TestForLoopSumsToExpectedValue(t *testing.T) {
	src := `
		var sum = 0;
		for (var i = 1; i <= 5; i = i + 1) {
			sum = sum + i;
		}
		print sum;
	`
	out, errs, res := run(t, src)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "15\n", out)
}

func TestLogicalOperatorsShortCircuit(t *testing.T) {
	src := `
		fun sideEffect(tag, v) { print tag; return v; }
		print sideEffect("left", false) and sideEffect("right", true);
		print sideEffect("left2", true) or sideEffect("right2", true);
	`
	out, errs, res := run(t, src)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "left\nfalse\nleft2\ntrue\n", out)
}

func TestStringifyNumberDropsTrailingZero(t *testing.T) {
	out, errs, res := run(t, `print 7.0; print 7.5;`)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "7\n7.5\n", out)
}

func TestEqualityHasNoImplicitCrossTypeCoercion(t *testing.T) {
	out, errs, res := run(t, `print "3" == 3; print nil == false; print nil == nil;`)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "false\nfalse\ntrue\n", out)
}

func TestTwoDistinctInstancesAreNeverEqual(t *testing.T) {
	src := `
		class A {}
		print A() == A();
		var a = A();
		print a == a;
	`
	out, errs, res := run(t, src)
	require.Equal(t, lox.OK, res, errs)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestREPLResetsErrorFlagBetweenLines(t *testing.T) {
	interp := lox.New(new(bytes.Buffer), new(bytes.Buffer))
	require.Equal(t, lox.CompileError, interp.Run("1 +;"))
	assert.Equal(t, lox.OK, interp.Run("print 1;"))
}

func TestGlobalStatePersistsAcrossRunCalls(t *testing.T) {
	var out bytes.Buffer
	interp := lox.New(&out, new(bytes.Buffer))
	require.Equal(t, lox.OK, interp.Run("var x = 1;"))
	require.Equal(t, lox.OK, interp.Run("x = x + 1;"))
	require.Equal(t, lox.OK, interp.Run("print x;"))
	assert.Equal(t, "2\n", out.String())
}
