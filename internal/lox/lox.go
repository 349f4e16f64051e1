// Package lox wires the four passes — scanner, parser, resolver,
// interpreter — into the single entry point external callers use:
// Run(source). This is "the core" spec.md describes: it consumes a
// source string and a diagnostic sink, and returns which of the three
// outcomes a run produced. The command-line driver (cmd/glox) is the
// only thing that knows about files, prompts, or process exit codes.
package lox

import (
	"io"

	"github.com/loxlang/glox/internal/diag"
	"github.com/loxlang/glox/internal/interp"
	"github.com/loxlang/glox/internal/parser"
	"github.com/loxlang/glox/internal/resolver"
	"github.com/loxlang/glox/internal/scanner"
)

// Result classifies the outcome of one Run call.
type Result int

const (
	OK Result = iota
	CompileError
	RuntimeError
)

// Lox holds the state that must persist across multiple Run calls in a
// REPL session: the global environment (so `var x = 1;` on one line is
// visible to the next) and the diagnostic sink (so HadError can be
// reset between lines without losing accumulated output).
type Lox struct {
	reporter *diag.Reporter
	interp   *interp.Interpreter
}

// New returns a Lox instance whose `print` output goes to stdout and
// whose diagnostics go to stderr.
func New(stdout, stderr io.Writer) *Lox {
	return &Lox{
		reporter: diag.NewReporter(stderr),
		interp:   interp.New(stdout),
	}
}

// Run scans, parses, resolves, and interprets source, stopping after any
// pass that reported a compile-time error. It resets the reporter's
// flags before returning so the next Run call (the next REPL line)
// starts clean.
func (l *Lox) Run(source string) Result {
	defer l.reporter.Reset()

	toks := scanner.New(source, l.reporter).Scan()
	if l.reporter.HadError() {
		return CompileError
	}

	stmts := parser.New(toks, l.reporter).Parse()
	if l.reporter.HadError() {
		return CompileError
	}

	bindings := resolver.New(l.reporter).Resolve(stmts)
	if l.reporter.HadError() {
		return CompileError
	}

	if err := l.interp.Run(stmts, bindings); err != nil {
		if de, ok := err.(*diag.Error); ok {
			l.reporter.Report(de)
		} else {
			l.reporter.Report(&diag.Error{Stage: diag.StageRuntime, Msg: err.Error()})
		}
		return RuntimeError
	}

	return OK
}
