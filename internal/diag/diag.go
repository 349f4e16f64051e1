// Package diag is the diagnostic sink shared by the scanner, parser,
// resolver, and interpreter. It separates *reporting* an error (which
// every pass does the same way) from *displaying* it (which the CLI
// driver owns), following the Reporter split used by the retrieval
// pack's letung3105-lox/glox/internal/lox/reporter.go.
package diag

import (
	"fmt"
	"io"
)

// Stage identifies which compiler pass raised an error. It picks how an
// Error renders and which of the Reporter's two flags it sets.
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageResolve
	StageRuntime
)

// Error is a diagnostic raised by any pass. Lex/parse/resolve errors carry
// a Line and optional Where ("at end" / "at '<lexeme>'"); runtime errors
// carry just a Line.
type Error struct {
	Stage Stage
	Line  int
	Where string // "", " at end", or fmt.Sprintf(" at '%s'", lexeme)
	Msg   string
}

func (e *Error) Error() string {
	if e.Stage == StageRuntime {
		return fmt.Sprintf("%s\n[line %d]", e.Msg, e.Line)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Msg)
}

// AtEOF is the "at end" form of Where.
const AtEOF = " at end"

// At formats the "at '<lexeme>'" form of Where.
func At(lexeme string) string {
	return fmt.Sprintf(" at '%s'", lexeme)
}

// Reporter accumulates diagnostics raised during one run() invocation and
// renders them to an error stream. It is the single place that decides
// whether a run had a compile error, a runtime error, or neither —
// replacing the package-global "had error" booleans the source language
// uses with an explicit, reusable value passed through the pipeline.
type Reporter struct {
	w             io.Writer
	hadError      bool
	hadRuntimeErr bool
}

// NewReporter returns a Reporter that renders diagnostics to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report renders err and records which error-class flag it sets.
func (r *Reporter) Report(err *Error) {
	fmt.Fprintln(r.w, err.Error())
	if err.Stage == StageRuntime {
		r.hadRuntimeErr = true
	} else {
		r.hadError = true
	}
}

// Reset clears both flags; called between REPL lines.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntimeErr = false
}

// HadError reports whether any lex/parse/resolve error was reported since
// the last Reset.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether a runtime error was reported since the
// last Reset.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntimeErr }
