// Command glox is the Lox interpreter's command-line driver: no
// arguments starts an interactive prompt, one argument runs a script
// file, anything else is a usage error. See internal/lox for the actual
// scan/parse/resolve/interpret pipeline; this file only knows about
// files, prompts, and process exit codes.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/loxlang/glox/internal/lox"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Stdin))
}

func run(args []string, stdout, stderr io.Writer, stdin io.Reader) int {
	switch len(args) {
	case 0:
		return runPrompt(stdout, stderr, stdin)
	case 1:
		return runFile(args[0], stdout, stderr)
	default:
		fmt.Fprintln(stderr, "Usage: glox [script]")
		return 64
	}
}

func runFile(path string, stdout, stderr io.Writer) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file: %v\n", err)
		return 64
	}

	interpreter := lox.New(stdout, errWriter(stderr))
	switch interpreter.Run(string(src)) {
	case lox.CompileError:
		return 65
	case lox.RuntimeError:
		return 75
	default:
		return 0
	}
}

func runPrompt(stdout, stderr io.Writer, stdin io.Reader) int {
	interpreter := lox.New(stdout, errWriter(stderr))
	scanner := bufio.NewScanner(stdin)

	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			break
		}
		// Result is deliberately ignored: a bad line in the REPL does not
		// exit the process, it just leaves its diagnostic on stderr and the
		// prompt keeps going (Lox.Run already resets the error flags).
		interpreter.Run(scanner.Text())
	}
	return 0
}

// errWriter colors every line written to w red, the way the teacher's own
// test harness uses fatih/color (color.RedString for failures,
// color.GreenString for passes) to make diagnostics stand out in a
// terminal. color auto-detects non-TTY output (pipes, `go test`
// golden-file captures) and disables escape codes itself, so redirected
// output stays byte-for-byte plain text.
func errWriter(w io.Writer) io.Writer {
	return &coloredWriter{w: w, c: color.New(color.FgRed)}
}

type coloredWriter struct {
	w io.Writer
	c *color.Color
}

func (cw *coloredWriter) Write(p []byte) (int, error) {
	if _, err := cw.c.Fprint(cw.w, string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
