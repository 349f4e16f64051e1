package ast

import (
	"strconv"
	"strings"
)

// Print renders e as a fully parenthesized expression, e.g. `1 + 2 * 3`
// becomes `(+ 1 (* 2 3))`. Used by parser tests to check precedence and
// associativity without hand-building trees.
func Print(e Expr) string {
	var sb strings.Builder
	printExpr(&sb, e)
	return sb.String()
}

func printExpr(sb *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Literal:
		sb.WriteString(stringify(n.Value))
	case *Grouping:
		parenthesize(sb, "group", n.Inner)
	case *Unary:
		parenthesize(sb, n.Op.Lexeme, n.Right)
	case *Binary:
		parenthesize(sb, n.Op.Lexeme, n.Left, n.Right)
	case *Logical:
		parenthesize(sb, n.Op.Lexeme, n.Left, n.Right)
	case *Variable:
		sb.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(sb, "= "+n.Name.Lexeme, n.Value)
	case *Call:
		parenthesize(sb, "call", append([]Expr{n.Callee}, n.Args...)...)
	case *Get:
		parenthesize(sb, "get "+n.Name.Lexeme, n.Object)
	case *Set:
		parenthesize(sb, "set "+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		sb.WriteString("this")
	case *Super:
		sb.WriteString("(super " + n.Method.Lexeme + ")")
	default:
		sb.WriteString("<?>")
	}
}

func parenthesize(sb *strings.Builder, name string, exprs ...Expr) {
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteByte(' ')
		printExpr(sb, e)
	}
	sb.WriteByte(')')
}

func stringify(v any) string {
	if v == nil {
		return "nil"
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return "<lit>"
	}
}
