// Package pretty renders terms in a minimal Lisp-like debug syntax, the
// "reduced to a debug dumper" presentation permitted in place of a full
// surface pretty-printer (SPEC_FULL.md §C.4). Parse (parse.go) reads this
// syntax back as a best-effort reader; it does not accept Constant or
// ExtCns and cannot recover a CtorApp/DataTypeApp's Params/Args split.
// The terminal-colorization helpers mirror the way the
// retrieval pack's evaluator gates ANSI output on github.com/mattn/go-isatty
// (internal/evaluator/builtins_term.go's colorLevel/isatty checks).
package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/vellum-lang/vellum/internal/term"
)

// Sprint renders t as a fully-parenthesized s-expression.
func Sprint(t term.Term) string {
	var b strings.Builder
	write(&b, t)
	return b.String()
}

// Fprint writes Sprint(t) to w.
func Fprint(w io.Writer, t term.Term) {
	io.WriteString(w, Sprint(t))
}

func write(b *strings.Builder, t term.Term) {
	switch n := term.Unwrap(t).(type) {
	case term.LocalVar:
		fmt.Fprintf(b, "#%d", n.Index)
	case term.Lambda:
		paren(b, "Lambda", n.Name, func() { write(b, n.Type) }, func() { write(b, n.Body) })
	case term.Pi:
		paren(b, "Pi", n.Name, func() { write(b, n.Type) }, func() { write(b, n.Body) })
	case term.Let:
		b.WriteString("(Let (")
		for i, d := range n.Defs {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "(%s ", d.Name)
			write(b, d.Type)
			b.WriteByte(' ')
			write(b, d.Value)
			b.WriteByte(')')
		}
		b.WriteString(") ")
		write(b, n.Body)
		b.WriteByte(')')
	case term.App:
		b.WriteString("(App ")
		write(b, n.Fun)
		b.WriteByte(' ')
		write(b, n.Arg)
		b.WriteByte(')')
	case term.Constant:
		fmt.Fprintf(b, "(Const %s)", n.Name)
	case term.GlobalDef:
		fmt.Fprintf(b, "(Global %s)", n.Name)
	case term.Sort:
		fmt.Fprintf(b, "(Sort %d)", n.Level)
	case term.NatLit:
		fmt.Fprintf(b, "%d", n.N)
	case term.StringLit:
		fmt.Fprintf(b, "%q", n.Value)
	case term.ArrayValue:
		b.WriteString("(Array (")
		for i, e := range n.Elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			write(b, e)
		}
		b.WriteString(") ")
		write(b, n.ElemType)
		b.WriteByte(')')
	case term.ExtCns:
		fmt.Fprintf(b, "(ExtCns %s %d)", n.Name, n.VarIx)
	case term.CtorApp:
		writeApp(b, "Ctor", n.Ctor, n.Params, n.Args)
	case term.DataTypeApp:
		writeApp(b, "Data", n.Data, n.Params, n.Indices)
	case term.RecursorApp:
		b.WriteString("(Recursor ")
		fmt.Fprintf(b, "%s (", n.Data)
		for i, p := range n.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			write(b, p)
		}
		b.WriteString(") ")
		write(b, n.Motive)
		b.WriteString(" (")
		for i, c := range n.Cases {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "(%s ", c.Ctor)
			write(b, c.Value)
			b.WriteByte(')')
		}
		b.WriteString(") (")
		for i, idx := range n.Indices {
			if i > 0 {
				b.WriteByte(' ')
			}
			write(b, idx)
		}
		b.WriteString(") ")
		write(b, n.Scrutinee)
		b.WriteByte(')')
	case term.PairLeft:
		b.WriteString("(Fst ")
		write(b, n.Pair)
		b.WriteByte(')')
	case term.PairRight:
		b.WriteString("(Snd ")
		write(b, n.Pair)
		b.WriteByte(')')
	case term.UnitType:
		b.WriteString("(UnitType)")
	case term.UnitValue:
		b.WriteString("(UnitValue)")
	case term.PairType:
		b.WriteString("(PairType ")
		write(b, n.Left)
		b.WriteByte(' ')
		write(b, n.Right)
		b.WriteByte(')')
	case term.PairValue:
		b.WriteString("(Pair ")
		write(b, n.Left)
		b.WriteByte(' ')
		write(b, n.Right)
		b.WriteByte(')')
	case term.EmptyRecordType:
		b.WriteString("(EmptyRecordType)")
	case term.EmptyRecordValue:
		b.WriteString("(EmptyRecordValue)")
	case term.FieldType:
		fmt.Fprintf(b, "(FieldType %s ", n.Name)
		write(b, n.Type)
		b.WriteByte(' ')
		write(b, n.Rest)
		b.WriteByte(')')
	case term.FieldValue:
		fmt.Fprintf(b, "(FieldValue %s ", n.Name)
		write(b, n.Value)
		b.WriteByte(' ')
		write(b, n.Rest)
		b.WriteByte(')')
	case term.RecordSelector:
		b.WriteString("(Select ")
		write(b, n.Record)
		fmt.Fprintf(b, " %s)", n.Name)
	default:
		fmt.Fprintf(b, "(Unknown %T)", n)
	}
}

func paren(b *strings.Builder, head, name string, ty, body func()) {
	fmt.Fprintf(b, "(%s %s ", head, name)
	ty()
	b.WriteByte(' ')
	body()
	b.WriteByte(')')
}

func writeApp(b *strings.Builder, head, name string, paramSets ...[]term.Term) {
	fmt.Fprintf(b, "(%s %s", head, name)
	for _, set := range paramSets {
		for _, a := range set {
			b.WriteByte(' ')
			write(b, a)
		}
	}
	b.WriteByte(')')
}

// ANSI color codes used to highlight success/failure in CLI output.
const (
	colorGreen = "\x1b[32m"
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// StdoutIsTerminal reports whether os.Stdout is attached to a real
// terminal (not piped/redirected), gating ANSI colorization the same way
// the retrieval pack's evaluator checks before writing escape codes.
func StdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Colorize wraps s in the given ANSI code, but only when enabled — callers
// pass StdoutIsTerminal() (or false, for piped/non-interactive output).
func Colorize(s, code string, enabled bool) string {
	if !enabled {
		return s
	}
	return code + s + colorReset
}

// Ok colorizes s as a success message when enabled.
func Ok(s string, enabled bool) string { return Colorize(s, colorGreen, enabled) }

// Fail colorizes s as a failure message when enabled.
func Fail(s string, enabled bool) string { return Colorize(s, colorRed, enabled) }
