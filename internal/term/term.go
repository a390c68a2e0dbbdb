// Package term defines the shared/unshared term representation: de Bruijn
// binders, flat primitives, datatype/constructor/recursor applications,
// tuples and extensible records. See the data model in the project's
// SPEC_FULL.md §3 for the full constructor list and invariants.
package term

import (
	"fmt"
	"strings"
)

// Term is any node of the term tree. Every exported constructor type in
// this package implements it. A Term may be an unshared raw constructor
// or a *Shared wrapper carrying a hash-consing index and cached metadata
// (see shared.go).
type Term interface {
	termNode()
	String() string
}

// LocalVar is a de Bruijn-indexed bound variable reference.
type LocalVar struct {
	Index int
}

func (LocalVar) termNode() {}
func (v LocalVar) String() string { return fmt.Sprintf("#%d", v.Index) }

// Lambda introduces a bound variable of type Type over Body.
type Lambda struct {
	Name string
	Type Term
	Body Term
}

func (Lambda) termNode() {}
func (l Lambda) String() string {
	return fmt.Sprintf("(\\%s:%s. %s)", l.Name, l.Type, l.Body)
}

// Pi is the dependent function type former.
type Pi struct {
	Name string
	Type Term
	Body Term
}

func (Pi) termNode() {}
func (p Pi) String() string {
	return fmt.Sprintf("(Pi %s:%s. %s)", p.Name, p.Type, p.Body)
}

// LetDef is one binding of a Let block: a declared type and a bound value.
// Type lives in the scope enclosing the Let; Value lives in the scope of
// all n simultaneous bindings.
type LetDef struct {
	Name  string
	Type  Term
	Value Term
}

// Let introduces n simultaneous (possibly mutually recursive) bindings
// over Body. Not produced by the inference rules of §4.7 (pattern
// equations are elaborated upstream). Substitution and free-variable
// analysis handle it; reduce.Whnf does not reduce it, so a Let is left
// as a WHNF head.
type Let struct {
	Defs []LetDef
	Body Term
}

func (Let) termNode() {}
func (l Let) String() string {
	parts := make([]string, len(l.Defs))
	for i, d := range l.Defs {
		parts[i] = fmt.Sprintf("%s:%s=%s", d.Name, d.Type, d.Value)
	}
	return fmt.Sprintf("(let %s in %s)", strings.Join(parts, "; "), l.Body)
}

// App is ordinary function application.
type App struct {
	Fun Term
	Arg Term
}

func (App) termNode() {}
func (a App) String() string { return fmt.Sprintf("(%s %s)", a.Fun, a.Arg) }

// Constant is a named, closed term with a declared type: an opaque leaf
// for substitution and free-variable analysis (§3, §4.2).
type Constant struct {
	Name         string
	Definition   Term
	DeclaredType Term
}

func (Constant) termNode() {}
func (c Constant) String() string { return c.Name }

// GlobalDef refers to a global definition by qualified name, resolved
// through the module environment (§4.7 "Global definitions").
type GlobalDef struct {
	Name string
}

func (GlobalDef) termNode() {}
func (g GlobalDef) String() string { return g.Name }

// Sort is a universe literal.
type Sort struct {
	Level uint32
}

func (Sort) termNode() {}
func (s Sort) String() string { return fmt.Sprintf("Sort %d", s.Level) }

// NatLit is a natural-number literal.
type NatLit struct {
	N uint64
}

func (NatLit) termNode() {}
func (n NatLit) String() string { return fmt.Sprintf("%d", n.N) }

// StringLit is a string literal.
type StringLit struct {
	Value string
}

func (StringLit) termNode() {}
func (s StringLit) String() string { return fmt.Sprintf("%q", s.Value) }

// ArrayValue is a homogeneous literal vector together with its declared
// element type.
type ArrayValue struct {
	ElemType Term
	Elems    []Term
}

func (ArrayValue) termNode() {}
func (a ArrayValue) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("[%s : %s]", strings.Join(parts, ", "), a.ElemType)
}

// ExtCns is an external constant: an opaque free variable distinguished
// by index, with a name (for display) and a type.
type ExtCns struct {
	VarIx int
	Name  string
	Type  Term
}

func (ExtCns) termNode() {}
func (e ExtCns) String() string { return fmt.Sprintf("?%s_%d", e.Name, e.VarIx) }

// CtorApp applies a datatype constructor to its parameters and arguments.
type CtorApp struct {
	Ctor   string
	Params []Term
	Args   []Term
}

func (CtorApp) termNode() {}
func (c CtorApp) String() string { return appString(c.Ctor, c.Params, c.Args) }

// DataTypeApp applies a datatype to its parameters and indices.
type DataTypeApp struct {
	Data    string
	Params  []Term
	Indices []Term
}

func (DataTypeApp) termNode() {}
func (d DataTypeApp) String() string { return appString(d.Data, d.Params, d.Indices) }

// RecursorCase is one constructor's eliminator case within a RecursorApp.
type RecursorCase struct {
	Ctor  string
	Value Term
}

// RecursorApp is a dependent elimination of Scrutinee, a value of the
// datatype Data applied to Params/Indices, via Motive with one case per
// constructor. See §4.7 "Recursor".
type RecursorApp struct {
	Data      string
	Params    []Term
	Motive    Term
	Cases     []RecursorCase
	Indices   []Term
	Scrutinee Term
}

func (RecursorApp) termNode() {}
func (r RecursorApp) String() string {
	cs := make([]string, len(r.Cases))
	for i, c := range r.Cases {
		cs[i] = fmt.Sprintf("%s->%s", c.Ctor, c.Value)
	}
	return fmt.Sprintf("(rec %s %v %s [%s] %v %s)", r.Data, r.Params, r.Motive, strings.Join(cs, ", "), r.Indices, r.Scrutinee)
}

// PairLeft / PairRight are tuple projections.
type PairLeft struct{ Pair Term }
type PairRight struct{ Pair Term }

func (PairLeft) termNode()  {}
func (PairRight) termNode() {}
func (p PairLeft) String() string  { return fmt.Sprintf("(fst %s)", p.Pair) }
func (p PairRight) String() string { return fmt.Sprintf("(snd %s)", p.Pair) }

// UnitType / UnitValue are the nullary tuple.
type UnitType struct{}
type UnitValue struct{}

func (UnitType) termNode()  {}
func (UnitValue) termNode() {}
func (UnitType) String() string  { return "Unit" }
func (UnitValue) String() string { return "()" }

// PairType / PairValue are binary tuples.
type PairType struct{ Left, Right Term }
type PairValue struct{ Left, Right Term }

func (PairType) termNode()  {}
func (PairValue) termNode() {}
func (p PairType) String() string  { return fmt.Sprintf("(%s * %s)", p.Left, p.Right) }
func (p PairValue) String() string { return fmt.Sprintf("(%s, %s)", p.Left, p.Right) }

// EmptyRecordType / EmptyRecordValue terminate a right-nested field chain.
type EmptyRecordType struct{}
type EmptyRecordValue struct{}

func (EmptyRecordType) termNode()  {}
func (EmptyRecordValue) termNode() {}
func (EmptyRecordType) String() string  { return "{}" }
func (EmptyRecordValue) String() string { return "{=}" }

// FieldType / FieldValue extend a record type/value chain by one field.
type FieldType struct {
	Name string
	Type Term
	Rest Term
}
type FieldValue struct {
	Name  string
	Value Term
	Rest  Term
}

func (FieldType) termNode()  {}
func (FieldValue) termNode() {}
func (f FieldType) String() string  { return fmt.Sprintf("{%s:%s | %s}", f.Name, f.Type, f.Rest) }
func (f FieldValue) String() string { return fmt.Sprintf("{%s=%s | %s}", f.Name, f.Value, f.Rest) }

// RecordSelector projects a named field out of a record value.
type RecordSelector struct {
	Record Term
	Name   string
}

func (RecordSelector) termNode() {}
func (r RecordSelector) String() string { return fmt.Sprintf("%s.%s", r.Record, r.Name) }

func appString(head string, paramSets ...[]Term) string {
	var b strings.Builder
	b.WriteString(head)
	for _, set := range paramSets {
		for _, a := range set {
			b.WriteString(" ")
			b.WriteString(a.String())
		}
	}
	return b.String()
}
