// Package ident provides qualified names, field names, and universe sorts.
package ident

import "fmt"

// Ident is a qualified name: a module path and a local name. Two Idents
// are equal iff both components are equal.
type Ident struct {
	Module string
	Name   string
}

// New builds a qualified Ident.
func New(module, name string) Ident {
	return Ident{Module: module, Name: name}
}

// Local builds an Ident with no module qualification.
func Local(name string) Ident {
	return Ident{Name: name}
}

func (id Ident) String() string {
	if id.Module == "" {
		return id.Name
	}
	return id.Module + "." + id.Name
}

// Less gives Ident a total order: by module, then by name. The engine does
// not sort with it; a recursor's missing cases are reported by
// tcerr.NotFullyAppliedRec in the datatype's constructor declaration order.
func (id Ident) Less(other Ident) bool {
	if id.Module != other.Module {
		return id.Module < other.Module
	}
	return id.Name < other.Name
}

// Field is a record field name.
type Field string

func (f Field) String() string { return string(f) }

// Sort is a predicative universe level. Sort(0) is the distinguished
// impredicative-codomain sort, Prop.
type Sort uint32

// Prop is the impredicative sort used for the codomain rule in Pi (§4.7).
const Prop Sort = 0

// SortOf returns the sort one level above u: Sort(u) : Sort(SortOf(u)).
func SortOf(u Sort) Sort {
	return u + 1
}

// Max returns the larger of two sorts.
func Max(a, b Sort) Sort {
	if a > b {
		return a
	}
	return b
}

// IsProp reports whether u is the impredicative sort.
func (u Sort) IsProp() bool { return u == Prop }

// Leq is universe cumulativity: Sort(a) is a subtype of Sort(b) iff a <= b.
func (u Sort) Leq(v Sort) bool { return u <= v }

func (u Sort) String() string { return fmt.Sprintf("%d", uint32(u)) }
