// Package env provides the module environment: lookup of datatypes,
// constructors and global definitions by qualified name (SPEC_FULL.md §3
// "Datatype record" / "Constructor record", §6 findDataType/findCtor/
// typeOfGlobal). The environment is read-only during inference (§5).
package env

import (
	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/term"
)

// DataType is the signature of an inductive datatype: a fully quantified
// Pi over params then indices, ending in a Sort.
type DataType struct {
	Name        ident.Ident
	Type        term.Term // Pi params. Pi indices. Sort(_)
	NumParams   int
	NumIndices  int
	Ctors       []ident.Ident
	IsPrimitive bool
}

// Ctor is the signature of a datatype constructor: a closed Pi over
// params then args, whose body applies the owning datatype.
type Ctor struct {
	Name      ident.Ident
	Type      term.Term
	DataType  ident.Ident
	NumParams int
	NumArgs   int
}

// Environment is the read-only collaborator the engine consults to
// resolve datatypes, constructors and global definitions, and to build
// the schematic types used to check motives and recursor cases (§6).
type Environment interface {
	FindDataType(id ident.Ident) (*DataType, bool)
	FindCtor(id ident.Ident) (*Ctor, bool)
	TypeOfGlobal(id ident.Ident) (term.Term, bool)

	// CtorsOf returns every constructor belonging to a datatype, in
	// declaration order — used by the recursor's case-set check (§4.7.5).
	CtorsOf(dt *DataType) []*Ctor

	// AllowedElimSort implements the elimination-sort discipline of
	// §4.7.4: true unconditionally when sRet is not Prop; for Prop
	// targets, true only when the datatype is "small enough" to
	// eliminate propositionally (here: at most one constructor with no
	// recursive arguments of the same datatype, i.e. a subsingleton).
	AllowedElimSort(dt *DataType, sRet ident.Sort) bool
}

// Env is the concrete, in-memory Environment used by tests, the CLI and
// the YAML loader (SPEC_FULL.md §C.1).
type Env struct {
	dataTypes map[ident.Ident]*DataType
	ctors     map[ident.Ident]*Ctor
	globals   map[ident.Ident]term.Term
}

// New creates an empty environment.
func New() *Env {
	return &Env{
		dataTypes: make(map[ident.Ident]*DataType),
		ctors:     make(map[ident.Ident]*Ctor),
		globals:   make(map[ident.Ident]term.Term),
	}
}

func (e *Env) AddDataType(dt *DataType) { e.dataTypes[dt.Name] = dt }
func (e *Env) AddCtor(c *Ctor)          { e.ctors[c.Name] = c }
func (e *Env) AddGlobal(id ident.Ident, ty term.Term) { e.globals[id] = ty }

func (e *Env) FindDataType(id ident.Ident) (*DataType, bool) {
	dt, ok := e.dataTypes[id]
	return dt, ok
}

func (e *Env) FindCtor(id ident.Ident) (*Ctor, bool) {
	c, ok := e.ctors[id]
	return c, ok
}

func (e *Env) TypeOfGlobal(id ident.Ident) (term.Term, bool) {
	ty, ok := e.globals[id]
	return ty, ok
}

func (e *Env) CtorsOf(dt *DataType) []*Ctor {
	out := make([]*Ctor, 0, len(dt.Ctors))
	for _, id := range dt.Ctors {
		if c, ok := e.ctors[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (e *Env) AllowedElimSort(dt *DataType, sRet ident.Sort) bool {
	if !sRet.IsProp() {
		return true
	}
	ctors := e.CtorsOf(dt)
	if len(ctors) > 1 {
		return false
	}
	if len(ctors) == 1 && ctors[0].NumArgs > 0 {
		// A single constructor with arguments could still be a
		// subsingleton if none of its arguments mention the datatype
		// itself; the core treats any recursive argument as
		// disqualifying, which is the conservative (always-sound) call.
		if ctorHasRecursiveArg(ctors[0], dt.Name) {
			return false
		}
	}
	return true
}

func ctorHasRecursiveArg(c *Ctor, dataName ident.Ident) bool {
	found := false
	var walk func(t term.Term)
	walk = func(t term.Term) {
		if found {
			return
		}
		switch n := term.Unwrap(t).(type) {
		case term.Pi:
			if dt, ok := term.Unwrap(n.Type).(term.DataTypeApp); ok && dt.Data == dataName.String() {
				found = true
				return
			}
			walk(n.Body)
		}
	}
	walk(c.Type)
	return found
}
