// Package tcerr is the closed error taxonomy of SPEC_FULL.md §A.1 / spec
// §7: one exported type per failure kind, each built by a New<Kind>Error
// constructor in the same idiom as the retrieval pack's
// typesystem.NewSymbolNotFoundError, plus two wrapper kinds (ErrorPos,
// ErrorCtx) that attach a source position or a variable-in-scope context
// to an inner error without losing it to errors.As/errors.Is.
package tcerr

import (
	"fmt"

	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/term"
)

// NotSort is raised when a term expected to be a universe literal is not.
type NotSort struct {
	Got term.Term
}

func (e *NotSort) Error() string { return fmt.Sprintf("expected a sort, got %s", e.Got) }

func NewNotSortError(got term.Term) *NotSort { return &NotSort{Got: got} }

// NotFuncType is raised when the inferred type of an application's head is
// not (after WHNF) a Pi.
type NotFuncType struct {
	Got term.Term
}

func (e *NotFuncType) Error() string { return fmt.Sprintf("expected a function type, got %s", e.Got) }

func NewNotFuncTypeError(got term.Term) *NotFuncType { return &NotFuncType{Got: got} }

// NotTupleType is raised when a pair projection is applied to a term whose
// type is not a PairType.
type NotTupleType struct {
	Got term.Term
}

func (e *NotTupleType) Error() string { return fmt.Sprintf("expected a tuple type, got %s", e.Got) }

func NewNotTupleTypeError(got term.Term) *NotTupleType { return &NotTupleType{Got: got} }

// BadTupleIndex is raised by a tuple projection that does not name fst/snd
// of an actual PairValue/PairType.
type BadTupleIndex struct {
	Index int
}

func (e *BadTupleIndex) Error() string { return fmt.Sprintf("bad tuple index: %d", e.Index) }

func NewBadTupleIndexError(i int) *BadTupleIndex { return &BadTupleIndex{Index: i} }

// NotStringLit is raised when a string-typed position receives a non-literal.
type NotStringLit struct {
	Got term.Term
}

func (e *NotStringLit) Error() string { return fmt.Sprintf("expected a string literal, got %s", e.Got) }

func NewNotStringLitError(got term.Term) *NotStringLit { return &NotStringLit{Got: got} }

// NotRecordType is raised when a field selector is applied to a term whose
// type is not a FieldType/EmptyRecordType chain.
type NotRecordType struct {
	Got term.Term
}

func (e *NotRecordType) Error() string { return fmt.Sprintf("expected a record type, got %s", e.Got) }

func NewNotRecordTypeError(got term.Term) *NotRecordType { return &NotRecordType{Got: got} }

// BadRecordField is raised when a record selector names a field absent
// from the record's type.
type BadRecordField struct {
	Field ident.Field
}

func (e *BadRecordField) Error() string { return fmt.Sprintf("no such field: %s", e.Field) }

func NewBadRecordFieldError(f ident.Field) *BadRecordField { return &BadRecordField{Field: f} }

// DanglingVar is raised when a LocalVar's index escapes the surrounding
// typing context. Treated as a recoverable error, not a panic, so a
// malformed term never crashes the engine.
type DanglingVar struct {
	Index int
}

func (e *DanglingVar) Error() string { return fmt.Sprintf("dangling variable #%d", e.Index) }

func NewDanglingVarError(i int) *DanglingVar { return &DanglingVar{Index: i} }

// UnboundName is raised when a GlobalDef name, or one of the globals the
// literal rules rely on (Nat, String, Vec), cannot be resolved in the
// module environment. Unknown datatypes and constructors are reported as
// NoSuchDataType and NoSuchCtor.
type UnboundName struct {
	Name ident.Ident
}

func (e *UnboundName) Error() string { return fmt.Sprintf("unbound name: %s", e.Name) }

func NewUnboundNameError(id ident.Ident) *UnboundName { return &UnboundName{Name: id} }

// SubtypeFailure is raised when isSubtype(got, want) fails.
type SubtypeFailure struct {
	Got, Want term.Term
}

func (e *SubtypeFailure) Error() string {
	return fmt.Sprintf("not a subtype: %s is not a subtype of %s", e.Got, e.Want)
}

func NewSubtypeFailureError(got, want term.Term) *SubtypeFailure {
	return &SubtypeFailure{Got: got, Want: want}
}

// EmptyVectorLit is raised by an ArrayValue literal with no declared
// element type and no elements to infer one from.
type EmptyVectorLit struct{}

func (e *EmptyVectorLit) Error() string { return "empty vector literal with no element type" }

func NewEmptyVectorLitError() *EmptyVectorLit { return &EmptyVectorLit{} }

// NoSuchDataType is raised when findDataType fails to resolve a DataTypeApp.
type NoSuchDataType struct {
	Name ident.Ident
}

func (e *NoSuchDataType) Error() string { return fmt.Sprintf("no such datatype: %s", e.Name) }

func NewNoSuchDataTypeError(id ident.Ident) *NoSuchDataType { return &NoSuchDataType{Name: id} }

// NoSuchCtor is raised when findCtor fails to resolve a CtorApp.
type NoSuchCtor struct {
	Name ident.Ident
}

func (e *NoSuchCtor) Error() string { return fmt.Sprintf("no such constructor: %s", e.Name) }

func NewNoSuchCtorError(id ident.Ident) *NoSuchCtor { return &NoSuchCtor{Name: id} }

// NotFullyAppliedRec is raised when a RecursorApp's case set does not cover
// every constructor of the target datatype. Duplicate and extra cases are
// reported as MalformedRecursor.
type NotFullyAppliedRec struct {
	Data    ident.Ident
	Missing []ident.Ident
}

func (e *NotFullyAppliedRec) Error() string {
	return fmt.Sprintf("recursor on %s: missing cases: %v", e.Data, e.Missing)
}

func NewNotFullyAppliedRecError(data ident.Ident, missing []ident.Ident) *NotFullyAppliedRec {
	return &NotFullyAppliedRec{Data: data, Missing: missing}
}

// BadParamsOrArgsLength is raised when a DataTypeApp/CtorApp supplies the
// wrong number of parameters or indices/arguments for its declared arity.
type BadParamsOrArgsLength struct {
	IsDataType bool
	Name       ident.Ident
	WantParams int
	GotParams  int
	WantArgs   int
	GotArgs    int
}

func (e *BadParamsOrArgsLength) Error() string {
	kind := "constructor"
	if e.IsDataType {
		kind = "datatype"
	}
	return fmt.Sprintf("%s %s: want %d params / %d args, got %d params / %d args",
		kind, e.Name, e.WantParams, e.WantArgs, e.GotParams, e.GotArgs)
}

func NewBadParamsOrArgsLengthError(isDataType bool, id ident.Ident, wantParams, gotParams, wantArgs, gotArgs int) *BadParamsOrArgsLength {
	return &BadParamsOrArgsLength{
		IsDataType: isDataType,
		Name:       id,
		WantParams: wantParams,
		GotParams:  gotParams,
		WantArgs:   wantArgs,
		GotArgs:    gotArgs,
	}
}

// BadConstType is raised when a Constant's checked definition type is not
// a subtype of its declared type.
type BadConstType struct {
	Name     string
	Inferred term.Term
	Declared term.Term
}

func (e *BadConstType) Error() string {
	return fmt.Sprintf("constant %s: inferred type %s is not a subtype of declared type %s", e.Name, e.Inferred, e.Declared)
}

func NewBadConstTypeError(name string, inferred, declared term.Term) *BadConstType {
	return &BadConstType{Name: name, Inferred: inferred, Declared: declared}
}

// MalformedRecursor is raised by structural failures of a RecursorApp that
// aren't captured by the more specific kinds above (e.g. a motive whose
// type does not conclude in a sort, a duplicate or extra constructor case,
// a disallowed propositional elimination).
type MalformedRecursor struct {
	Term   term.Term
	Reason string
}

func (e *MalformedRecursor) Error() string {
	return fmt.Sprintf("malformed recursor application: %s (%s)", e.Reason, e.Term)
}

func NewMalformedRecursorError(t term.Term, reason string) *MalformedRecursor {
	return &MalformedRecursor{Term: t, Reason: reason}
}

// DeclError reports a problem with a top-level declaration outside the
// per-subterm inference rules (e.g. a datatype signature that does not end
// in a Sort).
type DeclError struct {
	Name   ident.Ident
	Reason string
}

func (e *DeclError) Error() string { return fmt.Sprintf("declaration %s: %s", e.Name, e.Reason) }

func NewDeclError(name ident.Ident, reason string) *DeclError {
	return &DeclError{Name: name, Reason: reason}
}

// Pos is a source position attached to an error by ErrorPos. The kernel
// itself never constructs one (§5: it is position-agnostic); a caller that
// tracks source spans wraps kernel errors with one on the way out.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// ErrorPos wraps an inner error with the source position it occurred at.
type ErrorPos struct {
	At    Pos
	Inner error
}

func (e *ErrorPos) Error() string  { return fmt.Sprintf("at %s: %s", e.At, e.Inner) }
func (e *ErrorPos) Unwrap() error  { return e.Inner }

func NewErrorPos(at Pos, inner error) *ErrorPos { return &ErrorPos{At: at, Inner: inner} }

// ErrorCtx wraps an inner error with the name and type of the variable in
// scope when it occurred, mirroring the retrieval pack's errUnifyContext
// wrapping idiom (internal/typesystem/unify.go).
type ErrorCtx struct {
	VarName string
	VarType term.Term
	Inner   error
}

func (e *ErrorCtx) Error() string {
	return fmt.Sprintf("in scope of %s:%s: %s", e.VarName, e.VarType, e.Inner)
}
func (e *ErrorCtx) Unwrap() error { return e.Inner }

func NewErrorCtx(varName string, varType term.Term, inner error) *ErrorCtx {
	return &ErrorCtx{VarName: varName, VarType: varType, Inner: inner}
}
