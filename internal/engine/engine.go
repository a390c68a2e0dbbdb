// Package engine implements bidirectional type inference over the term
// representation of internal/term: the rules of spec §4.6–§4.9 threaded
// through a single-threaded, synchronous Ctx (no cancellation, no I/O —
// §5). There is no monad here in the literal sense; Go's idiom for a
// threaded inference context is a struct with methods, mirroring the
// retrieval pack's walker-style analyzer (internal/analyzer), so askCtx/
// askModName/withVar/withCtx/atPos/throw become Ctx fields and methods
// instead of monadic primitives.
package engine

import (
	"fmt"

	"github.com/vellum-lang/vellum/internal/env"
	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/reduce"
	"github.com/vellum-lang/vellum/internal/subst"
	"github.com/vellum-lang/vellum/internal/tcerr"
	"github.com/vellum-lang/vellum/internal/term"
)

// Binding is one entry of the typing context: bindings[0] is the most
// recently introduced variable, referred to as LocalVar(0) in its own
// scope (§4.1 "de Bruijn context").
type Binding struct {
	Name string
	Type term.Term // always in WHNF
}

// Ctx is the inference context: the term factory and module environment
// (read-only collaborators), the optional current module name used to
// resolve unqualified GlobalDef/DataTypeApp/CtorApp names, the typing
// context, and a memo table valid only for the current context (§4.6
// "Memoization").
type Ctx struct {
	F       *term.Factory
	Env     env.Environment
	ModName string

	bindings []Binding
	memo     map[int]term.Term
}

// NewCtx creates an inference context with an empty typing context.
func NewCtx(f *term.Factory, e env.Environment, modName string) *Ctx {
	return &Ctx{F: f, Env: e, ModName: modName, memo: make(map[int]term.Term)}
}

// AskCtx returns the current typing context, innermost binding first.
func (c *Ctx) AskCtx() []Binding { return c.bindings }

// AskModName returns the module name new GlobalDef/DataTypeApp/CtorApp
// references are tried against before falling back to an unqualified
// lookup.
func (c *Ctx) AskModName() string { return c.ModName }

// WithVar runs body with name:ty pushed onto the context as LocalVar(0)
// (shifting every existing binding up by one reference depth implicitly,
// since they are addressed by position). The memo table is cleared for
// the duration of body and restored on return, since a cached inferred
// type is only valid for the context it was computed in. An error
// escaping body is wrapped with ErrorCtx so the failure carries the
// binder stack it occurred under.
func (c *Ctx) WithVar(name string, ty term.Term, body func() (term.Term, error)) (term.Term, error) {
	savedBindings, savedMemo := c.bindings, c.memo
	c.bindings = append([]Binding{{Name: name, Type: ty}}, savedBindings...)
	c.memo = make(map[int]term.Term)
	result, err := body()
	c.bindings, c.memo = savedBindings, savedMemo
	if err != nil {
		return nil, tcerr.NewErrorCtx(name, ty, err)
	}
	return result, nil
}

// WithCtx runs body with the entire typing context replaced by ctx
// (innermost first), used by ScTypeCheckInCtx to seed inference under a
// caller-supplied context.
func (c *Ctx) WithCtx(ctx []Binding, body func() (term.Term, error)) (term.Term, error) {
	savedBindings, savedMemo := c.bindings, c.memo
	c.bindings = ctx
	c.memo = make(map[int]term.Term)
	result, err := body()
	c.bindings, c.memo = savedBindings, savedMemo
	return result, err
}

// AtPos wraps an error escaping body with the source position pos,
// unless body's error already carries one — the innermost atPos call
// wins, per §9's ErrorPos idempotence policy.
func AtPos(pos tcerr.Pos, body func() (term.Term, error)) (term.Term, error) {
	result, err := body()
	if err == nil {
		return result, nil
	}
	if hasErrorPos(err) {
		return nil, err
	}
	return nil, tcerr.NewErrorPos(pos, err)
}

func hasErrorPos(err error) bool {
	for err != nil {
		if _, ok := err.(*tcerr.ErrorPos); ok {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func (c *Ctx) resolveGlobal(name string) (term.Term, bool) {
	if c.ModName != "" {
		if ty, ok := c.Env.TypeOfGlobal(ident.New(c.ModName, name)); ok {
			return ty, true
		}
	}
	return c.Env.TypeOfGlobal(ident.Local(name))
}

func (c *Ctx) resolveDataType(name string) (*env.DataType, bool) {
	if c.ModName != "" {
		if dt, ok := c.Env.FindDataType(ident.New(c.ModName, name)); ok {
			return dt, true
		}
	}
	return c.Env.FindDataType(ident.Local(name))
}

func (c *Ctx) resolveCtor(name string) (*env.Ctor, bool) {
	if c.ModName != "" {
		if ct, ok := c.Env.FindCtor(ident.New(c.ModName, name)); ok {
			return ct, true
		}
	}
	return c.Env.FindCtor(ident.Local(name))
}

// Infer is the entry point of §4.7: type-checks t in the current context
// and returns its type in WHNF. Results are memoized per shared-node
// index, valid only for the lifetime of the current context (§4.6).
func (c *Ctx) Infer(t term.Term) (term.Term, error) {
	idx, shared := term.Index(t)
	if shared {
		if cached, ok := c.memo[idx]; ok {
			return cached, nil
		}
	}
	ty, err := c.inferNode(t)
	if err != nil {
		return nil, err
	}
	tyW := reduce.TypeCheckWhnf(c.F, c.Env, ty)
	if shared {
		c.memo[idx] = tyW
	}
	return tyW, nil
}

func (c *Ctx) inferNode(t term.Term) (term.Term, error) {
	switch x := term.Unwrap(t).(type) {

	case term.LocalVar:
		if x.Index >= len(c.bindings) {
			return nil, tcerr.NewDanglingVarError(x.Index)
		}
		return subst.IncVars(c.F, 0, x.Index+1, c.bindings[x.Index].Type), nil

	case term.GlobalDef:
		ty, ok := c.resolveGlobal(x.Name)
		if !ok {
			return nil, tcerr.NewUnboundNameError(ident.Local(x.Name))
		}
		return ty, nil

	case term.App:
		funTy, err := c.Infer(x.Fun)
		if err != nil {
			return nil, err
		}
		argTy, err := c.Infer(x.Arg)
		if err != nil {
			return nil, err
		}
		return ApplyPiTyped(c.F, c.Env, funTy, Typed{Value: x.Arg, Type: argTy})

	case term.Lambda:
		domTy, err := c.Infer(x.Type)
		if err != nil {
			return nil, err
		}
		if _, err := EnsureSort(domTy); err != nil {
			return nil, err
		}
		domW := reduce.TypeCheckWhnf(c.F, c.Env, x.Type)
		codTy, err := c.WithVar(x.Name, domW, func() (term.Term, error) { return c.Infer(x.Body) })
		if err != nil {
			return nil, err
		}
		return c.F.Mk(term.Pi{Name: x.Name, Type: domW, Body: codTy}), nil

	case term.Pi:
		domTy, err := c.Infer(x.Type)
		if err != nil {
			return nil, err
		}
		s1, err := EnsureSort(domTy)
		if err != nil {
			return nil, err
		}
		domW := reduce.TypeCheckWhnf(c.F, c.Env, x.Type)
		codTy, err := c.WithVar(x.Name, domW, func() (term.Term, error) { return c.Infer(x.Body) })
		if err != nil {
			return nil, err
		}
		s2, err := EnsureSort(codTy)
		if err != nil {
			return nil, err
		}
		if s2.IsProp() {
			return c.F.MkSort(uint32(ident.Prop)), nil
		}
		return c.F.MkSort(uint32(ident.Max(s1, s2))), nil

	case term.Sort:
		return c.F.MkSort(uint32(ident.SortOf(ident.Sort(x.Level)))), nil

	case term.Constant:
		declTy, err := c.Infer(x.DeclaredType)
		if err != nil {
			return nil, err
		}
		if _, err := EnsureSort(declTy); err != nil {
			return nil, err
		}
		defTy, err := c.Infer(x.Definition)
		if err != nil {
			return nil, err
		}
		if !IsSubtype(c.F, c.Env, defTy, x.DeclaredType) {
			return nil, tcerr.NewBadConstTypeError(x.Name, defTy, x.DeclaredType)
		}
		return x.DeclaredType, nil

	case term.NatLit:
		ty, ok := c.resolveGlobal("Nat")
		if !ok {
			return nil, tcerr.NewUnboundNameError(ident.Local("Nat"))
		}
		return ty, nil

	case term.StringLit:
		ty, ok := c.resolveGlobal("String")
		if !ok {
			return nil, tcerr.NewUnboundNameError(ident.Local("String"))
		}
		return ty, nil

	case term.ExtCns:
		return x.Type, nil

	case term.UnitType:
		return c.F.MkSort(0), nil

	case term.UnitValue:
		return c.F.MkUnitType(), nil

	case term.PairType:
		lTy, err := c.Infer(x.Left)
		if err != nil {
			return nil, err
		}
		rTy, err := c.Infer(x.Right)
		if err != nil {
			return nil, err
		}
		ls, err := EnsureSort(lTy)
		if err != nil {
			return nil, err
		}
		rs, err := EnsureSort(rTy)
		if err != nil {
			return nil, err
		}
		return c.F.MkSort(uint32(ident.Max(ls, rs))), nil

	case term.PairValue:
		lTy, err := c.Infer(x.Left)
		if err != nil {
			return nil, err
		}
		rTy, err := c.Infer(x.Right)
		if err != nil {
			return nil, err
		}
		return c.F.MkPairType(lTy, rTy), nil

	case term.PairLeft:
		pTy, err := c.Infer(x.Pair)
		if err != nil {
			return nil, err
		}
		pt, ok := term.Unwrap(pTy).(term.PairType)
		if !ok {
			return nil, tcerr.NewNotTupleTypeError(pTy)
		}
		return pt.Left, nil

	case term.PairRight:
		pTy, err := c.Infer(x.Pair)
		if err != nil {
			return nil, err
		}
		pt, ok := term.Unwrap(pTy).(term.PairType)
		if !ok {
			return nil, tcerr.NewNotTupleTypeError(pTy)
		}
		return pt.Right, nil

	case term.EmptyRecordType:
		return c.F.MkSort(0), nil

	case term.EmptyRecordValue:
		return c.F.Mk(term.EmptyRecordType{}), nil

	case term.FieldType:
		fTy, err := c.Infer(x.Type)
		if err != nil {
			return nil, err
		}
		s1, err := EnsureSort(fTy)
		if err != nil {
			return nil, err
		}
		restTy, err := c.Infer(x.Rest)
		if err != nil {
			return nil, err
		}
		s2, err := EnsureSort(restTy)
		if err != nil {
			return nil, err
		}
		return c.F.MkSort(uint32(ident.Max(s1, s2))), nil

	case term.FieldValue:
		vTy, err := c.Infer(x.Value)
		if err != nil {
			return nil, err
		}
		restTy, err := c.Infer(x.Rest)
		if err != nil {
			return nil, err
		}
		return c.F.Mk(term.FieldType{Name: x.Name, Type: vTy, Rest: restTy}), nil

	case term.RecordSelector:
		rTy, err := c.Infer(x.Record)
		if err != nil {
			return nil, err
		}
		return selectFieldType(rTy, x.Name)

	case term.ArrayValue:
		return c.inferArrayValue(x)

	case term.DataTypeApp:
		return c.inferDataTypeApp(x)

	case term.CtorApp:
		return c.inferCtorApp(x)

	case term.RecursorApp:
		return c.inferRecursor(x)

	case term.Let:
		return c.inferLet(x)

	default:
		return nil, tcerr.NewMalformedRecursorError(t, fmt.Sprintf("unhandled term kind %T", x))
	}
}

func selectFieldType(t term.Term, name string) (term.Term, error) {
	switch n := term.Unwrap(t).(type) {
	case term.FieldType:
		if n.Name == name {
			return n.Type, nil
		}
		return selectFieldType(n.Rest, name)
	case term.EmptyRecordType:
		return nil, tcerr.NewBadRecordFieldError(ident.Field(name))
	default:
		return nil, tcerr.NewNotRecordTypeError(t)
	}
}

func (c *Ctx) inferArrayValue(x term.ArrayValue) (term.Term, error) {
	elemTy, err := c.Infer(x.ElemType)
	if err != nil {
		return nil, err
	}
	if _, err := EnsureSort(elemTy); err != nil {
		return nil, err
	}
	elemW := reduce.TypeCheckWhnf(c.F, c.Env, x.ElemType)
	for _, v := range x.Elems {
		vTy, err := c.Infer(v)
		if err != nil {
			return nil, err
		}
		if !IsSubtype(c.F, c.Env, vTy, elemW) {
			return nil, tcerr.NewSubtypeFailureError(vTy, elemW)
		}
	}
	if _, ok := c.resolveGlobal("Vec"); !ok {
		return nil, tcerr.NewUnboundNameError(ident.Local("Vec"))
	}
	vecRef := c.F.Mk(term.GlobalDef{Name: "Vec"})
	return term.ApplyAll(c.F, vecRef, []term.Term{c.F.MkNatLit(uint64(len(x.Elems))), elemW}), nil
}

// Typed pairs an already-inferred term with its type, the unit ApplyPiTyped
// folds over (§4.8).
type Typed struct {
	Value term.Term
	Type  term.Term
}

// ApplyPiTyped applies a Pi-typed function to a typed argument: checks
// funTy is (after WHNF) a Pi, that argTyped.Type is a subtype of the
// domain, and returns the codomain instantiated with argTyped.Value
// (§4.8 "applyPiTyped").
func ApplyPiTyped(f *term.Factory, e env.Environment, funTy term.Term, argTyped Typed) (term.Term, error) {
	funTyW := reduce.TypeCheckWhnf(f, e, funTy)
	pi, ok := term.Unwrap(funTyW).(term.Pi)
	if !ok {
		return nil, tcerr.NewNotFuncTypeError(funTyW)
	}
	if !IsSubtype(f, e, argTyped.Type, pi.Type) {
		return nil, tcerr.NewSubtypeFailureError(argTyped.Type, pi.Type)
	}
	return reduce.TypeCheckWhnf(f, e, subst.InstantiateVarList(f, 0, []term.Term{argTyped.Value}, pi.Body)), nil
}

func (c *Ctx) foldApplyPiTyped(funTy term.Term, args []term.Term) (term.Term, error) {
	cur := funTy
	for _, a := range args {
		aTy, err := c.Infer(a)
		if err != nil {
			return nil, err
		}
		next, err := ApplyPiTyped(c.F, c.Env, cur, Typed{Value: a, Type: aTy})
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (c *Ctx) inferDataTypeApp(x term.DataTypeApp) (term.Term, error) {
	dt, ok := c.resolveDataType(x.Data)
	if !ok {
		return nil, tcerr.NewNoSuchDataTypeError(ident.Local(x.Data))
	}
	if len(x.Params) != dt.NumParams || len(x.Indices) != dt.NumIndices {
		return nil, tcerr.NewBadParamsOrArgsLengthError(true, dt.Name, dt.NumParams, len(x.Params), dt.NumIndices, len(x.Indices))
	}
	args := append(append([]term.Term{}, x.Params...), x.Indices...)
	return c.foldApplyPiTyped(dt.Type, args)
}

func (c *Ctx) inferCtorApp(x term.CtorApp) (term.Term, error) {
	ctor, ok := c.resolveCtor(x.Ctor)
	if !ok {
		return nil, tcerr.NewNoSuchCtorError(ident.Local(x.Ctor))
	}
	if len(x.Params) != ctor.NumParams || len(x.Args) != ctor.NumArgs {
		return nil, tcerr.NewBadParamsOrArgsLengthError(false, ctor.Name, ctor.NumParams, len(x.Params), ctor.NumArgs, len(x.Args))
	}
	args := append(append([]term.Term{}, x.Params...), x.Args...)
	return c.foldApplyPiTyped(ctor.Type, args)
}

func (c *Ctx) inferLet(x term.Let) (term.Term, error) {
	// All defs are simultaneously in scope over each other's type and value
	// (term.Let's doc comment); the typing context grows by one binding per
	// def before the body is checked.
	var run func(i int) (term.Term, error)
	run = func(i int) (term.Term, error) {
		if i == len(x.Defs) {
			return c.Infer(x.Body)
		}
		d := x.Defs[i]
		declTy, err := c.Infer(d.Type)
		if err != nil {
			return nil, err
		}
		if _, err := EnsureSort(declTy); err != nil {
			return nil, err
		}
		declW := reduce.TypeCheckWhnf(c.F, c.Env, d.Type)
		valTy, err := c.Infer(d.Value)
		if err != nil {
			return nil, err
		}
		if !IsSubtype(c.F, c.Env, valTy, declW) {
			return nil, tcerr.NewSubtypeFailureError(valTy, declW)
		}
		return c.WithVar(d.Name, declW, func() (term.Term, error) { return run(i + 1) })
	}
	return run(0)
}

func motiveConclusionSort(f *term.Factory, e env.Environment, r term.Term, t term.Term) (ident.Sort, error) {
	cur := reduce.TypeCheckWhnf(f, e, t)
	for {
		switch n := term.Unwrap(cur).(type) {
		case term.Pi:
			cur = reduce.TypeCheckWhnf(f, e, n.Body)
		case term.Sort:
			return ident.Sort(n.Level), nil
		default:
			return 0, tcerr.NewMalformedRecursorError(r, "motive does not conclude in a sort")
		}
	}
}

// inferRecursor implements the recursor's 7-step check of §4.7:
// (1) resolve the datatype and check params/indices arity, (2) check
// params++indices against the datatype's own signature, (3) check the
// motive ends in a sort and is a subtype of the schematic motive type,
// (4) enforce the elimination-sort discipline, (5) check every case's
// value against the required per-constructor type and that the case set
// exactly covers the datatype's constructors, (6) check the scrutinee's
// type, (7) return the motive applied to indices++scrutinee.
func (c *Ctx) inferRecursor(r term.RecursorApp) (term.Term, error) {
	rTerm := c.F.Mk(r)

	dt, ok := c.resolveDataType(r.Data)
	if !ok {
		return nil, tcerr.NewNoSuchDataTypeError(ident.Local(r.Data))
	}
	if len(r.Params) != dt.NumParams || len(r.Indices) != dt.NumIndices {
		return nil, tcerr.NewBadParamsOrArgsLengthError(true, dt.Name, dt.NumParams, len(r.Params), dt.NumIndices, len(r.Indices))
	}

	allArgs := append(append([]term.Term{}, r.Params...), r.Indices...)
	if _, err := c.foldApplyPiTyped(dt.Type, allArgs); err != nil {
		return nil, err
	}

	motiveTy, err := c.Infer(r.Motive)
	if err != nil {
		return nil, err
	}
	sRet, err := motiveConclusionSort(c.F, c.Env, rTerm, motiveTy)
	if err != nil {
		return nil, err
	}
	motiveReqTy, err := env.RecursorMotiveType(c.F, dt, r.Params, sRet)
	if err != nil {
		return nil, tcerr.NewMalformedRecursorError(rTerm, err.Error())
	}
	if !IsSubtype(c.F, c.Env, motiveTy, motiveReqTy) {
		return nil, tcerr.NewSubtypeFailureError(motiveTy, motiveReqTy)
	}

	if !c.Env.AllowedElimSort(dt, sRet) {
		return nil, tcerr.NewMalformedRecursorError(rTerm, "disallowed propositional elimination")
	}

	required, err := env.RecursorElimTypes(c.F, c.Env, dt, r.Params, r.Motive)
	if err != nil {
		return nil, tcerr.NewMalformedRecursorError(rTerm, err.Error())
	}
	seen := make(map[string]bool, len(r.Cases))
	for _, cs := range r.Cases {
		if seen[cs.Ctor] {
			return nil, tcerr.NewMalformedRecursorError(rTerm, fmt.Sprintf("duplicate case for constructor %s", cs.Ctor))
		}
		seen[cs.Ctor] = true
		reqTy, ok := required[cs.Ctor]
		if !ok {
			return nil, tcerr.NewMalformedRecursorError(rTerm, fmt.Sprintf("extra constructor: %s", cs.Ctor))
		}
		caseTy, err := c.Infer(cs.Value)
		if err != nil {
			return nil, err
		}
		if !IsSubtype(c.F, c.Env, caseTy, reqTy) {
			return nil, tcerr.NewSubtypeFailureError(caseTy, reqTy)
		}
	}
	var missing []ident.Ident
	for _, ctorID := range dt.Ctors {
		if !seen[ctorID.String()] {
			missing = append(missing, ctorID)
		}
	}
	if len(missing) > 0 {
		return nil, tcerr.NewNotFullyAppliedRecError(dt.Name, missing)
	}

	scrutTy, err := c.Infer(r.Scrutinee)
	if err != nil {
		return nil, err
	}
	wantScrutTy := c.F.Mk(term.DataTypeApp{Data: dt.Name.String(), Params: r.Params, Indices: r.Indices})
	if !IsSubtype(c.F, c.Env, scrutTy, wantScrutTy) {
		return nil, tcerr.NewSubtypeFailureError(scrutTy, wantScrutTy)
	}

	motiveArgs := append(append([]term.Term{}, r.Indices...), r.Scrutinee)
	return term.ApplyAll(c.F, r.Motive, motiveArgs), nil
}

// EnsureSort checks that t (already a WHNF type) is a universe literal
// and returns its level (§4.8 "ensureSort").
func EnsureSort(t term.Term) (ident.Sort, error) {
	s, ok := term.Unwrap(t).(term.Sort)
	if !ok {
		return 0, tcerr.NewNotSortError(t)
	}
	return ident.Sort(s.Level), nil
}

// IsSubtype decides the subtyping preorder of §4.5: Pi is checked
// domain-convertible / codomain-subtype, Sort is cumulative (Leq),
// everything else falls back to convertibility.
func IsSubtype(f *term.Factory, e env.Environment, a, b term.Term) bool {
	aw := reduce.TypeCheckWhnf(f, e, a)
	bw := reduce.TypeCheckWhnf(f, e, b)

	if pa, ok := term.Unwrap(aw).(term.Pi); ok {
		if pb, ok := term.Unwrap(bw).(term.Pi); ok {
			return AreConvertible(f, e, pa.Type, pb.Type) && IsSubtype(f, e, pa.Body, pb.Body)
		}
		return AreConvertible(f, e, aw, bw)
	}
	if sa, ok := term.Unwrap(aw).(term.Sort); ok {
		if sb, ok := term.Unwrap(bw).(term.Sort); ok {
			return ident.Sort(sa.Level).Leq(ident.Sort(sb.Level))
		}
		return AreConvertible(f, e, aw, bw)
	}
	return AreConvertible(f, e, aw, bw)
}

// AreConvertible decides the convertibility relation of §4.4: both sides
// reduced to WHNF, compared up to index equality first, then structural
// recursion over every term constructor (descending through binders by
// comparing their bodies directly, since both are well-scoped in the
// same de Bruijn index space once the shared binder is accounted for).
func AreConvertible(f *term.Factory, e env.Environment, t1, t2 term.Term) bool {
	w1 := reduce.TypeCheckWhnf(f, e, t1)
	w2 := reduce.TypeCheckWhnf(f, e, t2)
	if i1, ok1 := term.Index(w1); ok1 {
		if i2, ok2 := term.Index(w2); ok2 && i1 == i2 {
			return true
		}
	}
	return convertibleNode(f, e, term.Unwrap(w1), term.Unwrap(w2))
}

func convertibleNode(f *term.Factory, e env.Environment, a, b term.Term) bool {
	switch x := a.(type) {
	case term.LocalVar:
		y, ok := b.(term.LocalVar)
		return ok && x.Index == y.Index
	case term.Sort:
		y, ok := b.(term.Sort)
		return ok && x.Level == y.Level
	case term.NatLit:
		y, ok := b.(term.NatLit)
		return ok && x.N == y.N
	case term.StringLit:
		y, ok := b.(term.StringLit)
		return ok && x.Value == y.Value
	case term.GlobalDef:
		y, ok := b.(term.GlobalDef)
		return ok && x.Name == y.Name
	case term.Constant:
		y, ok := b.(term.Constant)
		return ok && x.Name == y.Name
	case term.UnitType:
		_, ok := b.(term.UnitType)
		return ok
	case term.UnitValue:
		_, ok := b.(term.UnitValue)
		return ok
	case term.EmptyRecordType:
		_, ok := b.(term.EmptyRecordType)
		return ok
	case term.EmptyRecordValue:
		_, ok := b.(term.EmptyRecordValue)
		return ok
	case term.Lambda:
		y, ok := b.(term.Lambda)
		return ok && AreConvertible(f, e, x.Type, y.Type) && AreConvertible(f, e, x.Body, y.Body)
	case term.Pi:
		y, ok := b.(term.Pi)
		return ok && AreConvertible(f, e, x.Type, y.Type) && AreConvertible(f, e, x.Body, y.Body)
	case term.App:
		y, ok := b.(term.App)
		return ok && AreConvertible(f, e, x.Fun, y.Fun) && AreConvertible(f, e, x.Arg, y.Arg)
	case term.PairType:
		y, ok := b.(term.PairType)
		return ok && AreConvertible(f, e, x.Left, y.Left) && AreConvertible(f, e, x.Right, y.Right)
	case term.PairValue:
		y, ok := b.(term.PairValue)
		return ok && AreConvertible(f, e, x.Left, y.Left) && AreConvertible(f, e, x.Right, y.Right)
	case term.PairLeft:
		y, ok := b.(term.PairLeft)
		return ok && AreConvertible(f, e, x.Pair, y.Pair)
	case term.PairRight:
		y, ok := b.(term.PairRight)
		return ok && AreConvertible(f, e, x.Pair, y.Pair)
	case term.FieldType:
		y, ok := b.(term.FieldType)
		return ok && x.Name == y.Name && AreConvertible(f, e, x.Type, y.Type) && AreConvertible(f, e, x.Rest, y.Rest)
	case term.FieldValue:
		y, ok := b.(term.FieldValue)
		return ok && x.Name == y.Name && AreConvertible(f, e, x.Value, y.Value) && AreConvertible(f, e, x.Rest, y.Rest)
	case term.RecordSelector:
		y, ok := b.(term.RecordSelector)
		return ok && x.Name == y.Name && AreConvertible(f, e, x.Record, y.Record)
	case term.ArrayValue:
		y, ok := b.(term.ArrayValue)
		return ok && AreConvertible(f, e, x.ElemType, y.ElemType) && convertibleSlice(f, e, x.Elems, y.Elems)
	case term.CtorApp:
		y, ok := b.(term.CtorApp)
		return ok && x.Ctor == y.Ctor && convertibleSlice(f, e, x.Params, y.Params) && convertibleSlice(f, e, x.Args, y.Args)
	case term.DataTypeApp:
		y, ok := b.(term.DataTypeApp)
		return ok && x.Data == y.Data && convertibleSlice(f, e, x.Params, y.Params) && convertibleSlice(f, e, x.Indices, y.Indices)
	case term.RecursorApp:
		y, ok := b.(term.RecursorApp)
		if !ok || x.Data != y.Data || len(x.Cases) != len(y.Cases) {
			return false
		}
		for i, c := range x.Cases {
			if c.Ctor != y.Cases[i].Ctor || !AreConvertible(f, e, c.Value, y.Cases[i].Value) {
				return false
			}
		}
		return convertibleSlice(f, e, x.Params, y.Params) && convertibleSlice(f, e, x.Indices, y.Indices) &&
			AreConvertible(f, e, x.Motive, y.Motive) && AreConvertible(f, e, x.Scrutinee, y.Scrutinee)
	case term.ExtCns:
		y, ok := b.(term.ExtCns)
		return ok && x.VarIx == y.VarIx
	case term.Let:
		y, ok := b.(term.Let)
		if !ok || len(x.Defs) != len(y.Defs) {
			return false
		}
		for i, d := range x.Defs {
			if !AreConvertible(f, e, d.Type, y.Defs[i].Type) || !AreConvertible(f, e, d.Value, y.Defs[i].Value) {
				return false
			}
		}
		return AreConvertible(f, e, x.Body, y.Body)
	default:
		return term.Equal(a, b)
	}
}

func convertibleSlice(f *term.Factory, e env.Environment, a, b []term.Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !AreConvertible(f, e, a[i], b[i]) {
			return false
		}
	}
	return true
}

// CheckSubtype is IsSubtype with a concrete error on failure, exported
// for extension per §6.
func CheckSubtype(f *term.Factory, e env.Environment, got, want term.Term) error {
	if !IsSubtype(f, e, got, want) {
		return tcerr.NewSubtypeFailureError(got, want)
	}
	return nil
}

// ScTypeCheck type-checks t in an empty context against env e, resolving
// unqualified names against modName first if modName is non-empty (§6).
func ScTypeCheck(f *term.Factory, e env.Environment, modName string, t term.Term) (term.Term, error) {
	return NewCtx(f, e, modName).Infer(t)
}

// ScTypeCheckInCtx type-checks t under the caller-supplied typing context
// ctx, innermost binding first (§6).
func ScTypeCheckInCtx(f *term.Factory, e env.Environment, modName string, ctx []Binding, t term.Term) (term.Term, error) {
	c := NewCtx(f, e, modName)
	return c.WithCtx(ctx, func() (term.Term, error) { return c.Infer(t) })
}

// ScConvertible reports whether t1 and t2 are convertible (§6).
func ScConvertible(f *term.Factory, e env.Environment, t1, t2 term.Term) bool {
	return AreConvertible(f, e, t1, t2)
}
