// Package reduce implements weak-head normal form reduction and the
// type-checking simpset of spec §4.3. Whnf needs the module environment
// only to resolve a constructor's argument telescope when reducing a
// RecursorApp whose scrutinee is a CtorApp — it never looks up a GlobalDef's
// definition, so a GlobalDef is always a WHNF-irreducible head here.
package reduce

import (
	"github.com/vellum-lang/vellum/internal/env"
	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/subst"
	"github.com/vellum-lang/vellum/internal/term"
)

// Whnf reduces t until its head is not a redex: beta (App of Lambda), iota
// for pair/record projections, iota for RecursorApp applied to a CtorApp,
// and delta for Constant (its Definition is inline, so no environment
// lookup is needed to unfold it). Idempotent: Whnf(Whnf(t)) is Whnf(t).
func Whnf(f *term.Factory, e env.Environment, t term.Term) term.Term {
	cur := t
	for {
		next, changed := step(f, e, cur)
		if !changed {
			return next
		}
		cur = next
	}
}

// TypeCheckWhnf is the engine's reducer (§4.3): run the natural-number
// simpset to a fixpoint first, then plain WHNF, so literal-bearing index
// equalities (e.g. a Vec length) are exposed before the structural
// comparison in isSubtype/areConvertible runs.
func TypeCheckWhnf(f *term.Factory, e env.Environment, t term.Term) term.Term {
	return Whnf(f, e, Rewrite(f, NatSimpset, t))
}

func step(f *term.Factory, e env.Environment, t term.Term) (term.Term, bool) {
	switch n := term.Unwrap(t).(type) {
	case term.App:
		fnW := Whnf(f, e, n.Fun)
		if lam, ok := term.Unwrap(fnW).(term.Lambda); ok {
			return subst.InstantiateVarList(f, 0, []term.Term{n.Arg}, lam.Body), true
		}
		if !term.Equal(fnW, n.Fun) {
			return f.Mk(term.App{Fun: fnW, Arg: n.Arg}), true
		}
		return t, false

	case term.PairLeft:
		pW := Whnf(f, e, n.Pair)
		if pv, ok := term.Unwrap(pW).(term.PairValue); ok {
			return pv.Left, true
		}
		if !term.Equal(pW, n.Pair) {
			return f.Mk(term.PairLeft{Pair: pW}), true
		}
		return t, false

	case term.PairRight:
		pW := Whnf(f, e, n.Pair)
		if pv, ok := term.Unwrap(pW).(term.PairValue); ok {
			return pv.Right, true
		}
		if !term.Equal(pW, n.Pair) {
			return f.Mk(term.PairRight{Pair: pW}), true
		}
		return t, false

	case term.RecordSelector:
		rW := Whnf(f, e, n.Record)
		if v, ok := selectField(rW, n.Name); ok {
			return v, true
		}
		if !term.Equal(rW, n.Record) {
			return f.Mk(term.RecordSelector{Record: rW, Name: n.Name}), true
		}
		return t, false

	case term.RecursorApp:
		sW := Whnf(f, e, n.Scrutinee)
		if ctorApp, ok := term.Unwrap(sW).(term.CtorApp); ok {
			if result, ok := reduceRecursor(f, e, n, ctorApp); ok {
				return result, true
			}
		}
		if !term.Equal(sW, n.Scrutinee) {
			return f.Mk(term.RecursorApp{
				Data: n.Data, Params: n.Params, Motive: n.Motive,
				Cases: n.Cases, Indices: n.Indices, Scrutinee: sW,
			}), true
		}
		return t, false

	case term.Constant:
		return n.Definition, true

	default:
		return t, false
	}
}

func selectField(t term.Term, name string) (term.Term, bool) {
	switch n := term.Unwrap(t).(type) {
	case term.FieldValue:
		if n.Name == name {
			return n.Value, true
		}
		return selectField(n.Rest, name)
	default:
		return nil, false
	}
}

// reduceRecursor applies the case value for ctorApp's constructor to its
// arguments, inserting an induction hypothesis (itself a recursive Whnf of
// the recursor on that argument) after every directly recursive argument —
// the reduction-side mirror of env.RecursorElimTypes's case-type schema.
func reduceRecursor(f *term.Factory, e env.Environment, r term.RecursorApp, ctorApp term.CtorApp) (term.Term, bool) {
	var caseVal term.Term
	found := false
	for _, c := range r.Cases {
		if c.Ctor == ctorApp.Ctor {
			caseVal = c.Value
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	ctor, ok := e.FindCtor(ident.Local(ctorApp.Ctor))
	if !ok {
		return nil, false
	}

	ty := ctor.Type
	for _, p := range ctorApp.Params {
		pi, ok := term.Unwrap(ty).(term.Pi)
		if !ok {
			return nil, false
		}
		ty = subst.InstantiateVarList(f, 0, []term.Term{p}, pi.Body)
	}

	result := caseVal
	for _, arg := range ctorApp.Args {
		pi, ok := term.Unwrap(ty).(term.Pi)
		if !ok {
			return nil, false
		}
		result = f.MkApp(result, arg)
		if dtApp, ok := term.Unwrap(pi.Type).(term.DataTypeApp); ok && dtApp.Data == r.Data {
			ih := Whnf(f, e, term.RecursorApp{
				Data: r.Data, Params: r.Params, Motive: r.Motive,
				Cases: r.Cases, Indices: dtApp.Indices, Scrutinee: arg,
			})
			result = f.MkApp(result, ih)
		}
		ty = subst.InstantiateVarList(f, 0, []term.Term{arg}, pi.Body)
	}
	return result, true
}
