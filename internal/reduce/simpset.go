package reduce

import "github.com/vellum-lang/vellum/internal/term"

// Rule tries to rewrite the outermost constructor of t, reporting whether
// it fired.
type Rule func(f *term.Factory, t term.Term) (term.Term, bool)

// Simpset is an ordered set of rewrite rules, tried top-down at every node.
type Simpset []Rule

// Rewrite applies ss to every subterm of t, bottom-up, to a fixpoint. It is
// the "rewrite" collaborator of spec §6, used to expose literal arithmetic
// (e.g. under a Vec length index) before WHNF runs (§4.3).
func Rewrite(f *term.Factory, ss Simpset, t term.Term) term.Term {
	cur := t
	for {
		next, changed := rewriteOnce(f, ss, cur)
		if !changed {
			return next
		}
		cur = next
	}
}

func rewriteOnce(f *term.Factory, ss Simpset, t term.Term) (term.Term, bool) {
	n := term.Unwrap(t)
	rebuilt, childChanged := rewriteChildren(f, ss, n)
	for _, r := range ss {
		if out, ok := r(f, rebuilt); ok {
			return out, true
		}
	}
	return rebuilt, childChanged
}

func rewriteChild(f *term.Factory, ss Simpset, t term.Term) (term.Term, bool) {
	out := Rewrite(f, ss, t)
	return out, !term.Equal(out, t)
}

func rewriteSlice(f *term.Factory, ss Simpset, ts []term.Term) ([]term.Term, bool) {
	out := make([]term.Term, len(ts))
	changed := false
	for i, t := range ts {
		c, ch := rewriteChild(f, ss, t)
		out[i] = c
		changed = changed || ch
	}
	return out, changed
}

func rewriteChildren(f *term.Factory, ss Simpset, n term.Term) (term.Term, bool) {
	switch x := n.(type) {
	case term.Lambda:
		ty, c1 := rewriteChild(f, ss, x.Type)
		body, c2 := rewriteChild(f, ss, x.Body)
		return f.Mk(term.Lambda{Name: x.Name, Type: ty, Body: body}), c1 || c2
	case term.Pi:
		ty, c1 := rewriteChild(f, ss, x.Type)
		body, c2 := rewriteChild(f, ss, x.Body)
		return f.Mk(term.Pi{Name: x.Name, Type: ty, Body: body}), c1 || c2
	case term.App:
		fn, c1 := rewriteChild(f, ss, x.Fun)
		arg, c2 := rewriteChild(f, ss, x.Arg)
		return f.Mk(term.App{Fun: fn, Arg: arg}), c1 || c2
	case term.Let:
		changed := false
		defs := make([]term.LetDef, len(x.Defs))
		for i, d := range x.Defs {
			ty, c1 := rewriteChild(f, ss, d.Type)
			val, c2 := rewriteChild(f, ss, d.Value)
			defs[i] = term.LetDef{Name: d.Name, Type: ty, Value: val}
			changed = changed || c1 || c2
		}
		body, c3 := rewriteChild(f, ss, x.Body)
		return f.Mk(term.Let{Defs: defs, Body: body}), changed || c3
	case term.ArrayValue:
		elemTy, c1 := rewriteChild(f, ss, x.ElemType)
		elems, c2 := rewriteSlice(f, ss, x.Elems)
		return f.Mk(term.ArrayValue{ElemType: elemTy, Elems: elems}), c1 || c2
	case term.CtorApp:
		params, c1 := rewriteSlice(f, ss, x.Params)
		args, c2 := rewriteSlice(f, ss, x.Args)
		return f.Mk(term.CtorApp{Ctor: x.Ctor, Params: params, Args: args}), c1 || c2
	case term.DataTypeApp:
		params, c1 := rewriteSlice(f, ss, x.Params)
		indices, c2 := rewriteSlice(f, ss, x.Indices)
		return f.Mk(term.DataTypeApp{Data: x.Data, Params: params, Indices: indices}), c1 || c2
	case term.RecursorApp:
		params, c1 := rewriteSlice(f, ss, x.Params)
		motive, c2 := rewriteChild(f, ss, x.Motive)
		indices, c3 := rewriteSlice(f, ss, x.Indices)
		scrutinee, c4 := rewriteChild(f, ss, x.Scrutinee)
		changed := c1 || c2 || c3 || c4
		cases := make([]term.RecursorCase, len(x.Cases))
		for i, c := range x.Cases {
			v, cc := rewriteChild(f, ss, c.Value)
			cases[i] = term.RecursorCase{Ctor: c.Ctor, Value: v}
			changed = changed || cc
		}
		return f.Mk(term.RecursorApp{Data: x.Data, Params: params, Motive: motive, Cases: cases, Indices: indices, Scrutinee: scrutinee}), changed
	case term.PairLeft:
		p, c := rewriteChild(f, ss, x.Pair)
		return f.Mk(term.PairLeft{Pair: p}), c
	case term.PairRight:
		p, c := rewriteChild(f, ss, x.Pair)
		return f.Mk(term.PairRight{Pair: p}), c
	case term.PairType:
		l, c1 := rewriteChild(f, ss, x.Left)
		r, c2 := rewriteChild(f, ss, x.Right)
		return f.Mk(term.PairType{Left: l, Right: r}), c1 || c2
	case term.PairValue:
		l, c1 := rewriteChild(f, ss, x.Left)
		r, c2 := rewriteChild(f, ss, x.Right)
		return f.Mk(term.PairValue{Left: l, Right: r}), c1 || c2
	case term.FieldType:
		ty, c1 := rewriteChild(f, ss, x.Type)
		rest, c2 := rewriteChild(f, ss, x.Rest)
		return f.Mk(term.FieldType{Name: x.Name, Type: ty, Rest: rest}), c1 || c2
	case term.FieldValue:
		v, c1 := rewriteChild(f, ss, x.Value)
		rest, c2 := rewriteChild(f, ss, x.Rest)
		return f.Mk(term.FieldValue{Name: x.Name, Value: v, Rest: rest}), c1 || c2
	case term.RecordSelector:
		r, c := rewriteChild(f, ss, x.Record)
		return f.Mk(term.RecordSelector{Record: r, Name: x.Name}), c
	default:
		return f.Mk(n), false
	}
}

// NatSimpset is the minimal natural-number identity set of SPEC_FULL.md §C.3:
// Succ(NatLit n) -> NatLit(n+1), NatLit a + NatLit b -> NatLit(a+b) and
// likewise for *, and Pred(NatLit (n+1)) -> NatLit n. Add/Mul/Pred are
// modeled as globals applied via App; Succ is the Nat datatype's own
// constructor.
var NatSimpset = Simpset{ruleSucc, ruleAdd, ruleMul, rulePred}

func ruleSucc(f *term.Factory, t term.Term) (term.Term, bool) {
	c, ok := term.Unwrap(t).(term.CtorApp)
	if !ok || c.Ctor != "Succ" || len(c.Args) != 1 {
		return nil, false
	}
	n, ok := term.Unwrap(c.Args[0]).(term.NatLit)
	if !ok {
		return nil, false
	}
	return f.MkNatLit(n.N + 1), true
}

func rulePred(f *term.Factory, t term.Term) (term.Term, bool) {
	app, ok := term.Unwrap(t).(term.App)
	if !ok {
		return nil, false
	}
	g, ok := term.Unwrap(app.Fun).(term.GlobalDef)
	if !ok || g.Name != "Pred" {
		return nil, false
	}
	n, ok := term.Unwrap(app.Arg).(term.NatLit)
	if !ok || n.N == 0 {
		return nil, false
	}
	return f.MkNatLit(n.N - 1), true
}

func ruleAdd(f *term.Factory, t term.Term) (term.Term, bool) { return binOpRule(f, t, "Add", func(a, b uint64) uint64 { return a + b }) }
func ruleMul(f *term.Factory, t term.Term) (term.Term, bool) { return binOpRule(f, t, "Mul", func(a, b uint64) uint64 { return a * b }) }

func binOpRule(f *term.Factory, t term.Term, name string, op func(a, b uint64) uint64) (term.Term, bool) {
	outer, ok := term.Unwrap(t).(term.App)
	if !ok {
		return nil, false
	}
	b, ok := term.Unwrap(outer.Arg).(term.NatLit)
	if !ok {
		return nil, false
	}
	inner, ok := term.Unwrap(outer.Fun).(term.App)
	if !ok {
		return nil, false
	}
	g, ok := term.Unwrap(inner.Fun).(term.GlobalDef)
	if !ok || g.Name != name {
		return nil, false
	}
	a, ok := term.Unwrap(inner.Arg).(term.NatLit)
	if !ok {
		return nil, false
	}
	return f.MkNatLit(op(a.N, b.N)), true
}
