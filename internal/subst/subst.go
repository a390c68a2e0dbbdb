// Package subst implements capture-avoiding substitution and lifting over
// de Bruijn-indexed terms: incVars, instantiateVars and instantiateVarList
// from SPEC_FULL.md §4.2. Every function here rebuilds results through a
// *term.Factory so the output is hash-consed like any other term.
package subst

import "github.com/vellum-lang/vellum/internal/term"

// IncVars shifts every free LocalVar(i) with i >= cutoff up by delta. It
// is a no-op when delta == 0, and leaves Constant nodes (closed by
// definition) untouched.
func IncVars(f *term.Factory, cutoff, delta int, t term.Term) term.Term {
	if delta == 0 {
		return t
	}
	if !term.FreeVarsOf(t).HasAtLeast(cutoff) {
		return t
	}
	return incVarsNode(f, cutoff, delta, term.Unwrap(t))
}

func incVarsSlice(f *term.Factory, cutoff, delta int, ts []term.Term) []term.Term {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		out[i] = IncVars(f, cutoff, delta, t)
	}
	return out
}

func incVarsNode(f *term.Factory, cutoff, delta int, n term.Term) term.Term {
	switch x := n.(type) {
	case term.LocalVar:
		if x.Index >= cutoff {
			return f.Mk(term.LocalVar{Index: x.Index + delta})
		}
		return f.Mk(x)
	case term.Lambda:
		return f.Mk(term.Lambda{
			Name: x.Name,
			Type: IncVars(f, cutoff, delta, x.Type),
			Body: IncVars(f, cutoff+1, delta, x.Body),
		})
	case term.Pi:
		return f.Mk(term.Pi{
			Name: x.Name,
			Type: IncVars(f, cutoff, delta, x.Type),
			Body: IncVars(f, cutoff+1, delta, x.Body),
		})
	case term.Let:
		k := len(x.Defs)
		defs := make([]term.LetDef, k)
		for i, d := range x.Defs {
			defs[i] = term.LetDef{
				Name:  d.Name,
				Type:  IncVars(f, cutoff, delta, d.Type),
				Value: IncVars(f, cutoff+k, delta, d.Value),
			}
		}
		return f.Mk(term.Let{Defs: defs, Body: IncVars(f, cutoff+k, delta, x.Body)})
	case term.App:
		return f.Mk(term.App{Fun: IncVars(f, cutoff, delta, x.Fun), Arg: IncVars(f, cutoff, delta, x.Arg)})
	case term.Constant:
		return f.Mk(x)
	case term.ArrayValue:
		return f.Mk(term.ArrayValue{ElemType: IncVars(f, cutoff, delta, x.ElemType), Elems: incVarsSlice(f, cutoff, delta, x.Elems)})
	case term.ExtCns:
		return f.Mk(term.ExtCns{VarIx: x.VarIx, Name: x.Name, Type: IncVars(f, cutoff, delta, x.Type)})
	case term.CtorApp:
		return f.Mk(term.CtorApp{Ctor: x.Ctor, Params: incVarsSlice(f, cutoff, delta, x.Params), Args: incVarsSlice(f, cutoff, delta, x.Args)})
	case term.DataTypeApp:
		return f.Mk(term.DataTypeApp{Data: x.Data, Params: incVarsSlice(f, cutoff, delta, x.Params), Indices: incVarsSlice(f, cutoff, delta, x.Indices)})
	case term.RecursorApp:
		cases := make([]term.RecursorCase, len(x.Cases))
		for i, c := range x.Cases {
			cases[i] = term.RecursorCase{Ctor: c.Ctor, Value: IncVars(f, cutoff, delta, c.Value)}
		}
		return f.Mk(term.RecursorApp{
			Data:      x.Data,
			Params:    incVarsSlice(f, cutoff, delta, x.Params),
			Motive:    IncVars(f, cutoff, delta, x.Motive),
			Cases:     cases,
			Indices:   incVarsSlice(f, cutoff, delta, x.Indices),
			Scrutinee: IncVars(f, cutoff, delta, x.Scrutinee),
		})
	case term.PairLeft:
		return f.Mk(term.PairLeft{Pair: IncVars(f, cutoff, delta, x.Pair)})
	case term.PairRight:
		return f.Mk(term.PairRight{Pair: IncVars(f, cutoff, delta, x.Pair)})
	case term.PairType:
		return f.Mk(term.PairType{Left: IncVars(f, cutoff, delta, x.Left), Right: IncVars(f, cutoff, delta, x.Right)})
	case term.PairValue:
		return f.Mk(term.PairValue{Left: IncVars(f, cutoff, delta, x.Left), Right: IncVars(f, cutoff, delta, x.Right)})
	case term.FieldType:
		return f.Mk(term.FieldType{Name: x.Name, Type: IncVars(f, cutoff, delta, x.Type), Rest: IncVars(f, cutoff, delta, x.Rest)})
	case term.FieldValue:
		return f.Mk(term.FieldValue{Name: x.Name, Value: IncVars(f, cutoff, delta, x.Value), Rest: IncVars(f, cutoff, delta, x.Rest)})
	case term.RecordSelector:
		return f.Mk(term.RecordSelector{Record: IncVars(f, cutoff, delta, x.Record), Name: x.Name})
	default:
		return f.Mk(n)
	}
}

// InstantiateVars substitutes every dangling LocalVar(j) (j >= level) by
// fn(level', j), where level' is the number of binders surrounding the
// occurrence at the point of substitution. Constant nodes are left
// unchanged.
func InstantiateVars(f *term.Factory, fn func(level, j int) term.Term, level int, t term.Term) term.Term {
	if !term.FreeVarsOf(t).HasAtLeast(level) {
		return t
	}
	return instantiateVarsNode(f, fn, level, term.Unwrap(t))
}

func instantiateVarsSlice(f *term.Factory, fn func(level, j int) term.Term, level int, ts []term.Term) []term.Term {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		out[i] = InstantiateVars(f, fn, level, t)
	}
	return out
}

func instantiateVarsNode(f *term.Factory, fn func(level, j int) term.Term, level int, n term.Term) term.Term {
	switch x := n.(type) {
	case term.LocalVar:
		if x.Index >= level {
			return f.Mk(fn(level, x.Index))
		}
		return f.Mk(x)
	case term.Lambda:
		return f.Mk(term.Lambda{
			Name: x.Name,
			Type: InstantiateVars(f, fn, level, x.Type),
			Body: InstantiateVars(f, fn, level+1, x.Body),
		})
	case term.Pi:
		return f.Mk(term.Pi{
			Name: x.Name,
			Type: InstantiateVars(f, fn, level, x.Type),
			Body: InstantiateVars(f, fn, level+1, x.Body),
		})
	case term.Let:
		k := len(x.Defs)
		defs := make([]term.LetDef, k)
		for i, d := range x.Defs {
			defs[i] = term.LetDef{
				Name:  d.Name,
				Type:  InstantiateVars(f, fn, level, d.Type),
				Value: InstantiateVars(f, fn, level+k, d.Value),
			}
		}
		return f.Mk(term.Let{Defs: defs, Body: InstantiateVars(f, fn, level+k, x.Body)})
	case term.App:
		return f.Mk(term.App{Fun: InstantiateVars(f, fn, level, x.Fun), Arg: InstantiateVars(f, fn, level, x.Arg)})
	case term.Constant:
		return f.Mk(x)
	case term.ArrayValue:
		return f.Mk(term.ArrayValue{ElemType: InstantiateVars(f, fn, level, x.ElemType), Elems: instantiateVarsSlice(f, fn, level, x.Elems)})
	case term.ExtCns:
		return f.Mk(term.ExtCns{VarIx: x.VarIx, Name: x.Name, Type: InstantiateVars(f, fn, level, x.Type)})
	case term.CtorApp:
		return f.Mk(term.CtorApp{Ctor: x.Ctor, Params: instantiateVarsSlice(f, fn, level, x.Params), Args: instantiateVarsSlice(f, fn, level, x.Args)})
	case term.DataTypeApp:
		return f.Mk(term.DataTypeApp{Data: x.Data, Params: instantiateVarsSlice(f, fn, level, x.Params), Indices: instantiateVarsSlice(f, fn, level, x.Indices)})
	case term.RecursorApp:
		cases := make([]term.RecursorCase, len(x.Cases))
		for i, c := range x.Cases {
			cases[i] = term.RecursorCase{Ctor: c.Ctor, Value: InstantiateVars(f, fn, level, c.Value)}
		}
		return f.Mk(term.RecursorApp{
			Data:      x.Data,
			Params:    instantiateVarsSlice(f, fn, level, x.Params),
			Motive:    InstantiateVars(f, fn, level, x.Motive),
			Cases:     cases,
			Indices:   instantiateVarsSlice(f, fn, level, x.Indices),
			Scrutinee: InstantiateVars(f, fn, level, x.Scrutinee),
		})
	case term.PairLeft:
		return f.Mk(term.PairLeft{Pair: InstantiateVars(f, fn, level, x.Pair)})
	case term.PairRight:
		return f.Mk(term.PairRight{Pair: InstantiateVars(f, fn, level, x.Pair)})
	case term.PairType:
		return f.Mk(term.PairType{Left: InstantiateVars(f, fn, level, x.Left), Right: InstantiateVars(f, fn, level, x.Right)})
	case term.PairValue:
		return f.Mk(term.PairValue{Left: InstantiateVars(f, fn, level, x.Left), Right: InstantiateVars(f, fn, level, x.Right)})
	case term.FieldType:
		return f.Mk(term.FieldType{Name: x.Name, Type: InstantiateVars(f, fn, level, x.Type), Rest: InstantiateVars(f, fn, level, x.Rest)})
	case term.FieldValue:
		return f.Mk(term.FieldValue{Name: x.Name, Value: InstantiateVars(f, fn, level, x.Value), Rest: InstantiateVars(f, fn, level, x.Rest)})
	case term.RecordSelector:
		return f.Mk(term.RecordSelector{Record: InstantiateVars(f, fn, level, x.Record), Name: x.Name})
	default:
		return f.Mk(n)
	}
}

// InstantiateVarList substitutes ts[0..n-1] for LocalVar(k..k+n-1) and
// shifts every higher free variable down by n. It memoizes the shifted
// copy of each ts[j] lazily, since instantiateVars consults it at every
// cutoff level encountered during the traversal (SPEC_FULL.md §4.2).
//
// Law: InstantiateVarList(0, [x,y,z], t) == the beta-normal form of
// (\\ \\ \\ t) z y x.
func InstantiateVarList(f *term.Factory, k int, ts []term.Term, t term.Term) term.Term {
	n := len(ts)
	if n == 0 {
		return t
	}
	shifted := make(map[int]term.Term, n)
	shiftedAt := func(depth, j int) term.Term {
		if depth == 0 {
			return ts[j]
		}
		if c, ok := shifted[depth*n+j]; ok {
			return c
		}
		c := IncVars(f, 0, depth, ts[j])
		shifted[depth*n+j] = c
		return c
	}
	fn := func(level, idx int) term.Term {
		depth := level - k // number of binders crossed since the cutoff k
		rel := idx - level // position within the instantiated window, at this depth
		if rel >= 0 && rel < n {
			return shiftedAt(depth, rel)
		}
		// dangling beyond the instantiated window: shift down by n
		return term.LocalVar{Index: idx - n}
	}
	return InstantiateVars(f, fn, k, t)
}
