package term

import "math/bits"

// FreeVars is a bitset over de Bruijn indices: bit i is set iff LocalVar(i)
// occurs free. It is immutable from the caller's point of view; all
// operations return a new value. See SPEC_FULL.md §3 "Free-variable
// bitset" for the defining equations.
type FreeVars struct {
	words []uint64
}

const wordBits = 64

// single returns a FreeVars with exactly bit i set.
func single(i int) FreeVars {
	var fv FreeVars
	fv.words = make([]uint64, i/wordBits+1)
	fv.words[i/wordBits] = 1 << uint(i%wordBits)
	return fv
}

// Has reports whether bit i is set.
func (fv FreeVars) Has(i int) bool {
	if i < 0 {
		return false
	}
	w := i / wordBits
	if w >= len(fv.words) {
		return false
	}
	return fv.words[w]&(1<<uint(i%wordBits)) != 0
}

// Empty reports whether no bit is set.
func (fv FreeVars) Empty() bool {
	for _, w := range fv.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Min returns the smallest set bit, or -1 if FreeVars is Empty.
func (fv FreeVars) Min() int {
	for wi, w := range fv.words {
		if w != 0 {
			return wi*wordBits + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// Union returns the set union of fv and other.
func Union(fv, other FreeVars) FreeVars {
	n := len(fv.words)
	if len(other.words) > n {
		n = len(other.words)
	}
	out := FreeVars{words: make([]uint64, n)}
	for i := range out.words {
		var a, b uint64
		if i < len(fv.words) {
			a = fv.words[i]
		}
		if i < len(other.words) {
			b = other.words[i]
		}
		out.words[i] = a | b
	}
	return out
}

// ShiftDown drops every bit below n and shifts the remaining bits down by
// n, i.e. bit i of the result is bit i+n of fv. This implements the
// ">> n" operator used throughout §3 and §4.2 (Lambda/Pi use n=1, Let
// uses n=|defs|).
func ShiftDown(fv FreeVars, n int) FreeVars {
	if n <= 0 {
		return fv
	}
	out := FreeVars{}
	bound := len(fv.words) * wordBits
	for i := fv.Min(); i >= 0 && i < bound; i++ {
		if fv.Has(i) && i >= n {
			out = out.withBit(i - n)
		}
	}
	return out
}

func (fv FreeVars) withBit(i int) FreeVars {
	w := i / wordBits
	if w >= len(fv.words) {
		grown := make([]uint64, w+1)
		copy(grown, fv.words)
		fv.words = grown
	}
	fv.words[w] |= 1 << uint(i%wordBits)
	return fv
}

// HasAtLeast reports whether any bit >= cutoff is set. Used as a fast
// no-op check by incVars/instantiateVars.
func (fv FreeVars) HasAtLeast(cutoff int) bool {
	if cutoff <= 0 {
		return !fv.Empty()
	}
	w := cutoff / wordBits
	if w < len(fv.words) {
		mask := ^uint64(0) << uint(cutoff%wordBits)
		if fv.words[w]&mask != 0 {
			return true
		}
	}
	for i := w + 1; i < len(fv.words); i++ {
		if fv.words[i] != 0 {
			return true
		}
	}
	return false
}

// computeFreeVars implements the defining equations of §3 directly over
// the raw constructors. Used by the factory when a term is created, and
// as a fallback for unshared terms encountered outside the factory.
func computeFreeVars(t Term) FreeVars {
	switch n := Unwrap(t).(type) {
	case LocalVar:
		return single(n.Index)
	case Lambda:
		return Union(FreeVarsOf(n.Type), ShiftDown(FreeVarsOf(n.Body), 1))
	case Pi:
		return Union(FreeVarsOf(n.Type), ShiftDown(FreeVarsOf(n.Body), 1))
	case Let:
		k := len(n.Defs)
		fv := ShiftDown(FreeVarsOf(n.Body), k)
		for _, d := range n.Defs {
			fv = Union(fv, FreeVarsOf(d.Type))
			fv = Union(fv, ShiftDown(FreeVarsOf(d.Value), k))
		}
		return fv
	case App:
		return Union(FreeVarsOf(n.Fun), FreeVarsOf(n.Arg))
	case Constant:
		return FreeVars{}
	case GlobalDef, Sort, NatLit, StringLit, UnitType, UnitValue, EmptyRecordType, EmptyRecordValue:
		return FreeVars{}
	case ArrayValue:
		fv := FreeVarsOf(n.ElemType)
		for _, e := range n.Elems {
			fv = Union(fv, FreeVarsOf(e))
		}
		return fv
	case ExtCns:
		return FreeVarsOf(n.Type)
	case CtorApp:
		return unionAll(n.Params, n.Args)
	case DataTypeApp:
		return unionAll(n.Params, n.Indices)
	case RecursorApp:
		fv := unionAll(n.Params, n.Indices)
		fv = Union(fv, FreeVarsOf(n.Motive))
		fv = Union(fv, FreeVarsOf(n.Scrutinee))
		for _, c := range n.Cases {
			fv = Union(fv, FreeVarsOf(c.Value))
		}
		return fv
	case PairLeft:
		return FreeVarsOf(n.Pair)
	case PairRight:
		return FreeVarsOf(n.Pair)
	case PairType:
		return Union(FreeVarsOf(n.Left), FreeVarsOf(n.Right))
	case PairValue:
		return Union(FreeVarsOf(n.Left), FreeVarsOf(n.Right))
	case FieldType:
		return Union(FreeVarsOf(n.Type), FreeVarsOf(n.Rest))
	case FieldValue:
		return Union(FreeVarsOf(n.Value), FreeVarsOf(n.Rest))
	case RecordSelector:
		return FreeVarsOf(n.Record)
	default:
		return FreeVars{}
	}
}

func unionAll(sets ...[]Term) FreeVars {
	var fv FreeVars
	for _, set := range sets {
		for _, t := range set {
			fv = Union(fv, FreeVarsOf(t))
		}
	}
	return fv
}

// FreeVarsOf returns the free-variable bitset of t, consulting the cache
// on a *Shared node (Invariant I3) or recomputing it for an unshared node.
func FreeVarsOf(t Term) FreeVars {
	if s, ok := t.(*Shared); ok {
		return s.FV
	}
	return computeFreeVars(t)
}
