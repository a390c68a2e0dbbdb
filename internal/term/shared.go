package term

import (
	"reflect"
	"sync"
)

// Shared is a hash-consed term: a unique integer index, a cached
// structural hash, a cached free-variable bitset, and the underlying
// constructor. Two Shared nodes with equal Idx are definitionally the
// same term (Invariant I4).
type Shared struct {
	Idx  int
	Hash uint64
	FV   FreeVars
	Node Term
}

func (*Shared) termNode() {}

func (s *Shared) String() string { return s.Node.String() }

// Unwrap strips a *Shared wrapper down to its raw constructor. Unshared
// terms are returned unchanged. Every structural type switch in this
// module (subst, reduce, engine) should dispatch on Unwrap(t), never on
// t directly.
func Unwrap(t Term) Term {
	if s, ok := t.(*Shared); ok {
		return s.Node
	}
	return t
}

// Index returns the hash-consing index of a shared term, or (0, false)
// if t is not shared.
func Index(t Term) (int, bool) {
	if s, ok := t.(*Shared); ok {
		return s.Idx, true
	}
	return 0, false
}

// Equal decides structural equality. Two shared nodes are compared by
// index (I4, O(1)); anything else falls back to recursive structural
// comparison of the unwrapped constructors.
func Equal(a, b Term) bool {
	as, aShared := a.(*Shared)
	bs, bShared := b.(*Shared)
	if aShared && bShared {
		return as.Idx == bs.Idx
	}
	return structuralEqual(Unwrap(a), Unwrap(b))
}

func structuralEqual(a, b Term) bool {
	switch x := a.(type) {
	case LocalVar:
		y, ok := b.(LocalVar)
		return ok && x.Index == y.Index
	case Lambda:
		y, ok := b.(Lambda)
		return ok && Equal(x.Type, y.Type) && Equal(x.Body, y.Body)
	case Pi:
		y, ok := b.(Pi)
		return ok && Equal(x.Type, y.Type) && Equal(x.Body, y.Body)
	case Let:
		y, ok := b.(Let)
		if !ok || len(x.Defs) != len(y.Defs) {
			return false
		}
		for i, d := range x.Defs {
			if !Equal(d.Type, y.Defs[i].Type) || !Equal(d.Value, y.Defs[i].Value) {
				return false
			}
		}
		return Equal(x.Body, y.Body)
	case App:
		y, ok := b.(App)
		return ok && Equal(x.Fun, y.Fun) && Equal(x.Arg, y.Arg)
	case Constant:
		y, ok := b.(Constant)
		return ok && x.Name == y.Name
	case GlobalDef:
		y, ok := b.(GlobalDef)
		return ok && x.Name == y.Name
	case Sort:
		y, ok := b.(Sort)
		return ok && x.Level == y.Level
	case NatLit:
		y, ok := b.(NatLit)
		return ok && x.N == y.N
	case StringLit:
		y, ok := b.(StringLit)
		return ok && x.Value == y.Value
	case ArrayValue:
		y, ok := b.(ArrayValue)
		return ok && Equal(x.ElemType, y.ElemType) && equalSlice(x.Elems, y.Elems)
	case ExtCns:
		y, ok := b.(ExtCns)
		return ok && x.VarIx == y.VarIx
	case CtorApp:
		y, ok := b.(CtorApp)
		return ok && x.Ctor == y.Ctor && equalSlice(x.Params, y.Params) && equalSlice(x.Args, y.Args)
	case DataTypeApp:
		y, ok := b.(DataTypeApp)
		return ok && x.Data == y.Data && equalSlice(x.Params, y.Params) && equalSlice(x.Indices, y.Indices)
	case RecursorApp:
		y, ok := b.(RecursorApp)
		if !ok || x.Data != y.Data || len(x.Cases) != len(y.Cases) {
			return false
		}
		for i, c := range x.Cases {
			if c.Ctor != y.Cases[i].Ctor || !Equal(c.Value, y.Cases[i].Value) {
				return false
			}
		}
		return equalSlice(x.Params, y.Params) && equalSlice(x.Indices, y.Indices) &&
			Equal(x.Motive, y.Motive) && Equal(x.Scrutinee, y.Scrutinee)
	case PairLeft:
		y, ok := b.(PairLeft)
		return ok && Equal(x.Pair, y.Pair)
	case PairRight:
		y, ok := b.(PairRight)
		return ok && Equal(x.Pair, y.Pair)
	case PairType:
		y, ok := b.(PairType)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case PairValue:
		y, ok := b.(PairValue)
		return ok && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case UnitType:
		_, ok := b.(UnitType)
		return ok
	case UnitValue:
		_, ok := b.(UnitValue)
		return ok
	case EmptyRecordType:
		_, ok := b.(EmptyRecordType)
		return ok
	case EmptyRecordValue:
		_, ok := b.(EmptyRecordValue)
		return ok
	case FieldType:
		y, ok := b.(FieldType)
		return ok && x.Name == y.Name && Equal(x.Type, y.Type) && Equal(x.Rest, y.Rest)
	case FieldValue:
		y, ok := b.(FieldValue)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value) && Equal(x.Rest, y.Rest)
	case RecordSelector:
		y, ok := b.(RecordSelector)
		return ok && x.Name == y.Name && Equal(x.Record, y.Record)
	default:
		return reflect.DeepEqual(a, b)
	}
}

func equalSlice(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Factory hash-conses raw constructors into *Shared nodes. It is safe
// for concurrent use (§5: "must be internally thread-safe if used across
// threads"); a single inference run holds its handle exclusively and
// never needs to contend for the lock. Structural equality of children
// (not pointer identity) decides whether an existing node is reused.
type Factory struct {
	mu     sync.Mutex
	nextID int
	table  map[uint64][]*Shared // hash bucket; collisions resolved by structuralEqual
}

// NewFactory creates an empty hash-consing factory.
func NewFactory() *Factory {
	return &Factory{table: make(map[uint64][]*Shared)}
}

// Mk hash-conses a raw constructor, returning the existing *Shared node
// if one with equal structure already exists, or allocating a fresh one.
func (f *Factory) Mk(ctor Term) *Shared {
	if s, ok := ctor.(*Shared); ok {
		return s
	}
	h := structuralHash(ctor)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.table[h] {
		if structuralEqual(existing.Node, ctor) {
			return existing
		}
	}
	s := &Shared{
		Idx:  f.nextID,
		Hash: h,
		FV:   computeFreeVars(ctor),
		Node: ctor,
	}
	f.nextID++
	f.table[h] = append(f.table[h], s)
	return s
}

// Sort, NatLit and the other convenience constructors mirror the flat
// primitives of §3 one-for-one; they exist so callers don't have to
// spell out term.Sort{Level: n} at every use site.
func (f *Factory) MkSort(level uint32) *Shared    { return f.Mk(Sort{Level: level}) }
func (f *Factory) MkNatLit(n uint64) *Shared      { return f.Mk(NatLit{N: n}) }
func (f *Factory) MkLocalVar(i int) *Shared       { return f.Mk(LocalVar{Index: i}) }
func (f *Factory) MkApp(fn, arg Term) *Shared     { return f.Mk(App{Fun: fn, Arg: arg}) }
func (f *Factory) MkPi(name string, a, b Term) *Shared {
	return f.Mk(Pi{Name: name, Type: a, Body: b})
}
func (f *Factory) MkLambda(name string, a, b Term) *Shared {
	return f.Mk(Lambda{Name: name, Type: a, Body: b})
}
func (f *Factory) MkUnitType() *Shared             { return f.Mk(UnitType{}) }
func (f *Factory) MkUnitValue() *Shared            { return f.Mk(UnitValue{}) }
func (f *Factory) MkPairType(a, b Term) *Shared    { return f.Mk(PairType{Left: a, Right: b}) }
func (f *Factory) MkPairValue(a, b Term) *Shared   { return f.Mk(PairValue{Left: a, Right: b}) }

// ApplyAll builds App(App(...App(f, args[0])..., args[n-1])) — the
// external "applyAll" collaborator of §6.
func ApplyAll(f *Factory, fn Term, args []Term) Term {
	cur := fn
	for _, a := range args {
		cur = f.MkApp(cur, a)
	}
	return cur
}

// structuralHash is a cheap, non-cryptographic hash used only to help a
// caller short-circuit comparisons; the factory itself always falls back
// to structuralEqual to resolve collisions, so correctness never depends
// on this function being collision-free.
func structuralHash(t Term) uint64 {
	const prime = 1099511628211
	var h uint64 = 14695981039346656037
	mix := func(x uint64) {
		h ^= x
		h *= prime
	}
	mixStr := func(s string) {
		for i := 0; i < len(s); i++ {
			mix(uint64(s[i]))
		}
	}
	var walk func(Term)
	walk = func(t Term) {
		switch n := Unwrap(t).(type) {
		case LocalVar:
			mix(1)
			mix(uint64(n.Index))
		case Lambda:
			mix(2)
			walk(n.Type)
			walk(n.Body)
		case Pi:
			mix(3)
			walk(n.Type)
			walk(n.Body)
		case App:
			mix(4)
			walk(n.Fun)
			walk(n.Arg)
		case Sort:
			mix(5)
			mix(uint64(n.Level))
		case NatLit:
			mix(6)
			mix(n.N)
		case StringLit:
			mix(7)
			mixStr(n.Value)
		case GlobalDef:
			mix(8)
			mixStr(n.Name)
		case Constant:
			mix(9)
			mixStr(n.Name)
		default:
			mix(255)
		}
	}
	walk(t)
	return h
}
