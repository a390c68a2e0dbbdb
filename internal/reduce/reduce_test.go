package reduce

import (
	"testing"

	"github.com/vellum-lang/vellum/internal/env"
	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/term"
)

func TestWhnfBeta(t *testing.T) {
	f := term.NewFactory()
	e := env.New()
	lam := f.Mk(term.Lambda{Name: "x", Type: f.MkSort(0), Body: f.MkLocalVar(0)})
	app := f.MkApp(lam, f.MkNatLit(3))
	got := Whnf(f, e, app)
	if !term.Equal(got, f.MkNatLit(3)) {
		t.Fatalf("got %v want 3", got)
	}
}

func TestWhnfIdempotent(t *testing.T) {
	f := term.NewFactory()
	e := env.New()
	t1 := f.Mk(term.App{Fun: f.Mk(term.Lambda{Name: "x", Type: f.MkSort(0), Body: f.MkLocalVar(0)}), Arg: f.MkSort(1)})
	once := Whnf(f, e, t1)
	twice := Whnf(f, e, once)
	if !term.Equal(once, twice) {
		t.Fatalf("Whnf not idempotent: %v vs %v", once, twice)
	}
}

func TestWhnfPairProjection(t *testing.T) {
	f := term.NewFactory()
	e := env.New()
	pv := f.Mk(term.PairValue{Left: f.MkNatLit(1), Right: f.MkNatLit(2)})
	if got := Whnf(f, e, f.Mk(term.PairLeft{Pair: pv})); !term.Equal(got, f.MkNatLit(1)) {
		t.Fatalf("fst: got %v", got)
	}
	if got := Whnf(f, e, f.Mk(term.PairRight{Pair: pv})); !term.Equal(got, f.MkNatLit(2)) {
		t.Fatalf("snd: got %v", got)
	}
}

func TestWhnfRecordSelector(t *testing.T) {
	f := term.NewFactory()
	e := env.New()
	rec := f.Mk(term.FieldValue{Name: "a", Value: f.MkNatLit(1),
		Rest: f.Mk(term.FieldValue{Name: "b", Value: f.MkNatLit(2), Rest: f.Mk(term.EmptyRecordValue{})})})
	got := Whnf(f, e, f.Mk(term.RecordSelector{Record: rec, Name: "b"}))
	if !term.Equal(got, f.MkNatLit(2)) {
		t.Fatalf("got %v want 2", got)
	}
}

func TestWhnfConstantDelta(t *testing.T) {
	f := term.NewFactory()
	e := env.New()
	c := f.Mk(term.Constant{Name: "id", Definition: f.MkNatLit(9), DeclaredType: f.MkSort(0)})
	if got := Whnf(f, e, c); !term.Equal(got, f.MkNatLit(9)) {
		t.Fatalf("got %v want 9", got)
	}
}

func natRecEnv(f *term.Factory) *env.Env {
	e := env.New()
	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	dt := &env.DataType{Name: ident.Local("Nat"), Type: f.MkSort(0), Ctors: []ident.Ident{ident.Local("Zero"), ident.Local("Succ")}}
	e.AddDataType(dt)
	e.AddCtor(&env.Ctor{Name: ident.Local("Zero"), Type: natApp, DataType: dt.Name})
	e.AddCtor(&env.Ctor{Name: ident.Local("Succ"), Type: f.Mk(term.Pi{Name: "n", Type: natApp, Body: natApp}), DataType: dt.Name, NumArgs: 1})
	return e
}

func TestWhnfRecursorOnZero(t *testing.T) {
	f := term.NewFactory()
	e := natRecEnv(f)
	motive := f.Mk(term.GlobalDef{Name: "M"})
	r := term.RecursorApp{
		Data:   "Nat",
		Motive: motive,
		Cases: []term.RecursorCase{
			{Ctor: "Zero", Value: f.MkNatLit(0)},
			{Ctor: "Succ", Value: f.Mk(term.GlobalDef{Name: "succCase"})},
		},
		Scrutinee: f.Mk(term.CtorApp{Ctor: "Zero"}),
	}
	got := Whnf(f, e, f.Mk(r))
	if !term.Equal(got, f.MkNatLit(0)) {
		t.Fatalf("got %v want 0", got)
	}
}

func TestWhnfRecursorOnSuccAppliesIH(t *testing.T) {
	f := term.NewFactory()
	e := natRecEnv(f)
	motive := f.Mk(term.GlobalDef{Name: "M"})
	// succCase n ih = ih (a stand-in that just forwards the IH so we can
	// observe that the recursor recursed into its own predecessor).
	succCase := f.Mk(term.Lambda{
		Name: "n", Type: f.Mk(term.DataTypeApp{Data: "Nat"}),
		Body: f.Mk(term.Lambda{Name: "ih", Type: f.Mk(term.GlobalDef{Name: "T"}), Body: f.MkLocalVar(0)}),
	})
	r := term.RecursorApp{
		Data:   "Nat",
		Motive: motive,
		Cases: []term.RecursorCase{
			{Ctor: "Zero", Value: f.MkNatLit(100)},
			{Ctor: "Succ", Value: succCase},
		},
		Scrutinee: f.Mk(term.CtorApp{Ctor: "Succ", Args: []term.Term{f.Mk(term.CtorApp{Ctor: "Zero"})}}),
	}
	got := Whnf(f, e, f.Mk(r))
	// Succ(Zero) -> succCase applied to (Zero, ih) where
	// ih = whnf(Recursor(..., Scrutinee=Zero)) = 100, and succCase forwards ih.
	if !term.Equal(got, f.MkNatLit(100)) {
		t.Fatalf("got %v want 100", got)
	}
}

func TestRewriteNatSimpset(t *testing.T) {
	f := term.NewFactory()
	succZero := f.Mk(term.CtorApp{Ctor: "Succ", Args: []term.Term{f.MkNatLit(4)}})
	got := Rewrite(f, NatSimpset, succZero)
	if !term.Equal(got, f.MkNatLit(5)) {
		t.Fatalf("got %v want 5", got)
	}
}

func TestRewriteAddMul(t *testing.T) {
	f := term.NewFactory()
	add := f.Mk(term.App{Fun: f.Mk(term.App{Fun: f.Mk(term.GlobalDef{Name: "Add"}), Arg: f.MkNatLit(2)}), Arg: f.MkNatLit(3)})
	if got := Rewrite(f, NatSimpset, add); !term.Equal(got, f.MkNatLit(5)) {
		t.Fatalf("Add: got %v want 5", got)
	}
	mul := f.Mk(term.App{Fun: f.Mk(term.App{Fun: f.Mk(term.GlobalDef{Name: "Mul"}), Arg: f.MkNatLit(2)}), Arg: f.MkNatLit(3)})
	if got := Rewrite(f, NatSimpset, mul); !term.Equal(got, f.MkNatLit(6)) {
		t.Fatalf("Mul: got %v want 6", got)
	}
}

func TestRewriteUnderBinder(t *testing.T) {
	f := term.NewFactory()
	// The redex sits in a Pi's body, under its binder, so Rewrite must
	// descend under binders, not just rewrite the top node.
	inner := f.Mk(term.CtorApp{Ctor: "Succ", Args: []term.Term{f.MkNatLit(1)}})
	pi := f.Mk(term.Pi{Name: "x", Type: f.MkSort(0), Body: inner})
	got := Rewrite(f, NatSimpset, pi)
	want := f.Mk(term.Pi{Name: "x", Type: f.MkSort(0), Body: f.MkNatLit(2)})
	if !term.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
