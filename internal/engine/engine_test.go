package engine

import (
	"errors"
	"testing"

	"github.com/vellum-lang/vellum/internal/env"
	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/tcerr"
	"github.com/vellum-lang/vellum/internal/term"
)

// baseEnv wires up Nat (with Zero/Succ), a nullary Prop-sorted datatype
// True (with constructor I), and the String/Vec globals — enough to
// exercise every inference rule in §4.7 without a YAML manifest.
func baseEnv(f *term.Factory) *env.Env {
	e := env.New()

	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	// Nat lives a level above Prop (Sort 0) so eliminating it into Nat
	// itself is an ordinary predicative motive, not a propositional one.
	natDT := &env.DataType{Name: ident.Local("Nat"), Type: f.MkSort(1), Ctors: []ident.Ident{ident.Local("Zero"), ident.Local("Succ")}}
	e.AddDataType(natDT)
	e.AddCtor(&env.Ctor{Name: ident.Local("Zero"), Type: natApp, DataType: natDT.Name})
	e.AddCtor(&env.Ctor{Name: ident.Local("Succ"), Type: f.Mk(term.Pi{Name: "n", Type: natApp, Body: natApp}), DataType: natDT.Name, NumArgs: 1})
	e.AddGlobal(ident.Local("Nat"), natApp)

	trueApp := f.Mk(term.DataTypeApp{Data: "True"})
	trueDT := &env.DataType{Name: ident.Local("True"), Type: f.MkSort(0), Ctors: []ident.Ident{ident.Local("I")}}
	e.AddDataType(trueDT)
	e.AddCtor(&env.Ctor{Name: ident.Local("I"), Type: trueApp, DataType: trueDT.Name})

	e.AddGlobal(ident.Local("String"), f.Mk(term.DataTypeApp{Data: "String"}))
	vecTy := f.Mk(term.Pi{Name: "n", Type: natApp, Body: f.Mk(term.Pi{Name: "ty", Type: f.MkSort(0), Body: f.MkSort(0)})})
	e.AddGlobal(ident.Local("Vec"), vecTy)

	return e
}

func TestInferIdentityLambda(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	id := f.Mk(term.Lambda{Name: "x", Type: natApp, Body: f.MkLocalVar(0)})

	got, err := ScTypeCheck(f, e, "", id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := f.Mk(term.Pi{Name: "x", Type: natApp, Body: natApp})
	if !term.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestInferAppBetaReducesType(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	id := f.Mk(term.Lambda{Name: "x", Type: natApp, Body: f.MkLocalVar(0)})
	app := f.MkApp(id, f.MkNatLit(5))

	got, err := ScTypeCheck(f, e, "", app)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !term.Equal(got, natApp) {
		t.Fatalf("got %v want Nat", got)
	}
}

func TestInferPiSortArithmeticNonProp(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	pi := f.Mk(term.Pi{Name: "x", Type: f.MkSort(0), Body: f.MkSort(0)})

	got, err := ScTypeCheck(f, e, "", pi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !term.Equal(got, f.MkSort(1)) {
		t.Fatalf("got %v want Sort 1", got)
	}
}

func TestInferPiCodomainPropIsImpredicative(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	trueApp := f.Mk(term.DataTypeApp{Data: "True"})
	// Pi(x:Nat, True): domain's own sort is irrelevant once the codomain's
	// sort is Prop (True : Sort 0) — the whole Pi lands in Sort 0 too.
	pi := f.Mk(term.Pi{Name: "x", Type: natApp, Body: trueApp})

	got, err := ScTypeCheck(f, e, "", pi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !term.Equal(got, f.MkSort(0)) {
		t.Fatalf("got %v want Sort 0 (Prop)", got)
	}
}

func TestInferDanglingVar(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	_, err := ScTypeCheck(f, e, "", f.MkLocalVar(0))
	var target *tcerr.DanglingVar
	if !errors.As(err, &target) {
		t.Fatalf("expected *tcerr.DanglingVar, got %v", err)
	}
	if target.Index != 0 {
		t.Fatalf("got index %d want 0", target.Index)
	}
}

func TestInferArrayValueSuccess(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	arr := f.Mk(term.ArrayValue{ElemType: natApp, Elems: []term.Term{f.MkNatLit(1), f.MkNatLit(2)}})

	got, err := ScTypeCheck(f, e, "", arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := term.ApplyAll(f, f.Mk(term.GlobalDef{Name: "Vec"}), []term.Term{f.MkNatLit(2), natApp})
	if !term.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestInferArrayValueElementSubtypeFailure(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	arr := f.Mk(term.ArrayValue{ElemType: natApp, Elems: []term.Term{f.MkNatLit(1), f.Mk(term.StringLit{Value: "oops"})}})

	_, err := ScTypeCheck(f, e, "", arr)
	var target *tcerr.SubtypeFailure
	if !errors.As(err, &target) {
		t.Fatalf("expected *tcerr.SubtypeFailure, got %v", err)
	}
}

func TestInferRecursorMissingConstructor(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	motive := f.Mk(term.Lambda{Name: "n", Type: f.Mk(term.DataTypeApp{Data: "Nat"}), Body: f.Mk(term.DataTypeApp{Data: "Nat"})})
	r := f.Mk(term.RecursorApp{
		Data:      "Nat",
		Motive:    motive,
		Cases:     []term.RecursorCase{{Ctor: "Zero", Value: f.MkNatLit(0)}},
		Scrutinee: f.Mk(term.CtorApp{Ctor: "Zero"}),
	})

	_, err := ScTypeCheck(f, e, "", r)
	var target *tcerr.NotFullyAppliedRec
	if !errors.As(err, &target) {
		t.Fatalf("expected *tcerr.NotFullyAppliedRec, got %v", err)
	}
	if len(target.Missing) != 1 || target.Missing[0] != ident.Local("Succ") {
		t.Fatalf("got missing=%v, want [Succ]", target.Missing)
	}
}

func TestInferRecursorOnNatSucceeds(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	motive := f.Mk(term.Lambda{Name: "n", Type: natApp, Body: natApp})
	succCase := f.Mk(term.Lambda{
		Name: "n", Type: natApp,
		Body: f.Mk(term.Lambda{Name: "ih", Type: natApp, Body: f.Mk(term.CtorApp{Ctor: "Succ", Args: []term.Term{f.MkLocalVar(0)}})}),
	})
	r := f.Mk(term.RecursorApp{
		Data:   "Nat",
		Motive: motive,
		Cases: []term.RecursorCase{
			{Ctor: "Zero", Value: f.MkNatLit(0)},
			{Ctor: "Succ", Value: succCase},
		},
		Scrutinee: f.Mk(term.CtorApp{Ctor: "Succ", Args: []term.Term{f.Mk(term.CtorApp{Ctor: "Zero"})}}),
	})

	got, err := ScTypeCheck(f, e, "", r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !term.Equal(got, natApp) {
		t.Fatalf("got %v want Nat", got)
	}
}

func TestScTypeCheckInCtxUsesSuppliedContext(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	ctx := []Binding{{Name: "x", Type: natApp}}

	got, err := ScTypeCheckInCtx(f, e, "", ctx, f.MkLocalVar(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !term.Equal(got, natApp) {
		t.Fatalf("got %v want Nat", got)
	}
}

func TestScConvertibleSharedIndexFastPath(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	a := f.MkNatLit(9)
	b := f.MkNatLit(9)
	if !ScConvertible(f, e, a, b) {
		t.Fatal("expected hash-consed equal literals to be convertible")
	}
}

func TestCheckSubtypeReportsFailure(t *testing.T) {
	f := term.NewFactory()
	e := baseEnv(f)
	err := CheckSubtype(f, e, f.MkSort(1), f.MkSort(0))
	var target *tcerr.SubtypeFailure
	if !errors.As(err, &target) {
		t.Fatalf("expected *tcerr.SubtypeFailure, got %v", err)
	}
}
