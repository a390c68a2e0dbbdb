package subst

import (
	"testing"

	"github.com/vellum-lang/vellum/internal/term"
)

func TestIncVarsNoOp(t *testing.T) {
	f := term.NewFactory()
	v := f.MkLocalVar(3)
	if got := IncVars(f, 0, 0, v); got != term.Term(v) {
		t.Fatalf("incVars(_, 0, t) must be a no-op, got %v", got)
	}
}

func TestIncVarsComposes(t *testing.T) {
	f := term.NewFactory()
	v := f.Mk(term.LocalVar{Index: 2})
	lhs := IncVars(f, 1, 5, v) // a+b = 5
	rhs := IncVars(f, 1, 2, IncVars(f, 1, 3, v))
	if !term.Equal(lhs, rhs) {
		t.Fatalf("incVars(c,a+b,t) != incVars(c,a,incVars(c,b,t)): %v vs %v", lhs, rhs)
	}
}

func TestIncVarsBelowCutoffUnaffected(t *testing.T) {
	f := term.NewFactory()
	v := f.Mk(term.LocalVar{Index: 1})
	got := IncVars(f, 2, 10, v)
	if !term.Equal(got, v) {
		t.Fatalf("LocalVar(1) below cutoff 2 should be unaffected, got %v", got)
	}
}

func TestInstantiateVarListBasic(t *testing.T) {
	f := term.NewFactory()
	x := f.MkNatLit(10)
	y := f.MkNatLit(20)
	z := f.MkNatLit(30)
	ts := []term.Term{x, y, z}

	// LocalVar(0) -> x, LocalVar(1) -> y, LocalVar(2) -> z (the direct law).
	for i, want := range []term.Term{x, y, z} {
		got := InstantiateVarList(f, 0, ts, f.Mk(term.LocalVar{Index: i}))
		if !term.Equal(got, want) {
			t.Errorf("LocalVar(%d): got %v, want %v", i, got, want)
		}
	}

	// LocalVar(5) is beyond the window [0,3) and shifts down by 3 -> LocalVar(2).
	got := InstantiateVarList(f, 0, ts, f.Mk(term.LocalVar{Index: 5}))
	want := f.Mk(term.LocalVar{Index: 2})
	if !term.Equal(got, want) {
		t.Errorf("dangling beyond window: got %v, want %v", got, want)
	}
}

func TestInstantiateVarListUnderBinder(t *testing.T) {
	f := term.NewFactory()
	ts := []term.Term{f.MkNatLit(7), f.MkNatLit(8), f.MkNatLit(9)}

	// \x:Sort0. LocalVar(3) -- under one binder, absolute index 3 at depth 1
	// refers to ts[3-1-0] = ts[2] = 9 (here shift-by-depth is a no-op since
	// NatLit is closed).
	body := f.Mk(term.Lambda{Name: "x", Type: f.MkSort(0), Body: f.Mk(term.LocalVar{Index: 3})})
	got := InstantiateVarList(f, 0, ts, body)
	want := f.Mk(term.Lambda{Name: "x", Type: f.MkSort(0), Body: f.MkNatLit(9)})
	if !term.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInstantiateVarListWindowBelowK(t *testing.T) {
	f := term.NewFactory()
	ts := []term.Term{f.MkNatLit(1), f.MkNatLit(2)}
	// k=1: LocalVar(0) is below the window, left untouched.
	got := InstantiateVarList(f, 1, ts, f.Mk(term.LocalVar{Index: 0}))
	want := f.Mk(term.LocalVar{Index: 0})
	if !term.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	// LocalVar(1) -> ts[0], LocalVar(2) -> ts[1]
	got1 := InstantiateVarList(f, 1, ts, f.Mk(term.LocalVar{Index: 1}))
	if !term.Equal(got1, ts[0]) {
		t.Errorf("LocalVar(1): got %v want %v", got1, ts[0])
	}
	got2 := InstantiateVarList(f, 1, ts, f.Mk(term.LocalVar{Index: 2}))
	if !term.Equal(got2, ts[1]) {
		t.Errorf("LocalVar(2): got %v want %v", got2, ts[1])
	}
}
