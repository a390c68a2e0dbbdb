package term

import "testing"

func TestFreeVarsLocalVar(t *testing.T) {
	fv := computeFreeVars(LocalVar{Index: 3})
	if !fv.Has(3) || fv.Has(2) || fv.Has(4) {
		t.Fatalf("LocalVar(3) free vars wrong: %+v", fv)
	}
}

func TestFreeVarsLambdaShifts(t *testing.T) {
	// \x:Sort0. #0 -- the bound occurrence must not escape as free.
	body := Lambda{Name: "x", Type: Sort{Level: 0}, Body: LocalVar{Index: 0}}
	fv := computeFreeVars(body)
	if !fv.Empty() {
		t.Fatalf("expected no free vars, got %+v", fv)
	}

	// \x:Sort0. #1 -- the outer variable #0 is free (shifted down from #1).
	open := Lambda{Name: "x", Type: Sort{Level: 0}, Body: LocalVar{Index: 1}}
	fv2 := computeFreeVars(open)
	if !fv2.Has(0) || fv2.Has(1) {
		t.Fatalf("expected free var 0 only, got %+v", fv2)
	}
}

func TestFreeVarsLet(t *testing.T) {
	// let x:#0 = #2 in #1 -- n=1: tp is taken raw (#0), eq>>1 gives #1 and
	// free(r)>>1 gives #0.
	l := Let{
		Defs: []LetDef{{Name: "x", Type: LocalVar{Index: 0}, Value: LocalVar{Index: 2}}},
		Body: LocalVar{Index: 1},
	}
	fv := computeFreeVars(l)
	if !fv.Has(0) || !fv.Has(1) || fv.Has(2) {
		t.Fatalf("unexpected free vars: %+v", fv)
	}
}

func TestConstantIsClosed(t *testing.T) {
	c := Constant{Name: "id", Definition: LocalVar{Index: 0}, DeclaredType: LocalVar{Index: 5}}
	if !computeFreeVars(c).Empty() {
		t.Fatalf("Constant must be treated as closed")
	}
}

func TestFactorySharingByIndex(t *testing.T) {
	f := NewFactory()
	a := f.MkPi("x", f.MkSort(0), f.MkSort(0))
	b := f.MkPi("x", f.MkSort(0), f.MkSort(0))
	if a != b {
		t.Fatalf("expected structurally identical Pi nodes to be shared")
	}
	if a.Idx != b.Idx {
		t.Fatalf("expected equal indices for shared nodes")
	}
	if !Equal(a, b) {
		t.Fatalf("Equal() should use index fast-path (I4)")
	}
}

func TestFactoryDistinguishesDifferentNodes(t *testing.T) {
	f := NewFactory()
	a := f.MkSort(0)
	b := f.MkSort(1)
	if a == b || a.Idx == b.Idx {
		t.Fatalf("Sort(0) and Sort(1) must not share an index")
	}
}

func TestApplyAll(t *testing.T) {
	f := NewFactory()
	g := f.Mk(GlobalDef{Name: "f"})
	applied := ApplyAll(f, g, []Term{f.MkNatLit(1), f.MkNatLit(2)})
	want := "((f 1) 2)"
	if applied.String() != want {
		t.Fatalf("ApplyAll: got %q want %q", applied.String(), want)
	}
}
