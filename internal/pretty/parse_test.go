package pretty

import (
	"testing"

	"github.com/vellum-lang/vellum/internal/term"
)

func TestParseRoundTripsSimpleTerms(t *testing.T) {
	f := term.NewFactory()
	cases := []term.Term{
		f.Mk(term.Pi{Name: "x", Type: f.MkSort(0), Body: f.MkSort(0)}),
		f.Mk(term.Lambda{Name: "x", Type: f.MkSort(0), Body: f.MkLocalVar(0)}),
		f.MkApp(f.Mk(term.GlobalDef{Name: "f"}), f.Mk(term.GlobalDef{Name: "x"})),
		f.MkNatLit(42),
		f.Mk(term.StringLit{Value: "hello world"}),
		f.MkUnitType(),
		f.MkUnitValue(),
		f.MkPairType(f.MkSort(0), f.MkSort(0)),
		f.MkPairValue(f.MkNatLit(1), f.MkNatLit(2)),
	}
	for _, want := range cases {
		src := Sprint(want)
		got, err := Parse(f, src)
		if err != nil {
			t.Fatalf("Parse(%q): %v", src, err)
		}
		if !term.Equal(got, want) {
			t.Fatalf("round trip mismatch for %q: got %v want %v", src, got, want)
		}
	}
}

func TestParseDataTypeAppAndCtorApp(t *testing.T) {
	f := term.NewFactory()
	got, err := Parse(f, "(Data Nat)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := f.Mk(term.DataTypeApp{Data: "Nat"})
	if !term.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	got, err = Parse(f, "(Ctor Succ 0)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = f.Mk(term.CtorApp{Ctor: "Succ", Args: []term.Term{f.MkNatLit(0)}})
	if !term.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseRejectsTrailingInput(t *testing.T) {
	f := term.NewFactory()
	_, err := Parse(f, "(Sort 0) (Sort 1)")
	if err == nil {
		t.Fatal("expected error for trailing input")
	}
}

func TestParseRejectsUnknownHead(t *testing.T) {
	f := term.NewFactory()
	_, err := Parse(f, "(Bogus 1 2)")
	if err == nil {
		t.Fatal("expected error for unknown head")
	}
}

func TestParseFieldChainAndSelector(t *testing.T) {
	f := term.NewFactory()
	src := "(Select (FieldValue a 1 (EmptyRecordValue)) a)"
	got, err := Parse(f, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := f.Mk(term.RecordSelector{
		Record: f.Mk(term.FieldValue{Name: "a", Value: f.MkNatLit(1), Rest: f.Mk(term.EmptyRecordValue{})}),
		Name:   "a",
	})
	if !term.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
