package env

import (
	"strings"
	"testing"

	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/term"
)

const natManifest = `
globals:
  String: { sort: 0 }
datatypes:
  - name: Nat
    params: []
    indices: []
    sort: 0
    ctors:
      - {name: Zero, args: 0}
      - {name: Succ, args: 1}
`

func TestLoadManifestNat(t *testing.T) {
	f := term.NewFactory()
	e, err := LoadManifest(f, strings.NewReader(natManifest))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	if ty, ok := e.TypeOfGlobal(ident.Local("String")); !ok || !term.Equal(ty, f.MkSort(0)) {
		t.Fatalf("global String: got %v, %v", ty, ok)
	}

	dt, ok := e.FindDataType(ident.Local("Nat"))
	if !ok {
		t.Fatalf("datatype Nat not found")
	}
	if !term.Equal(dt.Type, f.MkSort(0)) {
		t.Fatalf("Nat type: got %v, want Sort 0", dt.Type)
	}
	if dt.NumParams != 0 || dt.NumIndices != 0 || len(dt.Ctors) != 2 {
		t.Fatalf("Nat shape wrong: %+v", dt)
	}

	zero, ok := e.FindCtor(ident.Local("Zero"))
	if !ok || zero.NumArgs != 0 {
		t.Fatalf("Zero: %+v %v", zero, ok)
	}
	natApp := f.Mk(term.DataTypeApp{Data: "Nat"})
	if !term.Equal(zero.Type, natApp) {
		t.Fatalf("Zero type: got %v want %v", zero.Type, natApp)
	}

	succ, ok := e.FindCtor(ident.Local("Succ"))
	if !ok || succ.NumArgs != 1 {
		t.Fatalf("Succ: %+v %v", succ, ok)
	}
	wantSucc := f.Mk(term.Pi{Name: "_", Type: natApp, Body: natApp})
	if !term.Equal(succ.Type, wantSucc) {
		t.Fatalf("Succ type: got %v want %v", succ.Type, wantSucc)
	}
}

func TestLoadManifestRejectsUnnamedDataType(t *testing.T) {
	f := term.NewFactory()
	_, err := LoadManifest(f, strings.NewReader("datatypes:\n  - sort: 0\n"))
	if err == nil {
		t.Fatalf("expected an error for an unnamed datatype")
	}
}
