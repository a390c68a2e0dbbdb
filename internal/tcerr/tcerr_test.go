package tcerr

import (
	"errors"
	"testing"

	"github.com/vellum-lang/vellum/internal/ident"
	"github.com/vellum-lang/vellum/internal/term"
)

func TestErrorMessages(t *testing.T) {
	f := term.NewFactory()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"NotSort", NewNotSortError(f.MkNatLit(1)), "expected a sort, got 1"},
		{"NotFuncType", NewNotFuncTypeError(f.MkSort(0)), "expected a function type, got Sort 0"},
		{"BadTupleIndex", NewBadTupleIndexError(2), "bad tuple index: 2"},
		{"DanglingVar", NewDanglingVarError(7), "dangling variable #7"},
		{"UnboundName", NewUnboundNameError(ident.Local("foo")), "unbound name: foo"},
		{"EmptyVectorLit", NewEmptyVectorLitError(), "empty vector literal with no element type"},
		{"NoSuchDataType", NewNoSuchDataTypeError(ident.Local("Vec")), "no such datatype: Vec"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubtypeFailure(t *testing.T) {
	f := term.NewFactory()
	err := NewSubtypeFailureError(f.MkSort(1), f.MkSort(0))
	want := "not a subtype: Sort 1 is not a subtype of Sort 0"
	if got := err.Error(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestErrorPosUnwraps(t *testing.T) {
	inner := NewUnboundNameError(ident.Local("x"))
	wrapped := NewErrorPos(Pos{Line: 3, Col: 5}, inner)

	if got, want := wrapped.Error(), "at 3:5: unbound name: x"; got != want {
		t.Errorf("got %q want %q", got, want)
	}
	var target *UnboundName
	if !errors.As(wrapped, &target) {
		t.Fatalf("errors.As should unwrap ErrorPos down to *UnboundName")
	}
	if target.Name != ident.Local("x") {
		t.Errorf("unwrapped error has wrong name: %v", target.Name)
	}
}

func TestErrorCtxUnwraps(t *testing.T) {
	f := term.NewFactory()
	inner := NewNotSortError(f.MkNatLit(5))
	wrapped := NewErrorCtx("n", f.MkSort(0), inner)

	var target *NotSort
	if !errors.As(wrapped, &target) {
		t.Fatalf("errors.As should unwrap ErrorCtx down to *NotSort")
	}
	if !errors.Is(wrapped, inner) {
		t.Fatalf("errors.Is should see through ErrorCtx to the inner error")
	}
}

func TestBadParamsOrArgsLengthMessage(t *testing.T) {
	err := NewBadParamsOrArgsLengthError(true, ident.Local("Vec"), 1, 2, 1, 0)
	want := "datatype Vec: want 1 params / 1 args, got 2 params / 0 args"
	if got := err.Error(); got != want {
		t.Errorf("got %q want %q", got, want)
	}
}
