package ident

import "testing"

func TestIdentString(t *testing.T) {
	tests := []struct {
		name string
		id   Ident
		want string
	}{
		{"local", Local("Nat"), "Nat"},
		{"qualified", New("data.nat", "Nat"), "data.nat.Nat"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestIdentLess(t *testing.T) {
	a := New("m", "A")
	b := New("m", "B")
	if !a.Less(b) {
		t.Errorf("expected %v < %v", a, b)
	}
	if b.Less(a) {
		t.Errorf("did not expect %v < %v", b, a)
	}
}

func TestSortArithmetic(t *testing.T) {
	if SortOf(0) != 1 || SortOf(3) != 4 {
		t.Errorf("SortOf broken: SortOf(0)=%d SortOf(3)=%d", SortOf(0), SortOf(3))
	}
	if Max(2, 5) != 5 || Max(5, 2) != 5 {
		t.Errorf("Max broken")
	}
	if !Prop.IsProp() {
		t.Errorf("Prop.IsProp() should be true")
	}
	if Sort(1).IsProp() {
		t.Errorf("Sort(1).IsProp() should be false")
	}
	if !Sort(1).Leq(Sort(2)) || Sort(2).Leq(Sort(1)) {
		t.Errorf("Leq cumulativity broken")
	}
}
