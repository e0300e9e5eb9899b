package collections

import "testing"

func TestSetOperations(t *testing.T) {
	a := NewSet(1, 2, 3)
	b := NewSet(2, 3, 4, 5)

	if a.Len() != 3 || !a.Contains(2) || a.Contains(4) {
		t.Errorf("NewSet() = %v", a)
	}

	if diff := b.Difference(a); !diff.Equal(NewSet(4, 5)) {
		t.Errorf("Difference() = %v, want {4, 5}", diff)
	}
	if inter := a.Intersection(b); !inter.Equal(NewSet(2, 3)) {
		t.Errorf("Intersection() = %v, want {2, 3}", inter)
	}

	if a.IsSubset(b) {
		t.Error("{1, 2, 3} reported as a subset of {2, 3, 4, 5}")
	}
	if !NewSet(2, 3).IsSubset(b) {
		t.Error("{2, 3} not reported as a subset of {2, 3, 4, 5}")
	}
	if !NewSet[int]().IsSubset(a) {
		t.Error("empty set not reported as a subset")
	}

	a.Remove(1)
	a.Remove(42)
	if !a.Equal(NewSet(2, 3)) {
		t.Errorf("after Remove: %v", a)
	}
}
