package vector

import "testing"

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if d := got - want; d > tol || d < -tol {
		t.Fatalf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func TestNewSparseSortsAndDropsZeros(t *testing.T) {
	s := NewSparse(5, []int32{3, 0, 1}, []float64{1, 0, 2})
	if len(s.Index) != 2 {
		t.Fatalf("expected 2 explicit entries, got %d", len(s.Index))
	}
	if s.Index[0] != 1 || s.Index[1] != 3 {
		t.Fatalf("expected sorted indices [1 3], got %v", s.Index)
	}
	approxEqual(t, s.At(1), 2, 0)
	approxEqual(t, s.At(3), 1, 0)
	approxEqual(t, s.At(2), 0, 0)
}

func TestDenseRoundTrip(t *testing.T) {
	x := []float64{0, 2, 0, -4, 0}
	s := FromDense(x)
	if s.NNZ() != 2 {
		t.Fatalf("expected nnz 2, got %d", s.NNZ())
	}
	got := s.Dense()
	for i, v := range x {
		approxEqual(t, got[i], v, 0)
	}
}

func TestDot(t *testing.T) {
	a := NewSparse(4, []int32{0, 2}, []float64{2, 3})
	b := NewSparse(4, []int32{2, 3}, []float64{5, 7})
	approxEqual(t, Dot(a, b), 15, 1e-12)
}

func TestAddAndScale(t *testing.T) {
	a := NewSparse(3, []int32{0, 1}, []float64{1, 2})
	b := NewSparse(3, []int32{1, 2}, []float64{10, 20})
	sum := Add(a, b, 2)
	approxEqual(t, sum.At(0), 1, 1e-12)
	approxEqual(t, sum.At(1), 22, 1e-12)
	approxEqual(t, sum.At(2), 40, 1e-12)

	scaled := Scale(a, -1)
	approxEqual(t, scaled.At(0), -1, 1e-12)
	approxEqual(t, scaled.At(1), -2, 1e-12)
}

func TestMaxViolation(t *testing.T) {
	g := NewSparse(3, []int32{0, 1, 2}, []float64{1, -2, -0.5})
	approxEqual(t, MaxViolation(g), 2, 1e-12)

	allGood := NewSparse(3, []int32{0, 1}, []float64{1, 2})
	approxEqual(t, MaxViolation(allGood), 0, 1e-12)
}
