package projection

import "testing"

func approxEqual(t *testing.T, got, want, tol float64) {
	t.Helper()
	if d := got - want; d > tol || d < -tol {
		t.Fatalf("got %v, want %v (tol %v)", got, want, tol)
	}
}

func TestSimplexAlreadyFeasible(t *testing.T) {
	x, err := Simplex([]float64{0.2, 0.3, 0.5}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := 0.0
	for _, v := range x {
		sum += v
		if v < 0 {
			t.Fatalf("negative component: %v", x)
		}
	}
	approxEqual(t, sum, 1, 1e-9)
}

func TestSimplexClipsNegative(t *testing.T) {
	x, err := Simplex([]float64{2, -1, -1}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	approxEqual(t, x[0], 1, 1e-9)
	approxEqual(t, x[1], 0, 1e-9)
	approxEqual(t, x[2], 0, 1e-9)
}

func TestSimplexTieDetected(t *testing.T) {
	// constructed so the smaller active component's post-projection value
	// is ~1e-9: an infinitesimal perturbation would drop it from the
	// active set.
	_, err := Simplex([]float64{2, 1.000000002}, 1e-6)
	if err != ErrTie {
		t.Fatalf("expected ErrTie, got %v", err)
	}
}

func TestSimplexNoTieWhenMarginClear(t *testing.T) {
	x, err := Simplex([]float64{10, 1, 0.5}, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	approxEqual(t, sum, 1, 1e-9)
}

func TestGreedy(t *testing.T) {
	low := []float64{0, 0, 0}
	high := []float64{1, 1, 1}
	cost := []float64{1, -1, 0}
	x := Greedy(low, high, cost)
	approxEqual(t, x[0], 0, 0)
	approxEqual(t, x[1], 1, 0)
	approxEqual(t, x[2], 0, 0)
}
