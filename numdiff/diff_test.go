package numdiff

import "testing"

func TestGradientQuadratic(t *testing.T) {
	f := func(x []float64) float64 { return x[0]*x[0] + 3*x[1]*x[1] }
	got := Gradient(f, []float64{2, -1})
	want := []float64{4, -6}
	for i := range want {
		if d := got[i] - want[i]; d > 1e-4 || d < -1e-4 {
			t.Fatalf("component %d: got %v want %v", i, got[i], want[i])
		}
	}
}
