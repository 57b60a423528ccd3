package maximizer

import (
	"testing"

	"github.com/duallagrange/solver/objective"
	"github.com/duallagrange/solver/vector"
)

func TestAGDSimpleObjectiveScenario(t *testing.T) {
	agd := &AGD{
		MaxIter:         1000,
		DualTolerance:   1e-10,
		StepSize:        0.05,
		ClipNonNegative: true,
	}
	out, err := agd.Maximize(objective.NewSimple(), vector.Zero(2), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x, y := out.Lambda.At(0), out.Lambda.At(1)
	if d := x - 3; d > 1e-3 || d < -1e-3 {
		t.Fatalf("x = %v, want within 1e-3 of 3", x)
	}
	if y != 0.0 {
		t.Fatalf("y = %v, want exactly 0.0", y)
	}
}

func TestAGDConvergesBeforeMaxIter(t *testing.T) {
	agd := NewAGD(1000, 1e-8, 0.05)
	out, err := agd.Maximize(objective.NewSimple(), vector.Zero(2), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Iterations >= 1000 {
		t.Fatalf("expected convergence well before the iteration cap, used %d", out.Iterations)
	}
}
