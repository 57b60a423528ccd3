package objective

import (
	"testing"

	"github.com/duallagrange/solver/numdiff"
	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/vector"
)

func TestSyntheticFixtureShape(t *testing.T) {
	blocks, b := SyntheticFixture(100, 20)
	if len(b) != 100 {
		t.Fatalf("expected 100 coupling constraints, got %d", len(b))
	}
	if len(blocks) != 20 {
		t.Fatalf("expected 20 blocks, got %d", len(blocks))
	}
	for _, blk := range blocks {
		if len(blk.Coupling) != 100 {
			t.Fatalf("expected each block to carry a row per coupling constraint, got %d", len(blk.Coupling))
		}
	}
}

func TestSimplexLPCalculateFeasiblePrimal(t *testing.T) {
	blocks, b := SyntheticFixture(20, 4)
	s := NewSimplexLP(blocks, b, 1.0, "Simplex", infUpperBound)
	res, err := s.Calculate(vector.Zero(len(b)), optstate.NewEntry(0), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := res.Primal.ToRows()
	offset := int32(0)
	for _, blk := range blocks {
		sum := 0.0
		for _, row := range rows {
			if row.Index >= offset && row.Index < offset+int32(len(blk.Reward)) {
				sum += row.Value
				if row.Value < -1e-9 {
					t.Fatalf("negative simplex component: %v", row.Value)
				}
			}
		}
		approxEqual(t, sum, 1, 1e-6)
		offset += int32(len(blk.Reward))
	}
}

func TestSimplexLPGradientMatchesNumdiff(t *testing.T) {
	blocks, b := SyntheticFixture(12, 3)
	s := NewSimplexLP(blocks, b, 2.0, "Simplex", infUpperBound)
	x0 := make([]float64, len(b))
	for i := range x0 {
		x0[i] = 0.05 * float64(i+1)
	}
	lambda := vector.FromDense(x0)
	res, err := s.Calculate(lambda, optstate.NewEntry(0), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dual := func(x []float64) float64 {
		lam := vector.FromDense(x)
		r, err := s.Calculate(lam, optstate.NewEntry(0), 0)
		if err != nil {
			t.Fatalf("unexpected error in numdiff probe: %v", err)
		}
		return r.DualValue
	}
	numGrad := numdiff.Gradient(dual, x0)
	got := res.Gradient.Dense()
	for i := range numGrad {
		approxEqual(t, got[i], numGrad[i], 1e-4)
	}
}

func TestSimplexLPGreedyProjection(t *testing.T) {
	blocks, b := SyntheticFixture(6, 2)
	for i := range blocks {
		d := len(blocks[i].Reward)
		blocks[i].Low = make([]float64, d)
		blocks[i].High = make([]float64, d)
		for j := range blocks[i].High {
			blocks[i].High[j] = 1
		}
	}
	s := NewSimplexLP(blocks, b, 1.0, "Greedy", infUpperBound)
	res, err := s.Calculate(vector.Zero(len(b)), optstate.NewEntry(0), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, row := range res.Primal.ToRows() {
		if row.Value != 0 && row.Value != 1 {
			t.Fatalf("expected greedy box solution to sit at a bound, got %v", row.Value)
		}
	}
}

func TestSyntheticFixtureCarriesGreedyBounds(t *testing.T) {
	blocks, _ := SyntheticFixture(20, 4)
	for i, blk := range blocks {
		if len(blk.Low) != len(blk.Reward) || len(blk.High) != len(blk.Reward) {
			t.Fatalf("block %d: Low/High not sized to match Reward (got %d/%d, want %d)",
				i, len(blk.Low), len(blk.High), len(blk.Reward))
		}
	}
}

func TestLookupWithGreedyProjectionDoesNotPanic(t *testing.T) {
	obj, err := Lookup(SimplexLPFactoryName, 1.0, "Greedy", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := obj.Calculate(vector.Zero(obj.DualDimensionality()), optstate.NewEntry(0), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSimplexLPGreedyMissingBoundsIsAnError(t *testing.T) {
	blocks, b := SyntheticFixture(6, 2)
	for i := range blocks {
		blocks[i].Low = nil
		blocks[i].High = nil
	}
	s := NewSimplexLP(blocks, b, 1.0, "Greedy", infUpperBound)
	_, err := s.Calculate(vector.Zero(len(b)), optstate.NewEntry(0), 0)
	if err == nil {
		t.Fatalf("expected a descriptive error for a Greedy block with no box bounds")
	}
}

func TestSimplexLPNonDifferentiableOnTie(t *testing.T) {
	blocks := []Block{{
		Reward:   []float64{1, 1},
		Coupling: [][]float64{{1, 1}},
	}}
	b := []float64{1}
	s := NewSimplexLP(blocks, b, 1.0, "Simplex", infUpperBound)
	s.TieEps = 10 // force the tie detector to always fire for this test
	_, err := s.Calculate(vector.Zero(1), optstate.NewEntry(0), 0)
	if err == nil {
		t.Fatalf("expected a non-differentiability error")
	}
}

func TestSimplexLPDualDimensionality(t *testing.T) {
	blocks, b := SyntheticFixture(30, 5)
	s := NewSimplexLP(blocks, b, 1.0, "Simplex", infUpperBound)
	if got := s.DualDimensionality(); got != 30 {
		t.Fatalf("got %d, want 30", got)
	}
}
