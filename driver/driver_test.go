package driver

import (
	"path/filepath"
	"testing"

	"github.com/duallagrange/solver/io/table"
	"github.com/duallagrange/solver/maximizer"
	_ "github.com/duallagrange/solver/objective"
	"github.com/duallagrange/solver/optstate"
)

func TestSingleRunWithSimplexLP(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	dp := Params{
		ProjectionType:   "Simplex",
		ObjectiveClass:   "duallagrange.objective.SimplexLP",
		SolverOutputPath: dir,
		Gamma:            1e-3,
		OutputFormat:     table.FormatAVRO,
		Verbosity:        0,
		MaxIter:          50,
	}
	ip := InputParams{Format: table.FormatAVRO}

	result, err := SingleRun(dp, ip, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != optstate.Converged && result.Status != optstate.Terminated {
		t.Fatalf("status = %v, want Converged or Terminated", result.Status)
	}
	if result.ActiveConstraints < 0 {
		t.Fatalf("ActiveConstraints should never be negative, got %d", result.ActiveConstraints)
	}
}

func TestSingleRunUnknownObjectiveIsFatal(t *testing.T) {
	dp := Params{
		ObjectiveClass:   "duallagrange.objective.DoesNotExist",
		SolverOutputPath: filepath.Join(t.TempDir(), "out"),
		MaxIter:          10,
	}
	_, err := SingleRun(dp, InputParams{}, nil, nil)
	if err == nil {
		t.Fatalf("expected an error for an unregistered objective class")
	}
}

func TestSingleRunWithSuppliedFastSolver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	dp := Params{
		ObjectiveClass:   "duallagrange.objective.SimplexLP",
		SolverOutputPath: dir,
		Gamma:            1e-3,
		OutputFormat:     table.FormatAVRO,
		MaxIter:          5,
	}
	agd := maximizer.NewAGD(5, 1e-8, 1e-3)
	result, err := SingleRun(dp, InputParams{}, nil, agd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Iterations == 0 {
		t.Fatalf("expected at least one iteration to have run")
	}
}
