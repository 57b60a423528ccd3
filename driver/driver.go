// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver implements the solver driver: it composes an
// objective, an initial dual, and a maximizer, runs them to a terminal
// status, and routes the outcome to the result serializer.
package driver

import (
	"fmt"

	"github.com/duallagrange/solver/dlog"
	"github.com/duallagrange/solver/initdual"
	"github.com/duallagrange/solver/io/table"
	"github.com/duallagrange/solver/maximizer"
	"github.com/duallagrange/solver/objective"
	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/serialize"
	"github.com/duallagrange/solver/vector"
)

// Params is the driver-facing slice of the CLI surface: everything
// that controls the solve itself, as opposed to where the input data lives.
type Params struct {
	ProjectionType    string // "Simplex" | "Greedy" | ...
	ObjectiveClass    string // fully qualified factory name
	SolverOutputPath  string
	InitialLambdaPath string
	Gamma             float64
	OutputFormat      table.Format
	SavePrimal        bool
	Verbosity         int // 0, 1, 2

	// MaxIter bounds whichever maximizer is selected (AGD's iteration cap
	// or C5's); UseAccelerated picks C4 over C5 when no fastSolver is
	// supplied by the caller.
	MaxIter        int
	UseAccelerated bool
}

// InputParams describes where the objective's own data lives. SingleRun
// forwards all three fields into args (as --input.ACblocksPath=...,
// --input.vectorBPath=... and --input.format=...) for the objective factory
// to parse, alongside the CLI contract's "unknown flags are ignored
// (passed through to objective-specific parsers)". Format also selects the
// encoding of the initial-dual table.
type InputParams struct {
	ACBlocksPath string
	VectorBPath  string
	Format       table.Format
}

// SingleRun runs one solve end to end: pick a maximizer, load the
// objective and initial dual, maximize, and persist the outcome.
func SingleRun(dp Params, ip InputParams, args []string, fastSolver maximizer.Maximizer) (*optstate.Result, error) {
	log := dlog.Logger()

	// 1. Select maximizer.
	solver := fastSolver
	if solver == nil {
		if dp.UseAccelerated {
			solver = maximizer.NewAGD(dp.MaxIter, 1e-10, 1e-2)
		} else {
			solver = maximizer.NewQuasiNewton(dp.MaxIter)
		}
	}

	// 2. Instantiate the objective by name, handing its factory the input
	// locations alongside the pass-through args.
	objArgs := append(append([]string(nil), args...),
		"--input.ACblocksPath="+ip.ACBlocksPath,
		"--input.vectorBPath="+ip.VectorBPath,
		"--input.format="+string(ip.Format))
	obj, err := objective.Lookup(dp.ObjectiveClass, dp.Gamma, dp.ProjectionType, objArgs)
	if err != nil {
		return nil, fmt.Errorf("driver: loading objective %q: %w", dp.ObjectiveClass, err)
	}

	// 3. Load the initial dual.
	lambda0, err := initdual.Load(dp.InitialLambdaPath, obj.DualDimensionality(), ip.Format)
	if err != nil {
		return nil, fmt.Errorf("driver: loading initial dual: %w", err)
	}

	// 4. Run the maximizer.
	outcome, err := solver.Maximize(obj, lambda0, dp.Verbosity)
	if err != nil {
		return nil, fmt.Errorf("driver: maximize: %w", err)
	}

	// 5. Count active constraints.
	activeConstraints := outcome.Lambda.NNZ()

	result := &optstate.Result{
		Status:            outcome.Status,
		Iterations:        outcome.Iterations,
		Evaluations:       outcome.Evaluations,
		Log:               outcome.Log,
		ActiveConstraints: activeConstraints,
	}
	if outcome.Result != nil {
		result.FinalDualValue = outcome.Result.DualValue
	}

	// 6. Log a terminal status line.
	log.Info().
		Str("status", outcome.Status.String()).
		Int("iterations", outcome.Iterations).
		Int("activeConstraints", activeConstraints).
		Msg(result.TerminalLine())

	// 7. Request the primal certificate if asked to save it.
	var primal objective.PrimalView
	if dp.SavePrimal {
		view, ok := obj.PrimalForSaving(outcome.Lambda)
		if !ok {
			log.Warn().Msg("driver: savePrimal requested but objective returned no primal certificate")
		} else {
			primal = view
		}
	}

	// 8. Serialize everything.
	var slack *vector.Sparse
	if outcome.Result != nil {
		slack = outcome.Result.Slack
	}
	if err := serialize.Write(serialize.Artifacts{
		OutputDir:    dp.SolverOutputPath,
		Format:       dp.OutputFormat,
		Log:          outcome.Log,
		TerminalLine: result.TerminalLine(),
		Lambda:       outcome.Lambda,
		Slack:        slack,
		Primal:       primal,
	}); err != nil {
		return nil, fmt.Errorf("driver: serializing outputs: %w", err)
	}

	return result, nil
}
