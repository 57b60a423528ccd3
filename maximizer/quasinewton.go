// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package maximizer

import (
	"fmt"
	"math"

	"github.com/curioloop/optimizer/lbfgsb"

	"github.com/duallagrange/solver/objective"
	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/vector"
)

// QuasiNewton is the bound-constrained quasi-Newton maximizer: it
// drives curioloop/optimizer's L-BFGS-B engine over the reformulation
// minimize −d(λ) subject to λ ≥ 0, with a convergence controller layered
// on the evaluation callback. The engine's own convergence tests are
// deliberately neutralized (ProjGradTolerance 0, EpsAccuracyFactor NaN,
// GradDescentThreshold 0): the controller below decides when to stop, and
// signals the engine by handing back a zero gradient once it has, which
// the engine's own projected-gradient test then reads as a stationary
// point on its very next check.
type QuasiNewton struct {
	MaxIter                int
	HistorySize            int // L-BFGS correction pairs kept, default 50
	DualTolerance          float64
	SlackTolerance         float64
	HoldConvergenceForIter int
}

// NewQuasiNewton builds a QuasiNewton maximizer with the default convergence
// controller settings (history 50, dualTolerance 1e-8, slackTolerance 5e-6,
// hold window 10).
func NewQuasiNewton(maxIter int) *QuasiNewton {
	return &QuasiNewton{
		MaxIter:                maxIter,
		HistorySize:            50,
		DualTolerance:          1e-8,
		SlackTolerance:         5e-6,
		HoldConvergenceForIter: 10,
	}
}

func (q *QuasiNewton) Maximize(obj objective.Objective, lambda0 *vector.Sparse, verbosity int) (*Outcome, error) {
	dim := obj.DualDimensionality()
	x0 := padOrTrim(lambda0.Dense(), dim)

	out := &Outcome{Status: optstate.Running}

	if q.MaxIter <= 0 {
		out.Status = optstate.Terminated
		out.Lambda = vector.FromDense(x0)
		return out, nil
	}

	bounds := make([]lbfgsb.Bound, dim)
	for i := range bounds {
		bounds[i] = lbfgsb.Bound{Lower: 0, Upper: math.NaN()}
	}

	var lastResult *objective.Result
	var lastLambda []float64
	lastUsefulIter := 0
	callIndex := 0
	var nonDifferentiable error

	eval := func(x []float64, g []float64) (f float64) {
		callIndex++
		entry := optstate.NewEntry(callIndex)
		lambda := vector.FromDense(x)
		res, err := obj.Calculate(lambda, entry, verbosity)
		if err != nil {
			nonDifferentiable = err
			out.Status = optstate.Failed
			panic(err) // unwinds out of the engine; recovered around optimizer.Fit below
		}
		out.Log.Append(entry)
		out.Evaluations++

		// Iterations 0 and 1 (the first two calls) only bootstrap the
		// engine's state before its first real step; the controller has
		// nothing meaningful to compare against yet.
		if callIndex > 2 {
			if res.MaxSlack < q.SlackTolerance && callIndex-lastUsefulIter > q.HoldConvergenceForIter {
				out.Status = optstate.Converged
			}
		}

		if lastResult == nil || relativeImprovement(res.DualValue, lastResult.DualValue) > q.DualTolerance {
			lastUsefulIter = callIndex
			lastResult = res
			lastLambda = append([]float64(nil), x...)
			if obj.CheckInfeasibility(res) {
				out.Status = optstate.Infeasible
			}
		}

		if out.Status != optstate.Running {
			for i := range g {
				g[i] = 0
			}
			return -res.DualValue
		}

		grad := res.Gradient.Dense()
		copy(g, grad)
		for i := range g {
			g[i] = -g[i]
		}
		return -res.DualValue
	}

	problem := lbfgsb.Problem{
		N:    dim,
		M:    q.HistorySize,
		Eval: eval,
		Stop: lbfgsb.Termination{
			MaxIterations:        q.MaxIter,
			ProjGradTolerance:    0,
			EpsAccuracyFactor:    math.NaN(),
			GradDescentThreshold: 0,
		},
		Bounds: bounds,
	}

	optimizer, err := problem.New(nil)
	if err != nil {
		return nil, fmt.Errorf("maximizer: invalid L-BFGS-B problem: %w", err)
	}
	ws := optimizer.Init()
	numIter := 0
	func() {
		defer func() {
			if r := recover(); r != nil && nonDifferentiable == nil {
				panic(r)
			}
		}()
		numIter = optimizer.Fit(x0, ws).NumIter
	}()

	_ = nonDifferentiable // already folded into out.Status inside the closure

	switch out.Status {
	case optstate.Failed, optstate.Infeasible, optstate.Converged:
		// decided inside the closure
	default:
		if numIter >= q.MaxIter {
			out.Status = optstate.Terminated
		} else {
			out.Status = optstate.Converged
		}
	}

	out.Result = lastResult
	out.Iterations = lastUsefulIter
	if lastLambda != nil {
		out.Lambda = vector.FromDense(lastLambda)
	} else {
		out.Lambda = vector.FromDense(x0)
	}
	return out, nil
}

// relativeImprovement reports (current - previous) / |previous|, the
// quantity the useful-improvement filter compares against dualTolerance.
func relativeImprovement(current, previous float64) float64 {
	denom := math.Max(math.Abs(previous), 1e-300)
	return (current - previous) / denom
}
