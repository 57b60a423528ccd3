// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package maximizer

import (
	"errors"
	"math"

	"github.com/duallagrange/solver/objective"
	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/vector"
)

// AGD is Nesterov's accelerated gradient method applied to the dual
// maximization directly (no sign inversion, unlike the quasi-Newton
// maximizer): at each step k it forms a momentum-extrapolated trial point
//
//	λ_k = μ_k + ((k-1)/(k+2))·(μ_k - μ_{k-1})
//
// evaluates the objective there, and takes a fixed-step gradient ascent move
// to produce μ_{k+1}. Convergence is a single relative-improvement test on
// the dual value; there is no history, no line search, and (unless
// ClipNonNegative is set) no bound enforcement — this is the companion to
// C5 for unconstrained or warm-up runs, not a replacement for it.
type AGD struct {
	MaxIter       int
	DualTolerance float64
	StepSize      float64

	// ClipNonNegative projects μ onto the non-negative orthant after every
	// ascent step. The dual-multiplier sign convention (λ ≥ 0) only holds
	// for constrained runs; callers of unconstrained reformulations leave
	// this false.
	ClipNonNegative bool
}

// NewAGD builds an AGD maximizer with a fixed ascent step size.
func NewAGD(maxIter int, dualTolerance, stepSize float64) *AGD {
	return &AGD{MaxIter: maxIter, DualTolerance: dualTolerance, StepSize: stepSize}
}

func (a *AGD) Maximize(obj objective.Objective, lambda0 *vector.Sparse, verbosity int) (*Outcome, error) {
	dim := obj.DualDimensionality()

	mu := padOrTrim(lambda0.Dense(), dim)
	muPrev := append([]float64(nil), mu...)

	out := &Outcome{Status: optstate.Running}
	var lastDual float64
	haveLastDual := false

	trial := make([]float64, dim)
	for k := 1; k <= a.MaxIter; k++ {
		beta := float64(k-1) / float64(k+2)
		for i := range trial {
			trial[i] = mu[i] + beta*(mu[i]-muPrev[i])
		}

		lambda := vector.FromDense(trial)
		entry := optstate.NewEntry(k)
		res, err := obj.Calculate(lambda, entry, verbosity)
		if err != nil {
			if errors.Is(err, objective.ErrNonDifferentiable) {
				out.Status = optstate.Failed
				out.Lambda = vector.FromDense(trial)
				out.Iterations = k
				return out, nil
			}
			return nil, err
		}
		out.Log.Append(entry)
		out.Evaluations++
		out.Result = res
		out.Lambda = vector.FromDense(trial)
		out.Iterations = k

		grad := res.Gradient.Dense()
		next := make([]float64, dim)
		for i := range next {
			next[i] = trial[i] + a.StepSize*grad[i]
			if a.ClipNonNegative && next[i] < 0 {
				next[i] = 0
			}
		}

		if haveLastDual {
			denom := math.Max(math.Abs(lastDual), 1e-300)
			if math.Abs(res.DualValue-lastDual)/denom < a.DualTolerance {
				out.Status = optstate.Converged
				muPrev, mu = mu, next
				return out, nil
			}
		}
		lastDual, haveLastDual = res.DualValue, true
		muPrev, mu = mu, next
	}

	out.Status = optstate.Terminated
	return out, nil
}

func padOrTrim(x []float64, dim int) []float64 {
	if len(x) == dim {
		return append([]float64(nil), x...)
	}
	out := make([]float64, dim)
	copy(out, x)
	return out
}
