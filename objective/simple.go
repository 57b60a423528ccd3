// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objective

import (
	"math"

	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/vector"
)

// Simple is a closed-form concave quadratic test fixture:
//
//	d(x,y) = -(x-3)^2 - (y+2)^2,  ∇d = (-2(x-3), -2(y+2))
//
// It has no real primal/dual split — PrimalValue mirrors DualValue and
// Slack mirrors the gradient — and exists purely to exercise the two
// maximizers against a function whose optimum (3, -2) is known exactly.
type Simple struct {
	BaseInfeasibility
}

// NewSimple builds a Simple fixture with the infeasibility check disabled.
func NewSimple() *Simple {
	return &Simple{BaseInfeasibility{Bound: math.Inf(1)}}
}

func (s *Simple) DualDimensionality() int { return 2 }

func (s *Simple) Calculate(lambda *vector.Sparse, entry *optstate.Entry, verbosity int) (*Result, error) {
	x, y := lambda.At(0), lambda.At(1)
	dx, dy := x-3, y+2
	value := -(dx*dx) - (dy * dy)
	grad := vector.NewSparse(2, []int32{0, 1}, []float64{-2 * dx, -2 * dy})

	res := &Result{
		DualValue:        value,
		Gradient:         grad,
		PrimalValue:      value,
		PrimalUpperBound: s.Bound,
		Slack:            grad,
		MaxSlack:         vector.MaxViolation(grad),
	}
	entry.Finish(res.DualValue, res.MaxSlack)
	return res, nil
}

func (s *Simple) PrimalForSaving(lambda *vector.Sparse) (PrimalView, bool) {
	return nil, false
}

// QuadraticProbe is a second quadratic test fixture, reverse-engineered to
// produce a known (value, gradient) pair at λ=(1,1): dualObjective=-40,
// gradient=(4,-12) — see DESIGN.md Open Questions. Used only to test that
// Calculate's (value, gradient) pairing round-trips through the sparse
// boundary correctly; not used by either maximizer's convergence tests.
type QuadraticProbe struct {
	BaseInfeasibility
}

func NewQuadraticProbe() *QuadraticProbe {
	return &QuadraticProbe{BaseInfeasibility{Bound: math.Inf(1)}}
}

func (q *QuadraticProbe) DualDimensionality() int { return 2 }

func (q *QuadraticProbe) Calculate(lambda *vector.Sparse, entry *optstate.Entry, verbosity int) (*Result, error) {
	x, y := lambda.At(0), lambda.At(1)
	value := 2*x*x - 6*y*y - 36
	grad := vector.NewSparse(2, []int32{0, 1}, []float64{4 * x, -12 * y})
	res := &Result{
		DualValue:        value,
		Gradient:         grad,
		PrimalValue:      value,
		PrimalUpperBound: q.Bound,
		Slack:            grad,
		MaxSlack:         vector.MaxViolation(grad),
	}
	entry.Finish(res.DualValue, res.MaxSlack)
	return res, nil
}

func (q *QuadraticProbe) PrimalForSaving(lambda *vector.Sparse) (PrimalView, bool) {
	return nil, false
}
