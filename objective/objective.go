// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objective defines the contract every LP flavor implements:
// given a dual λ, evaluate the dual value, its gradient, the primal inner
// solution and the constraint slack. Concrete production objectives (a
// matching LP, an inventory LP, ...) are external collaborators; this
// package only fixes the interface and ships two small reference
// implementations used by the solver's own tests.
package objective

import (
	"errors"
	"math"

	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/vector"
)

// ErrNonDifferentiable is raised by Calculate when the inner argmax is
// non-unique at λ (e.g. a simplex projection hitting a tie). The L-BFGS-B
// maximizer catches it and converts it into Status = Failed.
var ErrNonDifferentiable = errors.New("objective: non-differentiable at this lambda")

// PrimalView is an opaque, objective-defined primal certificate. Objectives
// that can produce one implement ToRows to make it persistable by C8; those
// that can't simply never return one from PrimalForSaving.
type PrimalView interface {
	// ToRows renders the primal certificate as a flat (index, value) table
	// in whatever schema the objective considers meaningful.
	ToRows() []PrimalRow
}

// PrimalRow is one entry of a persisted primal certificate.
type PrimalRow struct {
	Index int32
	Value float64
}

// Result is the immutable outcome of one Calculate call.
type Result struct {
	DualValue        float64
	Gradient         *vector.Sparse // g(λ) = b - A x⋆(λ)
	PrimalValue      float64
	PrimalUpperBound float64 // +Inf when no bound is configured
	Slack            *vector.Sparse
	MaxSlack         float64 // max_i max(0, -g_i)
	Primal           PrimalView
}

// Objective is the polymorphic entity every LP flavor implements.
type Objective interface {
	// Calculate evaluates dual value, gradient, primal inner solution and
	// slack at λ. Deterministic given λ. Must populate entry's timing
	// fields via entry.Finish before returning. May return
	// ErrNonDifferentiable when the inner argmax is non-unique at λ.
	Calculate(lambda *vector.Sparse, entry *optstate.Entry, verbosity int) (*Result, error)

	// DualDimensionality returns the fixed dimension of λ.
	DualDimensionality() int

	// PrimalUpperBound returns any finite valid primal objective value, or
	// +Inf to disable the infeasibility check.
	PrimalUpperBound() float64

	// CheckInfeasibility returns true when res.DualValue exceeds
	// PrimalUpperBound() by more than ε — a certificate of primal
	// infeasibility by weak duality.
	CheckInfeasibility(res *Result) bool

	// PrimalForSaving returns the final primal certificate for λ, if the
	// objective can produce one.
	PrimalForSaving(lambda *vector.Sparse) (PrimalView, bool)
}

// InfeasibilityEpsilon is the default ε used by BaseInfeasibility.
const InfeasibilityEpsilon = 1e-9

// BaseInfeasibility implements the standard CheckInfeasibility rule and is
// meant to be embedded by concrete objectives so they don't each re-derive
// the weak-duality comparison.
type BaseInfeasibility struct {
	Bound float64 // primal upper bound; math.Inf(1) disables the check
}

// PrimalUpperBound implements part of Objective.
func (b BaseInfeasibility) PrimalUpperBound() float64 { return b.Bound }

// CheckInfeasibility implements Objective.CheckInfeasibility.
func (b BaseInfeasibility) CheckInfeasibility(res *Result) bool {
	if math.IsInf(b.Bound, 1) {
		return false
	}
	return res.DualValue > b.Bound+InfeasibilityEpsilon
}
