// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package maximizer implements the dual-ascent engines: a Nesterov
// accelerated-gradient maximizer for unconstrained or warm-up runs, and a
// bound-constrained quasi-Newton maximizer (L-BFGS-B over the non-negative
// orthant) with a custom convergence controller layered on top.
package maximizer

import (
	"github.com/duallagrange/solver/objective"
	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/vector"
)

// Outcome is what a Maximizer hands back to the driver: the terminal
// status, the λ at that status, the last useful evaluation result, and the
// accumulated iteration log.
type Outcome struct {
	Status      optstate.Status
	Lambda      *vector.Sparse
	Result      *objective.Result
	Iterations  int
	Evaluations int
	Log         optstate.Log
}

// Maximizer ascends the dual objective from an initial λ until it reaches a
// terminal status (Converged, Terminated, Infeasible, or Failed).
type Maximizer interface {
	Maximize(obj objective.Objective, lambda0 *vector.Sparse, verbosity int) (*Outcome, error)
}
