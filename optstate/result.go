// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optstate

import "fmt"

// Result is the maximizer's terminal summary: what stopped it, how long it
// ran and the final dual value it settled on. It does not carry λ itself —
// that lives alongside it in whatever the caller returns (the maximizer
// interface returns both).
type Result struct {
	Status            Status
	Iterations        int
	Evaluations       int
	Log               Log
	FinalDualValue    float64
	ActiveConstraints int // nnz(λ) at the terminal iterate
}

// TerminalLine renders the one-line terminal message the driver logs at
// the end of a run.
func (r *Result) TerminalLine() string {
	switch r.Status {
	case Converged:
		return fmt.Sprintf("CONVERGED: dual value %.6g after %d iterations", r.FinalDualValue, r.Iterations)
	case Terminated:
		return fmt.Sprintf("TERMINATED: iteration cap reached at %d iterations, dual value %.6g", r.Iterations, r.FinalDualValue)
	case Infeasible:
		return fmt.Sprintf("INFEASIBLE: dual value %.6g exceeds primal upper bound", r.FinalDualValue)
	case Failed:
		return fmt.Sprintf("FAILED: objective raised non-differentiable at iteration %d", r.Iterations)
	default:
		return "UNKNOWN STATUS"
	}
}
