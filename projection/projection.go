// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package projection implements the two inner primal subproblems a
// block-separable LP's blocks can use to solve
//
//	max_{x in X_block} reward . x - (1/2γ) ||x||^2
//
// the quadratic-regularized reward every block maximizes given the current
// dual λ (gamma comes from the driver's --driver.gamma flag). When
// X_block is a probability simplex this reduces to a Euclidean projection;
// when it's a box it reduces to a coordinate-wise argmin (the regularizer
// has no effect on a box's vertex-or-interior optimum along each axis, so
// Greedy ignores it entirely).
package projection

import (
	"errors"
	"math"
	"sort"
)

// ErrTie is returned by Simplex when the smallest strictly-active output
// component falls within tieEps of the simplex boundary — an infinitesimal
// change in the reward would drop it from the support, so the block's
// primal optimum (and the dual gradient built on it) is not well-defined at
// this λ.
var ErrTie = errors.New("projection: tie at the active set boundary")

// Simplex projects reward onto the probability simplex {x : x_i >= 0, sum x
// = 1} using the classic sort-and-threshold algorithm (Duchi et al., 2008).
// Callers solving the γ-regularized block problem pass gamma*reward, per the
// standard equivalence argmax_{x in Δ} c'x - ||x||²/2γ = Proj_Δ(γc).
// tieEps controls the tie check: if the smallest strictly-active output
// component is within tieEps of zero, ErrTie is returned instead of
// silently keeping an unstable active set.
func Simplex(reward []float64, tieEps float64) ([]float64, error) {
	n := len(reward)
	u := append([]float64(nil), reward...)
	sort.Sort(sort.Reverse(sort.Float64Slice(u)))

	cumsum := 0.0
	theta := 0.0
	for i, ui := range u {
		cumsum += ui
		t := (cumsum - 1) / float64(i+1)
		if ui-t > 0 {
			theta = t
		}
	}

	out := make([]float64, n)
	smallestActive := math.Inf(1)
	for i, r := range reward {
		if x := r - theta; x > 0 {
			out[i] = x
			if x < smallestActive {
				smallestActive = x
			}
		}
	}

	if tieEps > 0 && smallestActive <= tieEps {
		return nil, ErrTie
	}
	return out, nil
}

// Greedy solves the coordinate-wise box argmin: for each i, picks low[i] if
// cost[i] >= 0 (pushing the coordinate down decreases the objective) and
// high[i] otherwise. This is the inner primal subproblem when a block's
// feasible set X_i is a box rather than a simplex.
func Greedy(low, high, cost []float64) []float64 {
	n := len(cost)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if cost[i] >= 0 {
			out[i] = low[i]
		} else {
			out[i] = high[i]
		}
	}
	return out
}
