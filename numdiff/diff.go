// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numdiff estimates derivatives by finite differences, used only
// from this module's own tests to cross-check a hand-written analytic
// gradient against a numerical one.
//
// A general N-to-M Jacobian approximation (bounds-aware, forward or
// central) trimmed down to the single case this repo's tests need: an
// unbounded central-difference gradient of a scalar function.
//
// Reference: https://en.wikipedia.org/wiki/Finite_difference
package numdiff

import "math"

var cubeEps = math.Pow(math.Nextafter(1, 2)-1, 1.0/3)

// Gradient approximates ∇f(x0) with the central-difference formula
//
//	∂f/∂xᵢ ≈ (f(x0 + h·eᵢ) - f(x0 - h·eᵢ)) / 2h
//
// using a relative step size derived from machine epsilon, the standard
// heuristic for a central-difference step.
func Gradient(f func(x []float64) float64, x0 []float64) []float64 {
	grad := make([]float64, len(x0))
	x := append([]float64(nil), x0...)
	for i, v := range x0 {
		h := math.Copysign(cubeEps, v) * math.Max(1.0, math.Abs(v))
		if h == 0 {
			h = cubeEps
		}
		x[i] = v + h
		fPlus := f(x)
		x[i] = v - h
		fMinus := f(x)
		x[i] = v
		grad[i] = (fPlus - fMinus) / (2 * h)
	}
	return grad
}
