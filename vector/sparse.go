// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vector implements the sparse vector algebra the dual solver runs
// on: λ, g(λ) and the constraint-slack vector are all sparse over the
// coupling-constraint index set.
package vector

import "gonum.org/v1/gonum/floats"

// Sparse is an immutable-by-convention sparse vector: Index is held sorted
// and strictly increasing, Value holds the corresponding entries. A missing
// index is implicitly zero.
type Sparse struct {
	Index []int32
	Value []float64
	Dim   int // full dimensionality, including implicit zeros
}

// NewSparse builds a Sparse from possibly-unsorted (index, value) pairs,
// dropping exact zeros and sorting by index.
func NewSparse(dim int, index []int32, value []float64) *Sparse {
	if len(index) != len(value) {
		panic("vector: index/value length mismatch")
	}
	pairs := make([]pair, 0, len(index))
	for i, idx := range index {
		if v := value[i]; v != 0 {
			pairs = append(pairs, pair{idx, v})
		}
	}
	sortPairs(pairs)
	s := &Sparse{
		Index: make([]int32, len(pairs)),
		Value: make([]float64, len(pairs)),
		Dim:   dim,
	}
	for i, p := range pairs {
		s.Index[i] = p.idx
		s.Value[i] = p.val
	}
	return s
}

// Zero returns the all-zero sparse vector of the given dimension.
func Zero(dim int) *Sparse {
	return &Sparse{Dim: dim}
}

type pair struct {
	idx int32
	val float64
}

func sortPairs(p []pair) {
	// insertion sort: the loader and tests only ever deal with the dual
	// dimension of a single LP relaxation, never large enough to justify
	// pulling in a bespoke sort for float/int32 pairs.
	for i := 1; i < len(p); i++ {
		for j := i; j > 0 && p[j-1].idx > p[j].idx; j-- {
			p[j-1], p[j] = p[j], p[j-1]
		}
	}
}

// NNZ returns the number of explicitly stored (non-zero) entries.
func (s *Sparse) NNZ() int {
	if s == nil {
		return 0
	}
	return len(s.Index)
}

// Dense expands s into a dense vector of length s.Dim.
func (s *Sparse) Dense() []float64 {
	out := make([]float64, s.Dim)
	if s == nil {
		return out
	}
	for i, idx := range s.Index {
		out[idx] = s.Value[i]
	}
	return out
}

// FromDense builds a Sparse from a dense vector, dropping exact zeros.
func FromDense(x []float64) *Sparse {
	var index []int32
	var value []float64
	for i, v := range x {
		if v != 0 {
			index = append(index, int32(i))
			value = append(value, v)
		}
	}
	return &Sparse{Index: index, Value: value, Dim: len(x)}
}

// At returns the value at position i (binary search over the sorted index).
func (s *Sparse) At(i int32) float64 {
	if s == nil {
		return 0
	}
	lo, hi := 0, len(s.Index)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case s.Index[mid] == i:
			return s.Value[mid]
		case s.Index[mid] < i:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0
}

// Dot computes the inner product of two sparse vectors of equal dimension.
func Dot(a, b *Sparse) float64 {
	if a.NNZ() == 0 || b.NNZ() == 0 {
		return 0
	}
	// merge-walk the two sorted index lists
	i, j := 0, 0
	var sum float64
	for i < len(a.Index) && j < len(b.Index) {
		switch {
		case a.Index[i] == b.Index[j]:
			sum += a.Value[i] * b.Value[j]
			i++
			j++
		case a.Index[i] < b.Index[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// DenseDot computes the inner product of a sparse vector against a dense one,
// delegating to gonum/floats at the dense boundary.
func DenseDot(a *Sparse, dense []float64) float64 {
	return floats.Dot(a.Dense(), dense)
}

// Add returns a + scale*b as a new sparse vector.
func Add(a, b *Sparse, scale float64) *Sparse {
	dim := a.Dim
	if dim == 0 {
		dim = b.Dim
	}
	dense := a.Dense()
	for i, idx := range b.Index {
		dense[idx] += scale * b.Value[i]
	}
	out := FromDense(dense)
	out.Dim = dim
	return out
}

// Scale returns a copy of a with every entry multiplied by c.
func Scale(a *Sparse, c float64) *Sparse {
	if c == 0 {
		return Zero(a.Dim)
	}
	out := &Sparse{
		Index: append([]int32(nil), a.Index...),
		Value: make([]float64, len(a.Value)),
		Dim:   a.Dim,
	}
	for i, v := range a.Value {
		out.Value[i] = v * c
	}
	return out
}

// MaxViolation returns max(0, -min(values)) — the worst negative entry,
// clamped at zero when no entry is negative. Used to compute maxSlack from a
// gradient/slack vector: maxSlack = max_i max(0, -g_i).
func MaxViolation(g *Sparse) float64 {
	worst := 0.0
	for _, v := range g.Value {
		if -v > worst {
			worst = -v
		}
	}
	return worst
}
