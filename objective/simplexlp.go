// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objective

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/projection"
	"github.com/duallagrange/solver/vector"
)

// SimplexLPFactoryName is the fully qualified name SimplexLP registers
// itself under (the "--driver.objectiveClass" name).
const SimplexLPFactoryName = "duallagrange.objective.SimplexLP"

var infUpperBound = math.Inf(1)

func init() {
	Register(SimplexLPFactoryName, func(gamma float64, projectionType string, args []string) (Objective, error) {
		blocks, b := SyntheticFixture(100, 20)
		return NewSimplexLP(blocks, b, gamma, projectionType, infUpperBound), nil
	})
}

// SyntheticFixture builds a deterministic block-separable LP with m coupling
// constraints split across blockCount equal-sized blocks, used by the
// registry factory and by this package's own tests (the "100 coupling
// constraints" fixture size). A real objective would instead read its A/C
// blocks and b vector from the AVRO/ORC input paths — out of scope here,
// since concrete production objective implementations are out of scope for
// this module.
func SyntheticFixture(m, blockCount int) (blocks []Block, b []float64) {
	blockSize := m / blockCount
	if blockSize < 1 {
		blockSize = 1
	}
	b = make([]float64, m)
	for i := range b {
		b[i] = 1 + float64(i%5)
	}
	for k := 0; k < blockCount; k++ {
		reward := make([]float64, blockSize)
		coupling := make([][]float64, m)
		for i := 0; i < m; i++ {
			row := make([]float64, blockSize)
			coupling[i] = row
		}
		low := make([]float64, blockSize)
		high := make([]float64, blockSize)
		for j := 0; j < blockSize; j++ {
			reward[j] = 1 + float64((k*blockSize+j)%7)
			// each local choice j only loads a handful of constraints near
			// its own block index, giving a sparse, well-conditioned A.
			for offset := 0; offset < 3; offset++ {
				i := (k*3 + j + offset) % m
				coupling[i][j] = 0.2 + 0.1*float64(offset)
			}
			// box bounds for the Greedy projection type; unused when a block
			// is solved as a simplex.
			low[j], high[j] = 0, 1
		}
		blocks = append(blocks, Block{Reward: reward, Coupling: coupling, Low: low, High: high})
	}
	return blocks, b
}

// Block is one block of a block-separable LP: a reward vector over a
// simplex (or box) of local choices, and that block's contribution to each
// coupling constraint.
type Block struct {
	Reward   []float64   // c_k, length d_k
	Coupling [][]float64 // m rows, each length d_k: Coupling[i][j] is variable j's coefficient in coupling constraint i
	Low, High []float64  // only used when ProjectionType == "Greedy"
}

// SimplexLP is a block-separable LP maximize(sum_k c_k . x_k) subject to
// sum_k A_k x_k <= b, x_k in a simplex (or box) per block — the structure
// described above. Each block's inner problem is solved with a
// γ-regularized quadratic reward (--driver.gamma), which for
// simplex blocks reduces to projection.Simplex and for box blocks to
// projection.Greedy (the regularizer has no effect there).
type SimplexLP struct {
	BaseInfeasibility
	Gamma          float64
	ProjectionType string // "Simplex" or "Greedy"
	Blocks         []Block
	B              []float64 // coupling RHS, length m
	TieEps         float64
}

// NewSimplexLP builds a SimplexLP fixture. primalUpperBound may be
// math.Inf(1) to disable the infeasibility check.
func NewSimplexLP(blocks []Block, b []float64, gamma float64, projectionType string, primalUpperBound float64) *SimplexLP {
	return &SimplexLP{
		BaseInfeasibility: BaseInfeasibility{Bound: primalUpperBound},
		Gamma:             gamma,
		ProjectionType:    projectionType,
		Blocks:            blocks,
		B:                 b,
		TieEps:            1e-9,
	}
}

func (s *SimplexLP) DualDimensionality() int { return len(s.B) }

func (s *SimplexLP) Calculate(lambda *vector.Sparse, entry *optstate.Entry, verbosity int) (*Result, error) {
	m := len(s.B)
	lam := lambda.Dense()
	if len(lam) < m {
		padded := make([]float64, m)
		copy(padded, lam)
		lam = padded
	}

	gradDense := append([]float64(nil), s.B...)
	var primalValue float64
	dualValue := vector.DenseDot(vector.FromDense(lam), s.B)

	var choices []blockChoice
	for k, blk := range s.Blocks {
		d := len(blk.Reward)
		reward := make([]float64, d)
		copy(reward, blk.Reward)
		for i := 0; i < m; i++ {
			row := blk.Coupling[i]
			li := lam[i]
			if li == 0 {
				continue
			}
			for j, a := range row {
				reward[j] -= li * a
			}
		}

		var x []float64
		switch s.ProjectionType {
		case "Greedy":
			if len(blk.Low) != d || len(blk.High) != d {
				return nil, fmt.Errorf("objective: block %d has no box bounds for the Greedy projection type (want %d Low/High entries, got %d/%d)",
					k, d, len(blk.Low), len(blk.High))
			}
			cost := make([]float64, d)
			for j, r := range reward {
				cost[j] = -r
			}
			x = projection.Greedy(blk.Low, blk.High, cost)
			for j := range x {
				primalValue += blk.Reward[j] * x[j]
			}
			dotRX := 0.0
			for j, r := range reward {
				dotRX += r * x[j]
			}
			dualValue += dotRX
		default: // "Simplex"
			scaled := make([]float64, d)
			for j, r := range reward {
				scaled[j] = s.Gamma * r
			}
			var err error
			x, err = projection.Simplex(scaled, s.TieEps)
			if err != nil {
				return nil, fmt.Errorf("%w: block %d: %v", ErrNonDifferentiable, k, err)
			}
			var dotRX, normSq float64
			for j, r := range reward {
				dotRX += r * x[j]
				normSq += x[j] * x[j]
				primalValue += blk.Reward[j] * x[j]
			}
			dualValue += dotRX - normSq/(2*s.Gamma)
		}

		for i := 0; i < m; i++ {
			gradDense[i] -= floats.Dot(blk.Coupling[i], x)
		}
		choices = append(choices, blockChoice{block: k, x: x})
	}

	grad := vector.FromDense(gradDense)
	grad.Dim = m
	res := &Result{
		DualValue:        dualValue,
		Gradient:         grad,
		PrimalValue:      primalValue,
		PrimalUpperBound: s.Bound,
		Slack:            grad,
		MaxSlack:         vector.MaxViolation(grad),
		Primal:           primalCertificate{choices},
	}
	entry.Finish(res.DualValue, res.MaxSlack)
	return res, nil
}

func (s *SimplexLP) PrimalForSaving(lambda *vector.Sparse) (PrimalView, bool) {
	entry := optstate.NewEntry(0)
	res, err := s.Calculate(lambda, entry, 0)
	if err != nil {
		return nil, false
	}
	return res.Primal, res.Primal != nil
}

type blockChoice struct {
	block int
	x     []float64
}

type primalCertificate struct {
	choices []blockChoice
}

func (p primalCertificate) ToRows() []PrimalRow {
	var rows []PrimalRow
	offset := int32(0)
	for _, c := range p.choices {
		for j, v := range c.x {
			if v != 0 {
				rows = append(rows, PrimalRow{Index: offset + int32(j), Value: v})
			}
		}
		offset += int32(len(c.x))
	}
	return rows
}
