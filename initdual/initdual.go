// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package initdual loads the starting dual vector for a solver run:
// either the zero vector, or a warm restart read from a previously
// serialized dual table.
package initdual

import (
	"fmt"

	"github.com/duallagrange/solver/io/table"
	"github.com/duallagrange/solver/vector"
)

// Load returns the zero vector of length dim when path is empty, otherwise
// reads (index, value) pairs from path under format and builds a sparse
// vector of that declared dimension. Rows need not be sorted on disk;
// vector.NewSparse re-sorts them.
func Load(path string, dim int, format table.Format) (*vector.Sparse, error) {
	if path == "" {
		return vector.Zero(dim), nil
	}

	r, err := table.OpenReader(path, format)
	if err != nil {
		return nil, fmt.Errorf("initdual: %w", err)
	}
	rows, err := table.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("initdual: reading %s: %w", path, err)
	}

	index := make([]int32, len(rows))
	value := make([]float64, len(rows))
	for i, row := range rows {
		index[i] = row.Index
		value[i] = row.Value
	}
	return vector.NewSparse(dim, index, value), nil
}
