// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"

	"github.com/scritchley/orc"
)

const rowORCSchema = "struct<index:int,value:double>"

type orcReader struct {
	r      *orc.Reader
	cursor *orc.Cursor
}

func newOrcReader(path string) (Reader, error) {
	r, err := orc.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}
	cursor := r.Select("index", "value")
	return &orcReader{r: r, cursor: cursor}, nil
}

func (r *orcReader) Next() (Row, bool, error) {
	if !r.cursor.Next() {
		return Row{}, false, r.cursor.Err()
	}
	values := r.cursor.Row()
	if len(values) != 2 {
		return Row{}, false, fmt.Errorf("table: orc row has %d columns, want 2", len(values))
	}
	idx, ok := asInt32(values[0])
	if !ok {
		return Row{}, false, fmt.Errorf("table: orc index column has unexpected type %T", values[0])
	}
	val, ok := values[1].(float64)
	if !ok {
		return Row{}, false, fmt.Errorf("table: orc value column has unexpected type %T", values[1])
	}
	return Row{Index: idx, Value: val}, true, nil
}

func (r *orcReader) Close() error {
	return r.r.Close()
}

func asInt32(v interface{}) (int32, bool) {
	switch n := v.(type) {
	case int32:
		return n, true
	case int64:
		return int32(n), true
	default:
		return 0, false
	}
}

type orcWriter struct {
	w *orc.Writer
}

func newOrcWriter(path string) (Writer, error) {
	schema, err := orc.ParseSchema(rowORCSchema)
	if err != nil {
		return nil, fmt.Errorf("table: orc schema: %w", err)
	}
	w, err := orc.Create(path, schema)
	if err != nil {
		return nil, fmt.Errorf("table: create %s: %w", path, err)
	}
	return &orcWriter{w: w}, nil
}

func (w *orcWriter) Write(row Row) error {
	return w.w.Write(row.Index, row.Value)
}

func (w *orcWriter) Close() error {
	return w.w.Close()
}
