// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"fmt"
	"os"

	"github.com/linkedin/goavro/v2"
)

const rowSchema = `{
	"type": "record",
	"name": "Row",
	"fields": [
		{"name": "index", "type": "int"},
		{"name": "value", "type": "double"}
	]
}`

type avroReader struct {
	f   *os.File
	ocf *goavro.OCFReader
}

func newAvroReader(path string) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: open %s: %w", path, err)
	}
	ocf, err := goavro.NewOCFReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("table: avro reader %s: %w", path, err)
	}
	return &avroReader{f: f, ocf: ocf}, nil
}

func (r *avroReader) Next() (Row, bool, error) {
	if !r.ocf.Scan() {
		return Row{}, false, r.ocf.Err()
	}
	datum, err := r.ocf.Read()
	if err != nil {
		return Row{}, false, fmt.Errorf("table: avro decode: %w", err)
	}
	row, err := decodeRow(datum)
	if err != nil {
		return Row{}, false, err
	}
	return row, true, nil
}

// decodeRow converts one goavro-decoded datum into a Row, rejecting any
// field whose runtime type doesn't match the schema instead of silently
// defaulting it to zero.
func decodeRow(datum interface{}) (Row, error) {
	rec, ok := datum.(map[string]interface{})
	if !ok {
		return Row{}, fmt.Errorf("table: avro record has unexpected shape %T", datum)
	}
	idx, ok := rec["index"].(int32)
	if !ok {
		return Row{}, fmt.Errorf("table: avro field %q has unexpected type %T", "index", rec["index"])
	}
	val, ok := rec["value"].(float64)
	if !ok {
		return Row{}, fmt.Errorf("table: avro field %q has unexpected type %T", "value", rec["value"])
	}
	return Row{Index: idx, Value: val}, nil
}

func (r *avroReader) Close() error {
	return r.f.Close()
}

type avroWriter struct {
	f   *os.File
	ocf *goavro.OCFWriter
}

func newAvroWriter(path string) (Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("table: create %s: %w", path, err)
	}
	codec, err := goavro.NewCodec(rowSchema)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("table: avro codec: %w", err)
	}
	ocf, err := goavro.NewOCFWriter(goavro.OCFConfig{W: f, Codec: codec})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("table: avro writer %s: %w", path, err)
	}
	return &avroWriter{f: f, ocf: ocf}, nil
}

func (w *avroWriter) Write(row Row) error {
	rec := map[string]interface{}{"index": row.Index, "value": row.Value}
	return w.ocf.Append([]interface{}{rec})
}

func (w *avroWriter) Close() error {
	return w.f.Close()
}
