// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table reads and writes the {index: int32, value: float64} row
// schema fixed for the dual, violation and initial-λ artifacts, in
// either AVRO or ORC.
package table

import "fmt"

// Row is one (index, value) pair — a dual multiplier, a slack entry, or an
// initial-λ component, depending on which artifact it is read from.
type Row struct {
	Index int32
	Value float64
}

// Format selects the on-disk encoding (--driver.outputFormat /
// --input.format).
type Format string

const (
	FormatAVRO Format = "AVRO"
	FormatORC  Format = "ORC"
)

// Reader streams rows out of a table file. Callers must call Close.
type Reader interface {
	Next() (Row, bool, error)
	Close() error
}

// Writer appends rows to a table file. Callers must call Close to flush
// and release the underlying file handle, on every exit path.
type Writer interface {
	Write(Row) error
	Close() error
}

// OpenReader opens path for reading under the given format.
func OpenReader(path string, format Format) (Reader, error) {
	switch format {
	case FormatAVRO:
		return newAvroReader(path)
	case FormatORC:
		return newOrcReader(path)
	default:
		return nil, fmt.Errorf("table: unknown format %q", format)
	}
}

// CreateWriter creates (or truncates) path for writing under the given
// format.
func CreateWriter(path string, format Format) (Writer, error) {
	switch format {
	case FormatAVRO:
		return newAvroWriter(path)
	case FormatORC:
		return newOrcWriter(path)
	default:
		return nil, fmt.Errorf("table: unknown format %q", format)
	}
}

// ReadAll drains a Reader into a slice, closing it on every exit path.
func ReadAll(r Reader) ([]Row, error) {
	defer r.Close()
	var rows []Row
	for {
		row, ok, err := r.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, row)
	}
}

// WriteAll writes every row to w, closing it on every exit path (including
// when Write fails midway).
func WriteAll(w Writer, rows []Row) error {
	defer w.Close()
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
