// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package serialize writes the four artifacts a solver run produces:
// the iteration log, the dual, the constraint violation, and — if
// requested — the primal certificate, all under one output directory.
package serialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/duallagrange/solver/io/table"
	"github.com/duallagrange/solver/objective"
	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/vector"
)

// Artifacts bundles everything a single solver run needs persisted.
type Artifacts struct {
	OutputDir    string
	Format       table.Format
	Log          optstate.Log
	TerminalLine string
	Lambda       *vector.Sparse
	Slack        *vector.Sparse // nil when the run never produced a result
	Primal       objective.PrimalView // nil when savePrimal was false or unavailable
}

// Write atomically replaces OutputDir with a fresh tree containing
// log/log.txt, dual/, violation/ and (if Primal is set) primal/.
//
// "Atomic" here means: build the new tree under a sibling temp directory,
// then rename it into place, so a reader never observes a half-written
// output directory. The previous directory, if any, is removed just before
// the rename, so between those two steps OutputDir does not exist.
func Write(a Artifacts) error {
	tmpDir := a.OutputDir + ".tmp"
	if err := os.RemoveAll(tmpDir); err != nil {
		return fmt.Errorf("serialize: clearing stale temp dir: %w", err)
	}
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return fmt.Errorf("serialize: creating output dir: %w", err)
	}

	if err := writeLog(tmpDir, a); err != nil {
		return err
	}
	if err := writeTable(filepath.Join(tmpDir, "dual"), a.Format, sparseRows(a.Lambda)); err != nil {
		return fmt.Errorf("serialize: writing dual table: %w", err)
	}
	if err := writeTable(filepath.Join(tmpDir, "violation"), a.Format, sparseRows(a.Slack)); err != nil {
		return fmt.Errorf("serialize: writing violation table: %w", err)
	}
	if a.Primal != nil {
		if err := writeTable(filepath.Join(tmpDir, "primal"), a.Format, primalRows(a.Primal)); err != nil {
			return fmt.Errorf("serialize: writing primal table: %w", err)
		}
	}

	if err := os.RemoveAll(a.OutputDir); err != nil {
		return fmt.Errorf("serialize: removing previous output dir: %w", err)
	}
	if err := os.Rename(tmpDir, a.OutputDir); err != nil {
		return fmt.Errorf("serialize: publishing output dir: %w", err)
	}
	return nil
}

func writeLog(tmpDir string, a Artifacts) error {
	dir := filepath.Join(tmpDir, "log")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("serialize: creating log dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "log.txt"))
	if err != nil {
		return fmt.Errorf("serialize: creating log.txt: %w", err)
	}
	defer f.Close()

	a.Log.WriteText(func(format string, args ...any) {
		fmt.Fprintf(f, format, args...)
	})
	if _, err := fmt.Fprintln(f, a.TerminalLine); err != nil {
		return fmt.Errorf("serialize: writing terminal line: %w", err)
	}
	return nil
}

func writeTable(dir string, format table.Format, rows []table.Row) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	ext := "avro"
	if format == table.FormatORC {
		ext = "orc"
	}
	w, err := table.CreateWriter(filepath.Join(dir, "part-00000."+ext), format)
	if err != nil {
		return fmt.Errorf("creating table writer in %s: %w", dir, err)
	}
	return table.WriteAll(w, rows)
}

func sparseRows(v *vector.Sparse) []table.Row {
	if v == nil {
		return nil
	}
	rows := make([]table.Row, v.NNZ())
	for i, idx := range v.Index {
		rows[i] = table.Row{Index: idx, Value: v.Value[i]}
	}
	return rows
}

func primalRows(p objective.PrimalView) []table.Row {
	prows := p.ToRows()
	rows := make([]table.Row, len(prows))
	for i, pr := range prows {
		rows[i] = table.Row{Index: pr.Index, Value: pr.Value}
	}
	return rows
}
