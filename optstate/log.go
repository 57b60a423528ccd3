// Copyright ©2026 The duallagrange Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package optstate

import (
	"fmt"
	"time"
)

// Entry is one objective evaluation's worth of iteration log. The objective
// populates the timing fields; the maximizer fills Iter before calling in
// and appends the entry to the running Log after the call returns.
type Entry struct {
	Iter          int
	EvalStart     time.Time
	EvalDuration  time.Duration
	DualValue     float64
	MaxSlack      float64
	Note          string // free-form, e.g. "non-differentiable", "hold window"
}

// NewEntry starts a fresh entry for iteration idx with EvalStart set to now.
func NewEntry(idx int) *Entry {
	return &Entry{Iter: idx, EvalStart: time.Now()}
}

// Finish records the evaluation's outcome and duration.
func (e *Entry) Finish(dualValue, maxSlack float64) {
	e.EvalDuration = time.Since(e.EvalStart)
	e.DualValue = dualValue
	e.MaxSlack = maxSlack
}

func (e *Entry) String() string {
	return fmt.Sprintf("iter=%-5d dual=%12.5e maxSlack=%10.3e eval=%s%s",
		e.Iter, e.DualValue, e.MaxSlack, e.EvalDuration, noteSuffix(e.Note))
}

func noteSuffix(note string) string {
	if note == "" {
		return ""
	}
	return " (" + note + ")"
}

// Log is the append-only record of every evaluation performed during a run.
type Log struct {
	entries []*Entry
}

// Append records entry. Append-only: nothing in this package ever mutates or
// removes a previously appended entry.
func (l *Log) Append(entry *Entry) {
	l.entries = append(l.entries, entry)
}

// Entries returns the recorded entries in call order.
func (l *Log) Entries() []*Entry {
	return l.entries
}

// WriteText renders every entry, one per line, via w.
func (l *Log) WriteText(w func(format string, a ...any)) {
	for _, e := range l.entries {
		w("%s\n", e)
	}
}
