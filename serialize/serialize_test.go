package serialize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/duallagrange/solver/io/table"
	"github.com/duallagrange/solver/optstate"
	"github.com/duallagrange/solver/vector"
)

func TestWriteProducesExpectedLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run-output")

	var log optstate.Log
	entry := optstate.NewEntry(1)
	entry.Finish(12.5, 0)
	log.Append(entry)

	lambda := vector.NewSparse(3, []int32{0, 2}, []float64{1.5, 2.5})
	slack := vector.NewSparse(3, []int32{1}, []float64{0.01})

	err := Write(Artifacts{
		OutputDir:    dir,
		Format:       table.FormatAVRO,
		Log:          log,
		TerminalLine: "CONVERGED: dual value 12.5 after 1 iterations",
		Lambda:       lambda,
		Slack:        slack,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		filepath.Join(dir, "log", "log.txt"),
		filepath.Join(dir, "dual", "part-00000.avro"),
		filepath.Join(dir, "violation", "part-00000.avro"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Fatalf("expected %s to exist: %v", want, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "primal")); !os.IsNotExist(err) {
		t.Fatalf("expected no primal/ directory when Primal is nil, got err=%v", err)
	}
}

func TestWriteReplacesExistingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run-output")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stale := filepath.Join(dir, "stale.txt")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var log optstate.Log
	err := Write(Artifacts{
		OutputDir:    dir,
		Format:       table.FormatAVRO,
		Log:          log,
		TerminalLine: "TERMINATED",
		Lambda:       vector.Zero(1),
		Slack:        vector.Zero(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("expected the stale file to be gone after atomic replace")
	}
}
