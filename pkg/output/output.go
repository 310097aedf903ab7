// Package output renders the final set of accepted candidates to the
// recommendations file.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"dictrec/pkg/candidate"
)

// FileName builds "recommendations <timestamp> <uuid>.txt", the per-run
// output file name: the timestamp keeps runs ordered on disk, the run's own
// correlation UUID guarantees no two runs ever collide even within the
// same second.
func FileName(now time.Time, runID uuid.UUID) string {
	return fmt.Sprintf("recommendations %s %s.txt", now.Format("2006-01-02 15-04-05"), runID.String())
}

// Write renders recommendations, one per candidate in the order given, into
// dataDir/fileName. The directory is created if it does not already exist.
func Write(dataDir, fileName string, recommendations []*candidate.Candidate) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("output: creating data directory %s: %w", dataDir, err)
	}

	path := filepath.Join(dataDir, fileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, c := range recommendations {
		writeOne(w, c)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("output: flushing %s: %w", path, err)
	}
	return nil
}

func writeOne(w *bufio.Writer, c *candidate.Candidate) {
	fmt.Fprintf(w, "#Number of times used: %d\n", c.UsageCount)
	fmt.Fprintf(w, "#Number of words saved: %d\n", c.WordsSaved())
	if c.Kind == candidate.Abstract {
		fmt.Fprintf(w, "Number of instantiations of abstract command: %d\n", c.Instantiations.Len())
	}
	for _, a := range c.Actions {
		fmt.Fprintln(w, a.ScriptString())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
}
