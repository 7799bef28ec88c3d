package dbexport

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Summary is the outcome of a run.
type Summary struct {
	RunID     string        `json:"run_id"`
	Mode      string        `json:"mode,omitempty"`
	Format    string        `json:"format"`
	OutputDir string        `json:"output_dir"`
	Started   time.Time     `json:"started"`
	Finished  time.Time     `json:"finished"`
	Results   []TableResult `json:"results"`
}

// Exported counts tables written to a file.
func (s *Summary) Exported() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() && r.Rows > 0 {
			n++
		}
	}
	return n
}

// Empty counts tables that returned no rows.
func (s *Summary) Empty() int {
	n := 0
	for _, r := range s.Results {
		if r.OK() && r.Rows == 0 {
			n++
		}
	}
	return n
}

// Failed returns the failed tables.
func (s *Summary) Failed() []TableResult {
	var failed []TableResult
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// TotalRows sums the rows written.
func (s *Summary) TotalRows() int {
	n := 0
	for _, r := range s.Results {
		n += r.Rows
	}
	return n
}

// Duration is the wall time of the run.
func (s *Summary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}

func (s *Summary) String() string {
	return fmt.Sprintf("exported=%d, empty=%d, failed=%d, rows=%d",
		s.Exported(), s.Empty(), len(s.Failed()), s.TotalRows())
}

// WriteSummary stores s as indented JSON at path.
func WriteSummary(path string, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}
	return nil
}
