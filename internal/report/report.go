// Package report writes the summary of a run as report.json in the import
// directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/vk/slp2graph/internal/batch"
)

// FileName is the report's name inside the import directory.
const FileName = "report.json"

// Report is the JSON form of a batch.Result.
type Report struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Games      int       `json:"games"`
	NextIndex  int       `json:"next_index"`
	// Error is set when the run stopped early.
	Error    string    `json:"error,omitempty"`
	Archives []Archive `json:"archives"`
	Skipped  []Skip    `json:"skipped"`
}

type Archive struct {
	Path    string `json:"path"`
	Replays int    `json:"replays"`
	Games   int    `json:"games"`
	Skipped int    `json:"skipped"`
}

type Skip struct {
	Archive string `json:"archive"`
	Entry   string `json:"entry,omitempty"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// New converts a run result. runErr is the error Run returned, if any.
func New(res *batch.Result, started, finished time.Time, runErr error) *Report {
	r := &Report{
		StartedAt:  started.UTC(),
		FinishedAt: finished.UTC(),
		Games:      res.Games,
		NextIndex:  res.NextIndex,
		Archives:   make([]Archive, 0, len(res.Archives)),
		Skipped:    make([]Skip, 0, len(res.Skipped)),
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	for _, a := range res.Archives {
		r.Archives = append(r.Archives, Archive(a))
	}
	for _, s := range res.Skipped {
		r.Skipped = append(r.Skipped, Skip{
			Archive: s.Archive,
			Entry:   s.Entry,
			Reason:  batch.Reason(s.Err),
			Message: s.Err.Error(),
		})
	}
	return r
}

// Write stores r as dir/report.json, replacing any previous report.
func Write(dir string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	path := filepath.Join(dir, FileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Read loads dir/report.json.
func Read(dir string) (*Report, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &r, nil
}
