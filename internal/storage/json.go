package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ntl/internal/domain"
)

// ErrNoSummary is returned by Load when no run has been saved yet
var ErrNoSummary = errors.New("no saved run summary, run `ntl report` first")

// NewSummary describes run for persistence.
func NewSummary(run *domain.Node, files, failedFiles int, elapsed time.Duration, workers int) *domain.Summary {
	return &domain.Summary{
		Meta: domain.SummaryMeta{
			RunID:           run.ID,
			RecordFiles:     files,
			FailedFiles:     failedFiles,
			TestCases:       run.Total,
			FailedTestCases: run.Failed,
			Duration:        elapsed.String(),
			DurationSeconds: elapsed.Seconds(),
			Workers:         workers,
			Timestamp:       time.Now().Format(time.RFC3339),
		},
		Run: run,
	}
}

// Save writes the summary to the configured JSON file.
func (s *JSONStorage) Save(summary *domain.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	return writeFile(s.cfg.GetSummaryPath(), data)
}

// Load reads the last summary from the configured JSON file.
func (s *JSONStorage) Load() (*domain.Summary, error) {
	data, err := os.ReadFile(s.cfg.GetSummaryPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSummary
	}
	if err != nil {
		return nil, fmt.Errorf("read summary file: %w", err)
	}
	var summary domain.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parse summary: %w", err)
	}
	if summary.Run == nil {
		return nil, fmt.Errorf("parse summary: missing run")
	}
	return &summary, nil
}

// SaveReport writes the rendered report to the configured report path.
func (s *JSONStorage) SaveReport(doc []byte) error {
	return writeFile(s.cfg.GetReportPath(), doc)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
