package storage

import (
	"fmt"
	"time"

	"xlsxft/internal/config"
	"xlsxft/internal/domain"
)

// Store names accepted by New
const (
	StoreJSON  = "json"
	StoreMySQL = "mysql"
)

// Storage persists and loads test run results (e.g. for the failures viewer).
type Storage interface {
	Save(results []domain.TestResult, failures []domain.TestFailure, duration time.Duration, workers int) error
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full output (e.g. after marking failures resolved).
	SaveOutput(output *domain.TestResultsOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

// New returns the storage selected by cfg.Store.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Store {
	case StoreJSON, "":
		return NewJSONStorage(cfg), nil
	case StoreMySQL:
		return NewMySQLStorage(cfg)
	}
	return nil, fmt.Errorf("unknown store %q (want %s or %s)", cfg.Store, StoreJSON, StoreMySQL)
}

// BuildOutput assembles the stored form of a run.
func BuildOutput(results []domain.TestResult, failures []domain.TestFailure, duration time.Duration, workers int, comparator string) *domain.TestResultsOutput {
	meta := domain.TestResultsMeta{
		TotalCases:      len(results),
		Comparator:      comparator,
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       time.Now().Format(time.RFC3339),
	}
	for _, r := range results {
		if r.Success {
			meta.PassedCases++
		} else {
			meta.FailedCases++
		}
	}
	for _, f := range failures {
		if f.Kind == domain.KindComparison {
			meta.Mismatches++
		} else {
			meta.ExecutionErrors++
		}
	}
	if failures == nil {
		failures = []domain.TestFailure{}
	}
	return &domain.TestResultsOutput{Meta: meta, Details: failures}
}
