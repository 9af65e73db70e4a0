package storage

import (
	"ntl/internal/config"
	"ntl/internal/domain"
)

// Storage persists and loads the last run summary (e.g. for the failures viewer).
type Storage interface {
	Save(summary *domain.Summary) error
	Load() (*domain.Summary, error)
	// SaveReport writes the rendered report document.
	SaveReport(doc []byte) error
}

// JSONStorage stores the summary in a JSON file under the configured output directory.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's summary and report paths.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
