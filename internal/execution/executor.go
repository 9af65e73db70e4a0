package execution

import (
	"time"

	"ntl/internal/domain"
)

// Executor loads record files and returns the collected records
type Executor interface {
	Execute(files []string) ([]domain.Record, time.Duration, error)
	ExecuteWithOptions(files []string, failFast bool) ([]domain.Record, time.Duration, error)
	SetProgress(progress Progress)
}

// Progress receives per-file progress while files load
type Progress interface {
	Update(loadedFiles, failedFiles int)
	Finish()
}
