package execution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ntl/internal/collect"
	"ntl/internal/config"
	"ntl/internal/domain"
)

// WorkerPool loads record files in parallel
type WorkerPool struct {
	config    *config.Config
	loader    *Loader
	scheduler Scheduler
	progress  Progress
}

var _ Executor = (*WorkerPool)(nil)

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, loader *Loader, scheduler Scheduler) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		loader:    loader,
		scheduler: scheduler,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute loads every file (no fail-fast)
func (wp *WorkerPool) Execute(files []string) ([]domain.Record, time.Duration, error) {
	return wp.ExecuteWithOptions(files, false)
}

// ExecuteWithOptions loads files with optional fail-fast (stop after the first
// file that fails to load). Records from files that loaded are returned in file
// order whatever order the workers finish in, together with the joined load errors.
func (wp *WorkerPool) ExecuteWithOptions(files []string, failFast bool) ([]domain.Record, time.Duration, error) {
	if len(files) == 0 {
		return nil, 0, nil
	}

	startTime := time.Now()

	tracker := newTracker(wp.progress)
	if failFast {
		wp.loadFailFast(files, tracker)
	} else {
		wp.loadAll(files, tracker)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}

	sink := collect.NewBuffer()
	var errs []error
	for _, result := range tracker.inFileOrder(files) {
		if result.Err != nil {
			errs = append(errs, result.Err)
			continue
		}
		for i := range result.Records {
			if err := sink.Add(&result.Records[i]); err != nil {
				errs = append(errs, fmt.Errorf("collect %s: %w", result.Path, err))
			}
		}
	}
	return sink.Snapshot(), time.Since(startTime), errors.Join(errs...)
}

func (wp *WorkerPool) workerCount() int {
	if wp.config == nil || wp.config.Processors <= 0 {
		return 1
	}
	return wp.config.Processors
}

// loadAll gives each worker its own round-robin share of the files.
func (wp *WorkerPool) loadAll(files []string, tracker *tracker) {
	batches := wp.scheduler.Schedule(files, wp.workerCount())

	var wg sync.WaitGroup
	for _, batch := range batches {
		if len(batch) == 0 {
			continue
		}
		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()
			for _, path := range batch {
				tracker.record(wp.loader.Load(path))
			}
		}(batch)
	}
	wg.Wait()
}

// loadFailFast feeds files through a shared queue and stops feeding after
// the first failure.
func (wp *WorkerPool) loadFailFast(files []string, tracker *tracker) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tracker.onFailure = cancel

	queue := make(chan string)
	go func() {
		defer close(queue)
		for _, file := range files {
			select {
			case <-ctx.Done():
				return
			case queue <- file:
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < wp.workerCount(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				if ctx.Err() != nil {
					continue
				}
				tracker.record(wp.loader.Load(path))
			}
		}()
	}
	wg.Wait()
}

// tracker keeps per-file results and progress counters for concurrent workers
type tracker struct {
	mu        sync.Mutex
	byPath    map[string][]FileResult
	loaded    int
	failed    int
	progress  Progress
	onFailure func()
}

func newTracker(progress Progress) *tracker {
	return &tracker{byPath: make(map[string][]FileResult), progress: progress}
}

func (t *tracker) record(result FileResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.byPath[result.Path] = append(t.byPath[result.Path], result)
	if result.Err != nil {
		t.failed++
		if t.onFailure != nil {
			t.onFailure()
		}
	} else {
		t.loaded++
	}
	if t.progress != nil {
		t.progress.Update(t.loaded, t.failed)
	}
}

// inFileOrder returns the recorded results following files; files that were
// never loaded are left out. A path listed twice takes one result each time.
func (t *tracker) inFileOrder(files []string) []FileResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	ordered := make([]FileResult, 0, len(files))
	for _, path := range files {
		pending := t.byPath[path]
		if len(pending) == 0 {
			continue
		}
		ordered = append(ordered, pending[0])
		t.byPath[path] = pending[1:]
	}
	return ordered
}
