// Package collect accumulates the records of a run.
package collect

import (
	"errors"
	"sync"

	"ntl/internal/domain"
)

// ErrNilRecord is returned when a producer hands over a nil record
var ErrNilRecord = errors.New("nil record")

// Buffer is an append-only, mutex-guarded log of records.
// The aggregator only ever sees a Snapshot of it.
type Buffer struct {
	mu      sync.Mutex
	records []domain.Record
}

// NewBuffer creates an empty Buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Add appends one record
func (b *Buffer) Add(record *domain.Record) error {
	if record == nil {
		return ErrNilRecord
	}
	b.mu.Lock()
	b.records = append(b.records, *record)
	b.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the records collected so far that later
// additions do not affect
func (b *Buffer) Snapshot() []domain.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	snapshot := make([]domain.Record, len(b.records))
	copy(snapshot, b.records)
	return snapshot
}
