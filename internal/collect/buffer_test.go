package collect

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ntl/internal/domain"
)

func TestBuffer_Add(t *testing.T) {
	buffer := NewBuffer()

	require.NoError(t, buffer.Add(&domain.Record{FullyQualifiedName: "A.B"}))
	assert.ErrorIs(t, buffer.Add(nil), ErrNilRecord)
	assert.Len(t, buffer.Snapshot(), 1)
}

func TestBuffer_SnapshotIsStable(t *testing.T) {
	buffer := NewBuffer()
	require.NoError(t, buffer.Add(&domain.Record{FullyQualifiedName: "A.One"}))
	require.NoError(t, buffer.Add(&domain.Record{FullyQualifiedName: "A.Two"}))

	snapshot := buffer.Snapshot()
	require.NoError(t, buffer.Add(&domain.Record{FullyQualifiedName: "A.Three"}))

	require.Len(t, snapshot, 2)
	assert.Equal(t, "A.One", snapshot[0].FullyQualifiedName)
	assert.Equal(t, "A.Two", snapshot[1].FullyQualifiedName)
	assert.Len(t, buffer.Snapshot(), 3)
}

func TestBuffer_ConcurrentAdd(t *testing.T) {
	buffer := NewBuffer()

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				record := domain.Record{FullyQualifiedName: fmt.Sprintf("W%d.Test%d", worker, i)}
				assert.NoError(t, buffer.Add(&record))
			}
		}(worker)
	}
	wg.Wait()

	assert.Len(t, buffer.Snapshot(), 800)
}
