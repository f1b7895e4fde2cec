package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacson1/UK-property-management/internal/logger"
)

func TestNewExtractionQueue(t *testing.T) {
	q := NewExtractionQueue(10, 0, logger.New("test"))
	assert.NotNil(t, q)
	assert.Equal(t, 1, q.workers)
	assert.False(t, q.IsClosed())
}

func TestExtractionQueue_Push(t *testing.T) {
	q := NewExtractionQueue(2, 1, logger.New("test"))

	assert.NoError(t, q.Push(ExtractionJob{DocumentID: "d1"}))
	assert.Equal(t, 1, q.Len())

	assert.NoError(t, q.Push(ExtractionJob{DocumentID: "d2"}))
	assert.ErrorIs(t, q.Push(ExtractionJob{DocumentID: "d3"}), ErrQueueFull)

	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.Push(ExtractionJob{DocumentID: "d4"}), ErrQueueClosed)
}

func TestExtractionQueue_ProcessesEveryJob(t *testing.T) {
	q := NewExtractionQueue(16, 3, logger.New("test"))

	var mu sync.Mutex
	seen := make(map[string]bool)
	q.Subscribe(func(_ context.Context, job ExtractionJob) error {
		mu.Lock()
		defer mu.Unlock()
		seen[job.DocumentID] = true
		return nil
	})
	q.Start(context.Background())

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, q.Push(ExtractionJob{DocumentID: id}))
	}
	require.NoError(t, q.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 5)
}

func TestExtractionQueue_CloseDrainsInFlight(t *testing.T) {
	q := NewExtractionQueue(4, 1, logger.New("test"))

	var done int32
	q.Subscribe(func(_ context.Context, _ ExtractionJob) error {
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&done, 1)
		return nil
	})
	q.Start(context.Background())

	require.NoError(t, q.Push(ExtractionJob{DocumentID: "slow1"}))
	require.NoError(t, q.Push(ExtractionJob{DocumentID: "slow2"}))
	require.NoError(t, q.Close())

	assert.Equal(t, int32(2), atomic.LoadInt32(&done))
	assert.True(t, q.IsClosed())
	assert.NoError(t, q.Close())
}

func TestExtractionQueue_HandlerErrorDoesNotStopWorker(t *testing.T) {
	q := NewExtractionQueue(4, 1, logger.New("test"))

	var calls int32
	q.Subscribe(func(_ context.Context, job ExtractionJob) error {
		atomic.AddInt32(&calls, 1)
		if job.DocumentID == "bad" {
			return errors.New("extraction failed")
		}
		return nil
	})
	q.Start(context.Background())

	require.NoError(t, q.Push(ExtractionJob{DocumentID: "bad"}))
	require.NoError(t, q.Push(ExtractionJob{DocumentID: "good"}))
	require.NoError(t, q.Close())

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestExtractionQueue_ShutdownTimesOutOnHungJob(t *testing.T) {
	q := NewExtractionQueue(4, 1, logger.New("test"))
	started := make(chan struct{})
	q.Subscribe(func(ctx context.Context, _ ExtractionJob) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	q.Start(workerCtx)

	require.NoError(t, q.Push(ExtractionJob{DocumentID: "hung"}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := q.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, q.IsClosed())

	stopWorkers()
	assert.NoError(t, q.Close())
}
