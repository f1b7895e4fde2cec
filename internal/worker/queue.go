// Package worker runs document extraction jobs in the background.
package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/lacson1/UK-property-management/internal/logger"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// ExtractionJob asks for the expiry date of one uploaded document.
type ExtractionJob struct {
	DocumentID string
	PropertyID string
	MimeType   string
	Data       []byte
}

// Handler processes a single job.
type Handler func(ctx context.Context, job ExtractionJob) error

// ExtractionQueue is an in-memory job queue drained by a fixed pool of workers.
type ExtractionQueue struct {
	items    chan ExtractionJob
	workers  int
	closed   bool
	mu       sync.RWMutex
	wg       sync.WaitGroup
	logger   *logger.Logger
	handlers []Handler
}

// NewExtractionQueue creates a queue holding up to bufferSize pending jobs.
func NewExtractionQueue(bufferSize, workers int, log *logger.Logger) *ExtractionQueue {
	if workers < 1 {
		workers = 1
	}
	return &ExtractionQueue{
		items:    make(chan ExtractionJob, bufferSize),
		workers:  workers,
		logger:   log,
		handlers: make([]Handler, 0),
	}
}

// Push enqueues a job without blocking.
func (q *ExtractionQueue) Push(job ExtractionJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- job:
		q.logger.Debug("Queued extraction job", map[string]interface{}{
			"document_id": job.DocumentID,
			"pending":     len(q.items),
		})
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler called for every job.
func (q *ExtractionQueue) Subscribe(handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start launches the workers. Jobs receive ctx.
func (q *ExtractionQueue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.process(ctx, i)
	}
}

func (q *ExtractionQueue) process(ctx context.Context, worker int) {
	defer q.wg.Done()
	for job := range q.items {
		q.processJob(ctx, worker, job)
	}
}

func (q *ExtractionQueue) processJob(ctx context.Context, worker int, job ExtractionJob) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, job); err != nil {
			q.logger.Error("Handler failed to process extraction job", err, map[string]interface{}{
				"document_id": job.DocumentID,
				"worker":      worker,
			})
		}
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (q *ExtractionQueue) Close() error {
	return q.Shutdown(context.Background())
}

// Shutdown stops accepting jobs and waits for queued ones to finish or for
// ctx to end, whichever comes first. Jobs still running when ctx ends keep
// running until the context passed to Start is cancelled.
func (q *ExtractionQueue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.items)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		q.logger.Warn("Extraction queue drain timed out", map[string]interface{}{
			"pending": len(q.items),
		})
		return ctx.Err()
	}
}

// Len returns the number of jobs waiting for a worker.
func (q *ExtractionQueue) Len() int {
	return len(q.items)
}

// IsClosed reports whether the queue has been closed.
func (q *ExtractionQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
