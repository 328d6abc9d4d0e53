package worker

import (
	"context"
	"log"
	"sync"
)

type Task func(ctx context.Context) error

// Queue runs best-effort background tasks (hosted-table imports). Failures
// land on an internal channel and are logged, never surfaced to the code
// that submitted the task.
type Queue struct {
	workers int
	tasks   chan Task
	results chan error
	logger  *log.Logger

	wg        sync.WaitGroup
	resultsWG sync.WaitGroup

	mu      sync.Mutex
	started bool
	closed  bool
}

func NewQueue(workers, buffer int, logger *log.Logger) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Queue{
		workers: workers,
		tasks:   make(chan Task, buffer),
		results: make(chan error, workers*16),
		logger:  logger,
	}
}

func (q *Queue) Start(ctx context.Context) {
	if q == nil {
		return
	}
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return
	}
	q.started = true
	q.mu.Unlock()

	q.wg.Add(q.workers)
	for i := 0; i < q.workers; i++ {
		go func() {
			defer q.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-q.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					q.results <- t(ctx)
				}
			}
		}()
	}

	q.resultsWG.Add(1)
	go func() {
		defer q.resultsWG.Done()
		for err := range q.results {
			if err != nil && q.logger != nil {
				q.logger.Printf("[Import] background task failed: %v", err)
			}
		}
	}()

	go func() {
		q.wg.Wait()
		close(q.results)
	}()
}

// Submit enqueues a task without blocking. A full buffer drops the task,
// which is acceptable for best-effort imports; the drop is logged.
func (q *Queue) Submit(t Task) bool {
	if q == nil || t == nil {
		return false
	}
	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()
	if closed {
		return false
	}

	select {
	case q.tasks <- t:
		return true
	default:
		if q.logger != nil {
			q.logger.Printf("[Import] task dropped: queue full")
		}
		return false
	}
}

// Close stops accepting tasks and waits for queued work to drain.
func (q *Queue) Close() {
	if q == nil {
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	started := q.started
	q.mu.Unlock()

	close(q.tasks)
	if started {
		q.wg.Wait()
		q.resultsWG.Wait()
	}
}
