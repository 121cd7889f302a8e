package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Errors returned by TaskQueue.Enqueue.
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// TaskQueue is a bounded FIFO of tasks. Producers use it as a
// TaskQueueWriter and the worker pool drains it as a TaskQueueReader.
//
// mu makes Enqueue and Close mutually exclusive. Without it an Enqueue that
// passed the closed check could send on the channel after Close closed it,
// which panics. Enqueue never blocks while holding mu.
type TaskQueue struct {
	mu     sync.Mutex
	tasks  chan Task
	closed bool
	logger *slog.Logger
}

var (
	_ TaskQueueReader = (*TaskQueue)(nil)
	_ TaskQueueWriter = (*TaskQueue)(nil)
)

// NewTaskQueue returns a queue holding up to size tasks. A size below one
// is raised to one.
func NewTaskQueue(size int, logger *slog.Logger) *TaskQueue {
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskQueue{
		tasks:  make(chan Task, size),
		logger: logger.With(slog.String("component", "task_queue")),
	}
}

// Enqueue adds t without waiting. It fails with ErrQueueFull when every
// slot is taken and with ErrQueueClosed after Close.
func (q *TaskQueue) Enqueue(t Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- t:
	default:
		return fmt.Errorf("%w: all %d slots in use", ErrQueueFull, cap(q.tasks))
	}

	q.logger.Debug("task queued",
		slog.String("task_id", t.ID().String()),
		slog.String("task_type", t.Type()),
		slog.Int("depth", len(q.tasks)))
	return nil
}

// Close stops new submissions. Tasks already queued can still be read,
// after which the channel reports closed. Close is idempotent.
func (q *TaskQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.tasks)
	q.logger.Info("task queue closed", slog.Int("undelivered", len(q.tasks)))
}

// GetChannel returns the receive side that workers drain.
func (q *TaskQueue) GetChannel() <-chan Task {
	return q.tasks
}
