package content

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"portfolio/deadletter"
)

const writeTimeout = 15 * time.Second

// FailureSink receives writes that could not be delivered.
type FailureSink interface {
	Record(e deadletter.Entry) (uint64, error)
}

type pendingWrite struct {
	postID int64
	fields map[string]any
}

// WriteQueue delivers best-effort field updates to the store from a fixed
// number of workers. Nothing is retried; undeliverable writes go to the
// failure sink.
type WriteQueue struct {
	store  Store
	sink   FailureSink
	logger *slog.Logger

	queue chan pendingWrite
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewWriteQueue(store Store, sink FailureSink, size, workers int, logger *slog.Logger) *WriteQueue {
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}

	q := &WriteQueue{
		store:  store,
		sink:   sink,
		logger: logger.With("component", "writequeue"),
		queue:  make(chan pendingWrite, size),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Enqueue schedules an update of fields on post id. It never blocks.
func (q *WriteQueue) Enqueue(id int64, fields map[string]any) {
	w := pendingWrite{postID: id, fields: fields}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.fail(w, "queue closed")
		return
	}

	select {
	case q.queue <- w:
	default:
		q.fail(w, "queue full")
	}
}

// Close stops accepting writes and waits for queued ones to drain.
func (q *WriteQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.queue)
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *WriteQueue) worker() {
	defer q.wg.Done()
	for w := range q.queue {
		q.deliver(w)
	}
}

func (q *WriteQueue) deliver(w pendingWrite) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := q.store.UpdatePost(ctx, w.postID, w.fields); err != nil {
		q.fail(w, err.Error())
		return
	}
	q.logger.Debug("translation persisted", "post_id", w.postID, "fields", len(w.fields))
}

func (q *WriteQueue) fail(w pendingWrite, reason string) {
	q.logger.Warn("upstream write failed", "post_id", w.postID, "reason", reason)
	if q.sink == nil {
		return
	}
	if _, err := q.sink.Record(deadletter.Entry{PostID: w.postID, Fields: w.fields, Reason: reason}); err != nil {
		q.logger.Error("dead letter record failed", "post_id", w.postID, "error", err)
	}
}
