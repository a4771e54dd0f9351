package photo

import (
	"sync"

	"github.com/pixelveil/pixelveil/util/log"
)

// Queue drains pending photos in the background, one at a time. A single
// goroutine plus a running flag guarantee two drains never overlap; the
// active photo is always prioritized ahead of insertion order.
type Queue struct {
	pipeline *Pipeline
	store    *Store

	mu      sync.Mutex
	running bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewQueue creates a queue over the given pipeline. Call Start to launch
// the drain goroutine.
func NewQueue(pipeline *Pipeline, store *Store) *Queue {
	return &Queue{
		pipeline: pipeline,
		store:    store,
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background drain loop.
func (q *Queue) Start() {
	go q.loop()
}

// Stop shuts the drain loop down and waits for the in-flight photo to
// finish.
func (q *Queue) Stop() {
	close(q.stop)
	<-q.done
}

// Kick signals that pending work may exist. Signals coalesce; kicking a
// draining queue is cheap.
func (q *Queue) Kick() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) loop() {
	defer close(q.done)
	for {
		select {
		case <-q.stop:
			return
		case <-q.wake:
			q.drain()
		}
	}
}

// drain processes pending photos until none remain. The running flag
// rejects re-entrant drains; per-photo errors are logged and never abort
// the loop.
func (q *Queue) drain() {
	q.mu.Lock()
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.running = false
		q.mu.Unlock()
	}()

	for {
		select {
		case <-q.stop:
			return
		default:
		}

		id, ok := q.store.NextPending()
		if !ok {
			return
		}
		if err := q.pipeline.Process(id); err != nil {
			log.Printf("Queue: %v", err)
		}
	}
}
