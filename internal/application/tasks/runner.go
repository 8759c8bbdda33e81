// Package tasks provides the single-worker background executor that keeps
// slow versioning I/O (hashing, snapshot copies, SQL) off the interactive
// loop. Submissions run in FIFO order on exactly one worker goroutine, so no
// two operations ever execute concurrently; results come back on a second
// queue the shell drains once per tick.
package tasks

import (
	"fmt"

	"github.com/google/uuid"
)

// Func is a unit of background work.
type Func func() (interface{}, error)

// Result is the envelope delivered for every completed task. ID matches the
// value returned by Submit so callers can correlate results to submissions.
type Result struct {
	ID      uuid.UUID
	Kind    string
	Payload interface{}
	Err     error
}

type task struct {
	id   uuid.UUID
	kind string
	fn   Func
}

// queueSize bounds both queues. At desktop scale the worker drains far
// faster than a user can submit; the buffer only absorbs bursts.
const queueSize = 64

// Runner executes submitted tasks sequentially on one worker goroutine.
type Runner struct {
	tasks   chan task
	results chan Result
	done    chan struct{}
}

// NewRunner starts the worker.
func NewRunner() *Runner {
	r := &Runner{
		tasks:   make(chan task, queueSize),
		results: make(chan Result, queueSize),
		done:    make(chan struct{}),
	}
	go r.loop()
	return r
}

// Submit enqueues a task and returns immediately with its correlation id.
func (r *Runner) Submit(kind string, fn Func) uuid.UUID {
	id := uuid.New()
	r.tasks <- task{id: id, kind: kind, fn: fn}
	return id
}

// Drain returns every result available right now without blocking. Intended
// to be called once per frame/tick by the presentation loop.
func (r *Runner) Drain() []Result {
	var out []Result
	for {
		select {
		case res, ok := <-r.results:
			if !ok {
				return out
			}
			out = append(out, res)
		default:
			return out
		}
	}
}

// Results exposes the result queue for callers that want to block on the
// next completion instead of polling.
func (r *Runner) Results() <-chan Result {
	return r.results
}

// Close stops accepting tasks, waits for queued work to finish, and closes
// the result queue. Already-completed results can still be drained.
func (r *Runner) Close() {
	close(r.tasks)
	<-r.done
}

func (r *Runner) loop() {
	defer close(r.done)
	for t := range r.tasks {
		r.results <- run(t)
	}
	close(r.results)
}

// run executes one task, converting a panic into an error result so a bad
// task cannot kill the worker.
func run(t task) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{ID: t.id, Kind: t.kind, Err: fmt.Errorf("task panicked: %v", p)}
		}
	}()

	payload, err := t.fn()
	return Result{ID: t.id, Kind: t.kind, Payload: payload, Err: err}
}
