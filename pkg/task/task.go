package task

import (
	"context"
	"sync"
)

// State describes where a task is in its lifecycle.
type State int32

const (
	// Pending means the task has been created but has not started running.
	Pending State = iota

	// Running means the task body is executing.
	Running

	// Succeeded means the task finished and its result is available.
	Succeeded

	// Faulted means the task finished with one or more captured faults.
	Faulted

	// Canceled means the task was terminated through cancellation rather
	// than a fault.
	Canceled
)

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s == Succeeded || s == Faulted || s == Canceled
}

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Faulted:
		return "faulted"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Task is a handle to a deferred computation producing a value of type T.
//
// A task resolves exactly once. After resolution its state, result, and
// fault list never change. All methods are safe for concurrent use.
type Task[T any] struct {
	mu        sync.Mutex
	state     State
	result    T
	faults    []error
	cancelErr error
	conts     []func()
	done      chan struct{}
}

// Completer is the resolution half of a task. The goroutine executing the
// task body holds the Completer; everyone else holds the Task. The first
// terminal transition wins, later calls are no-ops.
type Completer[T any] struct {
	t *Task[T]
}

// New creates a pending task and the completer that resolves it.
func New[T any]() (*Task[T], *Completer[T]) {
	t := &Task[T]{done: make(chan struct{})}
	return t, &Completer[T]{t: t}
}

// Completed returns a task already resolved with v.
func Completed[T any](v T) *Task[T] {
	t, c := New[T]()
	c.Complete(v)
	return t
}

// Failed returns a task already faulted with err.
func Failed[T any](err error) *Task[T] {
	t, c := New[T]()
	c.Fault(err)
	return t
}

// Task returns the task this completer resolves.
func (c *Completer[T]) Task() *Task[T] { return c.t }

// Start moves the task from Pending to Running. It reports false if the
// task already started or was resolved first (e.g. by a pre-canceled token).
func (c *Completer[T]) Start() bool {
	t := c.t
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Pending {
		return false
	}
	t.state = Running
	return true
}

// Complete resolves the task successfully with v.
func (c *Completer[T]) Complete(v T) bool {
	return c.t.settle(Succeeded, func(t *Task[T]) { t.result = v })
}

// Fault resolves the task as Faulted with the given errors, preserving
// order. Nil errors are dropped; if none remain, Fault does nothing and
// reports false.
func (c *Completer[T]) Fault(errs ...error) bool {
	kept := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			kept = append(kept, err)
		}
	}
	if len(kept) == 0 {
		return false
	}
	return c.t.settle(Faulted, func(t *Task[T]) { t.faults = kept })
}

// Cancel resolves the task as Canceled. The recorded error satisfies
// errors.Is(err, ErrCanceled); cause, when non-nil, is kept as its cause.
func (c *Completer[T]) Cancel(cause error) bool {
	return c.t.settle(Canceled, func(t *Task[T]) { t.cancelErr = canceled(cause) })
}

// settle performs the single terminal transition: set fields, close done,
// then run continuations in registration order outside the lock.
func (t *Task[T]) settle(s State, set func(*Task[T])) bool {
	t.mu.Lock()
	if t.state.Terminal() {
		t.mu.Unlock()
		return false
	}
	set(t)
	t.state = s
	conts := t.conts
	t.conts = nil
	t.mu.Unlock()

	close(t.done)
	for _, fn := range conts {
		fn()
	}
	return true
}

// Done returns a channel closed when the task reaches a terminal state.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// State returns the task's current state.
func (t *Task[T]) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// IsDone reports whether the task has reached a terminal state.
func (t *Task[T]) IsDone() bool { return t.State().Terminal() }

// IsSucceeded reports whether the task completed successfully.
func (t *Task[T]) IsSucceeded() bool { return t.State() == Succeeded }

// IsFaulted reports whether the task faulted.
func (t *Task[T]) IsFaulted() bool { return t.State() == Faulted }

// IsCanceled reports whether the task was canceled.
func (t *Task[T]) IsCanceled() bool { return t.State() == Canceled }

// Result returns the task's value and true if it succeeded. It does not
// block.
func (t *Task[T]) Result() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Succeeded {
		var zero T
		return zero, false
	}
	return t.result, true
}

// Faults returns the ordered list of captured faults, or nil if the task
// has not faulted. The returned slice is a copy.
func (t *Task[T]) Faults() []error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.faults) == 0 {
		return nil
	}
	out := make([]error, len(t.faults))
	copy(out, t.faults)
	return out
}

// Err returns nil while the task is unresolved or succeeded, the first
// captured fault if it faulted, or a cancellation error if it was canceled.
func (t *Task[T]) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch t.state {
	case Faulted:
		return t.faults[0]
	case Canceled:
		return t.cancelErr
	default:
		return nil
	}
}

// Aggregate returns every captured fault wrapped in an AggregateError, or
// nil if the task has not faulted.
func (t *Task[T]) Aggregate() *AggregateError {
	faults := t.Faults()
	if faults == nil {
		return nil
	}
	return &AggregateError{Errs: faults}
}

// OnDone registers fn to run when the task reaches a terminal state.
// Continuations run exactly once, in registration order. If the task is
// already resolved, fn runs immediately on the calling goroutine.
func (t *Task[T]) OnDone(fn func()) {
	t.mu.Lock()
	if !t.state.Terminal() {
		t.conts = append(t.conts, fn)
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	fn()
}

// Wait blocks until the task resolves or ctx is done.
//
// On success it returns the task's result. On fault it returns the first
// captured fault unchanged, so repeated waits yield the identical error.
// On cancellation it returns an error satisfying errors.Is(err, ErrCanceled).
// A terminal task returns immediately without blocking.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
	default:
		if ctx == nil {
			ctx = context.Background()
		}
		select {
		case <-t.done:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}

	// done is closed, so state and outcome fields are immutable now.
	switch t.state {
	case Succeeded:
		return t.result, nil
	case Faulted:
		var zero T
		return zero, t.faults[0]
	default:
		var zero T
		return zero, t.cancelErr
	}
}
