package task

import (
	"sync/atomic"
)

// Awaitable is the non-generic view of a task, sufficient for combinators
// that do not need the result value. Every *Task[T] implements it.
type Awaitable interface {
	// Done returns a channel closed when the task reaches a terminal state.
	Done() <-chan struct{}

	// State returns the task's current state.
	State() State

	// Err returns the first fault, a cancellation error, or nil.
	Err() error

	// Faults returns the ordered fault list, or nil.
	Faults() []error

	// OnDone registers a continuation for the terminal transition.
	OnDone(fn func())
}

// WhenAll returns a task that resolves only after every input has reached a
// terminal state. It never short-circuits: a fault in one input does not
// stop the others, and the combined task stays unresolved until the last
// input finishes.
//
// If all inputs succeed the combined task succeeds. Otherwise it faults,
// with the fault list holding every captured failure in input order; a
// canceled input contributes its cancellation error as a fault-variant
// entry at its position. Waiting on the combined task returns only the
// first fault; the full list stays inspectable via Faults and Aggregate.
func WhenAll(tasks ...Awaitable) *Task[struct{}] {
	all, c := New[struct{}]()
	if len(tasks) == 0 {
		c.Complete(struct{}{})
		return all
	}

	c.Start()
	var pending atomic.Int32
	pending.Store(int32(len(tasks)))
	for _, t := range tasks {
		t.OnDone(func() {
			if pending.Add(-1) != 0 {
				return
			}
			// Last input just resolved; collect outcomes in input order.
			var faults []error
			for _, in := range tasks {
				switch in.State() {
				case Faulted:
					faults = append(faults, in.Faults()...)
				case Canceled:
					faults = append(faults, in.Err())
				}
			}
			if len(faults) == 0 {
				c.Complete(struct{}{})
				return
			}
			c.Fault(faults...)
		})
	}
	return all
}

// WhenAny returns a task that resolves with the outcome of the first input
// to reach a terminal state: success, fault, or cancellation. The remaining
// inputs keep running; their outcomes stay observable on their own handles.
func WhenAny(tasks ...Awaitable) *Task[struct{}] {
	any, c := New[struct{}]()
	if len(tasks) == 0 {
		c.Complete(struct{}{})
		return any
	}

	c.Start()
	for _, t := range tasks {
		in := t
		in.OnDone(func() {
			switch in.State() {
			case Succeeded:
				c.Complete(struct{}{})
			case Canceled:
				c.Cancel(in.Err())
			default:
				c.Fault(in.Faults()...)
			}
		})
	}
	return any
}
