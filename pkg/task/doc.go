/*
Package task provides a future-style task abstraction with explicit terminal
states, captured faults, and completion continuations.

A Task[T] is a handle to a deferred computation. It starts Pending, may move
to Running, and ends in exactly one terminal state: Succeeded, Faulted, or
Canceled. Terminal state is monotonic; once a task is resolved it never
changes again.

Basic usage:

	t, c := task.New[int]()

	go func() {
		n, err := compute()
		if err != nil {
			c.Fault(err)
			return
		}
		c.Complete(n)
	}()

	n, err := t.Wait(ctx)

Faults are captured, never thrown across goroutines: a task whose handle is
dropped records its failure silently, observable later through IsFaulted and
Faults. Waiting on a faulted task returns the first captured fault verbatim,
so errors.Is and errors.As keep working against the original error value.

Continuations registered with OnDone run exactly once, in registration order,
when the task resolves. Registering on an already-resolved task runs the
callback immediately.

Combinators:

	all := task.WhenAll(a, b, c)
	_, err := all.Wait(ctx) // first fault in input order, or nil

WhenAll never short-circuits: it resolves only after every input has reached
a terminal state, and its fault list carries every captured failure in input
order. WhenAny resolves with the outcome of the first input to finish.
*/
package task
