/*
Package goasync provides a small concurrent-task runtime for Go with
futures, cooperative cancellation, and failure aggregation.

Tasks (pkg/task):
  - task: Task[T] futures with terminal states, continuations, and
    WhenAll/WhenAny combinators
  - cancel: cancellation sources and tokens with callback registration
  - scheduler: concurrent task execution, timed delays, retries, and
    cron-based recurring spawns

Metrics (pkg/metrics):
  - Prometheus instrumentation for schedulers

Example usage:

	import (
		"github.com/vnykmshr/goasync/pkg/task"
		"github.com/vnykmshr/goasync/pkg/task/scheduler"
	)

	s := scheduler.New()
	defer s.Shutdown()

	t := scheduler.Run(s, func(ctx context.Context) (int, error) {
		return compute(ctx)
	})

	n, err := t.Wait(context.Background())
*/
package goasync
