// Package scheduler executes task bodies concurrently and resolves their
// futures.
//
// Each spawned body runs on its own goroutine; an optional concurrency bound
// limits how many run at once. Faults raised by a body are captured on the
// task and never crash the process, including panics.
//
// Basic usage:
//
//	s := scheduler.New()
//	defer s.Shutdown()
//
//	t := scheduler.Run(s, func(ctx context.Context) (string, error) {
//		return fetch(ctx, url)
//	})
//
//	v, err := t.Wait(context.Background())
//
// Cancellation is cooperative, bound per spawn with WithToken:
//
//	src := cancel.NewSourceWithTimeout(time.Second)
//	defer src.Close()
//
//	t := scheduler.Run(s, work, scheduler.WithToken(src.Token()))
//
// A token that is already canceled at spawn time resolves the task Canceled
// without ever running the body. A body that observes the token (through its
// ctx) and returns a cancellation error resolves Canceled rather than Faulted.
//
// Timed delays suspend without holding a worker busy:
//
//	d := s.Delay(500*time.Millisecond, scheduler.WithToken(tok))
//	_, err := d.Wait(ctx) // nil after the delay, or a cancellation error
//
// When the token fires before the timer, the delay resolves Canceled at
// cancellation time, not after the full duration. If both fire together,
// cancellation wins.
//
// Recurring work uses cron expressions (seconds field supported):
//
//	job, err := s.ScheduleCron("*/5 * * * * *", pollUpstream)
//	defer job.Stop()
//
// Shutdown stops accepting work, stops cron jobs, and waits for in-flight
// tasks:
//
//	<-s.Shutdown()
package scheduler
