package testutil

import (
	"context"
	"sync"
	"time"
)

// FlakyWork is a test work body that fails a configured number of times
// before succeeding. It is used by retry tests to avoid real upstreams.
type FlakyWork struct {
	mu       sync.Mutex
	failures int
	err      error
	calls    int
}

// NewFlakyWork creates work that returns err for the first failures calls,
// then succeeds.
func NewFlakyWork(failures int, err error) *FlakyWork {
	return &FlakyWork{failures: failures, err: err}
}

// Do implements the work body.
func (f *FlakyWork) Do(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return 0, f.err
	}
	return f.calls, nil
}

// Calls returns how many times Do has run.
func (f *FlakyWork) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// SlowWork is a test work body that blocks for a fixed duration unless its
// context is canceled first.
type SlowWork struct {
	Duration time.Duration

	mu       sync.Mutex
	finished bool
}

// Do implements the work body.
func (s *SlowWork) Do(ctx context.Context) (struct{}, error) {
	select {
	case <-time.After(s.Duration):
		s.mu.Lock()
		s.finished = true
		s.mu.Unlock()
		return struct{}{}, nil
	case <-ctx.Done():
		return struct{}{}, ctx.Err()
	}
}

// Finished reports whether the work ran to completion.
func (s *SlowWork) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}
