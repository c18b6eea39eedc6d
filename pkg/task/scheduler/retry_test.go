package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vnykmshr/goasync/internal/testutil"
	"github.com/vnykmshr/goasync/pkg/task"
	"github.com/vnykmshr/goasync/pkg/task/cancel"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	s := New()
	defer func() { <-s.Shutdown() }()

	work := testutil.NewFlakyWork(2, errors.New("transient"))
	tk := Retry(s, work.Do, Backoff{
		MaxRetries:   3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
	})

	ctx, cancelCtx := testutil.WithTimeout(t)
	defer cancelCtx()
	v, err := tk.Wait(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, 3)
	testutil.AssertEqual(t, work.Calls(), 3)
}

func TestRetryExhaustedReturnsLastError(t *testing.T) {
	s := New()
	defer func() { <-s.Shutdown() }()

	boom := errors.New("still broken")
	work := testutil.NewFlakyWork(10, boom)
	tk := Retry(s, work.Do, Backoff{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
	})

	ctx, cancelCtx := testutil.WithTimeout(t)
	defer cancelCtx()
	_, err := tk.Wait(ctx)
	testutil.AssertEqual(t, err, error(boom))
	testutil.AssertEqual(t, work.Calls(), 3) // first attempt + 2 retries
}

func TestRetryNoRetriesRunsOnce(t *testing.T) {
	s := New()
	defer func() { <-s.Shutdown() }()

	boom := errors.New("boom")
	work := testutil.NewFlakyWork(10, boom)
	tk := Retry(s, work.Do, Backoff{})

	ctx, cancelCtx := testutil.WithTimeout(t)
	defer cancelCtx()
	_, err := tk.Wait(ctx)
	testutil.AssertEqual(t, err, error(boom))
	testutil.AssertEqual(t, work.Calls(), 1)
}

func TestRetryStopsOnCancellation(t *testing.T) {
	s := New()
	defer func() { <-s.Shutdown() }()

	src := cancel.NewSource()
	work := testutil.NewFlakyWork(100, errors.New("transient"))
	tk := Retry(s, work.Do, Backoff{
		MaxRetries:   100,
		InitialDelay: 20 * time.Millisecond,
	}, WithToken(src.Token()))

	// Cancel while the retry loop is backing off.
	time.Sleep(10 * time.Millisecond)
	src.Cancel()

	ctx, cancelCtx := testutil.WithTimeout(t)
	defer cancelCtx()
	_, err := tk.Wait(ctx)
	if !errors.Is(err, task.ErrCanceled) {
		t.Fatalf("Wait returned %v, want cancellation", err)
	}
	if calls := work.Calls(); calls > 2 {
		t.Errorf("work ran %d times after cancellation, want it to stop early", calls)
	}
}

func TestRetryDoesNotRetryCancellation(t *testing.T) {
	s := New()
	defer func() { <-s.Shutdown() }()

	var calls int
	tk := Retry(s, func(ctx context.Context) (int, error) {
		calls++
		return 0, context.Canceled
	}, Backoff{MaxRetries: 5, InitialDelay: time.Millisecond})

	ctx, cancelCtx := testutil.WithTimeout(t)
	defer cancelCtx()
	_, err := tk.Wait(ctx)
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, calls, 1)
}
