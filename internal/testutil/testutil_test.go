package testutil

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestEventually(t *testing.T) {
	t.Run("condition met immediately", func(t *testing.T) {
		called := false
		Eventually(t, 100*time.Millisecond, func() bool {
			called = true
			return true
		})

		if !called {
			t.Error("condition function should be called")
		}
	})

	t.Run("condition met after delay", func(t *testing.T) {
		var counter int32
		go func() {
			time.Sleep(30 * time.Millisecond)
			atomic.StoreInt32(&counter, 1)
		}()

		Eventually(t, 200*time.Millisecond, func() bool {
			return atomic.LoadInt32(&counter) == 1
		})
	})
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(t)
	defer cancel()

	if ctx == nil {
		t.Fatal("context should not be nil")
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("context should have a deadline")
	}

	if time.Until(deadline) > TestTimeout {
		t.Errorf("deadline is too far in the future")
	}
}

func TestAssertNoError(t *testing.T) {
	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	AssertError(t, context.Canceled)
}

func TestAssertEqual(t *testing.T) {
	AssertEqual(t, 42, 42)
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, true, true)
}

func TestFlakyWork(t *testing.T) {
	boom := errors.New("boom")
	work := NewFlakyWork(2, boom)

	for i := 0; i < 2; i++ {
		if _, err := work.Do(context.Background()); err != boom {
			t.Fatalf("call %d: err = %v, want boom", i+1, err)
		}
	}

	n, err := work.Do(context.Background())
	AssertNoError(t, err)
	AssertEqual(t, n, 3)
	AssertEqual(t, work.Calls(), 3)
}

func TestSlowWork(t *testing.T) {
	t.Run("runs to completion", func(t *testing.T) {
		work := &SlowWork{Duration: 10 * time.Millisecond}
		_, err := work.Do(context.Background())
		AssertNoError(t, err)
		AssertEqual(t, work.Finished(), true)
	})

	t.Run("observes cancellation", func(t *testing.T) {
		work := &SlowWork{Duration: time.Second}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := work.Do(ctx)
		AssertError(t, err)
		AssertEqual(t, work.Finished(), false)
	})
}
