package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/semaphore"

	goerrors "github.com/vnykmshr/goasync/pkg/common/errors"
	"github.com/vnykmshr/goasync/pkg/common/validation"
	"github.com/vnykmshr/goasync/pkg/metrics"
	"github.com/vnykmshr/goasync/pkg/task"
	"github.com/vnykmshr/goasync/pkg/task/cancel"
)

// Config holds configuration options for creating a scheduler.
type Config struct {
	// MaxConcurrency bounds how many task bodies run at once.
	// Zero means unlimited.
	MaxConcurrency int

	// PanicHandler is called when a task body panics. The panic is always
	// converted into a fault on the task; the handler is for logging.
	PanicHandler func(recovered interface{})

	// Name identifies this scheduler in metrics labels.
	Name string

	// Metrics configures Prometheus instrumentation. Disabled by default.
	Metrics metrics.Config
}

// Scheduler runs task bodies concurrently and resolves their futures.
type Scheduler struct {
	cfg        Config
	sem        *semaphore.Weighted
	reg        *metrics.Registry
	name       string
	cronParser cron.Parser

	mu           sync.Mutex
	isShutdown   bool
	wg           sync.WaitGroup
	quit         chan struct{}
	done         chan struct{}
	shutdownOnce sync.Once
}

// New creates a scheduler with default configuration: unlimited
// concurrency, no metrics.
func New() *Scheduler {
	s, err := NewWithConfig(Config{})
	if err != nil {
		// Zero config is always valid.
		panic(err)
	}
	return s
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) (*Scheduler, error) {
	if err := validation.ValidateNonNegative("scheduler", "maxConcurrency", cfg.MaxConcurrency); err != nil {
		return nil, err
	}

	s := &Scheduler{
		cfg:        cfg,
		name:       cfg.Name,
		cronParser: cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	if s.name == "" {
		s.name = "default"
	}
	if cfg.MaxConcurrency > 0 {
		s.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrency))
	}
	if cfg.Metrics.Enabled {
		reg := metrics.DefaultRegistry
		if cfg.Metrics.Registry != nil {
			reg = metrics.NewRegistry(cfg.Metrics.Registry)
		}
		s.reg = reg
	}
	return s, nil
}

// Option configures a single spawn.
type Option func(*runOptions)

type runOptions struct {
	token cancel.Token
}

// WithToken binds a cancellation token to the spawned task. A token already
// canceled at spawn time resolves the task Canceled without running the
// body; afterwards the body observes the token through its context.
func WithToken(tok cancel.Token) Option {
	return func(o *runOptions) { o.token = tok }
}

func buildOptions(opts []Option) runOptions {
	var o runOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Run schedules work for concurrent execution and returns its task handle.
//
// The body runs on its own goroutine. A returned error faults the task,
// except cancellation errors while the bound token has fired, which cancel
// it. Panics are recovered and captured as faults; they never escape. The
// handle may be dropped: the outcome stays recorded on the task.
func Run[T any](s *Scheduler, work func(ctx context.Context) (T, error), opts ...Option) *task.Task[T] {
	o := buildOptions(opts)
	t, c := task.New[T]()

	if o.token.IsCanceled() {
		c.Cancel(nil)
		return t
	}
	if !s.acquire() {
		c.Fault(goerrors.ErrShutdown)
		return t
	}

	s.observeSpawn()
	go func() {
		defer s.wg.Done()

		if s.sem != nil {
			if err := s.sem.Acquire(context.Background(), 1); err != nil {
				c.Fault(err)
				s.observeOutcome(task.Faulted, 0)
				return
			}
			defer s.sem.Release(1)
		}

		// The token may have fired while the task waited for a slot.
		if o.token.IsCanceled() {
			c.Cancel(nil)
			s.observeOutcome(task.Canceled, 0)
			return
		}

		ctx, release := o.token.Context(context.Background())
		defer release()

		c.Start()
		start := time.Now()

		var val T
		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					if s.cfg.PanicHandler != nil {
						s.cfg.PanicHandler(r)
					}
					err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
				}
			}()
			val, err = work(ctx)
		}()

		dur := time.Since(start)
		switch {
		case err == nil:
			c.Complete(val)
			s.observeOutcome(task.Succeeded, dur)
		case task.IsCancellation(err) && o.token.IsCanceled():
			c.Cancel(err)
			s.observeOutcome(task.Canceled, dur)
		default:
			c.Fault(err)
			s.observeOutcome(task.Faulted, dur)
		}
	}()

	return t
}

// Go schedules work that produces no value. It is Run for error-only
// bodies.
func (s *Scheduler) Go(work func(ctx context.Context) error, opts ...Option) *task.Task[struct{}] {
	return Run(s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	}, opts...)
}

// Delay returns a task that succeeds after d elapses, or resolves Canceled
// if the bound token fires first. A pre-canceled token resolves Canceled
// immediately without waiting. When the timer and the token fire together,
// cancellation wins.
func (s *Scheduler) Delay(d time.Duration, opts ...Option) *task.Task[struct{}] {
	o := buildOptions(opts)
	t, c := task.New[struct{}]()

	if o.token.IsCanceled() {
		c.Cancel(nil)
		return t
	}
	if !s.acquire() {
		c.Fault(goerrors.ErrShutdown)
		return t
	}

	c.Start()
	s.observeDelay()
	timer := time.NewTimer(d)

	// Resolve at cancellation time rather than when the timer would fire.
	unregister := o.token.Register(func() {
		timer.Stop()
		c.Cancel(nil)
	})

	go func() {
		defer s.wg.Done()
		defer unregister()
		select {
		case <-timer.C:
			// Cancellation is checked before declaring success so it wins
			// a simultaneous firing.
			if o.token.IsCanceled() {
				c.Cancel(nil)
				return
			}
			c.Complete(struct{}{})
		case <-t.Done():
			// Canceled through the token callback.
		}
	}()

	return t
}

// Shutdown initiates a graceful shutdown: no new work is accepted, cron
// jobs stop, and the returned channel closes once all in-flight tasks have
// resolved. Work submitted after shutdown faults with ErrShutdown.
func (s *Scheduler) Shutdown() <-chan struct{} {
	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		s.isShutdown = true
		s.mu.Unlock()

		close(s.quit)

		go func() {
			s.wg.Wait()
			close(s.done)
		}()
	})
	return s.done
}

// acquire registers one unit of in-flight work, refusing after shutdown.
func (s *Scheduler) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isShutdown {
		return false
	}
	s.wg.Add(1)
	return true
}
