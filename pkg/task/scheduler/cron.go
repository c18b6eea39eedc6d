package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	goerrors "github.com/vnykmshr/goasync/pkg/common/errors"
	"github.com/vnykmshr/goasync/pkg/common/validation"
	"github.com/vnykmshr/goasync/pkg/task/cancel"
)

// CronJob is a recurring spawn driven by a cron schedule. Each tick spawns
// a fresh task running the job's work; outcomes are recorded on the spawned
// tasks, observable through the optional OnSpawn hook.
type CronJob struct {
	s        *Scheduler
	expr     string
	stop     chan struct{}
	stopOnce sync.Once
}

// CronOptions provides configuration for cron jobs.
type CronOptions struct {
	// Token cancels the job and every task it spawns.
	Token cancel.Token

	// OnSpawn is called with each spawned task's handle, e.g. to watch for
	// faults. It runs on the job's goroutine; keep it short.
	OnSpawn func(t Handle)
}

// Handle is the non-generic view of a spawned task, as delivered to cron
// OnSpawn hooks.
type Handle interface {
	Done() <-chan struct{}
	Err() error
}

// ScheduleCron spawns work on each tick of the cron expression. The parser
// accepts a seconds field and descriptors like "@hourly". The returned job
// keeps firing until Stop, scheduler shutdown, or token cancellation.
func (s *Scheduler) ScheduleCron(expr string, work func(ctx context.Context) error) (*CronJob, error) {
	return s.ScheduleCronWithOptions(expr, work, CronOptions{})
}

// ScheduleCronWithOptions schedules a cron job with additional options.
func (s *Scheduler) ScheduleCronWithOptions(expr string, work func(ctx context.Context) error, options CronOptions) (*CronJob, error) {
	if err := validation.ValidateNotEmpty("scheduler", "cron", expr); err != nil {
		return nil, err
	}
	schedule, err := s.cronParser.Parse(expr)
	if err != nil {
		return nil, goerrors.NewValidationError("scheduler", "cron", expr, err.Error())
	}
	if work == nil {
		return nil, validation.ValidateNotNil("scheduler", "work", nil)
	}
	if !s.acquire() {
		return nil, goerrors.ErrShutdown
	}

	job := &CronJob{
		s:    s,
		expr: expr,
		stop: make(chan struct{}),
	}
	s.observeCronJob(1)
	go job.loop(schedule, work, options)
	return job, nil
}

// Expression returns the job's cron expression.
func (j *CronJob) Expression() string { return j.expr }

// Stop ends the recurring schedule. Tasks already spawned keep running.
// Stop is idempotent.
func (j *CronJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *CronJob) loop(schedule cron.Schedule, work func(ctx context.Context) error, options CronOptions) {
	defer j.s.wg.Done()
	defer j.s.observeCronJob(-1)

	for {
		next := schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-timer.C:
			if options.Token.IsCanceled() {
				return
			}
			t := j.s.Go(work, WithToken(options.Token))
			j.s.observeCronSpawn()
			if options.OnSpawn != nil {
				options.OnSpawn(t)
			}
		case <-j.stop:
			timer.Stop()
			return
		case <-j.s.quit:
			timer.Stop()
			return
		case <-options.Token.Done():
			timer.Stop()
			return
		}
	}
}
