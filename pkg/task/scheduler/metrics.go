package scheduler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/goasync/pkg/metrics"
	"github.com/vnykmshr/goasync/pkg/task"
)

// NewWithMetrics creates a scheduler that reports Prometheus metrics under
// the given name, on its own registry to avoid collisions with other
// instances.
func NewWithMetrics(name string) *Scheduler {
	registry := prometheus.NewRegistry()
	s, err := NewWithConfig(Config{
		Name: name,
		Metrics: metrics.Config{
			Enabled:  true,
			Registry: registry,
		},
	})
	if err != nil {
		// Config with only Name and Metrics set is always valid.
		panic(err)
	}
	return s
}

// MetricsEnabled returns true if this scheduler reports metrics.
func (s *Scheduler) MetricsEnabled() bool {
	return s.reg != nil
}

func (s *Scheduler) observeSpawn() {
	if s.reg == nil {
		return
	}
	s.reg.TasksSpawned.WithLabelValues(s.name).Inc()
	s.reg.TasksInflight.WithLabelValues(s.name).Inc()
}

func (s *Scheduler) observeDelay() {
	if s.reg == nil {
		return
	}
	s.reg.DelaysScheduled.WithLabelValues(s.name).Inc()
}

func (s *Scheduler) observeCronJob(delta float64) {
	if s.reg == nil {
		return
	}
	s.reg.CronJobs.WithLabelValues(s.name).Add(delta)
}

func (s *Scheduler) observeCronSpawn() {
	if s.reg == nil {
		return
	}
	s.reg.CronSpawns.WithLabelValues(s.name).Inc()
}

func (s *Scheduler) observeOutcome(st task.State, dur time.Duration) {
	if s.reg == nil {
		return
	}
	s.reg.TasksInflight.WithLabelValues(s.name).Dec()
	s.reg.TaskDuration.WithLabelValues(s.name).Observe(dur.Seconds())
	switch st {
	case task.Succeeded:
		s.reg.TasksSucceeded.WithLabelValues(s.name).Inc()
	case task.Faulted:
		s.reg.TasksFaulted.WithLabelValues(s.name).Inc()
	case task.Canceled:
		s.reg.TasksCanceled.WithLabelValues(s.name).Inc()
	}
}
