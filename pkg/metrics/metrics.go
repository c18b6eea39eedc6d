// Package metrics provides Prometheus instrumentation for goasync components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for goasync components.
type Registry struct {
	// Task Metrics
	TasksSpawned   *prometheus.CounterVec
	TasksSucceeded *prometheus.CounterVec
	TasksFaulted   *prometheus.CounterVec
	TasksCanceled  *prometheus.CounterVec
	TaskDuration   *prometheus.HistogramVec
	TasksInflight  *prometheus.GaugeVec

	// Scheduler Metrics
	DelaysScheduled *prometheus.CounterVec
	CronJobs        *prometheus.GaugeVec
	CronSpawns      *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by goasync components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Task Metrics
		TasksSpawned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "task",
				Name:      "spawned_total",
				Help:      "Total number of tasks spawned",
			},
			[]string{"scheduler_name"},
		),

		TasksSucceeded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "task",
				Name:      "succeeded_total",
				Help:      "Total number of tasks that completed successfully",
			},
			[]string{"scheduler_name"},
		),

		TasksFaulted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "task",
				Name:      "faulted_total",
				Help:      "Total number of tasks that faulted",
			},
			[]string{"scheduler_name"},
		),

		TasksCanceled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "task",
				Name:      "canceled_total",
				Help:      "Total number of tasks that were canceled",
			},
			[]string{"scheduler_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "goasync",
				Subsystem: "task",
				Name:      "duration_seconds",
				Help:      "Time spent executing task bodies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"scheduler_name"},
		),

		TasksInflight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goasync",
				Subsystem: "task",
				Name:      "inflight",
				Help:      "Number of tasks currently running",
			},
			[]string{"scheduler_name"},
		),

		// Scheduler Metrics
		DelaysScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "scheduler",
				Name:      "delays_total",
				Help:      "Total number of timed delays scheduled",
			},
			[]string{"scheduler_name"},
		),

		CronJobs: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goasync",
				Subsystem: "scheduler",
				Name:      "cron_jobs",
				Help:      "Number of active cron jobs",
			},
			[]string{"scheduler_name"},
		),

		CronSpawns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goasync",
				Subsystem: "scheduler",
				Name:      "cron_spawns_total",
				Help:      "Total number of tasks spawned by cron jobs",
			},
			[]string{"scheduler_name"},
		),
	}
}
