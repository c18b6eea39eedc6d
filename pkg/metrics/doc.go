// Package metrics provides Prometheus instrumentation for goasync components.
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled scheduler constructor:
//
//	s := scheduler.NewWithMetrics("jobs")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	s, err := scheduler.NewWithConfig(scheduler.Config{
//		Name: "jobs",
//		Metrics: metrics.Config{
//			Enabled:  true,
//			Registry: registry,
//		},
//	})
//
// # Available Metrics
//
// Task metrics:
//
//   - goasync_task_spawned_total: Total number of tasks spawned
//   - goasync_task_succeeded_total: Total number of tasks completed successfully
//   - goasync_task_faulted_total: Total number of tasks that faulted
//   - goasync_task_canceled_total: Total number of tasks that were canceled
//   - goasync_task_duration_seconds: Time spent executing task bodies
//   - goasync_task_inflight: Number of tasks currently running
//
// Scheduler metrics:
//
//   - goasync_scheduler_delays_total: Total number of timed delays scheduled
//   - goasync_scheduler_cron_jobs: Number of active cron jobs
//   - goasync_scheduler_cron_spawns_total: Total tasks spawned by cron jobs
//
// All metrics carry a scheduler_name label identifying the scheduler instance.
//
// # Performance
//
// Metrics collection is designed for minimal overhead: metrics are updated
// only when tasks resolve, with no background goroutines or timers. When
// metrics are disabled the scheduler skips instrumentation entirely.
package metrics
