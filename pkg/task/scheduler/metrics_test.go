package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/goasync/internal/testutil"
	"github.com/vnykmshr/goasync/pkg/metrics"
	"github.com/vnykmshr/goasync/pkg/task"
)

func gatherCounter(t *testing.T, reg *prometheus.Registry, name, scheduler string) float64 {
	t.Helper()
	families, err := reg.Gather()
	testutil.AssertNoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "scheduler_name" && l.GetValue() == scheduler {
					if m.GetCounter() != nil {
						return m.GetCounter().GetValue()
					}
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	return 0
}

func TestSchedulerMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	s, err := NewWithConfig(Config{
		Name: "test",
		Metrics: metrics.Config{
			Enabled:  true,
			Registry: registry,
		},
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, s.MetricsEnabled(), true)

	ok := Run(s, func(ctx context.Context) (int, error) { return 1, nil })
	bad := Run(s, func(ctx context.Context) (int, error) { return 0, errors.New("boom") })

	ctx, cancelCtx := testutil.WithTimeout(t)
	defer cancelCtx()
	task.WhenAll(ok, bad).Wait(ctx)
	<-s.Shutdown()

	testutil.AssertEqual(t, gatherCounter(t, registry, "goasync_task_spawned_total", "test"), 2.0)
	testutil.AssertEqual(t, gatherCounter(t, registry, "goasync_task_succeeded_total", "test"), 1.0)
	testutil.AssertEqual(t, gatherCounter(t, registry, "goasync_task_faulted_total", "test"), 1.0)
	testutil.AssertEqual(t, gatherCounter(t, registry, "goasync_task_inflight", "test"), 0.0)
}

func TestDelayMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	s, err := NewWithConfig(Config{
		Name: "test",
		Metrics: metrics.Config{
			Enabled:  true,
			Registry: registry,
		},
	})
	testutil.AssertNoError(t, err)

	d := s.Delay(0)
	ctx, cancelCtx := testutil.WithTimeout(t)
	defer cancelCtx()
	d.Wait(ctx)
	<-s.Shutdown()

	testutil.AssertEqual(t, gatherCounter(t, registry, "goasync_scheduler_delays_total", "test"), 1.0)
}

func TestNewWithMetrics(t *testing.T) {
	s := NewWithMetrics("jobs")
	testutil.AssertEqual(t, s.MetricsEnabled(), true)
	<-s.Shutdown()
}

func TestMetricsDisabledByDefault(t *testing.T) {
	s := New()
	testutil.AssertEqual(t, s.MetricsEnabled(), false)
	<-s.Shutdown()
}
