package checksum

import (
	"context"
	"sync"

	"github.com/ingrid-storage/storage-locator/pkg/clock"
	"github.com/ingrid-storage/storage-locator/pkg/util"
	"github.com/prometheus/client_golang/prometheus"

	"google.golang.org/grpc/status"
)

var (
	resolverPrometheusMetrics sync.Once

	resolverResolutionsDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storage_locator",
			Subsystem: "checksum",
			Name:      "resolver_resolutions_duration_seconds",
			Help:      "Amount of time spent per checksum resolution, in seconds.",
			Buckets:   util.DecimalExponentialBuckets(-3, 6, 2),
		},
		[]string{"outcome", "grpc_code"})
)

type metricsResolver struct {
	base  Resolver
	clock clock.Clock

	resolved prometheus.Observer
	pending  prometheus.Observer
}

// NewMetricsResolver creates a decorator for Resolver that exposes the
// duration and outcome of resolutions through Prometheus.
func NewMetricsResolver(base Resolver, clock clock.Clock) Resolver {
	resolverPrometheusMetrics.Do(func() {
		prometheus.MustRegister(resolverResolutionsDurationSeconds)
	})

	return &metricsResolver{
		base:  base,
		clock: clock,

		resolved: resolverResolutionsDurationSeconds.WithLabelValues("Resolved", "OK"),
		pending:  resolverResolutionsDurationSeconds.WithLabelValues("Pending", "OK"),
	}
}

func (r *metricsResolver) Resolve(ctx context.Context, name string) (Resolution, error) {
	timeStart := r.clock.Now()
	resolution, err := r.base.Resolve(ctx, name)
	duration := r.clock.Now().Sub(timeStart).Seconds()
	if err != nil {
		resolverResolutionsDurationSeconds.WithLabelValues("Failed", status.Code(err).String()).Observe(duration)
	} else if resolution.IsPending() {
		r.pending.Observe(duration)
	} else {
		r.resolved.Observe(duration)
	}
	return resolution, err
}
