package checksum

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	cachePrometheusMetrics sync.Once

	cacheOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storage_locator",
			Subsystem: "checksum",
			Name:      "cache_operations_total",
			Help:      "Total number of operations against checksum caches.",
		},
		[]string{"name", "operation", "grpc_code"})
)

type metricsCache struct {
	base Cache
	name string
}

// NewMetricsCache creates a decorator for Cache that exposes the number
// of operations performed against it through Prometheus, labeled by
// their outcome. Cache misses are reported with code NotFound.
func NewMetricsCache(base Cache, name string) Cache {
	cachePrometheusMetrics.Do(func() {
		prometheus.MustRegister(cacheOperationsTotal)
	})

	return &metricsCache{
		base: base,
		name: name,
	}
}

func (c *metricsCache) observe(operation string, err error) {
	code := codes.OK
	if err != nil {
		code = status.Code(err)
	}
	cacheOperationsTotal.WithLabelValues(c.name, operation, code.String()).Inc()
}

func (c *metricsCache) Get(ctx context.Context, name string) (Checksum, error) {
	checksum, err := c.base.Get(ctx, name)
	c.observe("Get", err)
	return checksum, err
}

func (c *metricsCache) Put(ctx context.Context, name string, checksum Checksum) error {
	err := c.base.Put(ctx, name, checksum)
	c.observe("Put", err)
	return err
}
