package redirector

import (
	"net/url"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	endpointSelectorPrometheusMetrics sync.Once

	endpointSelectorSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storage_locator",
			Subsystem: "redirector",
			Name:      "endpoint_selector_selections_total",
			Help:      "Number of times an endpoint was selected to handle a request.",
		},
		[]string{"operation_class", "endpoint"})
)

type metricsEndpointSelector struct {
	base EndpointSelector
}

// NewMetricsEndpointSelector creates a decorator for EndpointSelector
// that exposes the number of requests redirected to each endpoint
// through Prometheus. This can be used to validate that load is spread
// evenly.
func NewMetricsEndpointSelector(base EndpointSelector) EndpointSelector {
	endpointSelectorPrometheusMetrics.Do(func() {
		prometheus.MustRegister(endpointSelectorSelectionsTotal)
	})

	return &metricsEndpointSelector{
		base: base,
	}
}

func (s *metricsEndpointSelector) SelectEndpoint(class OperationClass, path string) *url.URL {
	endpoint := s.base.SelectEndpoint(class, path)
	endpointSelectorSelectionsTotal.WithLabelValues(class.String(), endpoint.String()).Inc()
	return endpoint
}
