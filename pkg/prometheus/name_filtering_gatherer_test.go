package prometheus_test

import (
	"regexp"
	"testing"

	"github.com/ingrid-storage/storage-locator/pkg/prometheus"
	"github.com/stretchr/testify/require"

	client_golang_prometheus "github.com/prometheus/client_golang/prometheus"
)

func TestNameFilteringGatherer(t *testing.T) {
	registry := client_golang_prometheus.NewRegistry()
	redirects := client_golang_prometheus.NewCounter(client_golang_prometheus.CounterOpts{
		Namespace: "storage_locator",
		Subsystem: "redirector",
		Name:      "redirects_total",
		Help:      "Number of redirects.",
	})
	goroutines := client_golang_prometheus.NewGauge(client_golang_prometheus.GaugeOpts{
		Name: "go_goroutines",
		Help: "Number of goroutines that currently exist.",
	})
	registry.MustRegister(redirects, goroutines)
	redirects.Add(3)
	goroutines.Set(8)

	t.Run("Match", func(t *testing.T) {
		families, err := prometheus.NewNameFilteringGatherer(registry, regexp.MustCompile("^storage_locator_")).Gather()
		require.NoError(t, err)
		require.Len(t, families, 1)
		require.Equal(t, "storage_locator_redirector_redirects_total", families[0].GetName())
		require.Equal(t, 3.0, families[0].GetMetric()[0].GetCounter().GetValue())
	})

	t.Run("NoMatch", func(t *testing.T) {
		families, err := prometheus.NewNameFilteringGatherer(registry, regexp.MustCompile("^node_")).Gather()
		require.NoError(t, err)
		require.Empty(t, families)
	})
}
