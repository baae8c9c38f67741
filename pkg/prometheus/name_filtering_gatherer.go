package prometheus

import (
	"regexp"

	"github.com/prometheus/client_golang/prometheus"

	dto "github.com/prometheus/client_model/go"
)

type nameFilteringGatherer struct {
	base        prometheus.Gatherer
	namePattern *regexp.Regexp
}

// NewNameFilteringGatherer creates a decorator for Gatherer that only
// returns metric families whose name matches a regular expression.
// This can be used to limit the diagnostics web server to metrics of
// the redirector and checksum resolver, omitting Go runtime metrics.
func NewNameFilteringGatherer(base prometheus.Gatherer, namePattern *regexp.Regexp) prometheus.Gatherer {
	return &nameFilteringGatherer{
		base:        base,
		namePattern: namePattern,
	}
}

func (g *nameFilteringGatherer) Gather() ([]*dto.MetricFamily, error) {
	families, err := g.base.Gather()
	filtered := families[:0]
	for _, family := range families {
		if g.namePattern.MatchString(family.GetName()) {
			filtered = append(filtered, family)
		}
	}
	return filtered, err
}
