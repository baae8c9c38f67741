package redirector

import (
	"net/http"

	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/eviction"
	"github.com/ingrid-storage/storage-locator/pkg/random"
	"github.com/ingrid-storage/storage-locator/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewRedirectHandlerFromConfiguration creates an http.Handler that
// redirects requests to storage endpoints, based on options specified
// in a configuration file.
func NewRedirectHandlerFromConfiguration(config *configuration.RedirectorConfiguration) (http.Handler, error) {
	metadataGroup, err := NewEndpointGroup(config.MetadataEndpoints)
	if err != nil {
		return nil, util.StatusWrap(err, "Invalid metadata endpoints")
	}
	dataGroup := metadataGroup
	if len(config.DataEndpoints) > 0 {
		if dataGroup, err = NewEndpointGroup(config.DataEndpoints); err != nil {
			return nil, util.StatusWrap(err, "Invalid data endpoints")
		}
	}

	selector := NewRandomEndpointSelector(metadataGroup, dataGroup, random.FastThreadSafeGenerator)
	if locationCacheConfig := config.LocationCache; locationCacheConfig != nil {
		if locationCacheConfig.MaximumEntries <= 0 {
			return nil, status.Error(codes.InvalidArgument, "Location cache must be able to hold at least one entry")
		}
		evictionSet, err := eviction.NewSetFromConfiguration[LocationCacheKey](locationCacheConfig.CacheReplacementPolicy)
		if err != nil {
			return nil, util.StatusWrap(err, "Failed to create eviction set for location cache")
		}
		selector = NewLocationCachingEndpointSelector(
			selector,
			locationCacheConfig.MaximumEntries,
			eviction.NewMetricsSet(evictionSet, "RedirectorLocationCache"))
	}
	return NewRedirectHandler(NewMetricsEndpointSelector(selector), config.ServerName, config.ForwardAuthorization), nil
}
