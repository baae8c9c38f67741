package redirector

import (
	"net/url"
	"sync"

	"github.com/ingrid-storage/storage-locator/pkg/eviction"
)

// LocationCacheKey is the key of entries stored by the endpoint
// selector created by NewLocationCachingEndpointSelector().
type LocationCacheKey struct {
	Class OperationClass
	Path  string
}

type locationCachingEndpointSelector struct {
	base EndpointSelector

	lock      sync.Mutex
	locations *eviction.BoundedMap[LocationCacheKey, *url.URL]
}

// NewLocationCachingEndpointSelector creates a decorator for
// EndpointSelector that remembers the endpoint that was chosen for a
// path. Repeated requests for the same path are redirected to the same
// endpoint, for as long as the entry is not evicted. This improves the
// locality of caches on the endpoints, without requiring sticky
// sessions.
//
// Entries are advisory. Losing them only causes subsequent requests to
// be redirected to a different endpoint.
func NewLocationCachingEndpointSelector(base EndpointSelector, maximumEntries int, evictionSet eviction.Set[LocationCacheKey]) EndpointSelector {
	return &locationCachingEndpointSelector{
		base:      base,
		locations: eviction.NewBoundedMap[LocationCacheKey, *url.URL](maximumEntries, evictionSet),
	}
}

func (s *locationCachingEndpointSelector) SelectEndpoint(class OperationClass, path string) *url.URL {
	key := LocationCacheKey{Class: class, Path: path}

	s.lock.Lock()
	defer s.lock.Unlock()

	if endpoint, ok := s.locations.Get(key); ok {
		return endpoint
	}
	endpoint := s.base.SelectEndpoint(class, path)
	s.locations.Put(key, endpoint)
	return endpoint
}
