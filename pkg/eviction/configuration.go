package eviction

import (
	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/random"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewSetFromConfiguration creates a new cache replacement set using an
// algorithm specified in a configuration file. When no policy is
// provided, Least Recently Used is assumed.
func NewSetFromConfiguration[T comparable](cacheReplacementPolicy configuration.CacheReplacementPolicy) (Set[T], error) {
	switch cacheReplacementPolicy {
	case configuration.FirstInFirstOut:
		return NewFIFOSet[T](), nil
	case configuration.LeastRecentlyUsed, "":
		return NewLRUSet[T](), nil
	case configuration.RandomReplacement:
		return NewRRSet[T](random.NewFastSingleThreadedGenerator()), nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "Unknown cache replacement policy %#v", cacheReplacementPolicy)
	}
}
