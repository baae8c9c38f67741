package checksum

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Cache of checksums, keyed by object name. Implementations return
// codes.NotFound for objects whose checksum is not present.
//
// Implementations reject attempts to store PendingSentinel, as a cache
// is only used to store checksums that are final.
type Cache interface {
	Get(ctx context.Context, name string) (Checksum, error)
	Put(ctx context.Context, name string, c Checksum) error
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, name string) (Checksum, error) {
	return Checksum{}, status.Error(codes.NotFound, "Object not found in cache")
}

func (noopCache) Put(ctx context.Context, name string, c Checksum) error {
	return checkCacheable(c)
}

// NoopCache is a Cache that does not store any checksums. It may be
// used in case no cache is configured.
var NoopCache Cache = noopCache{}
