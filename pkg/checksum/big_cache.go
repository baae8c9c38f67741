package checksum

import (
	"context"
	"errors"

	"github.com/allegro/bigcache/v3"
	"github.com/ingrid-storage/storage-locator/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type bigCache struct {
	cache *bigcache.BigCache
}

// NewBigCache creates a Cache that stores checksums in a BigCache
// instance. Unlike NewLocalCache(), entries are evicted based on their
// age, and the cache's memory footprint is independent of the number
// of entries, making it suitable for large working sets.
func NewBigCache(cache *bigcache.BigCache) Cache {
	return &bigCache{
		cache: cache,
	}
}

func (c *bigCache) Get(ctx context.Context, name string) (Checksum, error) {
	value, err := c.cache.Get(name)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return Checksum{}, status.Error(codes.NotFound, "Object not found in cache")
	} else if err != nil {
		return Checksum{}, util.StatusWrapWithCode(err, codes.Internal, "Failed to read from BigCache")
	}
	return NewChecksumFromBytes(value)
}

func (c *bigCache) Put(ctx context.Context, name string, checksum Checksum) error {
	if err := checkCacheable(checksum); err != nil {
		return err
	}
	if err := c.cache.Set(name, checksum[:]); err != nil {
		return util.StatusWrapWithCode(err, codes.Internal, "Failed to write to BigCache")
	}
	return nil
}
