package checksum

import (
	"context"
	"sync"

	"github.com/ingrid-storage/storage-locator/pkg/eviction"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type localCache struct {
	lock    sync.Mutex
	entries *eviction.BoundedMap[string, Checksum]
}

// NewLocalCache creates a Cache that stores checksums in memory. The
// number of entries is bounded, with the eviction set determining
// which entries are discarded first.
func NewLocalCache(maximumEntries int, evictionSet eviction.Set[string]) Cache {
	return &localCache{
		entries: eviction.NewBoundedMap[string, Checksum](maximumEntries, evictionSet),
	}
}

func (c *localCache) Get(ctx context.Context, name string) (Checksum, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if checksum, ok := c.entries.Get(name); ok {
		return checksum, nil
	}
	return Checksum{}, status.Error(codes.NotFound, "Object not found in cache")
}

func (c *localCache) Put(ctx context.Context, name string, checksum Checksum) error {
	if err := checkCacheable(checksum); err != nil {
		return err
	}

	c.lock.Lock()
	c.entries.Put(name, checksum)
	c.lock.Unlock()
	return nil
}
