package checksum

import (
	"context"
	"time"

	"github.com/ingrid-storage/storage-locator/pkg/util"
	"github.com/redis/go-redis/v9"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RedisClient is the subset of the go-redis client that is used by
// RedisCache. It has been added to aid unit testing.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

var _ RedisClient = (*redis.Client)(nil)

type redisCache struct {
	client    RedisClient
	keyPrefix string
}

// NewRedisCache creates a Cache that stores checksums in Redis. Keys
// consist of the object name, preceded by a configurable prefix.
// Entries are stored without an expiration time, as the checksum of an
// object never changes.
func NewRedisCache(client RedisClient, keyPrefix string) Cache {
	return &redisCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (c *redisCache) Get(ctx context.Context, name string) (Checksum, error) {
	value, err := c.client.Get(ctx, c.keyPrefix+name).Result()
	if err == redis.Nil {
		return Checksum{}, status.Error(codes.NotFound, "Object not found in cache")
	} else if err != nil {
		return Checksum{}, util.StatusWrapWithCode(err, codes.Unavailable, "Failed to read from Redis")
	}
	checksum, err := NewChecksumFromString(value)
	if err != nil {
		return Checksum{}, util.StatusWrapWithCode(err, codes.Internal, "Redis contains a malformed checksum")
	}
	return checksum, nil
}

func (c *redisCache) Put(ctx context.Context, name string, checksum Checksum) error {
	if err := checkCacheable(checksum); err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.keyPrefix+name, checksum.String(), 0).Err(); err != nil {
		return util.StatusWrapWithCode(err, codes.Unavailable, "Failed to write to Redis")
	}
	return nil
}
