package checksum_test

import (
	"context"
	"testing"
	"time"

	"github.com/ingrid-storage/storage-locator/pkg/checksum"
	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/testutil"
	"github.com/ingrid-storage/storage-locator/pkg/util"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewCacheFromConfiguration(t *testing.T) {
	ctx := context.Background()

	t.Run("None", func(t *testing.T) {
		cache, err := checksum.NewCacheFromConfiguration(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, checksum.NoopCache, cache)
	})

	t.Run("NoBackends", func(t *testing.T) {
		_, err := checksum.NewCacheFromConfiguration(ctx, &configuration.ChecksumCacheConfiguration{})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Exactly one cache backend must be configured, while 0 were provided"), err)
	})

	t.Run("MultipleBackends", func(t *testing.T) {
		_, err := checksum.NewCacheFromConfiguration(ctx, &configuration.ChecksumCacheConfiguration{
			Redis: &configuration.RedisCacheConfiguration{Address: "redis.example.com:6379"},
			Local: &configuration.LocalCacheConfiguration{MaximumEntries: 100},
		})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Exactly one cache backend must be configured, while 2 were provided"), err)
	})

	t.Run("RedisWithoutAddress", func(t *testing.T) {
		_, err := checksum.NewCacheFromConfiguration(ctx, &configuration.ChecksumCacheConfiguration{
			Redis: &configuration.RedisCacheConfiguration{},
		})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "No Redis address provided"), err)
	})

	t.Run("LocalWithoutEntries", func(t *testing.T) {
		_, err := checksum.NewCacheFromConfiguration(ctx, &configuration.ChecksumCacheConfiguration{
			Local: &configuration.LocalCacheConfiguration{},
		})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Local cache must be able to hold at least one entry"), err)
	})

	t.Run("LocalWithUnknownPolicy", func(t *testing.T) {
		_, err := checksum.NewCacheFromConfiguration(ctx, &configuration.ChecksumCacheConfiguration{
			Local: &configuration.LocalCacheConfiguration{
				MaximumEntries:         100,
				CacheReplacementPolicy: "MOST_RECENTLY_USED",
			},
		})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Failed to create eviction set for local cache: Unknown cache replacement policy \"MOST_RECENTLY_USED\""), err)
	})

	t.Run("Local", func(t *testing.T) {
		cache, err := checksum.NewCacheFromConfiguration(ctx, &configuration.ChecksumCacheConfiguration{
			Local: &configuration.LocalCacheConfiguration{
				MaximumEntries:         100,
				CacheReplacementPolicy: configuration.FirstInFirstOut,
			},
		})
		require.NoError(t, err)

		require.NoError(t, cache.Put(ctx, "/store/data/file.root", checksum.MustNewChecksumFromString("a1b2c3d4")))
		c, err := cache.Get(ctx, "/store/data/file.root")
		require.NoError(t, err)
		require.Equal(t, checksum.MustNewChecksumFromString("a1b2c3d4"), c)
	})

	t.Run("BigCache", func(t *testing.T) {
		cache, err := checksum.NewCacheFromConfiguration(ctx, &configuration.ChecksumCacheConfiguration{
			BigCache: &configuration.BigCacheCacheConfiguration{
				LifeWindow: configuration.Duration(time.Hour),
				Shards:     16,
			},
		})
		require.NoError(t, err)

		_, err = cache.Get(ctx, "/store/data/file.root")
		testutil.RequireEqualStatus(t, status.Error(codes.NotFound, "Object not found in cache"), err)
	})

	t.Run("BigCacheWithoutLifeWindow", func(t *testing.T) {
		_, err := checksum.NewCacheFromConfiguration(ctx, &configuration.ChecksumCacheConfiguration{
			BigCache: &configuration.BigCacheCacheConfiguration{},
		})
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "BigCache life window must be positive"), err)
	})
}

func TestNewResolverFromConfiguration(t *testing.T) {
	ctx := context.Background()

	t.Run("NoServers", func(t *testing.T) {
		_, err := checksum.NewResolverFromConfiguration(ctx, &configuration.ChecksumResolverConfiguration{}, util.DefaultErrorLogger)
		testutil.RequireEqualStatus(t, status.Error(codes.InvalidArgument, "Failed to create checksum server pool: No checksum servers provided"), err)
	})

	t.Run("Success", func(t *testing.T) {
		_, err := checksum.NewResolverFromConfiguration(ctx, &configuration.ChecksumResolverConfiguration{
			Servers: []string{"cs1.example.com", "cs2.example.com"},
			Cache: &configuration.ChecksumCacheConfiguration{
				Local: &configuration.LocalCacheConfiguration{MaximumEntries: 1000},
			},
		}, util.DefaultErrorLogger)
		require.NoError(t, err)
	})
}
