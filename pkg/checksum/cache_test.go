package checksum_test

import (
	"context"
	"testing"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/ingrid-storage/storage-locator/internal/mock"
	"github.com/ingrid-storage/storage-locator/pkg/checksum"
	"github.com/ingrid-storage/storage-locator/pkg/eviction"
	"github.com/ingrid-storage/storage-locator/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	errPendingNotCacheable = status.Error(codes.InvalidArgument, "Pending checksums cannot be cached")
	errNotInCache          = status.Error(codes.NotFound, "Object not found in cache")
)

func TestNoopCache(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, checksum.NoopCache.Put(ctx, "/store/data/file.root", checksum.MustNewChecksumFromString("a1b2c3d4")))
	_, err := checksum.NoopCache.Get(ctx, "/store/data/file.root")
	testutil.RequireEqualStatus(t, errNotInCache, err)
	testutil.RequireEqualStatus(t, errPendingNotCacheable, checksum.NoopCache.Put(ctx, "/store/data/file.root", checksum.PendingSentinel))
}

func TestLocalCache(t *testing.T) {
	ctx := context.Background()
	cache := checksum.NewLocalCache(2, eviction.NewLRUSet[string]())

	t.Run("Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, "/store/data/a.root")
		testutil.RequireEqualStatus(t, errNotInCache, err)
	})

	t.Run("Pending", func(t *testing.T) {
		testutil.RequireEqualStatus(t, errPendingNotCacheable, cache.Put(ctx, "/store/data/a.root", checksum.PendingSentinel))
		_, err := cache.Get(ctx, "/store/data/a.root")
		testutil.RequireEqualStatus(t, errNotInCache, err)
	})

	t.Run("Eviction", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, "/store/data/a.root", checksum.MustNewChecksumFromString("0000000a")))
		require.NoError(t, cache.Put(ctx, "/store/data/b.root", checksum.MustNewChecksumFromString("0000000b")))

		// Touch the first entry, so that the second one is
		// evicted when a third entry is inserted.
		c, err := cache.Get(ctx, "/store/data/a.root")
		require.NoError(t, err)
		require.Equal(t, checksum.MustNewChecksumFromString("0000000a"), c)
		require.NoError(t, cache.Put(ctx, "/store/data/c.root", checksum.MustNewChecksumFromString("0000000c")))

		_, err = cache.Get(ctx, "/store/data/b.root")
		testutil.RequireEqualStatus(t, errNotInCache, err)
		c, err = cache.Get(ctx, "/store/data/c.root")
		require.NoError(t, err)
		require.Equal(t, checksum.MustNewChecksumFromString("0000000c"), c)
	})
}

func TestBigCache(t *testing.T) {
	ctx := context.Background()
	bc, err := bigcache.New(ctx, bigcache.DefaultConfig(time.Hour))
	require.NoError(t, err)
	defer bc.Close()
	cache := checksum.NewBigCache(bc)

	_, err = cache.Get(ctx, "/store/data/file.root")
	testutil.RequireEqualStatus(t, errNotInCache, err)

	testutil.RequireEqualStatus(t, errPendingNotCacheable, cache.Put(ctx, "/store/data/file.root", checksum.PendingSentinel))

	require.NoError(t, cache.Put(ctx, "/store/data/file.root", checksum.MustNewChecksumFromString("a1b2c3d4")))
	c, err := cache.Get(ctx, "/store/data/file.root")
	require.NoError(t, err)
	require.Equal(t, checksum.MustNewChecksumFromString("a1b2c3d4"), c)
}

func TestRedisCache(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	client := mock.NewMockRedisClient(ctrl)
	cache := checksum.NewRedisCache(client, "adler32:")

	t.Run("Hit", func(t *testing.T) {
		client.EXPECT().Get(ctx, "adler32:/store/data/file.root").Return(redis.NewStringResult("a1b2c3d4", nil))

		c, err := cache.Get(ctx, "/store/data/file.root")
		require.NoError(t, err)
		require.Equal(t, checksum.MustNewChecksumFromString("a1b2c3d4"), c)
	})

	t.Run("Miss", func(t *testing.T) {
		client.EXPECT().Get(ctx, "adler32:/store/data/file.root").Return(redis.NewStringResult("", redis.Nil))

		_, err := cache.Get(ctx, "/store/data/file.root")
		testutil.RequireEqualStatus(t, errNotInCache, err)
	})

	t.Run("GetFailure", func(t *testing.T) {
		client.EXPECT().Get(ctx, "adler32:/store/data/file.root").Return(redis.NewStringResult("", status.Error(codes.Unknown, "dial tcp 10.0.0.1:6379: connection refused")))

		_, err := cache.Get(ctx, "/store/data/file.root")
		testutil.RequireEqualStatus(t, status.Error(codes.Unavailable, "Failed to read from Redis: dial tcp 10.0.0.1:6379: connection refused"), err)
	})

	t.Run("MalformedValue", func(t *testing.T) {
		client.EXPECT().Get(ctx, "adler32:/store/data/file.root").Return(redis.NewStringResult("a1b2", nil))

		_, err := cache.Get(ctx, "/store/data/file.root")
		testutil.RequireEqualStatus(t, status.Error(codes.Internal, "Redis contains a malformed checksum: Checksum has length 4, while 8 bytes were expected"), err)
	})

	t.Run("Put", func(t *testing.T) {
		// Entries are stored without an expiration time.
		client.EXPECT().Set(ctx, "adler32:/store/data/file.root", "a1b2c3d4", time.Duration(0)).Return(redis.NewStatusResult("OK", nil))

		require.NoError(t, cache.Put(ctx, "/store/data/file.root", checksum.MustNewChecksumFromString("a1b2c3d4")))
	})

	t.Run("PutPending", func(t *testing.T) {
		testutil.RequireEqualStatus(t, errPendingNotCacheable, cache.Put(ctx, "/store/data/file.root", checksum.PendingSentinel))
	})

	t.Run("PutFailure", func(t *testing.T) {
		client.EXPECT().Set(ctx, "adler32:/store/data/file.root", "a1b2c3d4", time.Duration(0)).Return(redis.NewStatusResult("", status.Error(codes.Unknown, "READONLY You can't write against a read only replica.")))

		testutil.RequireEqualStatus(
			t,
			status.Error(codes.Unavailable, "Failed to write to Redis: READONLY You can't write against a read only replica."),
			cache.Put(ctx, "/store/data/file.root", checksum.MustNewChecksumFromString("a1b2c3d4")))
	})
}

func TestMetricsCache(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	base := mock.NewMockCache(ctrl)
	cache := checksum.NewMetricsCache(base, "Test")

	base.EXPECT().Get(ctx, "/store/data/file.root").Return(checksum.Checksum{}, errNotInCache)
	_, err := cache.Get(ctx, "/store/data/file.root")
	testutil.RequireEqualStatus(t, errNotInCache, err)

	base.EXPECT().Put(ctx, "/store/data/file.root", checksum.MustNewChecksumFromString("a1b2c3d4"))
	require.NoError(t, cache.Put(ctx, "/store/data/file.root", checksum.MustNewChecksumFromString("a1b2c3d4")))
}
