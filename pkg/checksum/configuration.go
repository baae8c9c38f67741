package checksum

import (
	"context"
	"net"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/ingrid-storage/storage-locator/pkg/clock"
	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/eviction"
	"github.com/ingrid-storage/storage-locator/pkg/util"
	"github.com/redis/go-redis/v9"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultStorageRoot is the directory under which checksum
	// servers resolve object names if none is configured.
	DefaultStorageRoot = "/storage/data/cms"

	defaultConnectTimeout    = 3 * time.Second
	defaultPendingRetryDelay = 3 * time.Second
)

// NewCacheFromConfiguration creates a Cache based on options specified
// in a configuration file. The returned Cache is decorated to expose
// Prometheus metrics.
func NewCacheFromConfiguration(ctx context.Context, config *configuration.ChecksumCacheConfiguration) (Cache, error) {
	if config == nil {
		return NoopCache, nil
	}

	var backend Cache
	var name string
	backendsConfigured := 0
	if redisConfig := config.Redis; redisConfig != nil {
		backendsConfigured++
		if redisConfig.Address == "" {
			return nil, status.Error(codes.InvalidArgument, "No Redis address provided")
		}
		backend = NewRedisCache(
			redis.NewClient(&redis.Options{
				Addr:         redisConfig.Address,
				Password:     redisConfig.Password,
				DB:           redisConfig.DB,
				DialTimeout:  redisConfig.DialTimeout.AsDuration(),
				ReadTimeout:  redisConfig.ReadTimeout.AsDuration(),
				WriteTimeout: redisConfig.WriteTimeout.AsDuration(),
			}),
			redisConfig.KeyPrefix)
		name = "Redis"
	}
	if localConfig := config.Local; localConfig != nil {
		backendsConfigured++
		if localConfig.MaximumEntries <= 0 {
			return nil, status.Error(codes.InvalidArgument, "Local cache must be able to hold at least one entry")
		}
		evictionSet, err := eviction.NewSetFromConfiguration[string](localConfig.CacheReplacementPolicy)
		if err != nil {
			return nil, util.StatusWrap(err, "Failed to create eviction set for local cache")
		}
		backend = NewLocalCache(
			localConfig.MaximumEntries,
			eviction.NewMetricsSet(evictionSet, "ChecksumLocalCache"))
		name = "Local"
	}
	if bigCacheConfig := config.BigCache; bigCacheConfig != nil {
		backendsConfigured++
		if bigCacheConfig.LifeWindow <= 0 {
			return nil, status.Error(codes.InvalidArgument, "BigCache life window must be positive")
		}
		bigCacheOptions := bigcache.DefaultConfig(bigCacheConfig.LifeWindow.AsDuration())
		bigCacheOptions.CleanWindow = bigCacheConfig.CleanWindow.AsDuration()
		bigCacheOptions.HardMaxCacheSize = bigCacheConfig.HardMaxCacheSizeMB
		bigCacheOptions.MaxEntrySize = Size
		bigCacheOptions.Verbose = false
		if bigCacheConfig.Shards > 0 {
			bigCacheOptions.Shards = bigCacheConfig.Shards
		}
		if bigCacheConfig.MaxEntriesInWindow > 0 {
			bigCacheOptions.MaxEntriesInWindow = bigCacheConfig.MaxEntriesInWindow
		}
		cache, err := bigcache.New(ctx, bigCacheOptions)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "Failed to create BigCache: %s", err)
		}
		backend = NewBigCache(cache)
		name = "BigCache"
	}

	if backendsConfigured != 1 {
		return nil, status.Errorf(codes.InvalidArgument, "Exactly one cache backend must be configured, while %d were provided", backendsConfigured)
	}
	return NewMetricsCache(backend, name), nil
}

// NewResolverFromConfiguration creates a Resolver based on options
// specified in a configuration file.
func NewResolverFromConfiguration(ctx context.Context, config *configuration.ChecksumResolverConfiguration, errorLogger util.ErrorLogger) (Resolver, error) {
	if config == nil {
		return nil, status.Error(codes.InvalidArgument, "No checksum resolver configuration provided")
	}
	cache, err := NewCacheFromConfiguration(ctx, config.Cache)
	if err != nil {
		return nil, util.StatusWrap(err, "Failed to create cache")
	}

	storageRoot := config.StorageRoot
	if storageRoot == "" {
		storageRoot = DefaultStorageRoot
	}
	connectTimeout := config.ConnectTimeout.AsDuration()
	if connectTimeout == 0 {
		connectTimeout = defaultConnectTimeout
	}
	pendingRetryDelay := config.PendingRetryDelay.AsDuration()
	if pendingRetryDelay == 0 {
		pendingRetryDelay = defaultPendingRetryDelay
	}
	pool, err := NewServerPool(
		config.Servers,
		&net.Dialer{},
		clock.SystemClock,
		storageRoot,
		connectTimeout,
		config.ReadTimeout.AsDuration())
	if err != nil {
		return nil, util.StatusWrap(err, "Failed to create checksum server pool")
	}

	return NewMetricsResolver(
		NewDeduplicatingResolver(
			NewCachingResolver(
				cache,
				pool,
				clock.SystemClock,
				pendingRetryDelay,
				errorLogger)),
		clock.SystemClock), nil
}
