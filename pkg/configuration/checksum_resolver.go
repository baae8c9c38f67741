package configuration

// ChecksumResolverConfiguration is the configuration file format of
// the checksum_resolver program.
type ChecksumResolverConfiguration struct {
	Global *GlobalConfiguration `json:"global,omitempty"`

	// Cache that is consulted before any of the checksum servers are
	// contacted. When omitted, every resolution contacts the pool.
	Cache *ChecksumCacheConfiguration `json:"cache,omitempty"`

	// Checksum servers, in order of preference. Entries may be of
	// the form "host" or "host:port". The port defaults to 9500.
	Servers []string `json:"servers"`

	// Directory under which object names are resolved by the
	// checksum servers. Defaults to "/storage/data/cms".
	StorageRoot string `json:"storageRoot,omitempty"`

	// Maximum amount of time to wait for a connection to a checksum
	// server to be established. Defaults to 3 seconds.
	ConnectTimeout Duration `json:"connectTimeout,omitempty"`

	// Maximum amount of time to wait for a checksum server to
	// respond once connected. Zero means no limit.
	ReadTimeout Duration `json:"readTimeout,omitempty"`

	// Amount of time to wait before asking the pool once more
	// after a checksum server reported that the computation of a
	// checksum is still pending. Defaults to 3 seconds.
	PendingRetryDelay Duration `json:"pendingRetryDelay,omitempty"`
}

// ChecksumCacheConfiguration selects exactly one cache backend.
type ChecksumCacheConfiguration struct {
	Redis    *RedisCacheConfiguration    `json:"redis,omitempty"`
	Local    *LocalCacheConfiguration    `json:"local,omitempty"`
	BigCache *BigCacheCacheConfiguration `json:"bigCache,omitempty"`
}

// RedisCacheConfiguration stores checksums in a Redis server that can
// be shared between hosts.
type RedisCacheConfiguration struct {
	Address      string   `json:"address"`
	Password     string   `json:"password,omitempty"`
	DB           int      `json:"db,omitempty"`
	KeyPrefix    string   `json:"keyPrefix,omitempty"`
	DialTimeout  Duration `json:"dialTimeout,omitempty"`
	ReadTimeout  Duration `json:"readTimeout,omitempty"`
	WriteTimeout Duration `json:"writeTimeout,omitempty"`
}

// LocalCacheConfiguration stores checksums in the memory of the current
// process, bounded by a number of entries.
type LocalCacheConfiguration struct {
	MaximumEntries         int                    `json:"maximumEntries"`
	CacheReplacementPolicy CacheReplacementPolicy `json:"cacheReplacementPolicy,omitempty"`
}

// BigCacheCacheConfiguration stores checksums in the memory of the
// current process using a sharded cache with time based eviction.
type BigCacheCacheConfiguration struct {
	LifeWindow         Duration `json:"lifeWindow"`
	CleanWindow        Duration `json:"cleanWindow,omitempty"`
	Shards             int      `json:"shards,omitempty"`
	MaxEntriesInWindow int      `json:"maxEntriesInWindow,omitempty"`
	HardMaxCacheSizeMB int      `json:"hardMaxCacheSizeMb,omitempty"`
}
