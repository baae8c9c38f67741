package configuration

// CacheReplacementPolicy selects the algorithm that is used to evict
// entries from bounded caches.
type CacheReplacementPolicy string

const (
	// FirstInFirstOut evicts the entry that was inserted first.
	FirstInFirstOut CacheReplacementPolicy = "FIRST_IN_FIRST_OUT"
	// LeastRecentlyUsed evicts the entry that was accessed least
	// recently.
	LeastRecentlyUsed CacheReplacementPolicy = "LEAST_RECENTLY_USED"
	// RandomReplacement evicts an arbitrary entry.
	RandomReplacement CacheReplacementPolicy = "RANDOM_REPLACEMENT"
)
