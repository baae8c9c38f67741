package eviction

// BoundedMap is a map that holds at most a fixed number of entries.
// When full, inserting a new key causes the entry selected by the
// cache replacement Set to be evicted. Like Set, BoundedMap does not
// permit concurrent access.
type BoundedMap[K comparable, V any] struct {
	maximumEntries int
	entries        map[K]V
	evictionSet    Set[K]
}

// NewBoundedMap creates a BoundedMap that holds up to maximumEntries
// entries. The eviction set must be empty.
func NewBoundedMap[K comparable, V any](maximumEntries int, evictionSet Set[K]) *BoundedMap[K, V] {
	if maximumEntries <= 0 {
		panic("Bounded maps must be able to hold at least one entry")
	}
	return &BoundedMap[K, V]{
		maximumEntries: maximumEntries,
		entries:        make(map[K]V, maximumEntries),
		evictionSet:    evictionSet,
	}
}

// Get the value associated with a key, marking it as recently used.
func (m *BoundedMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.entries[key]
	if ok {
		m.evictionSet.Touch(key)
	}
	return value, ok
}

// Put a value into the map, overwriting any existing value associated
// with the key.
func (m *BoundedMap[K, V]) Put(key K, value V) {
	if _, ok := m.entries[key]; ok {
		m.evictionSet.Touch(key)
		m.entries[key] = value
		return
	}
	for len(m.entries) >= m.maximumEntries {
		delete(m.entries, m.evictionSet.Peek())
		m.evictionSet.Remove()
	}
	m.evictionSet.Insert(key)
	m.entries[key] = value
}

// Len returns the number of entries in the map.
func (m *BoundedMap[K, V]) Len() int {
	return len(m.entries)
}
