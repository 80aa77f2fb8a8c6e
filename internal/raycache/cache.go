// Package raycache memoizes ray casts keyed by the exact ray angle and
// camera position.
package raycache

import (
	"sync"
	"sync/atomic"

	"seehuhn.de/go/geom/vec"
)

// DefaultCapacity is used when a cache is created with a non-positive capacity.
const DefaultCapacity = 4096

// RayKey identifies one cast: the ray angle and the camera position it was
// cast from. Keys compare with exact float equality: rays that differ in the
// last bit of any component are different entries.
type RayKey struct {
	Angle    float64
	Position vec.Vec2
}

// Stats are cumulative counters since the cache was created.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a fixed-capacity least-recently-used store. A single mutex guards
// every operation, including Get, since lookups reorder the recency list.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruNode[K, V]
	order    lruList[K, V]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache holding at most capacity entries.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K, V]{
		entries:  make(map[K]*lruNode[K, V], capacity),
		capacity: capacity,
	}
}

// Get returns the value stored for key and marks it most recently used.
// The boolean is false when the key is absent.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.order.moveToFront(node)
	c.hits.Add(1)
	return node.value, true
}

// Put stores value for key and marks it most recently used. Adding a new key
// to a full cache first evicts the least recently used entry, so Len never
// exceeds Cap.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		node.value = value
		c.order.moveToFront(node)
		return
	}
	if c.order.len >= c.capacity {
		if oldest := c.order.removeOldest(); oldest != nil {
			delete(c.entries, oldest.key)
			c.evictions.Add(1)
		}
	}
	c.entries[key] = c.order.pushFront(key, value)
}

// Len returns the number of stored entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.len
}

// Cap returns the fixed capacity.
func (c *Cache[K, V]) Cap() int { return c.capacity }

// Reset drops every entry. Counters are kept.
func (c *Cache[K, V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*lruNode[K, V], c.capacity)
	c.order = lruList[K, V]{}
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
