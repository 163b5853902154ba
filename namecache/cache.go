// Package namecache provides a byte-level LRU cache for case-folded name
// lookups.
//
// The cache is keyed on raw name bytes and stores the case-folded form along
// with a precomputed 64-bit hash of it, so repeated lookups of hot names skip
// both the Unicode folding pass and the hash. Case folding uses Unicode case
// folding, under which "Straße" and "STRASSE" compare equal.
//
// Concurrency: 16-shard design with per-shard mutexes reduces contention
// when multiple goroutines fold names concurrently. Each shard owns its own
// folding caser, which is stateful and must stay behind the shard mutex.
package namecache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"golang.org/x/text/cases"

	"github.com/joshuapare/memkit/robinmap"
)

// defaultCapacity is the default maximum number of entries in the cache.
const defaultCapacity = 8192

// numShards is the number of independent cache shards.
// Must be a power of two for fast modulo via bitmask.
const numShards = 16

// FNV-1a parameters for shard selection and the precomputed name hash.
const (
	fnvBasis32 = 2166136261
	fnvPrime32 = 16777619
	fnvBasis64 = 14695981039346656037
	fnvPrime64 = 1099511628211
)

// cacheEntry stores the folded result for a raw name byte sequence.
type cacheEntry struct {
	key    string // copy of the raw bytes (index key)
	folded string // case-folded name
	hash   uint64 // FNV-1a of the folded name
}

// lruCache is an LRU cache mapping raw name bytes to folded results.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	caser    cases.Caser
	items    *robinmap.Map[string, *list.Element]
	order    *list.List // front = most recently used
}

// newCache creates an LRU cache with the given capacity.
// A capacity of 0 disables caching.
func newCache(capacity int) *lruCache {
	opts := []robinmap.Option{}
	if capacity > 0 {
		opts = append(opts, robinmap.WithCapacity(capacity))
	}
	return &lruCache{
		capacity: capacity,
		caser:    cases.Fold(),
		items:    robinmap.New[string, *list.Element](opts...),
		order:    list.New(),
	}
}

// fold returns the case-folded form of data and its hash, consulting the
// cache first. The second return reports whether it was a cache hit.
func (c *lruCache) fold(data []byte) (string, uint64, bool) {
	c.mu.Lock()
	if c.capacity > 0 {
		if elem, ok := c.items.Get(string(data)); ok {
			c.order.MoveToFront(elem)
			entry := elem.Value.(*cacheEntry)
			folded, hash := entry.folded, entry.hash
			c.mu.Unlock()
			return folded, hash, true
		}
	}

	folded := c.caser.String(string(data))
	hash := fnv64(folded)
	if c.capacity > 0 {
		c.insertLocked(string(data), folded, hash)
	}
	c.mu.Unlock()
	return folded, hash, false
}

// lookup checks the cache for the given raw name bytes.
// Returns the folded name, its hash, and whether the entry was found.
func (c *lruCache) lookup(data []byte) (string, uint64, bool) {
	if c.capacity == 0 {
		return "", 0, false
	}

	c.mu.Lock()
	elem, ok := c.items.Get(string(data))
	if !ok {
		c.mu.Unlock()
		return "", 0, false
	}
	c.order.MoveToFront(elem)
	entry := elem.Value.(*cacheEntry)
	folded, hash := entry.folded, entry.hash
	c.mu.Unlock()
	return folded, hash, true
}

// store adds a folded result to the cache, evicting the least-recently-used
// entry if the cache is at capacity.
func (c *lruCache) store(data []byte, folded string, hash uint64) {
	if c.capacity == 0 {
		return
	}

	c.mu.Lock()
	// Check if already present (race between lookup miss and store).
	if elem, ok := c.items.Get(string(data)); ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.folded = folded
		entry.hash = hash
		c.mu.Unlock()
		return
	}
	c.insertLocked(string(data), folded, hash)
	c.mu.Unlock()
}

// insertLocked adds a new entry, evicting the LRU entry at capacity.
// The caller holds c.mu.
func (c *lruCache) insertLocked(key, folded string, hash uint64) {
	if c.order.Len() >= c.capacity {
		if back := c.order.Back(); back != nil {
			evicted := c.order.Remove(back).(*cacheEntry)
			c.items.Delete(evicted.key)
		}
	}
	elem := c.order.PushFront(&cacheEntry{key: key, folded: folded, hash: hash})
	c.items.Put(key, elem)
}

// setCapacity changes the cache capacity. If the new capacity is smaller,
// excess entries are evicted. A capacity of 0 disables caching and clears
// all entries.
func (c *lruCache) setCapacity(n int) {
	c.mu.Lock()
	c.capacity = n
	for c.order.Len() > n {
		back := c.order.Back()
		if back == nil {
			break
		}
		evicted := c.order.Remove(back).(*cacheEntry)
		c.items.Delete(evicted.key)
	}
	c.mu.Unlock()
}

// reset clears all entries without changing capacity.
func (c *lruCache) reset() {
	c.mu.Lock()
	c.items.Clear()
	c.order.Init()
	c.mu.Unlock()
}

// len returns the current number of cached entries.
func (c *lruCache) len() int {
	c.mu.Lock()
	n := c.order.Len()
	c.mu.Unlock()
	return n
}

// shardedCache distributes entries across multiple lruCache shards
// to reduce mutex contention under concurrent access.
type shardedCache struct {
	shards   [numShards]*lruCache
	capacity atomic.Int64
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// newShardedCache creates a sharded cache. Each shard gets capacity/numShards entries.
func newShardedCache(capacity int) *shardedCache {
	sc := &shardedCache{}
	sc.capacity.Store(int64(capacity))
	perShard := capacity / numShards
	if perShard < 1 && capacity > 0 {
		perShard = 1
	}
	for i := range sc.shards {
		sc.shards[i] = newCache(perShard)
	}
	return sc
}

// shardFor returns the shard index for the given raw bytes using FNV-1a.
func shardFor(data []byte) int {
	h := uint32(fnvBasis32)
	for _, b := range data {
		h ^= uint32(b)
		h *= fnvPrime32
	}
	return int(h & (numShards - 1))
}

// fnv64 returns the FNV-1a hash of s.
func fnv64(s string) uint64 {
	h := uint64(fnvBasis64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

func (sc *shardedCache) fold(data []byte) string {
	folded, _, hit := sc.shards[shardFor(data)].fold(data)
	if hit {
		sc.hits.Add(1)
	} else {
		sc.misses.Add(1)
	}
	return folded
}

func (sc *shardedCache) lookup(data []byte) (string, uint64, bool) {
	folded, hash, ok := sc.shards[shardFor(data)].lookup(data)
	if ok {
		sc.hits.Add(1)
	} else {
		sc.misses.Add(1)
	}
	return folded, hash, ok
}

func (sc *shardedCache) store(data []byte, folded string, hash uint64) {
	sc.shards[shardFor(data)].store(data, folded, hash)
}

func (sc *shardedCache) setCapacity(n int) {
	sc.capacity.Store(int64(n))
	perShard := n / numShards
	if perShard < 1 && n > 0 {
		perShard = 1
	}
	for _, s := range sc.shards {
		s.setCapacity(perShard)
	}
}

func (sc *shardedCache) reset() {
	for _, s := range sc.shards {
		s.reset()
	}
}

func (sc *shardedCache) len() int {
	total := 0
	for _, s := range sc.shards {
		total += s.len()
	}
	return total
}

// CacheStats summarizes cache effectiveness.
type CacheStats struct {
	Entries  int
	Capacity int
	Hits     uint64
	Misses   uint64
}

func (sc *shardedCache) stats() CacheStats {
	return CacheStats{
		Entries:  sc.len(),
		Capacity: int(sc.capacity.Load()),
		Hits:     sc.hits.Load(),
		Misses:   sc.misses.Load(),
	}
}

// global is the package-level singleton sharded cache.
var global = newShardedCache(defaultCapacity)

// --- Package-level API (delegates to global singleton) ---

// Fold returns the case-folded form of the given raw name bytes, consulting
// the cache first and populating it on a miss.
func Fold(data []byte) string {
	return global.fold(data)
}

// Lookup checks the cache for the given raw name bytes.
// Returns the folded name, its precomputed hash, and whether the entry was
// found.
func Lookup(data []byte) (string, uint64, bool) {
	return global.lookup(data)
}

// Store adds a folded result to the cache.
func Store(data []byte, folded string, hash uint64) {
	global.store(data, folded, hash)
}

// SetCapacity changes the cache capacity. Pass 0 to disable caching.
func SetCapacity(n int) {
	global.setCapacity(n)
}

// Reset clears all cached entries without changing capacity.
func Reset() {
	global.reset()
}

// Len returns the current number of cached entries.
func Len() int {
	return global.len()
}

// Stats returns entry counts and hit rates for the global cache.
func Stats() CacheStats {
	return global.stats()
}
