package robinmap

import (
	"fmt"
	"hash/maphash"
	"math/bits"

	"github.com/joshuapare/memkit/mem"
)

// emptySlot is the stored-hash sentinel for a vacant slot. Stored hashes are
// forced odd, so zero can never collide with a live entry.
const emptySlot = 0

// minCapacity keeps at least one vacant slot in any non-empty table so probe
// loops always terminate.
const minCapacity = 4

type slot[K comparable, V any] struct {
	hash  uint64
	key   K
	value V
}

// Map is a Robin Hood hash map. The zero value is not usable; construct with
// New or NewWithHasher.
type Map[K comparable, V any] struct {
	slots  []slot[K, V]
	length int
	usable int
	shift  uint
	seed   maphash.Seed
	hash   func(maphash.Seed, K) uint64
	pool   mem.Pool[slot[K, V]]
}

// New creates a map keyed by K's built-in hash. Each map draws its own seed,
// so slot layouts differ between instances.
func New[K comparable, V any](opts ...Option) *Map[K, V] {
	return NewWithHasher[K, V](maphash.Comparable[K], opts...)
}

// NewWithHasher creates a map using a caller-supplied hash function. Equal
// keys must hash equally under every seed. Panics if hash is nil.
func NewWithHasher[K comparable, V any](hash func(maphash.Seed, K) uint64, opts ...Option) *Map[K, V] {
	if hash == nil {
		panic("robinmap: nil hash function")
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Map[K, V]{
		seed: maphash.MakeSeed(),
		hash: hash,
		pool: mem.HeapPool[slot[K, V]](),
	}
	if cfg.alloc != nil {
		pool, err := mem.AllocPool[slot[K, V]](cfg.alloc)
		if err != nil {
			panic(fmt.Errorf("robinmap: %w", err))
		}
		m.pool = pool
	}
	if cfg.capacity > 0 {
		m.Reserve(cfg.capacity)
	}
	return m
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.length }

// Empty reports whether the map holds no entries.
func (m *Map[K, V]) Empty() bool { return m.length == 0 }

// Full reports whether the next Put must grow the table.
func (m *Map[K, V]) Full() bool { return m.length == m.usable }

// Cap returns the slot array capacity. Always zero or a power of two.
func (m *Map[K, V]) Cap() int { return len(m.slots) }

// Usable returns the entry count at which the next Put triggers growth,
// three quarters of the capacity.
func (m *Map[K, V]) Usable() int { return m.usable }

// storedHash folds k through the map's hash function and forces the result
// odd so it cannot alias the empty sentinel.
func (m *Map[K, V]) storedHash(k K) uint64 {
	return m.hash(m.seed, k) | 1
}

// ideal returns the slot a stored hash probes first.
func (m *Map[K, V]) ideal(hash uint64) int {
	return int(hash >> m.shift)
}

// displacement returns how far the entry at idx sits from its ideal slot,
// accounting for wraparound.
func (m *Map[K, V]) displacement(idx int, hash uint64) int {
	kidx := m.ideal(hash)
	if kidx <= idx {
		return idx - kidx
	}
	return len(m.slots) + idx - kidx
}

// init installs a fresh zeroed slot array of the given power-of-two capacity
// and derives the probe parameters from it. length is left alone; rehashing
// preserves it.
func (m *Map[K, V]) init(capacity int) {
	slots, err := m.pool.Make(capacity)
	if err != nil {
		panic(fmt.Errorf("robinmap: alloc %d slots: %w", capacity, err))
	}
	m.slots = slots
	m.shift = uint(bits.LeadingZeros64(uint64(capacity)) + 1)
	m.usable = capacity / 4 * 3
}

// nextPow2 rounds n up to a power of two.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len64(uint64(n-1))
}

// Reserve grows the table to hold at least n slots, rounded up to a power of
// two, and rehashes live entries into it. It is a no-op when n does not
// exceed the current capacity. Pointers into the map are invalidated.
func (m *Map[K, V]) Reserve(n int) {
	if n <= len(m.slots) {
		return
	}
	capacity := nextPow2(n)
	if capacity < minCapacity {
		capacity = minCapacity
	}

	old := m.slots
	m.init(capacity)
	for i := range old {
		if old[i].hash != emptySlot {
			m.putSlot(old[i])
		}
	}
	m.pool.Release(old)
}

// grow doubles the capacity, or starts at 32 slots.
func (m *Map[K, V]) grow() {
	if len(m.slots) == 0 {
		m.Reserve(32)
		return
	}
	m.Reserve(2 * len(m.slots))
}

// putSlot inserts s by Robin Hood probing: walk forward from the ideal slot,
// and whenever the incumbent sits closer to home than the carried entry,
// swap and continue placing the displaced one. Returns the slot where s's
// original entry landed and whether an existing key was overwritten. The
// table must have a vacant slot.
func (m *Map[K, V]) putSlot(s slot[K, V]) (int, bool) {
	idx := m.ideal(s.hash)
	placed := -1
	dist := 0
	for {
		cur := &m.slots[idx]
		if cur.hash == emptySlot {
			*cur = s
			if placed >= 0 {
				return placed, false
			}
			return idx, false
		}
		if cur.hash == s.hash && cur.key == s.key {
			*cur = s
			return idx, true
		}
		if incumbent := m.displacement(idx, cur.hash); incumbent < dist {
			*cur, s = s, *cur
			if placed < 0 {
				placed = idx
			}
			// Continue the probe on the displaced entry's terms.
			dist = incumbent
		}
		dist++
		idx++
		if idx == len(m.slots) {
			idx = 0
		}
	}
}

// Put inserts or overwrites the entry for k and returns a pointer to its
// value slot, valid until the next mutation. Panics if growth fails.
func (m *Map[K, V]) Put(k K, v V) *V {
	if m.Full() {
		m.grow()
	}
	idx, overwrote := m.putSlot(slot[K, V]{hash: m.storedHash(k), key: k, value: v})
	if !overwrote {
		m.length++
	}
	return &m.slots[idx].value
}

// lookup probes for k and returns its slot index, or -1 when absent. The
// probe stops at a vacant slot or at an entry closer to home than the probe
// is long; under the Robin Hood rule the key cannot be further out.
func (m *Map[K, V]) lookup(k K) int {
	if m.length == 0 {
		return -1
	}
	hash := m.storedHash(k)
	idx := m.ideal(hash)
	dist := 0
	for {
		cur := &m.slots[idx]
		if cur.hash == emptySlot {
			return -1
		}
		if cur.hash == hash && cur.key == k {
			return idx
		}
		if m.displacement(idx, cur.hash) < dist {
			return -1
		}
		dist++
		idx++
		if idx == len(m.slots) {
			idx = 0
		}
	}
}

// Get returns the value for k, or (zero, false) when absent.
func (m *Map[K, V]) Get(k K) (V, bool) {
	idx := m.lookup(k)
	if idx < 0 {
		var zero V
		return zero, false
	}
	return m.slots[idx].value, true
}

// MustGet returns the value for k. Panics when k is absent; use Get when
// absence is a normal case.
func (m *Map[K, V]) MustGet(k K) V {
	idx := m.lookup(k)
	if idx < 0 {
		panic(fmt.Sprintf("robinmap: get: missing key %v", k))
	}
	return m.slots[idx].value
}

// Ptr returns a pointer to k's value slot, or nil when absent. The pointer
// is valid until the next mutation.
func (m *Map[K, V]) Ptr(k K) *V {
	idx := m.lookup(k)
	if idx < 0 {
		return nil
	}
	return &m.slots[idx].value
}

// Contains reports whether k is present.
func (m *Map[K, V]) Contains(k K) bool {
	return m.lookup(k) >= 0
}

// Delete removes k and reports whether it was present. Removal shifts the
// following cluster back one slot, so no tombstones are left behind.
func (m *Map[K, V]) Delete(k K) bool {
	idx := m.lookup(k)
	if idx < 0 {
		return false
	}
	m.slots[idx] = slot[K, V]{}
	m.fixUp(idx)
	m.length--
	return true
}

// MustDelete removes k. Panics when k is absent; use Delete when absence is
// a normal case.
func (m *Map[K, V]) MustDelete(k K) {
	if !m.Delete(k) {
		panic(fmt.Sprintf("robinmap: delete: missing key %v", k))
	}
}

// fixUp closes the hole at idx by shifting successors back until it reaches
// a vacant slot or an entry already sitting at its ideal slot.
func (m *Map[K, V]) fixUp(idx int) {
	for {
		next := idx + 1
		if next == len(m.slots) {
			next = 0
		}
		cur := &m.slots[next]
		if cur.hash == emptySlot || m.ideal(cur.hash) == next {
			return
		}
		m.slots[idx] = *cur
		*cur = slot[K, V]{}
		idx = next
	}
}

// Clear removes all entries, retaining capacity.
func (m *Map[K, V]) Clear() {
	clear(m.slots)
	m.length = 0
}

// Clone returns an independent map with the same entries, seed, and layout.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return m.CloneFunc(
		func(k K) K { return k },
		func(v V) V { return v },
	)
}

// CloneFunc returns an independent map, deep-cloning every entry through
// cloneKey and cloneValue. Entries keep their slot positions; cloned keys
// must preserve hash and equality.
func (m *Map[K, V]) CloneFunc(cloneKey func(K) K, cloneValue func(V) V) *Map[K, V] {
	c := &Map[K, V]{
		length: m.length,
		usable: m.usable,
		shift:  m.shift,
		seed:   m.seed,
		hash:   m.hash,
		pool:   m.pool,
	}
	if m.slots == nil {
		return c
	}
	slots, err := m.pool.Make(len(m.slots))
	if err != nil {
		panic(fmt.Errorf("robinmap: clone: %w", err))
	}
	for i := range m.slots {
		if m.slots[i].hash == emptySlot {
			continue
		}
		slots[i] = slot[K, V]{
			hash:  m.slots[i].hash,
			key:   cloneKey(m.slots[i].key),
			value: cloneValue(m.slots[i].value),
		}
	}
	c.slots = slots
	return c
}

// Move transfers the table to a new map and leaves the receiver empty with
// zero capacity. The receiver keeps its seed, hash function, and storage
// configuration and remains usable.
func (m *Map[K, V]) Move() *Map[K, V] {
	moved := &Map[K, V]{
		slots:  m.slots,
		length: m.length,
		usable: m.usable,
		shift:  m.shift,
		seed:   m.seed,
		hash:   m.hash,
		pool:   m.pool,
	}
	m.slots = nil
	m.length = 0
	m.usable = 0
	m.shift = 0
	return moved
}
