// Package robinmap provides a generic hash map built on Robin Hood open
// addressing with linear probing and backward-shift deletion.
//
// # Overview
//
// Keys and values live inline in a single flat slot array. Every slot stores
// the key's hash alongside the entry, so probing compares hashes before it
// compares keys, and relocation during growth never rehashes. The hash is
// forced odd on entry; a stored hash of zero always means an empty slot.
//
// Lookups start at the hash's ideal slot and probe forward. An entry is never
// stored before its ideal slot, and probe distances stay balanced because
// inserts displace entries that sit closer to home than the incoming one
// (the Robin Hood rule). A probe can therefore stop early: once it reaches a
// slot whose occupant is closer to home than the probe is long, the key is
// absent. Deletion shifts the following cluster back one slot instead of
// leaving tombstones, so tables never degrade with churn.
//
// # API Tiers
//
// Accessors come in two tiers. Get, Ptr, and Delete report absence through
// return values. MustGet and MustDelete treat absence as a programming error
// and panic. Put grows the table as needed and panics only if the allocator
// fails.
//
// # Hashing
//
// New hashes keys with hash/maphash, seeded per map, so probe sequences vary
// between instances and across runs. NewWithHasher accepts a custom hash
// function for callers that need control over distribution; the map still
// owns the seed.
//
// # Ownership
//
// Maps must not be copied after first use; pass *Map. Put, Delete, Reserve,
// and Clear invalidate pointers previously returned by Put or Ptr. A Map is
// not synchronized; callers coordinate concurrent access.
//
// # Related Packages
//
//   - github.com/joshuapare/memkit/mem: pluggable slot storage
//   - github.com/joshuapare/memkit/introspect: structural dumps
package robinmap
