package store

import (
	"sync"
	"sync/atomic"

	"github.com/fetchcache/fetchcache/eviction"
	"github.com/fetchcache/fetchcache/types"
)

/*
Store is the thread-safe mapping from cache key to entry, plus a
secondary tag index (tag → set of keys) for group invalidation.

The entry map is copy-on-write:
  - Readers always see an immutable snapshot and take no lock.
  - Writers copy the map, apply the change, and swap it atomically.

Reads dominate writes on a cache by a wide margin, so paying the
copy on the write path buys a lock-free hot path. The tag index is
only touched by writes and by the invalidator, so it lives behind
the write mutex.
*/
type Store struct {
	// mu serializes all mutation: the COW swap, the tag index, and
	// eviction bookkeeping move together under it.
	mu sync.Mutex

	// entries holds map[string]*types.Entry, swapped wholesale.
	entries atomic.Value

	// tags is the secondary index: tag → set of keys carrying it.
	tags map[string]map[string]struct{}

	// capacity bounds the entry count when > 0; policy picks the
	// victim. Both nil/zero by default: the engine is unbounded
	// unless the caller opts in.
	capacity int
	policy   eviction.Policy

	metrics types.Metrics
}

// New creates a store. capacity <= 0 or a nil policy means unbounded.
func New(capacity int, policy eviction.Policy, metrics types.Metrics) *Store {
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	s := &Store{
		tags:     make(map[string]map[string]struct{}),
		capacity: capacity,
		policy:   policy,
		metrics:  metrics,
	}
	s.entries.Store(make(map[string]*types.Entry))
	return s
}

// Get retrieves an entry. Lock-free; a miss is a normal absence,
// never an error.
func (s *Store) Get(key string) (*types.Entry, bool) {
	m := s.entries.Load().(map[string]*types.Entry)
	ent, ok := m[key]
	return ent, ok
}

/*
Put inserts or replaces the entry for ent.Key atomically.

Replacement is all-or-nothing: readers observe either the prior
entry or the new one, never a mix. The tag index is reconciled in
the same critical section, dropping associations the new tag set no
longer carries.
*/
func (s *Store) Put(ent *types.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.entries.Load().(map[string]*types.Entry)

	if prev, ok := old[ent.Key]; ok {
		s.unindexTags(prev)
	} else if s.capacity > 0 && s.policy != nil && len(old) >= s.capacity {
		if victim := s.policy.Evict(); victim != "" {
			s.metrics.Eviction()
			old = s.withoutLocked(old, victim)
		}
	}

	n := make(map[string]*types.Entry, len(old)+1)
	for k, v := range old {
		n[k] = v
	}
	n[ent.Key] = ent
	s.entries.Store(n)

	s.indexTags(ent)
	if s.policy != nil {
		s.policy.OnPut(ent.Key)
	}
}

// Remove deletes the entry and its tag associations. Idempotent:
// removing an absent key does nothing.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(key)
}

/*
Invalidate forces the next read of key to bypass the cached value.

TimedRevalidate entries keep their value but gain the invalidation
flag, so a failed synchronous recompute can still fall back to
last-known-good data. Other policies have nothing worth keeping, so
the entry is removed outright; either way the next read recomputes
before returning.

Returns false when no entry existed: "never cached" and "already
invalidated" are indistinguishable on purpose.
*/
func (s *Store) Invalidate(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.entries.Load().(map[string]*types.Entry)
	ent, ok := old[key]
	if !ok {
		return false
	}
	if ent.Invalidated {
		return false
	}

	if ent.Policy.Kind != types.KindTimedRevalidate {
		s.removeLocked(key)
		return true
	}

	// Republish a flagged copy; the published entry stays immutable.
	flagged := ent.Clone()
	flagged.Invalidated = true

	n := make(map[string]*types.Entry, len(old))
	for k, v := range old {
		n[k] = v
	}
	n[key] = flagged
	s.entries.Store(n)
	return true
}

// KeysForTag returns the keys currently carrying tag. Used only by
// the invalidator.
func (s *Store) KeysForTag(tag string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.tags[tag]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	return keys
}

// Touch reports a successful read to the eviction policy.
func (s *Store) Touch(key string) {
	if s.policy == nil {
		return
	}
	s.mu.Lock()
	s.policy.OnGet(key)
	s.mu.Unlock()
}

// Len returns the number of resident entries.
func (s *Store) Len() int {
	m := s.entries.Load().(map[string]*types.Entry)
	return len(m)
}

func (s *Store) removeLocked(key string) {
	old := s.entries.Load().(map[string]*types.Entry)
	if _, ok := old[key]; !ok {
		return
	}
	s.entries.Store(s.withoutLocked(old, key))
}

// withoutLocked builds a copy of m lacking key. It also drops the
// victim's tag associations and eviction bookkeeping.
func (s *Store) withoutLocked(m map[string]*types.Entry, key string) map[string]*types.Entry {
	n := make(map[string]*types.Entry, len(m))
	for k, v := range m {
		if k == key {
			s.unindexTags(v)
			if s.policy != nil {
				s.policy.Remove(k)
			}
			continue
		}
		n[k] = v
	}
	return n
}

func (s *Store) indexTags(ent *types.Entry) {
	for _, t := range ent.Tags {
		set, ok := s.tags[t]
		if !ok {
			set = make(map[string]struct{})
			s.tags[t] = set
		}
		set[ent.Key] = struct{}{}
	}
}

func (s *Store) unindexTags(ent *types.Entry) {
	for _, t := range ent.Tags {
		set, ok := s.tags[t]
		if !ok {
			continue
		}
		delete(set, ent.Key)
		if len(set) == 0 {
			delete(s.tags, t)
		}
	}
}
