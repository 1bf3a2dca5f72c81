package types

import "time"

/*
Entry is one cached computation result.

Entries are immutable once published to the store. A recomputation
replaces the whole entry; invalidation republishes a flagged copy.
Readers therefore never observe a partially written entry.
*/
type Entry struct {
	Key       string
	Value     any
	CreatedAt time.Time
	Policy    Policy

	// Tags are the group-invalidation labels attached at write time.
	// They are never inferred by the cache.
	Tags []string

	// Invalidated is set by explicit invalidation. An invalidated
	// entry forces the next read to recompute synchronously, because
	// the value may be actively wrong rather than merely aged.
	Invalidated bool
}

// State is the derived freshness of an entry at a point in time.
// It is computed from the policy, CreatedAt and the invalidation
// flag; it is never stored.
type State uint32

const (
	// StateFresh: serve the value as-is.
	StateFresh State = iota

	// StateStale: serve the value, but it is past its freshness
	// window and should be refreshed.
	StateStale

	// StateInvalid: the value must not be served.
	StateInvalid
)

// StateAt derives the entry's freshness at the given instant.
func (e *Entry) StateAt(now time.Time) State {
	if e.Invalidated {
		return StateInvalid
	}
	switch e.Policy.Kind {
	case KindImmutable:
		return StateFresh
	case KindNoStore:
		// Stored only for introspection; never servable.
		return StateInvalid
	case KindTimedRevalidate:
		if now.Sub(e.CreatedAt) < e.Policy.TTL {
			return StateFresh
		}
		return StateStale
	}
	return StateInvalid
}

// Clone returns a copy of the entry. The tag slice is copied too, so
// the clone can be mutated before publishing without aliasing the
// original.
func (e *Entry) Clone() *Entry {
	c := *e
	c.Tags = append([]string(nil), e.Tags...)
	return &c
}
