package resolver

import (
	"time"

	"github.com/fetchcache/fetchcache/types"
)

/*
This package is the read-time policy layer. It decides WHAT should
happen for a lookup; it does not store anything, call producers, or
block. The orchestrator acts on the classification.

Time is passed in as a parameter rather than read from the wall
clock here, so TTL boundaries are testable with a fake clock.
*/

// Outcome classifies a lookup.
type Outcome int

const (
	// Miss: no servable entry. The caller must block on a coalesced
	// producer invocation and store the result.
	Miss Outcome = iota

	// Hit: serve the stored value unconditionally.
	Hit

	// StaleServe: serve the stored value immediately AND arrange a
	// background recomputation. The reader is never blocked.
	StaleServe

	// Recompute: the entry was explicitly invalidated. The value may
	// be actively wrong, not just aged, so the caller blocks on a
	// synchronous recomputation instead of serving it.
	Recompute
)

// Classify maps an entry (or its absence) to a read outcome at the
// given instant.
func Classify(ent *types.Entry, ok bool, now time.Time) Outcome {
	if !ok {
		return Miss
	}
	if ent.Invalidated {
		return Recompute
	}

	switch ent.Policy.Kind {
	case types.KindImmutable:
		return Hit

	case types.KindNoStore:
		// The entry may exist for introspection, but every read
		// ignores it and recomputes.
		return Miss

	case types.KindTimedRevalidate:
		if now.Sub(ent.CreatedAt) < ent.Policy.TTL {
			return Hit
		}
		return StaleServe
	}

	// Unknown policy kinds are treated as misses rather than served.
	return Miss
}

/*
Remaining reports how long the entry stays fresh, with Redis-style
semantics:

	> 0 : time left in the freshness window
	 -1 : the entry never expires (Immutable)
	 -2 : no servable entry (absent, NoStore, invalidated, or past TTL)
*/
func Remaining(ent *types.Entry, ok bool, now time.Time) time.Duration {
	if !ok || ent.Invalidated || ent.Policy.Kind == types.KindNoStore {
		return -2
	}
	if ent.Policy.Kind == types.KindImmutable {
		return -1
	}
	d := ent.Policy.TTL - now.Sub(ent.CreatedAt)
	if d <= 0 {
		return -2
	}
	return d
}
