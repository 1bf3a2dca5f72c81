package types

import "time"

/*
PolicyKind identifies how freshness is decided for a cache entry.

Every entry carries exactly one policy, assigned at write time by the
caller. The cache never guesses a policy and never changes one after
the fact.
*/
type PolicyKind string

const (
	// KindImmutable: once produced, the value is served forever.
	// The producer is never re-invoked for this key unless the entry
	// is explicitly invalidated.
	KindImmutable PolicyKind = "IMMUTABLE"

	// KindTimedRevalidate: the value is served as-is within its TTL.
	// Past the TTL it is still served, but a background recomputation
	// is triggered so a later read sees fresh data
	// (stale-while-revalidate).
	KindTimedRevalidate PolicyKind = "TIMED_REVALIDATE"

	// KindNoStore: the stored value (if any) is never trusted.
	// Every read recomputes. Concurrent reads for the same key still
	// coalesce into one producer call.
	KindNoStore PolicyKind = "NO_STORE"
)

// Policy is the per-entry freshness rule. TTL is meaningful only for
// KindTimedRevalidate.
type Policy struct {
	Kind PolicyKind
	TTL  time.Duration
}

// Immutable returns the cache-forever policy.
func Immutable() Policy {
	return Policy{Kind: KindImmutable}
}

// TimedRevalidate returns a policy that serves the value for ttl and
// then serves it stale while refreshing in the background.
func TimedRevalidate(ttl time.Duration) Policy {
	return Policy{Kind: KindTimedRevalidate, TTL: ttl}
}

// NoStore returns the never-trust-the-cache policy.
func NoStore() Policy {
	return Policy{Kind: KindNoStore}
}
