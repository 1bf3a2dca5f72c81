package api

import (
	"context"
	"time"

	"github.com/fetchcache/fetchcache/types"
)

/*
Cache defines the PUBLIC API of the fetch caching & revalidation
engine. This is a contract that guarantees certain behaviors without
exposing internals. Storage layout, coalescing, background refresh
and tag indexing are all hidden behind this interface.
*/
type Cache interface {

	/*
		Fetch returns the value for key, consulting the entry's
		policy to decide how.

		BEHAVIOR:
		---------
		1. No entry (or NoStore policy):
		   - Block on a producer invocation, store the result,
		     return it. Concurrent callers for the same key share
		     one invocation and one outcome.

		2. Entry with Immutable policy:
		   - Return the stored value. The producer is never
		     re-invoked unless the entry is explicitly invalidated.

		3. Entry with TimedRevalidate(ttl), within ttl:
		   - Return the stored value. No producer call.

		4. Entry with TimedRevalidate(ttl), past ttl:
		   - Return the stored value IMMEDIATELY, and trigger at
		     most one background recomputation. The caller is never
		     blocked by the refresh (stale-while-revalidate).

		5. Entry explicitly invalidated:
		   - Block on a synchronous recomputation. Invalidation
		     means the value may be wrong, not merely old.

		ERRORS:
		-------
		A producer failure is returned to every caller waiting on
		that invocation. It is never stored; a prior good entry
		survives it.
	*/
	Fetch(ctx context.Context, key string, policy types.Policy, tags []string, produce types.Producer) (any, error)

	/*
		Put stores a value directly, replacing any existing entry
		atomically and reindexing its tags.

		Use it to seed the cache or to publish a value obtained out
		of band. It bypasses the producer machinery entirely.
	*/
	Put(key string, value any, policy types.Policy, tags []string)

	/*
		Invalidate forces the next read of key to recompute
		synchronously before returning.

		Invalidating an absent key is a safe no-op — the cache does
		not distinguish "never cached" from "already invalidated".
	*/
	Invalidate(key string)

	/*
		InvalidateTag invalidates every key currently carrying tag,
		and no other. Intended for administrative paths: webhook
		handlers, CLI commands, admin actions.
	*/
	InvalidateTag(tag string)

	/*
		Remaining reports the time left in key's freshness window
		(Redis-compatible semantics):

		> 0 : duration until the entry goes stale
		-1  : entry never expires (Immutable)
		-2  : no servable entry
	*/
	Remaining(key string) time.Duration

	// Contains reports whether key has a resident entry, servable
	// or not. NoStore and invalidated entries still count.
	Contains(key string) bool

	// Len returns the number of resident entries.
	Len() int

	/*
		Close shuts the cache down gracefully: pending background
		refreshes are drained, workers stop, and subsequent fetches
		fail with a closed error.

		Call it on application shutdown and in test cleanup.
	*/
	Close()
}
