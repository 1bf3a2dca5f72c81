package coalesce

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fetchcache/fetchcache/store"
	"github.com/fetchcache/fetchcache/types"
)

/*
Group guarantees at most one concurrent producer invocation per key.

If a flight for a key is already running, new callers attach to it
and receive the same outcome instead of invoking the producer again.
This holds regardless of how the callers arrived: a cache miss, an
invalidated read, and a background refresh for the same key all
share one flight.
*/
type Group struct {
	sf    singleflight.Group
	store *store.Store
	now   func() time.Time
}

// New creates a coalescing group that publishes successful results
// to st, stamping them with the supplied clock.
func New(st *store.Store, now func() time.Time) *Group {
	if now == nil {
		now = time.Now
	}
	return &Group{store: st, now: now}
}

/*
Resolve produces the value for key, invoking produce at most once
across all concurrent callers.

On success the new entry is published to the store inside the
flight, so writes for a key are linearized: two recomputations for
the same key can never race to publish, and a torn value is never
observable.

On failure the flight is cleared (the next call gets a fresh
attempt; failures are never cached) and every attached waiter
receives the same error. Any prior entry is left untouched so a
later stale read can still serve last-known-good data.

The producer runs with the triggering caller's context values but
without its cancellation: coalescing is caller-count-independent,
and a caller that abandons the request must not poison the result
for the waiters that remain.
*/
func (g *Group) Resolve(ctx context.Context, key string, policy types.Policy, tags []string, produce types.Producer) (any, error) {
	v, err, _ := g.sf.Do(key, func() (any, error) {
		val, err := produce(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		g.store.Put(&types.Entry{
			Key:       key,
			Value:     val,
			CreatedAt: g.now(),
			Policy:    policy,
			Tags:      append([]string(nil), tags...),
		})
		return val, nil
	})
	return v, err
}
