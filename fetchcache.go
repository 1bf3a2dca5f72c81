package fetchcache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fetchcache/fetchcache/api"
	"github.com/fetchcache/fetchcache/coalesce"
	"github.com/fetchcache/fetchcache/resolver"
	"github.com/fetchcache/fetchcache/revalidate"
	"github.com/fetchcache/fetchcache/store"
	"github.com/fetchcache/fetchcache/types"
)

// ErrClosed is returned by Fetch after Close.
var ErrClosed = errors.New("fetchcache: cache is closed")

/*
Cache is the orchestrator. It connects:
  - the entry store (keyed values + tag index)
  - the policy resolver (what should this read do?)
  - the coalescing group (one producer flight per key)
  - the revalidation runner (non-blocking stale refreshes)

A Cache is an explicitly constructed instance with its own
lifecycle; there is no package-level singleton. Construct it where
your application wires its dependencies and Close it on shutdown.
*/
type Cache struct {
	store   *store.Store
	group   *coalesce.Group
	runner  *revalidate.Runner
	metrics types.Metrics
	now     func() time.Time
	closed  atomic.Bool
}

var _ api.Cache = (*Cache)(nil)

// New creates a cache. With no options it is unbounded, unmetered,
// and uses the wall clock.
func New(opts ...Option) *Cache {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	st := store.New(cfg.capacity, cfg.evictionPolicy, cfg.metrics)
	group := coalesce.New(st, cfg.now)

	return &Cache{
		store:   st,
		group:   group,
		runner:  revalidate.NewRunner(group, cfg.metrics, cfg.refreshBuffer, cfg.refreshWorkers),
		metrics: cfg.metrics,
		now:     cfg.now,
	}
}

/*
Fetch is the single entry point: return the value for key, deciding
per the entry's policy whether it comes from the store, from the
store with a background refresh kicked off, or from a blocking
producer invocation.

The producer is invoked at most once concurrently per key no matter
how many callers arrive; see the coalesce package for the sharing
and failure semantics.
*/
func (c *Cache) Fetch(ctx context.Context, key string, policy types.Policy, tags []string, produce types.Producer) (any, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	ent, ok := c.store.Get(key)

	switch resolver.Classify(ent, ok, c.now()) {
	case resolver.Hit:
		c.metrics.Hit()
		c.store.Touch(key)
		return ent.Value, nil

	case resolver.StaleServe:
		// Serve the old value now; refresh behind the reader's back.
		c.metrics.Stale()
		c.store.Touch(key)
		c.runner.Kick(key, policy, tags, produce)
		return ent.Value, nil

	case resolver.Recompute:
		// Explicit invalidation: the value may be actively wrong,
		// so this reader waits for a fresh one.
		return c.produce(ctx, key, policy, tags, produce)

	default: // resolver.Miss
		return c.produce(ctx, key, policy, tags, produce)
	}
}

func (c *Cache) produce(ctx context.Context, key string, policy types.Policy, tags []string, produce types.Producer) (any, error) {
	c.metrics.Miss()
	v, err := c.group.Resolve(ctx, key, policy, tags, produce)
	if err != nil {
		return nil, fmt.Errorf("fetchcache: produce %q: %w", key, err)
	}
	return v, nil
}

/*
Put stores a value directly, bypassing the producer machinery.

Any existing entry is replaced atomically, including one that was
invalidated. Values stored under NoStore are held for introspection
only; reads will still recompute.
*/
func (c *Cache) Put(key string, value any, policy types.Policy, tags []string) {
	c.store.Put(&types.Entry{
		Key:       key,
		Value:     value,
		CreatedAt: c.now(),
		Policy:    policy,
		Tags:      append([]string(nil), tags...),
	})
}

// Contains reports whether key has a resident entry, servable or not.
func (c *Cache) Contains(key string) bool {
	_, ok := c.store.Get(key)
	return ok
}

// Len returns the number of resident entries.
func (c *Cache) Len() int {
	return c.store.Len()
}

/*
Remaining returns the time left in key's freshness window, with
Redis-compatible semantics:

	> 0 : remaining freshness
	 -1 : never expires (Immutable)
	 -2 : no servable entry
*/
func (c *Cache) Remaining(key string) time.Duration {
	ent, ok := c.store.Get(key)
	return resolver.Remaining(ent, ok, c.now())
}

/*
Close shuts the cache down: no further fetches are accepted, queued
background refreshes are drained, and the refresh workers exit.
Close is idempotent.
*/
func (c *Cache) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.runner.Close()
}

/*
FetchAs is the typed convenience over Fetch for callers whose
producer returns a concrete type. It fails if the cached value for
key was produced with a different type.
*/
func FetchAs[V any](ctx context.Context, c *Cache, key string, policy types.Policy, tags []string, produce func(ctx context.Context) (V, error)) (V, error) {
	raw, err := c.Fetch(ctx, key, policy, tags, func(ctx context.Context) (any, error) {
		return produce(ctx)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, ok := raw.(V)
	if !ok {
		var zero V
		return zero, fmt.Errorf("fetchcache: value for %q is %T, not %T", key, raw, zero)
	}
	return v, nil
}
