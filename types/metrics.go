package types

// This file defines how the cache reports what it is doing.

/*
Metrics is the set of events the cache emits. Each method is called
at most once per event, on the goroutine where the event happened, so
implementations must be cheap and concurrency-safe.
*/
type Metrics interface {

	// Hit is called when a read is served from a fresh entry.
	Hit()

	// Miss is called when a read has no servable entry and must
	// block on a producer invocation.
	Miss()

	// Stale is called when a read is served a past-TTL value while
	// a background refresh is arranged.
	Stale()

	// Refresh is called when a background recomputation starts.
	Refresh()

	// RefreshError is called when a background recomputation fails.
	// The failure is not surfaced to any reader; this counter is the
	// only trace it leaves.
	RefreshError()

	// Invalidation is called when an existing entry is explicitly
	// invalidated by key or by tag.
	Invalidation()

	// Eviction is called when the store is over capacity and drops
	// an entry to make room.
	Eviction()
}

/*
NoopMetrics ignores every event.

It exists so the rest of the codebase never has to nil-check the
metrics sink: construction substitutes NoopMetrics whenever the
caller does not supply one.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()          {}
func (NoopMetrics) Miss()         {}
func (NoopMetrics) Stale()        {}
func (NoopMetrics) Refresh()      {}
func (NoopMetrics) RefreshError() {}
func (NoopMetrics) Invalidation() {}
func (NoopMetrics) Eviction()     {}
