// Package metrics provides a Prometheus implementation of the cache
// metrics contract.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fetchcache/fetchcache/types"
)

// Prometheus counts cache events as Prometheus counters.
type Prometheus struct {
	hits          prometheus.Counter
	misses        prometheus.Counter
	stale         prometheus.Counter
	refreshes     prometheus.Counter
	refreshErrors prometheus.Counter
	invalidations prometheus.Counter
	evictions     prometheus.Counter
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the cache counters under the given
// namespace. A nil registerer falls back to the default registry.
func NewPrometheus(namespace string, reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Prometheus{
		hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_total",
			Help:      "Reads served from a fresh cache entry",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "misses_total",
			Help:      "Reads that blocked on a producer invocation",
		}),
		stale: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_serves_total",
			Help:      "Reads served a past-TTL value while a refresh was arranged",
		}),
		refreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Background recomputations started",
		}),
		refreshErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_errors_total",
			Help:      "Background recomputations that failed",
		}),
		invalidations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalidations_total",
			Help:      "Entries explicitly invalidated by key or tag",
		}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Entries dropped by the capacity bound",
		}),
	}
}

func (p *Prometheus) Hit()          { p.hits.Inc() }
func (p *Prometheus) Miss()         { p.misses.Inc() }
func (p *Prometheus) Stale()        { p.stale.Inc() }
func (p *Prometheus) Refresh()      { p.refreshes.Inc() }
func (p *Prometheus) RefreshError() { p.refreshErrors.Inc() }
func (p *Prometheus) Invalidation() { p.invalidations.Inc() }
func (p *Prometheus) Eviction()     { p.evictions.Inc() }
