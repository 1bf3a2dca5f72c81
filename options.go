package fetchcache

import (
	"time"

	"github.com/fetchcache/fetchcache/eviction"
	"github.com/fetchcache/fetchcache/types"
)

type config struct {
	capacity       int
	evictionPolicy eviction.Policy
	metrics        types.Metrics
	refreshBuffer  int
	refreshWorkers int
	now            func() time.Time
}

func defaultConfig() config {
	return config{
		metrics:        types.NoopMetrics{},
		refreshBuffer:  256,
		refreshWorkers: 1,
		now:            time.Now,
	}
}

// Option configures a Cache at construction.
type Option func(*config)

/*
WithCapacity bounds the store to n entries, evicting per the given
policy type when full. The default is unbounded: the engine itself
takes no position on how big is too big.
*/
func WithCapacity(n int, policy eviction.PolicyType) Option {
	return func(c *config) {
		c.capacity = n
		c.evictionPolicy = eviction.New(policy)
	}
}

// WithMetrics installs an event sink. Nil restores the noop sink.
func WithMetrics(m types.Metrics) Option {
	return func(c *config) {
		if m == nil {
			m = types.NoopMetrics{}
		}
		c.metrics = m
	}
}

// WithRefreshBuffer sets how many background refreshes may queue
// before further kicks are dropped (and retried by later reads).
func WithRefreshBuffer(n int) Option {
	return func(c *config) { c.refreshBuffer = n }
}

// WithRefreshWorkers sets how many goroutines drain the refresh
// queue. One is enough unless producers are slow and stale keys many.
func WithRefreshWorkers(n int) Option {
	return func(c *config) { c.refreshWorkers = n }
}

// WithClock substitutes the time source. Tests use this to cross TTL
// boundaries without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
