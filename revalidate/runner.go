package revalidate

import (
	"context"
	"sync"

	"github.com/fetchcache/fetchcache/coalesce"
	"github.com/fetchcache/fetchcache/types"
)

// job is one pending background recomputation.
type job struct {
	key    string
	policy types.Policy
	tags   []string
	prod   types.Producer
}

/*
Runner executes background recomputations for stale reads.

Revalidation is lazy and caller-driven: nothing here fires on a
timer. A stale read enqueues a job and returns the old value
immediately; a worker drains the queue and runs the producer through
the coalescing group, which publishes the fresh entry on success.

A per-key pending set ensures a key that keeps being read while its
refresh is running does not pile up duplicate jobs: the first stale
read schedules the refresh, later ones just serve the old value.
*/
type Runner struct {
	group   *coalesce.Group
	metrics types.Metrics

	ch chan job
	wg sync.WaitGroup

	mu      sync.Mutex
	pending map[string]struct{}
	closed  bool
}

// NewRunner starts workers goroutines draining a queue of buffer
// slots. Both are normalized to at least 1.
func NewRunner(group *coalesce.Group, metrics types.Metrics, buffer, workers int) *Runner {
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if buffer < 1 {
		buffer = 1
	}
	if workers < 1 {
		workers = 1
	}
	r := &Runner{
		group:   group,
		metrics: metrics,
		ch:      make(chan job, buffer),
		pending: make(map[string]struct{}),
	}
	r.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go r.worker()
	}
	return r
}

/*
Kick schedules a background refresh for key. It never blocks the
caller: if a refresh for the key is already pending or in flight,
or the queue is full, the kick is dropped. A dropped kick is safe —
the entry stays stale, so the next read kicks again.
*/
func (r *Runner) Kick(key string, policy types.Policy, tags []string, prod types.Producer) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if _, busy := r.pending[key]; busy {
		r.mu.Unlock()
		return
	}
	r.pending[key] = struct{}{}
	r.mu.Unlock()

	select {
	case r.ch <- job{key: key, policy: policy, tags: tags, prod: prod}:
	default:
		r.clear(key)
	}
}

func (r *Runner) worker() {
	defer r.wg.Done()

	for j := range r.ch {
		r.metrics.Refresh()

		// A refresh failure is invisible to readers: they already
		// got the stale value, and the prior entry survives for the
		// next read. The counter is the only trace.
		if _, err := r.group.Resolve(context.Background(), j.key, j.policy, j.tags, j.prod); err != nil {
			r.metrics.RefreshError()
		}
		r.clear(j.key)
	}
}

func (r *Runner) clear(key string) {
	r.mu.Lock()
	delete(r.pending, key)
	r.mu.Unlock()
}

/*
Close stops accepting kicks, drains already queued refreshes, and
waits for the workers to exit. Without the drain, a refresh accepted
just before shutdown would be silently lost.
*/
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.ch)
	r.wg.Wait()
}
