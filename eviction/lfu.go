package eviction

// lfu evicts the least-read key, breaking ties by insertion order.
// Evict scans linearly; with cache capacities in the thousands that
// is cheaper than maintaining a frequency heap on every read.
type lfu struct {
	counts map[string]uint64
	birth  map[string]uint64
	tick   uint64
}

func newLFU() *lfu {
	return &lfu{
		counts: make(map[string]uint64),
		birth:  make(map[string]uint64),
	}
}

func (l *lfu) OnGet(key string) {
	if _, ok := l.counts[key]; ok {
		l.counts[key]++
	}
}

func (l *lfu) OnPut(key string) {
	if _, ok := l.counts[key]; ok {
		l.counts[key]++
		return
	}
	l.tick++
	l.counts[key] = 0
	l.birth[key] = l.tick
}

func (l *lfu) Remove(key string) {
	delete(l.counts, key)
	delete(l.birth, key)
}

func (l *lfu) Evict() string {
	var (
		victim string
		found  bool
	)
	for key, n := range l.counts {
		if !found {
			victim, found = key, true
			continue
		}
		switch {
		case n < l.counts[victim]:
			victim = key
		case n == l.counts[victim] && l.birth[key] < l.birth[victim]:
			victim = key
		}
	}
	if !found {
		return ""
	}
	l.Remove(victim)
	return victim
}
