package eviction

// fifo evicts in insertion order. The queue may hold keys that were
// since removed; Evict skips those lazily instead of searching the
// slice on every Remove.
type fifo struct {
	queue []string
	live  map[string]struct{}
}

func newFIFO() *fifo {
	return &fifo{live: make(map[string]struct{})}
}

func (f *fifo) OnGet(string) {}

func (f *fifo) OnPut(key string) {
	if _, ok := f.live[key]; ok {
		// Replacing a key keeps its original queue position.
		return
	}
	f.live[key] = struct{}{}
	f.queue = append(f.queue, key)
}

func (f *fifo) Remove(key string) {
	delete(f.live, key)
}

func (f *fifo) Evict() string {
	for len(f.queue) > 0 {
		key := f.queue[0]
		f.queue = f.queue[1:]
		if _, ok := f.live[key]; ok {
			delete(f.live, key)
			return key
		}
	}
	return ""
}
