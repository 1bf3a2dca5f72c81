package eviction

/*
This package is the extension point for bounded cache growth.

The cache itself is unbounded by default: the source of truth for
"how big may the store get" lives with the caller, not here. When a
capacity is configured, the store consults a Policy to pick the
victim.

The store does not care how the decision is made. It only calls
these methods, always under its own write lock, so implementations
need no locking of their own.
*/
type Policy interface {

	// OnGet is told about every successful read, so recency- and
	// frequency-based policies can track access patterns.
	OnGet(key string)

	// OnPut is told about every insert or replace.
	OnPut(key string)

	// Remove is told when a key leaves the store for any reason
	// other than eviction, so bookkeeping stays consistent.
	Remove(key string)

	// Evict picks the next victim and forgets it. It returns ""
	// when there is nothing to evict.
	Evict() string
}

// PolicyType names the built-in eviction strategies.
type PolicyType string

const (
	// LRU evicts the key that has gone unread the longest.
	LRU PolicyType = "LRU"

	// LFU evicts the key with the fewest recorded accesses,
	// breaking ties by age.
	LFU PolicyType = "LFU"

	// FIFO evicts the oldest inserted key regardless of access.
	FIFO PolicyType = "FIFO"
)

// New builds the named policy. Unknown names panic: the policy type
// is static configuration, not runtime input.
func New(t PolicyType) Policy {
	switch t {
	case LRU:
		return newLRU()
	case LFU:
		return newLFU()
	case FIFO:
		return newFIFO()
	default:
		panic("eviction: unknown policy " + string(t))
	}
}
