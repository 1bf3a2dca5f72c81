package eviction

import "container/list"

// lru tracks recency with a doubly-linked list: front is the most
// recently used key, back is the victim.
type lru struct {
	ll    *list.List
	items map[string]*list.Element
}

func newLRU() *lru {
	return &lru{
		ll:    list.New(),
		items: make(map[string]*list.Element),
	}
}

func (l *lru) OnGet(key string) {
	if el, ok := l.items[key]; ok {
		l.ll.MoveToFront(el)
	}
}

func (l *lru) OnPut(key string) {
	if el, ok := l.items[key]; ok {
		// A replace counts as a use.
		l.ll.MoveToFront(el)
		return
	}
	l.items[key] = l.ll.PushFront(key)
}

func (l *lru) Remove(key string) {
	if el, ok := l.items[key]; ok {
		l.ll.Remove(el)
		delete(l.items, key)
	}
}

func (l *lru) Evict() string {
	el := l.ll.Back()
	if el == nil {
		return ""
	}
	key := el.Value.(string)
	l.ll.Remove(el)
	delete(l.items, key)
	return key
}
