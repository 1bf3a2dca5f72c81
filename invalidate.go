package fetchcache

/*
This file is the administrative side-channel: it forces later reads
to bypass cached data. It is expected to be driven from outside the
normal read path (a webhook, a CLI, an admin action), not from
producers.
*/

/*
Invalidate marks key's entry so the next read recomputes
synchronously before returning.

TimedRevalidate entries keep their value under an invalidation flag
(a failed recompute can then still fall back to last-known-good
data); Immutable and NoStore entries are removed outright. Either
way the next read blocks on the producer.

Invalidating an absent key is a no-op, not an error: the system does
not distinguish "never cached" from "already invalidated".
*/
func (c *Cache) Invalidate(key string) {
	if c.store.Invalidate(key) {
		c.metrics.Invalidation()
	}
}

/*
InvalidateTag applies Invalidate to every key currently carrying the
tag — a batch convenience over the tag index, not a distinct
mechanism. Keys not carrying the tag are untouched.
*/
func (c *Cache) InvalidateTag(tag string) {
	for _, key := range c.store.KeysForTag(tag) {
		c.Invalidate(key)
	}
}
