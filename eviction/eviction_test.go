package eviction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fetchcache/fetchcache/eviction"
)

func TestLRUEvictsLeastRecentlyRead(t *testing.T) {
	p := eviction.New(eviction.LRU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("c")
	p.OnGet("a") // a is now the most recent

	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "c", p.Evict())
	assert.Equal(t, "a", p.Evict())
	assert.Equal(t, "", p.Evict())
}

func TestLRUReplaceCountsAsUse(t *testing.T) {
	p := eviction.New(eviction.LRU)

	p.OnPut("a")
	p.OnPut("b")
	p.OnPut("a") // replacing a promotes it

	assert.Equal(t, "b", p.Evict())
}

func TestLRURemoveForgetsTheKey(t *testing.T) {
	p := eviction.New(eviction.LRU)

	p.OnPut("a")
	p.OnPut("b")
	p.Remove("a")

	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "", p.Evict())
}

func TestFIFOEvictsInInsertionOrder(t *testing.T) {
	p := eviction.New(eviction.FIFO)

	p.OnPut("a")
	p.OnPut("b")
	p.OnGet("a") // reads do not matter to FIFO
	p.OnPut("c")
	p.OnPut("b") // replace keeps the original position

	assert.Equal(t, "a", p.Evict())
	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "c", p.Evict())
	assert.Equal(t, "", p.Evict())
}

func TestFIFOSkipsRemovedKeys(t *testing.T) {
	p := eviction.New(eviction.FIFO)

	p.OnPut("a")
	p.OnPut("b")
	p.Remove("a")

	assert.Equal(t, "b", p.Evict())
	assert.Equal(t, "", p.Evict())
}

func TestLFUEvictsLeastFrequentlyRead(t *testing.T) {
	p := eviction.New(eviction.LFU)

	p.OnPut("hot")
	p.OnPut("cold")
	p.OnGet("hot")
	p.OnGet("hot")

	assert.Equal(t, "cold", p.Evict())
	assert.Equal(t, "hot", p.Evict())
	assert.Equal(t, "", p.Evict())
}

func TestLFUBreaksTiesByAge(t *testing.T) {
	p := eviction.New(eviction.LFU)

	p.OnPut("older")
	p.OnPut("newer")

	assert.Equal(t, "older", p.Evict())
}

func TestFactoryRejectsUnknownPolicies(t *testing.T) {
	require.Panics(t, func() { eviction.New("ARC") })
}
