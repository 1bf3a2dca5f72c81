package fetchcache_test

import (
	"context"
	"testing"
	"time"

	fetchcache "github.com/fetchcache/fetchcache"
	"github.com/fetchcache/fetchcache/types"
)

func newBenchmarkCache(b *testing.B) *fetchcache.Cache {
	b.Helper()
	c := fetchcache.New()
	b.Cleanup(c.Close)
	return c
}

func produceValue(context.Context) (any, error) {
	return "value", nil
}

//
// ================= READ PATH =================
//

func BenchmarkFetchHit(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)
	policy := types.TimedRevalidate(time.Hour)

	if _, err := c.Fetch(ctx, "key", policy, nil, produceValue); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Fetch(ctx, "key", policy, nil, produceValue)
	}
}

func BenchmarkFetchHitParallel(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)
	policy := types.TimedRevalidate(time.Hour)

	if _, err := c.Fetch(ctx, "key", policy, nil, produceValue); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c.Fetch(ctx, "key", policy, nil, produceValue)
		}
	})
}

func BenchmarkFetchNoStore(b *testing.B) {
	ctx := context.Background()
	c := newBenchmarkCache(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Fetch(ctx, "key", types.NoStore(), nil, produceValue)
	}
}

//
// ================= KEY DERIVATION =================
//

func BenchmarkKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		fetchcache.Key("user.profile", 42, "en", true)
	}
}
