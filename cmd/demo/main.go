// Command demo walks through the cache's three policies, request
// coalescing, and tag invalidation against a deliberately slow
// producer. Configuration comes from the environment; set
// METRICS_ADDR to also expose the Prometheus counters.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fetchcache "github.com/fetchcache/fetchcache"
	"github.com/fetchcache/fetchcache/eviction"
	"github.com/fetchcache/fetchcache/metrics"
	"github.com/fetchcache/fetchcache/types"
)

type appConfig struct {
	Capacity      int           `env:"CACHE_CAPACITY" envDefault:"0"`
	Eviction      string        `env:"CACHE_EVICTION" envDefault:"LRU"`
	TTL           time.Duration `env:"CACHE_TTL" envDefault:"2s"`
	ProducerDelay time.Duration `env:"PRODUCER_DELAY" envDefault:"300ms"`
	RefreshBuffer int           `env:"CACHE_REFRESH_BUFFER" envDefault:"64"`
	MetricsAddr   string        `env:"METRICS_ADDR"`
}

func main() {
	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	opts := []fetchcache.Option{
		fetchcache.WithMetrics(metrics.NewPrometheus("fetchcache", nil)),
		fetchcache.WithRefreshBuffer(cfg.RefreshBuffer),
	}
	if cfg.Capacity > 0 {
		opts = append(opts, fetchcache.WithCapacity(cfg.Capacity, eviction.PolicyType(cfg.Eviction)))
	}

	cache := fetchcache.New(opts...)
	defer cache.Close()

	if cfg.MetricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			log.Printf("metrics on %s/metrics", cfg.MetricsAddr)
			log.Fatal(http.ListenAndServe(cfg.MetricsAddr, nil))
		}()
	}

	ctx := context.Background()

	// The "remote call" whose results we cache. Every invocation is
	// logged and counted so the caching behavior is visible.
	var calls atomic.Int64
	producer := func(name string) types.Producer {
		return func(ctx context.Context) (any, error) {
			n := calls.Add(1)
			log.Printf("PRODUCER → computing %s (call #%d)", name, n)
			time.Sleep(cfg.ProducerDelay)
			return fmt.Sprintf("%s@%d", name, n), nil
		}
	}

	fmt.Println("==================== IMMUTABLE ====================")
	for i := 0; i < 3; i++ {
		v, err := cache.Fetch(ctx, "site/logo", types.Immutable(), []string{"assets"}, producer("logo"))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("read %d → %v\n", i+1, v)
	}

	fmt.Println("\n================ TIMED REVALIDATE =================")
	key := fetchcache.Key("deals.today", "us-east")
	policy := types.TimedRevalidate(cfg.TTL)
	v, _ := cache.Fetch(ctx, key, policy, []string{"deals"}, producer("deals"))
	fmt.Printf("first read → %v (remaining %v)\n", v, cache.Remaining(key))

	fmt.Printf("sleeping past the %v window...\n", cfg.TTL)
	time.Sleep(cfg.TTL + 50*time.Millisecond)

	v, _ = cache.Fetch(ctx, key, policy, []string{"deals"}, producer("deals"))
	fmt.Printf("stale read → %v (served old value, refresh running)\n", v)

	time.Sleep(cfg.ProducerDelay + 100*time.Millisecond)
	v, _ = cache.Fetch(ctx, key, policy, []string{"deals"}, producer("deals"))
	fmt.Printf("after refresh → %v\n", v)

	fmt.Println("\n==================== COALESCING ===================")
	var wg sync.WaitGroup
	before := calls.Load()
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Fetch(ctx, "hot/key", policy, nil, producer("hot")); err != nil {
				log.Print(err)
			}
		}()
	}
	wg.Wait()
	fmt.Printf("50 concurrent readers → %d producer call(s)\n", calls.Load()-before)

	fmt.Println("\n================ TAG INVALIDATION =================")
	cache.InvalidateTag("deals")
	v, _ = cache.Fetch(ctx, key, policy, []string{"deals"}, producer("deals"))
	fmt.Printf("read after invalidation → %v (recomputed synchronously)\n", v)

	fmt.Println("\n==================== NO STORE =====================")
	for i := 0; i < 2; i++ {
		v, _ = cache.Fetch(ctx, "csrf/token", types.NoStore(), nil, producer("token"))
		fmt.Printf("read %d → %v\n", i+1, v)
	}

	fmt.Printf("\nentries resident: %d, total producer calls: %d\n", cache.Len(), calls.Load())
}
