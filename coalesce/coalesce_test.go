package coalesce_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fetchcache/fetchcache/coalesce"
	"github.com/fetchcache/fetchcache/store"
	"github.com/fetchcache/fetchcache/types"
)

func newGroup() (*coalesce.Group, *store.Store) {
	st := store.New(0, nil, nil)
	return coalesce.New(st, nil), st
}

func TestResolvePublishesToTheStore(t *testing.T) {
	g, st := newGroup()

	v, err := g.Resolve(context.Background(), "k", types.TimedRevalidate(time.Minute), []string{"t"}, func(context.Context) (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	ent, ok := st.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, ent.Value)
	assert.Equal(t, []string{"t"}, ent.Tags)
	assert.ElementsMatch(t, []string{"k"}, st.KeysForTag("t"))
}

func TestConcurrentResolvesShareOneFlight(t *testing.T) {
	g, _ := newGroup()

	var calls atomic.Int64
	slow := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(100 * time.Millisecond)
		return "once", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := g.Resolve(context.Background(), "k", types.Immutable(), nil, slow)
			assert.NoError(t, err)
			assert.Equal(t, "once", v)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, calls.Load())
}

func TestFailureClearsTheFlightAndKeepsTheStore(t *testing.T) {
	g, st := newGroup()

	st.Put(&types.Entry{Key: "k", Value: "prior", CreatedAt: time.Now(), Policy: types.TimedRevalidate(time.Minute)})

	errBoom := errors.New("boom")
	_, err := g.Resolve(context.Background(), "k", types.Immutable(), nil, func(context.Context) (any, error) {
		return nil, errBoom
	})
	require.ErrorIs(t, err, errBoom)

	ent, ok := st.Get("k")
	require.True(t, ok, "a failed flight leaves the prior entry untouched")
	assert.Equal(t, "prior", ent.Value)

	// The ticket is cleared: the next call is a fresh attempt.
	v, err := g.Resolve(context.Background(), "k", types.Immutable(), nil, func(context.Context) (any, error) {
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
}

func TestProducerIsShieldedFromCallerCancellation(t *testing.T) {
	g, _ := newGroup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the triggering caller has already given up

	v, err := g.Resolve(ctx, "k", types.Immutable(), nil, func(ctx context.Context) (any, error) {
		// The flight must not inherit the caller's cancellation.
		require.NoError(t, ctx.Err())
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}
