package resolver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fetchcache/fetchcache/resolver"
	"github.com/fetchcache/fetchcache/types"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func entryAt(policy types.Policy, age time.Duration, invalidated bool) (*types.Entry, time.Time) {
	ent := &types.Entry{
		Key:         "k",
		Value:       "v",
		CreatedAt:   epoch,
		Policy:      policy,
		Invalidated: invalidated,
	}
	return ent, epoch.Add(age)
}

func TestClassify(t *testing.T) {
	ttl := types.TimedRevalidate(60 * time.Second)

	cases := []struct {
		name        string
		policy      types.Policy
		age         time.Duration
		invalidated bool
		want        resolver.Outcome
	}{
		{"immutable is always a hit", types.Immutable(), 24 * time.Hour, false, resolver.Hit},
		{"no-store is always a miss", types.NoStore(), 0, false, resolver.Miss},
		{"timed within ttl", ttl, 30 * time.Second, false, resolver.Hit},
		{"timed exactly at ttl", ttl, 60 * time.Second, false, resolver.StaleServe},
		{"timed past ttl", ttl, 61 * time.Second, false, resolver.StaleServe},
		{"invalidated beats ttl math", ttl, time.Second, true, resolver.Recompute},
		{"invalidated immutable", types.Immutable(), 0, true, resolver.Recompute},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ent, now := entryAt(tc.policy, tc.age, tc.invalidated)
			assert.Equal(t, tc.want, resolver.Classify(ent, true, now))
		})
	}
}

func TestClassifyAbsentEntryIsAMiss(t *testing.T) {
	assert.Equal(t, resolver.Miss, resolver.Classify(nil, false, epoch))
}

func TestRemaining(t *testing.T) {
	ttl := types.TimedRevalidate(60 * time.Second)

	ent, now := entryAt(ttl, 20*time.Second, false)
	assert.Equal(t, 40*time.Second, resolver.Remaining(ent, true, now))

	ent, now = entryAt(ttl, 61*time.Second, false)
	assert.Equal(t, time.Duration(-2), resolver.Remaining(ent, true, now))

	ent, now = entryAt(types.Immutable(), time.Hour, false)
	assert.Equal(t, time.Duration(-1), resolver.Remaining(ent, true, now))

	ent, now = entryAt(types.NoStore(), 0, false)
	assert.Equal(t, time.Duration(-2), resolver.Remaining(ent, true, now))

	ent, now = entryAt(ttl, time.Second, true)
	assert.Equal(t, time.Duration(-2), resolver.Remaining(ent, true, now), "invalidated entries are not servable")

	assert.Equal(t, time.Duration(-2), resolver.Remaining(nil, false, epoch))
}

func TestStateAtAgreesWithClassify(t *testing.T) {
	ttl := types.TimedRevalidate(60 * time.Second)

	ent, now := entryAt(ttl, 30*time.Second, false)
	assert.Equal(t, types.StateFresh, ent.StateAt(now))

	ent, now = entryAt(ttl, 90*time.Second, false)
	assert.Equal(t, types.StateStale, ent.StateAt(now))

	ent, now = entryAt(ttl, 0, true)
	assert.Equal(t, types.StateInvalid, ent.StateAt(now))

	ent, now = entryAt(types.NoStore(), 0, false)
	assert.Equal(t, types.StateInvalid, ent.StateAt(now))
}
