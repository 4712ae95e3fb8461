package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/timeutil"
)

func newTestCache(t *testing.T, store Store, window int) (*Cache, *timeutil.MockClock) {
	t.Helper()
	clock := timeutil.NewMockClock(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))
	return NewCache(store, window, clock, nil), clock
}

func TestKey(t *testing.T) {
	assert.Equal(t, "LIS_2026-07-31", Key("LIS", "2026-07-31"))
	assert.NotEqual(t, Key("LIS", "2026-07-31"), Key("LIS", "2026-08-01"))
	assert.NotEqual(t, Key("LIS", "2026-07-31"), Key("OPO", "2026-07-31"))
}

func TestObserveAppendsAndReturnsPrior(t *testing.T) {
	cache, clock := newTestCache(t, NewMemoryStore(), 20)
	ctx := context.Background()
	key := Key("LIS", "2026-07-31")

	first := cache.Observe(ctx, key, 200000)
	assert.Empty(t, first.Prior)
	assert.Zero(t, first.PrevMin)
	assert.Zero(t, first.PrevLast)

	clock.Advance(2 * time.Hour)
	second := cache.Observe(ctx, key, 180000)
	require.Len(t, second.Prior, 1)
	assert.Equal(t, 200000, second.Prior[0].Price)
	assert.Equal(t, 200000, second.PrevMin)
	assert.Equal(t, 200000, second.PrevLast)

	clock.Advance(2 * time.Hour)
	third := cache.Observe(ctx, key, 220000)
	require.Len(t, third.Prior, 2)
	assert.Equal(t, 180000, third.PrevMin)
	assert.Equal(t, 180000, third.PrevLast)

	window := cache.Window(ctx, key)
	require.Len(t, window, 3)
	assert.Equal(t, []int{200000, 180000, 220000}, windowPrices(window))
}

func TestObserveRepeatedPriceAppendsAgain(t *testing.T) {
	cache, _ := newTestCache(t, NewMemoryStore(), 20)
	ctx := context.Background()
	key := Key("OPO", "2026-07-31")

	cache.Observe(ctx, key, 150000)
	cache.Observe(ctx, key, 150000)

	assert.Len(t, cache.Window(ctx, key), 2)
}

func TestObserveTrimsWindowToCap(t *testing.T) {
	const window = 20
	cache, clock := newTestCache(t, NewMemoryStore(), window)
	ctx := context.Background()
	key := Key("LIS", "2026-07-31")

	for price := 1; price <= window+1; price++ {
		cache.Observe(ctx, key, price)
		clock.Advance(time.Hour)
	}

	got := cache.Window(ctx, key)
	require.Len(t, got, window)

	// The oldest observation (price 1) fell off; order is preserved.
	prices := windowPrices(got)
	assert.Equal(t, 2, prices[0])
	assert.Equal(t, window+1, prices[len(prices)-1])
	for i := 1; i < len(prices); i++ {
		assert.Equal(t, prices[i-1]+1, prices[i])
	}
}

func TestObservePersistsThroughStore(t *testing.T) {
	store := NewMemoryStore()
	cache, _ := newTestCache(t, store, 20)
	ctx := context.Background()

	cache.Observe(ctx, Key("LIS", "2026-07-31"), 200000)
	cache.Observe(ctx, Key("OPO", "2026-07-31"), 180000)

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, 2)
	assert.Equal(t, 200000, persisted[Key("LIS", "2026-07-31")][0].Price)
}

func TestObserveKeysAreIndependent(t *testing.T) {
	cache, _ := newTestCache(t, NewMemoryStore(), 20)
	ctx := context.Background()

	cache.Observe(ctx, Key("LIS", "2026-07-31"), 200000)
	result := cache.Observe(ctx, Key("LIS", "2026-08-01"), 180000)

	assert.Empty(t, result.Prior)
	assert.ElementsMatch(t,
		[]string{"LIS_2026-07-31", "LIS_2026-08-01"},
		cache.Keys(ctx))
}

func TestCacheDegradesOnUnreadableStore(t *testing.T) {
	store := NewMemoryStore()
	store.LoadErr = errors.New("disk gone")
	cache, _ := newTestCache(t, store, 20)
	ctx := context.Background()

	result := cache.Observe(ctx, Key("LIS", "2026-07-31"), 200000)

	assert.Empty(t, result.Prior)
	assert.Len(t, cache.Window(ctx, Key("LIS", "2026-07-31")), 1)
}

func TestObserveSurvivesFailedPersist(t *testing.T) {
	store := NewMemoryStore()
	store.SaveErr = errors.New("disk full")
	cache, _ := newTestCache(t, store, 20)
	ctx := context.Background()
	key := Key("LIS", "2026-07-31")

	cache.Observe(ctx, key, 200000)
	result := cache.Observe(ctx, key, 180000)

	// In-memory state keeps accumulating even though saves fail.
	require.Len(t, result.Prior, 1)
	assert.Len(t, cache.Window(ctx, key), 2)
}

func TestWindowReturnsCopy(t *testing.T) {
	cache, _ := newTestCache(t, NewMemoryStore(), 20)
	ctx := context.Background()
	key := Key("LIS", "2026-07-31")

	cache.Observe(ctx, key, 200000)

	window := cache.Window(ctx, key)
	window[0].Price = 1

	assert.Equal(t, 200000, cache.Window(ctx, key)[0].Price)
}

func windowPrices(obs []Observation) []int {
	prices := make([]int, len(obs))
	for i, o := range obs {
		prices[i] = o.Price
	}
	return prices
}
