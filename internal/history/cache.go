package history

import (
	"context"
	"sync"

	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/logger"
	"github.com/flight-deals/flight-deal-radar/internal/infrastructure/timeutil"
)

// DefaultWindowSize is the rolling window length per key.
const DefaultWindowSize = 20

// ObserveResult describes the window state immediately before an append,
// so the caller can compute drops against the pre-observation history.
type ObserveResult struct {
	// Prior is a snapshot of the key's window before the append,
	// most-recent-last. Empty for a first observation.
	Prior []Observation

	// PrevMin is the minimum price over Prior (0 when Prior is empty).
	PrevMin int

	// PrevLast is the price of the most recent prior observation
	// (0 when Prior is empty).
	PrevLast int
}

// Cache is the single owner of the price-history store. It performs the
// scoped read-or-initialize, mutate, persist cycle for every observation
// and serializes writers within the process.
type Cache struct {
	store  Store
	window int
	clock  timeutil.Clock
	log    *logger.Logger

	mu     sync.Mutex
	data   PriceHistory
	loaded bool
}

// NewCache creates a Cache over the given store. A non-positive window
// falls back to DefaultWindowSize.
func NewCache(store Store, window int, clock timeutil.Clock, log *logger.Logger) *Cache {
	if window <= 0 {
		window = DefaultWindowSize
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{
		store:  store,
		window: window,
		clock:  clock,
		log:    log,
	}
}

// Observe appends a price observation for the key, trims the window, and
// persists the store. It returns the pre-append window so the anomaly
// detector can compare the price against what came before.
//
// Appending is a literal log of each scan's reading: observing the same
// price twice appends twice. A failed persist is logged and does not fail
// the observation; the key's in-memory update stays valid for the rest of
// the scan.
func (c *Cache) Observe(ctx context.Context, key string, price int) ObserveResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ensureLoaded(ctx)

	window := c.data[key]
	prior := make([]Observation, len(window))
	copy(prior, window)

	result := ObserveResult{Prior: prior}
	if len(prior) > 0 {
		result.PrevLast = prior[len(prior)-1].Price
		result.PrevMin = prior[0].Price
		for _, obs := range prior[1:] {
			if obs.Price < result.PrevMin {
				result.PrevMin = obs.Price
			}
		}
	}

	window = append(window, Observation{Price: price, ObservedAt: c.clock.Now()})
	if len(window) > c.window {
		window = window[len(window)-c.window:]
	}
	c.data[key] = window

	if err := c.store.Save(ctx, c.data); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Failed to persist price history")
	}

	return result
}

// Window returns a copy of the key's current observation window.
func (c *Cache) Window(ctx context.Context, key string) []Observation {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ensureLoaded(ctx)

	window := c.data[key]
	out := make([]Observation, len(window))
	copy(out, window)
	return out
}

// Keys returns every key currently tracked.
func (c *Cache) Keys(ctx context.Context) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ensureLoaded(ctx)

	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

// ensureLoaded lazily loads the store once per process. A corrupt or
// unreadable store degrades to an empty mapping: historical accuracy is
// lost for this run, scoring is not. Caller must hold c.mu.
func (c *Cache) ensureLoaded(ctx context.Context) {
	if c.loaded {
		return
	}
	data, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("Price history unreadable, starting empty")
		data = PriceHistory{}
	}
	if data == nil {
		data = PriceHistory{}
	}
	c.data = data
	c.loaded = true
}
