// Package history implements the durable per-route/date price history used
// for anomaly detection. The Cache owns the store exclusively; every other
// component reads through Observe's returned window and writes only by
// calling Observe.
package history

import (
	"context"
	"time"
)

// Observation is a single observed price for a route/date key.
type Observation struct {
	// Price is the observed fare in whole currency units.
	Price int `json:"price"`

	// ObservedAt is when the scan recorded the price.
	ObservedAt time.Time `json:"observed_at"`
}

// PriceHistory maps a route/date key to its bounded observation sequence,
// most-recent-last.
type PriceHistory map[string][]Observation

// Clone returns a deep copy so callers can't mutate the cache's state.
func (h PriceHistory) Clone() PriceHistory {
	out := make(PriceHistory, len(h))
	for k, obs := range h {
		cp := make([]Observation, len(obs))
		copy(cp, obs)
		out[k] = cp
	}
	return out
}

// Key builds the history key for a (destination, departure date) pair.
// Uniqueness per pair is the invariant; the exact format is internal.
func Key(destination, departDate string) string {
	return destination + "_" + departDate
}

// Store persists the full price-history mapping. Implementations must
// round-trip exactly: load after save yields the same keys, observation
// order, and values.
type Store interface {
	// Load reads the persisted mapping. A store with no prior state
	// returns an empty mapping, not an error.
	Load(ctx context.Context) (PriceHistory, error)

	// Save persists the full mapping, replacing prior state.
	Save(ctx context.Context, h PriceHistory) error
}
