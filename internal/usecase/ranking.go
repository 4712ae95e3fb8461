package usecase

import (
	"sort"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// DefaultTopK is how many ranked candidates a scan emits by default.
const DefaultTopK = 5

// RankTop sorts the accumulated scored candidates ascending by score and
// returns the first k. The sort is stable and ties break by insertion
// order; no secondary key is introduced.
//
// Identical candidates from overlapping provider responses pass through as
// separate ranked entries. Deduplication is deliberately not performed:
// the ranked list mirrors exactly what the provider reported.
//
// Behavior:
//   - Returns an empty slice for empty input
//   - k <= 0 falls back to DefaultTopK
//   - Does NOT mutate the input slice
func RankTop(candidates []domain.ScoredCandidate, k int) []domain.ScoredCandidate {
	if k <= 0 {
		k = DefaultTopK
	}
	if len(candidates) == 0 {
		return []domain.ScoredCandidate{}
	}

	ranked := make([]domain.ScoredCandidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
