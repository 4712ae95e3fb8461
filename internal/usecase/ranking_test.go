package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

func scored(id string, score float64) domain.ScoredCandidate {
	return domain.ScoredCandidate{
		Candidate: domain.Candidate{ID: id},
		Score:     score,
	}
}

func rankedIDs(ranked []domain.ScoredCandidate) []string {
	ids := make([]string, len(ranked))
	for i, c := range ranked {
		ids[i] = c.ID
	}
	return ids
}

func TestRankTop(t *testing.T) {
	tests := []struct {
		name       string
		candidates []domain.ScoredCandidate
		k          int
		wantIDs    []string
	}{
		{
			name:       "empty input returns empty slice",
			candidates: nil,
			k:          5,
			wantIDs:    []string{},
		},
		{
			name: "sorts ascending by score",
			candidates: []domain.ScoredCandidate{
				scored("c", 300), scored("a", 100), scored("b", 200),
			},
			k:       5,
			wantIDs: []string{"a", "b", "c"},
		},
		{
			name: "truncates to k",
			candidates: []domain.ScoredCandidate{
				scored("d", 4), scored("b", 2), scored("a", 1), scored("c", 3),
			},
			k:       2,
			wantIDs: []string{"a", "b"},
		},
		{
			name: "ties keep insertion order",
			candidates: []domain.ScoredCandidate{
				scored("first", 100), scored("second", 100), scored("third", 100),
			},
			k:       5,
			wantIDs: []string{"first", "second", "third"},
		},
		{
			name: "duplicates are not collapsed",
			candidates: []domain.ScoredCandidate{
				scored("dup", 150), scored("dup", 150),
			},
			k:       5,
			wantIDs: []string{"dup", "dup"},
		},
		{
			name: "non-positive k falls back to the default",
			candidates: []domain.ScoredCandidate{
				scored("f", 6), scored("e", 5), scored("d", 4),
				scored("c", 3), scored("b", 2), scored("a", 1),
			},
			k:       0,
			wantIDs: []string{"a", "b", "c", "d", "e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankTop(tt.candidates, tt.k)

			require.NotNil(t, got)
			assert.Equal(t, tt.wantIDs, rankedIDs(got))
		})
	}
}

func TestRankTopDoesNotMutateInput(t *testing.T) {
	input := []domain.ScoredCandidate{
		scored("z", 900), scored("a", 100), scored("m", 500),
	}

	_ = RankTop(input, 2)

	assert.Equal(t, []string{"z", "a", "m"}, rankedIDs(input))
}
