package dealslog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

func sampleResult(price int) *domain.ScanResult {
	top := []domain.ScoredCandidate{
		{
			Candidate: domain.Candidate{
				ID:          "test-id",
				Price:       price,
				Destination: "LIS",
				DepartDate:  "2026-07-31",
				Airline:     "Qatar Airways",
			},
			Score: float64(price) / 1000,
		},
	}
	return domain.NewScanResult(
		time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC),
		top, nil,
		domain.ScanMetadata{PairsScanned: 1, OffersSeen: 1, Evaluated: 1},
	)
}

func TestLogAppendAndGet(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "deals_log.json"))

	require.NoError(t, log.Append("2026-07-01", sampleResult(140000)))
	require.NoError(t, log.Append("2026-07-01", sampleResult(135000)))

	results, err := log.Get("2026-07-01")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 140000, results[0].Top[0].Price)
	assert.Equal(t, 135000, results[1].Top[0].Price)
	assert.Equal(t, "Qatar Airways", results[0].Top[0].Airline)
}

func TestLogGetUnknownDate(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "deals_log.json"))

	results, err := log.Get("2026-01-01")

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestLogDatesMostRecentFirst(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "deals_log.json"))

	require.NoError(t, log.Append("2026-07-01", sampleResult(140000)))
	require.NoError(t, log.Append("2026-07-03", sampleResult(150000)))
	require.NoError(t, log.Append("2026-07-02", sampleResult(145000)))

	dates, err := log.Dates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-07-03", "2026-07-02", "2026-07-01"}, dates)
}

func TestLogDatesEmptyFile(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "deals_log.json"))

	dates, err := log.Dates()

	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestLogPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals_log.json")

	first := NewLog(path)
	require.NoError(t, first.Append("2026-07-01", sampleResult(140000)))

	second := NewLog(path)
	results, err := second.Get("2026-07-01")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "LIS", results[0].Top[0].Destination)
}
