package domain

import "time"

// ScanResult is the outcome of one full scan across every configured
// (departure date x destination) combination.
type ScanResult struct {
	// StartedAt is when the scan began.
	StartedAt time.Time `json:"started_at"`

	// Top holds the ranked top-K candidates across the whole scan.
	Top []ScoredCandidate `json:"top"`

	// Alerts holds every anomaly flagged during the scan, in scan order.
	Alerts []Alert `json:"alerts"`

	// Metadata describes the scan execution.
	Metadata ScanMetadata `json:"metadata"`
}

// Alert is a single anomaly-flagged candidate, emitted for immediate
// notification independently of the ranked report.
type Alert struct {
	// Candidate is the flagged candidate with its score attached.
	Candidate ScoredCandidate `json:"candidate"`

	// Anomaly is the verdict that fired.
	Anomaly Anomaly `json:"anomaly"`

	// HistoryKey is the price-history key the verdict was computed against.
	HistoryKey string `json:"history_key"`
}

// ScanMetadata contains counters describing one scan execution.
type ScanMetadata struct {
	// PairsScanned is the number of (date, destination) pairs visited.
	PairsScanned int `json:"pairs_scanned"`

	// OffersSeen is the number of raw offers received from the provider.
	OffersSeen int `json:"offers_seen"`

	// Evaluated is the number of offers that became scored candidates.
	Evaluated int `json:"evaluated"`

	// Skipped is the number of offers dropped as malformed or filtered out
	// by budget/cabin floor.
	Skipped int `json:"skipped"`

	// ProviderErrors is the number of (date, destination) queries that
	// failed outright.
	ProviderErrors int `json:"provider_errors"`

	// DurationMs is the total scan duration in milliseconds.
	DurationMs int64 `json:"duration_ms"`
}

// NewScanResult builds a ScanResult, normalizing nil slices so the JSON
// output always carries arrays.
func NewScanResult(startedAt time.Time, top []ScoredCandidate, alerts []Alert, meta ScanMetadata) *ScanResult {
	if top == nil {
		top = []ScoredCandidate{}
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	return &ScanResult{
		StartedAt: startedAt,
		Top:       top,
		Alerts:    alerts,
		Metadata:  meta,
	}
}
