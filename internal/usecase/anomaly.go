package usecase

import (
	"github.com/flight-deals/flight-deal-radar/internal/domain"
	"github.com/flight-deals/flight-deal-radar/internal/history"
)

// AnomalyThresholds are the mistake-fare detection constants.
type AnomalyThresholds struct {
	// FarBelowAverageRatio: price < ratio*mean(prior) fires.
	FarBelowAverageRatio float64

	// BelowLowRatio: price < ratio*min(prior) fires.
	BelowLowRatio float64

	// UltraLowThreshold: price below this fires regardless of history.
	UltraLowThreshold int

	// SuddenDropThreshold: previous - price above this fires.
	SuddenDropThreshold int
}

// Detector flags anomalous prices against a key's rolling history.
type Detector struct {
	thresholds AnomalyThresholds
}

// NewDetector builds a Detector with the given thresholds.
func NewDetector(thresholds AnomalyThresholds) *Detector {
	return &Detector{thresholds: thresholds}
}

// Detect evaluates the current price against the window that preceded it.
// Statistics (mean, minimum, previous) are computed over the prior window
// only; the just-appended current observation is excluded so a single
// outlier price cannot dilute the baseline it is judged against.
//
// Rules run in fixed priority order and only the first match fires:
//
//  1. fewer than 3 prior observations -> no verdict possible
//  2. price < ratio * mean             -> far below average
//  3. price < ratio * historical low   -> below historical low
//  4. price < ultra-low threshold      -> ultra-low fare
//  5. previous - price > drop threshold -> sudden drop
//
// Rules are never combined; a price that is both far below average and
// ultra-low reports far below average.
func (d *Detector) Detect(prior []history.Observation, price int) domain.Anomaly {
	if len(prior) < 3 {
		return ""
	}

	sum := 0
	low := prior[0].Price
	for _, obs := range prior {
		sum += obs.Price
		if obs.Price < low {
			low = obs.Price
		}
	}
	mean := float64(sum) / float64(len(prior))
	previous := prior[len(prior)-1].Price

	switch {
	case float64(price) < d.thresholds.FarBelowAverageRatio*mean:
		return domain.AnomalyFarBelowAverage
	case float64(price) < d.thresholds.BelowLowRatio*float64(low):
		return domain.AnomalyBelowHistoricalLow
	case price < d.thresholds.UltraLowThreshold:
		return domain.AnomalyUltraLow
	case previous-price > d.thresholds.SuddenDropThreshold:
		return domain.AnomalySuddenDrop
	default:
		return ""
	}
}
