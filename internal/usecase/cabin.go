package usecase

import (
	"strings"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// ClassifyCabin assigns a cabin tier from the labels of every segment of a
// candidate (outbound plus inbound). A missing label contributes no vote.
//
// The aggregation is a precedence, not a majority vote: a mixed-cabin
// itinerary is classified by its best labeled cabin, because the radar
// exists to surface premium-cabin deals even when only one leg qualifies.
// Matching is deliberately substring-based ("Business" anywhere in the
// label); providers use a small controlled label vocabulary and looser
// matching catches variants like "Business Class".
func ClassifyCabin(segments []domain.Segment) domain.Cabin {
	anyLabel := false
	anyPremium := false

	for _, seg := range segments {
		label := seg.CabinLabel
		if label == "" {
			continue
		}
		anyLabel = true
		if strings.Contains(label, "Business") {
			return domain.CabinBusiness
		}
		if strings.Contains(label, "Premium") {
			anyPremium = true
		}
	}

	switch {
	case anyPremium:
		return domain.CabinPremiumEconomy
	case anyLabel:
		return domain.CabinEconomy
	default:
		return domain.CabinUnknown
	}
}
