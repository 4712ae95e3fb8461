package domain

// Cabin is the normalized cabin tier of a candidate, ordered by
// desirability: Business > PremiumEconomy > Economy > Unknown. The zero
// value is Unknown, so a Candidate's cabin is never "unset".
type Cabin int

const (
	// CabinUnknown means no segment carried a cabin label.
	CabinUnknown Cabin = iota

	// CabinEconomy is the lowest labeled tier.
	CabinEconomy

	// CabinPremiumEconomy sits between economy and business.
	CabinPremiumEconomy

	// CabinBusiness is the highest tier the radar tracks.
	CabinBusiness
)

// String returns the human-readable tier name.
func (c Cabin) String() string {
	switch c {
	case CabinBusiness:
		return "Business"
	case CabinPremiumEconomy:
		return "Premium Economy"
	case CabinEconomy:
		return "Economy"
	default:
		return "Unknown"
	}
}

// AtLeast reports whether the cabin meets the given minimum tier.
// Used for the cabin floor: candidates below the floor are excluded
// before scoring rather than penalized.
func (c Cabin) AtLeast(min Cabin) bool {
	return c >= min
}

// ParseCabin converts a configured tier name to a Cabin.
// Unrecognized names map to CabinUnknown (no floor).
func ParseCabin(s string) Cabin {
	switch s {
	case "business":
		return CabinBusiness
	case "premium_economy":
		return CabinPremiumEconomy
	case "economy":
		return CabinEconomy
	default:
		return CabinUnknown
	}
}
