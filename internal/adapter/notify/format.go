package notify

import (
	"fmt"
	"strings"

	"github.com/flight-deals/flight-deal-radar/internal/domain"
)

// formatReport renders the ranked scan result as a plain-text email body.
func formatReport(result *domain.ScanResult) string {
	if len(result.Top) == 0 {
		return "No qualifying round-trip deals found this scan."
	}

	var b strings.Builder
	b.WriteString("TOP ROUND-TRIP DEALS\n")
	for _, sc := range result.Top {
		b.WriteString("\n")
		b.WriteString(formatCandidate(sc))
	}
	return b.String()
}

// formatCandidate renders one scored candidate.
func formatCandidate(sc domain.ScoredCandidate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d (Combined)\n", sc.Price)
	fmt.Fprintf(&b, "Airline: %s\n", sc.Airline)
	fmt.Fprintf(&b, "Cabin: %s\n\n", sc.Cabin)

	fmt.Fprintf(&b, "Outbound:\n%s\n", formatLeg(sc.Outbound))
	if len(sc.Inbound.Route) > 0 {
		fmt.Fprintf(&b, "Return:\n%s\n", formatLeg(sc.Inbound))
	}

	fmt.Fprintf(&b, "Score: %.1f/10 -> %s (confidence %s)\n", sc.Confidence.Score, sc.Confidence.Decision, sc.Confidence.Level)
	if sc.Anomaly != "" {
		fmt.Fprintf(&b, "Anomaly: %s\n", anomalyHeadline(sc.Anomaly))
	}

	fmt.Fprintf(&b, "Google Flights:\n%s\n", googleFlightsLink(sc))
	fmt.Fprintf(&b, "Airline:\n%s\n", airlineLink(sc.Airline, sc.Route[0], sc.Destination, sc.DepartDate))

	return b.String()
}

// formatLeg renders one direction of travel.
func formatLeg(leg domain.LegSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", strings.Join(leg.Route, " -> "))
	fmt.Fprintf(&b, "Duration: %dh %dm\n", leg.DurationMinutes/60, leg.DurationMinutes%60)
	fmt.Fprintf(&b, "Layover: %s\n", formatLayovers(leg.Layovers))
	return b.String()
}

// formatLayovers renders layovers, or "Direct" when there are none.
func formatLayovers(layovers []domain.Layover) string {
	if len(layovers) == 0 {
		return "Direct"
	}
	parts := make([]string, 0, len(layovers))
	for _, l := range layovers {
		if l.WaitKnown {
			parts = append(parts, fmt.Sprintf("%s (%dm)", l.Airport, l.WaitMinutes))
		} else {
			parts = append(parts, fmt.Sprintf("%s (wait unknown)", l.Airport))
		}
	}
	return strings.Join(parts, ", ")
}

// formatAlert renders one anomaly alert as a plain-text email body.
func formatAlert(alert domain.Alert) string {
	sc := alert.Candidate
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", anomalyHeadline(alert.Anomaly))
	fmt.Fprintf(&b, "%d %s\n\n", sc.Price, sc.Cabin)
	fmt.Fprintf(&b, "Route:\n%s\n\n", strings.Join(sc.Route, " -> "))
	fmt.Fprintf(&b, "Airline:\n%s\n\n", sc.Airline)
	fmt.Fprintf(&b, "Book:\n%s\n\n", airlineLink(sc.Airline, sc.Route[0], sc.Destination, sc.DepartDate))
	b.WriteString("Act fast - mistake fares disappear quickly.\n")

	return b.String()
}

// anomalyHeadline maps a verdict to its alert headline.
func anomalyHeadline(a domain.Anomaly) string {
	switch a {
	case domain.AnomalyFarBelowAverage:
		return "30% BELOW AVERAGE"
	case domain.AnomalyBelowHistoricalLow:
		return "BELOW HISTORICAL LOW"
	case domain.AnomalyUltraLow:
		return "ULTRA LOW FARE"
	case domain.AnomalySuddenDrop:
		return "SUDDEN PRICE DROP"
	default:
		return string(a)
	}
}

// googleFlightsLink builds a search link for the candidate's itinerary.
func googleFlightsLink(sc domain.ScoredCandidate) string {
	return fmt.Sprintf(
		"https://www.google.com/travel/flights?q=Flights%%20from%%20%s%%20to%%20%s%%20on%%20%s%%20return%%20%s",
		sc.Route[0], sc.Destination, sc.DepartDate, sc.ReturnDate)
}

// airlineLink builds a direct booking link for the airlines the radar
// tracks, falling back to a generic hint. Substring matching mirrors the
// airline names the provider reports.
func airlineLink(airline, origin, dest, date string) string {
	switch {
	case strings.Contains(airline, "Qatar"):
		return fmt.Sprintf("https://www.qatarairways.com/en-in/book-a-flight.html?from=%s&to=%s&date=%s", origin, dest, date)
	case strings.Contains(airline, "Emirates"):
		return fmt.Sprintf("https://www.emirates.com/in/english/book/?origin=%s&destination=%s&departureDate=%s", origin, dest, date)
	case strings.Contains(airline, "Etihad"):
		return fmt.Sprintf("https://www.etihad.com/en-in/book?origin=%s&destination=%s&departureDate=%s", origin, dest, date)
	case strings.Contains(airline, "Lufthansa"):
		return fmt.Sprintf("https://www.lufthansa.com/in/en/booking?origin=%s&destination=%s&outboundDate=%s", origin, dest, date)
	case strings.Contains(airline, "Air France"):
		return fmt.Sprintf("https://wwws.airfrance.co.in/search/flights?origin=%s&destination=%s&date=%s", origin, dest, date)
	case strings.Contains(airline, "KLM"):
		return fmt.Sprintf("https://www.klm.co.in/search?origin=%s&destination=%s&date=%s", origin, dest, date)
	default:
		return "Search airline website"
	}
}
