package models

import (
	"regexp"
	"time"
)

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidIATA reports whether code is a 3-uppercase-letter airport code.
func ValidIATA(code string) bool {
	return iataPattern.MatchString(code)
}

// TripParameters is the structured form of a free-text trip request.
// It is built once per plan run by the extractor and read-only afterwards.
type TripParameters struct {
	AirportFrom     string   `json:"airport_from"`
	AltAirportsFrom []string `json:"alternative_airports_from,omitempty"`
	AirportTo       string   `json:"airport_to"`
	AltAirportsTo   []string `json:"alternative_airports_to,omitempty"`
	DepartureDate   string   `json:"departure_date"`
	ReturnDate      string   `json:"return_date,omitempty"`
	Destination     string   `json:"destination"`
}

// Nights returns the trip length in nights, zero when the dates are
// missing or unordered.
func (t TripParameters) Nights() int {
	ci, err := time.Parse("2006-01-02", t.DepartureDate)
	if err != nil {
		return 0
	}
	co, err := time.Parse("2006-01-02", t.ReturnDate)
	if err != nil {
		return 0
	}
	nights := int(co.Sub(ci).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

// OriginCandidates returns the departure airports to try, primary only.
// Alternates are deliberately excluded to avoid routing travelers through
// geographically distant airports.
func (t TripParameters) OriginCandidates() []string {
	if t.AirportFrom == "" {
		return nil
	}
	return []string{t.AirportFrom}
}

// DestinationCandidates returns the arrival airports to try in order:
// primary first, then alternates, deduplicated.
func (t TripParameters) DestinationCandidates() []string {
	var out []string
	seen := make(map[string]bool)
	for _, code := range append([]string{t.AirportTo}, t.AltAirportsTo...) {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// Travelers describes the party composition.
type Travelers struct {
	Adults          int  `json:"adults"`
	Children        int  `json:"children"`
	Seniors         int  `json:"seniors"`
	ChildrenUnder5  int  `json:"children_under_5"`
	TailorItinerary bool `json:"itinerary_based_passengers"`
}

// FlightPreferences are best-effort constraints on flight times. If
// applying them would empty a candidate set they are dropped entirely.
type FlightPreferences struct {
	AvoidRedEye       bool `json:"avoid_red_eye"`
	AvoidEarlyMorning bool `json:"avoid_early_morning"`
	ChildFriendly     bool `json:"child_friendly"`
	SeniorFriendly    bool `json:"senior_friendly"`
	DirectOnly        bool `json:"direct_flights_only"`
}

// Any reports whether at least one preference flag is set.
func (p FlightPreferences) Any() bool {
	return p.AvoidRedEye || p.AvoidEarlyMorning || p.ChildFriendly || p.SeniorFriendly || p.DirectOnly
}

// BudgetContext carries the derived budget math for a single run.
type BudgetContext struct {
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
	FlightCost float64 `json:"flight_cost"`
	NightlyCap float64 `json:"nightly_cap"`
	Nights     int     `json:"nights"`
}
