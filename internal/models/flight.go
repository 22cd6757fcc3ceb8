package models

// FlightSegment is a single flown leg within an option.
type FlightSegment struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flight_number"`
	DepartureCode string `json:"departure_code"`
	DepartureTime string `json:"departure_time"`
	ArrivalCode   string `json:"arrival_code"`
	ArrivalTime   string `json:"arrival_time"`
	DurationMin   int    `json:"duration_min"`
	Airplane      string `json:"airplane,omitempty"`
}

// Layover describes a stop between segments.
type Layover struct {
	Airport     string `json:"airport"`
	DurationMin int    `json:"duration_min"`
}

// FlightOption is a priced itinerary between two airports, possibly with
// stops. Options are filtered, sorted by price ascending and truncated
// before formatting; they do not outlive the run.
type FlightOption struct {
	Segments         []FlightSegment `json:"segments"`
	Layovers         []Layover       `json:"layovers,omitempty"`
	TotalDurationMin int             `json:"total_duration_min"`
	Price            float64         `json:"price"`
	Currency         string          `json:"currency"`
}

// FlightSection is a resolved flight stage: the formatted text handed to
// the synthesizer plus the numeric prices it was built from, so budget
// math does not have to re-parse the text.
type FlightSection struct {
	Text   string
	Prices []float64
}

// Empty reports whether the stage produced no usable flights.
func (s FlightSection) Empty() bool {
	return s.Text == ""
}
