package search

import "encoding/json"

// Raw provider shapes. Fields the provider sometimes omits or renames are
// declared with every observed alias and resolved in normalize.go; the
// rest of the codebase only ever sees canonical models.

type rawFlightsResponse struct {
	Error        string      `json:"error,omitempty"`
	BestFlights  []rawFlight `json:"best_flights"`
	OtherFlights []rawFlight `json:"other_flights"`
}

type rawFlight struct {
	Segments      []rawSegment `json:"flights"`
	Layovers      []rawLayover `json:"layovers"`
	TotalDuration int          `json:"total_duration"`
	Price         json.Number  `json:"price"`
}

type rawSegment struct {
	DepartureAirport rawAirport `json:"departure_airport"`
	ArrivalAirport   rawAirport `json:"arrival_airport"`
	Duration         int        `json:"duration"`
	Airline          string     `json:"airline"`
	FlightNumber     string     `json:"flight_number"`
	Airplane         string     `json:"airplane"`
}

type rawAirport struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}

type rawLayover struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

type rawHotelsResponse struct {
	Error      string     `json:"error,omitempty"`
	Properties []rawHotel `json:"properties"`
}

type rawHotel struct {
	Name          string          `json:"name"`
	RatePerNight  json.RawMessage `json:"rate_per_night"`
	RatePlan      *rawRatePlan    `json:"rate_plan"`
	Price         json.RawMessage `json:"price"`
	LowestPrice   json.RawMessage `json:"lowest_price"`
	OverallRating json.Number     `json:"overall_rating"`
	Rating        json.Number     `json:"rating"`
	Reviews       json.RawMessage `json:"reviews"`
	ReviewsCount  json.RawMessage `json:"reviews_count"`
	LocationScore json.RawMessage `json:"location_rating"`
	Amenities     []string        `json:"amenities"`
	Images        []rawImage      `json:"images"`
}

type rawRatePlan struct {
	Price json.RawMessage `json:"price"`
	Rate  json.RawMessage `json:"rate"`
}

type rawRateObject struct {
	Lowest json.RawMessage `json:"lowest"`
	Exact  json.RawMessage `json:"exact"`
	Value  json.RawMessage `json:"value"`
}

type rawImage struct {
	Thumbnail     string `json:"thumbnail"`
	OriginalImage string `json:"original_image"`
	Link          string `json:"link"`
}

type rawWebResponse struct {
	Error          string          `json:"error,omitempty"`
	TopSights      *rawTopSights   `json:"top_sights"`
	OrganicResults []rawWebResult  `json:"organic_results"`
	LocalResults   json.RawMessage `json:"local_results"`
}

type rawTopSights struct {
	Sights []rawSight `json:"sights"`
}

type rawSight struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Rating      json.Number     `json:"rating"`
	Reviews     json.RawMessage `json:"reviews"`
	Price       string          `json:"price"`
	Thumbnail   string          `json:"thumbnail"`
}

type rawWebResult struct {
	Title     string          `json:"title"`
	Snippet   string          `json:"snippet"`
	Rating    json.Number     `json:"rating"`
	Reviews   json.RawMessage `json:"reviews"`
	Thumbnail string          `json:"thumbnail"`
}

// local_results is sometimes a bare array and sometimes {"places": [...]}.
type rawLocalWrapper struct {
	Places []rawWebResult `json:"places"`
}

// WebResult is a normalized organic or local search hit.
type WebResult struct {
	Title     string
	Snippet   string
	Rating    float64
	Reviews   string
	Thumbnail string
}

// Sight is a normalized structured top-sights entry.
type Sight struct {
	Title       string
	Description string
	Rating      string
	Reviews     string
	Price       string
	Thumbnail   string
}

// WebResults aggregates the three result shapes one general web search
// can return.
type WebResults struct {
	Sights  []Sight
	Organic []WebResult
	Local   []WebResult
}
