package flights

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/journezy/tripplanner/internal/models"
)

// groundedResponse is the shape the grounded collaborator is asked to
// return: outbound options plus an optional return leg.
type groundedResponse struct {
	Outbound []groundedOption `json:"outbound"`
	Return   []groundedOption `json:"return"`
}

type groundedOption struct {
	Price            json.Number       `json:"price"`
	TotalDurationMin int               `json:"total_duration_min"`
	Flights          []groundedSegment `json:"flights"`
	Layovers         []groundedLayover `json:"layovers"`
}

type groundedSegment struct {
	FlightNumber     string          `json:"flight_number"`
	Airline          string          `json:"airline"`
	DepartureAirport groundedAirport `json:"departure_airport"`
	ArrivalAirport   groundedAirport `json:"arrival_airport"`
	DurationMin      int             `json:"duration_min"`
	Airplane         string          `json:"airplane"`
}

type groundedAirport struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

type groundedLayover struct {
	ID          string `json:"id"`
	DurationMin int    `json:"duration_min"`
}

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// groundedPrompt asks for flight options as strict JSON so the reply can
// be re-rendered through the same formatter as conventional results.
func groundedPrompt(origin, destination, departDate, returnDate string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Find commercial flight options for %s to %s on %s", origin, destination, departDate)
	if returnDate != "" {
		fmt.Fprintf(&b, " and return on %s", returnDate)
	}
	b.WriteString(". Use reliable sources (Google Flights, airline sites).")
	b.WriteString(" Return STRICT JSON with keys: outbound (array of options), return (array of options, optional).")
	b.WriteString(" Each option must have: price (number), total_duration_min (number),")
	b.WriteString(" flights (array of segments with: flight_number, airline, departure_airport{id,time}, arrival_airport{id,time}, duration_min, airplane),")
	b.WriteString(" and layovers (array with id and duration_min).")
	b.WriteString(" Output ONLY JSON.")
	return b.String()
}

// parseGrounded decodes the collaborator's reply, tolerating prose around
// the JSON document. It returns the outbound and return option lists.
func parseGrounded(text, currencyCode string) ([]models.FlightOption, []models.FlightOption, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, fmt.Errorf("grounded flights: empty response")
	}

	var resp groundedResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		m := jsonObject.FindString(text)
		if m == "" {
			return nil, nil, fmt.Errorf("grounded flights: no JSON in response")
		}
		if err := json.Unmarshal([]byte(m), &resp); err != nil {
			return nil, nil, fmt.Errorf("grounded flights: %w", err)
		}
	}

	return convertGrounded(resp.Outbound, currencyCode), convertGrounded(resp.Return, currencyCode), nil
}

func convertGrounded(options []groundedOption, currencyCode string) []models.FlightOption {
	out := make([]models.FlightOption, 0, len(options))
	for _, opt := range options {
		converted := models.FlightOption{
			TotalDurationMin: opt.TotalDurationMin,
			Currency:         currencyCode,
		}
		if price, err := opt.Price.Float64(); err == nil {
			converted.Price = price
		}
		for _, seg := range opt.Flights {
			converted.Segments = append(converted.Segments, models.FlightSegment{
				Airline:       seg.Airline,
				FlightNumber:  seg.FlightNumber,
				DepartureCode: seg.DepartureAirport.ID,
				DepartureTime: seg.DepartureAirport.Time,
				ArrivalCode:   seg.ArrivalAirport.ID,
				ArrivalTime:   seg.ArrivalAirport.Time,
				DurationMin:   seg.DurationMin,
				Airplane:      seg.Airplane,
			})
		}
		for _, l := range opt.Layovers {
			converted.Layovers = append(converted.Layovers, models.Layover{
				Airport:     l.ID,
				DurationMin: l.DurationMin,
			})
		}
		out = append(out, converted)
	}
	return out
}
