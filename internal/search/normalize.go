package search

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/journezy/tripplanner/internal/models"
)

var firstNumber = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// normalizeFlight maps one raw provider flight to the canonical option.
func normalizeFlight(raw rawFlight, currency string) models.FlightOption {
	opt := models.FlightOption{
		TotalDurationMin: raw.TotalDuration,
		Currency:         currency,
	}

	for _, seg := range raw.Segments {
		opt.Segments = append(opt.Segments, models.FlightSegment{
			Airline:       seg.Airline,
			FlightNumber:  seg.FlightNumber,
			DepartureCode: seg.DepartureAirport.ID,
			DepartureTime: seg.DepartureAirport.Time,
			ArrivalCode:   seg.ArrivalAirport.ID,
			ArrivalTime:   seg.ArrivalAirport.Time,
			DurationMin:   seg.Duration,
			Airplane:      seg.Airplane,
		})
	}

	for _, l := range raw.Layovers {
		airport := l.ID
		if airport == "" {
			airport = l.Name
		}
		opt.Layovers = append(opt.Layovers, models.Layover{
			Airport:     airport,
			DurationMin: l.Duration,
		})
	}

	if price, err := raw.Price.Float64(); err == nil {
		opt.Price = price
	}

	return opt
}

// normalizeHotel maps one raw provider hotel to the canonical option.
// Rates arrive as nested objects, plain strings or plain numbers across
// aliased fields; each candidate is tried in priority order and any parse
// failure degrades to the "N/A" sentinel instead of dropping the hotel.
func normalizeHotel(raw rawHotel) models.HotelOption {
	opt := models.HotelOption{
		Name:      raw.Name,
		Amenities: raw.Amenities,
		RateText:  "N/A",
	}
	if opt.Name == "" {
		opt.Name = "Hotel"
	}

	candidates := []json.RawMessage{raw.RatePerNight}
	if raw.RatePlan != nil {
		candidates = append(candidates, raw.RatePlan.Price, raw.RatePlan.Rate)
	}
	candidates = append(candidates, raw.Price, raw.LowestPrice)

	for _, c := range candidates {
		if text, amount, ok := parseRate(c); ok {
			opt.RateText = text
			opt.NightlyRate = amount
			break
		}
	}

	if v, err := raw.OverallRating.Float64(); err == nil && v > 0 {
		opt.Rating = v
	} else if v, err := raw.Rating.Float64(); err == nil && v > 0 {
		opt.Rating = v
	}

	if s := rawToString(raw.Reviews); s != "" {
		opt.Reviews = s
	} else {
		opt.Reviews = rawToString(raw.ReviewsCount)
	}
	opt.LocationRating = rawToString(raw.LocationScore)

	for _, img := range raw.Images {
		if url := firstNonEmpty(img.Thumbnail, img.OriginalImage, img.Link); url != "" {
			opt.Image = url
			break
		}
	}

	return opt
}

// parseRate accepts {"lowest":..}/{"exact":..}/{"value":..} objects,
// quoted strings like "$120" and bare numbers. It reports the display
// text, the extracted numeric amount (zero when not parseable) and
// whether anything usable was found.
func parseRate(raw json.RawMessage) (string, float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", 0, false
	}

	var obj rawRateObject
	if raw[0] == '{' {
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", 0, false
		}
		for _, inner := range []json.RawMessage{obj.Lowest, obj.Exact, obj.Value} {
			if text, amount, ok := parseRate(inner); ok {
				return text, amount, true
			}
		}
		return "", 0, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", 0, false
		}
		if m := firstNumber.FindString(strings.ReplaceAll(s, ",", "")); m != "" {
			amount, _ := strconv.ParseFloat(m, 64)
			return s, amount, true
		}
		return s, 0, true
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return strconv.FormatFloat(n, 'f', -1, 64), n, true
	}

	return "", 0, false
}

func normalizeSight(raw rawSight) Sight {
	return Sight{
		Title:       raw.Title,
		Description: raw.Description,
		Rating:      raw.Rating.String(),
		Reviews:     rawToString(raw.Reviews),
		Price:       raw.Price,
		Thumbnail:   raw.Thumbnail,
	}
}

func normalizeWebResult(raw rawWebResult) WebResult {
	out := WebResult{
		Title:     raw.Title,
		Snippet:   raw.Snippet,
		Reviews:   rawToString(raw.Reviews),
		Thumbnail: raw.Thumbnail,
	}
	if v, err := raw.Rating.Float64(); err == nil {
		out.Rating = v
	}
	return out
}

// rawToString renders a field that may be a string or a number.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseLocalResults(raw json.RawMessage) []rawWebResult {
	if len(raw) == 0 {
		return nil
	}

	var list []rawWebResult
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var wrapper rawLocalWrapper
	if err := json.Unmarshal(raw, &wrapper); err == nil {
		return wrapper.Places
	}

	return nil
}
