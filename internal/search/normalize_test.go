package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRateShapes(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantText   string
		wantAmount float64
		wantOK     bool
	}{
		{"nested lowest", `{"lowest": "$120"}`, "$120", 120, true},
		{"nested exact number", `{"exact": 185.5}`, "185.5", 185.5, true},
		{"plain string with separator", `"$1,250"`, "$1,250", 1250, true},
		{"bare number", `95`, "95", 95, true},
		{"unpriced string", `"Contact hotel"`, "Contact hotel", 0, true},
		{"null", `null`, "", 0, false},
		{"empty object", `{}`, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, amount, ok := parseRate(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantAmount, amount)
		})
	}
}

func TestNormalizeHotelRateAliasPriority(t *testing.T) {
	raw := rawHotel{
		Name:         "Grand Hotel",
		RatePerNight: json.RawMessage(`{"lowest": "$140"}`),
		Price:        json.RawMessage(`"$999"`),
	}

	opt := normalizeHotel(raw)

	assert.Equal(t, "$140", opt.RateText, "rate_per_night wins over price")
	assert.Equal(t, 140.0, opt.NightlyRate)
}

func TestNormalizeHotelDefaults(t *testing.T) {
	opt := normalizeHotel(rawHotel{})

	assert.Equal(t, "Hotel", opt.Name)
	assert.Equal(t, "N/A", opt.RateText)
	assert.False(t, opt.HasRate())
}

func TestNormalizeHotelRatingAndImages(t *testing.T) {
	raw := rawHotel{
		Name:          "Grand Hotel",
		OverallRating: json.Number("4.6"),
		Reviews:       json.RawMessage(`2310`),
		LocationScore: json.RawMessage(`"4.9"`),
		Images: []rawImage{
			{OriginalImage: "http://img.example.com/full.jpg"},
			{Thumbnail: "http://img.example.com/thumb.jpg"},
		},
	}

	opt := normalizeHotel(raw)

	assert.Equal(t, 4.6, opt.Rating)
	assert.Equal(t, "2310", opt.Reviews)
	assert.Equal(t, "4.9", opt.LocationRating)
	assert.Equal(t, "http://img.example.com/full.jpg", opt.Image)
}

func TestNormalizeFlight(t *testing.T) {
	raw := rawFlight{
		Segments: []rawSegment{
			{
				DepartureAirport: rawAirport{ID: "JFK", Time: "2026-09-14 19:30"},
				ArrivalAirport:   rawAirport{ID: "CDG", Time: "2026-09-15 08:50"},
				Duration:         440,
				Airline:          "Air France",
				FlightNumber:     "AF 7",
				Airplane:         "A350",
			},
		},
		Layovers:      []rawLayover{{Name: "Frankfurt", Duration: 90}},
		TotalDuration: 530,
		Price:         json.Number("850"),
	}

	opt := normalizeFlight(raw, "USD")

	require.Len(t, opt.Segments, 1)
	assert.Equal(t, "JFK", opt.Segments[0].DepartureCode)
	assert.Equal(t, 850.0, opt.Price)
	assert.Equal(t, "USD", opt.Currency)
	// Layover falls back to the airport name when no code is present.
	require.Len(t, opt.Layovers, 1)
	assert.Equal(t, "Frankfurt", opt.Layovers[0].Airport)
}

func TestParseLocalResultsShapes(t *testing.T) {
	bare := json.RawMessage(`[{"title": "Hotel Roma"}]`)
	wrapped := json.RawMessage(`{"places": [{"title": "Hotel Roma"}]}`)

	assert.Len(t, parseLocalResults(bare), 1)
	assert.Len(t, parseLocalResults(wrapped), 1)
	assert.Nil(t, parseLocalResults(nil))
}
