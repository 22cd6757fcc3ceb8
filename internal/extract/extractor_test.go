package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGenerator routes canned responses by prompt content, mirroring the
// three call shapes the extractor makes.
type mockGenerator struct {
	primary      string
	primaryErr   error
	destination  string
	airports     string
	airportsErr  error
	grounded     string
	groundedErr  error
	groundedHits int
}

func (m *mockGenerator) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Extract travel details"):
		return m.primary, m.primaryErr
	case strings.Contains(prompt, "Identify the main airports"):
		return m.airports, m.airportsErr
	case strings.Contains(prompt, "What city"):
		return m.destination, nil
	}
	return "", errors.New("unexpected prompt")
}

func (m *mockGenerator) GenerateGrounded(ctx context.Context, prompt string) (string, error) {
	m.groundedHits++
	return m.grounded, m.groundedErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedExtractor(gen *mockGenerator) *Extractor {
	e := NewExtractor(gen, testLogger())
	e.now = func() time.Time {
		return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	}
	return e
}

const airportsJSON = `{"departure_airport": "JFK", "departure_alternatives": ["EWR", "LGA"], "arrival_airport": "CDG", "arrival_alternatives": ["ORY"]}`

func TestExtractFullResponse(t *testing.T) {
	gen := &mockGenerator{
		primary:  `{"destination": "Paris", "origin_city": "New York", "departure_date": "2026-09-14", "return_date": "2026-09-21"}`,
		airports: airportsJSON,
	}

	params, err := fixedExtractor(gen).Extract(context.Background(), "Plan a trip from New York to Paris")
	require.NoError(t, err)

	assert.Equal(t, "Paris", params.Destination)
	assert.Equal(t, "2026-09-14", params.DepartureDate)
	assert.Equal(t, "2026-09-21", params.ReturnDate)
	assert.Equal(t, "JFK", params.AirportFrom)
	assert.Equal(t, []string{"EWR", "LGA"}, params.AltAirportsFrom)
	assert.Equal(t, "CDG", params.AirportTo)
	assert.Equal(t, []string{"ORY"}, params.AltAirportsTo)
	assert.Zero(t, gen.groundedHits, "grounded fallback not needed")
}

func TestExtractTolerantOfProseWrappedJSON(t *testing.T) {
	gen := &mockGenerator{
		primary:  "Sure! Here you go: {\"destination\": \"Paris\", \"departure_date\": \"2026-09-14\", \"return_date\": \"2026-09-21\"}",
		airports: airportsJSON,
	}

	params, err := fixedExtractor(gen).Extract(context.Background(), "trip to Paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", params.Destination)
}

func TestExtractDestinationHeuristicFallback(t *testing.T) {
	tests := []struct {
		query    string
		expected string
	}{
		{"Plan a trip to Tokyo in spring", "Tokyo"},
		{"I want to visit Buenos Aires soon", "Buenos Aires"},
		{"flights from Boston to San Diego please", "San Diego"},
		{"somewhere Lisbon sounds nice", "Lisbon"},
		{"just get me out of here", unknownDestination},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, destinationFromText(tt.query), "query %q", tt.query)
	}
}

func TestExtractDestinationViaRetryWhenPrimaryFails(t *testing.T) {
	gen := &mockGenerator{
		primaryErr:  errors.New("model overloaded"),
		destination: `{"destination": "Kyoto"}`,
		airports:    airportsJSON,
	}

	params, err := fixedExtractor(gen).Extract(context.Background(), "somewhere quiet in japan")
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", params.Destination)
}

func TestExtractISODateRangeFromQuery(t *testing.T) {
	gen := &mockGenerator{
		primary:  `{"destination": "Paris"}`,
		airports: airportsJSON,
	}

	params, err := fixedExtractor(gen).Extract(context.Background(), "Paris from 2026-10-01 to 2026-10-08")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", params.DepartureDate)
	assert.Equal(t, "2026-10-08", params.ReturnDate)
}

func TestExtractVerboseDateRangeFromQuery(t *testing.T) {
	gen := &mockGenerator{
		primary:  `{"destination": "Paris"}`,
		airports: airportsJSON,
	}

	params, err := fixedExtractor(gen).Extract(context.Background(), "Paris from June 5 to June 12, 2027")
	require.NoError(t, err)
	assert.Equal(t, "2027-06-05", params.DepartureDate)
	assert.Equal(t, "2027-06-12", params.ReturnDate)
}

func TestExtractDefaultDatesAMonthOut(t *testing.T) {
	gen := &mockGenerator{
		primary:  `{"destination": "Paris"}`,
		airports: airportsJSON,
	}

	params, err := fixedExtractor(gen).Extract(context.Background(), "a week in Paris sometime")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", params.DepartureDate)
	assert.Equal(t, "2026-09-07", params.ReturnDate)
}

func TestValidateAirportsNormalizesAndDedupes(t *testing.T) {
	got := validateAirports(rawAirports{
		DepartureAirport:      " jfk ",
		DepartureAlternatives: []string{"JFK", "ewr", "EWR", "lga", "bos"},
		ArrivalAirport:        "CDGX", // not a valid code
		ArrivalAlternatives:   []string{"ory"},
	})

	assert.Equal(t, "JFK", got.DepartureAirport)
	// Primary excluded, case-normalized, capped at two.
	assert.Equal(t, []string{"EWR", "LGA"}, got.DepartureAlternatives)
	assert.Empty(t, got.ArrivalAirport)
	assert.Equal(t, []string{"ORY"}, got.ArrivalAlternatives)
}

func TestExtractGroundedAirportLastResort(t *testing.T) {
	gen := &mockGenerator{
		primary:  `{"destination": "Paris"}`,
		airports: `{"departure_airport": "JFK", "arrival_airport": "nope"}`,
		grounded: `{"departure_airport": "BOS", "arrival_airport": "CDG"}`,
	}

	params, err := fixedExtractor(gen).Extract(context.Background(), "trip to Paris")
	require.NoError(t, err)

	assert.Equal(t, 1, gen.groundedHits)
	// The validated primary survives; only the missing side is filled in.
	assert.Equal(t, "JFK", params.AirportFrom)
	assert.Equal(t, "CDG", params.AirportTo)
}

func TestExtractFatalWhenAirportsUnresolvable(t *testing.T) {
	gen := &mockGenerator{
		primary:     `{"destination": "Paris"}`,
		airports:    `{"departure_airport": "??", "arrival_airport": ""}`,
		groundedErr: errors.New("grounding unavailable"),
	}

	_, err := fixedExtractor(gen).Extract(context.Background(), "trip to Paris")
	require.Error(t, err)

	var extractErr *ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}
