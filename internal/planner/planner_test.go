package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journezy/tripplanner/internal/itinerary"
	"github.com/journezy/tripplanner/internal/models"
)

type stubExtractor struct {
	params models.TripParameters
	err    error
}

func (s *stubExtractor) Extract(ctx context.Context, query string) (models.TripParameters, error) {
	return s.params, s.err
}

type stubFlights struct {
	section models.FlightSection
}

func (s *stubFlights) Resolve(ctx context.Context, params models.TripParameters, prefs models.FlightPreferences, currencyCode string) models.FlightSection {
	return s.section
}

type stubHotels struct {
	section models.HotelSection
	delay   time.Duration
	called  bool
}

func (s *stubHotels) Resolve(ctx context.Context, city, checkIn, checkOut, currencyCode string, toddlerFriendly, seniorFriendly bool) models.HotelSection {
	s.called = true
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
		}
	}
	if ctx.Err() != nil {
		return models.HotelSection{}
	}
	return s.section
}

type stubPlaces struct {
	section models.PlaceSection
}

func (s *stubPlaces) Resolve(ctx context.Context, destination string, toddlerFriendly, seniorFriendly bool) models.PlaceSection {
	return s.section
}

type stubWriter struct {
	got   itinerary.Input
	reply string
}

func (s *stubWriter) Synthesize(ctx context.Context, in itinerary.Input) string {
	s.got = in
	return s.reply
}

type stubRenderer struct{}

func (stubRenderer) Render(markdownText string) ([]byte, string) {
	return []byte("%PDF-stub"), models.DocumentPDF
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parisParams() models.TripParameters {
	return models.TripParameters{
		AirportFrom:   "JFK",
		AirportTo:     "CDG",
		DepartureDate: "2026-09-14",
		ReturnDate:    "2026-09-21",
		Destination:   "Paris",
	}
}

func hotelSection(rates ...float64) models.HotelSection {
	section := models.HotelSection{Header: "Accommodations in Paris:"}
	for _, rate := range rates {
		section.Options = append(section.Options, models.HotelOption{
			Name:        "Hotel",
			NightlyRate: rate,
			RateText:    "priced",
		})
	}
	section.Text = "Accommodations in Paris:\n\nHotel"
	return section
}

func newTestPlanner(ex *stubExtractor, fl *stubFlights, ho *stubHotels, pl *stubPlaces, w *stubWriter) *Planner {
	return New(ex, fl, ho, pl, w, stubRenderer{}, testLogger())
}

func TestPlanHappyPath(t *testing.T) {
	writer := &stubWriter{reply: "# Paris Itinerary"}
	p := newTestPlanner(
		&stubExtractor{params: parisParams()},
		&stubFlights{section: models.FlightSection{Text: "Flights from JFK to CDG:\n\nPrice (USD): $850", Prices: []float64{850, 900}}},
		&stubHotels{section: hotelSection(150)},
		&stubPlaces{section: models.PlaceSection{Text: "Here are the top places to visit in Paris:", Options: make([]models.PlaceOption, 3)}},
		writer,
	)

	result, err := p.Plan(context.Background(), models.PlanRequest{Query: "paris please", Currency: "USD", Language: "en"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.TimedOut)
	assert.Contains(t, result.FlightsText, "Flights from JFK to CDG:")
	assert.NotEmpty(t, result.HotelsText)
	assert.NotEmpty(t, result.PlacesText)
	assert.Equal(t, "# Paris Itinerary", result.Itinerary)
	assert.Equal(t, models.DocumentPDF, result.DocumentType)
	assert.Equal(t, []byte("%PDF-stub"), result.Document)
	assert.Nil(t, result.Budget, "no budget supplied")
}

func TestPlanExtractionFailureIsFatal(t *testing.T) {
	p := newTestPlanner(
		&stubExtractor{err: errors.New("no airports resolvable")},
		&stubFlights{}, &stubHotels{}, &stubPlaces{}, &stubWriter{},
	)

	_, err := p.Plan(context.Background(), models.PlanRequest{Query: "???"})
	assert.Error(t, err)
}

func TestPlanEmptyFlightsStillCompletes(t *testing.T) {
	writer := &stubWriter{reply: "# Itinerary without flights"}
	p := newTestPlanner(
		&stubExtractor{params: parisParams()},
		&stubFlights{}, // both providers dry
		&stubHotels{section: hotelSection(150)},
		&stubPlaces{section: models.PlaceSection{Text: "places", Options: make([]models.PlaceOption, 1)}},
		writer,
	)

	result, err := p.Plan(context.Background(), models.PlanRequest{Query: "paris", Currency: "USD"})
	require.NoError(t, err)

	assert.Empty(t, result.FlightsText)
	assert.Empty(t, writer.got.FlightsText, "synthesizer sees the empty flights stage as-is")
	assert.NotEmpty(t, result.HotelsText)
	assert.NotEmpty(t, result.Itinerary)
}

func TestPlanBudgetCapRewritesHotels(t *testing.T) {
	budgetTotal := 3000.0
	writer := &stubWriter{reply: "# Itinerary"}
	p := newTestPlanner(
		&stubExtractor{params: parisParams()},
		&stubFlights{section: models.FlightSection{
			Text:   "Flights from JFK to CDG:\n\nPrice (USD): $800\n\nPrice (USD): $900",
			Prices: []float64{800, 900},
		}},
		&stubHotels{section: hotelSection(500, 120, 90, 60, 450)},
		&stubPlaces{section: models.PlaceSection{Text: "places", Options: make([]models.PlaceOption, 1)}},
		writer,
	)

	result, err := p.Plan(context.Background(), models.PlanRequest{
		Query:        "paris on a budget",
		Currency:     "USD",
		BudgetAmount: &budgetTotal,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Budget)
	assert.Equal(t, 1700.0, result.Budget.FlightCost)
	assert.Equal(t, 7, result.Budget.Nights)
	assert.InDelta(t, (3000.0-1700.0)/7.0, result.Budget.NightlyCap, 0.001)
	assert.NotEmpty(t, writer.got.BudgetSummary)
}

func TestPlanTimeoutReturnsPartialResult(t *testing.T) {
	writer := &stubWriter{reply: "should never be produced"}
	hotelsStub := &stubHotels{section: hotelSection(150), delay: 200 * time.Millisecond}
	p := newTestPlanner(
		&stubExtractor{params: parisParams()},
		&stubFlights{section: models.FlightSection{Text: "Flights from JFK to CDG:\n\nPrice (USD): $850", Prices: []float64{850}}},
		hotelsStub,
		&stubPlaces{section: models.PlaceSection{Text: "places"}},
		writer,
	)
	p.timeout = 30 * time.Millisecond

	result, err := p.Plan(context.Background(), models.PlanRequest{Query: "paris", Currency: "USD"})
	require.NoError(t, err)

	assert.True(t, result.TimedOut)
	assert.True(t, hotelsStub.called)
	assert.NotEmpty(t, result.FlightsText, "stages resolved before the deadline survive")
	assert.Empty(t, result.HotelsText)
	assert.Empty(t, result.Itinerary)
	assert.Empty(t, result.Document)
}

func TestNormalizeDatesRepairsUnorderedRange(t *testing.T) {
	params := parisParams()
	params.ReturnDate = "2026-09-10" // before departure

	normalizeDates(&params)

	assert.Equal(t, "2026-09-17", params.ReturnDate)

	same := parisParams()
	same.ReturnDate = same.DepartureDate
	normalizeDates(&same)
	assert.Equal(t, "2026-09-17", same.ReturnDate)

	valid := parisParams()
	normalizeDates(&valid)
	assert.Equal(t, "2026-09-21", valid.ReturnDate, "ordered ranges untouched")
}
