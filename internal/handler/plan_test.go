package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journezy/tripplanner/internal/extract"
	"github.com/journezy/tripplanner/internal/models"
)

type stubPlanner struct {
	result models.PlanResult
	err    error
	got    models.PlanRequest
}

func (s *stubPlanner) Plan(ctx context.Context, req models.PlanRequest) (models.PlanResult, error) {
	s.got = req
	return s.result, s.err
}

type stubFlightResolver struct {
	section models.FlightSection
}

func (s *stubFlightResolver) Resolve(ctx context.Context, params models.TripParameters, prefs models.FlightPreferences, currencyCode string) models.FlightSection {
	return s.section
}

type stubSummarizer struct {
	summary string
	err     error
}

func (s *stubSummarizer) SummarizeFlights(ctx context.Context, query, flightsText string) (string, error) {
	return s.summary, s.err
}

func doRequest(h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		e.HTTPErrorHandler(err, e.NewContext(req, rec))
	}
	return rec
}

func TestPlanSuccess(t *testing.T) {
	planner := &stubPlanner{result: models.PlanResult{
		RunID:        "run-1",
		Itinerary:    "# Paris",
		DocumentType: models.DocumentPDF,
	}}
	h := NewPlanHandler(planner, &stubFlightResolver{}, &stubSummarizer{})

	rec := doRequest(h.Plan, `{"query": "a week in Paris", "currency": "usd"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "complete", resp.Status)
	assert.Equal(t, "run-1", resp.Result.RunID)
	assert.Equal(t, "USD", planner.got.Currency, "currency upper-cased during validation")
}

func TestPlanPartialOnTimeout(t *testing.T) {
	planner := &stubPlanner{result: models.PlanResult{RunID: "run-2", TimedOut: true}}
	h := NewPlanHandler(planner, &stubFlightResolver{}, &stubSummarizer{})

	rec := doRequest(h.Plan, `{"query": "a week in Paris"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "partial", resp.Status)
	assert.NotEmpty(t, resp.Message)
}

func TestPlanValidation(t *testing.T) {
	h := NewPlanHandler(&stubPlanner{}, &stubFlightResolver{}, &stubSummarizer{})

	tests := []struct {
		name string
		body string
	}{
		{"missing query", `{}`},
		{"unsupported currency", `{"query": "x", "currency": "EUR"}`},
		{"unsupported language", `{"query": "x", "language": "tlh"}`},
		{"negative budget", `{"query": "x", "budget_amount": -10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h.Plan, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "validation_error", resp.Error)
		})
	}
}

func TestPlanExtractionErrorMapsTo422(t *testing.T) {
	planner := &stubPlanner{err: &extract.ExtractionError{Reason: "could not resolve airports"}}
	h := NewPlanHandler(planner, &stubFlightResolver{}, &stubSummarizer{})

	rec := doRequest(h.Plan, `{"query": "gibberish"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "extraction_error", resp.Error)
}

func TestPlanInternalError(t *testing.T) {
	planner := &stubPlanner{err: errors.New("boom")}
	h := NewPlanHandler(planner, &stubFlightResolver{}, &stubSummarizer{})

	rec := doRequest(h.Plan, `{"query": "paris"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSearchFlights(t *testing.T) {
	h := NewPlanHandler(&stubPlanner{}, &stubFlightResolver{section: models.FlightSection{
		Text:   "Flights from JFK to CDG:\n\nPrice (USD): $850",
		Prices: []float64{850},
	}}, &stubSummarizer{})

	rec := doRequest(h.SearchFlights, `{"airport_from": "JFK", "airport_to": "CDG", "departure_date": "2026-09-14"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Flights from JFK to CDG:")
}

func TestSearchFlightsValidation(t *testing.T) {
	h := NewPlanHandler(&stubPlanner{}, &stubFlightResolver{}, &stubSummarizer{})

	rec := doRequest(h.SearchFlights, `{"airport_from": "NIMBUS", "airport_to": "CDG", "departure_date": "2026-09-14"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h.SearchFlights, `{"airport_from": "JFK", "airport_to": "CDG", "departure_date": "next week"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummarizeFlights(t *testing.T) {
	h := NewPlanHandler(&stubPlanner{}, &stubFlightResolver{}, &stubSummarizer{summary: "Cheapest is $850 on Air France."})

	rec := doRequest(h.SummarizeFlights, `{"query": "jfk to cdg", "flights_text": "Flights from JFK to CDG:"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cheapest is $850")
}

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, HealthHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
