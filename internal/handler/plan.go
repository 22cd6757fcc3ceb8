package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/journezy/tripplanner/internal/extract"
	"github.com/journezy/tripplanner/internal/models"
)

// TripPlanner is the pipeline entry point the handler delegates to.
type TripPlanner interface {
	Plan(ctx context.Context, req models.PlanRequest) (models.PlanResult, error)
}

// FlightResolver exposes the flight stage directly, bypassing the rest of
// the pipeline.
type FlightResolver interface {
	Resolve(ctx context.Context, params models.TripParameters, prefs models.FlightPreferences, currencyCode string) models.FlightSection
}

// FlightSummarizer produces a short grounded summary of a flights block.
type FlightSummarizer interface {
	SummarizeFlights(ctx context.Context, query, flightsText string) (string, error)
}

type PlanHandler struct {
	planner    TripPlanner
	flights    FlightResolver
	summarizer FlightSummarizer
}

func NewPlanHandler(p TripPlanner, f FlightResolver, s FlightSummarizer) *PlanHandler {
	return &PlanHandler{
		planner:    p,
		flights:    f,
		summarizer: s,
	}
}

// Plan runs the full pipeline for a free-text trip request.
func (h *PlanHandler) Plan(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.PlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	result, err := h.planner.Plan(ctx, req)
	if err != nil {
		var extractErr *extract.ExtractionError
		if errors.As(err, &extractErr) {
			return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "extraction_error",
				Message: extractErr.Error(),
				Code:    http.StatusUnprocessableEntity,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "plan_error",
			Message: "Failed to plan trip: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	resp := models.PlanResponse{Status: "complete", Result: &result}
	if result.TimedOut {
		resp.Status = "partial"
		resp.Message = "Pipeline deadline expired; returning the stages that completed."
	}
	return c.JSON(http.StatusOK, resp)
}

// FlightSearchRequest drives the direct flight-stage endpoint.
type FlightSearchRequest struct {
	AirportFrom   string                   `json:"airport_from"`
	AltAirportsTo []string                 `json:"alternative_airports_to,omitempty"`
	AirportTo     string                   `json:"airport_to"`
	DepartureDate string                   `json:"departure_date"`
	ReturnDate    string                   `json:"return_date,omitempty"`
	Currency      string                   `json:"currency,omitempty"`
	Preferences   models.FlightPreferences `json:"flight_preferences"`
}

func (r *FlightSearchRequest) validate() error {
	if !models.ValidIATA(r.AirportFrom) || !models.ValidIATA(r.AirportTo) {
		return models.ValidationError("airport_from and airport_to must be 3-letter IATA codes")
	}
	if _, err := time.Parse("2006-01-02", r.DepartureDate); err != nil {
		return models.ValidationError("departure_date must be YYYY-MM-DD")
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	return nil
}

// SearchFlights runs only the flight-resolution stage.
func (h *PlanHandler) SearchFlights(c echo.Context) error {
	ctx := c.Request().Context()

	var req FlightSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	section := h.flights.Resolve(ctx, models.TripParameters{
		AirportFrom:   req.AirportFrom,
		AirportTo:     req.AirportTo,
		AltAirportsTo: req.AltAirportsTo,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
	}, req.Preferences, req.Currency)

	return c.JSON(http.StatusOK, map[string]any{
		"flights": section.Text,
		"prices":  section.Prices,
	})
}

// SummaryRequest asks for a grounded recap of an already-formatted
// flights block.
type SummaryRequest struct {
	Query       string `json:"query"`
	FlightsText string `json:"flights_text"`
}

// SummarizeFlights returns a short grounded summary of flight options.
func (h *PlanHandler) SummarizeFlights(c echo.Context) error {
	ctx := c.Request().Context()

	var req SummaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	summary, err := h.summarizer.SummarizeFlights(ctx, req.Query, req.FlightsText)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "summary_error",
			Message: "Failed to summarize flights: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"summary": summary})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
