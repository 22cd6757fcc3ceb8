// Package planner runs the trip-planning pipeline: parameter extraction,
// flight/hotel/attraction resolution, budget reconciliation, itinerary
// synthesis and document rendering, in that order, under one deadline.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/journezy/tripplanner/internal/budget"
	"github.com/journezy/tripplanner/internal/hotels"
	"github.com/journezy/tripplanner/internal/itinerary"
	"github.com/journezy/tripplanner/internal/models"
)

// PipelineTimeout bounds a whole run. There are no per-stage timeouts;
// when the deadline hits mid-run the stages already completed are
// returned as a partial result.
const PipelineTimeout = 5 * time.Minute

// Stage failures other than extraction degrade to empty sections, so the
// fallback trip length only matters when the dates came back unordered.
const fallbackTripNights = 3

// ParameterExtractor turns the free-text query into trip parameters.
type ParameterExtractor interface {
	Extract(ctx context.Context, query string) (models.TripParameters, error)
}

// FlightResolver resolves the flight section. Never errors; an empty
// section means no flights were found.
type FlightResolver interface {
	Resolve(ctx context.Context, params models.TripParameters, prefs models.FlightPreferences, currencyCode string) models.FlightSection
}

// HotelResolver resolves the lodging section.
type HotelResolver interface {
	Resolve(ctx context.Context, city, checkIn, checkOut, currencyCode string, toddlerFriendly, seniorFriendly bool) models.HotelSection
}

// PlaceResolver resolves the attractions section.
type PlaceResolver interface {
	Resolve(ctx context.Context, destination string, toddlerFriendly, seniorFriendly bool) models.PlaceSection
}

// ItineraryWriter synthesizes the markdown itinerary.
type ItineraryWriter interface {
	Synthesize(ctx context.Context, in itinerary.Input) string
}

// DocumentRenderer turns itinerary markdown into deliverable bytes.
type DocumentRenderer interface {
	Render(markdownText string) ([]byte, string)
}

type Planner struct {
	extractor ParameterExtractor
	flights   FlightResolver
	hotels    HotelResolver
	places    PlaceResolver
	writer    ItineraryWriter
	renderer  DocumentRenderer
	logger    *slog.Logger
	timeout   time.Duration
}

func New(extractor ParameterExtractor, flights FlightResolver, hotels HotelResolver, places PlaceResolver, writer ItineraryWriter, renderer DocumentRenderer, logger *slog.Logger) *Planner {
	return &Planner{
		extractor: extractor,
		flights:   flights,
		hotels:    hotels,
		places:    places,
		writer:    writer,
		renderer:  renderer,
		logger:    logger,
		timeout:   PipelineTimeout,
	}
}

// Plan runs the full pipeline for one request. The only fatal failures
// are parameter extraction and the overall deadline expiring before any
// stage completed; everything else degrades to empty sections, and a
// mid-run timeout returns whatever was already resolved with TimedOut
// set.
func (p *Planner) Plan(ctx context.Context, req models.PlanRequest) (models.PlanResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result := models.PlanResult{RunID: uuid.NewString()}
	log := p.logger.With("run_id", result.RunID)
	started := time.Now()

	params, err := p.extractor.Extract(ctx, req.Query)
	if err != nil {
		return result, fmt.Errorf("extracting trip parameters: %w", err)
	}
	normalizeDates(&params)
	result.Params = &params
	log.Info("stage complete", "stage", "extract", "destination", params.Destination)

	flightSection := p.flights.Resolve(ctx, params, req.FlightPreferences, req.Currency)
	result.FlightsText = flightSection.Text
	log.Info("stage complete", "stage", "flights", "options", len(flightSection.Prices))
	if timedOut(ctx) {
		return p.partial(log, result), nil
	}

	if req.HasBudget() {
		bc := budget.Context(*req.BudgetAmount, req.Currency, flightSection.Prices, params.Nights())
		result.Budget = &bc
	}

	hotelSection := p.hotels.Resolve(ctx, params.Destination, params.DepartureDate, params.ReturnDate, req.Currency, req.ToddlerFriendly, req.SeniorFriendly)
	if result.Budget != nil && !hotelSection.Empty() {
		capped := budget.CapHotels(hotelSection.Options, result.Budget.NightlyCap)
		if len(capped) != len(hotelSection.Options) {
			hotelSection.Options = capped
			hotelSection.Text = hotels.FormatSection(hotelSection.Header, capped, req.Currency)
		}
	}
	result.HotelsText = hotelSection.Text
	log.Info("stage complete", "stage", "hotels", "options", len(hotelSection.Options))
	if timedOut(ctx) {
		return p.partial(log, result), nil
	}

	placeSection := p.places.Resolve(ctx, params.Destination, req.ToddlerFriendly, req.SeniorFriendly)
	result.PlacesText = placeSection.Text
	log.Info("stage complete", "stage", "places", "options", len(placeSection.Options))
	if timedOut(ctx) {
		return p.partial(log, result), nil
	}

	var budgetSummary string
	if result.Budget != nil {
		budgetSummary = budget.Summary(*result.Budget, result.HotelsText)
	}

	result.Itinerary = p.writer.Synthesize(ctx, itinerary.Input{
		Query:           req.Query,
		Destination:     params.Destination,
		FlightsText:     result.FlightsText,
		HotelsText:      result.HotelsText,
		PlacesText:      result.PlacesText,
		Language:        req.Language,
		Travelers:       req.Travelers,
		Preferences:     req.FlightPreferences,
		ToddlerFriendly: req.ToddlerFriendly,
		SeniorFriendly:  req.SeniorFriendly,
		SafetyCheck:     req.SafetyCheck,
		BudgetSummary:   budgetSummary,
	})
	if timedOut(ctx) {
		return p.partial(log, result), nil
	}

	result.Document, result.DocumentType = p.renderer.Render(result.Itinerary)
	log.Info("plan complete",
		"document_type", result.DocumentType,
		"document_bytes", len(result.Document),
		"elapsed", time.Since(started).Round(time.Millisecond),
	)
	return result, nil
}

func (p *Planner) partial(log *slog.Logger, result models.PlanResult) models.PlanResult {
	result.TimedOut = true
	log.Warn("pipeline deadline expired, returning partial result",
		"has_flights", result.FlightsText != "",
		"has_hotels", result.HotelsText != "",
		"has_places", result.PlacesText != "",
		"has_itinerary", result.Itinerary != "",
	)
	return result
}

func timedOut(ctx context.Context) bool {
	return ctx.Err() != nil
}

// normalizeDates repairs an unordered date pair by pushing the return
// date out to a short default stay.
func normalizeDates(params *models.TripParameters) {
	ci, err := time.Parse("2006-01-02", params.DepartureDate)
	if err != nil {
		return
	}
	co, err := time.Parse("2006-01-02", params.ReturnDate)
	if err != nil || !co.After(ci) {
		params.ReturnDate = ci.AddDate(0, 0, fallbackTripNights).Format("2006-01-02")
	}
}
