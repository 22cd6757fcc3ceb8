package flights

import (
	"context"
	"log/slog"
	"strings"

	"github.com/journezy/tripplanner/internal/cache"
	"github.com/journezy/tripplanner/internal/models"
	"github.com/journezy/tripplanner/internal/search"
)

const maxOptions = 3

// GroundedSearcher is the grounded-search collaborator used for the
// primary flight lookup.
type GroundedSearcher interface {
	GenerateGrounded(ctx context.Context, prompt string) (string, error)
}

// Searcher is the conventional flight search provider.
type Searcher interface {
	SearchFlights(ctx context.Context, q search.FlightQuery) ([]models.FlightOption, error)
}

// Resolver finds flights for a trip with a two-tier fallback: grounded
// search first, then the conventional provider across the candidate
// airport pairings. It never returns an error; an empty section is the
// valid "no flights found" state.
type Resolver struct {
	grounded GroundedSearcher
	searcher Searcher
	cache    cache.Cache
	logger   *slog.Logger
}

func NewResolver(grounded GroundedSearcher, searcher Searcher, c cache.Cache, logger *slog.Logger) *Resolver {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Resolver{
		grounded: grounded,
		searcher: searcher,
		cache:    c,
		logger:   logger,
	}
}

// Usable reports whether a formatted flight text passes the acceptance
// gate between providers: the literal header plus at least one price or
// duration marker.
func Usable(text string) bool {
	if !strings.HasPrefix(text, "Flights from ") {
		return false
	}
	return strings.Contains(text, "Price (") || strings.Contains(text, "Total Duration:")
}

// Resolve runs the fallback chain for the given trip parameters.
func (r *Resolver) Resolve(ctx context.Context, params models.TripParameters, prefs models.FlightPreferences, currencyCode string) models.FlightSection {
	origins := params.OriginCandidates()
	destinations := params.DestinationCandidates()
	if len(origins) == 0 || len(destinations) == 0 {
		r.logger.Warn("no valid airports, skipping flight search")
		return models.FlightSection{}
	}

	if section, ok := r.resolveGrounded(ctx, origins[0], destinations[0], params, prefs, currencyCode); ok {
		r.logger.Info("flights resolved via grounded search",
			"origin", origins[0], "destination", destinations[0])
		return section
	}

	r.logger.Info("grounded flight search unusable, falling back to conventional provider")
	return r.resolveConventional(ctx, origins, destinations, params, prefs, currencyCode)
}

func (r *Resolver) resolveGrounded(ctx context.Context, origin, destination string, params models.TripParameters, prefs models.FlightPreferences, currencyCode string) (models.FlightSection, bool) {
	if r.grounded == nil {
		return models.FlightSection{}, false
	}

	prompt := groundedPrompt(origin, destination, params.DepartureDate, params.ReturnDate)
	reply, err := r.grounded.GenerateGrounded(ctx, prompt)
	if err != nil {
		r.logger.Warn("grounded flight search failed", "error", err)
		return models.FlightSection{}, false
	}

	outbound, _, err := parseGrounded(reply, currencyCode)
	if err != nil {
		r.logger.Warn("grounded flight response unparseable", "error", err)
		return models.FlightSection{}, false
	}

	outbound = SelectCheapest(outbound, maxOptions)
	text := FormatOptions(origin, destination, outbound, currencyCode, false)
	if !Usable(text) || len(outbound) == 0 {
		return models.FlightSection{}, false
	}

	section := models.FlightSection{
		Text:   text,
		Prices: optionPrices(outbound),
	}

	// Grounded replies are treated as outbound-only; the reverse leg is
	// resolved independently via the conventional provider.
	if params.ReturnDate != "" {
		if retText, retOptions, ok := r.oneWay(ctx, destination, origin, params.ReturnDate, prefs, currencyCode); ok {
			section.Text += "\n\n" + retText
			section.Prices = append(section.Prices, optionPrices(retOptions)...)
		}
	}

	return section, true
}

func (r *Resolver) resolveConventional(ctx context.Context, origins, destinations []string, params models.TripParameters, prefs models.FlightPreferences, currencyCode string) models.FlightSection {
	for _, dep := range origins {
		for _, arr := range destinations {
			text, options, ok := r.oneWay(ctx, dep, arr, params.DepartureDate, prefs, currencyCode)
			if !ok {
				continue
			}

			section := models.FlightSection{
				Text:   text,
				Prices: optionPrices(options),
			}

			if params.ReturnDate != "" {
				if retText, retOptions, ok := r.oneWay(ctx, arr, dep, params.ReturnDate, prefs, currencyCode); ok {
					section.Text += "\n\n" + retText
					section.Prices = append(section.Prices, optionPrices(retOptions)...)
				}
			}

			r.logger.Info("flights resolved via conventional provider", "origin", dep, "destination", arr)
			return section
		}
	}

	r.logger.Warn("no flights found from grounded or conventional search")
	return models.FlightSection{}
}

// oneWay resolves a single direction through the conventional provider,
// applying preference filtering before the price sort.
func (r *Resolver) oneWay(ctx context.Context, origin, destination, date string, prefs models.FlightPreferences, currencyCode string) (string, []models.FlightOption, bool) {
	key := cache.Key{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: date,
		Currency:      currencyCode,
	}

	candidates, hit := r.cache.Get(ctx, key)
	if !hit {
		var err error
		candidates, err = r.searcher.SearchFlights(ctx, search.FlightQuery{
			Origin:        origin,
			Destination:   destination,
			DepartureDate: date,
			Currency:      currencyCode,
			DirectOnly:    prefs.DirectOnly,
		})
		if err != nil {
			r.logger.Warn("conventional flight search failed",
				"origin", origin, "destination", destination, "error", err)
			return "", nil, false
		}
		_ = r.cache.Set(ctx, key, candidates)
	}

	if len(candidates) == 0 {
		return "", nil, false
	}

	selected := SelectCheapest(ApplyPreferences(candidates, prefs), maxOptions)
	text := FormatOptions(origin, destination, selected, currencyCode, prefs.Any())
	if !Usable(text) {
		return "", nil, false
	}
	return text, selected, true
}

func optionPrices(options []models.FlightOption) []float64 {
	prices := make([]float64, 0, len(options))
	for _, opt := range options {
		prices = append(prices, opt.Price)
	}
	return prices
}
