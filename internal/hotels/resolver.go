package hotels

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/journezy/tripplanner/internal/models"
	"github.com/journezy/tripplanner/internal/search"
)

const (
	// Broadened searches kick in when the primary engine returns fewer
	// candidates than this.
	sparseThreshold = 10
	// Candidate collection stops once this many hotels are known.
	maxCandidates = 20
	maxHighRated  = 8
	maxBudget     = 4
	maxSelected   = 12
)

var hotelKeywords = []string{"hotel", "resort", "inn", "lodge", "suites", "accommodation"}

// Amenity-biasing vocabularies keyed by the traveler-profile cross.
// At most maxAugmentTerms are appended to keep queries bounded.
const maxAugmentTerms = 5

var (
	familyAndAccessibleTerms = []string{
		"family friendly", "accessible", "elevator access",
		"kids amenities", "cribs available", "high chairs",
		"wheelchair accessible", "grab bars", "ground floor rooms",
	}
	toddlerTerms = []string{
		"family friendly", "kids amenities", "cribs available",
		"high chairs", "children's pool", "playground",
		"baby equipment", "stroller accessible",
	}
	seniorTerms = []string{
		"accessible", "elevator access", "wheelchair accessible",
		"grab bars", "ground floor rooms", "senior friendly",
		"mobility assistance", "comfortable seating",
	}
)

// HotelSearcher is the primary lodging provider.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, q search.HotelQuery) ([]models.HotelOption, error)
}

// WebSearcher is the general provider used for broadened searches when
// the primary engine is sparse.
type WebSearcher interface {
	SearchWeb(ctx context.Context, query string) (search.WebResults, error)
}

// Resolver searches for lodging with amenity-biased queries and a
// broadened-search fallback. Like the flight resolver it never errors;
// an empty section means no hotels were found anywhere.
type Resolver struct {
	searcher HotelSearcher
	web      WebSearcher
	logger   *slog.Logger
}

func NewResolver(searcher HotelSearcher, web WebSearcher, logger *slog.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		web:      web,
		logger:   logger,
	}
}

// BuildQuery assembles the provider query for a city and traveler profile.
func BuildQuery(city string, toddlerFriendly, seniorFriendly bool) string {
	query := city + " hotels"

	var terms []string
	switch {
	case toddlerFriendly && seniorFriendly:
		terms = familyAndAccessibleTerms
	case toddlerFriendly:
		terms = toddlerTerms
	case seniorFriendly:
		terms = seniorTerms
	}

	if len(terms) > maxAugmentTerms {
		terms = terms[:maxAugmentTerms]
	}
	if len(terms) > 0 {
		query += " " + strings.Join(terms, " ")
	}
	return query
}

// Resolve runs the hotel search for a city and date range.
func (r *Resolver) Resolve(ctx context.Context, city, checkIn, checkOut, currencyCode string, toddlerFriendly, seniorFriendly bool) models.HotelSection {
	candidates, err := r.searcher.SearchHotels(ctx, search.HotelQuery{
		Query:    BuildQuery(city, toddlerFriendly, seniorFriendly),
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Currency: currencyCode,
	})
	if err != nil {
		r.logger.Warn("primary hotel search failed", "city", city, "error", err)
		candidates = nil
	}

	if len(candidates) < sparseThreshold {
		candidates = r.broaden(ctx, city, candidates)
	}

	if len(candidates) == 0 {
		r.logger.Warn("no hotels found", "city", city)
		return models.HotelSection{}
	}

	selected := Select(candidates)
	header := buildHeader(city, toddlerFriendly, seniorFriendly)

	return models.HotelSection{
		Header:  header,
		Text:    FormatSection(header, selected, currencyCode),
		Options: selected,
	}
}

// broaden issues up to six rephrased general web searches, harvesting
// results whose titles look like lodging and deduplicating by name.
func (r *Resolver) broaden(ctx context.Context, city string, known []models.HotelOption) []models.HotelOption {
	queries := []string{
		"best hotels in " + city,
		"top rated hotels " + city,
		"luxury hotels " + city,
		"budget hotels " + city,
		"business hotels " + city,
		city + " accommodation booking",
	}

	seen := make(map[string]bool, len(known))
	for _, h := range known {
		seen[strings.ToLower(h.Name)] = true
	}

	for _, q := range queries {
		if len(known) >= maxCandidates {
			break
		}

		results, err := r.web.SearchWeb(ctx, q)
		if err != nil {
			r.logger.Warn("broadened hotel search failed", "query", q, "error", err)
			continue
		}

		for i, res := range results.Organic {
			if i >= 10 || len(known) >= maxCandidates {
				break
			}
			if !looksLikeHotel(res.Title) || seen[strings.ToLower(res.Title)] {
				continue
			}
			seen[strings.ToLower(res.Title)] = true
			known = append(known, models.HotelOption{
				Name:           res.Title,
				RateText:       "Check website for rates",
				Rating:         4.0,
				Reviews:        "Multiple reviews",
				LocationRating: "Good location",
				Amenities:      []string{"WiFi", "Air Conditioning", "24/7 Reception"},
				Image:          res.Thumbnail,
			})
		}

		for i, res := range results.Local {
			if i >= 5 || len(known) >= maxCandidates {
				break
			}
			if !looksLikeHotel(res.Title) || seen[strings.ToLower(res.Title)] {
				continue
			}
			seen[strings.ToLower(res.Title)] = true
			rating := res.Rating
			if rating == 0 {
				rating = 4.0
			}
			reviews := res.Reviews
			if reviews == "" {
				reviews = "Multiple"
			}
			known = append(known, models.HotelOption{
				Name:           res.Title,
				RateText:       "Contact for rates",
				Rating:         rating,
				Reviews:        reviews + " reviews",
				LocationRating: "Local area",
				Amenities:      []string{"Local Services", "Easy Access"},
				Image:          res.Thumbnail,
			})
		}
	}

	return known
}

func looksLikeHotel(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range hotelKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func buildHeader(city string, toddlerFriendly, seniorFriendly bool) string {
	header := fmt.Sprintf("Accommodations in %s:", city)
	if toddlerFriendly {
		header += " (family-friendly options included)"
	}
	if seniorFriendly {
		header += " (senior-friendly options included)"
	}
	return header
}
