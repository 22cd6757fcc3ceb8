package places

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/journezy/tripplanner/internal/models"
	"github.com/journezy/tripplanner/internal/search"
)

const (
	// Alternate phrasings run when the base query finds fewer than this.
	sparseThreshold  = 5
	maxPlaces        = 15
	maxPerResultList = 10
)

var attractionKeywords = []string{
	"attraction", "museum", "park", "tour", "visit", "see", "landmark",
}

// Traveler-profile terms appended to the base query, keyed by the
// toddler/senior cross the same way the hotel resolver biases its queries.
const (
	familyAndAccessibleQuery = "family friendly accessible attractions"
	toddlerQuery             = "toddler friendly attractions playgrounds"
	seniorQuery              = "senior friendly accessible attractions"
)

// WebSearcher is the general search provider used to find attractions.
type WebSearcher interface {
	SearchWeb(ctx context.Context, query string) (search.WebResults, error)
}

// Resolver finds points of interest for a destination. It never returns
// an empty section: when every search comes back dry it falls back to a
// synthetic set of generic city highlights.
type Resolver struct {
	web    WebSearcher
	logger *slog.Logger
}

func NewResolver(web WebSearcher, logger *slog.Logger) *Resolver {
	return &Resolver{web: web, logger: logger}
}

// BuildQuery assembles the primary attraction query for a destination
// and traveler profile.
func BuildQuery(destination string, toddlerFriendly, seniorFriendly bool) string {
	query := "best attractions and places to visit in " + destination
	switch {
	case toddlerFriendly && seniorFriendly:
		query += " " + familyAndAccessibleQuery
	case toddlerFriendly:
		query += " " + toddlerQuery
	case seniorFriendly:
		query += " " + seniorQuery
	}
	return query
}

// Resolve collects attractions for a destination.
func (r *Resolver) Resolve(ctx context.Context, destination string, toddlerFriendly, seniorFriendly bool) models.PlaceSection {
	options := r.collect(ctx, BuildQuery(destination, toddlerFriendly, seniorFriendly), nil)

	if len(options) < sparseThreshold {
		alternates := []string{
			destination + " tourist attractions",
			"things to do in " + destination,
			destination + " sightseeing",
			"top landmarks " + destination,
			destination + " must see places",
			"famous places " + destination,
		}
		for _, q := range alternates {
			if len(options) >= maxPlaces {
				break
			}
			options = r.collect(ctx, q, options)
		}
	}

	if len(options) == 0 {
		r.logger.Warn("no attractions found, using generic highlights", "destination", destination)
		options = Synthetic(destination)
	}

	return models.PlaceSection{
		Text:    FormatSection(buildHeader(destination, toddlerFriendly, seniorFriendly), options),
		Options: options,
	}
}

func buildHeader(destination string, toddlerFriendly, seniorFriendly bool) string {
	header := fmt.Sprintf("Here are the top places to visit in %s:", destination)
	if toddlerFriendly {
		header += " (toddler-friendly options included)"
	}
	if seniorFriendly {
		header += " (senior-friendly options included)"
	}
	return header
}

// collect runs one web search and appends any attraction-looking results
// not already present, capped at maxPlaces overall.
func (r *Resolver) collect(ctx context.Context, query string, known []models.PlaceOption) []models.PlaceOption {
	results, err := r.web.SearchWeb(ctx, query)
	if err != nil {
		r.logger.Warn("attraction search failed", "query", query, "error", err)
		return known
	}

	seen := make(map[string]bool, len(known))
	for _, p := range known {
		seen[strings.ToLower(p.Title)] = true
	}

	for i, s := range results.Sights {
		if i >= maxPerResultList || len(known) >= maxPlaces {
			break
		}
		if s.Title == "" || seen[strings.ToLower(s.Title)] {
			continue
		}
		seen[strings.ToLower(s.Title)] = true
		known = append(known, models.PlaceOption{
			Title:       s.Title,
			Description: orDefault(s.Description, "Popular attraction"),
			Rating:      s.Rating,
			Reviews:     s.Reviews,
			Price:       orDefault(s.Price, models.PriceFreeEntry),
			Image:       orDefault(s.Thumbnail, models.ImagePlaceholder),
		})
	}

	for i, res := range results.Organic {
		if i >= maxPerResultList || len(known) >= maxPlaces {
			break
		}
		if !looksLikeAttraction(res.Title) || seen[strings.ToLower(res.Title)] {
			continue
		}
		seen[strings.ToLower(res.Title)] = true
		known = append(known, models.PlaceOption{
			Title:       res.Title,
			Description: orDefault(res.Snippet, "Popular attraction"),
			Price:       models.PriceFreeEntry,
			Image:       orDefault(res.Thumbnail, models.ImagePlaceholder),
		})
	}

	for i, res := range results.Local {
		if i >= maxPerResultList || len(known) >= maxPlaces {
			break
		}
		if !looksLikeAttraction(res.Title) || seen[strings.ToLower(res.Title)] {
			continue
		}
		seen[strings.ToLower(res.Title)] = true
		known = append(known, models.PlaceOption{
			Title:       res.Title,
			Description: "Local attraction",
			Rating:      formatRating(res.Rating),
			Reviews:     res.Reviews,
			Price:       models.PriceFreeEntry,
			Image:       orDefault(res.Thumbnail, models.ImagePlaceholder),
		})
	}

	return known
}

func looksLikeAttraction(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range attractionKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Synthetic returns five generic highlights used when every search for a
// destination comes back empty.
func Synthetic(destination string) []models.PlaceOption {
	entries := []struct {
		title       string
		description string
		rating      string
	}{
		{destination + " City Center", "The heart of the city with shops, restaurants, and local life", "4.2"},
		{destination + " Historic District", "Explore the historic architecture and cultural heritage", "4.3"},
		{"Local Markets of " + destination, "Traditional markets with local crafts and street food", "4.1"},
		{destination + " Parks and Gardens", "Green spaces perfect for relaxation and walks", "4.0"},
		{"Cultural Attractions in " + destination, "Museums, galleries, and cultural sites", "4.2"},
	}

	options := make([]models.PlaceOption, 0, len(entries))
	for _, e := range entries {
		options = append(options, models.PlaceOption{
			Title:       e.title,
			Description: e.description,
			Rating:      e.rating,
			Reviews:     "Local favorite",
			Price:       models.PriceFreeEntry,
			Image:       models.ImagePlaceholder,
		})
	}
	return options
}

// FormatSection renders the attractions block fed into synthesis.
func FormatSection(header string, options []models.PlaceOption) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, p := range options {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Title)
		fmt.Fprintf(&b, "Description: %s\n", p.Description)
		if p.Rating != "" {
			fmt.Fprintf(&b, "Rating: %s (%s)\n", p.Rating, orDefault(p.Reviews, "No reviews"))
		}
		fmt.Fprintf(&b, "Price: %s\n", p.Price)
		fmt.Fprintf(&b, "Image: %s\n", p.Image)
	}

	return b.String()
}

func formatRating(r float64) string {
	if r <= 0 {
		return ""
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
