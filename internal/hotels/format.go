package hotels

import (
	"fmt"
	"strings"

	"github.com/journezy/tripplanner/internal/models"
	"github.com/journezy/tripplanner/pkg/currency"
)

const maxAmenitiesShown = 7

// FormatSection renders the hotel slate as the text block consumed by
// budget reconciliation and itinerary synthesis.
func FormatSection(header string, options []models.HotelOption, currencyCode string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for i, h := range options {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(h.Name)
		b.WriteString("\n")
		fmt.Fprintf(&b, "Rate per night: %s\n", rateLine(h, currencyCode))
		fmt.Fprintf(&b, "Rating: %.1f (%s)\n", h.Rating, orDefault(h.Reviews, "No reviews"))
		fmt.Fprintf(&b, "Location Rating: %s\n", orDefault(h.LocationRating, "N/A"))
		fmt.Fprintf(&b, "Amenities: %s\n", amenityLine(h.Amenities))
		fmt.Fprintf(&b, "Image: %s\n", orDefault(h.Image, "N/A"))
	}

	return b.String()
}

func rateLine(h models.HotelOption, currencyCode string) string {
	if h.HasRate() {
		return currency.FormatAmount(h.NightlyRate, currencyCode)
	}
	return orDefault(h.RateText, "N/A")
}

func amenityLine(amenities []string) string {
	if len(amenities) == 0 {
		return "Not listed"
	}
	if len(amenities) > maxAmenitiesShown {
		amenities = amenities[:maxAmenitiesShown]
	}
	return strings.Join(amenities, ", ")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
