package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/journezy/tripplanner/internal/models"
)

// Returned in place of itinerary text when generation fails; the renderer
// still turns it into a one-page document.
const synthesisErrorText = "Unable to generate an itinerary at this time. Please try again later."

// Generator is the model surface synthesis needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Input carries everything the prompt is assembled from.
type Input struct {
	Query           string
	Destination     string
	FlightsText     string
	HotelsText      string
	PlacesText      string
	Language        string
	Travelers       *models.Travelers
	Preferences     models.FlightPreferences
	ToddlerFriendly bool
	SeniorFriendly  bool
	SafetyCheck     bool
	BudgetSummary   string
}

// Writer composes the resolved trip data into a prompt, generates the
// itinerary, and cleans up the result.
type Writer struct {
	llm    Generator
	logger *slog.Logger
}

func NewWriter(llm Generator, logger *slog.Logger) *Writer {
	return &Writer{llm: llm, logger: logger}
}

// Synthesize produces the final markdown itinerary. It never errors: on
// generation failure it returns a literal apology that renders as-is.
func (w *Writer) Synthesize(ctx context.Context, in Input) string {
	prompt := buildPrompt(in)

	text, err := w.llm.Generate(ctx, prompt)
	if err != nil {
		w.logger.Error("itinerary synthesis failed", "destination", in.Destination, "error", err)
		return synthesisErrorText
	}

	cleaned := CleanContent(text)
	return EmbedImages(cleaned, in.HotelsText, in.PlacesText)
}

func buildPrompt(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert travel planner. Create a detailed day-by-day markdown itinerary for a trip to %s.\n\n", in.Destination)
	fmt.Fprintf(&b, "Original request: %s\n\n", in.Query)

	b.WriteString("## Flight Options\n")
	b.WriteString(orMarker(in.FlightsText, "No flights found. Do not invent flight details; note that flights could not be found.") + "\n\n")
	b.WriteString("## Accommodation Options\n")
	b.WriteString(orMarker(in.HotelsText, "No accommodations found. Do not invent hotel details.") + "\n\n")
	b.WriteString("## Places to Visit\n")
	b.WriteString(orMarker(in.PlacesText, "No attraction data available.") + "\n\n")

	if in.BudgetSummary != "" {
		fmt.Fprintf(&b, "Budget context: %s\n\n", in.BudgetSummary)
	}

	if tc := travelerContext(in.Travelers); tc != "" {
		fmt.Fprintf(&b, "Traveler composition: %s\n\n", tc)
	}

	if notes := considerationNotes(in); len(notes) > 0 {
		b.WriteString("Special considerations:\n")
		for _, n := range notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		b.WriteString("\n")
	}

	if in.SafetyCheck {
		b.WriteString("Include a short section on local safety guidance, emergency numbers, and areas requiring caution.\n\n")
	}

	b.WriteString("Structure the itinerary with markdown headings, include recommended flight and hotel picks from the data above, a day-by-day plan covering the listed attractions, and finish with a '## Practical Tips' section.\n")

	if in.Language != "" && in.Language != "en" {
		fmt.Fprintf(&b, "Write the entire itinerary in the language with ISO 639-1 code %q.\n", in.Language)
	}

	return b.String()
}

func travelerContext(t *models.Travelers) string {
	if t == nil {
		return ""
	}
	var parts []string
	if t.Adults > 0 {
		parts = append(parts, fmt.Sprintf("%d adult(s)", t.Adults))
	}
	if t.Children > 0 {
		parts = append(parts, fmt.Sprintf("%d child(ren)", t.Children))
	}
	if t.Seniors > 0 {
		parts = append(parts, fmt.Sprintf("%d senior(s)", t.Seniors))
	}
	if t.ChildrenUnder5 > 0 {
		parts = append(parts, fmt.Sprintf("%d toddler(s)", t.ChildrenUnder5))
	}
	return strings.Join(parts, ", ")
}

func considerationNotes(in Input) []string {
	var notes []string
	if in.ToddlerFriendly {
		notes = append(notes, "traveling with toddlers: favor short activity blocks, nap-friendly pacing, and stroller-accessible routes")
	}
	if in.SeniorFriendly {
		notes = append(notes, "traveling with seniors: favor accessible venues, moderate walking distances, and rest stops")
	}
	if in.Preferences.AvoidRedEye {
		notes = append(notes, "avoid overnight red-eye flights")
	}
	if in.Preferences.AvoidEarlyMorning {
		notes = append(notes, "avoid early-morning departures")
	}
	if in.Preferences.DirectOnly {
		notes = append(notes, "prefer direct flights")
	}
	return notes
}

func orMarker(text, marker string) string {
	if strings.TrimSpace(text) == "" {
		return marker
	}
	return text
}
