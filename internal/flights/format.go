package flights

import (
	"fmt"
	"strings"

	"github.com/journezy/tripplanner/internal/models"
	"github.com/journezy/tripplanner/pkg/currency"
)

// FormatMinutes renders a duration in minutes as "2 hr 5 min", "1 hr" or
// "45 min". Negative input is a formatting error.
func FormatMinutes(totalMinutes int) (string, error) {
	if totalMinutes < 0 {
		return "", fmt.Errorf("format minutes: negative duration %d", totalMinutes)
	}

	hours := totalMinutes / 60
	minutes := totalMinutes % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d hr %d min", hours, minutes), nil
	case hours > 0:
		return fmt.Sprintf("%d hr", hours), nil
	default:
		return fmt.Sprintf("%d min", minutes), nil
	}
}

func formatMinutesOrNA(totalMinutes int) string {
	s, err := FormatMinutes(totalMinutes)
	if err != nil {
		return "N/A"
	}
	return s
}

// FormatOptions renders a list of flight options into the text block the
// rest of the pipeline consumes. The header and the "Price (<CUR>):"
// lines are load-bearing: the usable-result gate and the budget price
// extraction both key on them.
func FormatOptions(origin, destination string, options []models.FlightOption, currencyCode string, filtered bool) string {
	code := strings.ToUpper(currencyCode)

	header := fmt.Sprintf("Flights from %s to %s:", origin, destination)
	if filtered {
		header += " (filtered by preferences)"
	}

	var lines []string
	lines = append(lines, header, "")

	for _, opt := range options {
		for _, seg := range opt.Segments {
			lines = append(lines, formatSegment(seg))
		}
		if len(opt.Layovers) > 0 {
			l := opt.Layovers[0]
			lines = append(lines, fmt.Sprintf("Layover at %s: %s", l.Airport, formatMinutesOrNA(l.DurationMin)))
		}
		lines = append(lines, fmt.Sprintf("Total Duration: %s", formatMinutesOrNA(opt.TotalDurationMin)))
		lines = append(lines, fmt.Sprintf("Price (%s): %s", code, currency.FormatAmount(opt.Price, code)))
		lines = append(lines, "")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func formatSegment(seg models.FlightSegment) string {
	depTime := orNA(seg.DepartureTime)
	arrTime := orNA(seg.ArrivalTime)
	airplane := orNA(seg.Airplane)

	return fmt.Sprintf("%s %s - %s (%s) -> %s (%s) [%s] - %s",
		seg.Airline, seg.FlightNumber,
		orNA(seg.DepartureCode), depTime,
		orNA(seg.ArrivalCode), arrTime,
		formatMinutesOrNA(seg.DurationMin), airplane)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
