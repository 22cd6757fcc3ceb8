// Package budget derives a per-night hotel cap from the trip budget and
// the already-resolved flight costs, and applies it to hotel candidates.
package budget

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/journezy/tripplanner/internal/models"
	"github.com/journezy/tripplanner/pkg/currency"
)

var nightlyRatePattern = regexp.MustCompile(`Rate per night: ([^\n]+)`)

var rateNumber = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// ExtractPrices pulls every "Price (<CUR>): <symbol><number>" value out
// of a formatted flight text block. The pattern tolerates thousands
// separators so values survive a format/extract round trip.
func ExtractPrices(currencyCode, text string) []float64 {
	if text == "" {
		return nil
	}
	pattern := regexp.MustCompile(`Price \(` + regexp.QuoteMeta(strings.ToUpper(currencyCode)) + `\): [\$₹]?([0-9][0-9,]*(?:\.[0-9]+)?)`)

	var prices []float64
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		prices = append(prices, v)
	}
	return prices
}

// EstimateFlightCost approximates total airfare from the extracted price
// list: the two cheapest values when at least two exist (one outbound,
// one return fare), the single value when only one exists, zero when the
// text had no parseable prices.
func EstimateFlightCost(prices []float64) float64 {
	switch len(prices) {
	case 0:
		return 0
	case 1:
		return prices[0]
	}

	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)
	return sorted[0] + sorted[1]
}

// NightlyCap computes the maximum nightly hotel rate that keeps the trip
// within budget after the flight estimate is subtracted.
func NightlyCap(total, flightCost float64, nights int) float64 {
	remaining := total - flightCost
	if remaining < 0 {
		remaining = 0
	}
	if nights < 1 {
		nights = 1
	}
	return remaining / float64(nights)
}

// Context assembles the full budget context for one run.
func Context(total float64, currencyCode string, flightPrices []float64, nights int) models.BudgetContext {
	flightCost := EstimateFlightCost(flightPrices)
	return models.BudgetContext{
		Total:      total,
		Currency:   currencyCode,
		FlightCost: flightCost,
		NightlyCap: NightlyCap(total, flightCost, nights),
		Nights:     nights,
	}
}

// CapHotels filters hotel candidates to those whose nightly rate fits the
// cap, keeping at most three sorted by rate ascending. Candidates without
// a parseable rate never qualify. When nothing fits, the original set is
// returned unchanged: the cap is best-effort, never a way to end up with
// zero hotels.
func CapHotels(options []models.HotelOption, nightlyCap float64) []models.HotelOption {
	var within []models.HotelOption
	for _, h := range options {
		if h.HasRate() && h.NightlyRate <= nightlyCap {
			within = append(within, h)
		}
	}
	if len(within) == 0 {
		return options
	}

	sort.SliceStable(within, func(i, j int) bool {
		return within[i].NightlyRate < within[j].NightlyRate
	})
	if len(within) > 3 {
		within = within[:3]
	}
	return within
}

// FirstNightlyRate extracts the first "Rate per night" value from a
// formatted hotels text block, zero when none is parseable.
func FirstNightlyRate(text string) float64 {
	m := nightlyRatePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	num := rateNumber.FindString(strings.ReplaceAll(m[1], ",", ""))
	if num == "" {
		return 0
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	return v
}

// Summary renders the one-sentence budget note handed to the synthesizer:
// total budget, estimated flights+hotels spend and over/under status.
func Summary(bc models.BudgetContext, hotelsText string) string {
	nights := bc.Nights
	if nights < 1 {
		nights = 1
	}

	minFlight := bc.FlightCost
	totalHotel := FirstNightlyRate(hotelsText) * float64(nights)
	estimated := minFlight + totalHotel

	note := fmt.Sprintf("Budget: %s %s. Estimated total (flights + hotels): %s %s. ",
		currency.FormatAmount(bc.Total, bc.Currency), bc.Currency,
		currency.FormatAmount(estimated, bc.Currency), bc.Currency)

	if overage := estimated - bc.Total; overage > 0 {
		note += fmt.Sprintf("Over budget by %s. ", currency.FormatAmount(overage, bc.Currency))
	} else {
		note += "Within budget. "
	}
	return note
}
