package flights

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/journezy/tripplanner/internal/models"
)

// Departure-time windows behind the preference flags. Hard-coded product
// constants inherited from the reference behavior.
const (
	redEyeStartHour     = 22
	redEyeEndHour       = 6
	earlyMorningEndHour = 8
	midDayStartHour     = 10
	midDayEndHour       = 18
)

var clockTime = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

// ApplyPreferences drops candidates whose first-segment departure time
// violates the requested preferences. Preferences are best-effort: if
// they would eliminate every candidate the unfiltered set is returned.
func ApplyPreferences(options []models.FlightOption, prefs models.FlightPreferences) []models.FlightOption {
	if !prefs.Any() {
		return options
	}

	filtered := make([]models.FlightOption, 0, len(options))
	for _, opt := range options {
		if meetsPreferences(opt, prefs) {
			filtered = append(filtered, opt)
		}
	}

	if len(filtered) == 0 {
		return options
	}
	return filtered
}

func meetsPreferences(opt models.FlightOption, prefs models.FlightPreferences) bool {
	hour, ok := firstDepartureHour(opt)
	if !ok {
		// No parseable time means no basis to exclude.
		return true
	}

	if prefs.AvoidRedEye && (hour >= redEyeStartHour || hour < redEyeEndHour) {
		return false
	}
	if prefs.AvoidEarlyMorning && hour < earlyMorningEndHour {
		return false
	}
	if (prefs.ChildFriendly || prefs.SeniorFriendly) && (hour < midDayStartHour || hour >= midDayEndHour) {
		return false
	}
	return true
}

func firstDepartureHour(opt models.FlightOption) (int, bool) {
	for _, seg := range opt.Segments {
		if seg.DepartureTime == "" {
			continue
		}
		m := clockTime.FindStringSubmatch(seg.DepartureTime)
		if m == nil {
			continue
		}
		hour, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return hour, true
	}
	return 0, false
}

// SelectCheapest sorts by total price ascending and keeps the top n.
func SelectCheapest(options []models.FlightOption, n int) []models.FlightOption {
	sorted := append([]models.FlightOption(nil), options...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
