package hotels

import (
	"sort"

	"github.com/journezy/tripplanner/internal/models"
)

// Select picks a balanced slate: up to eight highly rated hotels
// (rating 4.0 or above) plus up to four lower-rated budget picks.
// Candidates are ranked by rating descending with nightly rate
// ascending as the tiebreak; unpriced hotels sort after priced ones.
// When one bucket is short the other backfills up to the overall cap.
func Select(candidates []models.HotelOption) []models.HotelOption {
	ranked := make([]models.HotelOption, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		if ranked[i].HasRate() != ranked[j].HasRate() {
			return ranked[i].HasRate()
		}
		return ranked[i].NightlyRate < ranked[j].NightlyRate
	})

	var highRated, budget []models.HotelOption
	for _, h := range ranked {
		if h.Rating >= 4.0 {
			highRated = append(highRated, h)
		} else {
			budget = append(budget, h)
		}
	}

	selected := take(highRated, maxHighRated)
	selected = append(selected, take(budget, maxBudget)...)

	// Backfill from whichever bucket has leftovers.
	if len(selected) < maxSelected {
		if extra := len(highRated) - maxHighRated; extra > 0 {
			selected = append(selected, take(highRated[maxHighRated:], maxSelected-len(selected))...)
		}
	}
	if len(selected) < maxSelected {
		if extra := len(budget) - maxBudget; extra > 0 {
			selected = append(selected, take(budget[maxBudget:], maxSelected-len(selected))...)
		}
	}

	return selected
}

func take(src []models.HotelOption, n int) []models.HotelOption {
	if n <= 0 {
		return nil
	}
	if len(src) < n {
		n = len(src)
	}
	out := make([]models.HotelOption, n)
	copy(out, src[:n])
	return out
}
