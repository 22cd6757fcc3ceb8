package models

// HotelOption is a normalized lodging candidate. NightlyRate is zero when
// the provider gave no parseable price; RateText preserves whatever the
// provider said for display ("N/A" when nothing was said at all).
type HotelOption struct {
	Name           string   `json:"name"`
	NightlyRate    float64  `json:"nightly_rate,omitempty"`
	RateText       string   `json:"rate_text"`
	Rating         float64  `json:"rating,omitempty"`
	Reviews        string   `json:"reviews,omitempty"`
	LocationRating string   `json:"location_rating,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
	Image          string   `json:"image,omitempty"`
}

// HasRate reports whether a numeric nightly rate was extracted.
func (h HotelOption) HasRate() bool {
	return h.NightlyRate > 0
}

// HotelSection is a resolved hotel stage: formatted text plus the typed
// options it was built from, carried so the orchestrator can re-filter by
// budget cap without scraping the text back apart.
type HotelSection struct {
	Header  string
	Text    string
	Options []HotelOption
}

// Empty reports whether the stage produced no hotels.
func (s HotelSection) Empty() bool {
	return len(s.Options) == 0
}
