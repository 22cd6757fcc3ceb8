package models

// Sentinel values substituted when a provider omits a place field, so
// downstream formatting stays uniform.
const (
	PriceFreeEntry   = "Free Entry"
	ImagePlaceholder = "N/A"
)

// PlaceOption is a normalized point of interest.
type PlaceOption struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Rating      string `json:"rating,omitempty"`
	Reviews     string `json:"reviews,omitempty"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

// PlaceSection is a resolved places stage.
type PlaceSection struct {
	Text    string
	Options []PlaceOption
}

// Empty reports whether the stage produced no places.
func (s PlaceSection) Empty() bool {
	return len(s.Options) == 0
}
