package models

// Document type tags returned alongside the rendered bytes. Callers must
// branch on the tag: a markdown tag means every PDF backend failed and
// the raw itinerary text was returned instead.
const (
	DocumentPDF      = "pdf"
	DocumentMarkdown = "markdown"
)

// PlanResult is the output of one pipeline run. On timeout the stage
// fields hold whatever had been resolved before the deadline expired.
type PlanResult struct {
	RunID        string          `json:"run_id"`
	Params       *TripParameters `json:"params,omitempty"`
	FlightsText  string          `json:"flights"`
	HotelsText   string          `json:"hotels"`
	PlacesText   string          `json:"places"`
	Itinerary    string          `json:"itinerary"`
	Document     []byte          `json:"document,omitempty"`
	DocumentType string          `json:"document_type,omitempty"`
	Budget       *BudgetContext  `json:"budget,omitempty"`
	TimedOut     bool            `json:"timed_out,omitempty"`
}

// PlanResponse is the HTTP envelope for a plan run.
type PlanResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  *PlanResult `json:"result,omitempty"`
}

// ErrorResponse mirrors the error envelope used by all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
