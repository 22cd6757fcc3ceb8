package models

import "strings"

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingQuery        ValidationError = "query is required"
	ErrUnsupportedCurrency ValidationError = "unsupported currency"
	ErrUnsupportedLang     ValidationError = "unsupported language"
	ErrNegativeBudget      ValidationError = "budget_amount must be positive"
)

// Currencies providers are asked to quote in. Amounts are requested
// directly in the chosen currency, never converted.
var SupportedCurrencies = []string{"USD", "INR"}

var SupportedLanguages = []string{"en", "hi", "es", "fr", "de", "it", "pt", "ja", "ko", "zh", "ar"}

// PlanRequest is a full trip-planning invocation.
type PlanRequest struct {
	Query             string            `json:"query"`
	Language          string            `json:"language,omitempty"`
	BudgetAmount      *float64          `json:"budget_amount,omitempty"`
	Currency          string            `json:"currency,omitempty"`
	Travelers         *Travelers        `json:"travelers,omitempty"`
	FlightPreferences FlightPreferences `json:"flight_preferences"`
	ToddlerFriendly   bool              `json:"consider_toddler_friendly"`
	SeniorFriendly    bool              `json:"consider_senior_friendly"`
	SafetyCheck       bool              `json:"safety_check"`
}

// Validate normalizes defaults and rejects unsupported values.
func (r *PlanRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return ErrMissingQuery
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	r.Currency = strings.ToUpper(r.Currency)
	if !contains(SupportedCurrencies, r.Currency) {
		return ErrUnsupportedCurrency
	}
	if r.Language == "" {
		r.Language = "en"
	}
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
	if !contains(SupportedLanguages, r.Language) {
		return ErrUnsupportedLang
	}
	if r.BudgetAmount != nil && *r.BudgetAmount <= 0 {
		return ErrNegativeBudget
	}
	return nil
}

// HasBudget reports whether a positive budget was supplied.
func (r *PlanRequest) HasBudget() bool {
	return r.BudgetAmount != nil && *r.BudgetAmount > 0
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
