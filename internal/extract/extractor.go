package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/journezy/tripplanner/internal/models"
)

const (
	dateLayout = "2006-01-02"

	// Applied when the request names no dates at all.
	defaultDepartureOffsetDays = 30
	defaultTripLengthDays      = 7

	unknownDestination = "Unknown Destination"
)

// ExtractionError aborts the whole pipeline: without airports and dates
// nothing downstream can run.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parameter extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parameter extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Generator is the model surface extraction needs.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
	GenerateGrounded(ctx context.Context, prompt string) (string, error)
}

// Extractor turns a free-text travel request into structured trip
// parameters using a cascade of model calls and text heuristics.
type Extractor struct {
	llm    Generator
	logger *slog.Logger
	now    func() time.Time
}

func NewExtractor(llm Generator, logger *slog.Logger) *Extractor {
	return &Extractor{llm: llm, logger: logger, now: time.Now}
}

type rawExtraction struct {
	Destination   string `json:"destination"`
	OriginCity    string `json:"origin_city"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
}

type rawAirports struct {
	DepartureAirport      string   `json:"departure_airport"`
	DepartureAlternatives []string `json:"departure_alternatives"`
	ArrivalAirport        string   `json:"arrival_airport"`
	ArrivalAlternatives   []string `json:"arrival_alternatives"`
}

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// Extract resolves destination, dates, and airports from a query.
// Every stage has a fallback; only a query where no airport pair can be
// resolved at all is fatal.
func (e *Extractor) Extract(ctx context.Context, query string) (models.TripParameters, error) {
	var params models.TripParameters

	raw, err := e.extractPrimary(ctx, query)
	if err != nil {
		e.logger.Warn("primary extraction failed, falling back to heuristics", "error", err)
	}

	params.Destination = sanitizeDestination(raw.Destination)
	if params.Destination == "" {
		params.Destination = e.extractDestination(ctx, query)
	}

	params.DepartureDate, params.ReturnDate = e.resolveDates(raw, query)

	airports, err := e.resolveAirports(ctx, raw.OriginCity, params.Destination, query)
	if err != nil {
		return models.TripParameters{}, err
	}
	params.AirportFrom = airports.DepartureAirport
	params.AltAirportsFrom = airports.DepartureAlternatives
	params.AirportTo = airports.ArrivalAirport
	params.AltAirportsTo = airports.ArrivalAlternatives

	e.logger.Info("trip parameters extracted",
		"destination", params.Destination,
		"from", params.AirportFrom,
		"to", params.AirportTo,
		"departure", params.DepartureDate,
		"return", params.ReturnDate,
	)
	return params, nil
}

func (e *Extractor) extractPrimary(ctx context.Context, query string) (rawExtraction, error) {
	prompt := fmt.Sprintf(`Extract travel details from this request. Respond with JSON only:
{"destination": "city name", "origin_city": "city name or empty string", "departure_date": "YYYY-MM-DD or empty string", "return_date": "YYYY-MM-DD or empty string"}

Request: %s`, query)

	text, err := e.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		return rawExtraction{}, err
	}
	var raw rawExtraction
	if err := decodeObject(text, &raw); err != nil {
		return rawExtraction{}, err
	}
	return raw, nil
}

// extractDestination retries with a narrow prompt, then falls back to
// pattern matching on the query text.
func (e *Extractor) extractDestination(ctx context.Context, query string) string {
	prompt := fmt.Sprintf("What city or place does this travel request want to visit? Answer with the place name only, nothing else.\n\nRequest: %s", query)
	if text, err := e.llm.GenerateJSON(ctx, fmt.Sprintf(`Respond with JSON only: {"destination": "place name"}. %s`, prompt)); err == nil {
		var raw rawExtraction
		if decodeObject(text, &raw) == nil {
			if dest := sanitizeDestination(raw.Destination); dest != "" {
				return dest
			}
		}
	} else {
		e.logger.Warn("destination retry failed", "error", err)
	}
	return destinationFromText(query)
}

var destinationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\btrip to ([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*)`),
	regexp.MustCompile(`\bvisit ([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*)`),
	regexp.MustCompile(`\bfrom [A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)* to ([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*)`),
	regexp.MustCompile(`\bto ([A-Z][a-zA-Z]+(?: [A-Z][a-zA-Z]+)*)`),
}

func destinationFromText(query string) string {
	for _, p := range destinationPatterns {
		if m := p.FindStringSubmatch(query); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	for _, word := range strings.Fields(query) {
		trimmed := strings.Trim(word, ",.!?")
		if len(trimmed) > 3 && trimmed[0] >= 'A' && trimmed[0] <= 'Z' {
			return trimmed
		}
	}
	return unknownDestination
}

func sanitizeDestination(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "unknown") || strings.EqualFold(s, unknownDestination) {
		return ""
	}
	return s
}

var (
	isoRangePattern = regexp.MustCompile(`from\s+(\d{4}-\d{2}-\d{2})\s+to\s+(\d{4}-\d{2}-\d{2})`)
	// e.g. "from June 5 to June 12, 2026" or "from June 5 to 12, 2026"
	verboseRangePattern = regexp.MustCompile(`(?i)from\s+([a-z]+)\s+(\d{1,2})(?:,?\s*(\d{4}))?\s+to\s+(?:([a-z]+)\s+)?(\d{1,2})(?:,?\s*(\d{4}))?`)
)

// resolveDates prefers dates from the model, then dates written in the
// query text, then a default window a month out.
func (e *Extractor) resolveDates(raw rawExtraction, query string) (string, string) {
	dep, ret := validDate(raw.DepartureDate), validDate(raw.ReturnDate)
	if dep != "" && ret != "" {
		return dep, ret
	}

	if m := isoRangePattern.FindStringSubmatch(query); m != nil {
		if validDate(m[1]) != "" && validDate(m[2]) != "" {
			return m[1], m[2]
		}
	}

	if d, r, ok := e.parseVerboseRange(query); ok {
		return d, r
	}

	depDay := e.now().AddDate(0, 0, defaultDepartureOffsetDays)
	retDay := depDay.AddDate(0, 0, defaultTripLengthDays)
	return depDay.Format(dateLayout), retDay.Format(dateLayout)
}

func (e *Extractor) parseVerboseRange(query string) (string, string, bool) {
	m := verboseRangePattern.FindStringSubmatch(query)
	if m == nil {
		return "", "", false
	}

	depMonth, depDay, depYear := m[1], m[2], m[3]
	retMonth, retDay, retYear := m[4], m[5], m[6]
	if retMonth == "" {
		retMonth = depMonth
	}
	year := retYear
	if year == "" {
		year = depYear
	}
	if year == "" {
		year = fmt.Sprintf("%d", e.now().Year()+1)
	}
	if depYear == "" {
		depYear = year
	}
	if retYear == "" {
		retYear = year
	}

	dep, err1 := time.Parse("January 2 2006", fmt.Sprintf("%s %s %s", title(depMonth), depDay, depYear))
	ret, err2 := time.Parse("January 2 2006", fmt.Sprintf("%s %s %s", title(retMonth), retDay, retYear))
	if err1 != nil || err2 != nil {
		return "", "", false
	}
	return dep.Format(dateLayout), ret.Format(dateLayout), true
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func validDate(s string) string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(dateLayout, s); err != nil {
		return ""
	}
	return s
}

// resolveAirports asks for IATA codes, validating strictly and keeping at
// most two alternates per side. A grounded search is the last resort and
// never overwrites a code that already validated.
func (e *Extractor) resolveAirports(ctx context.Context, originCity, destination, query string) (rawAirports, error) {
	prompt := fmt.Sprintf(`Identify the main airports for this trip. Respond with JSON only:
{"departure_airport": "XXX", "departure_alternatives": ["XXX"], "arrival_airport": "XXX", "arrival_alternatives": ["XXX"]}

All values must be 3-letter IATA codes. Origin city: %s. Destination: %s. Original request: %s`,
		orUnknown(originCity), destination, query)

	var airports rawAirports
	text, err := e.llm.GenerateJSON(ctx, prompt)
	if err == nil {
		if derr := decodeObject(text, &airports); derr != nil {
			e.logger.Warn("airport response unparseable", "error", derr)
		}
	} else {
		e.logger.Warn("airport extraction failed", "error", err)
	}
	airports = validateAirports(airports)

	if airports.DepartureAirport == "" || airports.ArrivalAirport == "" {
		grounded := e.groundedAirports(ctx, destination, query)
		if airports.DepartureAirport == "" {
			airports.DepartureAirport = grounded.DepartureAirport
			airports.DepartureAlternatives = grounded.DepartureAlternatives
		}
		if airports.ArrivalAirport == "" {
			airports.ArrivalAirport = grounded.ArrivalAirport
			airports.ArrivalAlternatives = grounded.ArrivalAlternatives
		}
	}

	if airports.DepartureAirport == "" || airports.ArrivalAirport == "" {
		return rawAirports{}, &ExtractionError{Reason: fmt.Sprintf("could not resolve airports for %q", destination)}
	}
	return airports, nil
}

func (e *Extractor) groundedAirports(ctx context.Context, destination, query string) rawAirports {
	prompt := fmt.Sprintf(`Search for the airports serving this trip and respond with JSON only:
{"departure_airport": "XXX", "departure_alternatives": [], "arrival_airport": "XXX", "arrival_alternatives": []}

Destination: %s. Request: %s`, destination, query)

	text, err := e.llm.GenerateGrounded(ctx, prompt)
	if err != nil {
		e.logger.Warn("grounded airport search failed", "error", err)
		return rawAirports{}
	}
	var airports rawAirports
	if err := decodeObject(text, &airports); err != nil {
		e.logger.Warn("grounded airport response unparseable", "error", err)
		return rawAirports{}
	}
	return validateAirports(airports)
}

const maxAlternates = 2

func validateAirports(a rawAirports) rawAirports {
	a.DepartureAirport = validCode(a.DepartureAirport)
	a.ArrivalAirport = validCode(a.ArrivalAirport)
	a.DepartureAlternatives = validAlternates(a.DepartureAlternatives, a.DepartureAirport)
	a.ArrivalAlternatives = validAlternates(a.ArrivalAlternatives, a.ArrivalAirport)
	return a
}

func validCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !models.ValidIATA(code) {
		return ""
	}
	return code
}

func validAlternates(codes []string, primary string) []string {
	var out []string
	seen := map[string]bool{primary: true}
	for _, c := range codes {
		code := validCode(c)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
		if len(out) == maxAlternates {
			break
		}
	}
	return out
}

func decodeObject(text string, v any) error {
	match := jsonObject.FindString(text)
	if match == "" {
		return fmt.Errorf("no JSON object in response")
	}
	return json.Unmarshal([]byte(match), v)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
