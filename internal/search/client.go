package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/journezy/tripplanner/internal/models"
	"github.com/journezy/tripplanner/internal/ratelimit"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// ErrMissingAPIKey is returned at construction when no search credential
// is configured.
var ErrMissingAPIKey = errors.New("search: SERPAPI_API_KEY not set")

// ProviderError wraps a failure from one named search engine.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// FlightQuery parameterizes one one-way or round-trip provider call.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Currency      string
	DirectOnly    bool
}

// HotelQuery parameterizes one lodging provider call.
type HotelQuery struct {
	Query    string
	CheckIn  string
	CheckOut string
	Currency string
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client is the conventional search provider: a thin typed wrapper over
// the SerpAPI engines (google_flights, google_hotels, google). All
// normalization from provider-native shapes happens here.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *ratelimit.ProviderLimiter
}

func NewClient(cfg Config, limiter *ratelimit.ProviderLimiter) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
	}, nil
}

// SearchFlights queries the flights engine and returns normalized
// options, best and other candidates merged.
func (c *Client) SearchFlights(ctx context.Context, q FlightQuery) ([]models.FlightOption, error) {
	stops := "2"
	if q.DirectOnly {
		stops = "0"
	}
	tripType := "2" // one way
	if q.ReturnDate != "" {
		tripType = "1"
	}

	params := url.Values{
		"engine":        {"google_flights"},
		"hl":            {"en"},
		"departure_id":  {q.Origin},
		"arrival_id":    {q.Destination},
		"outbound_date": {q.DepartureDate},
		"stops":         {stops},
		"currency":      {q.Currency},
		"type":          {tripType},
	}
	if q.ReturnDate != "" {
		params.Set("return_date", q.ReturnDate)
	}

	var resp rawFlightsResponse
	if err := c.get(ctx, ratelimit.ProviderFlights, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &ProviderError{Provider: "google_flights", Err: errors.New(resp.Error)}
	}

	raw := append(resp.BestFlights, resp.OtherFlights...)
	options := make([]models.FlightOption, 0, len(raw))
	for _, f := range raw {
		options = append(options, normalizeFlight(f, q.Currency))
	}
	return options, nil
}

// SearchHotels queries the hotels engine and returns normalized options.
func (c *Client) SearchHotels(ctx context.Context, q HotelQuery) ([]models.HotelOption, error) {
	params := url.Values{
		"engine":         {"google_hotels"},
		"q":              {q.Query},
		"hl":             {"en"},
		"gl":             {"us"},
		"check_in_date":  {q.CheckIn},
		"check_out_date": {q.CheckOut},
		"currency":       {q.Currency},
	}

	var resp rawHotelsResponse
	if err := c.get(ctx, ratelimit.ProviderHotels, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &ProviderError{Provider: "google_hotels", Err: errors.New(resp.Error)}
	}

	options := make([]models.HotelOption, 0, len(resp.Properties))
	for _, h := range resp.Properties {
		options = append(options, normalizeHotel(h))
	}
	return options, nil
}

// SearchWeb issues a general web search and returns whichever of the
// three result shapes the provider chose to populate.
func (c *Client) SearchWeb(ctx context.Context, query string) (WebResults, error) {
	params := url.Values{
		"engine":        {"google"},
		"q":             {query},
		"google_domain": {"google.com"},
		"gl":            {"us"},
		"hl":            {"en"},
	}

	var resp rawWebResponse
	if err := c.get(ctx, ratelimit.ProviderWeb, params, &resp); err != nil {
		return WebResults{}, err
	}
	if resp.Error != "" {
		return WebResults{}, &ProviderError{Provider: "google", Err: errors.New(resp.Error)}
	}

	var results WebResults
	if resp.TopSights != nil {
		for _, s := range resp.TopSights.Sights {
			results.Sights = append(results.Sights, normalizeSight(s))
		}
	}
	for _, r := range resp.OrganicResults {
		results.Organic = append(results.Organic, normalizeWebResult(r))
	}
	for _, r := range parseLocalResults(resp.LocalResults) {
		results.Local = append(results.Local, normalizeWebResult(r))
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, provider string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, provider); err != nil {
			return err
		}
	}

	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{Provider: provider, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{Provider: provider, Err: err}
	}
	return nil
}
