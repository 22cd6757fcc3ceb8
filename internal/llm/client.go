package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/journezy/tripplanner/internal/ratelimit"
)

// ErrMissingAPIKey is returned at construction when no Gemini credential
// is configured. Callers treat this as fatal: no extraction means no run.
var ErrMissingAPIKey = errors.New("llm: GEMINI_API_KEY not set")

const defaultModel = "gemini-2.5-flash-lite"

type Config struct {
	APIKey string
	Model  string
}

// Client wraps the Gemini API behind the three call shapes the pipeline
// needs: plain generation, strict-JSON generation, and grounded
// generation backed by live web search.
type Client struct {
	client  *genai.Client
	model   string
	limiter *ratelimit.ProviderLimiter
	logger  *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, limiter *ratelimit.ProviderLimiter, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create client: %w", err)
	}

	return &Client{
		client:  client,
		model:   cfg.Model,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Generate sends a plain prompt and returns the response text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, nil)
}

// GenerateJSON sends a prompt with the strict-JSON response mode enabled.
// The returned text should be a JSON document, but callers still parse
// defensively since models occasionally wrap JSON in prose.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
}

// GenerateGrounded sends a prompt with the Google Search grounding tool
// attached, so the answer is built from live retrieval rather than model
// memory alone.
func (c *Client) GenerateGrounded(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	})
}

func (c *Client) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, ratelimit.ProviderGemini); err != nil {
			return "", err
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("llm: generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("llm: empty response")
	}
	return text, nil
}

// SummarizeFlights produces a short grounded summary (cheapest, fastest,
// fewest stops) of an already-formatted flights text block.
func (c *Client) SummarizeFlights(ctx context.Context, query, flightsText string) (string, error) {
	if flightsText == "" {
		return "No flights found for this route.", nil
	}

	prompt := fmt.Sprintf(
		"Given the user query: %s\n\n"+
			"Here are the flight options text (verbatim):\n%s\n\n"+
			"Summarize key options (cheapest, fastest, fewest stops) with prices and durations "+
			"strictly based on the provided text. Add concise guidance (1-2 lines).",
		query, flightsText)

	summary, err := c.GenerateGrounded(ctx, prompt)
	if err != nil {
		c.logger.Warn("grounded flight summary failed", "error", err)
		return "Grounded summary unavailable.", nil
	}
	return summary, nil
}
