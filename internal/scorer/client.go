// Package scorer is the HTTP client for the perplexity scoring backend.
// The backend is an opaque collaborator: it returns a numeric score plus
// per-sentence flags, and how the score is computed is none of our business.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/draftguard/draftguard/internal/types"
)

const (
	// DefaultTimeout bounds one scoring call. The gate treats a timeout
	// the same as any other scorer failure, so this only needs to keep
	// the UI from hanging.
	DefaultTimeout = 10 * time.Second

	// defaultRateLimit caps scoring calls per second. Regeneration can
	// fire evaluations in quick succession; the backend does not need to
	// absorb more than this.
	defaultRateLimit = rate.Limit(5)
	defaultRateBurst = 5
)

// Client implements the score provider against the HTTP backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Config holds scorer client configuration
type Config struct {
	// BaseURL of the scoring backend, without trailing slash.
	BaseURL string

	// Timeout per scoring call. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the transport, for tests. Timeout above is
	// ignored when set.
	HTTPClient *http.Client
}

// NewClient creates a new perplexity scorer client
func NewClient(cfg *Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(defaultRateLimit, defaultRateBurst),
	}, nil
}

// analyzeRequest is the analyze_perplexity request body
type analyzeRequest struct {
	Text      string `json:"text"`
	Threshold int    `json:"threshold"`
}

// AnalyzePerplexity scores the text against the threshold. Any transport or
// backend failure is returned as an error; the gate maps all of them to a
// pass.
func (c *Client) AnalyzePerplexity(ctx context.Context, text string, threshold int) (*types.ScoreResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	jsonBody, err := json.Marshal(analyzeRequest{Text: text, Threshold: threshold})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze_perplexity", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scoring request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("scoring backend returned %d: %s", resp.StatusCode, string(body))
	}

	var result types.ScoreResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode score response: %w", err)
	}
	return &result, nil
}
