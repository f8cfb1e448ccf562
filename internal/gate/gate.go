package gate

import (
	"context"
	"fmt"

	"github.com/draftguard/draftguard/internal/types"
)

// Decision is the outcome of a gate evaluation
type Decision string

const (
	DecisionPass Decision = "pass"
	DecisionWarn Decision = "warn"
)

// Outcome represents the result of one safety gate evaluation. Result is
// always set for a warn decision; for a pass it is set only when the scorer
// actually answered (a pass caused by scorer unavailability carries none).
type Outcome struct {
	Decision Decision
	Result   *types.ScoreResult
}

// Warned reports whether the outcome requires the warning flow.
func (o *Outcome) Warned() bool {
	return o.Decision == DecisionWarn
}

// ScoreProvider is an interface for the perplexity scoring backend.
// This allows for pluggable scorer implementations (e.g., for testing).
type ScoreProvider interface {
	// AnalyzePerplexity scores the text against the threshold and returns
	// the score plus per-sentence flags.
	AnalyzePerplexity(ctx context.Context, text string, threshold int) (*types.ScoreResult, error)
}

// ThresholdSource provides the currently active safety threshold.
type ThresholdSource interface {
	GetSafetyThreshold(ctx context.Context) (int, error)
}

// Gate decides whether content may be copied directly or needs the warning
// flow. It is deliberately availability-biased: when the scorer cannot be
// reached the copy action passes rather than blocking the user, and a
// threshold read failure falls back to the compiled-in default. Neither
// failure is logged here.
type Gate struct {
	source   ThresholdSource
	provider ScoreProvider
}

// Config holds safety gate configuration
type Config struct {
	Source   ThresholdSource
	Provider ScoreProvider
}

// New creates a new safety gate
func New(cfg *Config) (*Gate, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("threshold source is required")
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("score provider is required")
	}
	return &Gate{
		source:   cfg.Source,
		provider: cfg.Provider,
	}, nil
}

// Evaluate scores the content against the active threshold and decides
// pass or warn. Warn fires iff score >= threshold (a score exactly at the
// threshold warns). The threshold is read fresh on every call so the
// outcome never reflects a stale value.
func (g *Gate) Evaluate(ctx context.Context, content string) *Outcome {
	threshold, err := g.source.GetSafetyThreshold(ctx)
	if err != nil {
		threshold = types.DefaultThreshold
	}

	result, err := g.provider.AnalyzePerplexity(ctx, content, threshold)
	if err != nil || result == nil {
		// Scorer unavailable: the copy action stays available
		return &Outcome{Decision: DecisionPass}
	}

	// The result must carry the threshold that was actually applied
	result.Threshold = threshold

	if result.Score >= float64(threshold) {
		return &Outcome{Decision: DecisionWarn, Result: result}
	}
	return &Outcome{Decision: DecisionPass, Result: result}
}
