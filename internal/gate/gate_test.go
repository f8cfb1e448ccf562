package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/draftguard/draftguard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSource returns a fixed threshold or a fixed error
type mockSource struct {
	threshold int
	err       error
	calls     int
}

func (m *mockSource) GetSafetyThreshold(ctx context.Context) (int, error) {
	m.calls++
	return m.threshold, m.err
}

// mockProvider returns a fixed score or a fixed error
type mockProvider struct {
	score   float64
	flagged []types.FlaggedSentence
	err     error

	lastText      string
	lastThreshold int
}

func (m *mockProvider) AnalyzePerplexity(ctx context.Context, text string, threshold int) (*types.ScoreResult, error) {
	m.lastText = text
	m.lastThreshold = threshold
	if m.err != nil {
		return nil, m.err
	}
	return &types.ScoreResult{
		Score:            m.score,
		Threshold:        threshold,
		FlaggedSentences: m.flagged,
	}, nil
}

func TestEvaluateBoundary(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		score     float64
		wantWarn  bool
	}{
		{"score well below threshold passes", 200, 160, false},
		{"score above threshold warns", 150, 160, true},
		{"score exactly at threshold warns", 180, 180, true},
		{"score just below threshold passes", 180, 179.999, false},
		{"fractional score above warns", 180, 195.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(&Config{
				Source:   &mockSource{threshold: tt.threshold},
				Provider: &mockProvider{score: tt.score},
			})
			require.NoError(t, err)

			outcome := g.Evaluate(context.Background(), "some generated text")
			assert.Equal(t, tt.wantWarn, outcome.Warned())
			require.NotNil(t, outcome.Result)
			assert.Equal(t, tt.threshold, outcome.Result.Threshold)
			assert.Equal(t, tt.score, outcome.Result.Score)
		})
	}
}

func TestEvaluateScorerUnavailable(t *testing.T) {
	g, err := New(&Config{
		Source:   &mockSource{threshold: 180},
		Provider: &mockProvider{err: errors.New("connection refused")},
	})
	require.NoError(t, err)

	// Availability over enforcement: an unreachable scorer never blocks copy
	outcome := g.Evaluate(context.Background(), "text")
	assert.Equal(t, DecisionPass, outcome.Decision)
	assert.Nil(t, outcome.Result)
}

func TestEvaluateThresholdReadFailure(t *testing.T) {
	provider := &mockProvider{score: 170}
	g, err := New(&Config{
		Source:   &mockSource{err: errors.New("database locked")},
		Provider: provider,
	})
	require.NoError(t, err)

	// Falls back to the compiled-in default and still evaluates
	outcome := g.Evaluate(context.Background(), "text")
	assert.Equal(t, DecisionPass, outcome.Decision)
	assert.Equal(t, types.DefaultThreshold, provider.lastThreshold)

	// Same fallback threshold, warning score
	provider.score = 180
	outcome = g.Evaluate(context.Background(), "text")
	assert.Equal(t, DecisionWarn, outcome.Decision)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, types.DefaultThreshold, outcome.Result.Threshold)
}

func TestEvaluateReadsThresholdFresh(t *testing.T) {
	source := &mockSource{threshold: 180}
	provider := &mockProvider{score: 185}
	g, err := New(&Config{Source: source, Provider: provider})
	require.NoError(t, err)

	outcome := g.Evaluate(context.Background(), "text")
	assert.Equal(t, DecisionWarn, outcome.Decision)
	assert.Equal(t, 180, outcome.Result.Threshold)

	// Threshold raised between evaluations: next outcome must see the new value
	source.threshold = 190
	outcome = g.Evaluate(context.Background(), "text")
	assert.Equal(t, DecisionPass, outcome.Decision)
	assert.Equal(t, 190, outcome.Result.Threshold)
	assert.Equal(t, 2, source.calls)
}

func TestEvaluatePassesContentAndFlags(t *testing.T) {
	flagged := []types.FlaggedSentence{
		{Text: "In conclusion, it is worth noting that.", Suggestion: "So, worth noting:", Index: 3},
	}
	provider := &mockProvider{score: 195.5, flagged: flagged}
	g, err := New(&Config{
		Source:   &mockSource{threshold: 180},
		Provider: provider,
	})
	require.NoError(t, err)

	outcome := g.Evaluate(context.Background(), "the full proposal text")
	assert.Equal(t, "the full proposal text", provider.lastText)
	require.True(t, outcome.Warned())
	assert.Equal(t, flagged, outcome.Result.FlaggedSentences)
}

func TestNewValidation(t *testing.T) {
	_, err := New(&Config{Provider: &mockProvider{}})
	assert.Error(t, err)

	_, err = New(&Config{Source: &mockSource{}})
	assert.Error(t, err)
}
