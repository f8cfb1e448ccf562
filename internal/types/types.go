package types

import (
	"fmt"
	"time"
)

// Threshold domain constants. The safety threshold is a perplexity score:
// content scoring at or above it triggers a warning before copy.
const (
	ThresholdMin     = 140
	ThresholdMax     = 220
	ThresholdStep    = 10
	DefaultThreshold = 180
)

// ThresholdValidationError reports a threshold value outside the allowed
// domain. Validation happens at the persistence boundary; callers upstream
// treat the stored value as trusted.
type ThresholdValidationError struct {
	Value int
}

func (e *ThresholdValidationError) Error() string {
	return fmt.Sprintf("invalid safety threshold %d: must be in [%d,%d] and a multiple of %d",
		e.Value, ThresholdMin, ThresholdMax, ThresholdStep)
}

// ValidateThreshold checks that v is within [140,220] and a multiple of 10.
func ValidateThreshold(v int) error {
	if v < ThresholdMin || v > ThresholdMax || v%ThresholdStep != 0 {
		return &ThresholdValidationError{Value: v}
	}
	return nil
}

// FlaggedSentence is one sentence the scorer considers likely to read as
// AI-generated, with its rewrite suggestion and position in the source text.
type FlaggedSentence struct {
	Text       string `json:"text"`
	Suggestion string `json:"suggestion"`
	Index      int    `json:"index"`
}

// ScoreResult is the outcome of one perplexity evaluation. Ephemeral: it is
// produced per gate evaluation and never persisted. Threshold always holds
// the value that was active at the moment of evaluation.
type ScoreResult struct {
	Score            float64           `json:"score"`
	Threshold        int               `json:"threshold"`
	FlaggedSentences []FlaggedSentence `json:"flaggedSentences"`
}

// OverrideRecord is one completed safety override: the user copied content
// despite an active warning. Append-only; created only when the override
// path reached a successful clipboard write.
type OverrideRecord struct {
	ID            int64     `json:"id,omitempty"`
	ProposalID    int64     `json:"proposalId"`
	AIScore       float64   `json:"aiScore"`
	Threshold     int       `json:"threshold"`
	RegenAttempts int       `json:"regenAttempts,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// SuggestionDirection classifies a threshold suggestion.
type SuggestionDirection string

const (
	DirectionIncrease  SuggestionDirection = "increase"
	DirectionDecrease  SuggestionDirection = "decrease"
	DirectionAtMaximum SuggestionDirection = "at_maximum"
)

// IsValid checks if the direction value is valid.
func (d SuggestionDirection) IsValid() bool {
	switch d {
	case DirectionIncrease, DirectionDecrease, DirectionAtMaximum:
		return true
	}
	return false
}

// ThresholdSuggestion is a recommended threshold adjustment computed from
// override history. Computed on demand; only its dismissal is remembered.
type ThresholdSuggestion struct {
	CurrentThreshold        int                 `json:"currentThreshold"`
	SuggestedThreshold      int                 `json:"suggestedThreshold"`
	SuccessfulOverrideCount int                 `json:"successfulOverrideCount"`
	AverageOverrideScore    float64             `json:"averageOverrideScore"`
	Direction               SuggestionDirection `json:"direction"`
}

// Fingerprint identifies the underlying condition of a suggestion so a
// dismissal can suppress re-firing until the inputs change.
func (s *ThresholdSuggestion) Fingerprint() string {
	return fmt.Sprintf("%s:%d->%d", s.Direction, s.CurrentThreshold, s.SuggestedThreshold)
}
