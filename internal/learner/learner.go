// Package learner derives threshold adjustment suggestions from the
// override audit trail. The heuristics are fixed rules, not a model: a run
// of near-threshold overrides means the threshold sits too low for this
// user's writing; a long quiet stretch above the default means it can relax
// back down.
package learner

import (
	"time"

	"github.com/draftguard/draftguard/internal/types"
)

const (
	// increaseWindow is the lookback for counting near-threshold overrides.
	increaseWindow = 30 * 24 * time.Hour

	// decreaseWindow is the quiet period required before proposing a reset.
	decreaseWindow = 60 * 24 * time.Hour

	// increaseMinOverrides is how many qualifying overrides trigger a raise.
	increaseMinOverrides = 3

	// qualifyingBand is the score band above the current threshold that
	// marks an override as "near threshold": [threshold, threshold+band).
	qualifyingBand = types.ThresholdStep
)

// Suggest evaluates the override history against the current threshold and
// returns at most one suggestion, or nil when no rule fires.
//
// Increase: >=3 overrides in the trailing 30 days with scores in
// [threshold, threshold+10) propose one step up, capped at the maximum. At
// the maximum already, the condition is reported as at_maximum with no
// numeric change.
//
// Decrease: zero overrides in the trailing 60 days with the threshold above
// the default propose a one-shot reset to the default.
func Suggest(history []*types.OverrideRecord, currentThreshold int, now time.Time) *types.ThresholdSuggestion {
	var (
		qualifying    int
		qualifyingSum float64
		recent60      int
	)

	for _, rec := range history {
		if rec == nil {
			continue
		}
		age := now.Sub(rec.Timestamp)
		if age < 0 || age > decreaseWindow {
			continue
		}
		recent60++

		if age > increaseWindow {
			continue
		}
		if rec.AIScore >= float64(currentThreshold) && rec.AIScore < float64(currentThreshold+qualifyingBand) {
			qualifying++
			qualifyingSum += rec.AIScore
		}
	}

	if qualifying >= increaseMinOverrides {
		avg := qualifyingSum / float64(qualifying)
		if currentThreshold >= types.ThresholdMax {
			return &types.ThresholdSuggestion{
				CurrentThreshold:        currentThreshold,
				SuggestedThreshold:      currentThreshold,
				SuccessfulOverrideCount: qualifying,
				AverageOverrideScore:    avg,
				Direction:               types.DirectionAtMaximum,
			}
		}
		suggested := currentThreshold + types.ThresholdStep
		if suggested > types.ThresholdMax {
			suggested = types.ThresholdMax
		}
		return &types.ThresholdSuggestion{
			CurrentThreshold:        currentThreshold,
			SuggestedThreshold:      suggested,
			SuccessfulOverrideCount: qualifying,
			AverageOverrideScore:    avg,
			Direction:               types.DirectionIncrease,
		}
	}

	if recent60 == 0 && currentThreshold > types.DefaultThreshold {
		return &types.ThresholdSuggestion{
			CurrentThreshold:   currentThreshold,
			SuggestedThreshold: types.DefaultThreshold,
			Direction:          types.DirectionDecrease,
		}
	}

	return nil
}
