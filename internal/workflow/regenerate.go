package workflow

import (
	"context"
	"fmt"

	"github.com/draftguard/draftguard/internal/regen"
)

// ReasonNotConfigured is reported when no regeneration pipeline is wired in.
const ReasonNotConfigured regen.Reason = "regeneration not available for this proposal"

// RegenerateAvailable reports whether the regenerate action should be
// offered, and if not, the reason to display. The action exists only while
// the warning is shown, below the attempt cap, and below heavy intensity.
func (s *Session) RegenerateAvailable() (bool, regen.Reason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateWarningShown {
		return false, ReasonNotConfigured
	}
	if s.regenerator == nil {
		return false, ReasonNotConfigured
	}
	return s.ladder.Available()
}

// Regenerate asks the pipeline for a rewrite one intensity rung up, then
// re-runs the gate on the new content. The score comparison against the
// previous attempt is recorded for display only; the fresh gate outcome
// alone decides pass or warn.
func (s *Session) Regenerate(ctx context.Context) (State, error) {
	s.mu.Lock()
	if s.state != StateWarningShown {
		s.mu.Unlock()
		return s.state, fmt.Errorf("%w: regenerate from %s", ErrInvalidTransition, s.state)
	}
	if s.regenerator == nil {
		s.mu.Unlock()
		return StateWarningShown, fmt.Errorf("%w: %s", regen.ErrUnavailable, ReasonNotConfigured)
	}
	if ok, reason := s.ladder.Available(); !ok {
		s.mu.Unlock()
		return StateWarningShown, fmt.Errorf("%w: %s", regen.ErrUnavailable, reason)
	}

	nextIntensity, _ := s.ladder.Current().Next()
	previousScore := s.result.Score
	content := s.content
	s.state = StateEvaluating
	s.mu.Unlock()

	rewritten, err := s.regenerator.Regenerate(ctx, content, nextIntensity)
	if err != nil {
		// The attempt is not consumed: nothing was generated or scored
		s.mu.Lock()
		s.state = StateWarningShown
		s.mu.Unlock()
		return StateWarningShown, fmt.Errorf("regeneration failed: %w", err)
	}

	outcome := s.gate.Evaluate(ctx, rewritten)

	s.mu.Lock()
	s.content = rewritten
	if _, err := s.ladder.Advance(); err != nil {
		// Cannot happen while single-flow: availability was checked above
		s.mu.Unlock()
		return StateWarningShown, err
	}
	newScore := 0.0
	if outcome.Result != nil {
		newScore = outcome.Result.Score
	}
	s.ladder.RecordScores(previousScore, newScore)

	if outcome.Warned() {
		s.state = StateWarningShown
		s.result = outcome.Result
		s.mu.Unlock()
		return StateWarningShown, nil
	}
	s.result = outcome.Result
	s.mu.Unlock()

	if err := s.clip.Write(ctx, rewritten); err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		return StateIdle, fmt.Errorf("clipboard write failed: %w", err)
	}

	s.mu.Lock()
	s.state = StatePassCopied
	s.mu.Unlock()
	return StatePassCopied, nil
}
