// Package regen implements the bounded humanization ladder used when the
// user regenerates a flagged proposal instead of editing it. Intensity only
// ever moves up within a session and the attempt count is capped.
package regen

import (
	"fmt"

	"github.com/draftguard/draftguard/internal/types"
)

// MaxAttempts is the maximum number of regenerations in one session.
const MaxAttempts = 3

// Reason explains why regeneration is unavailable.
type Reason string

const (
	ReasonAvailable    Reason = ""
	ReasonMaxIntensity Reason = "already at maximum humanization intensity"
	ReasonMaxAttempts  Reason = "maximum regeneration attempts reached"
)

// ErrUnavailable is returned when Advance is called while the ladder is
// exhausted. Callers should consult Available for the reason to display.
var ErrUnavailable = fmt.Errorf("regeneration unavailable")

// Attempt is one regeneration within a session. Ephemeral: attempts are
// never persisted, they exist for the user's score comparison only.
type Attempt struct {
	Number        int             // 1..MaxAttempts
	IntensityUsed types.Intensity // intensity the regeneration ran with
	PreviousScore float64         // score before this attempt
	NewScore      float64         // score after this attempt
}

// Ladder tracks humanization intensity and attempt count for one generation
// session. Not safe for concurrent use; a session is single-flow.
type Ladder struct {
	current  types.Intensity
	attempts []Attempt
}

// NewLadder starts a ladder at the given intensity (typically the intensity
// the proposal was originally generated with).
func NewLadder(start types.Intensity) *Ladder {
	if !start.IsValid() {
		start = types.IntensityOff
	}
	return &Ladder{current: start}
}

// Current returns the intensity most recently used.
func (l *Ladder) Current() types.Intensity {
	return l.current
}

// AttemptCount returns how many regenerations have run in this session.
func (l *Ladder) AttemptCount() int {
	return len(l.attempts)
}

// Attempts returns the attempts so far, oldest first.
func (l *Ladder) Attempts() []Attempt {
	out := make([]Attempt, len(l.attempts))
	copy(out, l.attempts)
	return out
}

// Available reports whether another regeneration may run, and if not, why.
func (l *Ladder) Available() (bool, Reason) {
	if len(l.attempts) >= MaxAttempts {
		return false, ReasonMaxAttempts
	}
	if _, ok := l.current.Next(); !ok {
		return false, ReasonMaxIntensity
	}
	return true, ReasonAvailable
}

// Advance moves the ladder up one rung and opens a new attempt, returning
// the intensity the regeneration should run with. Returns ErrUnavailable
// when the ladder is exhausted.
func (l *Ladder) Advance() (types.Intensity, error) {
	if ok, _ := l.Available(); !ok {
		return l.current, ErrUnavailable
	}

	next, _ := l.current.Next()
	l.current = next
	l.attempts = append(l.attempts, Attempt{
		Number:        len(l.attempts) + 1,
		IntensityUsed: next,
	})
	return next, nil
}

// RecordScores fills in the score comparison for the attempt opened by the
// last Advance. The comparison is informational only; it has no bearing on
// the gating decision.
func (l *Ladder) RecordScores(previous, current float64) {
	if len(l.attempts) == 0 {
		return
	}
	last := &l.attempts[len(l.attempts)-1]
	last.PreviousScore = previous
	last.NewScore = current
}
