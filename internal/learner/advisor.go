package learner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/draftguard/draftguard/internal/types"
)

// DefaultCooldown is how long a dismissed suggestion stays suppressed when
// no cooldown is configured.
const DefaultCooldown = 7 * 24 * time.Hour

// Store is the persistence surface the advisor needs: threshold setting,
// override history, and dismissal bookkeeping.
type Store interface {
	GetSafetyThreshold(ctx context.Context) (int, error)
	SetSafetyThreshold(ctx context.Context, value int) error
	ListOverridesSince(ctx context.Context, since time.Time) ([]*types.OverrideRecord, error)
	RecordSuggestionDismissal(ctx context.Context, fingerprint string, at time.Time) error
	GetSuggestionDismissal(ctx context.Context, fingerprint string) (time.Time, bool, error)
}

// Advisor surfaces threshold suggestions to the UI and records the user's
// decision. At most one suggestion is pending at a time, and a dismissed
// condition does not re-fire until its inputs change or the cooldown
// elapses.
type Advisor struct {
	store    Store
	cooldown time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// Config holds advisor configuration
type Config struct {
	Store Store

	// Cooldown suppresses a dismissed suggestion condition. Zero means
	// DefaultCooldown.
	Cooldown time.Duration

	// Logger for best-effort bookkeeping failures. Defaults to slog.Default.
	Logger *slog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewAdvisor creates a new threshold advisor
func NewAdvisor(cfg *Config) (*Advisor, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	a := &Advisor{
		store:    cfg.Store,
		cooldown: cfg.Cooldown,
		logger:   cfg.Logger,
		now:      cfg.Now,
	}
	if a.cooldown <= 0 {
		a.cooldown = DefaultCooldown
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a, nil
}

// Pending computes the current suggestion, filtered by dismissal cooldown.
// Returns nil when no rule fires or the fired condition was recently
// dismissed.
func (a *Advisor) Pending(ctx context.Context) (*types.ThresholdSuggestion, error) {
	current, err := a.store.GetSafetyThreshold(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read threshold: %w", err)
	}

	now := a.now()
	history, err := a.store.ListOverridesSince(ctx, now.Add(-decreaseWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load override history: %w", err)
	}

	suggestion := Suggest(history, current, now)
	if suggestion == nil {
		return nil, nil
	}

	dismissedAt, found, err := a.store.GetSuggestionDismissal(ctx, suggestion.Fingerprint())
	if err != nil {
		// Bookkeeping failure must not hide the suggestion
		a.logger.Warn("failed to check suggestion dismissal", "error", err)
		return suggestion, nil
	}
	if found && now.Sub(dismissedAt) < a.cooldown {
		return nil, nil
	}
	return suggestion, nil
}

// Apply accepts a suggestion, persisting the new threshold through the same
// validated write path a manual change uses. An at_maximum report carries
// no numeric change and cannot be applied.
func (a *Advisor) Apply(ctx context.Context, suggestion *types.ThresholdSuggestion) error {
	if suggestion == nil {
		return fmt.Errorf("suggestion is required")
	}
	if suggestion.Direction == types.DirectionAtMaximum {
		return fmt.Errorf("threshold already at maximum; nothing to apply")
	}
	if err := a.store.SetSafetyThreshold(ctx, suggestion.SuggestedThreshold); err != nil {
		return fmt.Errorf("failed to apply threshold adjustment: %w", err)
	}
	return nil
}

// Dismiss records a reject or remind-later decision so the same condition
// stays quiet for the cooldown period.
func (a *Advisor) Dismiss(ctx context.Context, suggestion *types.ThresholdSuggestion) error {
	if suggestion == nil {
		return fmt.Errorf("suggestion is required")
	}
	if err := a.store.RecordSuggestionDismissal(ctx, suggestion.Fingerprint(), a.now()); err != nil {
		return fmt.Errorf("failed to record dismissal: %w", err)
	}
	return nil
}
