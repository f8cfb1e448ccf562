// Package notify connects the threshold learner to whatever surface shows
// suggestions to the user. The presenter is injected: the core never
// renders anything, it only routes the user's decision back into the
// validated persistence path.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/draftguard/draftguard/internal/learner"
	"github.com/draftguard/draftguard/internal/types"
)

// Decision is the user's response to a threshold suggestion.
type Decision string

const (
	DecisionAccept      Decision = "accept"
	DecisionReject      Decision = "reject"
	DecisionRemindLater Decision = "remind_later"
)

// IsValid checks if the decision value is valid.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionAccept, DecisionReject, DecisionRemindLater:
		return true
	}
	return false
}

// Presenter shows a suggestion and returns the user's decision.
type Presenter interface {
	Present(ctx context.Context, suggestion *types.ThresholdSuggestion) (Decision, error)
}

// Dispatcher surfaces at most one pending suggestion through the presenter
// and applies the decision.
type Dispatcher struct {
	advisor   *learner.Advisor
	presenter Presenter
	logger    *slog.Logger
}

// Config holds dispatcher configuration
type Config struct {
	Advisor   *learner.Advisor
	Presenter Presenter
	Logger    *slog.Logger
}

// NewDispatcher creates a new suggestion dispatcher
func NewDispatcher(cfg *Config) (*Dispatcher, error) {
	if cfg.Advisor == nil {
		return nil, fmt.Errorf("advisor is required")
	}
	if cfg.Presenter == nil {
		return nil, fmt.Errorf("presenter is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		advisor:   cfg.Advisor,
		presenter: cfg.Presenter,
		logger:    logger,
	}, nil
}

// Run checks for a pending suggestion, presents it, and records the
// outcome. An accept persists the new threshold; reject and remind-later
// both dismiss the condition for the configured cooldown. Returns the
// decision taken, or empty when nothing was pending.
func (d *Dispatcher) Run(ctx context.Context) (Decision, error) {
	suggestion, err := d.advisor.Pending(ctx)
	if err != nil {
		return "", err
	}
	if suggestion == nil {
		return "", nil
	}

	decision, err := d.presenter.Present(ctx, suggestion)
	if err != nil {
		return "", fmt.Errorf("presenter failed: %w", err)
	}
	if !decision.IsValid() {
		return "", fmt.Errorf("invalid suggestion decision: %q", decision)
	}

	switch decision {
	case DecisionAccept:
		// An at_maximum report has no numeric change; treat accept as
		// acknowledgment and dismiss the condition instead.
		if suggestion.Direction == types.DirectionAtMaximum {
			if err := d.advisor.Dismiss(ctx, suggestion); err != nil {
				d.logger.Warn("failed to record suggestion acknowledgment", "error", err)
			}
			return decision, nil
		}
		if err := d.advisor.Apply(ctx, suggestion); err != nil {
			return "", err
		}
	case DecisionReject, DecisionRemindLater:
		if err := d.advisor.Dismiss(ctx, suggestion); err != nil {
			// The user's choice was honored in the UI; bookkeeping
			// failure only risks an early re-prompt
			d.logger.Warn("failed to record suggestion dismissal", "error", err)
		}
	}
	return decision, nil
}
