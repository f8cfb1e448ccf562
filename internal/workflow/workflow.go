// Package workflow implements the copy-action state machine: a gate
// evaluation either copies directly or raises a warning, and the warning
// resolves through edit, regenerate, or an explicitly confirmed override.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/draftguard/draftguard/internal/clipboard"
	"github.com/draftguard/draftguard/internal/gate"
	"github.com/draftguard/draftguard/internal/regen"
	"github.com/draftguard/draftguard/internal/types"
)

// State identifies where a session is in the copy flow.
type State string

const (
	StateIdle               State = "idle"
	StateEvaluating         State = "evaluating"
	StatePassCopied         State = "pass_copied"
	StateWarningShown       State = "warning_shown"
	StateEdited             State = "edited"
	StateConfirmingOverride State = "confirming_override"
	StateOverrideCopied     State = "override_copied"
)

// Terminal reports whether the session has ended.
func (s State) Terminal() bool {
	switch s {
	case StatePassCopied, StateEdited, StateOverrideCopied:
		return true
	}
	return false
}

var (
	// ErrInvalidTransition is returned when an action does not apply to
	// the session's current state.
	ErrInvalidTransition = errors.New("invalid workflow transition")

	// ErrCancelled is returned when the override surface was dismissed
	// while a clipboard write was in flight; the write result is discarded.
	ErrCancelled = errors.New("override cancelled")
)

// Evaluator is the gate surface the workflow drives. *gate.Gate satisfies it.
type Evaluator interface {
	Evaluate(ctx context.Context, content string) *gate.Outcome
}

// AuditRecorder persists completed overrides. Recording is best-effort: a
// failure is logged but never undoes an already-completed copy.
type AuditRecorder interface {
	RecordOverride(ctx context.Context, rec *types.OverrideRecord) (int64, error)
}

// Regenerator asks the proposal pipeline for a rewrite at the given
// humanization intensity.
type Regenerator interface {
	Regenerate(ctx context.Context, content string, intensity types.Intensity) (string, error)
}

// ConfirmationPrompt describes the secondary override surface. It is a
// distinct surface, not a flag on the warning dialog, and it always starts
// focused on the cancel action: confirming must be a separate deliberate
// activation, never the carry-over of a confirm keypress from the warning.
type ConfirmationPrompt struct {
	Score           float64
	Threshold       int
	Consequences    string
	DefaultToCancel bool
}

// Session runs one copy attempt for one piece of content. Single-flow: one
// evaluation runs to completion before the next may begin, and no lock is
// held across a collaborator call.
type Session struct {
	id         uuid.UUID
	proposalID int64

	gate        Evaluator
	clip        clipboard.Writer
	audit       AuditRecorder
	regenerator Regenerator
	logger      *slog.Logger
	now         func() time.Time

	mu             sync.Mutex
	state          State
	content        string
	result         *types.ScoreResult
	ladder         *regen.Ladder
	confirmGranted bool
	epoch          uint64 // bumped on cancel; invalidates in-flight writes
}

// Config holds workflow session configuration
type Config struct {
	ProposalID int64
	Content    string

	// Intensity is the humanization intensity the content was generated
	// with; the regeneration ladder starts here.
	Intensity types.Intensity

	Gate      Evaluator
	Clipboard clipboard.Writer
	Audit     AuditRecorder

	// Regenerator is optional; when nil the regenerate action is hidden.
	Regenerator Regenerator

	// Logger for best-effort failures. Defaults to slog.Default.
	Logger *slog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// NewSession creates a new copy workflow session
func NewSession(cfg *Config) (*Session, error) {
	if cfg.Gate == nil {
		return nil, fmt.Errorf("gate is required")
	}
	if cfg.Clipboard == nil {
		return nil, fmt.Errorf("clipboard writer is required")
	}
	if cfg.Audit == nil {
		return nil, fmt.Errorf("audit recorder is required")
	}
	if cfg.Content == "" {
		return nil, fmt.Errorf("content is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Session{
		id:          uuid.New(),
		proposalID:  cfg.ProposalID,
		gate:        cfg.Gate,
		clip:        cfg.Clipboard,
		audit:       cfg.Audit,
		regenerator: cfg.Regenerator,
		logger:      logger,
		now:         now,
		state:       StateIdle,
		content:     cfg.Content,
		ladder:      regen.NewLadder(cfg.Intensity),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the score result backing the current warning, or nil.
func (s *Session) Result() *types.ScoreResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Content returns the content the session currently holds (regeneration
// replaces it).
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Attempts returns the regeneration attempts so far.
func (s *Session) Attempts() []regen.Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ladder.Attempts()
}

// Evaluate runs the safety gate on the session content. A pass copies the
// content and ends the session; a warn surfaces the warning state. On a
// pass whose clipboard write fails, the session returns to idle and the
// error is returned; re-running Evaluate is the retry path.
func (s *Session) Evaluate(ctx context.Context) (State, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return s.state, fmt.Errorf("%w: evaluate from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateEvaluating
	content := s.content
	s.mu.Unlock()

	outcome := s.gate.Evaluate(ctx, content)

	s.mu.Lock()
	if outcome.Warned() {
		s.state = StateWarningShown
		s.result = outcome.Result
		s.mu.Unlock()
		return StateWarningShown, nil
	}
	s.result = outcome.Result
	s.mu.Unlock()

	if err := s.clip.Write(ctx, content); err != nil {
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

// Edit resolves the warning by handing control back to the editor. No copy
// occurs and no audit record is written.
func (s *Session) Edit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateWarningShown {
		return fmt.Errorf("%w: edit from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateEdited
	return nil
}

// RequestOverride moves from the warning to the distinct confirmation
// surface and returns its prompt.
func (s *Session) RequestOverride() (*ConfirmationPrompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateWarningShown {
		return nil, fmt.Errorf("%w: override from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateConfirmingOverride
	return &ConfirmationPrompt{
		Score:     s.result.Score,
		Threshold: s.result.Threshold,
		Consequences: "This text scored above your AI-detectability threshold. " +
			"Copying it anyway may make the submission identifiable as AI-generated, " +
			"and the override will be recorded.",
		DefaultToCancel: true,
	}, nil
}

// CancelOverride returns from the confirmation surface to the warning,
// unchanged. Any confirmation already granted (e.g. before a failed write)
// is revoked, and an in-flight clipboard write can no longer complete the
// override.
func (s *Session) CancelOverride() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfirmingOverride {
		return fmt.Errorf("%w: cancel override from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateWarningShown
	s.confirmGranted = false
	s.epoch++
	return nil
}

// Dismiss handles a cancel signal (escape key, close button). It always
// maps to the safe transition for the current state and never to confirm.
// On a terminal state it is a no-op.
func (s *Session) Dismiss() error {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	switch state {
	case StateWarningShown:
		return s.Edit()
	case StateConfirmingOverride:
		return s.CancelOverride()
	default:
		return nil
	}
}

// ConfirmOverride is the explicit activation of the override accept action.
// On success the content is copied, the session ends, and the override is
// recorded best-effort. On a clipboard failure the confirmation stays
// granted: RetryCopy retries the write without re-prompting.
func (s *Session) ConfirmOverride(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateConfirmingOverride {
		s.mu.Unlock()
		return fmt.Errorf("%w: confirm override from %s", ErrInvalidTransition, s.state)
	}
	s.confirmGranted = true
	s.mu.Unlock()

	return s.performOverrideCopy(ctx)
}

// RetryCopy retries the clipboard write after a failed ConfirmOverride.
// The safety confirmation already granted is honored, not re-prompted.
func (s *Session) RetryCopy(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateConfirmingOverride || !s.confirmGranted {
		s.mu.Unlock()
		return fmt.Errorf("%w: retry copy without granted confirmation", ErrInvalidTransition)
	}
	s.mu.Unlock()

	return s.performOverrideCopy(ctx)
}

// performOverrideCopy writes the clipboard and commits the override. The
// cancellation check happens after the write returns and before the
// terminal state commits: a dismissal during the write wins.
func (s *Session) performOverrideCopy(ctx context.Context) error {
	s.mu.Lock()
	content := s.content
	epoch := s.epoch
	s.mu.Unlock()

	writeErr := s.clip.Write(ctx, content)

	s.mu.Lock()
	if s.epoch != epoch || s.state != StateConfirmingOverride {
		s.mu.Unlock()
		return ErrCancelled
	}
	if writeErr != nil {
		// Confirmation stays granted; the caller may retry the write.
		s.mu.Unlock()
		return fmt.Errorf("clipboard write failed: %w", writeErr)
	}

	s.state = StateOverrideCopied
	rec := &types.OverrideRecord{
		ProposalID:    s.proposalID,
		AIScore:       s.result.Score,
		Threshold:     s.result.Threshold,
		RegenAttempts: s.ladder.AttemptCount(),
		Timestamp:     s.now().UTC(),
	}
	s.mu.Unlock()

	// The copy is done and the safety decision acted upon; a recorder
	// failure must not roll it back.
	if _, err := s.audit.RecordOverride(ctx, rec); err != nil {
		s.logger.Warn("failed to record safety override",
			"proposal_id", rec.ProposalID,
			"score", rec.AIScore,
			"error", err)
	}
	return nil
}
