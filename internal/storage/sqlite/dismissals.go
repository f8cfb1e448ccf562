package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RecordSuggestionDismissal remembers that the user rejected (or deferred) a
// suggestion for the given condition fingerprint, replacing any earlier
// dismissal of the same condition.
func (s *SQLiteStorage) RecordSuggestionDismissal(ctx context.Context, fingerprint string, at time.Time) error {
	if fingerprint == "" {
		return fmt.Errorf("fingerprint is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suggestion_dismissals (fingerprint, dismissed_at) VALUES (?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET dismissed_at = excluded.dismissed_at
	`, fingerprint, at.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record suggestion dismissal: %w", err)
	}
	return nil
}

// GetSuggestionDismissal returns when the given condition was last dismissed.
// The second return is false when it never was.
func (s *SQLiteStorage) GetSuggestionDismissal(ctx context.Context, fingerprint string) (time.Time, bool, error) {
	var dismissedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT dismissed_at FROM suggestion_dismissals WHERE fingerprint = ?", fingerprint,
	).Scan(&dismissedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get suggestion dismissal: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, dismissedAt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse dismissal timestamp %q: %w", dismissedAt, err)
	}
	return ts, true, nil
}
