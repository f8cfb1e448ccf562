package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/draftguard/draftguard/internal/types"
)

// RecordOverride appends a completed safety override to the audit trail and
// returns its row ID. Timestamp defaults to now when unset.
func (s *SQLiteStorage) RecordOverride(ctx context.Context, rec *types.OverrideRecord) (int64, error) {
	if rec == nil {
		return 0, fmt.Errorf("override record is required")
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO safety_overrides (proposal_id, ai_score, threshold, regen_attempts, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ProposalID, rec.AIScore, rec.Threshold, rec.RegenAttempts, ts.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("failed to record override: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get override ID: %w", err)
	}
	rec.ID = id
	rec.Timestamp = ts
	return id, nil
}

// ListOverridesSince returns overrides recorded at or after the given time,
// oldest first.
func (s *SQLiteStorage) ListOverridesSince(ctx context.Context, since time.Time) ([]*types.OverrideRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, proposal_id, ai_score, threshold, regen_attempts, created_at
		FROM safety_overrides
		WHERE created_at >= ?
		ORDER BY created_at ASC
	`, since.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*types.OverrideRecord
	for rows.Next() {
		rec := &types.OverrideRecord{}
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.ProposalID, &rec.AIScore, &rec.Threshold, &rec.RegenAttempts, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse override timestamp %q: %w", createdAt, err)
		}
		rec.Timestamp = ts
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overrides: %w", err)
	}
	return records, nil
}
