package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/draftguard/draftguard/internal/types"
)

// safetyThresholdKey is the settings key for the persisted safety threshold.
// The value is a string-encoded integer in [140,220], step 10.
const safetyThresholdKey = "safety_threshold"

// GetConfig retrieves a config value by key. Returns an empty string (not an
// error) when the key does not exist.
func (s *SQLiteStorage) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get config %s: %w", key, err)
	}
	return value, nil
}

// SetConfig stores a config value, replacing any existing value for the key.
func (s *SQLiteStorage) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO config (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set config %s: %w", key, err)
	}
	return nil
}

// GetSafetyThreshold reads the persisted safety threshold. A missing key
// yields the compiled-in default. A stored value that fails to parse or
// falls outside the domain is reported as an error so the caller can apply
// its own fallback policy.
func (s *SQLiteStorage) GetSafetyThreshold(ctx context.Context) (int, error) {
	raw, err := s.GetConfig(ctx, safetyThresholdKey)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return types.DefaultThreshold, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt safety threshold %q: %w", raw, err)
	}
	if err := types.ValidateThreshold(value); err != nil {
		return 0, err
	}
	return value, nil
}

// SetSafetyThreshold persists a new safety threshold. This is the single
// write path for the setting: manual changes and accepted suggestions both
// land here, so the domain check cannot be bypassed.
func (s *SQLiteStorage) SetSafetyThreshold(ctx context.Context, value int) error {
	if err := types.ValidateThreshold(value); err != nil {
		return err
	}
	return s.SetConfig(ctx, safetyThresholdKey, strconv.Itoa(value))
}
