package storage

import (
	"context"
	"time"

	"github.com/draftguard/draftguard/internal/storage/sqlite"
	"github.com/draftguard/draftguard/internal/types"
)

// Storage defines the persistence interface for the safety gate: the
// threshold setting, the append-only override audit trail, and suggestion
// dismissals. Threshold domain validation lives behind this boundary.
type Storage interface {
	// Settings
	GetSafetyThreshold(ctx context.Context) (int, error)
	SetSafetyThreshold(ctx context.Context, value int) error
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error

	// Override audit trail (append-only)
	RecordOverride(ctx context.Context, rec *types.OverrideRecord) (int64, error)
	ListOverridesSince(ctx context.Context, since time.Time) ([]*types.OverrideRecord, error)

	// Suggestion dismissals
	RecordSuggestionDismissal(ctx context.Context, fingerprint string, at time.Time) error
	GetSuggestionDismissal(ctx context.Context, fingerprint string) (time.Time, bool, error)

	Close() error
}

// New creates the default SQLite-backed storage at the given path.
func New(path string) (Storage, error) {
	return sqlite.New(path)
}
