package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/draftguard/draftguard/internal/types"
)

func TestRecordOverride(t *testing.T) {
	ctx := context.Background()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer func() { _ = db.Close() }()

	rec := &types.OverrideRecord{
		ProposalID: 42,
		AIScore:    195.5,
		Threshold:  180,
	}

	id, err := db.RecordOverride(ctx, rec)
	if err != nil {
		t.Fatalf("RecordOverride failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero override ID")
	}
	if rec.Timestamp.IsZero() {
		t.Error("expected timestamp to be backfilled")
	}

	records, err := db.ListOverridesSince(ctx, time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("ListOverridesSince failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 override, got %d", len(records))
	}
	got := records[0]
	if got.ProposalID != 42 {
		t.Errorf("expected proposal ID 42, got %d", got.ProposalID)
	}
	if got.AIScore != 195.5 {
		t.Errorf("expected score 195.5, got %v", got.AIScore)
	}
	if got.Threshold != 180 {
		t.Errorf("expected threshold 180, got %d", got.Threshold)
	}
}

func TestRecordOverrideNil(t *testing.T) {
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.RecordOverride(context.Background(), nil); err == nil {
		t.Error("expected error for nil record")
	}
}

func TestListOverridesSinceWindow(t *testing.T) {
	ctx := context.Background()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()

	// One old record, two recent
	old := &types.OverrideRecord{ProposalID: 1, AIScore: 185, Threshold: 180, Timestamp: now.Add(-45 * 24 * time.Hour)}
	recent1 := &types.OverrideRecord{ProposalID: 2, AIScore: 182, Threshold: 180, Timestamp: now.Add(-10 * 24 * time.Hour)}
	recent2 := &types.OverrideRecord{ProposalID: 3, AIScore: 188, Threshold: 180, Timestamp: now.Add(-time.Hour)}

	for _, rec := range []*types.OverrideRecord{old, recent1, recent2} {
		if _, err := db.RecordOverride(ctx, rec); err != nil {
			t.Fatalf("RecordOverride failed: %v", err)
		}
	}

	records, err := db.ListOverridesSince(ctx, now.Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("ListOverridesSince failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 overrides in 30-day window, got %d", len(records))
	}

	// Oldest first
	if records[0].ProposalID != 2 || records[1].ProposalID != 3 {
		t.Errorf("expected ordering [2 3], got [%d %d]", records[0].ProposalID, records[1].ProposalID)
	}
}

func TestSuggestionDismissals(t *testing.T) {
	ctx := context.Background()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Unknown fingerprint
	_, found, err := db.GetSuggestionDismissal(ctx, "increase:180->190")
	if err != nil {
		t.Fatalf("GetSuggestionDismissal failed: %v", err)
	}
	if found {
		t.Error("expected no dismissal for unknown fingerprint")
	}

	at := time.Now().UTC().Truncate(time.Second)
	if err := db.RecordSuggestionDismissal(ctx, "increase:180->190", at); err != nil {
		t.Fatalf("RecordSuggestionDismissal failed: %v", err)
	}

	got, found, err := db.GetSuggestionDismissal(ctx, "increase:180->190")
	if err != nil {
		t.Fatalf("GetSuggestionDismissal failed: %v", err)
	}
	if !found {
		t.Fatal("expected dismissal to be found")
	}
	if !got.Equal(at) {
		t.Errorf("expected dismissal time %v, got %v", at, got)
	}

	// Re-dismissing the same condition replaces the timestamp
	later := at.Add(time.Hour)
	if err := db.RecordSuggestionDismissal(ctx, "increase:180->190", later); err != nil {
		t.Fatalf("RecordSuggestionDismissal update failed: %v", err)
	}
	got, _, err = db.GetSuggestionDismissal(ctx, "increase:180->190")
	if err != nil {
		t.Fatalf("GetSuggestionDismissal failed: %v", err)
	}
	if !got.Equal(later) {
		t.Errorf("expected updated dismissal time %v, got %v", later, got)
	}
}
