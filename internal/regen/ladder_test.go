package regen

import (
	"testing"

	"github.com/draftguard/draftguard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLadderEscalation(t *testing.T) {
	l := NewLadder(types.IntensityOff)

	intensity, err := l.Advance()
	require.NoError(t, err)
	assert.Equal(t, types.IntensityLight, intensity)

	intensity, err = l.Advance()
	require.NoError(t, err)
	assert.Equal(t, types.IntensityMedium, intensity)

	intensity, err = l.Advance()
	require.NoError(t, err)
	assert.Equal(t, types.IntensityHeavy, intensity)

	// Three attempts used: both caps are now in play, attempts wins
	available, reason := l.Available()
	assert.False(t, available)
	assert.Equal(t, ReasonMaxAttempts, reason)

	_, err = l.Advance()
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, l.AttemptCount())
}

func TestLadderStopsAtHeavy(t *testing.T) {
	// Starting at medium leaves only one rung before heavy
	l := NewLadder(types.IntensityMedium)

	intensity, err := l.Advance()
	require.NoError(t, err)
	assert.Equal(t, types.IntensityHeavy, intensity)

	available, reason := l.Available()
	assert.False(t, available)
	assert.Equal(t, ReasonMaxIntensity, reason)

	_, err = l.Advance()
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, types.IntensityHeavy, l.Current())
	assert.Equal(t, 1, l.AttemptCount())
}

func TestLadderMonotonic(t *testing.T) {
	l := NewLadder(types.IntensityOff)

	var used []types.Intensity
	for {
		intensity, err := l.Advance()
		if err != nil {
			break
		}
		used = append(used, intensity)
	}

	for i := 1; i < len(used); i++ {
		if used[i] <= used[i-1] {
			t.Fatalf("ladder revisited a lower or equal intensity: %v", used)
		}
	}
}

func TestLadderAttemptNumbers(t *testing.T) {
	l := NewLadder(types.IntensityOff)

	_, err := l.Advance()
	require.NoError(t, err)
	l.RecordScores(195.5, 188.2)

	_, err = l.Advance()
	require.NoError(t, err)
	l.RecordScores(188.2, 176.0)

	attempts := l.Attempts()
	require.Len(t, attempts, 2)
	assert.Equal(t, 1, attempts[0].Number)
	assert.Equal(t, 2, attempts[1].Number)
	assert.Equal(t, types.IntensityLight, attempts[0].IntensityUsed)
	assert.Equal(t, types.IntensityMedium, attempts[1].IntensityUsed)
	assert.Equal(t, 195.5, attempts[0].PreviousScore)
	assert.Equal(t, 188.2, attempts[0].NewScore)
	assert.Equal(t, 176.0, attempts[1].NewScore)
}

func TestLadderInvalidStart(t *testing.T) {
	l := NewLadder(types.Intensity(99))
	assert.Equal(t, types.IntensityOff, l.Current())
}

func TestRecordScoresWithoutAdvance(t *testing.T) {
	l := NewLadder(types.IntensityOff)
	// Must not panic
	l.RecordScores(100, 90)
	assert.Equal(t, 0, l.AttemptCount())
}
