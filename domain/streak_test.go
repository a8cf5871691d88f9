package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStreak_FirstHit(t *testing.T) {
	now := time.Now()

	next := NextStreak(StreakState{Streak: 0, LastHit: nil}, now)

	assert.Equal(t, 1, next.Streak)
	require.NotNil(t, next.LastHit)
	assert.Equal(t, now, *next.LastHit)
}

func TestNextStreak_Rule(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		streak     int
		gap        time.Duration
		wantStreak int
	}{
		{"increments within a day", 1, time.Hour, 2},
		{"increments at the 48h boundary", 5, 48 * time.Hour, 6},
		{"increments just under 48h", 5, 48*time.Hour - time.Second, 6},
		{"resets past 48h", 5, 49 * time.Hour, 1},
		{"resets just past 48h", 5, 48*time.Hour + time.Second, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := base
			now := base.Add(tt.gap)

			next := NextStreak(StreakState{Streak: tt.streak, LastHit: &last}, now)

			assert.Equal(t, tt.wantStreak, next.Streak)
			require.NotNil(t, next.LastHit)
			assert.Equal(t, now, *next.LastHit)
		})
	}
}

func TestNextStreak_Pure(t *testing.T) {
	last := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	now := last.Add(2 * time.Hour)
	prev := StreakState{Streak: 3, LastHit: &last}

	first := NextStreak(prev, now)
	second := NextStreak(prev, now)

	assert.Equal(t, first, second)
	// the input must not be mutated
	assert.Equal(t, 3, prev.Streak)
	assert.Equal(t, last, *prev.LastHit)
}
