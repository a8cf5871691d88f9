package domain

import "time"

// streakResetWindow is the maximum gap between hits before the streak
// starts over.
const streakResetWindow = 48 * time.Hour

// StreakState is the streak-relevant slice of an account document.
type StreakState struct {
	Streak  int
	LastHit *time.Time
}

// NextStreak applies one qualifying hit at `now`. The first hit ever starts
// the streak at 1; a gap of more than 48 hours resets it to 1; anything up
// to and including 48 hours increments it. LastHit always moves to `now`.
func NextStreak(prev StreakState, now time.Time) StreakState {
	next := StreakState{Streak: 1, LastHit: &now}
	if prev.LastHit != nil && now.Sub(*prev.LastHit) <= streakResetWindow {
		next.Streak = prev.Streak + 1
	}
	return next
}
