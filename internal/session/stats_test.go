package session

import (
	"testing"

	"blackjackbot/internal/game"

	"github.com/stretchr/testify/assert"
)

func TestStatsWithBankroll(t *testing.T) {
	s := DefaultStats(1000)

	s = s.WithBankroll(1200)
	assert.Equal(t, 1200, s.HighestBankroll)

	// The high-water mark never drops.
	s = s.WithBankroll(400)
	assert.Equal(t, 1200, s.HighestBankroll)
}

func TestStatsApplyOutcomeWin(t *testing.T) {
	s := DefaultStats(1000)

	s = s.ApplyOutcome(game.OutcomeWin, 20, 1040)

	assert.Equal(t, 1, s.CurrentWinStreak)
	assert.Equal(t, 1, s.SessionHandsWon)
	assert.Equal(t, 1, s.LongestWinStreak)
	assert.Equal(t, 1, s.MostHandsWon)
	assert.Equal(t, 20, s.BestPayout)
	assert.Equal(t, 1040, s.HighestBankroll)
}

func TestStatsApplyOutcomeLossResetsStreak(t *testing.T) {
	s := DefaultStats(1000)
	s = s.ApplyOutcome(game.OutcomeWin, 10, 1010)
	s = s.ApplyOutcome(game.OutcomeWin, 10, 1020)

	s = s.ApplyOutcome(game.OutcomeLoss, 0, 1000)

	assert.Equal(t, 0, s.CurrentWinStreak)
	assert.Equal(t, 2, s.LongestWinStreak, "longest streak survives the loss")
	assert.Equal(t, 2, s.SessionHandsWon, "hands won is not a streak")
}

func TestStatsApplyOutcomeTieResetsStreak(t *testing.T) {
	s := DefaultStats(1000)
	s = s.ApplyOutcome(game.OutcomeWin, 10, 1010)

	s = s.ApplyOutcome(game.OutcomeTie, 0, 1010)

	assert.Equal(t, 0, s.CurrentWinStreak)
	assert.Equal(t, 1, s.SessionHandsWon)
}

func TestStatsBestPayoutKeepsMaximum(t *testing.T) {
	s := DefaultStats(1000)
	s = s.ApplyOutcome(game.OutcomeWin, 40, 1040)
	s = s.ApplyOutcome(game.OutcomeWin, 15, 1055)

	assert.Equal(t, 40, s.BestPayout)
}

func TestStatsResetSession(t *testing.T) {
	s := DefaultStats(1000)
	s = s.ApplyOutcome(game.OutcomeWin, 25, 1025)

	s = s.ResetSession()

	assert.Equal(t, 0, s.CurrentWinStreak)
	assert.Equal(t, 0, s.SessionHandsWon)
	assert.Equal(t, 1025, s.HighestBankroll, "all-time aggregates survive")
	assert.Equal(t, 1, s.LongestWinStreak)
	assert.Equal(t, 25, s.BestPayout)
}
