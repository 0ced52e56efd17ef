package session

import "blackjackbot/internal/game"

// Stats are the player's aggregates. HighestBankroll and
// LongestWinStreak are all-time; CurrentWinStreak and SessionHandsWon
// are zeroed when a new session starts. MostHandsWon is the high-water
// mark of SessionHandsWon.
type Stats struct {
	HighestBankroll  int `json:"highestBankroll"`
	LongestWinStreak int `json:"longestWinStreak"`
	MostHandsWon     int `json:"mostHandsWon"`
	BestPayout       int `json:"bestPayout"`
	CurrentWinStreak int `json:"currentWinStreak"`
	SessionHandsWon  int `json:"sessionHandsWon"`
}

func DefaultStats(balance int) Stats {
	return Stats{HighestBankroll: balance}
}

// WithBankroll records a server-confirmed balance; the high-water mark
// only ever rises.
func (s Stats) WithBankroll(balance int) Stats {
	if balance > s.HighestBankroll {
		s.HighestBankroll = balance
	}
	return s
}

// ApplyOutcome folds a resolved hand into the aggregates. Payout is
// the net amount won and only matters for wins.
func (s Stats) ApplyOutcome(outcome string, payout, balance int) Stats {
	s = s.WithBankroll(balance)

	switch outcome {
	case game.OutcomeWin:
		s.CurrentWinStreak++
		s.SessionHandsWon++
		if s.CurrentWinStreak > s.LongestWinStreak {
			s.LongestWinStreak = s.CurrentWinStreak
		}
		if s.SessionHandsWon > s.MostHandsWon {
			s.MostHandsWon = s.SessionHandsWon
		}
		if payout > s.BestPayout {
			s.BestPayout = payout
		}
	case game.OutcomeLoss, game.OutcomeTie:
		s.CurrentWinStreak = 0
	}

	return s
}

// ResetSession zeroes the session-scoped counters, keeping the
// all-time aggregates.
func (s Stats) ResetSession() Stats {
	s.CurrentWinStreak = 0
	s.SessionHandsWon = 0
	return s
}
