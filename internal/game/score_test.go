package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(values ...string) []Card {
	out := make([]Card, 0, len(values))
	for _, v := range values {
		out = append(out, Card{Value: v, Suit: "Spades"})
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		hand []Card
		want int
	}{
		{"empty hand", nil, 0},
		{"face cards", cards("K", "Q", "J"), 30},
		{"blackjack", cards("A", "K"), 21},
		{"ace demoted", cards("A", "9", "5"), 15},
		{"two aces", cards("A", "A"), 12},
		{"two aces demoted", cards("A", "A", "K"), 12},
		{"three aces", cards("A", "A", "A"), 13},
		{"soft seventeen", cards("A", "6"), 17},
		{"hard bust", cards("K", "Q", "5"), 25},
		{"ten stays ten", cards("10", "9"), 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.hand))
		})
	}
}

func TestScoreDemotesAcesOnlyWhenNeeded(t *testing.T) {
	// With an ace in hand the score stays at or under 21 whenever a
	// demotion can get it there.
	hand := cards("A", "5")
	for _, extra := range []string{"2", "3", "4", "5"} {
		hand = append(hand, cards(extra)...)
		require.LessOrEqual(t, Score(hand), 21, "ace should absorb %v", extra)
	}
}

func TestIsBust(t *testing.T) {
	assert.False(t, IsBust(cards("K", "Q")))
	assert.True(t, IsBust(cards("K", "Q", "5")))
	assert.False(t, IsBust(cards("A", "K", "Q")), "ace demotes to dodge the bust")
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, IsBlackjack(cards("A", "K")))
	assert.True(t, IsBlackjack(cards("10", "A")))
	assert.False(t, IsBlackjack(cards("7", "7", "7")), "21 in three cards is not blackjack")
	assert.False(t, IsBlackjack(cards("A", "9")))
}

func TestHandCanSplit(t *testing.T) {
	assert.True(t, Hand{Cards: cards("8", "8")}.CanSplit())
	assert.True(t, Hand{Cards: cards("K", "10")}.CanSplit(), "equal rank value, not equal symbol")
	assert.False(t, Hand{Cards: cards("8", "9")}.CanSplit())
	assert.False(t, Hand{Cards: cards("8", "8", "8")}.CanSplit())
}

func TestActiveHand(t *testing.T) {
	hands := []Hand{
		{Cards: cards("8", "8"), IsStanding: true},
		{Cards: cards("K", "5"), IsTurn: true},
	}
	assert.Equal(t, 1, ActiveHand(hands))

	// No turn flag: first unfinished hand acts.
	hands[1].IsTurn = false
	assert.Equal(t, 1, ActiveHand(hands))

	hands[1].IsBusted = true
	assert.Equal(t, -1, ActiveHand(hands))
}
