package api

import "blackjackbot/internal/game"

// GameResponse is the server's game snapshot. Every game-changing
// endpoint returns it; /bet returns only the balance field. Optional
// numerics are pointers so an absent field is distinguishable from
// zero and never clobbers local state.
type GameResponse struct {
	PlayerHands        []game.Hand `json:"playerHands"`
	DealerHand         []game.Card `json:"dealerHand"`
	GameOver           bool        `json:"gameOver"`
	Balance            *int        `json:"balance"`
	CurrentBet         *int        `json:"currentBet"`
	BettingOpen        *bool       `json:"bettingOpen"`
	DeckSize           *int        `json:"deckSize"`
	NumberOfDecks      *int        `json:"numberOfDecks"`
	DealerHitsOnSoft17 bool        `json:"dealerHitsOnSoft17"`
	PlayerWins         bool        `json:"playerWins"`
	Tie                bool        `json:"tie"`
	InsuranceOffered   bool        `json:"insuranceOffered"`
	InsuranceResolved  bool        `json:"insuranceResolved"`
	InsuranceBet       int         `json:"insuranceBet"`
	InsuranceOutcome   string      `json:"insuranceOutcome,omitempty"`
	MaxInsuranceBet    int         `json:"maxInsuranceBet"`
}

// InsurancePending reports whether the server is waiting on the
// player's insurance decision.
func (r *GameResponse) InsurancePending() bool {
	return r.InsuranceOffered && !r.InsuranceResolved
}
