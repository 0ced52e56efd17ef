package session

import (
	"blackjackbot/internal/api"
	"blackjackbot/internal/game"
)

// Event is a state-machine input. Reduce applies one to a Table; the
// controller decides which events fire and when, the reducer owns what
// they mean.
type Event interface {
	isEvent()
}

// Hydrated installs a full server snapshot, used on mount, resume and
// fresh start.
type Hydrated struct {
	Resp            *api.GameResponse
	FallbackMessage string
}

// BetPlaced commits a server-confirmed cumulative bet.
type BetPlaced struct {
	Amount  int
	Balance *int
}

// Dealt starts a round from the /start response.
type Dealt struct {
	Resp *api.GameResponse
}

// HandsUpdated replaces hand state after hit/split/double responses.
// Dealer cards are staged separately during the reveal.
type HandsUpdated struct {
	Resp *api.GameResponse
}

// HoleCardRevealed flips the dealer's hidden card.
type HoleCardRevealed struct{}

// DealerHandSet pins the visible dealer cards to an exact prefix of
// the final hand; one reveal step per event.
type DealerHandSet struct {
	Cards []game.Card
}

// RoundEnded closes the round: outcome message, balance, bet zeroed,
// betting reopened.
type RoundEnded struct {
	Message string
	Balance *int
}

// RoundSettled moves RoundOver back to Betting once the reveal
// sequence has fully rendered.
type RoundSettled struct{}

// MessageShown sets the status line without touching anything else.
type MessageShown struct {
	Text string
}

// DeckCountChanged, DealerRuleChanged and CardBackChanged are the
// settings edits, legal only while betting is open.
type DeckCountChanged struct{ Decks int }
type DealerRuleChanged struct{ HitsSoft17 bool }
type CardBackChanged struct{ Color string }

// InsuranceUpdated applies the /insurance response.
type InsuranceUpdated struct {
	Resp *api.GameResponse
}

func (Hydrated) isEvent()          {}
func (BetPlaced) isEvent()         {}
func (Dealt) isEvent()             {}
func (HandsUpdated) isEvent()      {}
func (HoleCardRevealed) isEvent()  {}
func (DealerHandSet) isEvent()     {}
func (RoundEnded) isEvent()        {}
func (RoundSettled) isEvent()      {}
func (MessageShown) isEvent()      {}
func (DeckCountChanged) isEvent()  {}
func (DealerRuleChanged) isEvent() {}
func (CardBackChanged) isEvent()   {}
func (InsuranceUpdated) isEvent()  {}
