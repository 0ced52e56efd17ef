package session

import "blackjackbot/internal/game"

// Phase is the UI state machine. The betting loop is
// Betting -> PlayerTurn -> DealerResolving -> RoundOver -> Betting;
// AwaitingResumeDecision occurs at most once, right after mount.
type Phase int

const (
	PhaseAwaitingResumeDecision Phase = iota
	PhaseBetting
	PhasePlayerTurn
	PhaseDealerResolving
	PhaseRoundOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingResumeDecision:
		return "awaiting_resume_decision"
	case PhaseBetting:
		return "betting"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealerResolving:
		return "dealer_resolving"
	case PhaseRoundOver:
		return "round_over"
	default:
		return "unknown"
	}
}

// Insurance is the side-bet sub-state. While Offered and not Resolved
// the regular actions are locked out.
type Insurance struct {
	Offered  bool   `json:"offered"`
	Resolved bool   `json:"resolved"`
	Bet      int    `json:"bet"`
	Outcome  string `json:"outcome,omitempty"`
	Max      int    `json:"max"`
}

func (i Insurance) Pending() bool {
	return i.Offered && !i.Resolved
}

// Table is the full session snapshot: everything the player sees plus
// the table settings. It is what gets persisted locally and what the
// presenter renders. The local copy is a cache; the server's /state
// response wins on every mount.
type Table struct {
	Phase              Phase       `json:"-"`
	PlayerHands        []game.Hand `json:"playerHands"`
	DealerHand         []game.Card `json:"dealerHand"`
	RevealDealerCard   bool        `json:"revealDealerCard"`
	Balance            int         `json:"balance"`
	CurrentBet         int         `json:"currentBet"`
	BettingOpen        bool        `json:"bettingOpen"`
	GameOver           bool        `json:"gameOver"`
	Message            string      `json:"message"`
	CardBackColor      string      `json:"cardBackColor"`
	NumberOfDecks      int         `json:"numberOfDecks"`
	DealerHitsOnSoft17 bool        `json:"dealerHitsOnSoft17"`
	DeckSize           int         `json:"deckSize"`
	Insurance          Insurance   `json:"insurance"`
	SessionID          string      `json:"sessionId"`
}

// HasLiveHand reports whether the table holds an in-progress round:
// cards on the felt, a standing bet, or betting already closed.
func (t Table) HasLiveHand() bool {
	for _, h := range t.PlayerHands {
		if len(h.Cards) > 0 {
			return true
		}
	}
	return len(t.DealerHand) > 0 || t.CurrentBet > 0 || !t.BettingOpen
}

// ActiveHand returns the hand currently in play, or nil.
func (t Table) ActiveHand() *game.Hand {
	i := game.ActiveHand(t.PlayerHands)
	if i < 0 {
		return nil
	}
	return &t.PlayerHands[i]
}

// CanDouble mirrors the UI gate: exactly two cards in the active hand
// and enough balance to cover the doubled bet.
func (t Table) CanDouble() bool {
	h := t.ActiveHand()
	return h != nil && h.CanDouble() && h.Bet <= t.Balance
}

// CanSplit mirrors the UI gate: a splittable pair and enough balance
// for the second bet.
func (t Table) CanSplit() bool {
	h := t.ActiveHand()
	return h != nil && h.CanSplit() && h.Bet <= t.Balance
}
