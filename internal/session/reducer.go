package session

import "blackjackbot/internal/api"

// NewTable is the pre-mount default: fresh bankroll, betting open,
// house defaults for the table settings.
func NewTable(sessionID string) Table {
	return Table{
		Phase:         PhaseBetting,
		Balance:       1000,
		BettingOpen:   true,
		CardBackColor: "red",
		NumberOfDecks: 1,
		SessionID:     sessionID,
	}
}

// Reduce is the pure transition function of the state machine. It
// never performs I/O; the controller sequences events around it.
func Reduce(t Table, ev Event) Table {
	switch ev := ev.(type) {
	case Hydrated:
		return reduceHydrated(t, ev)

	case BetPlaced:
		t.CurrentBet = ev.Amount
		if ev.Balance != nil {
			t.Balance = *ev.Balance
		}
		t.Message = ""
		return t

	case Dealt:
		r := ev.Resp
		t.PlayerHands = r.PlayerHands
		t.DealerHand = r.DealerHand
		if r.DeckSize != nil {
			t.DeckSize = *r.DeckSize
		}
		t.GameOver = false
		t.RevealDealerCard = false
		t.Message = ""
		t.BettingOpen = false
		if r.CurrentBet != nil {
			t.CurrentBet = *r.CurrentBet
		}
		if r.Balance != nil {
			t.Balance = *r.Balance
		} else {
			t.Balance -= t.CurrentBet
		}
		t.Insurance = insuranceFrom(r)
		t.Phase = PhasePlayerTurn
		return t

	case HandsUpdated:
		r := ev.Resp
		if len(r.PlayerHands) > 0 {
			t.PlayerHands = r.PlayerHands
		}
		if r.DeckSize != nil {
			t.DeckSize = *r.DeckSize
		}
		if r.Balance != nil {
			t.Balance = *r.Balance
		}
		t.Insurance = insuranceFrom(r)
		return t

	case HoleCardRevealed:
		t.RevealDealerCard = true
		return t

	case DealerHandSet:
		t.DealerHand = ev.Cards
		t.Phase = PhaseDealerResolving
		return t

	case RoundEnded:
		t.GameOver = true
		t.RevealDealerCard = true
		t.BettingOpen = true
		t.CurrentBet = 0
		t.Message = ev.Message
		if ev.Balance != nil {
			t.Balance = *ev.Balance
		}
		t.Phase = PhaseRoundOver
		return t

	case RoundSettled:
		t.Phase = PhaseBetting
		return t

	case MessageShown:
		t.Message = ev.Text
		return t

	case DeckCountChanged:
		t.NumberOfDecks = ev.Decks
		t.DeckSize = ev.Decks * 52
		return t

	case DealerRuleChanged:
		t.DealerHitsOnSoft17 = ev.HitsSoft17
		return t

	case CardBackChanged:
		t.CardBackColor = ev.Color
		return t

	case InsuranceUpdated:
		r := ev.Resp
		t.Insurance = insuranceFrom(r)
		if r.Balance != nil {
			t.Balance = *r.Balance
		}
		return t

	default:
		return t
	}
}

func reduceHydrated(t Table, ev Hydrated) Table {
	r := ev.Resp
	if r == nil {
		return t
	}

	if r.Balance != nil {
		t.Balance = *r.Balance
	}
	t.PlayerHands = r.PlayerHands
	t.DealerHand = r.DealerHand
	t.GameOver = r.GameOver
	t.BettingOpen = true
	if r.BettingOpen != nil {
		t.BettingOpen = *r.BettingOpen
	}
	t.CurrentBet = 0
	if r.CurrentBet != nil {
		t.CurrentBet = *r.CurrentBet
	}
	t.NumberOfDecks = 1
	if r.NumberOfDecks != nil && *r.NumberOfDecks > 0 {
		t.NumberOfDecks = *r.NumberOfDecks
	}
	t.DealerHitsOnSoft17 = r.DealerHitsOnSoft17
	t.DeckSize = 0
	if r.DeckSize != nil {
		t.DeckSize = *r.DeckSize
	}
	// A hidden hole card only makes sense mid-round.
	t.RevealDealerCard = t.GameOver || t.BettingOpen
	t.Message = ev.FallbackMessage
	t.Insurance = insuranceFrom(r)

	if t.BettingOpen {
		t.Phase = PhaseBetting
	} else {
		t.Phase = PhasePlayerTurn
	}
	return t
}

func insuranceFrom(r *api.GameResponse) Insurance {
	return Insurance{
		Offered:  r.InsuranceOffered,
		Resolved: r.InsuranceResolved,
		Bet:      r.InsuranceBet,
		Outcome:  r.InsuranceOutcome,
		Max:      r.MaxInsuranceBet,
	}
}
