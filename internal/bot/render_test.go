package bot

import (
	"strings"
	"testing"

	"blackjackbot/internal/game"
	"blackjackbot/internal/session"

	"github.com/stretchr/testify/assert"
)

func card(value, suit string) game.Card {
	return game.Card{Value: value, Suit: suit}
}

func TestFormatDealerHidesHoleCard(t *testing.T) {
	table := session.NewTable("s1")
	table.DealerHand = []game.Card{card("A", "Spades"), card("K", "Hearts")}

	hidden := formatDealer(table)
	assert.Contains(t, hidden, "A♠")
	assert.NotContains(t, hidden, "K♥", "hole card stays hidden")
	assert.Contains(t, hidden, "(?)", "total masked until reveal")

	table.RevealDealerCard = true
	shown := formatDealer(table)
	assert.Contains(t, shown, "K♥")
	assert.Contains(t, shown, "(21)")
}

func TestFormatPlayerHandsSplit(t *testing.T) {
	table := session.NewTable("s1")
	table.PlayerHands = []game.Hand{
		{Cards: []game.Card{card("8", "Clubs"), card("3", "Hearts")}, Bet: 10, IsTurn: true},
		{Cards: []game.Card{card("8", "Spades"), card("K", "Diamonds")}, Bet: 10, Outcome: game.OutcomeWin},
	}

	out := formatPlayerHands(table)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "▶", "active hand is marked")
	assert.Contains(t, lines[1], "🏆", "resolved hand shows its outcome")
	assert.Contains(t, lines[1], "bet 10")
}

func TestRenderTableResumePrompt(t *testing.T) {
	table := session.NewTable("s1")
	table.Phase = session.PhaseAwaitingResumeDecision

	out := RenderTable(table)
	assert.Contains(t, out, "saved your last game")
	assert.NotContains(t, out, "Balance", "no table state shown before the decision")
}

func TestRenderTableFooter(t *testing.T) {
	table := session.NewTable("s1")
	table.NumberOfDecks = 6
	table.DeckSize = 47
	table.DealerHitsOnSoft17 = true
	table.Balance = 975
	table.CurrentBet = 25

	out := RenderTable(table)
	assert.Contains(t, out, "6 Decks")
	assert.Contains(t, out, "Dealer hits soft 17")
	assert.Contains(t, out, "47 cards remain")
	assert.Contains(t, out, "Balance: $975")
	assert.Contains(t, out, "Bet: $25")
}

func TestRenderTableInsurancePrompt(t *testing.T) {
	table := session.NewTable("s1")
	table.Insurance = session.Insurance{Offered: true, Max: 10}

	out := RenderTable(table)
	assert.Contains(t, out, "Insurance?")
}

func TestTableKeyboardByPhase(t *testing.T) {
	chips := []int{5, 10, 25, 100}

	betting := session.NewTable("s1")
	kb := TableKeyboard(betting, chips)
	assert.Len(t, kb.InlineKeyboard, 1, "chips only until a bet exists")
	assert.Len(t, kb.InlineKeyboard[0], 4)

	betting.CurrentBet = 25
	kb = TableKeyboard(betting, chips)
	assert.Len(t, kb.InlineKeyboard, 2, "deal button appears with a standing bet")

	turn := session.NewTable("s1")
	turn.BettingOpen = false
	turn.Balance = 990
	turn.PlayerHands = []game.Hand{{
		Cards:  []game.Card{card("8", "Clubs"), card("8", "Hearts")},
		Bet:    10,
		IsTurn: true,
	}}
	turn.Phase = session.PhasePlayerTurn
	kb = TableKeyboard(turn, chips)
	assert.Len(t, kb.InlineKeyboard[0], 4, "hit, stand, double and split for a pair")

	resolving := turn
	resolving.Phase = session.PhaseDealerResolving
	kb = TableKeyboard(resolving, chips)
	assert.Empty(t, kb.InlineKeyboard, "no controls mid-reveal")

	insurance := turn
	insurance.Insurance = session.Insurance{Offered: true, Max: 5}
	kb = TableKeyboard(insurance, chips)
	assert.Len(t, kb.InlineKeyboard[0], 2, "only the insurance decision is offered")

	prompt := session.NewTable("s1")
	prompt.Phase = session.PhaseAwaitingResumeDecision
	kb = TableKeyboard(prompt, chips)
	assert.Len(t, kb.InlineKeyboard[0], 2, "resume or start new")
}
