package bot

import (
	"fmt"
	"strings"

	"blackjackbot/internal/game"
	"blackjackbot/internal/session"
)

var suitGlyphs = map[string]string{
	"hearts":   "♥",
	"diamonds": "♦",
	"clubs":    "♣",
	"spades":   "♠",
}

func formatCard(c game.Card) string {
	glyph, ok := suitGlyphs[strings.ToLower(c.Suit)]
	if !ok {
		glyph = c.Suit
	}
	return c.Value + glyph
}

func formatCards(cards []game.Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, formatCard(c))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func cardBack(color string) string {
	if color == "blue" {
		return "🟦"
	}
	return "🟥"
}

// formatDealer hides the hole card behind the card back until the
// reveal flag flips, showing "?" for the total.
func formatDealer(t session.Table) string {
	if len(t.DealerHand) == 0 {
		return "🃏 Dealer: —"
	}

	if !t.RevealDealerCard {
		return fmt.Sprintf("🃏 Dealer: [%s %s] (?)",
			formatCard(t.DealerHand[0]), cardBack(t.CardBackColor))
	}

	return fmt.Sprintf("🃏 Dealer: %s (%d)",
		formatCards(t.DealerHand), game.Score(t.DealerHand))
}

func outcomeBadge(outcome string) string {
	switch outcome {
	case game.OutcomeWin:
		return " 🏆"
	case game.OutcomeLoss:
		return " ❌"
	case game.OutcomeTie:
		return " 🤝"
	default:
		return ""
	}
}

func formatPlayerHands(t session.Table) string {
	if len(t.PlayerHands) == 0 {
		return "🎴 You: —"
	}

	if len(t.PlayerHands) == 1 {
		h := t.PlayerHands[0]
		return fmt.Sprintf("🎴 You: %s (%d)%s",
			formatCards(h.Cards), h.Score(), outcomeBadge(h.Outcome))
	}

	var sb strings.Builder
	for i, h := range t.PlayerHands {
		marker := " "
		if h.IsTurn {
			marker = "▶"
		}
		sb.WriteString(fmt.Sprintf("🎴%s Hand %d: %s (%d) — bet %d%s",
			marker, i+1, formatCards(h.Cards), h.Score(), h.Bet, outcomeBadge(h.Outcome)))
		if h.IsBusted {
			sb.WriteString(" 💥")
		}
		if i < len(t.PlayerHands)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// RenderTable draws the whole table message.
func RenderTable(t session.Table) string {
	var sb strings.Builder

	if t.Phase == session.PhaseAwaitingResumeDecision {
		sb.WriteString("💾 We saved your last game.\n")
		sb.WriteString("Continue where you left off or start a new one?")
		return sb.String()
	}

	sb.WriteString(formatDealer(t))
	sb.WriteString("\n")
	sb.WriteString(formatPlayerHands(t))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("💵 Balance: $%d • Bet: $%d\n", t.Balance, t.CurrentBet))

	deckLabel := "1 Deck"
	if t.NumberOfDecks != 1 {
		deckLabel = fmt.Sprintf("%d Decks", t.NumberOfDecks)
	}
	ruleLabel := "Dealer stands on soft 17"
	if t.DealerHitsOnSoft17 {
		ruleLabel = "Dealer hits soft 17"
	}
	sb.WriteString(deckLabel + " • " + ruleLabel)
	if t.DeckSize > 0 {
		sb.WriteString(fmt.Sprintf(" • %d cards remain", t.DeckSize))
	}

	if t.Insurance.Pending() {
		sb.WriteString("\n\n🛡 Dealer shows an ace. Insurance?")
	}

	if t.Message != "" {
		sb.WriteString("\n\n" + t.Message)
	}

	if t.Balance == 0 && t.BettingOpen && t.GameOver {
		sb.WriteString("\n\nBankroll empty. Start a new game to reload the fun.")
	}

	return sb.String()
}

// RenderStats draws the stats panel.
func RenderStats(s session.Stats) string {
	return fmt.Sprintf(
		"📊 Stats\n\n"+
			"💵 Highest Bankroll: $%d\n"+
			"🔥 Longest Win Streak: %d\n"+
			"🏆 Hands Won This Game: %d\n"+
			"💰 Best Single-Hand Payout: $%d",
		s.HighestBankroll, s.LongestWinStreak, s.MostHandsWon, s.BestPayout)
}
