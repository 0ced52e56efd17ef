package bot

import (
	"fmt"

	"blackjackbot/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackDeal    = "deal"
	CallbackHit     = "hit"
	CallbackStand   = "stand"
	CallbackDouble  = "double"
	CallbackSplit   = "split"
	CallbackResume  = "resume"
	CallbackFresh   = "fresh"
	CallbackInsure  = "insure"
	CallbackDecline = "no_insurance"
	CallbackStats   = "stats"
	CallbackReset   = "stats_reset"

	chipPrefix  = "chip:"
	decksPrefix = "decks:"
	soft17On    = "soft17:on"
	soft17Off   = "soft17:off"
	backRed     = "back:red"
	backBlue    = "back:blue"
)

// TableKeyboard builds the controls for the current phase: chips plus
// Deal while betting is open, the action row during the player's turn,
// the insurance decision while that sub-state is pending, nothing at
// all mid-reveal.
func TableKeyboard(t session.Table, chips []int) tgbotapi.InlineKeyboardMarkup {
	switch {
	case t.Phase == session.PhaseAwaitingResumeDecision:
		return ResumeKeyboard()

	case t.Insurance.Pending():
		return InsuranceKeyboard(t.Insurance.Max)

	case t.Phase == session.PhaseDealerResolving || t.Phase == session.PhaseRoundOver:
		return tgbotapi.NewInlineKeyboardMarkup()

	case t.BettingOpen:
		return bettingKeyboard(t, chips)

	default:
		return actionKeyboard(t)
	}
}

func bettingKeyboard(t session.Table, chips []int) tgbotapi.InlineKeyboardMarkup {
	chipRow := make([]tgbotapi.InlineKeyboardButton, 0, len(chips))
	for _, value := range chips {
		chipRow = append(chipRow, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("🪙 %d", value),
			fmt.Sprintf("%s%d", chipPrefix, value),
		))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{chipRow}
	if t.CurrentBet > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎬 Deal", CallbackDeal),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func actionKeyboard(t session.Table) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("👊 Hit", CallbackHit),
		tgbotapi.NewInlineKeyboardButtonData("✋ Stand", CallbackStand),
	}

	if t.CanDouble() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("💰 Double", CallbackDouble))
	}
	if t.CanSplit() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✂️ Split", CallbackSplit))
	}

	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func ResumeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Resume", CallbackResume),
			tgbotapi.NewInlineKeyboardButtonData("🆕 Start New", CallbackFresh),
		),
	)
}

func InsuranceKeyboard(maxBet int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🛡 Insure (%d)", maxBet),
				CallbackInsure,
			),
			tgbotapi.NewInlineKeyboardButtonData("🙅 No thanks", CallbackDecline),
		),
	)
}

func StatsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Reset Stats", CallbackReset),
		),
	)
}

// SettingsKeyboard edits the table rules; every button is a toggle
// that re-renders the settings message.
func SettingsKeyboard(t session.Table) tgbotapi.InlineKeyboardMarkup {
	deckRow := []tgbotapi.InlineKeyboardButton{}
	for _, n := range []int{1, 2, 4, 6, 8} {
		label := fmt.Sprintf("%d", n)
		if t.NumberOfDecks == n {
			label = fmt.Sprintf("• %d •", n)
		}
		deckRow = append(deckRow, tgbotapi.NewInlineKeyboardButtonData(
			label, fmt.Sprintf("%s%d", decksPrefix, n),
		))
	}

	soft17 := tgbotapi.NewInlineKeyboardButtonData("Dealer hits soft 17: Off", soft17On)
	if t.DealerHitsOnSoft17 {
		soft17 = tgbotapi.NewInlineKeyboardButtonData("Dealer hits soft 17: On", soft17Off)
	}

	backRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(cardBackLabel(t, "red"), backRed),
		tgbotapi.NewInlineKeyboardButtonData(cardBackLabel(t, "blue"), backBlue),
	)

	return tgbotapi.NewInlineKeyboardMarkup(
		deckRow,
		tgbotapi.NewInlineKeyboardRow(soft17),
		backRow,
	)
}

func cardBackLabel(t session.Table, color string) string {
	label := "🟥 Red"
	if color == "blue" {
		label = "🟦 Blue"
	}
	if t.CardBackColor == color {
		label = "• " + label + " •"
	}
	return label
}
