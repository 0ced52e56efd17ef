package session

// User-facing outcome strings, kept verbatim across the bot.
const (
	MsgWin        = "Win! 🥳 You outplayed the house."
	MsgTie        = "Push 🤝 Chips stay put."
	MsgDealerWin  = "Dealer takes it. 💼 Try again!"
	MsgBust       = "Bust! 🚨 Dealer scoops the pot."
	MsgBetTooHigh = "Easy, high roller. That bet's bigger than your stack."

	MsgInsuranceWon  = "Insurance pays! 🛡 Dealer had it."
	MsgInsuranceLost = "Insurance lost. 🫡 Dealer had nothing."
)
