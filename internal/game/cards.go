package game

// Card is issued by the game server and never constructed locally.
type Card struct {
	Value string `json:"value"`
	Suit  string `json:"suit"`
}

var CardValues = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9, "10": 10,
	"J": 10, "Q": 10, "K": 10, "A": 11,
}

const (
	OutcomeWin  = "WIN"
	OutcomeLoss = "LOSS"
	OutcomeTie  = "TIE"
)

// Hand mirrors the server's hand object. More than one hand exists
// only after a split.
type Hand struct {
	Cards          []Card `json:"cards"`
	Bet            int    `json:"bet"`
	IsTurn         bool   `json:"isTurn"`
	IsStanding     bool   `json:"isStanding"`
	IsBusted       bool   `json:"isBusted"`
	HasDoubledDown bool   `json:"hasDoubledDown"`
	Outcome        string `json:"outcome,omitempty"`
}

func (h Hand) Score() int {
	return Score(h.Cards)
}

// CanSplit reports whether the hand is two cards of equal rank value.
// The balance check belongs to the caller.
func (h Hand) CanSplit() bool {
	if len(h.Cards) != 2 {
		return false
	}
	return CardValues[h.Cards[0].Value] == CardValues[h.Cards[1].Value]
}

func (h Hand) CanDouble() bool {
	return len(h.Cards) == 2 && !h.HasDoubledDown
}

// ActiveHand returns the index of the hand holding the turn, or the
// first unfinished hand when the server flags none. -1 means no hand
// can act.
func ActiveHand(hands []Hand) int {
	for i, h := range hands {
		if h.IsTurn {
			return i
		}
	}
	for i, h := range hands {
		if !h.IsStanding && !h.IsBusted {
			return i
		}
	}
	return -1
}
