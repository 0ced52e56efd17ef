package game

// Score returns the best total not exceeding 21 when aces can be
// demoted from 11 to 1, otherwise the minimal achievable total.
func Score(cards []Card) int {
	score := 0
	aces := 0

	for _, card := range cards {
		score += CardValues[card.Value]
		if card.Value == "A" {
			aces++
		}
	}

	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}

	return score
}

func IsBust(cards []Card) bool {
	return Score(cards) > 21
}

func IsBlackjack(cards []Card) bool {
	if len(cards) != 2 {
		return false
	}

	if Score(cards) != 21 {
		return false
	}

	hasAce, hasTen := false, false
	for _, card := range cards {
		if card.Value == "A" {
			hasAce = true
		}
		if CardValues[card.Value] == 10 {
			hasTen = true
		}
	}

	return hasAce && hasTen
}
