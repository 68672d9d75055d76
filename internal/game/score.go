package game

import (
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
)

// gardensDivisor is the number of owned cards each Gardens is worth a point for.
const gardensDivisor = 10

// Scores returns each player's victory points over every card they own.
func (a *Arena) Scores() []int {
	scores := make([]int, len(a.players))
	for i, p := range a.players {
		scores[i] = Score(a.catalog, p.Cards())
	}
	return scores
}

// Score totals the victory points of a deck.
func Score(catalog *cards.Catalog, deck []cards.Kind) int {
	total := 0
	for _, k := range deck {
		if k == cards.Gardens {
			total += len(deck) / gardensDivisor
			continue
		}
		total += catalog.VictoryPoints(k)
	}
	return total
}

// Winner returns the player with the most points. Ties go to the player
// seated first.
func (a *Arena) Winner() int {
	winner := 0
	scores := a.Scores()
	for i, s := range scores {
		if s > scores[winner] {
			winner = i
		}
	}
	return winner
}
