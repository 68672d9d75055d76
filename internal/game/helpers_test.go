package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

// testKingdom stocks every card the arena tests reach for.
var testKingdom = []cards.Kind{
	cards.Chapel, cards.Militia, cards.Moat, cards.Moneylender, cards.Poacher,
	cards.Remodel, cards.Smithy, cards.ThroneRoom, cards.Vassal, cards.Village,
}

func newTestArena(t *testing.T, players int) *Arena {
	t.Helper()
	a, err := NewArena(Options{
		Players: players,
		Kingdom: testKingdom,
		Seed:    42,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return a
}

// setHand replaces a player's hand. Setup only: it does not conserve cards.
func setHand(a *Arena, player int, ks ...cards.Kind) {
	a.players[player].Hand = zones.Pile(append([]cards.Kind{}, ks...))
}

// setDraw replaces a player's draw pile; the last card is on top.
func setDraw(a *Arena, player int, ks ...cards.Kind) {
	a.players[player].Draw = zones.Pile(append([]cards.Kind{}, ks...))
}

func repeat(k cards.Kind, n int) []cards.Kind {
	out := make([]cards.Kind, n)
	for i := range out {
		out[i] = k
	}
	return out
}

// census counts every card in the game by kind.
func census(a *Arena) map[cards.Kind]int {
	counts := make(map[cards.Kind]int)
	for _, p := range a.players {
		for _, k := range p.Cards() {
			counts[k]++
		}
	}
	for _, e := range a.supply.Entries() {
		counts[e.Kind] += e.Count
	}
	for _, k := range a.trash {
		counts[k]++
	}
	return counts
}

// emptyPile removes every remaining card of k from the supply.
func emptyPile(t *testing.T, a *Arena, k cards.Kind) {
	t.Helper()
	for a.supply.Count(k) > 0 {
		_, err := a.supply.Remove(k)
		require.NoError(t, err)
	}
}

func toBuyPhase(t *testing.T, a *Arena, player int) {
	t.Helper()
	require.NoError(t, a.EndPhase(player))
}

func hand(t *testing.T, a *Arena, player int) []cards.Kind {
	t.Helper()
	h, err := a.View(zones.Hand(player))
	require.NoError(t, err)
	return h
}

func newKingdomArena(t *testing.T, players int, kingdom ...cards.Kind) *Arena {
	t.Helper()
	a, err := NewArena(Options{
		Players: players,
		Kingdom: kingdom,
		Seed:    42,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return a
}

func view(t *testing.T, a *Arena, loc zones.Location) []cards.Kind {
	t.Helper()
	ks, err := a.View(loc)
	require.NoError(t, err)
	return ks
}
