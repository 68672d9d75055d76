package zones

import (
	"math/rand/v2"
	"testing"

	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestNewPlayerStartingDeck(t *testing.T) {
	p := NewPlayer(newRNG(1))

	assert.Equal(t, 10, p.Draw.Len())
	assert.Equal(t, 7, p.Count(cards.Copper))
	assert.Equal(t, 3, p.Count(cards.Estate))
	assert.Empty(t, p.Hand)

	p.Cleanup()
	assert.Equal(t, HandSize, p.Hand.Len())
	assert.Equal(t, 5, p.Draw.Len())
	assert.Equal(t, 10, p.Size())
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	a := NewPlayer(newRNG(42))
	b := NewPlayer(newRNG(42))
	assert.Equal(t, a.Draw, b.Draw)

	for range 6 {
		a.Cleanup()
		b.Cleanup()
	}
	assert.Equal(t, a.Hand, b.Hand)
	assert.Equal(t, a.Draw, b.Draw)
}

func TestDrawReshufflesDiscard(t *testing.T) {
	p := NewEmptyPlayer(newRNG(7))
	p.Discard = Pile{cards.Gold, cards.Silver, cards.Copper}

	k, ok := p.DrawCard()
	require.True(t, ok)
	assert.Contains(t, []cards.Kind{cards.Gold, cards.Silver, cards.Copper}, k)
	assert.Empty(t, p.Discard)
	assert.Equal(t, 2, p.Draw.Len())
	assert.Equal(t, Pile{k}, p.Hand)
}

func TestDrawFromEmptyDeckYieldsNothing(t *testing.T) {
	p := NewEmptyPlayer(newRNG(7))

	_, ok := p.DrawCard()
	assert.False(t, ok)

	p.Draw = Pile{cards.Estate}
	drawn := p.DrawCards(5)
	assert.Equal(t, []cards.Kind{cards.Estate}, drawn)
	assert.Equal(t, 1, p.Hand.Len())
}

func TestDrawTakesTopWithoutShuffling(t *testing.T) {
	p := NewEmptyPlayer(newRNG(7))
	p.Draw = Pile{cards.Copper, cards.Gold}
	p.Discard = Pile{cards.Province}

	k, ok := p.DrawCard()
	require.True(t, ok)
	assert.Equal(t, cards.Gold, k)
	assert.Equal(t, Pile{cards.Province}, p.Discard)
}

func TestCleanupMovesPlayAndHand(t *testing.T) {
	p := NewEmptyPlayer(newRNG(3))
	p.Play = Pile{cards.Smithy}
	p.Hand = Pile{cards.Estate, cards.Copper}
	p.Draw = Pile{cards.Silver, cards.Silver, cards.Silver, cards.Silver, cards.Silver, cards.Gold}

	p.Cleanup()

	assert.Empty(t, p.Play)
	assert.Equal(t, Pile{cards.Smithy, cards.Estate, cards.Copper}, p.Discard)
	assert.Equal(t, Pile{cards.Gold, cards.Silver, cards.Silver, cards.Silver, cards.Silver}, p.Hand)
	assert.Equal(t, Pile{cards.Silver}, p.Draw)
}

func TestCloneIsDeep(t *testing.T) {
	p := NewPlayer(newRNG(9))
	p.Cleanup()
	c := p.Clone()

	c.Hand[0] = cards.Province
	c.Draw.Push(cards.Gold)

	assert.NotEqual(t, cards.Province, p.Hand[0])
	assert.Equal(t, 5, p.Draw.Len())
	assert.Nil(t, p.Pile(ZoneTrash))
}
