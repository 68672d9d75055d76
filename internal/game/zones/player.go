package zones

import (
	"math/rand/v2"
	"slices"

	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
)

const (
	// HandSize is the number of cards drawn during cleanup.
	HandSize = 5

	startingCoppers = 7
	startingEstates = 3
)

// Player owns one player's zones. Shuffles use the RNG handed in at
// construction so that a seed fully determines every game.
type Player struct {
	Draw    Pile
	Hand    Pile
	Play    Pile
	Stage   Pile
	Discard Pile

	rng *rand.Rand
}

// NewPlayer creates a player holding the starting deck of 7 Coppers and
// 3 Estates, shuffled into the draw pile. The hand starts empty.
func NewPlayer(rng *rand.Rand) *Player {
	p := NewEmptyPlayer(rng)
	for range startingCoppers {
		p.Draw.Push(cards.Copper)
	}
	for range startingEstates {
		p.Draw.Push(cards.Estate)
	}
	p.shuffle()
	return p
}

// NewEmptyPlayer creates a player with no cards at all.
func NewEmptyPlayer(rng *rand.Rand) *Player {
	return &Player{rng: rng}
}

// Pile returns the player's pile for z, or nil for the trash.
func (p *Player) Pile(z Zone) *Pile {
	switch z {
	case ZoneDraw:
		return &p.Draw
	case ZoneHand:
		return &p.Hand
	case ZonePlay:
		return &p.Play
	case ZoneStage:
		return &p.Stage
	case ZoneDiscard:
		return &p.Discard
	default:
		return nil
	}
}

// DrawCard moves the top card of the draw pile into the hand. An empty draw
// pile is refilled by shuffling the discard pile. It reports false when both
// are empty.
func (p *Player) DrawCard() (cards.Kind, bool) {
	k, ok := p.Reveal()
	if !ok {
		return cards.KindUnknown, false
	}
	p.Hand.Push(k)
	return k, true
}

// DrawCards draws up to n cards and returns the ones drawn.
func (p *Player) DrawCards(n int) []cards.Kind {
	drawn := make([]cards.Kind, 0, n)
	for range n {
		k, ok := p.DrawCard()
		if !ok {
			break
		}
		drawn = append(drawn, k)
	}
	return drawn
}

// Reveal removes the top card of the draw pile, reshuffling the discard pile
// first if needed. The caller decides where the card goes.
func (p *Player) Reveal() (cards.Kind, bool) {
	if p.Draw.Len() == 0 {
		p.Reshuffle()
	}
	return p.Draw.Pop()
}

// Reshuffle moves the discard pile under the draw pile and shuffles it.
// It only runs when the draw pile is empty.
func (p *Player) Reshuffle() {
	if p.Draw.Len() > 0 || p.Discard.Len() == 0 {
		return
	}
	p.Discard.Drain(&p.Draw)
	p.shuffle()
}

// Cleanup discards the play area and hand, then draws a new hand.
func (p *Player) Cleanup() {
	p.Play.Drain(&p.Discard)
	p.Hand.Drain(&p.Discard)
	p.DrawCards(HandSize)
}

// Cards returns every card the player owns across all zones.
func (p *Player) Cards() []cards.Kind {
	out := make([]cards.Kind, 0, p.Size())
	for _, z := range PlayerZones {
		out = append(out, *p.Pile(z)...)
	}
	return out
}

// Size returns the number of cards the player owns.
func (p *Player) Size() int {
	n := 0
	for _, z := range PlayerZones {
		n += p.Pile(z).Len()
	}
	return n
}

// Count returns how many cards of kind k the player owns.
func (p *Player) Count(k cards.Kind) int {
	n := 0
	for _, z := range PlayerZones {
		n += p.Pile(z).Count(k)
	}
	return n
}

// Clone deep-copies the zones. The clone shares the RNG handle.
func (p *Player) Clone() *Player {
	return &Player{
		Draw:    slices.Clone(p.Draw),
		Hand:    slices.Clone(p.Hand),
		Play:    slices.Clone(p.Play),
		Stage:   slices.Clone(p.Stage),
		Discard: slices.Clone(p.Discard),
		rng:     p.rng,
	}
}

// shuffle performs a Fisher-Yates shuffle of the draw pile.
func (p *Player) shuffle() {
	p.rng.Shuffle(len(p.Draw), func(i, j int) {
		p.Draw[i], p.Draw[j] = p.Draw[j], p.Draw[i]
	})
}
