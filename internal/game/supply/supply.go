// Package supply implements the counted card piles players gain from.
package supply

import (
	"fmt"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
)

const (
	// EmptyPilesToEnd is the number of empty piles that ends the game.
	EmptyPilesToEnd = 3

	kingdomPileSize = 10
)

// Entry is one supply pile.
type Entry struct {
	Kind  cards.Kind
	Count int
}

// Supply holds the kingdom piles followed by the base piles. Iteration order
// is fixed at construction.
type Supply struct {
	entries    []Entry
	kingdomLen int
	index      map[cards.Kind]int
}

// New stocks a supply for the given number of players.
func New(catalog *cards.Catalog, kingdom []cards.Kind, players int) (*Supply, error) {
	if players < 1 {
		return nil, apperrors.Newf(apperrors.CodeInvalidConfig, "supply needs at least one player, got %d", players)
	}

	s := &Supply{
		entries:    make([]Entry, 0, len(kingdom)+len(cards.BaseCards)),
		kingdomLen: len(kingdom),
		index:      make(map[cards.Kind]int, len(kingdom)+len(cards.BaseCards)),
	}

	for _, k := range kingdom {
		if !k.Valid() || cards.IsBase(k) {
			return nil, apperrors.Newf(apperrors.CodeInvalidConfig, "%s cannot be a kingdom pile", k)
		}
		if err := s.stock(k, kingdomCount(catalog, k, players)); err != nil {
			return nil, err
		}
	}
	for _, k := range cards.BaseCards {
		if err := s.stock(k, baseCount(k, players)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Supply) stock(k cards.Kind, count int) error {
	if _, dup := s.index[k]; dup {
		return apperrors.Newf(apperrors.CodeInvalidConfig, "duplicate supply pile %s", k)
	}
	s.index[k] = len(s.entries)
	s.entries = append(s.entries, Entry{Kind: k, Count: count})
	return nil
}

func victoryCount(players int) int {
	if players <= 2 {
		return 8
	}
	return 12
}

func baseCount(k cards.Kind, players int) int {
	switch k {
	case cards.Copper:
		return 60 - 7*players
	case cards.Silver:
		return 40
	case cards.Gold:
		return 30
	case cards.Estate, cards.Duchy, cards.Province:
		return victoryCount(players)
	case cards.Curse:
		return 10 * (players - 1)
	default:
		return 0
	}
}

func kingdomCount(catalog *cards.Catalog, k cards.Kind, players int) int {
	if catalog.IsVictory(k) {
		return victoryCount(players)
	}
	return kingdomPileSize
}

// Has reports whether k is stocked, empty or not.
func (s *Supply) Has(k cards.Kind) bool {
	_, ok := s.index[k]
	return ok
}

// Count returns the remaining cards of k, 0 when not stocked.
func (s *Supply) Count(k cards.Kind) int {
	if i, ok := s.index[k]; ok {
		return s.entries[i].Count
	}
	return 0
}

// Remove takes one card of kind k from its pile.
func (s *Supply) Remove(k cards.Kind) (cards.Kind, error) {
	i, ok := s.index[k]
	if !ok {
		return cards.KindUnknown, apperrors.Newf(apperrors.CodeUnknownCard, "%s is not in the supply", k)
	}
	if s.entries[i].Count == 0 {
		return cards.KindUnknown, apperrors.Newf(apperrors.CodeNoMoreCards, "%s pile is empty", k)
	}
	s.entries[i].Count--
	return k, nil
}

// Add returns one card of kind k to its pile.
func (s *Supply) Add(k cards.Kind) error {
	i, ok := s.index[k]
	if !ok {
		return apperrors.Newf(apperrors.CodeUnknownCard, "%s is not in the supply", k)
	}
	s.entries[i].Count++
	return nil
}

// Entries returns every pile, kingdom piles first.
func (s *Supply) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Kingdom returns the kingdom piles.
func (s *Supply) Kingdom() []Entry {
	return append([]Entry(nil), s.entries[:s.kingdomLen]...)
}

// Base returns the base piles.
func (s *Supply) Base() []Entry {
	return append([]Entry(nil), s.entries[s.kingdomLen:]...)
}

// EmptyPiles counts the piles with no cards left.
func (s *Supply) EmptyPiles() int {
	n := 0
	for _, e := range s.entries {
		if e.Count == 0 {
			n++
		}
	}
	return n
}

// IsGameOver reports whether the Province pile is empty or at least three
// piles are.
func (s *Supply) IsGameOver() bool {
	if s.Has(cards.Province) && s.Count(cards.Province) == 0 {
		return true
	}
	return s.EmptyPiles() >= EmptyPilesToEnd
}

// Total returns the number of cards across all piles.
func (s *Supply) Total() int {
	n := 0
	for _, e := range s.entries {
		n += e.Count
	}
	return n
}

// Clone deep-copies the supply.
func (s *Supply) Clone() *Supply {
	index := make(map[cards.Kind]int, len(s.index))
	for k, v := range s.index {
		index[k] = v
	}
	return &Supply{
		entries:    s.Entries(),
		kingdomLen: s.kingdomLen,
		index:      index,
	}
}

func (s *Supply) String() string {
	return fmt.Sprintf("supply(%d piles, %d cards, %d empty)", len(s.entries), s.Total(), s.EmptyPiles())
}
