// Package zones implements the ordered card containers each player owns
// plus the shared trash.
package zones

import (
	"fmt"
	"slices"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
)

// Zone identifies a card container.
type Zone int

const (
	ZoneDraw Zone = iota
	ZoneHand
	ZonePlay
	ZoneStage
	ZoneDiscard
	ZoneTrash
	// ZoneSupply only appears as the origin of gained cards.
	ZoneSupply
)

var zoneNames = map[Zone]string{
	ZoneDraw:    "DRAW",
	ZoneHand:    "HAND",
	ZonePlay:    "PLAY",
	ZoneStage:   "STAGE",
	ZoneDiscard: "DISCARD",
	ZoneTrash:   "TRASH",
	ZoneSupply:  "SUPPLY",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// PlayerZones lists the per-player zones in a fixed order.
var PlayerZones = []Zone{ZoneDraw, ZoneHand, ZonePlay, ZoneStage, ZoneDiscard}

// Location addresses one zone. Player is ignored for the trash and supply.
type Location struct {
	Zone   Zone
	Player int
}

func (l Location) String() string {
	if l.Zone == ZoneTrash || l.Zone == ZoneSupply {
		return l.Zone.String()
	}
	return fmt.Sprintf("%s[%d]", l.Zone, l.Player)
}

func Draw(player int) Location    { return Location{Zone: ZoneDraw, Player: player} }
func Hand(player int) Location    { return Location{Zone: ZoneHand, Player: player} }
func Play(player int) Location    { return Location{Zone: ZonePlay, Player: player} }
func Stage(player int) Location   { return Location{Zone: ZoneStage, Player: player} }
func Discard(player int) Location { return Location{Zone: ZoneDiscard, Player: player} }
func Trash() Location             { return Location{Zone: ZoneTrash} }
func SupplyPile() Location        { return Location{Zone: ZoneSupply} }

type selectorMode int

const (
	selectTop selectorMode = iota
	selectIndex
	selectKind
)

// Selector picks exactly one card out of a pile.
type Selector struct {
	mode  selectorMode
	index int
	kind  cards.Kind
}

// Top selects the top card.
func Top() Selector { return Selector{mode: selectTop} }

// ByIndex selects the card at position i, counted from the bottom.
func ByIndex(i int) Selector { return Selector{mode: selectIndex, index: i} }

// ByKind selects the lowest card of kind k.
func ByKind(k cards.Kind) Selector { return Selector{mode: selectKind, kind: k} }

func (s Selector) String() string {
	switch s.mode {
	case selectIndex:
		return fmt.Sprintf("index %d", s.index)
	case selectKind:
		return s.kind.String()
	default:
		return "top"
	}
}

// Pile is an ordered sequence of cards. The top is the end of the slice.
type Pile []cards.Kind

// Len returns the number of cards in the pile.
func (p Pile) Len() int { return len(p) }

// Peek returns the top card without removing it.
func (p Pile) Peek() (cards.Kind, bool) {
	if len(p) == 0 {
		return cards.KindUnknown, false
	}
	return p[len(p)-1], true
}

// Count returns how many cards of kind k the pile holds.
func (p Pile) Count(k cards.Kind) int {
	n := 0
	for _, c := range p {
		if c == k {
			n++
		}
	}
	return n
}

// Contains reports whether the pile holds at least one k.
func (p Pile) Contains(k cards.Kind) bool {
	return slices.Contains(p, k)
}

// ContainsAll reports whether the pile holds every card of want, counting
// duplicates.
func (p Pile) ContainsAll(want []cards.Kind) bool {
	need := make(map[cards.Kind]int, len(want))
	for _, k := range want {
		need[k]++
	}
	for k, n := range need {
		if p.Count(k) < n {
			return false
		}
	}
	return true
}

// Cards returns a copy of the pile, bottom first.
func (p Pile) Cards() []cards.Kind {
	return slices.Clone(p)
}

// Push places a card on top.
func (p *Pile) Push(k cards.Kind) {
	*p = append(*p, k)
}

// Pop removes the top card.
func (p *Pile) Pop() (cards.Kind, bool) {
	k, ok := p.Peek()
	if ok {
		*p = (*p)[:len(*p)-1]
	}
	return k, ok
}

// Remove takes out the card chosen by sel.
func (p *Pile) Remove(sel Selector) (cards.Kind, error) {
	idx, err := p.find(sel)
	if err != nil {
		return cards.KindUnknown, err
	}
	k := (*p)[idx]
	*p = slices.Delete(*p, idx, idx+1)
	return k, nil
}

// Move removes the card chosen by sel and places it on top of to.
func (p *Pile) Move(to *Pile, sel Selector) (cards.Kind, error) {
	k, err := p.Remove(sel)
	if err != nil {
		return cards.KindUnknown, err
	}
	to.Push(k)
	return k, nil
}

// MoveAll moves every card of want onto to, in the given order. Either all
// cards move or none do.
func (p *Pile) MoveAll(to *Pile, want []cards.Kind) error {
	if !p.ContainsAll(want) {
		return apperrors.Newf(apperrors.CodeCardNotFound, "cards %v not all present", want)
	}
	for _, k := range want {
		if _, err := p.Move(to, ByKind(k)); err != nil {
			return err
		}
	}
	return nil
}

// Drain moves every card onto to, keeping their order.
func (p *Pile) Drain(to *Pile) {
	*to = append(*to, *p...)
	*p = (*p)[:0]
}

func (p Pile) find(sel Selector) (int, error) {
	switch sel.mode {
	case selectIndex:
		if sel.index < 0 || sel.index >= len(p) {
			return 0, apperrors.Newf(apperrors.CodeIndexOutOfRange, "index %d out of range for %d cards", sel.index, len(p))
		}
		return sel.index, nil
	case selectKind:
		if idx := slices.Index(p, sel.kind); idx >= 0 {
			return idx, nil
		}
		return 0, apperrors.Newf(apperrors.CodeCardNotFound, "%s not found", sel.kind)
	default:
		if len(p) == 0 {
			return 0, apperrors.New(apperrors.CodeCardNotFound, "pile is empty")
		}
		return len(p) - 1, nil
	}
}
