// Package sim drives arenas with scripted strategies.
package sim

import (
	"slices"
	"sort"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/effects"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

// Strategy plays one seat of a game.
type Strategy interface {
	Name() string
	// TakeTurn plays player's turn through t. The runner ends whatever
	// phases the strategy leaves open.
	TakeTurn(t *Table, player int) error
	// Respond answers a decision targeting player.
	Respond(a *game.Arena, player int, d effects.Decision) []cards.Kind
}

// Big Money thresholds.
const (
	provinceCoins = 8
	goldCoins     = 6
	silverCoins   = 3
	duchyCoins    = 5
	estateCoins   = 2

	// Provinces left when victory cards other than Province become worth buying.
	duchyDancing  = 4
	estateDancing = 2
)

// BigMoney buys only treasure and victory cards.
type BigMoney struct {
	name     string
	terminal cards.Kind
	perCards int // own one terminal per this many cards
}

// NewBigMoney returns the plain Big Money script.
func NewBigMoney() *BigMoney {
	return &BigMoney{name: "BigMoney"}
}

// NewSmithyBigMoney returns Big Money that also buys and plays Smithies.
func NewSmithyBigMoney() *BigMoney {
	return &BigMoney{name: "SmithyBigMoney", terminal: cards.Smithy, perCards: 11}
}

// NewMilitiaBigMoney returns Big Money that also buys and plays Militias.
func NewMilitiaBigMoney() *BigMoney {
	return &BigMoney{name: "MilitiaBigMoney", terminal: cards.Militia, perCards: 12}
}

// NewWitchBigMoney returns Big Money that also buys and plays Witches.
func NewWitchBigMoney() *BigMoney {
	return &BigMoney{name: "WitchBigMoney", terminal: cards.Witch, perCards: 12}
}

var builtin = map[string]func() Strategy{
	"BigMoney":        func() Strategy { return NewBigMoney() },
	"SmithyBigMoney":  func() Strategy { return NewSmithyBigMoney() },
	"MilitiaBigMoney": func() Strategy { return NewMilitiaBigMoney() },
	"WitchBigMoney":   func() Strategy { return NewWitchBigMoney() },
}

// Names lists the built-in strategies.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName returns a fresh built-in strategy.
func ByName(name string) (Strategy, error) {
	build, ok := builtin[name]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeInvalidConfig, "unknown strategy %q", name)
	}
	return build(), nil
}

func (s *BigMoney) Name() string { return s.name }

func (s *BigMoney) TakeTurn(t *Table, player int) error {
	a := t.Arena()

	if s.terminal != cards.KindUnknown && a.Turn().Actions > 0 && s.holds(a, player, s.terminal) {
		if err := t.PlayAction(player, s.terminal); err != nil {
			return err
		}
	}
	if a.Turn().Phase == rules.PhaseAction {
		if err := a.EndPhase(player); err != nil {
			return err
		}
	}
	if _, err := a.PlayAllTreasures(player); err != nil {
		return err
	}

	if k, ok := s.choose(a, player); ok {
		if err := a.Buy(player, k); err != nil {
			return err
		}
	}
	return a.EndPhase(player)
}

func (s *BigMoney) Respond(a *game.Arena, player int, d effects.Decision) []cards.Kind {
	return DefaultResponse(a, player, d)
}

// choose picks the card to buy with the coins in play.
func (s *BigMoney) choose(a *game.Arena, player int) (cards.Kind, bool) {
	coins := a.Turn().Coins
	provinces := a.SupplyCount(cards.Province)

	var wants []cards.Kind
	switch {
	case coins >= provinceCoins:
		wants = []cards.Kind{cards.Province, cards.Gold}
	case coins >= goldCoins:
		if provinces <= duchyDancing {
			wants = append(wants, cards.Duchy)
		}
		wants = append(wants, cards.Gold)
	case coins >= duchyCoins && provinces <= duchyDancing:
		wants = []cards.Kind{cards.Duchy, cards.Silver}
	case coins >= silverCoins:
		if provinces <= estateDancing {
			wants = append(wants, cards.Estate)
		}
		if s.wantsTerminal(a, player, coins) {
			wants = append(wants, s.terminal)
		}
		wants = append(wants, cards.Silver)
	case coins >= estateCoins && provinces <= estateDancing:
		wants = []cards.Kind{cards.Estate}
	}

	for _, k := range wants {
		if a.SupplyCount(k) > 0 && a.Catalog().Cost(k) <= coins {
			return k, true
		}
	}
	return cards.KindUnknown, false
}

func (s *BigMoney) wantsTerminal(a *game.Arena, player, coins int) bool {
	if s.terminal == cards.KindUnknown || coins < a.Catalog().Cost(s.terminal) {
		return false
	}
	deck := a.Deck(player)
	owned := 0
	for _, k := range deck {
		if k == s.terminal {
			owned++
		}
	}
	return owned < 1+len(deck)/s.perCards
}

func (s *BigMoney) holds(a *game.Arena, player int, k cards.Kind) bool {
	hand, err := a.View(zones.Hand(player))
	return err == nil && slices.Contains(hand, k)
}
