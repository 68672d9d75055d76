package sim

import (
	"slices"

	"github.com/kingdomworks/dominion-engine-go/internal/game"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/effects"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

// Card limits the responder sizes its answers by.
const (
	workshopLimit = 4
	artisanLimit  = 5
	remodelBonus  = 2
	mineBonus     = 3
	chapelLimit   = 4
	militiaKeep   = 3
)

// DefaultResponse answers any base-set decision with a money-first
// heuristic. The answer is always legal for the decision it was built for.
func DefaultResponse(a *game.Arena, player int, d effects.Decision) []cards.Kind {
	catalog := a.Catalog()
	hand := pile(a, zones.Hand(player))

	switch d.Description {
	case effects.MilitiaDescription:
		return worst(catalog, hand, max(len(hand)-militiaKeep, 0))

	case effects.PoacherDescription:
		empty := 0
		for _, e := range a.Supply() {
			if e.Count == 0 {
				empty++
			}
		}
		return worst(catalog, hand, min(empty, len(hand)))

	case effects.BureaucratDescription:
		for _, k := range hand {
			if catalog.IsVictory(k) {
				return []cards.Kind{k}
			}
		}
		return []cards.Kind{}

	case effects.BanditDescription:
		stage := pile(a, zones.Stage(player))
		var pick cards.Kind
		for _, k := range stage {
			if k == cards.Copper || !catalog.IsTreasure(k) {
				continue
			}
			if pick == cards.KindUnknown || catalog.Cost(k) < catalog.Cost(pick) {
				pick = k
			}
		}
		if pick == cards.KindUnknown {
			return []cards.Kind{}
		}
		return []cards.Kind{pick}

	case effects.CellarDescription:
		return filter(hand, func(k cards.Kind) bool { return junk(catalog, k) })

	case effects.ChapelDescription:
		trash := filter(hand, func(k cards.Kind) bool { return k == cards.Curse || k == cards.Estate })
		return trash[:min(len(trash), chapelLimit)]

	case effects.MoneylenderDescription:
		if slices.Contains(hand, cards.Copper) {
			return []cards.Kind{cards.Copper}
		}
		return []cards.Kind{}

	case effects.HarbingerDescription:
		discard := pile(a, zones.Discard(player))
		if best, ok := richest(catalog, discard); ok {
			return []cards.Kind{best}
		}
		return []cards.Kind{}

	case effects.ThroneRoomDescription:
		var pick cards.Kind
		for _, k := range hand {
			if catalog.IsAction(k) && (pick == cards.KindUnknown || catalog.Cost(k) > catalog.Cost(pick)) {
				pick = k
			}
		}
		if pick == cards.KindUnknown {
			return []cards.Kind{}
		}
		return []cards.Kind{pick}

	case effects.VassalDescription:
		discard := pile(a, zones.Discard(player))
		if len(discard) == 0 {
			return []cards.Kind{}
		}
		return discard[len(discard)-1:]

	case effects.LibraryDescription:
		stage := pile(a, zones.Stage(player))
		if len(stage) > 0 && a.Turn().Actions == 0 {
			return stage[len(stage)-1:]
		}
		return []cards.Kind{}

	case effects.SentryTrashDescription:
		return filter(pile(a, zones.Stage(player)), func(k cards.Kind) bool {
			return k == cards.Curse || k == cards.Estate || k == cards.Copper
		})

	case effects.SentryDiscardDescription:
		return filter(pile(a, zones.Stage(player)), func(k cards.Kind) bool { return junk(catalog, k) })

	case effects.SentryOrderDescription:
		// The last card listed ends on top.
		return worst(catalog, pile(a, zones.Stage(player)), -1)

	case effects.RemodelTrashDescription:
		return worst(catalog, hand, min(1, len(hand)))

	case effects.RemodelGainDescription:
		return gainChoice(a, trashedCost(a)+remodelBonus, nil)

	case effects.MineTrashDescription:
		for _, k := range []cards.Kind{cards.Silver, cards.Copper} {
			if slices.Contains(hand, k) {
				return []cards.Kind{k}
			}
		}
		return []cards.Kind{}

	case effects.MineGainDescription:
		return gainChoice(a, trashedCost(a)+mineBonus, catalog.IsTreasure)

	case effects.WorkshopDescription:
		return gainChoice(a, workshopLimit, nil)

	case effects.ArtisanGainDescription:
		return gainChoice(a, artisanLimit, nil)

	case effects.ArtisanTopdeckDescription:
		if best, ok := richest(catalog, hand); ok {
			return []cards.Kind{best}
		}
		return worst(catalog, hand, min(1, len(hand)))
	}
	return []cards.Kind{}
}

func pile(a *game.Arena, loc zones.Location) []cards.Kind {
	ks, _ := a.View(loc)
	return ks
}

// junk reports whether k does nothing in hand.
func junk(catalog *cards.Catalog, k cards.Kind) bool {
	return !catalog.IsAction(k) && !catalog.IsTreasure(k)
}

// value ranks cards by how much they are worth keeping in hand.
func value(catalog *cards.Catalog, k cards.Kind) int {
	switch {
	case junk(catalog, k):
		return -1
	case catalog.IsTreasure(k):
		return 2 * catalog.TreasureValue(k)
	default:
		return catalog.Cost(k)
	}
}

// worst returns the n least valuable cards of ks, least valuable first. A
// negative n returns all of them.
func worst(catalog *cards.Catalog, ks []cards.Kind, n int) []cards.Kind {
	sorted := slices.Clone(ks)
	slices.SortStableFunc(sorted, func(x, y cards.Kind) int {
		return value(catalog, x) - value(catalog, y)
	})
	if n < 0 || n > len(sorted) {
		return sorted
	}
	return sorted[:n]
}

// richest returns the highest value treasure among ks.
func richest(catalog *cards.Catalog, ks []cards.Kind) (cards.Kind, bool) {
	var best cards.Kind
	for _, k := range ks {
		if catalog.IsTreasure(k) && (best == cards.KindUnknown || catalog.TreasureValue(k) > catalog.TreasureValue(best)) {
			best = k
		}
	}
	return best, best != cards.KindUnknown
}

func filter(ks []cards.Kind, keep func(cards.Kind) bool) []cards.Kind {
	out := []cards.Kind{}
	for _, k := range ks {
		if keep(k) {
			out = append(out, k)
		}
	}
	return out
}

// trashedCost is the cost of the card most recently trashed.
func trashedCost(a *game.Arena) int {
	trash := pile(a, zones.Trash())
	if len(trash) == 0 {
		return 0
	}
	return a.Catalog().Cost(trash[len(trash)-1])
}

// gainChoice picks the most expensive gainable card, preferring treasure on
// equal cost. Curses are never chosen while anything else qualifies.
func gainChoice(a *game.Arena, limit int, allow func(cards.Kind) bool) []cards.Kind {
	catalog := a.Catalog()
	var pick cards.Kind
	better := func(k cards.Kind) bool {
		if pick == cards.KindUnknown || pick == cards.Curse {
			return true
		}
		if k == cards.Curse {
			return false
		}
		if catalog.Cost(k) != catalog.Cost(pick) {
			return catalog.Cost(k) > catalog.Cost(pick)
		}
		return catalog.IsTreasure(k) && !catalog.IsTreasure(pick)
	}
	for _, e := range a.Supply() {
		if e.Count == 0 || catalog.Cost(e.Kind) > limit || (allow != nil && !allow(e.Kind)) {
			continue
		}
		if better(e.Kind) {
			pick = e.Kind
		}
	}
	if pick == cards.KindUnknown {
		return []cards.Kind{}
	}
	return []cards.Kind{pick}
}
