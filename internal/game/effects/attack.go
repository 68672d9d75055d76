package effects

import (
	"slices"

	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

const (
	MilitiaDescription    = "Each other player discards down to 3 cards in their hand."
	militiaHandLimit      = 3
	BureaucratDescription = "Each other player reveals a Victory card from his hand and puts it on his deck (or reveals a hand with no Victory cards)."
	BanditDescription     = "Trash a revealed Treasure other than Copper, and discard the rest."
	banditReveal          = 2
)

var bureaucratGainStep = Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
	gain(st, st.Turn().ActivePlayer(), cards.Silver, zones.ZoneDraw, origin)
	return Outcome{}
}}

var bureaucratAttack = attack(func(victim int) []Step {
	return []Step{Conditional{
		Description: BureaucratDescription,
		Player:      victim,
		Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
			hand := st.Player(player).Hand
			switch len(sel) {
			case 0:
				for _, k := range hand {
					if st.Catalog().IsVictory(k) {
						return Outcome{}, false
					}
				}
				return Outcome{}, true
			case 1:
				if !st.Catalog().IsVictory(sel[0]) {
					return Outcome{}, false
				}
				return Outcome{}, move(st, rules.EventCardTopdecked, player, sel[0], zones.ZoneHand, zones.ZoneDraw, cards.Bureaucrat)
			default:
				return Outcome{}, false
			}
		},
	}}
})

var militiaAttack = attack(func(victim int) []Step {
	return []Step{Conditional{
		Description: MilitiaDescription,
		Player:      victim,
		Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
			want := max(st.Player(player).Hand.Len()-militiaHandLimit, 0)
			if len(sel) != want {
				return Outcome{}, false
			}
			return Outcome{}, moveAll(st, rules.EventCardDiscarded, player, sel, zones.ZoneHand, zones.ZoneDiscard, cards.Militia)
		},
	}}
})

var witchAttack = attack(func(victim int) []Step {
	return []Step{Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
		gain(st, victim, cards.Curse, zones.ZoneDiscard, origin)
		return Outcome{}
	}}}
})

var banditGainStep = Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
	gain(st, st.Turn().ActivePlayer(), cards.Gold, zones.ZoneDiscard, origin)
	return Outcome{}
}}

// banditAttack reveals the top two cards of each victim's deck. A single
// kind of eligible treasure is trashed without asking; a choice between two
// kinds goes to the victim.
var banditAttack = attack(func(victim int) []Step {
	return []Step{Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
		p := st.Player(victim)
		for range banditReveal {
			k, ok := p.Reveal()
			if !ok {
				break
			}
			p.Stage.Push(k)
			publishRevealed(st, victim, k, origin)
		}

		var eligible []cards.Kind
		for _, k := range p.Stage {
			if banditTarget(st, k) && !slices.Contains(eligible, k) {
				eligible = append(eligible, k)
			}
		}

		switch len(eligible) {
		case 0:
			discardStage(st, victim, origin)
			return Outcome{}
		case 1:
			move(st, rules.EventCardTrashed, victim, eligible[0], zones.ZoneStage, zones.ZoneTrash, origin)
			discardStage(st, victim, origin)
			return Outcome{}
		default:
			return Outcome{Follow: []Step{banditChoiceStep(victim)}}
		}
	}}}
})

func banditChoiceStep(victim int) Step {
	return Conditional{
		Description: BanditDescription,
		Player:      victim,
		Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
			if len(sel) != 1 || !banditTarget(st, sel[0]) {
				return Outcome{}, false
			}
			if !move(st, rules.EventCardTrashed, player, sel[0], zones.ZoneStage, zones.ZoneTrash, cards.Bandit) {
				return Outcome{}, false
			}
			discardStage(st, player, cards.Bandit)
			return Outcome{}, true
		},
	}
}

func banditTarget(st State, k cards.Kind) bool {
	return k != cards.Copper && st.Catalog().IsTreasure(k)
}

// discardStage moves every set-aside card of player to the discard pile.
func discardStage(st State, player int, source cards.Kind) {
	p := st.Player(player)
	for _, k := range p.Stage.Cards() {
		move(st, rules.EventCardDiscarded, player, k, zones.ZoneStage, zones.ZoneDiscard, source)
	}
}
