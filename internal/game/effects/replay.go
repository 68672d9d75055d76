package effects

import (
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

const (
	ThroneRoomDescription = "You may play an Action card from your hand twice."
	VassalDescription     = "Discard the top card of your deck. If it's an Action card, you may play it."
)

var throneRoomStep = Conditional{
	Description: ThroneRoomDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		switch len(sel) {
		case 0:
			return Outcome{}, true
		case 1:
			k := sel[0]
			if !st.Catalog().IsAction(k) {
				return Outcome{}, false
			}
			if !move(st, rules.EventCardPlayed, player, k, zones.ZoneHand, zones.ZonePlay, cards.ThroneRoom) {
				return Outcome{}, false
			}
			return Outcome{Spawn: []*PendingCardAction{
				NewPendingCardAction(k),
				NewPendingCardAction(k),
			}}, true
		default:
			return Outcome{}, false
		}
	},
}

// vassalStep discards the top card of the deck and, when it is an action,
// offers to play it from the discard pile.
var vassalStep = Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
	player := st.Turn().ActivePlayer()
	p := st.Player(player)
	k, ok := p.Reveal()
	if !ok {
		return Outcome{}
	}
	p.Discard.Push(k)
	evt := rules.NewMoveEvent(rules.EventCardDiscarded, player, k, zones.Draw(player), zones.Discard(player))
	evt.Source = origin
	st.Publish(evt)

	if !st.Catalog().IsAction(k) {
		return Outcome{}
	}
	return Outcome{Follow: []Step{vassalPlayStep(k)}}
}}

func vassalPlayStep(revealed cards.Kind) Step {
	return Conditional{
		Description: VassalDescription,
		Player:      Active,
		Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
			switch len(sel) {
			case 0:
				return Outcome{}, true
			case 1:
				discard := &st.Player(player).Discard
				top, ok := discard.Peek()
				if sel[0] != revealed || !ok || top != revealed {
					return Outcome{}, false
				}
				if _, err := discard.Move(&st.Player(player).Play, zones.Top()); err != nil {
					return Outcome{}, false
				}
				evt := rules.NewMoveEvent(rules.EventCardPlayed, player, revealed, zones.Discard(player), zones.Play(player))
				evt.Source = cards.Vassal
				st.Publish(evt)
				return Outcome{Spawn: []*PendingCardAction{NewPendingCardAction(revealed)}}, true
			default:
				return Outcome{}, false
			}
		},
	}
}
