package effects

import (
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

// othersInTurnOrder lists every player except the active one, starting
// with the player to the active player's left.
func othersInTurnOrder(st State) []int {
	n := st.NumPlayers()
	active := st.Turn().ActivePlayer()
	out := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		out = append(out, (active+i)%n)
	}
	return out
}

// attack applies each to every other player in turn order. When origin is an
// Attack, a player holding a Reaction reveals it and is skipped.
func attack(each func(victim int) []Step) Step {
	return Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
		var follow []Step
		for _, victim := range othersInTurnOrder(st) {
			if k, ok := reaction(st, victim, origin); ok {
				evt := rules.NewEvent(rules.EventAttackBlocked, victim, k)
				evt.Source = origin
				st.Publish(evt)
				continue
			}
			follow = append(follow, each(victim)...)
		}
		return Outcome{Follow: follow}
	}}
}

// reaction finds the card victim reveals against an attack by origin.
func reaction(st State, victim int, origin cards.Kind) (cards.Kind, bool) {
	catalog := st.Catalog()
	if !catalog.IsAttack(origin) {
		return cards.KindUnknown, false
	}
	for _, k := range st.Player(victim).Hand.Cards() {
		if catalog.IsReaction(k) {
			return k, true
		}
	}
	return cards.KindUnknown, false
}

// drawCards draws n cards for player and publishes how many were drawn.
func drawCards(st State, player, n int, source cards.Kind) {
	if n <= 0 {
		return
	}
	drawn := st.Player(player).DrawCards(n)
	evt := rules.NewEventWithAmount(rules.EventCardsDrawn, player, len(drawn))
	evt.Source = source
	st.Publish(evt)
}

// move transfers one card between two of player's zones, or to the trash,
// and publishes evtType.
func move(st State, evtType rules.EventType, player int, k cards.Kind, from, to zones.Zone, source cards.Kind) bool {
	fromPile := pileOf(st, player, from)
	toPile := pileOf(st, player, to)
	if _, err := fromPile.Move(toPile, zones.ByKind(k)); err != nil {
		return false
	}
	evt := rules.NewMoveEvent(evtType, player, k, location(player, from), location(player, to))
	evt.Source = source
	st.Publish(evt)
	return true
}

// moveAll transfers every card of ks, all or nothing, publishing evtType
// once per card.
func moveAll(st State, evtType rules.EventType, player int, ks []cards.Kind, from, to zones.Zone, source cards.Kind) bool {
	if err := pileOf(st, player, from).MoveAll(pileOf(st, player, to), ks); err != nil {
		return false
	}
	for _, k := range ks {
		evt := rules.NewMoveEvent(evtType, player, k, location(player, from), location(player, to))
		evt.Source = source
		st.Publish(evt)
	}
	return true
}

// gain takes k from the supply into player's zone.
func gain(st State, player int, k cards.Kind, to zones.Zone, source cards.Kind) bool {
	if _, err := st.Supply().Remove(k); err != nil {
		return false
	}
	pileOf(st, player, to).Push(k)
	evt := rules.NewMoveEvent(rules.EventCardGained, player, k, zones.SupplyPile(), location(player, to))
	evt.Source = source
	st.Publish(evt)
	return true
}

// gainable reports whether k can be gained now under costLimit and filter.
func gainable(st State, k cards.Kind, costLimit int, filter func(cards.Kind) bool) bool {
	if st.Supply().Count(k) == 0 || st.Catalog().Cost(k) > costLimit {
		return false
	}
	return filter == nil || filter(k)
}

// anyGainable reports whether any supply pile satisfies gainable.
func anyGainable(st State, costLimit int, filter func(cards.Kind) bool) bool {
	for _, e := range st.Supply().Entries() {
		if gainable(st, e.Kind, costLimit, filter) {
			return true
		}
	}
	return false
}

// gainStep lets the active player gain a card costing up to costLimit into
// zone to. Choosing nothing is only legal when nothing qualifies.
func gainStep(source cards.Kind, description string, costLimit int, filter func(cards.Kind) bool, to zones.Zone) Step {
	return Conditional{
		Description: description,
		Player:      Active,
		Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
			switch len(sel) {
			case 0:
				return Outcome{}, !anyGainable(st, costLimit, filter)
			case 1:
				if !gainable(st, sel[0], costLimit, filter) {
					return Outcome{}, false
				}
				return Outcome{}, gain(st, player, sel[0], to, source)
			default:
				return Outcome{}, false
			}
		},
	}
}

func pileOf(st State, player int, z zones.Zone) *zones.Pile {
	if z == zones.ZoneTrash {
		return st.Trash()
	}
	return st.Player(player).Pile(z)
}

func location(player int, z zones.Zone) zones.Location {
	if z == zones.ZoneTrash {
		return zones.Trash()
	}
	return zones.Location{Zone: z, Player: player}
}
