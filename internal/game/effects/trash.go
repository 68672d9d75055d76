package effects

import (
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

const (
	ChapelDescription       = "Trash up to 4 cards from your hand."
	MoneylenderDescription  = "You may trash a Copper from your hand. If you do, +$3."
	RemodelTrashDescription = "Trash a card from your hand."
	RemodelGainDescription  = "Gain a card costing up to $2 more than the trashed card."
	MineTrashDescription    = "You may trash a Treasure from your hand."
	MineGainDescription     = "Gain a Treasure to your hand costing up to $3 more than the trashed one."
)

const (
	chapelLimit      = 4
	moneylenderBonus = 3
	remodelBonus     = 2
	mineBonus        = 3
)

var chapelStep = Conditional{
	Description: ChapelDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		if len(sel) > chapelLimit {
			return Outcome{}, false
		}
		return Outcome{}, moveAll(st, rules.EventCardTrashed, player, sel, zones.ZoneHand, zones.ZoneTrash, cards.Chapel)
	},
}

var moneylenderStep = Conditional{
	Description: MoneylenderDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		switch {
		case len(sel) == 0:
			return Outcome{}, true
		case len(sel) == 1 && sel[0] == cards.Copper:
			if !move(st, rules.EventCardTrashed, player, cards.Copper, zones.ZoneHand, zones.ZoneTrash, cards.Moneylender) {
				return Outcome{}, false
			}
			st.Turn().AddCoins(moneylenderBonus)
			return Outcome{}, true
		default:
			return Outcome{}, false
		}
	},
}

// remodelStep trashes exactly one card when the hand has any, then queues the
// gain sized from the trashed card.
var remodelStep = Conditional{
	Description: RemodelTrashDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		switch len(sel) {
		case 0:
			return Outcome{}, st.Player(player).Hand.Len() == 0
		case 1:
			if !move(st, rules.EventCardTrashed, player, sel[0], zones.ZoneHand, zones.ZoneTrash, cards.Remodel) {
				return Outcome{}, false
			}
			limit := st.Catalog().Cost(sel[0]) + remodelBonus
			return Outcome{Follow: []Step{
				gainStep(cards.Remodel, RemodelGainDescription, limit, nil, zones.ZoneDiscard),
			}}, true
		default:
			return Outcome{}, false
		}
	},
}

var mineStep = Conditional{
	Description: MineTrashDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		switch len(sel) {
		case 0:
			return Outcome{}, true
		case 1:
			catalog := st.Catalog()
			if !catalog.IsTreasure(sel[0]) {
				return Outcome{}, false
			}
			if !move(st, rules.EventCardTrashed, player, sel[0], zones.ZoneHand, zones.ZoneTrash, cards.Mine) {
				return Outcome{}, false
			}
			limit := catalog.Cost(sel[0]) + mineBonus
			return Outcome{Follow: []Step{
				gainStep(cards.Mine, MineGainDescription, limit, catalog.IsTreasure, zones.ZoneHand),
			}}, true
		default:
			return Outcome{}, false
		}
	},
}
