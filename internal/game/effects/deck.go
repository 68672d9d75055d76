package effects

import (
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

// Decision descriptions.
const (
	CellarDescription         = "Discard any number of cards, then draw that many."
	HarbingerDescription      = "Look through your discard pile. You may put a card from it onto your deck."
	WorkshopDescription       = "Gain a card costing up to $4."
	PoacherDescription        = "Discard a card per empty Supply pile."
	LibraryDescription        = "You may set aside the revealed Action card."
	SentryTrashDescription    = "Trash any of the revealed cards."
	SentryDiscardDescription  = "Discard any of the revealed cards."
	SentryOrderDescription    = "Put the rest back on top in any order."
	ArtisanGainDescription    = "Gain a card to your hand costing up to $5."
	ArtisanTopdeckDescription = "Put a card from your hand onto your deck."
)

const (
	workshopLimit   = 4
	libraryHandSize = 7
	sentryReveal    = 2
	artisanLimit    = 5
)

var cellarStep = Conditional{
	Description: CellarDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		if !moveAll(st, rules.EventCardDiscarded, player, sel, zones.ZoneHand, zones.ZoneDiscard, cards.Cellar) {
			return Outcome{}, false
		}
		drawCards(st, player, len(sel), cards.Cellar)
		return Outcome{}, true
	},
}

var harbingerStep = Conditional{
	Description: HarbingerDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		switch len(sel) {
		case 0:
			return Outcome{}, true
		case 1:
			return Outcome{}, move(st, rules.EventCardTopdecked, player, sel[0], zones.ZoneDiscard, zones.ZoneDraw, cards.Harbinger)
		default:
			return Outcome{}, false
		}
	},
}

var workshopStep = gainStep(cards.Workshop, WorkshopDescription, workshopLimit, nil, zones.ZoneDiscard)

var poacherStep = Conditional{
	Description: PoacherDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		want := min(st.Supply().EmptyPiles(), st.Player(player).Hand.Len())
		if len(sel) != want {
			return Outcome{}, false
		}
		return Outcome{}, moveAll(st, rules.EventCardDiscarded, player, sel, zones.ZoneHand, zones.ZoneDiscard, cards.Poacher)
	},
}

// libraryStep draws until the hand holds seven cards. Each action card drawn
// waits in the staging area until the player decides whether to keep it.
var libraryStep = Unconditional{Apply: libraryDraw}

func libraryDraw(st State, origin cards.Kind) Outcome {
	player := st.Turn().ActivePlayer()
	p := st.Player(player)
	drawn := 0
	defer func() {
		if drawn > 0 {
			evt := rules.NewEventWithAmount(rules.EventCardsDrawn, player, drawn)
			evt.Source = origin
			st.Publish(evt)
		}
	}()

	for p.Hand.Len() < libraryHandSize {
		k, ok := p.Reveal()
		if !ok {
			break
		}
		if st.Catalog().IsAction(k) {
			p.Stage.Push(k)
			publishRevealed(st, player, k, origin)
			return Outcome{Follow: []Step{libraryChoiceStep(k), Unconditional{Apply: libraryDraw}}}
		}
		p.Hand.Push(k)
		drawn++
	}
	discardStage(st, player, origin)
	return Outcome{}
}

func libraryChoiceStep(revealed cards.Kind) Step {
	return Conditional{
		Description: LibraryDescription,
		Player:      Active,
		Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
			switch {
			case len(sel) == 0:
				if !st.Player(player).Stage.Contains(revealed) {
					return Outcome{}, false
				}
				return Outcome{}, move(st, rules.EventCardsDrawn, player, revealed, zones.ZoneStage, zones.ZoneHand, cards.Library)
			case len(sel) == 1 && sel[0] == revealed:
				return Outcome{}, st.Player(player).Stage.Contains(revealed)
			default:
				return Outcome{}, false
			}
		},
	}
}

// sentryStep looks at the top two cards of the deck, then lets the player
// trash, discard, and reorder them in that sequence.
var sentryStep = Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
	player := st.Turn().ActivePlayer()
	p := st.Player(player)
	for range sentryReveal {
		k, ok := p.Reveal()
		if !ok {
			break
		}
		p.Stage.Push(k)
		publishRevealed(st, player, k, origin)
	}
	if p.Stage.Len() == 0 {
		return Outcome{}
	}
	return Outcome{Follow: []Step{
		stageStep(SentryTrashDescription, rules.EventCardTrashed, zones.ZoneTrash),
		stageStep(SentryDiscardDescription, rules.EventCardDiscarded, zones.ZoneDiscard),
		sentryReturnStep,
	}}
}}

// stageStep moves any subset of the staged cards to zone to.
func stageStep(description string, evtType rules.EventType, to zones.Zone) Step {
	return Conditional{
		Description: description,
		Player:      Active,
		Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
			return Outcome{}, moveAll(st, evtType, player, sel, zones.ZoneStage, to, cards.Sentry)
		},
	}
}

// sentryReturnStep puts the remaining staged cards back on the deck, asking
// for an order only when there is more than one.
var sentryReturnStep = Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
	player := st.Turn().ActivePlayer()
	stage := st.Player(player).Stage.Cards()
	if len(stage) <= 1 {
		for _, k := range stage {
			move(st, rules.EventCardTopdecked, player, k, zones.ZoneStage, zones.ZoneDraw, origin)
		}
		return Outcome{}
	}
	return Outcome{Follow: []Step{sentryOrderStep}}
}}

// sentryOrderStep takes every staged card; the last one listed ends on top.
var sentryOrderStep = Conditional{
	Description: SentryOrderDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		if len(sel) != st.Player(player).Stage.Len() {
			return Outcome{}, false
		}
		return Outcome{}, moveAll(st, rules.EventCardTopdecked, player, sel, zones.ZoneStage, zones.ZoneDraw, cards.Sentry)
	},
}

var artisanGainStep = gainStep(cards.Artisan, ArtisanGainDescription, artisanLimit, nil, zones.ZoneHand)

var artisanTopdeckStep = Conditional{
	Description: ArtisanTopdeckDescription,
	Player:      Active,
	Apply: func(st State, player int, sel []cards.Kind) (Outcome, bool) {
		switch len(sel) {
		case 0:
			return Outcome{}, st.Player(player).Hand.Len() == 0
		case 1:
			return Outcome{}, move(st, rules.EventCardTopdecked, player, sel[0], zones.ZoneHand, zones.ZoneDraw, cards.Artisan)
		default:
			return Outcome{}, false
		}
	},
}
