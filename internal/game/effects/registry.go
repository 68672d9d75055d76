package effects

import (
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
)

// registry lists the card-specific steps of every action with text beyond
// its resource template. Populated in init because some steps spawn new card
// actions and so refer back to the table.
var registry map[cards.Kind][]Step

func init() {
	registry = map[cards.Kind][]Step{
		cards.Cellar:      {cellarStep},
		cards.Chapel:      {chapelStep},
		cards.Harbinger:   {harbingerStep},
		cards.Merchant:    {merchantStep},
		cards.Vassal:      {vassalStep},
		cards.Workshop:    {workshopStep},
		cards.Bureaucrat:  {bureaucratGainStep, bureaucratAttack},
		cards.Militia:     {militiaAttack},
		cards.Moneylender: {moneylenderStep},
		cards.Poacher:     {poacherStep},
		cards.Remodel:     {remodelStep},
		cards.ThroneRoom:  {throneRoomStep},
		cards.Bandit:      {banditGainStep, banditAttack},
		cards.CouncilRoom: {councilRoomStep},
		cards.Library:     {libraryStep},
		cards.Mine:        {mineStep},
		cards.Sentry:      {sentryStep},
		cards.Witch:       {witchAttack},
		cards.Artisan:     {artisanGainStep, artisanTopdeckStep},
	}
}

// HasEffect reports whether k has steps beyond its resource template.
func HasEffect(k cards.Kind) bool {
	_, ok := registry[k]
	return ok
}

// NewPendingCardAction builds the steps for one play of k: the resource
// template first, then the card's own text.
func NewPendingCardAction(k cards.Kind) *PendingCardAction {
	specific := registry[k]
	steps := make([]Step, 0, 1+len(specific))
	steps = append(steps, resourceStep)
	steps = append(steps, specific...)
	return &PendingCardAction{Card: k, Steps: steps}
}

// resourceStep applies the origin card's resource template for the active
// player.
var resourceStep = Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
	r := st.Catalog().Resources(origin)
	if r.IsZero() {
		return Outcome{}
	}
	st.Turn().AddResources(r)
	drawCards(st, st.Turn().ActivePlayer(), r.Cards, origin)
	return Outcome{}
}}

var merchantStep = Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
	st.Turn().AddSilverBonus(1)
	return Outcome{}
}}

var councilRoomStep = Unconditional{Apply: func(st State, origin cards.Kind) Outcome {
	for _, p := range othersInTurnOrder(st) {
		drawCards(st, p, 1, origin)
	}
	return Outcome{}
}}

// publishRevealed records a card turned face up from a deck.
func publishRevealed(st State, player int, k, source cards.Kind) {
	evt := rules.NewEvent(rules.EventCardRevealed, player, k)
	evt.Source = source
	st.Publish(evt)
}
