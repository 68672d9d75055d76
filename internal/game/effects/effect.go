// Package effects resolves the effects of played action cards.
//
// Playing an action card creates a PendingCardAction: the card plus an
// ordered list of steps. Steps are either unconditional, applied as soon as
// they reach the front of the queue, or conditional, which need a selection
// of cards from a player before they can apply. A conditional step that is
// missing its selection, or receives an illegal one, blocks the queue and
// reports its description; nothing else may change the game until a player
// answers it.
package effects

import (
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/supply"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

// State is the game state steps read and mutate.
type State interface {
	Catalog() *cards.Catalog
	Turn() *rules.TurnController
	Supply() *supply.Supply
	Player(id int) *zones.Player
	Trash() *zones.Pile
	NumPlayers() int
	Publish(evt rules.Event)
}

// Active targets whichever player has the turn when the step is evaluated.
const Active = -1

// Selection is a player's answer to a pending decision.
type Selection struct {
	Player int
	Cards  []cards.Kind
}

// Outcome is what applying a step produces. Follow steps run next within the
// same card action; Spawn actions join the back of the queue.
type Outcome struct {
	Follow []Step
	Spawn  []*PendingCardAction
}

// Step is one unit of a card's effect: Unconditional or Conditional.
type Step interface {
	step()
}

// Unconditional applies without any player input.
type Unconditional struct {
	Apply func(st State, origin cards.Kind) Outcome
}

// Conditional needs a selection from Player before it applies. Apply
// reports false when the selection does not satisfy the step; it must not
// change any state in that case.
type Conditional struct {
	Description string
	Player      int
	Apply       func(st State, player int, selection []cards.Kind) (Outcome, bool)
}

func (Unconditional) step() {}
func (Conditional) step()   {}

// target resolves the player who must answer the step.
func (c Conditional) target(st State) int {
	if c.Player == Active {
		return st.Turn().ActivePlayer()
	}
	return c.Player
}

// PendingCardAction is the unresolved remainder of one played card.
type PendingCardAction struct {
	Card  cards.Kind
	Steps []Step
}

// Decision describes the step blocking the queue.
type Decision struct {
	Card        cards.Kind
	Player      int
	Description string
}
