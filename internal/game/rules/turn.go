package rules

import (
	"fmt"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
)

// Phase represents the phases of a Dominion turn. Cleanup is not a phase
// of its own: it runs as part of leaving the buy phase.
type Phase int

const (
	PhaseAction Phase = iota
	PhaseBuy
)

var phaseNames = map[Phase]string{
	PhaseAction: "ACTION",
	PhaseBuy:    "BUY",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

const (
	startingActions = 1
	startingBuys    = 1
)

// Turn is a read-only view of the turn in progress. Actions is only
// meaningful during the action phase.
type Turn struct {
	Number       int
	ActivePlayer int
	Phase        Phase
	Actions      int
	Buys         int
	Coins        int
}

// TurnController tracks the active player, the phase and the remaining
// actions, buys and coins. Counters are signed; nothing in the base set
// drives them negative.
type TurnController struct {
	numPlayers   int
	turnNumber   int
	activePlayer int
	phase        Phase
	actions      int
	buys         int
	coins        int

	// Merchant bonus for the first Silver played this turn.
	silverBonus  int
	silverPlayed bool
}

// NewTurnController creates a controller at turn 1, action phase, with
// firstPlayer active.
func NewTurnController(numPlayers, firstPlayer int) *TurnController {
	tc := &TurnController{
		numPlayers:   numPlayers,
		turnNumber:   1,
		activePlayer: firstPlayer,
	}
	tc.resetPhase()
	return tc
}

func (tc *TurnController) resetPhase() {
	tc.phase = PhaseAction
	tc.actions = startingActions
	tc.buys = startingBuys
	tc.coins = 0
	tc.silverBonus = 0
	tc.silverPlayed = false
}

// State returns a snapshot of the current turn.
func (tc *TurnController) State() Turn {
	return Turn{
		Number:       tc.turnNumber,
		ActivePlayer: tc.activePlayer,
		Phase:        tc.phase,
		Actions:      tc.actions,
		Buys:         tc.buys,
		Coins:        tc.coins,
	}
}

// Phase returns the phase currently in progress.
func (tc *TurnController) Phase() Phase { return tc.phase }

// ActivePlayer returns the player who currently has the turn.
func (tc *TurnController) ActivePlayer() int { return tc.activePlayer }

// TurnNumber returns the current turn number (1-based).
func (tc *TurnController) TurnNumber() int { return tc.turnNumber }

// NumPlayers returns the number of seats.
func (tc *TurnController) NumPlayers() int { return tc.numPlayers }

// Actions returns the actions left in the action phase.
func (tc *TurnController) Actions() int { return tc.actions }

// Buys returns the buys left.
func (tc *TurnController) Buys() int { return tc.buys }

// Coins returns the coins available to spend.
func (tc *TurnController) Coins() int { return tc.coins }

// ValidPlayer reports whether player names a seat.
func (tc *TurnController) ValidPlayer(player int) bool {
	return player >= 0 && player < tc.numPlayers
}

// CheckActive rejects unknown seats and players who do not have the turn.
func (tc *TurnController) CheckActive(player int) error {
	if !tc.ValidPlayer(player) {
		return apperrors.Newf(apperrors.CodeInvalidPlayerID, "no player %d", player)
	}
	if player != tc.activePlayer {
		return apperrors.Newf(apperrors.CodeInactivePlayer, "player %d is not active, player %d is", player, tc.activePlayer)
	}
	return nil
}

// CheckPhase rejects intents outside phase p.
func (tc *TurnController) CheckPhase(p Phase) error {
	if tc.phase != p {
		return apperrors.Newf(apperrors.CodeWrongPhase, "expected %s phase, in %s phase", p, tc.phase)
	}
	return nil
}

// UseAction spends one action to play an action card.
func (tc *TurnController) UseAction() error {
	if err := tc.CheckPhase(PhaseAction); err != nil {
		return err
	}
	if tc.actions <= 0 {
		return apperrors.New(apperrors.CodeNoMoreActions, "no actions left")
	}
	tc.actions--
	return nil
}

// PlayTreasure adds a treasure's value to the coins. The first Silver of the
// turn also collects any Merchant bonus.
func (tc *TurnController) PlayTreasure(k cards.Kind, value int) error {
	if err := tc.CheckPhase(PhaseBuy); err != nil {
		return err
	}
	tc.coins += value
	if k == cards.Silver && !tc.silverPlayed {
		tc.silverPlayed = true
		tc.coins += tc.silverBonus
	}
	return nil
}

// CheckPurchase verifies a card costing cost could be bought now.
func (tc *TurnController) CheckPurchase(cost int) error {
	if err := tc.CheckPhase(PhaseBuy); err != nil {
		return err
	}
	if tc.buys <= 0 {
		return apperrors.New(apperrors.CodeNoMoreBuys, "no buys left")
	}
	if tc.coins < cost {
		return apperrors.Newf(apperrors.CodeNotEnoughResource, "need %d coins, have %d", cost, tc.coins)
	}
	return nil
}

// Purchase spends one buy and cost coins.
func (tc *TurnController) Purchase(cost int) error {
	if err := tc.CheckPurchase(cost); err != nil {
		return err
	}
	tc.buys--
	tc.coins -= cost
	return nil
}

// AddResources applies the non-draw part of a resource template.
func (tc *TurnController) AddResources(r cards.Resources) {
	tc.actions += r.Actions
	tc.buys += r.Buys
	tc.coins += r.Coins
}

// AddCoins adds coins outside of treasure play, such as Moneylender's bonus.
func (tc *TurnController) AddCoins(n int) {
	tc.coins += n
}

// AddSilverBonus records a Merchant played this turn.
func (tc *TurnController) AddSilverBonus(n int) {
	tc.silverBonus += n
}

// EndPhase advances Action to Buy, or Buy to the next player's action phase.
// Leaving the buy phase requires every pending effect to be resolved; pending
// carries the blocking description for the error. It reports whether the
// turn passed to the next player.
func (tc *TurnController) EndPhase(resolved bool, pending string) (bool, error) {
	switch tc.phase {
	case PhaseAction:
		tc.phase = PhaseBuy
		tc.actions = 0
		return false, nil
	default:
		if !resolved {
			return false, apperrors.EffectPending(pending)
		}
		tc.turnNumber++
		tc.activePlayer = (tc.activePlayer + 1) % tc.numPlayers
		tc.resetPhase()
		return true, nil
	}
}

// Clone copies the controller.
func (tc *TurnController) Clone() *TurnController {
	cpy := *tc
	return &cpy
}
