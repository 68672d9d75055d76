package rules

import (
	"testing"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
)

func TestTurnControllerInitialState(t *testing.T) {
	tc := NewTurnController(2, 0)

	want := Turn{Number: 1, ActivePlayer: 0, Phase: PhaseAction, Actions: 1, Buys: 1, Coins: 0}
	if got := tc.State(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestTurnControllerPhaseCycle(t *testing.T) {
	tc := NewTurnController(3, 0)
	tc.AddResources(cards.Resources{Actions: 1, Buys: 2, Coins: 3})

	ended, err := tc.EndPhase(false, "ignored in action phase")
	if err != nil || ended {
		t.Fatalf("expected action->buy without ending turn, got ended=%v err=%v", ended, err)
	}
	if tc.Phase() != PhaseBuy {
		t.Fatalf("expected BUY phase, got %s", tc.Phase())
	}
	if tc.Buys() != 3 || tc.Coins() != 3 {
		t.Fatalf("expected buys and coins carried forward, got buys=%d coins=%d", tc.Buys(), tc.Coins())
	}

	ended, err = tc.EndPhase(true, "")
	if err != nil || !ended {
		t.Fatalf("expected turn to end, got ended=%v err=%v", ended, err)
	}
	want := Turn{Number: 2, ActivePlayer: 1, Phase: PhaseAction, Actions: 1, Buys: 1, Coins: 0}
	if got := tc.State(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	tc.EndPhase(true, "")
	tc.EndPhase(true, "")
	tc.EndPhase(true, "")
	tc.EndPhase(true, "")
	if tc.ActivePlayer() != 0 {
		t.Fatalf("expected seat order to wrap to player 0, got %d", tc.ActivePlayer())
	}
}

func TestTurnControllerEndBuyPhaseNeedsResolution(t *testing.T) {
	tc := NewTurnController(2, 0)
	tc.EndPhase(true, "")

	_, err := tc.EndPhase(false, "Trash up to 4 cards from your hand.")
	if !apperrors.IsCode(err, apperrors.CodeEffectPending) {
		t.Fatalf("expected EFFECT_PENDING, got %v", err)
	}
	if got := apperrors.PendingDescription(err); got != "Trash up to 4 cards from your hand." {
		t.Fatalf("unexpected description %q", got)
	}
	if tc.Phase() != PhaseBuy || tc.ActivePlayer() != 0 {
		t.Fatalf("expected state unchanged, got %+v", tc.State())
	}
}

func TestTurnControllerUseAction(t *testing.T) {
	tc := NewTurnController(2, 0)

	if err := tc.UseAction(); err != nil {
		t.Fatalf("expected first action to succeed: %v", err)
	}
	if err := tc.UseAction(); !apperrors.IsCode(err, apperrors.CodeNoMoreActions) {
		t.Fatalf("expected NO_MORE_ACTIONS, got %v", err)
	}

	tc.EndPhase(true, "")
	if err := tc.UseAction(); !apperrors.IsCode(err, apperrors.CodeWrongPhase) {
		t.Fatalf("expected WRONG_PHASE in buy phase, got %v", err)
	}
}

func TestTurnControllerPurchaseOrder(t *testing.T) {
	tc := NewTurnController(2, 0)

	if err := tc.Purchase(0); !apperrors.IsCode(err, apperrors.CodeWrongPhase) {
		t.Fatalf("expected WRONG_PHASE, got %v", err)
	}
	if err := tc.PlayTreasure(cards.Copper, 1); !apperrors.IsCode(err, apperrors.CodeWrongPhase) {
		t.Fatalf("expected WRONG_PHASE for treasure in action phase, got %v", err)
	}

	tc.EndPhase(true, "")
	if err := tc.PlayTreasure(cards.Gold, 3); err != nil {
		t.Fatalf("play treasure: %v", err)
	}
	if err := tc.Purchase(4); !apperrors.IsCode(err, apperrors.CodeNotEnoughResource) {
		t.Fatalf("expected NOT_ENOUGH_RESOURCE, got %v", err)
	}
	if err := tc.Purchase(3); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if tc.Coins() != 0 || tc.Buys() != 0 {
		t.Fatalf("expected coins and buys spent, got %+v", tc.State())
	}
	if err := tc.Purchase(0); !apperrors.IsCode(err, apperrors.CodeNoMoreBuys) {
		t.Fatalf("expected NO_MORE_BUYS before NOT_ENOUGH_RESOURCE, got %v", err)
	}
}

func TestTurnControllerMerchantBonus(t *testing.T) {
	tc := NewTurnController(2, 0)
	tc.AddSilverBonus(1)
	tc.AddSilverBonus(1)
	tc.EndPhase(true, "")

	tc.PlayTreasure(cards.Copper, 1)
	tc.PlayTreasure(cards.Silver, 2)
	tc.PlayTreasure(cards.Silver, 2)
	if tc.Coins() != 7 {
		t.Fatalf("expected 1+2+2+2 bonus = 7 coins, got %d", tc.Coins())
	}

	tc.EndPhase(true, "")
	tc.EndPhase(true, "")
	tc.PlayTreasure(cards.Silver, 2)
	if tc.Coins() != 2 {
		t.Fatalf("expected bonus reset on new turn, got %d", tc.Coins())
	}
}

func TestTurnControllerCheckActive(t *testing.T) {
	tc := NewTurnController(2, 1)

	if err := tc.CheckActive(1); err != nil {
		t.Fatalf("expected active player accepted: %v", err)
	}
	if err := tc.CheckActive(0); !apperrors.IsCode(err, apperrors.CodeInactivePlayer) {
		t.Fatalf("expected INACTIVE_PLAYER, got %v", err)
	}
	if err := tc.CheckActive(2); !apperrors.IsCode(err, apperrors.CodeInvalidPlayerID) {
		t.Fatalf("expected INVALID_PLAYER_ID, got %v", err)
	}
	if err := tc.CheckActive(-1); !apperrors.IsCode(err, apperrors.CodeInvalidPlayerID) {
		t.Fatalf("expected INVALID_PLAYER_ID, got %v", err)
	}
}

func TestTurnControllerClone(t *testing.T) {
	tc := NewTurnController(2, 0)
	cpy := tc.Clone()
	cpy.UseAction()

	if tc.Actions() != 1 {
		t.Fatalf("expected original untouched, got %d actions", tc.Actions())
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseBuy.String() != "BUY" {
		t.Fatalf("unexpected %s", PhaseBuy)
	}
	if Phase(9).String() != "PHASE_9" {
		t.Fatalf("unexpected %s", Phase(9))
	}
}
