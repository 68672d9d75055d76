package sim

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/effects"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

func newArena(t *testing.T, players int, kingdom cards.Kingdom, seed uint64) *game.Arena {
	t.Helper()
	a, err := game.NewArena(game.Options{Players: players, Kingdom: kingdom.Cards, Seed: seed}, nil)
	require.NoError(t, err)
	return a
}

func totalCards(a *game.Arena) int {
	total := 0
	for p := 0; p < a.NumPlayers(); p++ {
		total += len(a.Deck(p))
	}
	for _, e := range a.Supply() {
		total += e.Count
	}
	trash, _ := a.View(zones.Trash())
	return total + len(trash)
}

func TestByName(t *testing.T) {
	assert.Equal(t, []string{"BigMoney", "MilitiaBigMoney", "SmithyBigMoney", "WitchBigMoney"}, Names())
	for _, name := range Names() {
		s, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}

	_, err := ByName("Chapel")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidConfig))
}

func TestNewTableNeedsOneStrategyPerPlayer(t *testing.T) {
	a := newArena(t, 3, cards.FirstGame, 1)
	_, err := NewTable(a, []Strategy{NewBigMoney(), NewBigMoney()}, nil)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidConfig))
}

func TestBigMoneyFinishes(t *testing.T) {
	a := newArena(t, 2, cards.FirstGame, 7)
	before := totalCards(a)

	res, err := Play(context.Background(), a, []Strategy{NewBigMoney(), NewBigMoney()}, 200, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.True(t, a.Finished())
	assert.Equal(t, a.ID(), res.ArenaID)
	assert.Equal(t, before, totalCards(a))
	assert.Equal(t, slices.Max(res.Scores), res.Scores[res.Winner])
	assert.Greater(t, res.Turns, 10)
}

func TestPlayStopsAtTurnLimit(t *testing.T) {
	a := newArena(t, 2, cards.FirstGame, 7)
	res, err := Play(context.Background(), a, []Strategy{NewBigMoney(), NewBigMoney()}, 4, nil)
	require.NoError(t, err)
	assert.False(t, res.Finished)
	assert.Equal(t, 4, res.Turns)
	assert.Equal(t, rules.PhaseAction, a.Turn().Phase)
}

func TestPlayHonorsCancellation(t *testing.T) {
	a := newArena(t, 2, cards.FirstGame, 7)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Play(ctx, a, []Strategy{NewBigMoney(), NewBigMoney()}, 0, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Turns)
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() Result {
		a := newArena(t, 2, cards.FirstGame, 99)
		res, err := Play(context.Background(), a, []Strategy{NewSmithyBigMoney(), NewMilitiaBigMoney()}, 200, nil)
		require.NoError(t, err)
		res.ArenaID = ""
		return res
	}
	assert.Equal(t, play(), play())
}

func TestTerminalStrategiesFinish(t *testing.T) {
	for _, players := range []int{2, 3, 4} {
		t.Run(fmt.Sprintf("%d players", players), func(t *testing.T) {
			seats := make([]Strategy, players)
			for i := range seats {
				if i%2 == 0 {
					seats[i] = NewMilitiaBigMoney()
				} else {
					seats[i] = NewSmithyBigMoney()
				}
			}
			a := newArena(t, players, cards.FirstGame, uint64(players))
			before := totalCards(a)

			res, err := Play(context.Background(), a, seats, 300, nil)
			require.NoError(t, err)
			assert.True(t, res.Finished)
			assert.Equal(t, before, totalCards(a))
		})
	}
}

// playEverything plays every action it holds and buys the most expensive
// card it can afford, so every decision the kingdom offers comes up.
type playEverything struct{}

func (playEverything) Name() string { return "PlayEverything" }

func (playEverything) TakeTurn(t *Table, player int) error {
	a := t.Arena()
	for a.Turn().Phase == rules.PhaseAction && a.Turn().Actions > 0 {
		hand, err := a.View(zones.Hand(player))
		if err != nil {
			return err
		}
		i := slices.IndexFunc(hand, a.Catalog().IsAction)
		if i < 0 {
			break
		}
		if err := t.PlayAction(player, hand[i]); err != nil {
			return err
		}
	}
	if a.Turn().Phase == rules.PhaseAction {
		if err := a.EndPhase(player); err != nil {
			return err
		}
	}
	if _, err := a.PlayAllTreasures(player); err != nil {
		return err
	}
	if pick := gainChoice(a, a.Turn().Coins, nil); len(pick) == 1 && pick[0] != cards.Curse && pick[0] != cards.Copper {
		return a.Buy(player, pick[0])
	}
	return nil
}

func (playEverything) Respond(a *game.Arena, player int, d effects.Decision) []cards.Kind {
	return DefaultResponse(a, player, d)
}

func TestDefaultResponsesAreAccepted(t *testing.T) {
	for _, kingdom := range cards.Kingdoms() {
		for seed := uint64(1); seed <= 3; seed++ {
			t.Run(fmt.Sprintf("%s/%d", kingdom.Name, seed), func(t *testing.T) {
				a := newArena(t, 3, kingdom, seed)
				before := totalCards(a)

				rejected := 0
				a.Events().SubscribeTyped(rules.EventIntentRefused, func(rules.Event) { rejected++ })

				seats := []Strategy{playEverything{}, playEverything{}, playEverything{}}
				_, err := Play(context.Background(), a, seats, 90, nil)
				require.NoError(t, err)
				assert.Zero(t, rejected)
				assert.Equal(t, before, totalCards(a))
			})
		}
	}
}

func TestWorst(t *testing.T) {
	catalog := cards.Default()
	hand := []cards.Kind{cards.Gold, cards.Estate, cards.Copper, cards.Smithy}

	assert.Equal(t, []cards.Kind{cards.Estate, cards.Copper}, worst(catalog, hand, 2))
	assert.Equal(t, []cards.Kind{cards.Estate, cards.Copper, cards.Smithy, cards.Gold}, worst(catalog, hand, -1))
	assert.Empty(t, worst(catalog, hand, 0))
	assert.Equal(t, []cards.Kind{cards.Gold, cards.Estate, cards.Copper, cards.Smithy}, hand)
}

func TestGainChoice(t *testing.T) {
	a := newArena(t, 2, cards.FirstGame, 1)
	catalog := a.Catalog()

	assert.Equal(t, []cards.Kind{cards.Province}, gainChoice(a, 8, nil))
	assert.Equal(t, []cards.Kind{cards.Gold}, gainChoice(a, 7, catalog.IsTreasure))
	assert.Equal(t, []cards.Kind{cards.Silver}, gainChoice(a, 4, catalog.IsTreasure))
	assert.Equal(t, []cards.Kind{cards.Copper}, gainChoice(a, 0, catalog.IsTreasure))
	assert.Empty(t, gainChoice(a, -1, nil))
}

func TestBigMoneyChoices(t *testing.T) {
	a := newArena(t, 2, cards.FirstGame, 1)
	_, ok := NewBigMoney().choose(a, 0)
	assert.False(t, ok, "nothing is affordable before treasures are played")

	require.NoError(t, a.EndPhase(0))
	_, err := a.PlayAllTreasures(0)
	require.NoError(t, err)
	coins := a.Turn().Coins
	require.GreaterOrEqual(t, coins, 2)

	k, ok := NewBigMoney().choose(a, 0)
	if coins >= silverCoins {
		assert.Equal(t, cards.Silver, k)
	} else {
		assert.False(t, ok)
	}

	k, ok = NewSmithyBigMoney().choose(a, 0)
	switch {
	case coins >= a.Catalog().Cost(cards.Smithy):
		assert.Equal(t, cards.Smithy, k)
	case coins >= silverCoins:
		assert.Equal(t, cards.Silver, k)
	default:
		assert.False(t, ok)
	}
}
