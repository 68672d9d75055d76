package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/effects"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
)

// maxAnswers bounds the decisions a single intent may open. No base-set
// chain comes close.
const maxAnswers = 256

// Result summarizes a simulated game.
type Result struct {
	ArenaID  string
	Scores   []int
	Winner   int
	Turns    int
	Finished bool // false when the turn limit stopped the game
}

// Table seats one strategy per player of an arena and routes every decision
// to the strategy of the player it targets.
type Table struct {
	arena  *game.Arena
	seats  []Strategy
	logger *zap.Logger
}

// NewTable seats strategies in player order.
func NewTable(a *game.Arena, seats []Strategy, logger *zap.Logger) (*Table, error) {
	if len(seats) != a.NumPlayers() {
		return nil, apperrors.Newf(apperrors.CodeInvalidConfig, "%d strategies for %d players", len(seats), a.NumPlayers())
	}
	return &Table{arena: a, seats: seats, logger: logger}, nil
}

// Arena returns the game being played.
func (t *Table) Arena() *game.Arena { return t.arena }

// PlayAction plays k and answers every decision it opens.
func (t *Table) PlayAction(player int, k cards.Kind) error {
	d, err := t.arena.PlayAction(player, k)
	if err != nil {
		return err
	}
	return t.settle(d)
}

// settle answers decisions until the queue is resolved. A rejected answer
// falls back to choosing nothing before giving up.
func (t *Table) settle(d *effects.Decision) error {
	for answers := 0; d != nil; answers++ {
		if answers == maxAnswers {
			return apperrors.EffectPending(d.Description)
		}
		seat := t.seats[d.Player]
		selection := seat.Respond(t.arena, d.Player, *d)

		next, err := t.arena.SelectCards(d.Player, selection)
		if apperrors.IsCode(err, apperrors.CodeEffectPending) && len(selection) > 0 {
			if t.logger != nil {
				t.logger.Warn("selection rejected",
					zap.String("arena_id", t.arena.ID()),
					zap.String("strategy", seat.Name()),
					zap.Stringer("card", d.Card),
					zap.String("decision", d.Description),
					zap.Stringers("selection", selection),
				)
			}
			next, err = t.arena.SelectCards(d.Player, nil)
		}
		if err != nil {
			return fmt.Errorf("%s answering %s: %w", seat.Name(), d.Card, err)
		}
		d = next
	}
	return nil
}

// Play runs a to completion, or until maxTurns turns have been played when
// maxTurns is positive.
func Play(ctx context.Context, a *game.Arena, seats []Strategy, maxTurns int, logger *zap.Logger) (Result, error) {
	t, err := NewTable(a, seats, logger)
	if err != nil {
		return Result{}, err
	}
	a.Start()

	for !a.Finished() {
		if err := ctx.Err(); err != nil {
			return t.result(), err
		}
		turn := a.Turn()
		if maxTurns > 0 && turn.Number > maxTurns {
			break
		}

		player := turn.ActivePlayer
		if err := seats[player].TakeTurn(t, player); err != nil {
			return t.result(), fmt.Errorf("%s on turn %d: %w", seats[player].Name(), turn.Number, err)
		}
		if err := t.finishTurn(turn.Number, player); err != nil {
			return t.result(), err
		}
	}

	res := t.result()
	if logger != nil {
		logger.Debug("simulation finished",
			zap.String("arena_id", res.ArenaID),
			zap.Int("turns", res.Turns),
			zap.Ints("scores", res.Scores),
			zap.Bool("finished", res.Finished),
		)
	}
	return res, nil
}

// finishTurn ends the phases a strategy left open.
func (t *Table) finishTurn(number, player int) error {
	for !t.arena.Finished() && t.arena.Turn().Number == number {
		if d, ok := t.arena.Pending(); ok {
			if err := t.settle(&d); err != nil {
				return err
			}
			continue
		}
		if t.arena.Turn().Phase == rules.PhaseAction {
			if err := t.arena.EndPhase(player); err != nil {
				return err
			}
			continue
		}
		if _, err := t.arena.PlayAllTreasures(player); err != nil {
			return err
		}
		if err := t.arena.EndPhase(player); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) result() Result {
	return Result{
		ArenaID:  t.arena.ID(),
		Scores:   t.arena.Scores(),
		Winner:   t.arena.Winner(),
		Turns:    t.arena.Turn().Number - 1,
		Finished: t.arena.Finished(),
	}
}
