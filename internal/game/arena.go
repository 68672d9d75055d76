// Package game composes the card catalog, zones, supply, turn controller
// and effect queue into an Arena: one game of Dominion behind a single
// mutation entry point.
package game

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/effects"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/supply"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

const (
	MinPlayers = 2
	MaxPlayers = 6

	// pcgStream is the fixed second PCG word; games differ by seed only.
	pcgStream = 0x9e3779b97f4a7c15
)

// Options configures a new arena.
type Options struct {
	Players     int
	Kingdom     []cards.Kind   // Defaults to the First Game preset
	Seed        uint64         // Shuffle seed; equal seeds give equal games
	Catalog     *cards.Catalog // Defaults to cards.Default()
	FirstPlayer int
	Record      bool // Keep a replay of the state at every turn boundary
}

// Arena is one game in progress. It owns all state; callers mutate it only
// through its intent methods, each of which fully applies or leaves the game
// unchanged. An Arena is not safe for concurrent use.
type Arena struct {
	id      string
	logger  *zap.Logger
	catalog *cards.Catalog

	src *rand.PCG

	turn    *rules.TurnController
	players []*zones.Player
	supply  *supply.Supply
	trash   zones.Pile
	queue   *effects.Queue

	bus      *rules.EventBus
	outbox   []rules.Event
	finished bool
	replay   *Replay
}

// NewArena deals a new game.
func NewArena(opts Options, logger *zap.Logger) (*Arena, error) {
	if opts.Players < MinPlayers || opts.Players > MaxPlayers {
		return nil, apperrors.Newf(apperrors.CodeInvalidConfig, "players must be between %d and %d, got %d", MinPlayers, MaxPlayers, opts.Players)
	}
	if opts.FirstPlayer < 0 || opts.FirstPlayer >= opts.Players {
		return nil, apperrors.Newf(apperrors.CodeInvalidConfig, "first player %d out of range", opts.FirstPlayer)
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = cards.Default()
	}
	kingdom := opts.Kingdom
	if kingdom == nil {
		kingdom = cards.FirstGame.Cards
	}

	sup, err := supply.New(catalog, kingdom, opts.Players)
	if err != nil {
		return nil, err
	}

	src := rand.NewPCG(opts.Seed, pcgStream)
	rng := rand.New(src)

	id := uuid.New().String()
	var stepLogger *zap.Logger
	if logger != nil {
		stepLogger = logger.Named("effects").With(zap.String("arena_id", id))
	}

	a := &Arena{
		id:      id,
		logger:  logger,
		catalog: catalog,
		src:     src,
		turn:    rules.NewTurnController(opts.Players, opts.FirstPlayer),
		players: make([]*zones.Player, opts.Players),
		supply:  sup,
		queue:   effects.NewQueue(stepLogger),
		bus:     rules.NewEventBus(),
	}
	for i := range a.players {
		a.players[i] = zones.NewPlayer(rng)
		a.players[i].DrawCards(zones.HandSize)
	}
	if opts.Record {
		a.replay = NewReplay(a.id)
		a.replay.SetLogger(logger)
		a.replay.RecordState(a.Snapshot())
	}

	if a.logger != nil {
		a.logger.Info("arena created",
			zap.String("arena_id", a.id),
			zap.Int("players", opts.Players),
			zap.Uint64("seed", opts.Seed),
			zap.Stringers("kingdom", kingdom),
		)
	}
	return a, nil
}

// ID returns the arena's unique identifier.
func (a *Arena) ID() string { return a.id }

// Catalog returns the card catalog in use.
func (a *Arena) Catalog() *cards.Catalog { return a.catalog }

// Events returns the bus intents publish to. Events of a rejected intent are
// never delivered.
func (a *Arena) Events() *rules.EventBus { return a.bus }

// Replay returns the recorded replay, or nil when recording is off.
func (a *Arena) Replay() *Replay { return a.replay }

// NumPlayers returns the number of seats.
func (a *Arena) NumPlayers() int { return len(a.players) }

// Start announces the game to subscribers.
func (a *Arena) Start() {
	a.bus.Publish(rules.NewEventWithAmount(rules.EventGameStarted, a.turn.ActivePlayer(), len(a.players)))
	a.bus.Publish(rules.NewEventWithAmount(rules.EventTurnStarted, a.turn.ActivePlayer(), a.turn.TurnNumber()))
}

// Play plays k from player's hand, as an action or a treasure depending on
// the card. It returns the decision the card is waiting on, if any.
func (a *Arena) Play(player int, k cards.Kind) (*effects.Decision, error) {
	switch {
	case a.catalog.IsAction(k):
		return a.PlayAction(player, k)
	case a.catalog.IsTreasure(k):
		return nil, a.PlayTreasure(player, k)
	default:
		err := a.intent("play", player, k, func() error {
			if err := a.checkIntent(player); err != nil {
				return err
			}
			return apperrors.Newf(apperrors.CodeInvalidCardChoice, "%s cannot be played", k)
		})
		return nil, err
	}
}

// PlayAction plays action card k from player's hand and resolves as much of
// its effect as possible without input.
func (a *Arena) PlayAction(player int, k cards.Kind) (*effects.Decision, error) {
	err := a.intent("play_action", player, k, func() error {
		if err := a.checkIntent(player); err != nil {
			return err
		}
		if err := a.turn.CheckPhase(rules.PhaseAction); err != nil {
			return err
		}
		if !a.catalog.IsAction(k) {
			return apperrors.Newf(apperrors.CodeInvalidCardChoice, "%s is not an action", k)
		}
		if !a.players[player].Hand.Contains(k) {
			return apperrors.Newf(apperrors.CodeInvalidCardChoice, "%s is not in hand", k)
		}
		if err := a.turn.UseAction(); err != nil {
			return err
		}

		p := a.players[player]
		if _, err := p.Hand.Move(&p.Play, zones.ByKind(k)); err != nil {
			return err
		}
		a.publish(rules.NewMoveEvent(rules.EventCardPlayed, player, k, zones.Hand(player), zones.Play(player)))

		a.queue.Enqueue(effects.NewPendingCardAction(k))
		a.publish(rules.NewEvent(rules.EventEffectQueued, player, k))
		return a.resolve(nil)
	})
	if err != nil {
		return nil, err
	}
	return a.decision(), nil
}

// PlayTreasure plays treasure k from player's hand for its coin value.
func (a *Arena) PlayTreasure(player int, k cards.Kind) error {
	return a.intent("play_treasure", player, k, func() error {
		return a.playTreasure(player, k)
	})
}

func (a *Arena) playTreasure(player int, k cards.Kind) error {
	if err := a.checkIntent(player); err != nil {
		return err
	}
	if err := a.turn.CheckPhase(rules.PhaseBuy); err != nil {
		return err
	}
	if !a.catalog.IsTreasure(k) {
		return apperrors.Newf(apperrors.CodeInvalidCardChoice, "%s is not a treasure", k)
	}
	p := a.players[player]
	if _, err := p.Hand.Move(&p.Play, zones.ByKind(k)); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidCardChoice, k.String()+" is not in hand", err)
	}
	if err := a.turn.PlayTreasure(k, a.catalog.TreasureValue(k)); err != nil {
		return err
	}
	evt := rules.NewMoveEvent(rules.EventCardPlayed, player, k, zones.Hand(player), zones.Play(player))
	evt.Amount = a.catalog.TreasureValue(k)
	a.publish(evt)
	return nil
}

// PlayAllTreasures plays every treasure in player's hand and returns how many
// were played.
func (a *Arena) PlayAllTreasures(player int) (int, error) {
	played := 0
	err := a.intent("play_all_treasures", player, cards.KindUnknown, func() error {
		if err := a.checkIntent(player); err != nil {
			return err
		}
		for _, k := range a.players[player].Hand.Cards() {
			if !a.catalog.IsTreasure(k) {
				continue
			}
			if err := a.playTreasure(player, k); err != nil {
				return err
			}
			played++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return played, nil
}

// Buy buys k from the supply into player's discard pile.
func (a *Arena) Buy(player int, k cards.Kind) error {
	return a.intent("buy", player, k, func() error {
		if err := a.checkIntent(player); err != nil {
			return err
		}
		if err := a.turn.CheckPhase(rules.PhaseBuy); err != nil {
			return err
		}
		if !a.supply.Has(k) {
			return apperrors.Newf(apperrors.CodeNoSuchPile, "no %s pile in the supply", k)
		}
		if a.supply.Count(k) == 0 {
			return apperrors.Newf(apperrors.CodeNoMoreCards, "%s pile is empty", k)
		}
		cost := a.catalog.Cost(k)
		if err := a.turn.Purchase(cost); err != nil {
			return err
		}
		if _, err := a.supply.Remove(k); err != nil {
			return err
		}
		a.players[player].Discard.Push(k)

		evt := rules.NewMoveEvent(rules.EventCardBought, player, k, zones.SupplyPile(), zones.Discard(player))
		evt.Amount = cost
		a.publish(evt)
		return nil
	})
}

// EndPhase moves player's turn from the action phase to the buy phase, or
// from the buy phase through cleanup to the next player's turn.
func (a *Arena) EndPhase(player int) error {
	return a.intent("end_phase", player, cards.KindUnknown, func() error {
		if err := a.checkIntent(player); err != nil {
			return err
		}
		passed, err := a.turn.EndPhase(a.queue.IsResolved(), a.pendingDescription())
		if err != nil {
			return err
		}
		if !passed {
			evt := rules.NewEvent(rules.EventPhaseChanged, player, cards.KindUnknown)
			evt.Description = a.turn.Phase().String()
			a.publish(evt)
			return nil
		}

		a.players[player].Cleanup()
		a.publish(rules.NewEvent(rules.EventCleanup, player, cards.KindUnknown))

		if a.supply.IsGameOver() {
			a.finished = true
			a.publish(rules.NewEventWithAmount(rules.EventGameOver, a.Winner(), a.turn.TurnNumber()-1))
			if a.logger != nil {
				a.logger.Info("game over",
					zap.String("arena_id", a.id),
					zap.Ints("scores", a.Scores()),
					zap.Int("winner", a.Winner()),
					zap.Int("turns", a.turn.TurnNumber()-1),
				)
			}
		} else {
			a.publish(rules.NewEventWithAmount(rules.EventTurnStarted, a.turn.ActivePlayer(), a.turn.TurnNumber()))
		}
		if a.replay != nil {
			a.replay.RecordState(a.Snapshot())
		}
		return nil
	})
}

// SelectCards answers the pending decision on behalf of player. It returns
// the next decision, if the card is still waiting on one. A rejected
// selection fails with EffectPending and changes nothing.
func (a *Arena) SelectCards(player int, selection []cards.Kind) (*effects.Decision, error) {
	if selection == nil {
		selection = []cards.Kind{}
	}
	err := a.intent("select_cards", player, cards.KindUnknown, func() error {
		if a.finished {
			return apperrors.New(apperrors.CodeGameOver, "game is over")
		}
		if !a.turn.ValidPlayer(player) {
			return apperrors.Newf(apperrors.CodeInvalidPlayerID, "no player %d", player)
		}
		if a.queue.IsResolved() {
			return apperrors.New(apperrors.CodeInvalidCardChoice, "no decision pending")
		}
		if err := a.queue.Answer(a.state(), effects.Selection{Player: player, Cards: selection}); err != nil {
			return err
		}
		a.announcePending()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a.decision(), nil
}

// Pending returns the decision blocking the game, if any.
func (a *Arena) Pending() (effects.Decision, bool) {
	return a.queue.Pending(a.state())
}

// PendingCards lists the cards whose effects are still queued, front first.
func (a *Arena) PendingCards() []string {
	return a.queue.Cards()
}

// View returns a copy of the cards in loc, bottom first.
func (a *Arena) View(loc zones.Location) ([]cards.Kind, error) {
	if loc.Zone == zones.ZoneTrash {
		return a.trash.Cards(), nil
	}
	if !a.turn.ValidPlayer(loc.Player) {
		return nil, apperrors.Newf(apperrors.CodeInvalidPlayerID, "no player %d", loc.Player)
	}
	pile := a.players[loc.Player].Pile(loc.Zone)
	if pile == nil {
		return nil, apperrors.Newf(apperrors.CodeNoSuchPile, "no %s zone", loc.Zone)
	}
	return pile.Cards(), nil
}

// Supply returns the supply piles, kingdom first.
func (a *Arena) Supply() []supply.Entry {
	return a.supply.Entries()
}

// SupplyCount returns how many k remain in the supply.
func (a *Arena) SupplyCount(k cards.Kind) int {
	return a.supply.Count(k)
}

// Turn returns the turn in progress.
func (a *Arena) Turn() rules.Turn {
	return a.turn.State()
}

// IsGameOver reports whether the supply meets an end condition.
func (a *Arena) IsGameOver() bool {
	return a.supply.IsGameOver()
}

// Finished reports whether a turn has ended with the game over. No intent is
// accepted afterwards.
func (a *Arena) Finished() bool {
	return a.finished
}

// Deck returns every card player owns.
func (a *Arena) Deck(player int) []cards.Kind {
	if !a.turn.ValidPlayer(player) {
		return nil
	}
	return a.players[player].Cards()
}

// checkIntent applies the checks shared by every turn intent.
func (a *Arena) checkIntent(player int) error {
	if a.finished {
		return apperrors.New(apperrors.CodeGameOver, "game is over")
	}
	if err := a.turn.CheckActive(player); err != nil {
		return err
	}
	if !a.queue.IsResolved() {
		return apperrors.EffectPending(a.pendingDescription())
	}
	return nil
}

// resolve drains the queue. Stopping at a decision is not an error here.
func (a *Arena) resolve(sel *effects.Selection) error {
	err := a.queue.Resolve(a.state(), sel)
	if err != nil && !apperrors.IsCode(err, apperrors.CodeEffectPending) {
		return err
	}
	a.announcePending()
	return nil
}

func (a *Arena) announcePending() {
	d, ok := a.queue.Pending(a.state())
	if !ok {
		return
	}
	evt := rules.NewEvent(rules.EventDecisionPending, d.Player, d.Card)
	evt.Description = d.Description
	a.publish(evt)
}

func (a *Arena) decision() *effects.Decision {
	d, ok := a.queue.Pending(a.state())
	if !ok {
		return nil
	}
	return &d
}

func (a *Arena) pendingDescription() string {
	d, _ := a.queue.Pending(a.state())
	return d.Description
}

// intent runs fn as one all-or-nothing change. Events fn publishes are held
// back until it succeeds; on failure the state is rolled back to the
// bookmark taken before fn ran.
func (a *Arena) intent(name string, player int, k cards.Kind, fn func() error) error {
	mark := a.bookmark()
	a.outbox = a.outbox[:0]

	if err := fn(); err != nil {
		a.restore(mark)
		a.outbox = a.outbox[:0]

		refused := rules.NewEvent(rules.EventIntentRefused, player, k)
		refused.Description = err.Error()
		a.bus.Publish(refused)

		if a.logger != nil {
			a.logger.Debug("intent refused",
				zap.String("arena_id", a.id),
				zap.String("intent", name),
				zap.Int("player", player),
				zap.Stringer("card", k),
				zap.String("code", string(apperrors.GetCode(err))),
				zap.Error(err),
			)
		}
		return err
	}

	events := a.outbox
	a.outbox = nil
	a.bus.PublishBatch(events)

	if a.logger != nil {
		a.logger.Debug("intent applied",
			zap.String("arena_id", a.id),
			zap.String("intent", name),
			zap.Int("player", player),
			zap.Stringer("card", k),
			zap.Int("events", len(events)),
		)
	}
	return nil
}

func (a *Arena) publish(evt rules.Event) {
	a.outbox = append(a.outbox, evt)
}

// state adapts the arena to the view effect steps work against.
func (a *Arena) state() effects.State {
	return stepState{a: a}
}

type stepState struct {
	a *Arena
}

func (s stepState) Catalog() *cards.Catalog { return s.a.catalog }
func (s stepState) Turn() *rules.TurnController { return s.a.turn }
func (s stepState) Supply() *supply.Supply { return s.a.supply }
func (s stepState) Player(id int) *zones.Player { return s.a.players[id] }
func (s stepState) Trash() *zones.Pile { return &s.a.trash }
func (s stepState) NumPlayers() int { return len(s.a.players) }
func (s stepState) Publish(evt rules.Event) { s.a.publish(evt) }
