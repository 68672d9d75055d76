package effects

import (
	"go.uber.org/zap"

	apperrors "github.com/kingdomworks/dominion-engine-go/internal/errors"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
)

// Queue is the FIFO of card actions waiting to resolve. An empty queue
// means nothing is pending.
type Queue struct {
	actions []*PendingCardAction
	logger  *zap.Logger
}

// NewQueue creates an empty queue. A nil logger discards step logs.
func NewQueue(logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Queue{
		actions: make([]*PendingCardAction, 0, 4),
		logger:  logger,
	}
}

// Enqueue adds an action at the back.
func (q *Queue) Enqueue(action *PendingCardAction) {
	q.actions = append(q.actions, action)

	q.logger.Debug("enqueued card action",
		zap.Stringer("card", action.Card),
		zap.Int("steps", len(action.Steps)),
		zap.Int("queued", len(q.actions)))
}

// IsResolved reports whether the queue is empty.
func (q *Queue) IsResolved() bool {
	return len(q.actions) == 0
}

// Len returns the number of queued actions.
func (q *Queue) Len() int {
	return len(q.actions)
}

// Cards lists the cards of the queued actions, front first.
func (q *Queue) Cards() []string {
	out := make([]string, len(q.actions))
	for i, a := range q.actions {
		out[i] = a.Card.String()
	}
	return out
}

// Pending returns the decision blocking the queue. Resolve always stops in
// front of a conditional step, so a non-empty queue has exactly one.
func (q *Queue) Pending(st State) (Decision, bool) {
	if len(q.actions) == 0 || len(q.actions[0].Steps) == 0 {
		return Decision{}, false
	}
	front := q.actions[0]
	c, ok := front.Steps[0].(Conditional)
	if !ok {
		return Decision{}, false
	}
	return Decision{
		Card:        front.Card,
		Player:      c.target(st),
		Description: c.Description,
	}, true
}

// Resolve drains the queue. sel answers the first conditional step reached,
// and only that one: every later step sees no selection. On failure the
// queue is left exactly as it was before the failing step and the error
// carries that step's description.
func (q *Queue) Resolve(st State, sel *Selection) error {
	_, err := q.resolve(st, sel)
	return err
}

// Answer resolves the queue with a player's selection. It fails only when
// the selection is rejected by the blocking step; stopping at a later
// decision counts as progress.
func (q *Queue) Answer(st State, sel Selection) error {
	applied, err := q.resolve(st, &sel)
	if err != nil && applied > 0 && apperrors.IsCode(err, apperrors.CodeEffectPending) {
		return nil
	}
	return err
}

func (q *Queue) resolve(st State, sel *Selection) (int, error) {
	applied := 0
	for len(q.actions) > 0 {
		front := q.actions[0]
		if len(front.Steps) == 0 {
			q.actions = q.actions[1:]
			continue
		}

		out, err := q.evaluate(st, front, sel)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeEffectPending) {
				q.logger.Debug("effect step blocked",
					zap.Stringer("card", front.Card),
					zap.String("description", apperrors.PendingDescription(err)),
					zap.Int("target", targetOf(st, front.Steps[0])),
					zap.Bool("answered", sel != nil))
			}
			return applied, err
		}
		applied++

		q.logger.Debug("effect step applied",
			zap.Stringer("card", front.Card),
			zap.String("step", stepKind(front.Steps[0])),
			zap.Int("follow", len(out.Follow)),
			zap.Int("spawn", len(out.Spawn)))

		rest := make([]Step, 0, len(out.Follow)+len(front.Steps)-1)
		rest = append(rest, out.Follow...)
		rest = append(rest, front.Steps[1:]...)
		q.actions[0] = &PendingCardAction{Card: front.Card, Steps: rest}
		q.actions = append(q.actions, out.Spawn...)
		if len(rest) == 0 {
			q.actions = q.actions[1:]
		}

		sel = nil
	}
	return applied, nil
}

func (q *Queue) evaluate(st State, front *PendingCardAction, sel *Selection) (Outcome, error) {
	switch s := front.Steps[0].(type) {
	case Unconditional:
		return s.Apply(st, front.Card), nil
	case Conditional:
		if sel == nil {
			return Outcome{}, apperrors.EffectPending(s.Description)
		}
		player := s.target(st)
		if sel.Player != player {
			return Outcome{}, apperrors.EffectPending(s.Description)
		}
		out, ok := s.Apply(st, player, sel.Cards)
		if !ok {
			return Outcome{}, apperrors.EffectPending(s.Description)
		}
		evt := rules.NewEvent(rules.EventDecisionMade, player, front.Card)
		evt.Description = s.Description
		evt.Amount = len(sel.Cards)
		st.Publish(evt)
		return out, nil
	default:
		return Outcome{}, apperrors.Newf(apperrors.CodeUnknown, "unknown step type %T", s)
	}
}

// Clone copies the queue. Step lists are never modified in place, so the
// copy may share them.
func (q *Queue) Clone() *Queue {
	actions := make([]*PendingCardAction, len(q.actions))
	for i, a := range q.actions {
		cpy := *a
		actions[i] = &cpy
	}
	return &Queue{actions: actions, logger: q.logger}
}

func stepKind(s Step) string {
	switch s.(type) {
	case Unconditional:
		return "unconditional"
	case Conditional:
		return "conditional"
	default:
		return "unknown"
	}
}

// targetOf is the player a conditional step waits on, or -1.
func targetOf(st State, s Step) int {
	if c, ok := s.(Conditional); ok {
		return c.target(st)
	}
	return -1
}
