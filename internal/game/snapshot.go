package game

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/effects"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
	"github.com/kingdomworks/dominion-engine-go/internal/game/supply"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

// PlayerSnapshot is a copy of one player's zones, bottom card first.
type PlayerSnapshot struct {
	Draw    []cards.Kind
	Hand    []cards.Kind
	Play    []cards.Kind
	Stage   []cards.Kind
	Discard []cards.Kind
}

// Snapshot is a point-in-time copy of an arena. It shares nothing with the
// arena it was taken from.
type Snapshot struct {
	ArenaID   string
	Turn      rules.Turn
	Players   []PlayerSnapshot
	Supply    []supply.Entry
	Trash     []cards.Kind
	Queued    []string
	Decision  *effects.Decision
	Finished  bool
	Timestamp time.Time
}

// Snapshot copies the full game state.
func (a *Arena) Snapshot() *Snapshot {
	players := make([]PlayerSnapshot, len(a.players))
	for i, p := range a.players {
		players[i] = PlayerSnapshot{
			Draw:    p.Draw.Cards(),
			Hand:    p.Hand.Cards(),
			Play:    p.Play.Cards(),
			Stage:   p.Stage.Cards(),
			Discard: p.Discard.Cards(),
		}
	}
	return &Snapshot{
		ArenaID:   a.id,
		Turn:      a.turn.State(),
		Players:   players,
		Supply:    a.supply.Entries(),
		Trash:     a.trash.Cards(),
		Queued:    a.queue.Cards(),
		Decision:  a.decision(),
		Finished:  a.finished,
		Timestamp: time.Now(),
	}
}

// Checksum returns the SHA-256 of the snapshot's canonical rendering. The
// arena id and timestamp are left out, so two arenas dealt from the same
// seed and driven by the same intents agree.
func (s *Snapshot) Checksum() string {
	sum := sha256.Sum256([]byte(s.canonical()))
	return hex.EncodeToString(sum[:])
}

func (s *Snapshot) canonical() string {
	var b strings.Builder

	fmt.Fprintf(&b, "TURN:%d|%d|%s|%d|%d|%d|%t\n",
		s.Turn.Number,
		s.Turn.ActivePlayer,
		s.Turn.Phase,
		s.Turn.Actions,
		s.Turn.Buys,
		s.Turn.Coins,
		s.Finished,
	)
	for i, p := range s.Players {
		fmt.Fprintf(&b, "PLAYER:%d|draw=%s|hand=%s|play=%s|stage=%s|discard=%s\n",
			i,
			joinKinds(p.Draw),
			joinKinds(p.Hand),
			joinKinds(p.Play),
			joinKinds(p.Stage),
			joinKinds(p.Discard),
		)
	}
	for _, e := range s.Supply {
		fmt.Fprintf(&b, "SUPPLY:%s|%d\n", e.Kind, e.Count)
	}
	fmt.Fprintf(&b, "TRASH:%s\n", joinKinds(s.Trash))
	fmt.Fprintf(&b, "QUEUE:%s\n", strings.Join(s.Queued, ","))
	if s.Decision != nil {
		fmt.Fprintf(&b, "DECISION:%s|%d|%s\n", s.Decision.Card, s.Decision.Player, s.Decision.Description)
	}
	return b.String()
}

func joinKinds(ks []cards.Kind) string {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}

// bookmark is the arena state captured before an intent runs.
type bookmark struct {
	turn     *rules.TurnController
	players  []*zones.Player
	supply   *supply.Supply
	trash    zones.Pile
	queue    *effects.Queue
	rng      []byte
	finished bool
}

func (a *Arena) bookmark() *bookmark {
	players := make([]*zones.Player, len(a.players))
	for i, p := range a.players {
		players[i] = p.Clone()
	}
	// PCG state marshalling cannot fail.
	rng, _ := a.src.MarshalBinary()
	return &bookmark{
		turn:     a.turn.Clone(),
		players:  players,
		supply:   a.supply.Clone(),
		trash:    a.trash.Cards(),
		queue:    a.queue.Clone(),
		rng:      rng,
		finished: a.finished,
	}
}

// restore rewinds the arena to b. The RNG source is rewound in place since
// every player's zones share it.
func (a *Arena) restore(b *bookmark) {
	a.turn = b.turn
	a.players = b.players
	a.supply = b.supply
	a.trash = b.trash
	a.queue = b.queue
	a.finished = b.finished
	if err := a.src.UnmarshalBinary(b.rng); err != nil {
		panic(fmt.Sprintf("restore rng: %v", err))
	}
}
