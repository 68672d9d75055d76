// Package watchers provides per-player tallies over arena events.
package watchers

import (
	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/rules"
)

// Keys of the standard watchers.
const (
	KeyCardsBought    = "CardsBoughtWatcher"
	KeyCursesReceived = "CursesReceivedWatcher"
	KeyAttacksBlocked = "AttacksBlockedWatcher"
	KeyIntentsRefused = "IntentsRefusedWatcher"
	KeyCardsTrashed   = "CardsTrashedWatcher"
)

// PlayerCountWatcher counts matching events per player.
type PlayerCountWatcher struct {
	*rules.BaseWatcher
	match  func(rules.Event) bool
	counts map[int]int // player -> count
}

// NewPlayerCountWatcher creates a watcher counting the events accepted by match.
func NewPlayerCountWatcher(key string, match func(rules.Event) bool) *PlayerCountWatcher {
	return &PlayerCountWatcher{
		BaseWatcher: rules.NewBaseWatcher(key),
		match:       match,
		counts:      make(map[int]int),
	}
}

// Watch implements the Watcher interface.
func (w *PlayerCountWatcher) Watch(event rules.Event) {
	if event.Player < 0 || !w.match(event) {
		return
	}
	w.counts[event.Player]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *PlayerCountWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.counts = make(map[int]int)
}

// Count returns the tally for a player.
func (w *PlayerCountWatcher) Count(player int) int {
	return w.counts[player]
}

// Total returns the tally across all players.
func (w *PlayerCountWatcher) Total() int {
	total := 0
	for _, n := range w.counts {
		total += n
	}
	return total
}

func ofType(t rules.EventType) func(rules.Event) bool {
	return func(e rules.Event) bool { return e.Type == t }
}

// NewCardsBoughtWatcher counts purchases.
func NewCardsBoughtWatcher() *PlayerCountWatcher {
	return NewPlayerCountWatcher(KeyCardsBought, ofType(rules.EventCardBought))
}

// NewCursesReceivedWatcher counts Curses gained, whether bought or handed out by an attack.
func NewCursesReceivedWatcher() *PlayerCountWatcher {
	return NewPlayerCountWatcher(KeyCursesReceived, func(e rules.Event) bool {
		return e.Type == rules.EventCardGained && e.Card == cards.Curse
	})
}

// NewAttacksBlockedWatcher counts attacks turned away by a revealed Moat.
// The player is the one who revealed it.
func NewAttacksBlockedWatcher() *PlayerCountWatcher {
	return NewPlayerCountWatcher(KeyAttacksBlocked, ofType(rules.EventAttackBlocked))
}

// NewIntentsRefusedWatcher counts intents the arena rejected.
func NewIntentsRefusedWatcher() *PlayerCountWatcher {
	return NewPlayerCountWatcher(KeyIntentsRefused, ofType(rules.EventIntentRefused))
}

// NewCardsTrashedWatcher counts cards moved to the trash.
func NewCardsTrashedWatcher() *PlayerCountWatcher {
	return NewPlayerCountWatcher(KeyCardsTrashed, ofType(rules.EventCardTrashed))
}

// Standard returns a registry holding one of each standard watcher.
func Standard() *rules.WatcherRegistry {
	registry := rules.NewWatcherRegistry()
	registry.AddWatcher(NewCardsBoughtWatcher())
	registry.AddWatcher(NewCursesReceivedWatcher())
	registry.AddWatcher(NewAttacksBlockedWatcher())
	registry.AddWatcher(NewIntentsRefusedWatcher())
	registry.AddWatcher(NewCardsTrashedWatcher())
	return registry
}

// CountFor reads a player's tally from the watcher registered under key.
// Missing or non-counting watchers read as zero.
func CountFor(registry *rules.WatcherRegistry, key string, player int) int {
	w, ok := registry.GetWatcher(key).(*PlayerCountWatcher)
	if !ok {
		return 0
	}
	return w.Count(player)
}
