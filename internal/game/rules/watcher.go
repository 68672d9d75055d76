package rules

import (
	"sort"
	"sync"
)

// Watcher observes game events and tracks a condition or a tally.
type Watcher interface {
	// Watch is called for every event published while the watcher is registered.
	Watch(event Event)

	// Reset clears the watcher's condition and state.
	Reset()

	// ConditionMet returns true once the watched event has been seen.
	ConditionMet() bool

	// GetKey returns a unique key for this watcher instance.
	GetKey() string
}

// BaseWatcher provides the condition flag and key shared by watchers.
type BaseWatcher struct {
	condition bool
	key       string
}

// NewBaseWatcher creates a base watcher registered under key.
func NewBaseWatcher(key string) *BaseWatcher {
	return &BaseWatcher{key: key}
}

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// GetKey returns the unique key for this watcher.
func (bw *BaseWatcher) GetKey() string {
	return bw.key
}

// WatcherRegistry manages the watchers of one game.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher // key -> watcher
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
	}
}

// AddWatcher adds a watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()
	wr.watchers[watcher.GetKey()] = watcher
}

// RemoveWatcher removes a watcher from the registry.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	delete(wr.watchers, key)
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// GetAllWatchers returns all registered watchers ordered by key.
func (wr *WatcherRegistry) GetAllWatchers() []Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	result := make([]Watcher, 0, len(wr.watchers))
	for _, watcher := range wr.watchers {
		result = append(result, watcher)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GetKey() < result[j].GetKey() })
	return result
}

// ResetWatchers resets all watchers.
func (wr *WatcherRegistry) ResetWatchers() {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, watcher := range wr.watchers {
		watcher.Reset()
	}
}

// NotifyWatchers notifies all watchers of an event.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()

	// Watchers filter internally
	for _, watcher := range wr.watchers {
		watcher.Watch(event)
	}
}

// Attach feeds every event published on bus to the registry. The returned
// function detaches it again.
func (wr *WatcherRegistry) Attach(bus *EventBus) (detach func()) {
	handle := bus.Subscribe(wr.NotifyWatchers)
	return func() { bus.Unsubscribe(handle) }
}
