package rules

import (
	"sync"
	"time"

	"github.com/kingdomworks/dominion-engine-go/internal/game/cards"
	"github.com/kingdomworks/dominion-engine-go/internal/game/zones"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// Game/Turn events
	EventGameStarted   EventType = "GAME_STARTED"
	EventTurnStarted   EventType = "TURN_STARTED"
	EventPhaseChanged  EventType = "PHASE_CHANGED"
	EventCleanup       EventType = "CLEANUP"
	EventGameOver      EventType = "GAME_OVER"
	EventIntentRefused EventType = "INTENT_REFUSED"

	// Card events
	EventCardPlayed    EventType = "CARD_PLAYED"
	EventCardBought    EventType = "CARD_BOUGHT"
	EventCardGained    EventType = "CARD_GAINED"
	EventCardTrashed   EventType = "CARD_TRASHED"
	EventCardDiscarded EventType = "CARD_DISCARDED"
	EventCardTopdecked EventType = "CARD_TOPDECKED"
	EventCardsDrawn    EventType = "CARDS_DRAWN"
	EventCardRevealed  EventType = "CARD_REVEALED"

	// Effect events
	EventEffectQueued    EventType = "EFFECT_QUEUED"
	EventDecisionPending EventType = "DECISION_PENDING"
	EventDecisionMade    EventType = "DECISION_MADE"
	EventAttackBlocked   EventType = "ATTACK_BLOCKED"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	Player      int            // Player the event happened to
	Card        cards.Kind     // Card involved, KindUnknown if none
	Source      cards.Kind     // Card whose effect caused the event
	From        zones.Location // Origin zone for card movements
	To          zones.Location // Destination zone for card movements
	Amount      int            // Numeric value (cards drawn, coins, turn number)
	Description string         // Human-readable description
	Timestamp   time.Time      // When the event occurred
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	order          []int
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	bus.order = append(bus.order, handle)
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if _, ok := bus.listeners[handle]; ok {
		delete(bus.listeners, handle)
		for i, h := range bus.order {
			if h == handle {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
		return
	}
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously,
// in subscription order. Listeners must not publish or subscribe themselves.
func (bus *EventBus) Publish(event Event) {
	if bus == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, handle := range bus.order {
		bus.listeners[handle](event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// PublishBatch publishes multiple events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// NewEvent creates a new event for player and card.
func NewEvent(eventType EventType, player int, card cards.Kind) Event {
	return Event{
		Type:   eventType,
		Player: player,
		Card:   card,
	}
}

// NewMoveEvent creates an event for a card moving between zones.
func NewMoveEvent(eventType EventType, player int, card cards.Kind, from, to zones.Location) Event {
	evt := NewEvent(eventType, player, card)
	evt.From = from
	evt.To = to
	return evt
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, player int, amount int) Event {
	evt := NewEvent(eventType, player, cards.KindUnknown)
	evt.Amount = amount
	return evt
}
