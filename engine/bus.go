package engine

import "sync"

type EventType int

type Event struct {
	Type    EventType
	Payload any
}

type Handler func(Event)

// EventBus is a synchronous in-process publish/subscribe channel. The wizard
// and notifier publish; wiring and presentation subscribe. It replaces any
// ambient global "data changed" signal: the bus is passed through explicit
// construction.
type EventBus struct {
	mu       sync.RWMutex
	byType   map[EventType][]Handler
	catchAll []Handler
}

func NewEventBus() *EventBus {
	return &EventBus{byType: make(map[EventType][]Handler)}
}

// Subscribe registers a handler for every event.
func (b *EventBus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.catchAll = append(b.catchAll, h)
}

// SubscribeTypes registers a handler for the given event types only.
func (b *EventBus) SubscribeTypes(h Handler, types ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range types {
		b.byType[t] = append(b.byType[t], h)
	}
}

// Emit delivers the event to every matching subscriber, synchronously, in
// registration order.
func (b *EventBus) Emit(evt Event) {
	b.mu.RLock()
	typed := b.byType[evt.Type]
	all := b.catchAll
	b.mu.RUnlock()

	for _, h := range typed {
		h(evt)
	}
	for _, h := range all {
		h(evt)
	}
}
