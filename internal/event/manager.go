// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/stmtree/internal/logger"
)

// Handler is called synchronously for each dispatched event.
type Handler func(e Event)

// Subscription identifies a registered handler.
type Subscription struct {
	eventType Type
	id        uint64
}

type registered struct {
	id      uint64
	handler Handler
}

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Type][]registered
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]registered),
	}
}

// Subscribe adds a handler for eventType.
func (m *Manager) Subscribe(eventType Type, handler Handler) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], registered{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "Handler %d subscribed to %s", m.nextID, eventType)
	return Subscription{eventType: eventType, id: m.nextID}
}

// Unsubscribe removes a handler. Unknown subscriptions are ignored.
func (m *Manager) Unsubscribe(sub Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.handlers[sub.eventType]
	for i, r := range list {
		if r.id == sub.id {
			// Copy so a Dispatch iterating the old slice is unaffected.
			next := make([]registered, 0, len(list)-1)
			next = append(next, list[:i]...)
			m.handlers[sub.eventType] = append(next, list[i+1:]...)
			return
		}
	}
}

// Dispatch sends an event to all handlers registered for its type.
// Handlers run on the caller's goroutine, in subscription order.
func (m *Manager) Dispatch(eventType Type, data any) {
	if m == nil {
		return
	}

	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	e := Event{Type: eventType, Data: data}
	for _, r := range handlers {
		r.handler(e)
	}
}
