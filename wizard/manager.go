package wizard

import (
	"fmt"
	"sync"
)

// Manager tracks open wizard sessions by id. The UI opens at most one wizard
// per browsing session; the map exists so concurrent users each get their own.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Open creates a fresh session.
func (m *Manager) Open() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := NewSession()
	m.sessions[s.ID] = s
	return s
}

// Get returns an open session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no open wizard session %q", id)
	}
	return s, nil
}

// Close discards a session.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
