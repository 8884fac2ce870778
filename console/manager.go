package console

import (
	"sync"

	"dar_almal_go/services"

	"gorm.io/gorm"
)

// Manager hands out one Console per admin session. Consoles for sessions
// that logged out are dropped explicitly; expired sessions stop reaching
// their console once the middleware rejects the cookie.
type Manager struct {
	mu       sync.Mutex
	db       *gorm.DB
	geocoder services.Geocoder
	consoles map[string]*Console
}

// NewManager creates a console registry backed by the given store and geocoder
func NewManager(db *gorm.DB, geocoder services.Geocoder) *Manager {
	return &Manager{
		db:       db,
		geocoder: geocoder,
		consoles: make(map[string]*Console),
	}
}

// Get returns the console for a session, creating it on first use
func (m *Manager) Get(sessionID string) *Console {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.consoles[sessionID]; ok {
		return c
	}
	c := New(m.db, m.geocoder)
	m.consoles[sessionID] = c
	return c
}

// Drop removes a session's console (logout)
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.consoles, sessionID)
}
