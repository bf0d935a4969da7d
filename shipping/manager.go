package shipping

import (
	"sync"
	"time"
)

// Manager hands out one Calculator per visitor session and store, and drops
// idle ones so abandoned checkouts don't pile up.
type Manager struct {
	geo   Geocoder
	zones ZoneSource

	mu       sync.Mutex
	sessions map[string]*Calculator
}

func NewManager(g Geocoder, z ZoneSource) *Manager {
	return &Manager{
		geo:      g,
		zones:    z,
		sessions: make(map[string]*Calculator),
	}
}

func key(sessionID, storeID string) string {
	return sessionID + "|" + storeID
}

// GetOrCreate returns the session's calculator for a store.
func (m *Manager) GetOrCreate(sessionID, storeID string) *Calculator {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(sessionID, storeID)
	if c, ok := m.sessions[k]; ok {
		return c
	}
	c := NewCalculator(storeID, m.geo, m.zones)
	m.sessions[k] = c

	// drop idle sessions after an hour
	go func() {
		time.Sleep(1 * time.Hour)
		m.Drop(sessionID, storeID)
	}()

	return c
}

// Drop removes the session's calculator, invalidating any pending
// calculation. Called when the checkout closes.
func (m *Manager) Drop(sessionID, storeID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(sessionID, storeID)
	if c, ok := m.sessions[k]; ok {
		c.Reset()
		delete(m.sessions, k)
	}
}
