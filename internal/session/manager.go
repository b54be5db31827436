package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/domain"
)

// State is everything one browser session owns: its cart, its catalog
// engine (filter state is per-customer), and its login facade. The cart
// and engine perform no locking of their own, so handlers must hold Mu
// while touching them; requests for different sessions never contend.
type State struct {
	ID      string
	Session *Session
	Cart    *cart.Cart
	Catalog *catalog.Engine

	Mu       sync.Mutex
	lastSeen time.Time
}

// Manager owns the session-id to State mapping. Every new session gets
// fresh Cart and Engine instances loaded from the shared catalog; the
// product records themselves are shared read-only.
type Manager struct {
	mu       sync.Mutex
	states   map[string]*State
	products []domain.Product
	ttl      time.Duration
	now      func() time.Time // swapped out in tests
}

// NewManager creates a manager whose sessions are seeded with products.
// Sessions idle longer than ttl are dropped by PruneIdle.
func NewManager(products []domain.Product, ttl time.Duration) *Manager {
	return &Manager{
		states:   make(map[string]*State),
		products: products,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new session with its own cart and engine.
func (m *Manager) Create() *State {
	engine := catalog.New()
	engine.Load(m.products)

	state := &State{
		ID:      uuid.NewString(),
		Session: &Session{},
		Cart:    cart.New(),
		Catalog: engine,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	state.lastSeen = m.now()
	m.states[state.ID] = state
	return state
}

// Get returns the session for id, refreshing its idle timer.
func (m *Manager) Get(id string) (*State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.states[id]
	if ok {
		state.lastSeen = m.now()
	}
	return state, ok
}

// Drop removes the session for id if present.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// PruneIdle drops sessions that have been idle longer than the manager's
// ttl and returns how many were removed. Called periodically from main.
func (m *Manager) PruneIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := m.now().Add(-m.ttl)
	pruned := 0
	for id, state := range m.states {
		if state.lastSeen.Before(cutoff) {
			delete(m.states, id)
			pruned++
		}
	}
	return pruned
}
