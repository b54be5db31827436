package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

func TestSession_LoginLogout(t *testing.T) {
	var s Session

	assert.False(t, s.LoggedIn())
	_, ok := s.User()
	assert.False(t, ok)

	user := store.SampleUser()
	s.Login(user)
	assert.True(t, s.LoggedIn())
	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, user, got)

	s.Logout()
	assert.False(t, s.LoggedIn())
	_, ok = s.User()
	assert.False(t, ok)
}

func TestSession_LoginCopiesUser(t *testing.T) {
	var s Session
	user := domain.User{ID: 7, Name: "Maria"}
	s.Login(user)

	user.Name = "changed"

	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "Maria", got.Name, "session must hold its own copy of the user record")
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	products := store.SampleProducts()
	m := NewManager(products, time.Hour)

	a := m.Create()
	b := m.Create()
	require.NotEqual(t, a.ID, b.ID)

	// Cart mutations in one session must never leak into another.
	require.NoError(t, a.Cart.AddItem(products[0], 3))
	assert.Equal(t, 3, a.Cart.ItemCount())
	assert.Equal(t, 0, b.Cart.ItemCount())

	// Filter state is per-session too.
	a.Catalog.FilterByCategory("roupas")
	assert.Equal(t, "roupas", a.Catalog.ActiveCategory())
	assert.Equal(t, "all", b.Catalog.ActiveCategory())
	assert.Len(t, b.Catalog.Visible(), len(products))
}

func TestManager_GetAndDrop(t *testing.T) {
	m := NewManager(store.SampleProducts(), time.Hour)

	state := m.Create()
	got, ok := m.Get(state.ID)
	require.True(t, ok)
	assert.Same(t, state, got)

	_, ok = m.Get("unknown-id")
	assert.False(t, ok)

	m.Drop(state.ID)
	_, ok = m.Get(state.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestManager_PruneIdle(t *testing.T) {
	m := NewManager(store.SampleProducts(), 10*time.Minute)

	now := time.Now()
	m.now = func() time.Time { return now }

	stale := m.Create()
	fresh := m.Create()

	// Advance the clock past the TTL, then touch only one session.
	now = now.Add(15 * time.Minute)
	_, ok := m.Get(fresh.ID)
	require.True(t, ok)

	pruned := m.PruneIdle()
	assert.Equal(t, 1, pruned)

	_, ok = m.Get(stale.ID)
	assert.False(t, ok, "idle session should have been pruned")
	_, ok = m.Get(fresh.ID)
	assert.True(t, ok, "recently used session must survive pruning")
}
