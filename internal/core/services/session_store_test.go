package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	s := NewSessionStore(newFakeStore())

	_, ok := s.Token()
	assert.False(t, ok)
	assert.Nil(t, s.User())

	s.SetToken("tok")
	s.SetRefreshToken("refresh")
	s.SetUser(&domain.User{ID: "7", Username: "carol", Role: domain.RoleOperator})

	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "tok", token)

	refresh, ok := s.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "refresh", refresh)

	u := s.User()
	require.NotNil(t, u)
	assert.Equal(t, "carol", u.Username)
	assert.Equal(t, domain.RoleOperator, u.Role)
}

func TestSessionStoreClearRemovesAllSessionKeys(t *testing.T) {
	store := newFakeStore()
	s := NewSessionStore(store)

	s.SetToken("tok")
	s.SetRefreshToken("refresh")
	s.SetUser(&domain.User{ID: "7", Username: "carol"})
	store.Set(ports.KeyUserPreferences, `{"fontSize":"large"}`)

	s.Clear()

	_, ok := s.Token()
	assert.False(t, ok)
	_, ok = s.RefreshToken()
	assert.False(t, ok)
	assert.Nil(t, s.User())

	// preferences are not session state
	prefs, ok := store.Get(ports.KeyUserPreferences)
	require.True(t, ok)
	assert.NotEmpty(t, prefs)
}

func TestSessionStoreUndecodableUser(t *testing.T) {
	store := newFakeStore()
	s := NewSessionStore(store)

	store.Set(ports.KeyAuthUser, "{not json")
	assert.Nil(t, s.User())
}

func TestSessionStoreSetNilUserDeletes(t *testing.T) {
	store := newFakeStore()
	s := NewSessionStore(store)

	s.SetUser(&domain.User{ID: "1"})
	s.SetUser(nil)
	_, ok := store.Get(ports.KeyAuthUser)
	assert.False(t, ok)
}
