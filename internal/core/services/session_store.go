package services

import (
	"encoding/json"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

// SessionStore is the typed view over the credential store. It owns the
// serialization of the stored user and guarantees that Clear removes the
// whole session in one store operation.
type SessionStore struct {
	store ports.KeyValueStore
}

func NewSessionStore(store ports.KeyValueStore) *SessionStore {
	return &SessionStore{store: store}
}

func (s *SessionStore) Token() (string, bool) {
	return s.store.Get(ports.KeyAuthToken)
}

func (s *SessionStore) SetToken(token string) {
	s.store.Set(ports.KeyAuthToken, token)
}

func (s *SessionStore) RefreshToken() (string, bool) {
	return s.store.Get(ports.KeyRefreshToken)
}

func (s *SessionStore) SetRefreshToken(token string) {
	s.store.Set(ports.KeyRefreshToken, token)
}

// User returns the stored user, or nil when absent or undecodable.
func (s *SessionStore) User() *domain.User {
	raw, ok := s.store.Get(ports.KeyAuthUser)
	if !ok || raw == "" {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

func (s *SessionStore) SetUser(u *domain.User) {
	if u == nil {
		s.store.Delete(ports.KeyAuthUser)
		return
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	s.store.Set(ports.KeyAuthUser, string(raw))
}

// Clear drops token, user and refresh token together. Preferences survive.
func (s *SessionStore) Clear() {
	s.store.Delete(ports.KeyAuthToken, ports.KeyAuthUser, ports.KeyRefreshToken)
}
