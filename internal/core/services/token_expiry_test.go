package services

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func makeToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatal(err)
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return header + "." + body + ".sig"
}

func TestIsExpiredLenient(t *testing.T) {
	e := NewTokenExpiry(true)

	tests := []struct {
		name    string
		token   string
		expired bool
	}{
		{"empty token", "", true},
		{"opaque token", "not-a-jwt", false},
		{"two segments", "abc.def", false},
		{"four segments", "a.b.c.d", false},
		{"garbage payload", "h." + base64.RawURLEncoding.EncodeToString([]byte("{{nope")) + ".s", false},
		{"no exp claim", makeToken(t, map[string]interface{}{"sub": "1"}), false},
		{"string exp", makeToken(t, map[string]interface{}{"exp": "soon"}), false},
		{"future exp", makeToken(t, map[string]interface{}{"exp": time.Now().Add(time.Hour).Unix()}), false},
		{"past exp", makeToken(t, map[string]interface{}{"exp": time.Now().Add(-time.Hour).Unix()}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, e.IsExpired(tt.token))
		})
	}
}

func TestIsExpiredStrict(t *testing.T) {
	e := NewTokenExpiry(false)

	// everything that cannot prove a future exp is expired
	assert.True(t, e.IsExpired(""))
	assert.True(t, e.IsExpired("not-a-jwt"))
	assert.True(t, e.IsExpired("a.b.c.d"))
	assert.True(t, e.IsExpired(makeToken(t, map[string]interface{}{"sub": "1"})))
	assert.True(t, e.IsExpired(makeToken(t, map[string]interface{}{"exp": time.Now().Add(-time.Minute).Unix()})))

	assert.False(t, e.IsExpired(makeToken(t, map[string]interface{}{"exp": time.Now().Add(time.Hour).Unix()})))
}
