package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry decides whether a stored token is past its expiry without
// verifying the signature (the console never holds the signing secret).
//
// Strict mode fails closed: anything that does not parse as a JWT with a
// numeric exp claim counts as expired. Lenient mode keeps the demo-friendly
// behavior where opaque or malformed tokens are assumed live and only an
// explicit exp in the past expires a token.
type TokenExpiry struct {
	allowOpaque bool
	now         func() time.Time
}

func NewTokenExpiry(allowOpaque bool) *TokenExpiry {
	return &TokenExpiry{allowOpaque: allowOpaque, now: time.Now}
}

// IsExpired reports whether token should be treated as expired.
func (e *TokenExpiry) IsExpired(token string) bool {
	if token == "" {
		return true
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(token, claims)
	if err != nil {
		return !e.allowOpaque
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		// no usable exp claim
		return !e.allowOpaque
	}
	return exp.Before(e.now())
}
