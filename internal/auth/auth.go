// Package auth mints and verifies the bearer sessions that scope BaseHub
// users. A session is an HS256-signed JWT whose subject is the user's
// identity (for guests, the originating network address).
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "basehub"

// DefaultTokenTTL is how long a minted session stays valid unless
// configured otherwise.
const DefaultTokenTTL = 24 * time.Hour

// Session is the opaque bearer token handed to a client, with its expiry.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Minter creates and verifies sessions with a shared HS256 secret.
type Minter struct {
	secret []byte
	ttl    time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewMinter creates a Minter. The secret must be non-empty; a zero ttl
// falls back to DefaultTokenTTL.
func NewMinter(secret string, ttl time.Duration) (*Minter, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Minter{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Mint creates a session bound to the given identity.
func (m *Minter) Mint(identity string) (*Session, error) {
	if identity == "" {
		return nil, errors.New("identity must not be empty")
	}

	now := m.now()
	expires := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   identity,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &Session{Token: signed, ExpiresAt: expires}, nil
}

// Verify checks a session token and returns the identity it was minted for.
func (m *Minter) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if claims.Subject == "" {
		return "", errors.New("invalid session token: missing subject")
	}
	return claims.Subject, nil
}
