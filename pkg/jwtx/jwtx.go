// Package jwtx issues and verifies the HMAC-signed bearer tokens used for
// admin authentication.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default lifetime for admin access tokens.
const DefaultTokenTTL = 30 * time.Minute

// ErrInvalidToken covers expiry, malformed tokens and signature mismatch.
// Callers get a single unauthenticated outcome and cannot distinguish why.
var ErrInvalidToken = errors.New("jwtx: invalid token")

// Claims are the access-token claims. Additive changes only, to preserve
// compatibility for already-issued tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Username of the authenticated admin.
	Username string `json:"username,omitempty"`
}

// Verifier validates a raw token string and returns its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HS256 signs and verifies tokens with a shared secret.
type HS256 struct {
	secret []byte
	issuer string
}

func NewHS256(secret []byte, issuer string) *HS256 {
	return &HS256{secret: secret, issuer: issuer}
}

// Sign produces a token for the given subject, valid for ttl.
func (s *HS256) Sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: subject,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a raw token. Expiry, not-before, signature and
// issuer are all enforced; any failure maps to ErrInvalidToken.
func (s *HS256) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
