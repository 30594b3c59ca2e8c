package security

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ParentSubject is the subject claim of every parent dashboard token
const ParentSubject = "parent"

// ErrInvalidToken is returned for tokens that fail signature or claim checks
var ErrInvalidToken = errors.New("invalid parent token")

// TokenIssuer signs and verifies parent dashboard tokens. A token carries the
// dashboard session id as its jti; whether that session is still open is for
// the caller to decide, so tokens carry no expiry.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates an issuer using an HMAC secret
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue returns a signed token bound to sessionID
func (i *TokenIssuer) Issue(sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session ID is required")
	}
	claims := jwt.RegisteredClaims{
		Subject: ParentSubject,
		ID:      sessionID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the session id it was issued for
func (i *TokenIssuer) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithSubject(ParentSubject))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return "", fmt.Errorf("%w: missing session id", ErrInvalidToken)
	}
	return claims.ID, nil
}
