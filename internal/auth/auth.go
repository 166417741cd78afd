// Package auth validates the RS256 bearer tokens minted by the external
// phone-OTP auth provider. This service never issues tokens itself.
package auth

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

// ClaimsKey is the request-context key the authentication middleware stores
// verified claims under.
const ClaimsKey ctxKey = 1

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// HasRole reports whether the token carries the given role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Keys holds the provider's public key used to verify tokens.
type Keys struct {
	verifyKey *rsa.PublicKey
}

func NewKeys(publicPEM []byte) (*Keys, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse auth public key: %w", err)
	}
	return &Keys{verifyKey: key}, nil
}

// ValidateToken verifies the signature and standard claims of a bearer token
// and returns its claims.
func (k *Keys) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return k.verifyKey, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return Claims{}, fmt.Errorf("invalid token")
	}
	return claims, nil
}
