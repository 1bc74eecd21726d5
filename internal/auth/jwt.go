// Package auth mints and verifies the HS256 tokens handed out by the mock
// API. A token carries the user identity so the profile endpoints and the
// web shell can recover the caller without a server-side session table.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/vitalsync/internal/client/models"
	"github.com/dmitrijs2005/vitalsync/internal/common"
)

// Claims is the token payload: standard registered claims plus the user
// record the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// User rebuilds the identity carried by the claims.
func (c *Claims) User() models.User {
	return models.User{
		ID:       c.Subject,
		Username: c.Username,
		Email:    c.Email,
		Name:     c.Name,
		Avatar:   c.Avatar,
	}
}

// GenerateToken signs a token for u. A zero validity produces a token with
// no time claims at all, which makes it deterministic for a given user and
// secret.
func GenerateToken(u models.User, secretKey []byte, validity time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: u.ID},
		Username:         u.Username,
		Email:            u.Email,
		Name:             u.Name,
		Avatar:           u.Avatar,
	}
	if validity > 0 {
		now := time.Now()
		claims.IssuedAt = jwt.NewNumericDate(now)
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// ParseToken verifies tokenString and returns its claims. Any verification
// failure is reported as common.ErrInvalidToken (wrapping the cause).
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrMissingToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
