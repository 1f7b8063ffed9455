// Package auth issues and verifies the HS256 bearer tokens of the API and
// hashes user passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/common"
	"github.com/dmitrijs2005/opsapi/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token payload: the registered claims (exp, iat, jti) plus
// the identity of the user the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
}

// TokenIssuer signs and verifies tokens with a single shared secret.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// Option configures a TokenIssuer.
type Option func(*TokenIssuer)

// WithClock replaces time.Now for both issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(ti *TokenIssuer) {
		ti.now = now
	}
}

// NewTokenIssuer returns an issuer whose tokens are valid for validity.
func NewTokenIssuer(secret string, validity time.Duration, opts ...Option) *TokenIssuer {
	ti := &TokenIssuer{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
	}
	for _, o := range opts {
		o(ti)
	}
	return ti
}

// Issue returns a signed token for user expiring validity from now.
func (ti *TokenIssuer) Issue(user *models.User) (string, error) {
	now := ti.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.validity)),
		},
		Username: user.Username,
		UserID:   user.ID,
		Role:     user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify checks the signature and then the expiry of token. An expired
// token with a valid signature yields common.ErrTokenExpired; anything else
// wrong yields common.ErrInvalidToken.
func (ti *TokenIssuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !parsed.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
