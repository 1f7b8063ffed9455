package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/opsapi/internal/common"
	"github.com/dmitrijs2005/opsapi/internal/server/auth"
	"github.com/dmitrijs2005/opsapi/internal/server/models"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/repomanager"
)

// Rejection reasons reported by Authenticate.
const (
	ReasonMissing = "missing"
	ReasonInvalid = "invalid"
	ReasonExpired = "expired"
)

// RejectedError is returned when a request carries no usable credentials.
type RejectedError struct {
	Reason string
	Err    error
}

func (e *RejectedError) Error() string {
	return "authentication rejected: " + e.Reason
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// Identity is the authenticated caller of a request.
type Identity struct {
	User   *models.User
	Claims *auth.Claims
}

// Authenticator resolves an Authorization header value to the user it
// was issued to.
type Authenticator struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
}

func NewAuthenticator(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenIssuer) *Authenticator {
	return &Authenticator{db: db, repomanager: m, tokens: tokens}
}

// Authenticate accepts the raw header value with or without the "Bearer "
// prefix. Credential problems are reported as *RejectedError; a store
// failure while loading the user is returned as is.
func (a *Authenticator) Authenticate(ctx context.Context, rawHeader string) (*Identity, error) {
	token := strings.TrimPrefix(rawHeader, common.BearerPrefix)
	if token == "" {
		return nil, &RejectedError{Reason: ReasonMissing, Err: common.ErrInvalidToken}
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, &RejectedError{Reason: ReasonExpired, Err: err}
		}
		return nil, &RejectedError{Reason: ReasonInvalid, Err: err}
	}

	user, err := a.repomanager.Users(a.db).GetUserByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, &RejectedError{Reason: ReasonInvalid, Err: common.ErrInvalidToken}
		}
		return nil, err
	}

	return &Identity{User: user, Claims: claims}, nil
}
