// Package services holds the server business logic: the credential store,
// the operation ledger and the request authenticator. Services classify
// failures with the sentinel errors of internal/common and leave status
// codes to the transport.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/opsapi/internal/common"
	"github.com/dmitrijs2005/opsapi/internal/server/auth"
	"github.com/dmitrijs2005/opsapi/internal/server/config"
	"github.com/dmitrijs2005/opsapi/internal/server/models"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/repomanager"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
	bcryptCost  int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenIssuer, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		bcryptCost:  cfg.BcryptCost,
	}
}

// CreateUser hashes password and stores a new account. An empty role
// becomes common.DefaultRole. Duplicate usernames or emails yield
// common.ErrorConflict.
func (s *UserService) CreateUser(ctx context.Context, username, email, password, role string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrorValidation)
	}
	if role == "" {
		role = common.DefaultRole
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetUserByUsername(ctx, username)
}

// VerifyPassword reports whether password matches the stored hash of user.
func (s *UserService) VerifyPassword(user *models.User, password string) bool {
	return auth.ComparePassword(user.PasswordHash, password)
}

// Login checks the credentials and issues a token. Unknown usernames and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	if !s.VerifyPassword(user, password) {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	return &LoginResult{Token: token, User: user}, nil
}
