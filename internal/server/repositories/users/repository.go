package users

import (
	"context"

	"github.com/dmitrijs2005/opsapi/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. A duplicate username
	// or email yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByUsername returns common.ErrorNotFound when no user matches.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
