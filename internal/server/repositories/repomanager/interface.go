package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/opsapi/internal/dbx"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/operations"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Operations(db dbx.DBTX) operations.Repository
	Dialect() dbx.Dialect
}
