// Package repomanager provides a concrete RepositoryManager for PostgreSQL
// and SQLite, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/opsapi/internal/dbx"
	"github.com/dmitrijs2005/opsapi/internal/logging"
	"github.com/dmitrijs2005/opsapi/internal/server/migrations"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/operations"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repository implementations for one
// dialect and exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	logger  logging.Logger
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Operations returns an operations.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Operations(db dbx.DBTX) operations.Repository {
	return operations.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// gooseSetLogger is a seam for testing goose.SetLogger.
var gooseSetLogger = goose.SetLogger

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// migrationDir maps a dialect to its directory inside migrations.Migrations.
func migrationDir(d dbx.Dialect) string {
	if d == dbx.DialectSQLite {
		return "sqlite"
	}
	return "postgres"
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	logger := m.logger
	if logger == nil {
		logger = logging.Nop()
	}
	gooseSetLogger(&gooseLogger{ctx: ctx, logger: logger.With("module", "migrations")})
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(string(m.dialect)); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, migrationDir(m.dialect)); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for the given
// dialect. Migration progress is written to l.
func NewSQLRepositoryManager(dialect dbx.Dialect, l logging.Logger) (RepositoryManager, error) {
	switch dialect {
	case dbx.DialectPostgres, dbx.DialectSQLite:
		return &SQLRepositoryManager{dialect: dialect, logger: l}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
}
