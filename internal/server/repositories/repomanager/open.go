package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/opsapi/internal/dbx"
	"github.com/dmitrijs2005/opsapi/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Driver names as registered with database/sql.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// sqlitePragmas are appended to SQLite DSNs that do not set any pragmas.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// DialectFor returns the SQL dialect spoken by a database/sql driver.
func DialectFor(driver string) (dbx.Dialect, error) {
	switch driver {
	case DriverPostgres:
		return dbx.DialectPostgres, nil
	case DriverSQLite:
		return dbx.DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLiteDSN adds foreign-key enforcement and a busy timeout to dsn unless
// it already carries pragmas.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + sqlitePragmas
}

// Open connects to the database, verifies the connection, runs the
// migrations and returns the pool together with a matching manager.
func Open(ctx context.Context, driver, dsn string, l logging.Logger) (*sql.DB, RepositoryManager, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, nil, err
	}

	if dialect == dbx.DialectSQLite {
		dsn = SQLiteDSN(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}

	if dialect == dbx.DialectSQLite {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}

	m, err := NewSQLRepositoryManager(dialect, l)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return db, m, nil
}
