package dbx

import "time"

// Dialect names the SQL flavour behind a connection. Queries are written
// with $N placeholders, which both PostgreSQL and SQLite accept; the
// dialect only matters for migrations and time parameters.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// sqliteTimeLayout matches what CURRENT_TIMESTAMP stores, so text
// comparisons against created_at columns order correctly.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// TimeArg converts t into a query argument comparable with timestamp
// columns of this dialect.
func (d Dialect) TimeArg(t time.Time) any {
	if d == DialectSQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}
