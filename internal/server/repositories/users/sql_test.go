package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/opsapi/internal/common"
	"github.com/dmitrijs2005/opsapi/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertUserQuery = `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*password_hash,\s*role\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at$`
	selectUserQuery = `(?s)^SELECT\s+id,\s*username,\s*email,\s*password_hash,\s*role,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1$`
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db), mock
}

func newUser() *models.User {
	return &models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "$2a$hash", Role: "user"}
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("alice", "alice@x.com", "$2a$hash", "user").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))

	got, err := repo.Create(context.Background(), newUser())
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "alice", got.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolationIsConflict(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("alice", "alice@x.com", "$2a$hash", "user").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), newUser())
	assert.ErrorIs(t, err, common.ErrorConflict)
	assert.NotErrorIs(t, err, common.ErrorStore)
}

func TestCreate_OtherErrorIsStoreError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("alice", "alice@x.com", "$2a$hash", "user").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), newUser())
	assert.ErrorIs(t, err, common.ErrorStore)
	assert.NotErrorIs(t, err, common.ErrorConflict)
	assert.Contains(t, err.Error(), "db down")
}

func TestGetUserByUsername_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "created_at"}).
		AddRow(int64(7), "alice", "alice@x.com", "$2a$hash", "admin", "2024-01-02 03:04:05")
	mock.ExpectQuery(selectUserQuery).WithArgs("alice").WillReturnRows(rows)

	got, err := repo.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.User{
		ID:           7,
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$hash",
		Role:         "admin",
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, got)
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectUserQuery).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetUserByUsername_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectUserQuery).WithArgs("alice").WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, common.ErrorStore)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
