package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/dbx"
	"github.com/dmitrijs2005/opsapi/internal/logging"
	"github.com/dmitrijs2005/opsapi/internal/server/auth"
	"github.com/dmitrijs2005/opsapi/internal/server/config"
	"github.com/dmitrijs2005/opsapi/internal/server/models"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/operations"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	cfg    *config.Config
	tokens *auth.TokenIssuer
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.BcryptCost = bcrypt.MinCost
	return cfg
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, rm, err := repomanager.Open(context.Background(), repomanager.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := newTestConfig()
	return &testEnv{
		db:     db,
		rm:     rm,
		cfg:    cfg,
		tokens: auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenValidityDuration),
	}
}

// --- fakes ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeOpsRepo struct {
	created *models.Operation
	err     error

	listLimit int
	statsErr  error
}

func (f *fakeOpsRepo) Create(ctx context.Context, op *models.Operation) (*models.Operation, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = op
	op.ID = 1
	return op, nil
}

func (f *fakeOpsRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Operation, error) {
	f.listLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Operation{}, nil
}

func (f *fakeOpsRepo) Stats(ctx context.Context, userID int64, since time.Time) (*models.OperationStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return &models.OperationStats{}, nil
}

type fakeRepoManager struct {
	users users.Repository
	ops   operations.Repository
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return f.users }
func (f *fakeRepoManager) Operations(dbx.DBTX) operations.Repository   { return f.ops }
func (f *fakeRepoManager) Dialect() dbx.Dialect                        { return dbx.DialectPostgres }
