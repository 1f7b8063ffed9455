// Package server wires configuration, storage, services and transports
// together and runs the REST API and the gRPC health endpoint until the
// process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/logging"
	"github.com/dmitrijs2005/opsapi/internal/server/auth"
	"github.com/dmitrijs2005/opsapi/internal/server/config"
	"github.com/dmitrijs2005/opsapi/internal/server/metrics"
	"github.com/dmitrijs2005/opsapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/opsapi/internal/server/rest"
	"github.com/dmitrijs2005/opsapi/internal/server/services"

	gs "github.com/dmitrijs2005/opsapi/internal/server/grpc"
)

const healthCheckInterval = 15 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *rest.Server
	grpcServer *gs.GRPCServer
}

// NewApp opens the database, runs migrations and builds both servers.
// Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogLevel, w)
	if err != nil {
		return nil, err
	}

	if c.UsesDevSecret() {
		logger.Warn(ctx, "using the built-in development secret key; tokens can be forged. Set SECRET_KEY for any real deployment")
	}

	db, rm, err := repomanager.Open(ctx, c.DatabaseDriver, c.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	tokens := auth.NewTokenIssuer(c.SecretKey, c.TokenValidityDuration)
	us := services.NewUserService(db, rm, tokens, c)
	ops := services.NewOperationService(db, rm, c)
	authn := services.NewAuthenticator(db, rm, tokens)

	api := rest.NewAPI(us, ops, authn, metrics.NewMetrics(), logger)

	app := &App{
		config:     c,
		logger:     logger,
		db:         db,
		httpServer: rest.NewServer(c.HTTPAddr, api.Handler(), logger, c.ShutdownTimeout),
	}

	if c.GRPCHealthAddr != "" {
		app.grpcServer = gs.NewGRPCServer(c.GRPCHealthAddr, logger, db, healthCheckInterval)
	}

	return app, nil
}

// notifyContext is a seam for testing signal.NotifyContext.
var notifyContext = signal.NotifyContext

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then closes the database.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := notifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.grpcServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.logger.Info(ctx, "Stopped")

	return app.db.Close()
}
