// Package server assembles the gophtasks server: database, migrations,
// services, the HTTP API and the observability endpoints, and runs them
// until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/observability"
	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/httpapi"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
	"github.com/samber/oops"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.HTTPServer
	obs    *observability.Server
}

var openDB = repomanager.Open

// NewApp connects to PostgreSQL, migrates the schema and wires the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDSN, repomanager.DefaultPingBackoff)
	if err != nil {
		return nil, err
	}

	app, err := newApp(ctx, c, logger, db, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	if c.IsDefaultSecret() {
		logger.Warn(ctx, "using the built-in development secret; set SECRET_KEY before deploying")
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	var obs *observability.Server
	var metrics *observability.Metrics
	if c.MetricsAddr != "" {
		obs = observability.NewServer(c.MetricsAddr, db.PingContext, logger)
		metrics = obs.Metrics()
	}

	codec := auth.NewCodec([]byte(c.SecretKey))
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	us := services.NewUserService(db, rm, hasher, auth.NewIssuer(codec, c.AccessTokenTTL))
	ts := services.NewTaskService(db, rm)

	api := httpapi.NewHTTPServer(c.EndpointAddr, logger, us, ts, auth.NewGuard(codec), metrics)

	return &App{config: c, logger: logger, db: db, api: api, obs: obs}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "env", app.config.Env)

	var obsErr <-chan error
	if app.obs != nil {
		ch, err := app.obs.Start()
		if err != nil {
			return err
		}
		obsErr = ch
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var apiErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Run(ctx); err != nil {
			app.logger.Error(ctx, "HTTP server failed", "error", err)
			apiErr = err
			cancel()
		}
	}()

	if obsErr != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			select {
			case err, ok := <-obsErr:
				if ok && err != nil {
					cancel()
				}
			case <-ctx.Done():
			}
		}()
	}

	wg.Wait()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	var errs []error
	if apiErr != nil {
		errs = append(errs, apiErr)
	}
	if app.obs != nil {
		if err := app.obs.Stop(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := app.db.Close(); err != nil {
		errs = append(errs, oops.Code("DB_CLOSE_FAILED").Wrap(err))
	}

	app.logger.Info(shutdownCtx, "App stopped")
	return errors.Join(errs...)
}
