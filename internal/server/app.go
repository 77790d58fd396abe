// Package server wires the development server: database, migrations,
// services and the REST endpoint, plus graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/civigo/internal/logging"
	"github.com/dmitrijs2005/civigo/internal/server/config"
	"github.com/dmitrijs2005/civigo/internal/server/httpapi"
	"github.com/dmitrijs2005/civigo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/civigo/internal/server/services"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

// NewApp connects to PostgreSQL, applies migrations and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return newApp(cfg, logger, db, rm), nil
}

func newApp(cfg *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(httpapi.Services{
		Users:    services.NewUserService(db, rm, cfg),
		Projects: services.NewProjectService(db, rm),
		Works:    services.NewWorkService(db, rm),
		Subworks: services.NewSubworkService(db, rm),
		Items:    services.NewItemService(db, rm),
	}, cfg.CORSAllowedOrigins, logger)

	return &App{
		config: cfg,
		logger: logger.With("module", "server"),
		db:     db,
		server: &http.Server{
			Addr:              cfg.EndpointAddr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// closes the database.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if cerr := app.db.Close(); cerr != nil && err == nil {
		err = cerr
	}
	app.logger.Info(ctx, "server stopped")
	return err
}
