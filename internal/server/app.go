// Package server wires the application together: configuration, logging,
// the Postgres primary with embedded migrations, the seeded fallback
// dataset, the resource services and the HTTP endpoint, plus graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/campushub/campushub/internal/logging"
	"github.com/campushub/campushub/internal/server/auth"
	"github.com/campushub/campushub/internal/server/config"
	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/fallback"
	"github.com/campushub/campushub/internal/server/httpapi"
	"github.com/campushub/campushub/internal/server/repositories/repomanager"
	"github.com/campushub/campushub/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	api    *httpapi.API
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	primary := repomanager.NewPostgresRepositoryManager()
	if err := primary.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	store := &services.Store{
		DB:      db,
		Primary: primary,
		Facade:  facade.New(cfg.StoreTimeout, logger),
		Logger:  logger,
	}
	if cfg.FallbackReads {
		store.Fallback = fallback.NewManager()
	}

	api := &httpapi.API{
		Users:         services.NewUserService(store, cfg),
		Posts:         services.NewPostService(store),
		Comments:      services.NewCommentService(store),
		Follows:       services.NewFollowService(store),
		Messages:      services.NewMessageService(store),
		Notifications: services.NewNotificationService(store),
		Listings:      services.NewListingService(store),
		Verifier:      auth.NewJWTVerifier([]byte(cfg.SecretKey)),
		Logger:        logger,
	}

	return &App{config: cfg, logger: logger, db: db, api: api}, nil
}

// Run serves HTTP until the context is cancelled or an OS signal arrives,
// then drains in-flight requests before returning.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.initSignalHandler(cancel)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.api.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return app.db.Close()
}

func (app *App) initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}
