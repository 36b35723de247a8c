// Package app wires the vault engine together: configuration, storage
// backend, deployment key, repositories and services. It owns process
// lifecycle concerns (signals, shutdown) so the engine itself stays a
// plain library.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/config"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/engine"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/repositories/repomanager"
	"github.com/dmitrijs2005/passvault/internal/services"
	"github.com/dmitrijs2005/passvault/internal/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	key    []byte
	engine *engine.Engine
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, dialect, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	key, err := cryptox.LoadOrCreateKey(cfg.KeyFilePath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("key init error: %w", err)
	}

	repos := repomanager.NewSQLRepositoryManager(dialect)

	accounts := services.NewAccountService(db, repos)
	entries := services.NewEntryService(db, repos, key)
	resets := services.NewResetCodeService(db, repos, cfg.ResetCodeValidityDuration)

	eng := engine.New(cfg, logger, accounts, entries, resets, engine.NewLogMailer(logger))

	return &App{config: cfg, logger: logger, db: db, key: key, engine: eng}, nil
}

// Engine exposes the composed vault engine to the embedding front-end.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Run blocks until the context is cancelled or a termination signal arrives,
// then closes the storage handle.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.initSignalHandler(cancel)

	a.logger.Info(ctx, "vault engine ready", "backend", string(a.config.BackendKind))

	<-ctx.Done()

	if err := a.db.Close(); err != nil {
		a.logger.Error(ctx, "error closing storage", "error", err)
	}
	common.WipeByteArray(a.key)
	a.logger.Info(ctx, "vault engine stopped")
}

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}
