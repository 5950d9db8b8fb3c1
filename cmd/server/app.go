package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aesirglt/AdaTech/internal/config"
	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/redact"
	"github.com/aesirglt/AdaTech/internal/service"
	"github.com/aesirglt/AdaTech/internal/service/auth"
	"github.com/aesirglt/AdaTech/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	storage io.Closer

	jwtService    auth.JWTService
	authenticator *auth.Authenticator
	cardService   service.CardService
}

// newApplication opens the configured storage and wires services on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	table, closer, err := openCardTable(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open card storage: %w", err)
	}

	app, err := newApplicationWithTable(cfg, logger, table)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	app.storage = closer

	return app, nil
}

// newApplicationWithTable wires services over an already opened card table.
func newApplicationWithTable(
	cfg *config.Config,
	logger *slog.Logger,
	table store.Table[domain.Card],
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.authenticator, err = auth.NewAuthenticator(cfg.Auth, auth.NewBcryptVerifier(), app.jwtService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	app.cardService, err = service.NewCardServiceForTable(table, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	logger.Info("application initialized",
		slog.String("driver", cfg.Database.Driver))
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.storage != nil {
		if err := app.storage.Close(); err != nil {
			app.logger.Error("error closing storage", slog.String("error", redact.Error(err)))
		}
	}
	app.logger.Info("application shutdown completed")
}
