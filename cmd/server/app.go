package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/config"
	mongostore "github.com/phrazzld/tasklist-api/internal/platform/mongo"
	"github.com/phrazzld/tasklist-api/internal/platform/postgres"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// application holds the shared application dependencies to simplify wiring
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	store  store.Store
}

// newApplication builds the application: it selects and connects the
// persistence backend named by the configuration and prepares its schema
// or indexes.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	s, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	return &application{
		config: cfg,
		logger: logger,
		store:  s,
	}, nil
}

// openStore connects the backend selected by the driver setting. The config
// layer has already rejected unknown drivers, but the default branch guards
// against drift between the two lists.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (store.Store, error) {
	hasher := auth.NewBcryptHasher()

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect postgres store: %w", err)
		}
		logger.Info("database connection established", "driver", cfg.Driver)
		return postgres.New(ctx, db, hasher, logger)

	case config.DriverMongo:
		client, err := mongostore.Open(ctx, cfg.MongoURI())
		if err != nil {
			return nil, fmt.Errorf("failed to connect mongo store: %w", err)
		}
		logger.Info("database connection established", "driver", cfg.Driver)
		return mongostore.New(ctx, client, cfg.Database, hasher, logger)

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// cleanup releases application resources on shutdown.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.store.Close(ctx); err != nil {
		app.logger.Error("failed to close store", "error", err)
	}
}
