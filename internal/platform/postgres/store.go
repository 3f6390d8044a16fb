package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// PostgreSQL error codes
const uniqueViolationCode = "23505"

// driverName is reported by the liveness probe.
const driverName = "postgres"

// pingTimeout bounds the liveness probe so an unreachable database yields
// a prompt Alive == false instead of hanging the health endpoint.
const pingTimeout = 3 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	password TEXT NOT NULL,
	uuid UUID NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS tasks (
	id UUID PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE,
	text TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	is_checked BOOLEAN NOT NULL,
	is_important BOOLEAN NOT NULL
);
`

// Store implements store.Store using a PostgreSQL database.
type Store struct {
	db     *sql.DB
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// Ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

// New creates a Postgres-backed store and ensures the schema exists.
// The schema is created idempotently, so startup against an already
// initialized database is a no-op.
func New(ctx context.Context, db *sql.DB, hasher auth.PasswordHasher, logger *slog.Logger) (*Store, error) {
	if db == nil {
		panic("db cannot be nil")
	}
	if hasher == nil {
		hasher = auth.NewBcryptHasher()
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		db:     db,
		hasher: hasher,
		logger: logger.With(slog.String("component", "postgres_store")),
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Open connects to the database at the given DSN, configures the connection
// pool, and verifies connectivity with a ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// IsAlive implements store.Store.IsAlive.
func (s *Store) IsAlive(ctx context.Context) store.Health {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		s.logger.Warn("liveness probe failed", slog.String("error", err.Error()))
		return store.Health{Alive: false, Driver: driverName}
	}
	return store.Health{Alive: true, Driver: driverName}
}

// Purge implements store.Store.Purge. Tasks are deleted before users so the
// statements succeed regardless of the foreign key.
func (s *Store) Purge(ctx context.Context, token string) error {
	if !auth.IsMaster(token) {
		return store.ErrUnauthorized
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to purge tasks: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to purge users: %w", err)
	}

	s.logger.Info("purged all data")
	return nil
}

// Close implements store.Store.Close.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint
// violation, which maps to the duplicate-user outcome.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// ownerOf loads the user owning the given task for an authorization check.
// A missing owner can only happen on data that predates the foreign key;
// in that case only the master credential may touch the task.
func (s *Store) ownerOf(ctx context.Context, task *domain.Task, token string) error {
	owner, err := s.userByID(ctx, task.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		if auth.IsMaster(token) {
			return nil
		}
		return store.ErrUnauthorized
	}
	if err != nil {
		return err
	}
	return auth.Authorize(token, owner)
}
