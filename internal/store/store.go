package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
)

// Health is the result of a liveness probe against the backing store.
// It is a structured status, not an error: an unreachable store yields
// Alive == false rather than a fault.
type Health struct {
	Alive  bool   `json:"is_alive"`
	Driver string `json:"db"`
}

// Store is the persistence and authorization contract implemented by the
// relational (Postgres) and document (MongoDB) backends. One implementation
// is selected at process start; both must behave identically.
//
// Operations return the sentinel errors defined in this package for every
// contract outcome. Any other error indicates an internal fault.
type Store interface {
	// IsAlive probes the underlying store. It never returns an error.
	IsAlive(ctx context.Context) Health

	// ListUsers returns all users with their tasks joined in.
	// Master credential only; any other token yields ErrUnauthorized.
	ListUsers(ctx context.Context, token string) ([]domain.User, error)

	// GetUser returns the user with the given login ID, tasks joined in.
	// Existence is checked before authorization; the caller must present
	// the master credential or the target user's own auth token.
	GetUser(ctx context.Context, id, token string) (*domain.User, error)

	// CreateUser registers a new user, generating its auth token and
	// hashing the password. Returns ErrDuplicateUser if the login ID is
	// already taken.
	CreateUser(ctx context.Context, creds domain.Credentials) (*domain.User, error)

	// UpdateUser replaces the target user's login ID and password
	// wholesale, preserving the auth token and re-pointing owned tasks at
	// the new login ID. Owner or master only.
	UpdateUser(ctx context.Context, id, token string, creds domain.Credentials) (*domain.User, error)

	// DeleteUser removes the user and all tasks it owns. Owner or master only.
	DeleteUser(ctx context.Context, id, token string) error

	// GetToken verifies the credentials and returns the matching user's
	// auth token. Any mismatch, including an unknown user, yields
	// ErrInvalidCredentials.
	GetToken(ctx context.Context, creds domain.Credentials) (string, error)

	// ListTasks returns every task for the master credential. For any other
	// token it resolves the token to a user and returns only that user's
	// tasks; a token resolving to nobody yields ErrInvalidToken.
	ListTasks(ctx context.Context, token string) ([]domain.Task, error)

	// GetTask returns the task with the given ID. Existence is checked
	// before ownership: a missing task yields ErrTaskNotFound even for a
	// bad token.
	GetTask(ctx context.Context, id uuid.UUID, token string) (*domain.Task, error)

	// CreateTask creates a task owned by the user the token resolves to.
	// The master credential carries no identity and cannot create tasks:
	// any token that resolves to no user yields ErrInvalidToken.
	CreateTask(ctx context.Context, draft domain.TaskDraft, token string) (*domain.Task, error)

	// UpdateTask overwrites the task's text and flags and refreshes its
	// updated_at timestamp. Owner or master only.
	UpdateTask(ctx context.Context, id uuid.UUID, token string, draft domain.TaskDraft) (*domain.Task, error)

	// DeleteTask removes the task. Owner or master only.
	DeleteTask(ctx context.Context, id uuid.UUID, token string) error

	// Purge unconditionally empties both entity stores. Master credential
	// only; any other token yields ErrUnauthorized and leaves all records
	// untouched.
	Purge(ctx context.Context, token string) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
