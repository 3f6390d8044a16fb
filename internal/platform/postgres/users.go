package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/service/auth"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// userByID fetches a user row without tasks. Returns store.ErrUserNotFound
// when no row matches.
func (s *Store) userByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password, uuid FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Password, &user.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.Tasks = []domain.Task{}
	return &user, nil
}

// userByToken resolves a non-master bearer token to the user it identifies.
// Returns store.ErrInvalidToken when the token is malformed or matches no user.
func (s *Store) userByToken(ctx context.Context, token string) (*domain.User, error) {
	parsed, err := auth.ParseToken(token)
	if err != nil {
		return nil, err
	}

	var user domain.User
	err = s.db.QueryRowContext(ctx,
		`SELECT id, password, uuid FROM users WHERE uuid = $1`, parsed,
	).Scan(&user.ID, &user.Password, &user.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	user.Tasks = []domain.Task{}
	return &user, nil
}

// ListUsers implements store.Store.ListUsers.
func (s *Store) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	if !auth.IsMaster(token) {
		return nil, store.ErrUnauthorized
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, password, uuid FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Password, &user.Token); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user.Tasks = []domain.Task{}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	for i := range users {
		tasks, err := s.tasksByUser(ctx, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Tasks = tasks
	}

	return users, nil
}

// GetUser implements store.Store.GetUser. Existence is checked before
// authorization so an unknown ID always reads as "User not found".
func (s *Store) GetUser(ctx context.Context, id, token string) (*domain.User, error) {
	user, err := s.userByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(token, user); err != nil {
		return nil, err
	}

	tasks, err := s.tasksByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Tasks = tasks
	return user, nil
}

// CreateUser implements store.Store.CreateUser.
func (s *Store) CreateUser(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	user, err := domain.NewUser(creds)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, password, uuid) VALUES ($1, $2, $3)`,
		user.ID, user.Password, user.Token,
	)
	if isUniqueViolation(err) {
		return nil, store.ErrDuplicateUser
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	s.logger.Info("user created", slog.String("user_id", user.ID))
	return user, nil
}

// UpdateUser implements store.Store.UpdateUser. The login ID and password
// are replaced wholesale; the auth token is preserved and the foreign key's
// ON UPDATE CASCADE re-points owned tasks at the new login ID.
func (s *Store) UpdateUser(ctx context.Context, id, token string, creds domain.Credentials) (*domain.User, error) {
	existing, err := s.userByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(token, existing); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET id = $1, password = $2 WHERE id = $3`,
		creds.ID, hashed, id,
	)
	if isUniqueViolation(err) {
		return nil, store.ErrDuplicateUser
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	updated := &domain.User{
		ID:       creds.ID,
		Password: hashed,
		Token:    existing.Token,
	}
	tasks, err := s.tasksByUser(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	updated.Tasks = tasks
	return updated, nil
}

// DeleteUser implements store.Store.DeleteUser. The foreign key cascades
// the delete to the user's tasks.
func (s *Store) DeleteUser(ctx context.Context, id, token string) error {
	existing, err := s.userByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(token, existing); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", slog.String("user_id", id))
	return nil
}

// GetToken implements store.Store.GetToken. An unknown user and a wrong
// password are indistinguishable to the caller.
func (s *Store) GetToken(ctx context.Context, creds domain.Credentials) (string, error) {
	user, err := s.userByID(ctx, creds.ID)
	if errors.Is(err, store.ErrUserNotFound) {
		return "", store.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := s.hasher.Compare(user.Password, creds.Password); err != nil {
		return "", store.ErrInvalidCredentials
	}
	return user.Token.String(), nil
}
