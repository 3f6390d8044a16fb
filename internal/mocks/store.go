// Package mocks provides hand-written test doubles for the store contract.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// MockStore implements store.Store for testing. Each method delegates to the
// corresponding Fn field when set, otherwise it returns the zero value and
// Err. Tests configure only the methods they exercise.
type MockStore struct {
	Health store.Health
	Err    error

	IsAliveFn    func(ctx context.Context) store.Health
	ListUsersFn  func(ctx context.Context, token string) ([]domain.User, error)
	GetUserFn    func(ctx context.Context, id, token string) (*domain.User, error)
	CreateUserFn func(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	UpdateUserFn func(ctx context.Context, id, token string, creds domain.Credentials) (*domain.User, error)
	DeleteUserFn func(ctx context.Context, id, token string) error
	GetTokenFn   func(ctx context.Context, creds domain.Credentials) (string, error)
	ListTasksFn  func(ctx context.Context, token string) ([]domain.Task, error)
	GetTaskFn    func(ctx context.Context, id uuid.UUID, token string) (*domain.Task, error)
	CreateTaskFn func(ctx context.Context, draft domain.TaskDraft, token string) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id uuid.UUID, token string, draft domain.TaskDraft) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id uuid.UUID, token string) error
	PurgeFn      func(ctx context.Context, token string) error
}

// Ensure MockStore implements store.Store
var _ store.Store = (*MockStore)(nil)

func (m *MockStore) IsAlive(ctx context.Context) store.Health {
	if m.IsAliveFn != nil {
		return m.IsAliveFn(ctx)
	}
	return m.Health
}

func (m *MockStore) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx, token)
	}
	return nil, m.Err
}

func (m *MockStore) GetUser(ctx context.Context, id, token string) (*domain.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id, token)
	}
	return nil, m.Err
}

func (m *MockStore) CreateUser(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, creds)
	}
	return nil, m.Err
}

func (m *MockStore) UpdateUser(ctx context.Context, id, token string, creds domain.Credentials) (*domain.User, error) {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, id, token, creds)
	}
	return nil, m.Err
}

func (m *MockStore) DeleteUser(ctx context.Context, id, token string) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id, token)
	}
	return m.Err
}

func (m *MockStore) GetToken(ctx context.Context, creds domain.Credentials) (string, error) {
	if m.GetTokenFn != nil {
		return m.GetTokenFn(ctx, creds)
	}
	return "", m.Err
}

func (m *MockStore) ListTasks(ctx context.Context, token string) ([]domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, token)
	}
	return nil, m.Err
}

func (m *MockStore) GetTask(ctx context.Context, id uuid.UUID, token string) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id, token)
	}
	return nil, m.Err
}

func (m *MockStore) CreateTask(ctx context.Context, draft domain.TaskDraft, token string) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, draft, token)
	}
	return nil, m.Err
}

func (m *MockStore) UpdateTask(ctx context.Context, id uuid.UUID, token string, draft domain.TaskDraft) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, token, draft)
	}
	return nil, m.Err
}

func (m *MockStore) DeleteTask(ctx context.Context, id uuid.UUID, token string) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id, token)
	}
	return m.Err
}

func (m *MockStore) Purge(ctx context.Context, token string) error {
	if m.PurgeFn != nil {
		return m.PurgeFn(ctx, token)
	}
	return m.Err
}

func (m *MockStore) Close(ctx context.Context) error {
	return nil
}
