package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/mocks"
	"github.com/phrazzld/tasklist-api/internal/store"
)

func TestListUsers(t *testing.T) {
	alice := domain.User{ID: "alice", Password: "hash", Token: uuid.New(), Tasks: []domain.Task{}}

	var gotToken string
	mock := &mocks.MockStore{
		ListUsersFn: func(ctx context.Context, token string) ([]domain.User, error) {
			gotToken = token
			return []domain.User{alice}, nil
		},
	}
	router := newTestRouter(mock)

	rec, _ := doJSON(t, router, http.MethodGet, "/users?token=root", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "root", gotToken, "token query parameter should reach the store")
	assert.Contains(t, rec.Body.String(), `"id":"alice"`)
	assert.NotContains(t, rec.Body.String(), "hash", "password hash must never be serialized")
}

func TestListUsersUnauthorized(t *testing.T) {
	mock := &mocks.MockStore{Err: store.ErrUnauthorized}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodGet, "/users?token=bogus", nil)

	assert.Equal(t, http.StatusOK, rec.Code, "contract outcomes keep HTTP 200")
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestGetUserNotFound(t *testing.T) {
	mock := &mocks.MockStore{Err: store.ErrUserNotFound}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodGet, "/users/ghost?token=root", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User not found", body["error"])
}

func TestCreateUser(t *testing.T) {
	token := uuid.New()
	mock := &mocks.MockStore{
		CreateUserFn: func(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
			require.Equal(t, "alice@example.com", creds.ID)
			require.Equal(t, "secret", creds.Password)
			return &domain.User{ID: creds.ID, Password: "hash", Token: token, Tasks: []domain.Task{}}, nil
		},
	}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodPost, "/users",
		map[string]string{"id": "alice@example.com", "password": "secret"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", body["id"])
	assert.Equal(t, token.String(), body["uuid"])
	assert.NotContains(t, body, "password")
}

func TestCreateUserDuplicate(t *testing.T) {
	mock := &mocks.MockStore{Err: store.ErrDuplicateUser}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodPost, "/users",
		map[string]string{"id": "alice", "password": "pw"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Email already registered", body["error"])
}

func TestCreateUserRejectsMalformedBody(t *testing.T) {
	mock := &mocks.MockStore{}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodPost, "/users", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "Invalid request format")
}

func TestCreateUserRejectsMissingFields(t *testing.T) {
	mock := &mocks.MockStore{}
	router := newTestRouter(mock)

	rec, _ := doJSON(t, router, http.MethodPost, "/users", map[string]string{"id": "alice"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserPassesPathAndToken(t *testing.T) {
	var gotID, gotToken string
	mock := &mocks.MockStore{
		UpdateUserFn: func(ctx context.Context, id, token string, creds domain.Credentials) (*domain.User, error) {
			gotID, gotToken = id, token
			return &domain.User{ID: creds.ID, Password: "hash", Token: uuid.New(), Tasks: []domain.Task{}}, nil
		},
	}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodPut, "/users/alice?token=abc",
		map[string]string{"id": "alice2", "password": "new"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", gotID)
	assert.Equal(t, "abc", gotToken)
	assert.Equal(t, "alice2", body["id"])
}

func TestDeleteUser(t *testing.T) {
	mock := &mocks.MockStore{}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodDelete, "/users/alice?token=root", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted", body["message"])
}

func TestGetTokenEndpoint(t *testing.T) {
	token := uuid.New().String()
	mock := &mocks.MockStore{
		GetTokenFn: func(ctx context.Context, creds domain.Credentials) (string, error) {
			if creds.ID == "alice" && creds.Password == "secret" {
				return token, nil
			}
			return "", store.ErrInvalidCredentials
		},
	}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodPost, "/users/get_token",
		map[string]string{"id": "alice", "password": "secret"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, token, body["token"])

	rec, body = doJSON(t, router, http.MethodPost, "/users/get_token",
		map[string]string{"id": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestPurge(t *testing.T) {
	var gotToken string
	mock := &mocks.MockStore{
		PurgeFn: func(ctx context.Context, token string) error {
			gotToken = token
			if token != "root" {
				return store.ErrUnauthorized
			}
			return nil
		},
	}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodDelete, "/buster_call?token=root", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "All data deleted", body["message"])
	assert.Equal(t, "root", gotToken)

	_, body = doJSON(t, router, http.MethodDelete, "/buster_call?token=other", nil)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestInternalFaultIsHidden(t *testing.T) {
	mock := &mocks.MockStore{Err: assert.AnError}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodGet, "/users?token=root", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
