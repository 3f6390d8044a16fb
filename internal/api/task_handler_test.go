package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/mocks"
	"github.com/phrazzld/tasklist-api/internal/store"
)

func sampleTask(owner string) *domain.Task {
	now := domain.Timestamp()
	return &domain.Task{
		ID:        uuid.New(),
		UserID:    owner,
		Text:      "water the plants",
		CreatedAt: now,
		UpdatedAt: now,
		Checked:   false,
		Important: true,
	}
}

func TestListTasks(t *testing.T) {
	task := sampleTask("alice")
	mock := &mocks.MockStore{
		ListTasksFn: func(ctx context.Context, token string) ([]domain.Task, error) {
			return []domain.Task{*task}, nil
		},
	}
	router := newTestRouter(mock)

	rec, _ := doJSON(t, router, http.MethodGet, "/tasks?token=root", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"text":"water the plants"`)
	assert.Contains(t, rec.Body.String(), `"is_important":true`)
}

func TestListTasksInvalidToken(t *testing.T) {
	mock := &mocks.MockStore{Err: store.ErrInvalidToken}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodGet, "/tasks?token=nonsense", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestGetTask(t *testing.T) {
	task := sampleTask("alice")

	var gotID uuid.UUID
	var gotToken string
	mock := &mocks.MockStore{
		GetTaskFn: func(ctx context.Context, id uuid.UUID, token string) (*domain.Task, error) {
			gotID, gotToken = id, token
			return task, nil
		},
	}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodGet, "/tasks/"+task.ID.String()+"?token=root", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, task.ID, gotID)
	assert.Equal(t, "root", gotToken)
	assert.Equal(t, task.ID.String(), body["id"])
	assert.Equal(t, "alice", body["user_id"])
}

func TestGetTaskRejectsMalformedID(t *testing.T) {
	mock := &mocks.MockStore{}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodGet, "/tasks/not-a-uuid?token=root", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid task ID", body["error"])
}

func TestGetTaskNotFoundBeforeAuth(t *testing.T) {
	mock := &mocks.MockStore{Err: store.ErrTaskNotFound}
	router := newTestRouter(mock)

	_, body := doJSON(t, router, http.MethodGet, "/tasks/"+uuid.NewString()+"?token=whatever", nil)

	assert.Equal(t, "Task not found", body["error"])
}

func TestCreateTask(t *testing.T) {
	var gotDraft domain.TaskDraft
	mock := &mocks.MockStore{
		CreateTaskFn: func(ctx context.Context, draft domain.TaskDraft, token string) (*domain.Task, error) {
			gotDraft = draft
			return &domain.Task{
				ID: uuid.New(), UserID: "alice", Text: draft.Text,
				CreatedAt: domain.Timestamp(), UpdatedAt: domain.Timestamp(),
				Checked: draft.Checked, Important: draft.Important,
			}, nil
		},
	}
	router := newTestRouter(mock)

	token := uuid.NewString()
	rec, body := doJSON(t, router, http.MethodPost, "/tasks?token="+token,
		map[string]any{"text": "buy milk", "is_important": true})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.TaskDraft{Text: "buy milk", Important: true}, gotDraft)
	assert.Equal(t, "buy milk", body["text"])
	assert.Equal(t, true, body["is_important"])
	assert.Equal(t, false, body["is_checked"])
}

func TestCreateTaskRequiresText(t *testing.T) {
	mock := &mocks.MockStore{}
	router := newTestRouter(mock)

	rec, _ := doJSON(t, router, http.MethodPost, "/tasks?token=x", map[string]any{"is_checked": true})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTaskUnauthorized(t *testing.T) {
	mock := &mocks.MockStore{Err: store.ErrUnauthorized}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodPut, "/tasks/"+uuid.NewString()+"?token=other",
		map[string]any{"text": "hijack"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestDeleteTask(t *testing.T) {
	mock := &mocks.MockStore{}
	router := newTestRouter(mock)

	rec, body := doJSON(t, router, http.MethodDelete, "/tasks/"+uuid.NewString()+"?token=root", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task deleted", body["message"])
}
