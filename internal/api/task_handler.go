package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// TaskHandler handles the /tasks routes.
type TaskHandler struct {
	store store.Store
}

// NewTaskHandler creates a new TaskHandler backed by the given store.
func NewTaskHandler(s store.Store) *TaskHandler {
	return &TaskHandler{store: s}
}

// taskID extracts and parses the {id} path parameter, writing a 400
// response when it is not a well-formed task ID.
func taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return uuid.Nil, false
	}
	return id, true
}

// decodeTask parses and validates a task body, writing a 400 response on
// failure.
func decodeTask(w http.ResponseWriter, r *http.Request) (domain.TaskDraft, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return domain.TaskDraft{}, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: text is required")
		return domain.TaskDraft{}, false
	}
	return domain.TaskDraft{Text: req.Text, Checked: req.Checked, Important: req.Important}, true
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.ListTasks(r.Context(), bearerToken(r))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.store.GetTask(r.Context(), id, bearerToken(r))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeTask(w, r)
	if !ok {
		return
	}

	task, err := h.store.CreateTask(r.Context(), draft, bearerToken(r))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	draft, ok := decodeTask(w, r)
	if !ok {
		return
	}

	task, err := h.store.UpdateTask(r.Context(), id, bearerToken(r), draft)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteTask(r.Context(), id, bearerToken(r)); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Task deleted"})
}
