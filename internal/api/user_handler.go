package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// UserHandler handles the /users routes.
type UserHandler struct {
	store store.Store
}

// NewUserHandler creates a new UserHandler backed by the given store.
func NewUserHandler(s store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// bearerToken extracts the caller's token from the query string.
func bearerToken(r *http.Request) string {
	return r.URL.Query().Get("token")
}

// decodeCredentials parses and validates a credentials body, writing a 400
// response on failure.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (domain.Credentials, bool) {
	var req CredentialsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return domain.Credentials{}, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: id and password are required")
		return domain.Credentials{}, false
	}
	return domain.Credentials{ID: req.ID, Password: req.Password}, true
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context(), bearerToken(r))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetUser(r.Context(), chi.URLParam(r, "id"), bearerToken(r))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.store.CreateUser(r.Context(), creds)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.store.UpdateUser(r.Context(), chi.URLParam(r, "id"), bearerToken(r), creds)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteUser(r.Context(), chi.URLParam(r, "id"), bearerToken(r)); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "User deleted"})
}

// GetToken handles POST /users/get_token.
func (h *UserHandler) GetToken(w http.ResponseWriter, r *http.Request) {
	creds, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.store.GetToken(r.Context(), creds)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}

// Purge handles DELETE /buster_call: the master-only global wipe.
func (h *UserHandler) Purge(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Purge(r.Context(), bearerToken(r)); err != nil {
		respondStoreError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "All data deleted"})
}
