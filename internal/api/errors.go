package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/redact"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// ContractMessage maps a store error onto the exact string the HTTP contract
// promises. The second return is false for errors outside the closed set.
func ContractMessage(err error) (string, bool) {
	for _, sentinel := range []error{
		store.ErrUnauthorized,
		store.ErrUserNotFound,
		store.ErrTaskNotFound,
		store.ErrInvalidToken,
		store.ErrDuplicateUser,
		store.ErrInvalidCredentials,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error(), true
		}
	}
	return "", false
}

// respondStoreError translates a store failure into a response. Contract
// outcomes become HTTP 200 {"error": "<string>"} bodies; anything else is an
// internal fault, logged with the trace ID and hidden behind a generic 500.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if msg, ok := ContractMessage(err); ok {
		shared.RespondWithJSON(w, r, http.StatusOK, shared.ErrorResponse{Error: msg})
		return
	}

	slog.Error("store operation failed",
		slog.String("error", redact.Error(err)),
		slog.String("trace_id", shared.GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))
	shared.RespondWithError(w, r, http.StatusInternalServerError, "Internal server error")
}
