package api

import (
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new HealthHandler backed by the given store.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Live handles GET /. The probe itself never fails: an unreachable store is
// reported as {"is_alive": false} with HTTP 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.store.IsAlive(r.Context()))
}
