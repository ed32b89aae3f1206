package handlers

import (
	"database/sql"
	"net/http"

	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/utils"
)

// HealthHandler reports process and dependency health
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthz reports process liveness
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports readiness, including database connectivity
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		utils.WriteError(w, errors.ServiceUnavailable("Database unavailable"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
