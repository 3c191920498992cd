// internal/handler/connection_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slackping/slackping-backend/internal/repository"
)

// ConnectionHandler exposes the active-connection lookup the dashboard uses
// to verify a workspace before scheduling reminders into it.
type ConnectionHandler struct {
	Repo repository.ConnectionRepositoryInterface
}

// GetConnection returns a connection by id, only if it is active.
// Missing and deactivated connections are both a 404: from the caller's
// point of view the connection is unusable either way.
func (h *ConnectionHandler) GetConnection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	conn, err := h.Repo.GetActiveByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if conn == nil {
		http.Error(w, "connection not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conn)
}
