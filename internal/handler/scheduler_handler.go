// internal/handler/scheduler_handler.go
package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/slackping/slackping-backend/internal/service"
)

// DispatchRunner is the piece of the Dispatcher the handler needs.
type DispatchRunner interface {
	Run(ctx context.Context) (*service.RunSummary, error)
}

// SchedulerHandler exposes the dispatch loop over HTTP. The external cron
// hits /scheduler/run once a minute; POST exists for manual triggering.
type SchedulerHandler struct {
	Dispatcher DispatchRunner
	Log        zerolog.Logger
}

type runResponse struct {
	Success   bool                 `json:"success"`
	Sent      int                  `json:"sent"`
	Failed    int                  `json:"failed"`
	Timestamp time.Time            `json:"timestamp"`
	Results   []service.ItemResult `json:"results"`
	Error     string               `json:"error,omitempty"`
}

// Run executes one synchronous dispatch pass and reports the summary.
// Per-item failures keep success=true; only a scan failure is a run failure.
func (h *SchedulerHandler) Run(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Dispatcher.Run(r.Context())

	w.Header().Set("Content-Type", "application/json")

	if err != nil {
		h.Log.Error().Err(err).Msg("scheduler run failed")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(runResponse{
			Success:   false,
			Timestamp: time.Now().UTC(),
			Results:   []service.ItemResult{},
			Error:     err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(runResponse{
		Success:   true,
		Sent:      summary.Sent,
		Failed:    summary.Failed,
		Timestamp: time.Now().UTC(),
		Results:   summary.Results,
	})
}

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	DB *sql.DB
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.DB.Ping(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "down", "error": err.Error()})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
