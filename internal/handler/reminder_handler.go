// internal/handler/reminder_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/slackping/slackping-backend/internal/errors"
	"github.com/slackping/slackping-backend/internal/model"
	"github.com/slackping/slackping-backend/internal/repository"
)

// ReminderHandler serves the read side dashboards depend on: the reminder's
// current status (including last_error for failed ones) plus its full
// delivery-attempt history from the append-only log.
type ReminderHandler struct {
	ReminderRepo repository.ReminderRepositoryInterface
	LogRepo      repository.LogRepositoryInterface
}

type reminderDetails struct {
	*model.Reminder
	Logs []model.ReminderLog `json:"logs"`
}

func (h *ReminderHandler) GetReminder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rem, err := h.ReminderRepo.GetByID(id)
	if err != nil {
		var notFound *appErrors.ErrReminderNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logs, err := h.LogRepo.ListByReminder(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reminderDetails{Reminder: rem, Logs: logs})
}
