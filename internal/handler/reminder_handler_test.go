package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slackping/slackping-backend/internal/handler"

	appErrors "github.com/slackping/slackping-backend/internal/errors"
	"github.com/slackping/slackping-backend/internal/model"
)

type stubReminderRepo struct {
	reminders map[string]*model.Reminder
}

func (s *stubReminderRepo) ListDue(now time.Time) ([]*model.DueReminder, error) { return nil, nil }
func (s *stubReminderRepo) Claim(id string) (bool, error)                       { return false, nil }
func (s *stubReminderRepo) UpdateStatus(id, status, lastError string) error     { return nil }
func (s *stubReminderRepo) Create(r *model.Reminder) error                      { return nil }

func (s *stubReminderRepo) GetByID(id string) (*model.Reminder, error) {
	if rem, ok := s.reminders[id]; ok {
		return rem, nil
	}
	return nil, appErrors.NewReminderNotFound(id)
}

type stubLogRepo struct {
	logs map[string][]model.ReminderLog
}

func (s *stubLogRepo) Create(entry *model.ReminderLog) error { return nil }
func (s *stubLogRepo) ListByReminder(reminderID string) ([]model.ReminderLog, error) {
	return s.logs[reminderID], nil
}

func TestGetReminderWithLogs(t *testing.T) {
	h := &handler.ReminderHandler{
		ReminderRepo: &stubReminderRepo{reminders: map[string]*model.Reminder{
			"rem-1": {ID: "rem-1", Title: "Standup", Status: model.StatusFailed, LastError: "channel_not_found"},
		}},
		LogRepo: &stubLogRepo{logs: map[string][]model.ReminderLog{
			"rem-1": {{ID: "log-1", ReminderID: "rem-1", Status: "failed", ErrorMessage: "channel_not_found"}},
		}},
	}

	req := httptest.NewRequest("GET", "/reminders/rem-1", nil)
	req = withURLParam(req, "id", "rem-1")
	w := httptest.NewRecorder()
	h.GetReminder(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		ID        string              `json:"id"`
		Status    string              `json:"status"`
		LastError string              `json:"last_error"`
		Logs      []model.ReminderLog `json:"logs"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Status != model.StatusFailed || body.LastError != "channel_not_found" {
		t.Errorf("dashboard contract broken: %+v", body)
	}
	if len(body.Logs) != 1 {
		t.Errorf("expected 1 log entry, got %d", len(body.Logs))
	}
}

func TestGetReminderNotFound(t *testing.T) {
	h := &handler.ReminderHandler{
		ReminderRepo: &stubReminderRepo{reminders: map[string]*model.Reminder{}},
		LogRepo:      &stubLogRepo{},
	}

	req := httptest.NewRequest("GET", "/reminders/missing", nil)
	req = withURLParam(req, "id", "missing")
	w := httptest.NewRecorder()
	h.GetReminder(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
