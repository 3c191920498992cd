package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/slackping/slackping-backend/internal/handler"
	"github.com/slackping/slackping-backend/internal/service"
)

type stubDispatcher struct {
	summary *service.RunSummary
	err     error
}

func (s *stubDispatcher) Run(ctx context.Context) (*service.RunSummary, error) {
	return s.summary, s.err
}

func TestSchedulerRunHandler(t *testing.T) {
	h := &handler.SchedulerHandler{
		Dispatcher: &stubDispatcher{summary: &service.RunSummary{
			Sent:   2,
			Failed: 1,
			Results: []service.ItemResult{
				{ReminderID: "rem-1", Status: "sent", Channel: "C001"},
				{ReminderID: "rem-2", Status: "failed", Error: "channel_not_found"},
				{ReminderID: "rem-3", Status: "sent", Channel: "C003"},
			},
		}},
		Log: zerolog.Nop(),
	}

	req := httptest.NewRequest("POST", "/scheduler/run", nil)
	w := httptest.NewRecorder()
	h.Run(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool                 `json:"success"`
		Sent    int                  `json:"sent"`
		Failed  int                  `json:"failed"`
		Results []service.ItemResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !body.Success {
		t.Error("partial item failure must keep success=true")
	}
	if body.Sent != 2 || body.Failed != 1 {
		t.Errorf("expected sent=2 failed=1, got sent=%d failed=%d", body.Sent, body.Failed)
	}
	if len(body.Results) != 3 {
		t.Errorf("expected 3 results, got %d", len(body.Results))
	}
}

func TestSchedulerRunHandlerEmptyRun(t *testing.T) {
	h := &handler.SchedulerHandler{
		Dispatcher: &stubDispatcher{summary: &service.RunSummary{Results: []service.ItemResult{}}},
		Log:        zerolog.Nop(),
	}

	req := httptest.NewRequest("GET", "/scheduler/run", nil)
	w := httptest.NewRecorder()
	h.Run(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["success"] != true {
		t.Error("a run with zero due items is a successful no-op")
	}
	if body["sent"].(float64) != 0 || body["failed"].(float64) != 0 {
		t.Errorf("expected sent=0 failed=0, got %v", body)
	}
}

func TestSchedulerRunHandlerScanFailure(t *testing.T) {
	h := &handler.SchedulerHandler{
		Dispatcher: &stubDispatcher{err: errors.New("db unreachable")},
		Log:        zerolog.Nop(),
	}

	req := httptest.NewRequest("GET", "/scheduler/run", nil)
	w := httptest.NewRecorder()
	h.Run(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["success"] != false {
		t.Error("scan failure must report success=false")
	}
	if body["error"] != "db unreachable" {
		t.Errorf("expected error message in body, got %v", body["error"])
	}
}
