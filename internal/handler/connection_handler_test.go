package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/slackping/slackping-backend/internal/handler"
	"github.com/slackping/slackping-backend/internal/model"
)

type stubConnectionRepo struct {
	conns map[string]*model.SlackConnection
}

func (s *stubConnectionRepo) GetActiveByID(id string) (*model.SlackConnection, error) {
	return s.conns[id], nil
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetConnection(t *testing.T) {
	h := &handler.ConnectionHandler{Repo: &stubConnectionRepo{
		conns: map[string]*model.SlackConnection{
			"conn-1": {ID: "conn-1", TeamID: "T001", TeamName: "Demo", IsActive: true},
		},
	}}

	req := httptest.NewRequest("GET", "/connections/conn-1", nil)
	req = withURLParam(req, "id", "conn-1")
	w := httptest.NewRecorder()
	h.GetConnection(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["team_name"] != "Demo" {
		t.Errorf("expected team_name Demo, got %v", body["team_name"])
	}
	if _, leaked := body["bot_token"]; leaked {
		t.Error("bot_token must never appear in the response")
	}
}

func TestGetConnectionInactiveIsNotFound(t *testing.T) {
	// The repo only returns active connections; inactive behaves as missing.
	h := &handler.ConnectionHandler{Repo: &stubConnectionRepo{conns: map[string]*model.SlackConnection{}}}

	req := httptest.NewRequest("GET", "/connections/conn-x", nil)
	req = withURLParam(req, "id", "conn-x")
	w := httptest.NewRecorder()
	h.GetConnection(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
