package session

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/conversation"
	askservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/ask"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/history"
	sessionservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/vision"
)

func setupRouter(t *testing.T) (*chi.Mux, *sessionservice.Service) {
	t.Helper()
	logger := zerolog.Nop()
	sessions := sessionservice.NewService(&logger)
	store := history.NewStore(filepath.Join(t.TempDir(), "history.json"), &logger)
	askSvc := askservice.NewService(sessions, vision.Unconfigured{}, store, &logger)
	handler := New(sessions, askSvc, store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, sessions
}

func createSession(t *testing.T, r *chi.Mux) conversation.Snapshot {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var snap conversation.Snapshot
	if err := json.Unmarshal(resp.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func TestCreateSession(t *testing.T) {
	r, _ := setupRouter(t)
	snap := createSession(t, r)

	if snap.SessionID == "" {
		t.Fatal("expected session id")
	}
	if snap.PersistOptIn {
		t.Fatal("persistence must default to opt-out")
	}
	if len(snap.History) != 0 {
		t.Fatal("expected empty history")
	}
}

func TestCreateSessionEmptyBody(t *testing.T) {
	r, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/session", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for empty body, got %d", resp.Code)
	}
}

func TestSnapshotUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/session/nope", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestRateEntry(t *testing.T) {
	r, sessions := setupRouter(t)
	snap := createSession(t, r)
	entry, _ := sessions.AppendEntry(context.Background(), snap.SessionID, "q", "a")

	payload := []byte(`{"rating":4}`)
	req := httptest.NewRequest(http.MethodPost, "/session/"+snap.SessionID+"/entries/"+entry.ID+"/rating", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	history, _ := sessions.History(context.Background(), snap.SessionID)
	if history[0].Rating != 4 {
		t.Fatalf("expected rating persisted, got %d", history[0].Rating)
	}
}

func TestRateEntryOutOfRange(t *testing.T) {
	r, sessions := setupRouter(t)
	snap := createSession(t, r)
	entry, _ := sessions.AppendEntry(context.Background(), snap.SessionID, "q", "a")

	payload := []byte(`{"rating":9}`)
	req := httptest.NewRequest(http.MethodPost, "/session/"+snap.SessionID+"/entries/"+entry.ID+"/rating", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPinEntry(t *testing.T) {
	r, sessions := setupRouter(t)
	snap := createSession(t, r)
	entry, _ := sessions.AppendEntry(context.Background(), snap.SessionID, "q", "a")

	url := "/session/" + snap.SessionID + "/entries/" + entry.ID + "/pin"
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, url, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	history, _ := sessions.History(context.Background(), snap.SessionID)
	if !history[0].Pinned {
		t.Fatal("expected entry pinned")
	}
}

func TestClearHistory(t *testing.T) {
	r, sessions := setupRouter(t)
	snap := createSession(t, r)
	sessions.AppendEntry(context.Background(), snap.SessionID, "q", "a")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/session/"+snap.SessionID+"/clear", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	history, _ := sessions.History(context.Background(), snap.SessionID)
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d", len(history))
	}
}

func TestExportHistory(t *testing.T) {
	r, sessions := setupRouter(t)
	snap := createSession(t, r)
	sessions.AppendEntry(context.Background(), snap.SessionID, "q", "a")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/session/"+snap.SessionID+"/export", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json attachment, got %s", ct)
	}
	if !strings.Contains(resp.Header().Get("Content-Disposition"), "vision_history.json") {
		t.Fatal("expected attachment filename")
	}

	var doc struct {
		ExportedAt string               `json:"exported_at"`
		Items      []conversation.Entry `json:"items"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.ExportedAt == "" || len(doc.Items) != 1 {
		t.Fatalf("unexpected export payload: %+v", doc)
	}
}

func TestLatestAnswerDownload(t *testing.T) {
	r, sessions := setupRouter(t)
	snap := createSession(t, r)
	sessions.AppendEntry(context.Background(), snap.SessionID, "q", "the answer")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/session/"+snap.SessionID+"/answers/latest", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != "the answer" {
		t.Fatalf("expected plain answer text, got %q", resp.Body.String())
	}
}

func TestLatestAnswerEmptyHistory(t *testing.T) {
	r, _ := setupRouter(t)
	snap := createSession(t, r)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/session/"+snap.SessionID+"/answers/latest", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestPersistenceToggle(t *testing.T) {
	r, sessions := setupRouter(t)
	snap := createSession(t, r)

	payload := []byte(`{"optIn":true}`)
	req := httptest.NewRequest(http.MethodPost, "/session/"+snap.SessionID+"/persistence", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	optIn, _ := sessions.PersistOptIn(context.Background(), snap.SessionID)
	if !optIn {
		t.Fatal("expected opt-in recorded")
	}
}
