package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/conversation"
	sessionservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
)

func setupServer(t *testing.T) (*httptest.Server, *sessionservice.Service, string) {
	t.Helper()
	logger := zerolog.Nop()
	sessions := sessionservice.NewService(&logger)
	handler := New(sessions, &logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	snap := sessions.CreateSession(context.Background(), false, nil)
	return srv, sessions, snap.SessionID
}

func TestWatchUnknownSession(t *testing.T) {
	srv, _, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/session/missing/ws")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestWatchStreamsSnapshots(t *testing.T) {
	srv, sessions, sessionID := setupServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/session/" + sessionID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The initial snapshot arrives before any mutation.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var initial conversation.Snapshot
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if initial.SessionID != sessionID {
		t.Fatalf("unexpected session id: %s", initial.SessionID)
	}

	if _, err := sessions.AppendEntry(context.Background(), sessionID, "q", "a"); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var updated conversation.Snapshot
	if err := conn.ReadJSON(&updated); err != nil {
		t.Fatalf("read updated snapshot: %v", err)
	}
	if len(updated.History) != 1 {
		t.Fatalf("expected pushed snapshot with 1 entry, got %d", len(updated.History))
	}
}
