// Package live pushes session state snapshots over a websocket so the
// frontend can re-render from current state after every mutation.
package live

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	sessionservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/pkg/utils"
)

const writeTimeout = 10 * time.Second

// Handler upgrades watch requests and streams snapshots.
type Handler struct {
	sessions *sessionservice.Service
	logger   *zerolog.Logger
	upgrader websocket.Upgrader
}

// New creates the live state handler.
func New(sessions *sessionservice.Service, logger *zerolog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session/{sessionID}/ws", h.handleWatch)
}

func (h *Handler) handleWatch(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	// Subscribe before upgrading so a bad session ID still gets a plain
	// HTTP error.
	updates, cancel, err := h.sessions.Watch(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("session_id", sessionID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Reader goroutine: the client sends nothing meaningful, but reads are
	// needed to notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Push the current state immediately so late joiners render at once.
	if snap, err := h.sessions.Snapshot(r.Context(), sessionID); err == nil {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-done:
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(snap); err != nil {
				h.logger.Debug().Err(err).Str("session_id", sessionID).Msg("websocket write failed")
				return
			}
		}
	}
}
