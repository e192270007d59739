package speech

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	sessionservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
	speechsvc "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/speech"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/pkg/utils"
)

// Handler plays the latest answer aloud through the offline engine.
type Handler struct {
	speechSvc *speechsvc.Service
	sessions  *sessionservice.Service
}

// New creates the speech handler.
func New(speechSvc *speechsvc.Service, sessions *sessionservice.Service) *Handler {
	return &Handler{speechSvc: speechSvc, sessions: sessions}
}

// RegisterRoutes registers speech routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session/{sessionID}/speak", h.handleSpeak)
	r.Get("/speech/health", h.handleHealth)
}

func (h *Handler) handleSpeak(w http.ResponseWriter, r *http.Request) {
	if !h.speechSvc.Available() {
		utils.RespondError(w, http.StatusServiceUnavailable, "speech engine not available")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	entry, err := h.sessions.LatestEntry(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, sessionservice.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, sessionservice.ErrNoEntries):
			utils.RespondError(w, http.StatusNotFound, "no answers available yet to play")
		default:
			utils.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	// Playback blocks until the engine finishes.
	if err := h.speechSvc.Speak(r.Context(), entry.Answer); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "played"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"available": h.speechSvc.Available()})
}
