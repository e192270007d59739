package ask

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/preset"
	askservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/ask"
	sessionservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/vision"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/pkg/utils"
)

// Handler exposes the send action.
type Handler struct {
	askSvc  *askservice.Service
	presets preset.Store
}

// New creates the ask handler.
func New(askSvc *askservice.Service, presets preset.Store) *Handler {
	return &Handler{askSvc: askSvc, presets: presets}
}

// RegisterRoutes registers the send route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session/{sessionID}/ask", h.handleAsk)
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Question string `json:"question"`
		PresetID string `json:"presetId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := payload.Question
	if question == "" && payload.PresetID != "" {
		p, ok := h.presets.FindByID(payload.PresetID)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "preset not found")
			return
		}
		question = p.Prompt
	}

	result, err := h.askSvc.Send(r.Context(), sessionID, question)
	if err != nil {
		respondSendError(w, err)
		return
	}

	resp := map[string]any{"entry": result.Entry}
	if result.PersistErr != "" {
		resp["persistError"] = result.PersistErr
	}
	utils.RespondJSON(w, http.StatusCreated, resp)
}

func respondSendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vision.ErrNotConfigured):
		utils.RespondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, askservice.ErrNoImage), errors.Is(err, askservice.ErrEmptyQuestion):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sessionservice.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
