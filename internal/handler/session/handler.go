package session

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/conversation"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/ask"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/history"
	sessionservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/pkg/utils"
)

// Handler exposes session lifecycle and per-entry actions over HTTP.
type Handler struct {
	sessions *sessionservice.Service
	askSvc   *ask.Service
	store    *history.Store
}

// New creates the session handler.
func New(sessions *sessionservice.Service, askSvc *ask.Service, store *history.Store) *Handler {
	return &Handler{
		sessions: sessions,
		askSvc:   askSvc,
		store:    store,
	}
}

// RegisterRoutes registers session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreate)
	r.Get("/session/{sessionID}", h.handleSnapshot)
	r.Post("/session/{sessionID}/clear", h.handleClear)
	r.Post("/session/{sessionID}/persistence", h.handlePersistence)
	r.Post("/session/{sessionID}/entries/{entryID}/rating", h.handleRate)
	r.Post("/session/{sessionID}/entries/{entryID}/pin", h.handlePin)
	r.Get("/session/{sessionID}/export", h.handleExport)
	r.Get("/session/{sessionID}/answers/latest", h.handleLatestAnswer)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PersistHistory bool `json:"persistHistory"`
	}
	// An empty body means defaults: no persistence.
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var hydrated []conversation.Entry
	if payload.PersistHistory {
		hydrated = h.store.Load()
	}

	snapshot := h.sessions.CreateSession(r.Context(), payload.PersistHistory, hydrated)
	utils.RespondJSON(w, http.StatusCreated, snapshot)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	snapshot, err := h.sessions.Snapshot(r.Context(), sessionID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.sessions.ClearHistory(r.Context(), sessionID); err != nil {
		respondSessionError(w, err)
		return
	}

	resp := map[string]string{"status": "cleared"}
	if err := h.askSvc.Persist(r.Context(), sessionID); err != nil {
		resp["persistError"] = err.Error()
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePersistence(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		OptIn bool `json:"optIn"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessions.SetPersistOptIn(r.Context(), sessionID, payload.OptIn); err != nil {
		respondSessionError(w, err)
		return
	}

	resp := map[string]any{"persistOptIn": payload.OptIn}
	if payload.OptIn {
		if err := h.askSvc.Persist(r.Context(), sessionID); err != nil {
			resp["persistError"] = err.Error()
		}
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRate(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	entryID := chi.URLParam(r, "entryID")

	var payload struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.sessions.SetRating(r.Context(), sessionID, entryID, payload.Rating); err != nil {
		respondSessionError(w, err)
		return
	}

	resp := map[string]any{"rating": payload.Rating}
	if err := h.askSvc.Persist(r.Context(), sessionID); err != nil {
		resp["persistError"] = err.Error()
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePin(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	entryID := chi.URLParam(r, "entryID")

	pinned, err := h.sessions.TogglePin(r.Context(), sessionID, entryID)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	resp := map[string]any{"pinned": pinned}
	if err := h.askSvc.Persist(r.Context(), sessionID); err != nil {
		resp["persistError"] = err.Error()
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	items, err := h.sessions.History(r.Context(), sessionID)
	if err != nil {
		respondSessionError(w, err)
		return
	}

	data, err := h.store.Export(items)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to export history")
		return
	}
	utils.RespondAttachment(w, "application/json", "vision_history.json", data)
}

func (h *Handler) handleLatestAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	entry, err := h.sessions.LatestEntry(r.Context(), sessionID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondAttachment(w, "text/plain; charset=utf-8", "latest_answer.txt", h.store.AnswerText(entry))
}

func respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionservice.ErrSessionNotFound),
		errors.Is(err, sessionservice.ErrEntryNotFound),
		errors.Is(err, sessionservice.ErrNoEntries):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sessionservice.ErrRatingOutOfRange):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
