package preset

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	presetmodel "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/preset"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/pkg/utils"
)

// Handler serves the preset prompt catalog.
type Handler struct {
	store presetmodel.Store
}

// New creates the preset handler.
func New(store presetmodel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers preset routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/presets", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"presets": h.store.List()})
}
