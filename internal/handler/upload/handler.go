package upload

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/metrics"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/imaging"
	sessionservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/pkg/utils"
)

// maxUploadBytes caps the multipart form size for an image upload.
const maxUploadBytes = 200 << 20

// Handler accepts image uploads and installs the decoded image on the
// session.
type Handler struct {
	sessions *sessionservice.Service
	logger   *zerolog.Logger
}

// New creates the upload handler.
func New(sessions *sessionservice.Service, logger *zerolog.Logger) *Handler {
	return &Handler{sessions: sessions, logger: logger}
}

// RegisterRoutes registers upload routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session/{sessionID}/image", h.handleUpload)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to parse multipart form: "+err.Error())
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read image: "+err.Error())
		return
	}

	img, err := imaging.Decode(raw)
	if err != nil {
		// A decode failure clears any previously held image.
		if errors.Is(err, imaging.ErrUnrecognizedImage) {
			if clearErr := h.sessions.SetImage(r.Context(), sessionID, nil); clearErr != nil {
				respondSessionError(w, clearErr)
				return
			}
			metrics.IncUpload("decode_error")
			utils.RespondError(w, http.StatusUnprocessableEntity, "could not decode image, upload a valid JPG/PNG")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.sessions.SetImage(r.Context(), sessionID, img); err != nil {
		respondSessionError(w, err)
		return
	}
	if err := h.sessions.RecordFirstUpload(r.Context(), sessionID); err != nil {
		respondSessionError(w, err)
		return
	}

	metrics.IncUpload("ok")
	h.logger.Info().Str("session_id", sessionID).Str("mime", img.MIMEType).
		Int("width", img.Width).Int("height", img.Height).Msg("image uploaded")

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"mimeType": img.MIMEType,
		"width":    img.Width,
		"height":   img.Height,
	})
}

func respondSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, sessionservice.ErrSessionNotFound) {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, err.Error())
}
