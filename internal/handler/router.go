package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	askhandler "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/handler/ask"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/handler/live"
	presethandler "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/handler/preset"
	sessionhandler "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/handler/session"
	speechhandler "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/handler/speech"
	uploadhandler "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/handler/upload"
	middlewarePkg "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/middleware"
	presetmodel "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/model/preset"
	askservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/ask"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/history"
	sessionservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/session"
	speechservice "github.com/Pujithcheeday/IMAGE-SUMMARY/internal/service/speech"
	"github.com/Pujithcheeday/IMAGE-SUMMARY/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(
	sessions *sessionservice.Service,
	askSvc *askservice.Service,
	store *history.Store,
	presets presetmodel.Store,
	speechSvc *speechservice.Service,
	registry *prometheus.Registry,
	logger *zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		sessionhandler.New(sessions, askSvc, store).RegisterRoutes(api)
		uploadhandler.New(sessions, logger).RegisterRoutes(api)
		askhandler.New(askSvc, presets).RegisterRoutes(api)
		presethandler.New(presets).RegisterRoutes(api)
		speechhandler.New(speechSvc, sessions).RegisterRoutes(api)
		live.New(sessions, logger).RegisterRoutes(api)

		api.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}
