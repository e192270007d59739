package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	questionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "questions_total",
			Help: "Count of send attempts that produced a history entry.",
		},
	)

	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Count of image uploads per decode outcome.",
		},
		[]string{"outcome"},
	)

	inferenceFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inference_failures_total",
			Help: "Count of inference calls whose error was captured into an answer.",
		},
	)

	historySavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_saves_total",
			Help: "Count of history snapshot writes per outcome.",
		},
		[]string{"outcome"},
	)
)

// Register installs all collectors into the provided registry exactly once.
func Register(reg prometheus.Registerer) {
	once.Do(func() {
		reg.MustRegister(
			questionsTotal,
			uploadsTotal,
			inferenceFailuresTotal,
			historySavesTotal,
		)
	})
}

// IncQuestions records one completed send attempt.
func IncQuestions() { questionsTotal.Inc() }

// IncUpload records an image upload; outcome is "ok" or "decode_error".
func IncUpload(outcome string) { uploadsTotal.WithLabelValues(outcome).Inc() }

// IncInferenceFailure records an inference error captured as answer text.
func IncInferenceFailure() { inferenceFailuresTotal.Inc() }

// IncHistorySave records a snapshot write; outcome is "ok" or "error".
func IncHistorySave(outcome string) { historySavesTotal.WithLabelValues(outcome).Inc() }
