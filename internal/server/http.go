package server

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const readinessTimeout = 2 * time.Second

// CheckFunc reports whether one dependency is reachable.
type CheckFunc func(ctx context.Context) error

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Questions QuestionService
	Quiz      QuizSelector
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	// Readiness checks keyed by dependency name, run by /readyz.
	Readiness map[string]CheckFunc
}

// NewHandler builds the routed, middleware-wrapped API handler.
func NewHandler(cfg *config.App, logger zerolog.Logger, deps Dependencies) http.Handler {
	h := NewHandlers(deps.Questions, deps.Quiz, deps.Metrics)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("POST /questions", h.CreateQuestion)
	mux.HandleFunc("GET /questions/{id}", h.GetQuestion)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("POST /categories", h.CreateCategory)
	mux.HandleFunc("GET /categories/{id}/questions", h.ListCategoryQuestions)
	mux.HandleFunc("POST /quizzes", h.NextQuizQuestion)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
	})
	mux.HandleFunc("GET /readyz", readiness(deps.Readiness))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	routeOf := func(r *http.Request) string {
		if _, pattern := mux.Handler(r); pattern != "" {
			return pattern
		}
		return "unmatched"
	}

	return Chain(
		RequestLogger(logger),
		Recovery(),
		Instrument(deps.Metrics, routeOf),
		CORS(cfg.CORS),
		Timeout(cfg.HTTP.RequestTimeout),
	)(jsonFallback(mux))
}

// NewHTTPServer wraps NewHandler in a server bound to cfg.HTTPAddr.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps Dependencies) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg, logger, deps),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}
}

// jsonFallback serves routed requests from mux and rewrites the mux's own
// plain-text 404/405 replies into the JSON envelope.
func jsonFallback(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		rec := &headerRecorder{header: http.Header{}, status: http.StatusNotFound}
		h.ServeHTTP(rec, r)
		if allow := rec.header.Get("Allow"); allow != "" {
			w.Header().Set("Allow", allow)
		}
		httperrors.RespondError(w, rec.status, "")
	})
}

// headerRecorder records the status and headers of a handler and drops its body.
type headerRecorder struct {
	header http.Header
	status int
}

func (h *headerRecorder) Header() http.Header         { return h.header }
func (h *headerRecorder) Write(b []byte) (int, error) { return len(b), nil }
func (h *headerRecorder) WriteHeader(code int)        { h.status = code }

func readiness(checks map[string]CheckFunc) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		writeJSON(w, status, map[string]any{"success": status == http.StatusOK, "checks": results})
	}
}
