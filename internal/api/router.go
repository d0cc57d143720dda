package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/phrazzld/lexicon-srs/internal/api/middleware"
	"github.com/phrazzld/lexicon-srs/internal/service/study"
)

// RequestTimeout bounds every API request.
const RequestTimeout = 30 * time.Second

// NewRouter creates the HTTP handler with all routes and middleware.
func NewRouter(studyService study.Service, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(RequestTimeout))
	r.Use(apiMiddleware.NewTraceMiddleware(logger))

	wordHandler := NewWordHandler(studyService, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/words", func(r chi.Router) {
			r.Post("/", wordHandler.RegisterWords)
			r.Get("/due", wordHandler.GetDueWords)
			r.Get("/new", wordHandler.GetNewWords)
			r.Get("/{id}", wordHandler.GetWord)
			r.Get("/{id}/history", wordHandler.GetHistory)
			r.Post("/{id}/answer", wordHandler.SubmitAnswer)
		})
		r.Get("/activity", wordHandler.GetActivity)
		r.Get("/reminders", wordHandler.GetReminders)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
