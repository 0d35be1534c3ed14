package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/agentmesh/agent-endpoint/pkg/usecase"
	"github.com/agentmesh/agent-endpoint/pkg/utils/errutil"
	"github.com/agentmesh/agent-endpoint/pkg/utils/logging"
	"github.com/agentmesh/agent-endpoint/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Post("/message", messageHandler(uc.Chat))

	r.Route("/fact", func(r chi.Router) {
		r.Post("/set", setFactHandler(uc.Fact))
		r.Get("/get/{key}", getFactHandler(uc.Fact))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// respondJSON writes v as a JSON body with status 200. All in-band
// responses of this API, including validation and upstream failures,
// use status 200: callers detect failure by the presence of an "error"
// field in the body, not by the status code. This mirrors the contract
// other agents in the platform already depend on.
func respondJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, data)
}

// respondInBandError reports a recoverable error in the response body
// with status 200 (see respondJSON).
func respondInBandError(w http.ResponseWriter, r *http.Request, err error) {
	logging.From(r.Context()).Warn("request failed",
		"path", r.URL.Path,
		"error", err.Error(),
	)
	respondJSON(w, r, map[string]string{"error": err.Error()})
}
