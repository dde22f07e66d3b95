// Package api implements the HTTP API for Speed.
//
// The API exposes the conversion pipeline over HTTP so that networks can be
// converted and their descriptions stored without a local installation:
//
//	POST   /v1/descriptions       convert a snapshot and store the result
//	GET    /v1/descriptions       list stored descriptions
//	GET    /v1/descriptions/{id}  fetch a stored description
//	DELETE /v1/descriptions/{id}  delete a stored description
//	GET    /healthz               liveness probe
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/orcalab/speed/pkg/errors"
	"github.com/orcalab/speed/pkg/observability"
	"github.com/orcalab/speed/pkg/pipeline"
	"github.com/orcalab/speed/pkg/store"
)

// Server handles HTTP requests for the description API.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server.
// If logger is nil, the default logger is used.
func NewServer(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  st,
		runner: runner,
		logger: logger,
	}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/descriptions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

// requestIDHeader carries the per-request identifier in responses.
const requestIDHeader = "X-Request-ID"

// requestID assigns each request a fresh identifier unless the client
// supplied one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// logRequests logs each request and feeds the API observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		duration := time.Since(start)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, sw.status, duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", duration,
			"request_id", w.Header().Get(requestIDHeader))
	})
}

// statusWriter captures the response status code for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// errorResponse is the JSON body for error responses.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError maps an error to an HTTP status and writes the error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	s.writeJSON(w, statusForCode(code), errorResponse{
		Code:    string(orInternal(code)),
		Message: errors.UserMessage(err),
	})
}

func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidSnapshot,
		errors.ErrCodeInvalidGroup,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath,
		errors.ErrCodeEmptyPopulation,
		errors.ErrCodeUnknownGroup,
		errors.ErrCodeDuplicateGroup:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound,
		errors.ErrCodeDescriptionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func orInternal(code errors.Code) errors.Code {
	if code == "" {
		return errors.ErrCodeInternal
	}
	return code
}
