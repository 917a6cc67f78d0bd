// Package api exposes the layout engine over HTTP.
//
// The surface is a small JSON API:
//
//   - POST /v1/plan: style, size, and place a text batch
//   - POST /v1/arrange: reposition existing elements
//   - POST /v1/fit: solve a font size for a box
//   - POST /v1/documents/{documentID}/mutations: invalidate cached canvas metadata
//   - GET /healthz: liveness probe
//
// All payloads are JSON. Validation failures map to 400, unknown documents
// to 404, everything else to 500 with the structured error code in the
// body.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/deckplan/deckplan/pkg/engine"
	"github.com/deckplan/deckplan/pkg/errors"
)

// maxBodyBytes caps request bodies. Layout batches are small; anything
// bigger than a megabyte is a caller bug.
const maxBodyBytes = 1 << 20

// Server routes HTTP requests to an [engine.Engine].
type Server struct {
	engine *engine.Engine
	logger *log.Logger
	router chi.Router
}

// NewServer creates a Server around eng. A nil logger gets the package
// default.
func NewServer(eng *engine.Engine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		engine: eng,
		logger: logger,
		router: chi.NewRouter(),
	}

	s.router.Use(s.requestLogger)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/plan", s.handlePlan)
		r.Post("/arrange", s.handleArrange)
		r.Post("/fit", s.handleFit)
		r.Post("/documents/{documentID}/mutations", s.handleMutation)
	})

	return s
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestLogger tags every request with an id and logs the outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Debug("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var opts engine.PlaceOptions
	if !s.decode(w, r, &opts) {
		return
	}

	result, err := s.engine.Place(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	var opts engine.ArrangeOptions
	if !s.decode(w, r, &opts) {
		return
	}

	result, err := s.engine.Arrange(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	var opts engine.FitOptions
	if !s.decode(w, r, &opts) {
		return
	}

	result, err := s.engine.FitText(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleMutation is the mutation notification hook: callers that change a
// document structurally POST here so the next layout request re-fetches
// the canvas.
func (s *Server) handleMutation(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "documentID")
	if err := errors.ValidateDocumentID(documentID); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.engine.OnMutation(r.Context(), documentID); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]string{
		"document_id": documentID,
		"status":      "invalidated",
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "malformed request body"))
		return false
	}
	return true
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	s.writeJSON(w, statusFor(code), errorResponse{
		Error: errors.UserMessage(err),
		Code:  code,
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidStrategy,
		errors.ErrCodeInvalidFontSize,
		errors.ErrCodeInvalidManifest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}
