// Package chi exposes the question-answering service over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kinhostella/atletismo/internal/domain"
	askuc "github.com/kinhostella/atletismo/internal/usecase/ask"
	healthuc "github.com/kinhostella/atletismo/internal/usecase/health"
)

const maxQuestionBytes = 4 << 10

// Error codes returned in the JSON error body.
const (
	CodeBadRequest        = "bad_request"
	CodeValidationFailed  = "validation_failed"
	CodeDataUnavailable   = "data_unavailable"
	CodeExtractionFailed  = "intent_extraction_failed"
	CodeCompositionFailed = "answer_composition_failed"
	CodeProviderError     = "model_provider_error"
	CodeInternalError     = "internal_error"
)

// AskRequest is the POST /ask body.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the POST /ask reply.
type AskResponse struct {
	Answer   string   `json:"answer"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorResponse is the JSON error body for all endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Asker answers one natural-language question.
type Asker interface {
	Ask(ctx context.Context, question string) (askuc.Answer, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers.
type Server struct {
	ask           Asker
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(ask Asker, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		ask:    ask,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDataLoad, http.StatusServiceUnavailable, CodeDataUnavailable),
		sentinelHandler(domain.ErrIntentExtraction, http.StatusBadGateway, CodeExtractionFailed),
		sentinelHandler(domain.ErrComposer, http.StatusBadGateway, CodeCompositionFailed),
		sentinelHandler(domain.ErrLLMProvider, http.StatusBadGateway, CodeProviderError),
	}
	return s
}

// Routes mounts the API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/ask", s.Ask)
	r.Get("/healthz", s.Health)
	r.Get("/metrics", s.Metrics)
}

// Ask handles POST /ask.
func (s *Server) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuestionBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Question is required")
		return
	}

	answer, err := s.ask.Ask(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer:   answer.Text,
		Warnings: answer.Warnings,
	})
}

// HealthResponse is the GET /healthz reply.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrDataLoad,
		domain.ErrIntentExtraction,
		domain.ErrComposer,
		domain.ErrLLMProvider,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
