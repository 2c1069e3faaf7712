// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/nestegg/internal/adapters/repository"
	"github.com/okian/nestegg/internal/domain/collector"
	"github.com/okian/nestegg/internal/domain/model"
	"github.com/okian/nestegg/internal/domain/projection"
)

// maxBodyBytes bounds request bodies; an Input Record is a few hundred bytes.
const maxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	FormDependencies
	ProjectionDependencies
}

// Error codes carried in error bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidation       = "validation_error"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeInternal         = "internal_error"
)

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	formHandler       *FormHandler
	projectionHandler *ProjectionHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		formHandler:       NewFormHandler(deps),
		projectionHandler: NewProjectionHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/api/form", MetricsMiddleware(s.formHandler.HandleGetForm, "form"))
	mux.HandleFunc("/api/form/field", MetricsMiddleware(s.formHandler.HandleSetField, "form_field"))
	mux.HandleFunc("/api/form/reset", MetricsMiddleware(s.formHandler.HandleReset, "form_reset"))
	mux.HandleFunc("/api/form/submit", MetricsMiddleware(s.formHandler.HandleSubmit, "form_submit"))

	mux.HandleFunc("/api/projection", MetricsMiddleware(s.projectionHandler.HandleProjection, "projection"))
	mux.HandleFunc("/api/projection/chart", MetricsMiddleware(s.projectionHandler.HandleChart, "projection_chart"))
}

// fieldResponse is returned by form mutations.
type fieldResponse struct {
	Values  model.InputRecord `json:"values"`
	Clamped bool              `json:"clamped"`
}

// latestResponse is the stored outcome plus bookkeeping.
type latestResponse struct {
	Revision uint64        `json:"revision"`
	StoredAt time.Time     `json:"storedAt"`
	Result   *model.Result `json:"result,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeValidation reports a failed projection with the bare user-facing message.
func writeValidation(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Code: codeValidation, Message: msg})
}

// writeServiceError maps upstream errors to status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	var ve *projection.ValidationError
	switch {
	case errors.As(err, &ve):
		writeValidation(w, ve.Message)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err)
	case errors.Is(err, collector.ErrUnknownField),
		errors.Is(err, collector.ErrInvalidValue),
		errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrSchema):
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, codeInternal, fmt.Errorf("%s: %w", op, err))
	}
}

// allowMethod writes a 405 and returns false unless r uses method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, ErrMethodNotAllowed)
	return false
}
