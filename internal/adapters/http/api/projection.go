package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/nestegg/internal/adapters/repository"
	"github.com/okian/nestegg/internal/display"
	"github.com/okian/nestegg/internal/domain/model"
)

// ProjectionDependencies defines the projection operations.
type ProjectionDependencies interface {
	Project(ctx context.Context, in model.InputRecord) (model.Result, error)
	Latest(ctx context.Context) (repository.Record, error)
}

// ProjectionHandler handles the /api/projection routes.
type ProjectionHandler struct {
	deps ProjectionDependencies
}

// NewProjectionHandler creates a new projection handler.
func NewProjectionHandler(deps ProjectionDependencies) *ProjectionHandler {
	return &ProjectionHandler{deps: deps}
}

// HandleProjection dispatches GET (latest outcome) and POST (stateless projection).
func (h *ProjectionHandler) HandleProjection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleLatest(w, r)
	case http.MethodPost:
		h.handleProject(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, ErrMethodNotAllowed)
	}
}

func (h *ProjectionHandler) handleProject(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_projection"
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeServiceError(w, op, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if err := validateInputRecord(body); err != nil {
		writeServiceError(w, op, err)
		return
	}
	var in model.InputRecord
	if err := json.Unmarshal(body, &in); err != nil {
		writeServiceError(w, op, fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	res, err := h.deps.Project(r.Context(), in)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ProjectionHandler) handleLatest(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_projection"
	rec, err := h.deps.Latest(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, latestResponse{
		Revision: rec.Revision,
		StoredAt: rec.StoredAt,
		Result:   rec.Outcome.Result,
		Error:    rec.Outcome.Error,
	})
}

// HandleChart handles GET /api/projection/chart requests.
// A failed latest outcome has no chart and is reported as a validation error.
func (h *ProjectionHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	rec, err := h.deps.Latest(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if rec.Outcome.Failed() || rec.Outcome.Result == nil {
		writeValidation(w, rec.Outcome.Error)
		return
	}
	writeJSON(w, http.StatusOK, display.NewChart(*rec.Outcome.Result))
}
