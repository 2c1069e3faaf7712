package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/okian/nestegg/internal/domain/collector"
	"github.com/okian/nestegg/internal/domain/model"
)

// FormDependencies defines the operations backing the shared form.
type FormDependencies interface {
	FormValues(ctx context.Context) (model.InputRecord, error)
	SetField(ctx context.Context, field collector.Field, value float64) (model.InputRecord, bool, error)
	SetFieldString(ctx context.Context, field collector.Field, raw string) (model.InputRecord, bool, error)
	ResetForm(ctx context.Context) (model.InputRecord, error)
	Submit(ctx context.Context) (model.Outcome, error)
}

// FormHandler handles the /api/form routes.
type FormHandler struct {
	deps FormDependencies
}

// NewFormHandler creates a new form handler.
func NewFormHandler(deps FormDependencies) *FormHandler {
	return &FormHandler{deps: deps}
}

// fieldRequest accepts the value as a JSON number or a string.
type fieldRequest struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// HandleGetForm handles GET /api/form requests.
func (h *FormHandler) HandleGetForm(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_form"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	values, err := h.deps.FormValues(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// HandleSetField handles POST /api/form/field requests.
func (h *FormHandler) HandleSetField(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_field"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var (
		values  model.InputRecord
		clamped bool
		err     error
	)
	if isFormEncoded(r) {
		if perr := r.ParseForm(); perr != nil {
			writeServiceError(w, op, fmt.Errorf("%w: %v", ErrBadRequest, perr))
			return
		}
		field := collector.Field(r.PostForm.Get("field"))
		values, clamped, err = h.deps.SetFieldString(r.Context(), field, r.PostForm.Get("value"))
	} else {
		var req fieldRequest
		if derr := json.NewDecoder(r.Body).Decode(&req); derr != nil {
			writeServiceError(w, op, fmt.Errorf("%w: %v", ErrBadRequest, derr))
			return
		}
		values, clamped, err = h.setFromJSON(r.Context(), collector.Field(req.Field), req.Value)
	}
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fieldResponse{Values: values, Clamped: clamped})
}

func (h *FormHandler) setFromJSON(ctx context.Context, field collector.Field, raw json.RawMessage) (model.InputRecord, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return model.InputRecord{}, false, fmt.Errorf("%w: missing value", ErrBadRequest)
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return model.InputRecord{}, false, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return h.deps.SetFieldString(ctx, field, s)
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return model.InputRecord{}, false, fmt.Errorf("%w: value must be a number", ErrBadRequest)
	}
	return h.deps.SetField(ctx, field, v)
}

// HandleReset handles POST /api/form/reset requests.
func (h *FormHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset_form"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	values, err := h.deps.ResetForm(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, fieldResponse{Values: values})
}

// HandleSubmit handles POST /api/form/submit requests.
func (h *FormHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_form"
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	outcome, err := h.deps.Submit(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	if outcome.Failed() {
		writeValidation(w, outcome.Error)
		return
	}
	writeJSON(w, http.StatusOK, outcome.Result)
}

func isFormEncoded(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/x-www-form-urlencoded"
}
