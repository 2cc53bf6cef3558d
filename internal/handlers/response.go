package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/service"
	"github.com/csg33k/staffdesk/internal/validation"
	"github.com/csg33k/staffdesk/internal/workflow"
)

const maxBody = 1 << 20

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type errorPayload struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

type errorResponse struct {
	Status string       `json:"status"`
	Error  errorPayload `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, successResponse{Status: "success", Message: message, Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, fields map[string]string) {
	writeJSON(w, status, errorResponse{Status: "error", Error: errorPayload{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
		Fields:    fields,
	}})
}

// fail maps err onto the error envelope. Server-side failures are logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if fields, ok := validation.AsErrors(err); ok {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", fields)
		return
	}
	status, code, msg := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	writeError(w, r, status, code, msg, nil)
}

func mapDomainError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, errBadRequest), errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrEmptySkill),
		errors.Is(err, domain.ErrUnknownKind), errors.Is(err, workflow.ErrUnknownCommand):
		return http.StatusBadRequest, "INVALID_INPUT", err.Error()
	case errors.Is(err, domain.ErrDuplicateID), errors.Is(err, domain.ErrDuplicateSkill),
		errors.Is(err, domain.ErrAlreadyRegistered):
		return http.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, workflow.ErrConfirmationPending), errors.Is(err, workflow.ErrSubmissionPending):
		return http.StatusConflict, "PENDING", err.Error()
	case errors.Is(err, workflow.ErrNothingPending):
		return http.StatusConflict, "NOTHING_PENDING", err.Error()
	case errors.Is(err, workflow.ErrUndoUnavailable):
		return http.StatusGone, "UNDO_UNAVAILABLE", err.Error()
	case errors.Is(err, service.ErrNoReports):
		return http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "CANCELLED", "request cancelled"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json body: %v", errBadRequest, err)
	}
	return nil
}

var errBadRequest = errors.New("bad request")
