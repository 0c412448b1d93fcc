package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.errorResponse(w, r, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// domainError maps the engine's typed errors onto the response envelope.
// Conflicts carry the existing record's timestamp so the client can say why
// the write was rejected. Anything untyped is an internal error.
func (h *Handler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.NotFoundError
	var forbiddenErr *domain.ForbiddenError
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &validationErr):
		h.errorResponse(w, r, validationErr.Message)
	case errors.As(err, &notFoundErr):
		h.errorResponse(w, r, notFoundErr.Error())
	case errors.As(err, &forbiddenErr):
		h.errorResponse(w, r, forbiddenErr.Message)
	case errors.As(err, &conflictErr):
		var data any
		if !conflictErr.ExistingAt.IsZero() {
			data = map[string]time.Time{"existingAt": conflictErr.ExistingAt}
		}
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: conflictErr.Error(),
			Data:    data,
		})
	default:
		h.internalServerError(w, r, err)
	}
}
