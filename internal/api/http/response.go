package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"pawnledger-backend/internal/domain"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/storage"
	"pawnledger-backend/internal/utils"
)

const maxJSONBody = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrInvalidReference),
		errors.Is(err, storage.ErrUnknownDocumentKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, storage.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrBranchInUse):
		return http.StatusConflict
	case errors.Is(err, domain.ErrExceedsLimit), errors.Is(err, domain.ErrLoanClosed),
		errors.Is(err, domain.ErrNotAuctionable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}

	switch {
	case status == http.StatusServiceUnavailable:
		logger.Warn("Request timed out", "method", r.Method, "path", r.URL.Path, "error", err)
		resp.Error = "service temporarily unavailable"
	case status >= http.StatusInternalServerError:
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		resp.Error = "internal server error"
	}
	writeJSON(w, status, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", fmt.Sprintf("is not valid JSON: %v", err))
	}
	return nil
}

func pathID(r *http.Request, name string) (int32, error) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || v <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return int32(v), nil
}

func queryInt32(r *http.Request, name string) (*int32, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be an integer")
	}
	out := int32(v)
	return &out, nil
}

// queryDate parses a YYYY-MM-DD query value in the business location. Missing means nil.
func queryDate(r *http.Request, name string, loc *time.Location) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(raw, loc)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a date in YYYY-MM-DD form")
	}
	return &d, nil
}
