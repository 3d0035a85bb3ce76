package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/pkg/ctxutil"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error     string              `json:"error"`
	Code      string              `json:"code,omitempty"`
	Fields    []domain.FieldError `json:"fields,omitempty"`
	Available *int                `json:"available,omitempty"`
	Requested *int                `json:"requested,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// nullable tells an absent JSON field from an explicit null.
type nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// IsNull reports whether the field was present and null.
func (n nullable[T]) IsNull() bool { return n.Set && n.Value == nil }

// pathUUID parses a {name} path segment.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

// writeDomainError maps a service error to a status code and JSON body.
// Unexpected errors are logged and hidden from the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		insufficient *domain.InsufficientStockError
		validation   *domain.ValidationError
	)

	switch {
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:     insufficient.Error(),
			Code:      "INSUFFICIENT_STOCK",
			Available: &insufficient.Available,
			Requested: &insufficient.Requested,
		})

	case errors.Is(err, domain.ErrPersistence):
		log.ErrorContext(r.Context(), "persistence failure",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "storage unavailable, nothing was applied",
			Code:  "PERSISTENCE",
		})

	case errors.Is(err, domain.ErrDuplicateRequest):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "duplicate request", Code: "DUPLICATE_REQUEST"})

	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  validation.Error(),
			Code:   validationCode(validation),
			Fields: validation.Errors,
		})

	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: notFoundMessage(err), Code: "NOT_FOUND"})

	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "UNAUTHENTICATED"})

	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "forbidden", Code: "FORBIDDEN"})

	case errors.Is(err, domain.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "already exists", Code: "ALREADY_EXISTS"})

	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "conflict", Code: "CONFLICT"})

	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "INTERNAL"})
	}
}

func validationCode(ve *domain.ValidationError) string {
	switch {
	case errors.Is(ve.Cause, domain.ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(ve.Cause, domain.ErrInvalidKind):
		return "INVALID_TYPE"
	}
	return "VALIDATION"
}

func notFoundMessage(err error) string {
	if errors.Is(err, domain.ErrItemNotFound) {
		return "item not found"
	}
	return "not found"
}
