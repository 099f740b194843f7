package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/logger"
)

// ErrorCode is the machine-readable error code of an error response.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeInvalidQuery       ErrorCode = "invalid_query"
	CodeCollectionNotFound ErrorCode = "collection_not_found"
	CodeListingNotFound    ErrorCode = "listing_not_found"
	CodeSessionNotFound    ErrorCode = "session_not_found"
	CodeNotFound           ErrorCode = "not_found"
	CodeAlreadyExists      ErrorCode = "already_exists"
	CodeInvalidSession     ErrorCode = "invalid_session"
	CodeStepIncomplete     ErrorCode = "step_incomplete"
	CodeUnknownFlow        ErrorCode = "unknown_flow"
	CodeSourceUnavailable  ErrorCode = "source_unavailable"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// defaultErrorHandlers is ordered: specific sentinels before generic ones.
func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrCollectionNotFound, http.StatusNotFound, CodeCollectionNotFound, false),
		sentinelHandler(domain.ErrListingNotFound, http.StatusNotFound, CodeListingNotFound, false),
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound, false),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound, false),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, CodeAlreadyExists, false),
		sentinelHandler(domain.ErrInvalidListing, http.StatusBadRequest, CodeValidationFailed, true),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery, true),
		sentinelHandler(domain.ErrInvalidSession, http.StatusBadRequest, CodeInvalidSession, true),
		sentinelHandler(domain.ErrStepIncomplete, http.StatusUnprocessableEntity, CodeStepIncomplete, true),
		sentinelHandler(domain.ErrUnknownFlow, http.StatusNotFound, CodeUnknownFlow, false),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusServiceUnavailable, CodeSourceUnavailable, false),
		sentinelHandler(domain.ErrReadOnly, http.StatusServiceUnavailable, CodeSourceUnavailable, false),
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// With detail the full message is sent (validation errors carry no internals);
// otherwise only the sentinel text.
func sentinelHandler(sentinel error, status int, code ErrorCode, detail bool) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		if detail {
			msg = err.Error()
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
