package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/Shahriar-Fardows/snowfye-server/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// nothing useful can be sent once the header is out
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// statusFor is the single mapping from service errors to HTTP statuses.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// handleServiceError writes err as an ErrorResponse. Client errors carry the
// error text; everything else gets fallback and is logged.
func handleServiceError(w http.ResponseWriter, r *http.Request, lg *zap.Logger, err error, fallback string) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		logFailure(r, lg, err)
		respondError(w, status, code, fallback)
		return
	}
	respondError(w, status, code, err.Error())
}

func logFailure(r *http.Request, lg *zap.Logger, err error) {
	lg.Error("Request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", getRequestID(r.Context())),
		zap.Error(err),
	)
}

// decodeJSON reads a single JSON value from the body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "decode body")
	}
	return nil
}
