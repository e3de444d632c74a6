package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse represents the API error response format
type ErrorResponse struct {
	Message string `json:"message"`
}

// ErrorHandler handles errors and sends appropriate HTTP responses
type ErrorHandler struct {
	logger        *zap.Logger
	defaultStatus int
}

// NewErrorHandler creates a new error handler. Failures that are not
// explicitly classified answer with 400 and the raw error message; the
// service has no multi-tenant boundary to protect that message from.
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger:        logger,
		defaultStatus: http.StatusBadRequest,
	}
}

// StatusFor maps an error to the HTTP status code the API answers with
func (h *ErrorHandler) StatusFor(err error) int {
	if appErr := GetAppError(err); appErr != nil && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return h.defaultStatus
}

// Handle processes an error and sends an HTTP response. fields carry the
// request context (resource, key field) into the log entry.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error, fields ...zap.Field) {
	if err == nil {
		return
	}

	status := h.StatusFor(err)
	message := MessageOf(err)

	logFields := append([]zap.Field{
		zap.String("request", r.URL.Path),
		zap.String("method", r.Method),
		zap.Int("status", status),
		zap.String("error_message", message),
	}, fields...)

	if IsExpected(err) || GetAppError(err) != nil {
		h.logger.Warn("Request failed", logFields...)
	} else {
		h.logger.Error("Request failed", append(logFields, zap.Error(err))...)
	}

	h.sendJSON(w, status, ErrorResponse{Message: message})
}

// HandleStatus sends an error response with a specific status code
func (h *ErrorHandler) HandleStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.logger.Warn(message,
		zap.String("request", r.URL.Path),
		zap.String("method", r.Method),
		zap.Int("status", status),
	)

	h.sendJSON(w, status, ErrorResponse{Message: message})
}

// sendJSON sends a JSON response
func (h *ErrorHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode error response",
			zap.Error(err),
			zap.Any("data", data),
		)
	}
}

// Middleware returns an HTTP middleware that turns panics into 500 responses
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("Recovered from panic",
					zap.String("request", r.URL.Path),
					zap.String("method", r.Method),
					zap.String("panic", fmt.Sprintf("%v", rec)),
				)
				h.sendJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "An internal error occurred"})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
