package api

import (
	"crypto/rand"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/logger"
	"github.com/tphakala/video-enrichment-api/internal/validation"
)

const (
	msgInternalServerError = "Internal Server Error"
	msgValidationFailed    = "Request validation failed"
	msgForbidden           = "Forbidden"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Detail        string                  `json:"detail"`
	Code          int                     `json:"code"`
	CorrelationID string                  `json:"correlation_id"` // Unique identifier for tracking this error
	Errors        []validation.FieldError `json:"errors,omitempty"`
}

// NewErrorResponse creates a new API error response
func NewErrorResponse(detail string, code int) *ErrorResponse {
	return &ErrorResponse{
		Detail:        detail,
		Code:          code,
		CorrelationID: generateCorrelationID(),
	}
}

// generateCorrelationID creates a unique identifier for error tracking using cryptographic randomness
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		// Fall back to a default ID if crypto/rand fails
		return "ERR-RAND"
	}

	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

// statusFor maps an error to its HTTP status and client-facing detail.
// Infrastructure failures never expose their message.
func statusFor(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	switch errors.CategoryOf(err) {
	case errors.CategoryNotFound:
		return http.StatusNotFound, err.Error()
	case errors.CategoryInvalidInput:
		return http.StatusBadRequest, err.Error()
	case errors.CategoryConflict:
		return http.StatusConflict, err.Error()
	case errors.CategoryValidation:
		return http.StatusUnprocessableEntity, msgValidationFailed
	case errors.CategoryForbidden:
		return http.StatusForbidden, msgForbidden
	case errors.CategoryUpstreamFailure:
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, msgInternalServerError
	}
}

// HandleError writes the error response for err. Categorized domain errors
// map to their status; anything else is a 500 and is reported.
func (c *Controller) HandleError(ctx echo.Context, err error) error {
	code, detail := statusFor(err)
	resp := NewErrorResponse(detail, code)

	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Errors = verr.Fields
	}

	category := errors.CategoryOf(err)
	if code >= http.StatusInternalServerError && category == errors.CategoryGeneric {
		// Uncategorized failures are wrapped so the telemetry reporter sees them
		err = errors.New(err).
			Component("api").
			Category(errors.CategoryHTTP).
			Context("path", ctx.Path()).
			Context("method", ctx.Request().Method).
			Build()
		category = errors.CategoryHTTP
	}

	req := ctx.Request()
	fields := []logger.Field{
		logger.String("correlation_id", resp.CorrelationID),
		logger.String("category", string(category)),
		logger.Int("code", code),
		logger.String("path", req.URL.Path),
		logger.String("method", req.Method),
		logger.String("ip", ctx.RealIP()),
		logger.Error(err),
	}
	log := c.logger.WithContext(req.Context())
	if code >= http.StatusInternalServerError {
		log.Error("API error", fields...)
	} else {
		log.Debug("API error", fields...)
	}

	if c.metrics != nil {
		route := ctx.Path()
		if route == "" {
			route = "unmatched"
		}
		c.metrics.RecordHTTPRequestError(req.Method, route, string(category))
	}

	return ctx.JSON(code, resp)
}

// ErrorHandler is installed as the echo HTTPErrorHandler so errors raised
// outside the handlers (unknown routes, body limit) share the response shape.
func (c *Controller) ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	if werr := c.HandleError(ctx, err); werr != nil {
		c.logger.Warn("failed to write error response", logger.Error(werr))
	}
}

// fieldError reports a single rejected request field as a 422
func fieldError(field, message string) error {
	return errors.New(&validation.Error{Fields: []validation.FieldError{{Field: field, Message: message}}}).
		Component("api").
		Category(errors.CategoryValidation).
		Build()
}
