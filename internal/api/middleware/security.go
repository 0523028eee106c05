package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tphakala/video-enrichment-api/internal/conf"
)

// wildcard in a CORS list means "allow anything"
const wildcard = "*"

var defaultCORSMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodPost,
	http.MethodDelete,
	http.MethodOptions,
}

// NewCORS creates a CORS middleware from the cors settings. A "*" method
// list expands to the standard verbs and a "*" header list reflects the
// request headers.
func NewCORS(s conf.CORSSettings) echo.MiddlewareFunc {
	methods := s.Methods
	if len(methods) == 0 || slices.Contains(methods, wildcard) {
		methods = defaultCORSMethods
	}

	headers := s.Headers
	if slices.Contains(headers, wildcard) {
		headers = nil
	}

	origins := s.Origins
	if len(origins) == 0 {
		origins = []string{wildcard}
	}

	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		AllowCredentials: s.AllowCredentials,
	})
}

// NewSecureHeaders creates a middleware that sets security-related HTTP headers.
func NewSecureHeaders() echo.MiddlewareFunc {
	return middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
	})
}

// NewBodyLimit creates a middleware that limits the request body size.
func NewBodyLimit(limit string) echo.MiddlewareFunc {
	return middleware.BodyLimit(limit)
}
