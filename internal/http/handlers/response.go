// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints:
// the error envelope, the mapping from service-level RegistryError values to
// HTTP statuses, and small helpers for common success shapes. The goal is a
// uniform, machine-friendly surface: every failure carries both a symbolic
// string code and — when the failure originated in the registry core — the
// registry's stable numeric code.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "registry_paused",
//	  "registry_code": 104,
//	  "message": "registry is paused"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkaravias/go-laptop-registry/internal/http/middleware"
	"github.com/dkaravias/go-laptop-registry/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: correlation ID echoed from X-Request-ID, used to correlate
//     server logs with client-side errors.
//   - Code: stable, machine-readable string (see errors.go constants).
//   - RegistryCode: the registry's numeric error code (100–107) when the
//     failure came from the registry core; omitted for transport failures.
//   - Message: human-readable description, safe for display.
type ErrorResponse struct {
	RequestID    string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code         string `json:"code"                 example:"not_found"`
	RegistryCode int    `json:"registry_code,omitempty" example:"101"`
	Message      string `json:"message"              example:"token does not exist"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	failRegistry(c, status, code, 0, msg)
}

func failRegistry(c *gin.Context, status int, code string, registryCode int, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID:    reqID,
		Code:         code,
		RegistryCode: registryCode,
		Message:      msg,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failFromService translates a service error into the envelope. RegistryError
// values map to their documented statuses; anything else becomes a 500.
func failFromService(c *gin.Context, err error) {
	var re *services.RegistryError
	if !errors.As(err, &re) {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	status, code := http.StatusInternalServerError, ErrCodeInternal
	switch re.Code {
	case services.CodeNotOwner:
		status, code = http.StatusForbidden, ErrCodeNotOwner
	case services.CodeNotFound:
		status, code = http.StatusNotFound, ErrCodeNotFound
	case services.CodeNotAdmin:
		status, code = http.StatusForbidden, ErrCodeNotAdmin
	case services.CodePaused:
		status, code = http.StatusConflict, ErrCodePaused
	case services.CodeInvalidField:
		status, code = http.StatusBadRequest, ErrCodeInvalidField
	case services.CodeLogCapacity:
		status, code = http.StatusConflict, ErrCodeLogCapacity
	}
	failRegistry(c, status, code, re.Code, re.Message)
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
