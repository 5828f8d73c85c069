// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). Each response carrying
// a registry failure also includes the registry's stable numeric code
// (services.Code*), which clients must be able to branch on verbatim; the
// string codes here supplement it with common HTTP-status semantics for
// transport-level failures that have no registry code (bad JSON, unknown
// route, rate limiting).
package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeForbidden   = "forbidden"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeNotOwner         = "not_owner"
	ErrCodeNotAdmin         = "not_admin"
	ErrCodePaused           = "registry_paused"
	ErrCodeInvalidField     = "invalid_field"
	ErrCodeLogCapacity      = "repair_log_capacity"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
