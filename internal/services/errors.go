// Package services implements the registry facade: the business logic that
// sequences validation, access control, and store mutation for every
// operation. This file centralizes the service-level error model so that
// operations return stable, typed failures and handlers can translate them
// into HTTP responses consistently.
//
// Every failure carries one of the registry's stable numeric codes. The
// codes are part of the external contract and must be preserved verbatim;
// callers branch on them programmatically.
package services

// Stable registry error codes.
//
// 102 and 107 are reserved: 102 for an already-minted conflict that the
// current mint flow cannot produce (ids are counter-assigned, never client
// chosen), and 107 for "caller not a registered user", which is enforced by
// the external identity/role collaborator, never by this core.
const (
	CodeNotOwner      = 100
	CodeNotFound      = 101
	CodeAlreadyMinted = 102
	CodeNotAdmin      = 103
	CodePaused        = 104
	CodeInvalidField  = 105
	CodeLogCapacity   = 106
	CodeNotRegistered = 107
)

// ErrorKind groups registry errors for logging and HTTP status mapping.
type ErrorKind string

// Error kinds. Every registry error is detected before any mutation, so all
// of them describe a rejected operation, never partially-applied state.
const (
	KindAuthorization ErrorKind = "authorization"
	KindState         ErrorKind = "state"
	KindValidation    ErrorKind = "validation"
	KindCapacity      ErrorKind = "capacity"
)

// RegistryError is the typed failure returned by every facade operation.
// The exported sentinels below are the only values the facade produces;
// callers compare with errors.Is.
type RegistryError struct {
	Code    int
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *RegistryError) Error() string { return e.Message }

// Registry operation errors.
var (
	// ErrNotOwner is returned when the caller is not the token's current
	// owner (also covers transfers where the token does not exist, since
	// ownership of a missing token is vacuously false).
	ErrNotOwner = &RegistryError{Code: CodeNotOwner, Kind: KindAuthorization, Message: "caller is not the token owner"}

	// ErrNotFound is returned when a referenced token or metadata id does
	// not exist.
	ErrNotFound = &RegistryError{Code: CodeNotFound, Kind: KindState, Message: "token does not exist"}

	// ErrNotAdmin is returned when a caller without administrative authority
	// attempts pause, unpause, or an admin change.
	ErrNotAdmin = &RegistryError{Code: CodeNotAdmin, Kind: KindAuthorization, Message: "caller is not the registry admin"}

	// ErrPaused is returned by every ownership/metadata/log mutation while
	// the registry pause gate is set.
	ErrPaused = &RegistryError{Code: CodePaused, Kind: KindState, Message: "registry is paused"}

	// ErrInvalidField is returned when an input fails a length bound or
	// names a forbidden identity.
	ErrInvalidField = &RegistryError{Code: CodeInvalidField, Kind: KindValidation, Message: "field failed validation"}

	// ErrLogCapacity is returned when a token's repair-log list is full.
	ErrLogCapacity = &RegistryError{Code: CodeLogCapacity, Kind: KindCapacity, Message: "repair log capacity reached"}
)
