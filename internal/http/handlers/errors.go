// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). These codes provide
// clients with a stable, machine-readable error taxonomy that supplements
// human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, unauthorized, conflict) mirror common
//     HTTP status semantics to aid interoperability.
//   - Domain-specific codes (e.g., backend_error, duplicate_email) are reserved
//     for business logic errors that cannot be conveyed by status alone.
//   - All error responses must include both an HTTP status and one of these codes.
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeInvalidCredentials  = "invalid_credentials"
	ErrCodeDuplicateEmployeeID = "duplicate_employee_id"
	ErrCodeDuplicateEmail      = "duplicate_email"
	ErrCodeCorruptStore        = "corrupt_store"
	ErrCodeNoTicket            = "no_ticket_selected"
	ErrCodeNoSuggestion        = "no_suggestion"
	ErrCodeNotChatting         = "not_chatting"
	ErrCodeEmptyMessage        = "empty_message"
	ErrCodeBackendError        = "backend_error"
	ErrCodeBackendTimeout      = "backend_timeout"
	ErrCodeMethodNotAllowed    = "method_not_allowed"
)
