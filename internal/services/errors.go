// Package services implements the user-facing flows: authentication, ticket
// search, code-suggestion generation, and free-form chat. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Authentication errors.
var (
	// ErrInvalidCredentials is returned when the employee ID is unknown or
	// the password does not verify. The two cases are deliberately
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid employee id or password")

	// ErrDuplicateEmployeeID is returned when a signup reuses an existing
	// employee ID. The first registration wins.
	ErrDuplicateEmployeeID = errors.New("employee id already exists")

	// ErrDuplicateEmail is returned when a signup reuses an email held by
	// another account. Matching is case-sensitive and exact.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Flow errors.
var (
	// ErrTicketNotFound indicates the searched ticket is not in the local
	// store. Prior session state is left untouched.
	ErrTicketNotFound = errors.New("ticket not found in local store")

	// ErrNoTicket is returned when a suggestion is requested before any
	// ticket has been selected.
	ErrNoTicket = errors.New("no ticket selected")

	// ErrNoSuggestion is returned when satisfaction feedback arrives
	// without a live suggestion to rate.
	ErrNoSuggestion = errors.New("no suggestion to rate")

	// ErrEmptyMessage is returned when a chat message is empty or
	// whitespace-only after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNotChatting is returned when a chat message arrives outside the
	// chatting phase. Chat opens only after a suggestion is declined.
	ErrNotChatting = errors.New("session is not in the chat phase")
)
