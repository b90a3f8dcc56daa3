// Package services – AuthService
//
// This file implements the AuthService, which owns login, signup, and
// logout. It verifies credentials against the flat-file user store using
// bcrypt, enforces the signup uniqueness rules (employee ID and email,
// first in wins), and hands successful logins a fresh session.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/store"
)

// UserRepo defines the user-store contract required by AuthService.
type UserRepo interface {
	// Load returns the full employee-id → account mapping.
	Load() (map[string]domain.UserAccount, error)
	// Save atomically rewrites the full mapping.
	Save(map[string]domain.UserAccount) error
}

// SignupRequest carries the fields of one signup submission.
type SignupRequest struct {
	EmployeeID string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Password   string
}

// AuthService implements the credential flows against the user store and
// the session manager.
type AuthService struct {
	Users    UserRepo
	Sessions *session.Manager
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserRepo, sessions *session.Manager) *AuthService {
	return &AuthService{Users: users, Sessions: sessions}
}

// Login checks the submitted credentials and, on success, creates a fresh
// session in the searching phase, returning its bearer token.
//
// An unknown employee ID and a wrong password both yield
// ErrInvalidCredentials; store read failures propagate as-is so corrupt
// data is not mistaken for bad credentials.
func (s *AuthService) Login(ctx context.Context, employeeID, password string) (string, *session.Session, error) {
	tr := otel.Tracer("services/AuthService")
	_, span := tr.Start(ctx, "Login",
		trace.WithAttributes(attribute.String("employee.id", employeeID)),
	)
	defer span.End()

	users, err := s.Users.Load()
	if err != nil {
		return "", nil, err
	}
	u, ok := users[employeeID]
	if !ok || !store.VerifyPassword(password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, sess := s.Sessions.Create(employeeID, u.FullName())
	return token, sess, nil
}

// Signup registers a new account. The employee ID must be unused and the
// email must not be held by any existing account (exact, case-sensitive
// match). On a conflict the store is left unchanged. On success the new
// account is appended and the store is fully rewritten.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) error {
	tr := otel.Tracer("services/AuthService")
	_, span := tr.Start(ctx, "Signup",
		trace.WithAttributes(attribute.String("employee.id", req.EmployeeID)),
	)
	defer span.End()

	users, err := s.Users.Load()
	if err != nil {
		return err
	}
	if _, exists := users[req.EmployeeID]; exists {
		return ErrDuplicateEmployeeID
	}
	for _, u := range users {
		if u.Email == req.Email {
			return ErrDuplicateEmail
		}
	}

	hash, err := store.HashPassword(req.Password)
	if err != nil {
		return err
	}
	users[req.EmployeeID] = domain.UserAccount{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
	}
	return s.Users.Save(users)
}

// Logout deletes the session behind token. All transient state (ticket,
// suggestion, satisfaction, chat history) vanishes with it. Deleting an
// unknown token is a no-op.
func (s *AuthService) Logout(token string) {
	s.Sessions.Delete(token)
}
