// Auth HTTP handlers.
//
// This file exposes the credential endpoints:
//   - POST /auth/signup   (register a new employee account)
//   - POST /auth/login    (exchange credentials for a session token)
//   - POST /auth/logout   (drop the session; requires a token)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/http/middleware"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/services"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/store"
)

//
// Service contracts (context-aware)
//

// AuthService defines the credential operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Login exchanges credentials for a session token and its session.
	Login(ctx context.Context, employeeID, password string) (string, *session.Session, error)
	// Signup registers a new account, enforcing uniqueness rules.
	Signup(ctx context.Context, req services.SignupRequest) error
	// Logout drops the session behind token.
	Logout(token string)
}

//
// DTOs
//

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required" example:"E12345"`
	Password   string `json:"password"    binding:"required" example:"hunter2"`
}

// LoginResponse returns the session token and greeting data.
type LoginResponse struct {
	Token      string `json:"token"`
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
}

// SignupRequest is the JSON payload for registering an account.
type SignupRequest struct {
	EmployeeID string `json:"employee_id" binding:"required" example:"E12345"`
	FirstName  string `json:"first_name"  example:"Ada"`
	LastName   string `json:"last_name"   example:"Lovelace"`
	Email      string `json:"email"       binding:"required" example:"ada@example.com"`
	Phone      string `json:"phone"       example:"+44 20 7946 0000"`
	Password   string `json:"password"    binding:"required" example:"hunter2"`
}

//
// Handlers
//

// Signup godoc
// @ID          signup
// @Summary     Register a new employee account
// @Description Creates an account keyed by employee ID. Employee ID and email must be unused; the first registration wins.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SignupRequest  true  "Signup payload"
//
// @Success     201  {string} string "Created"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     409  {object} handlers.ErrorResponse "Duplicate employee ID or email"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /auth/signup [post]
func (h *Handlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "employee_id, email, and password are required")
		return
	}
	if strings.TrimSpace(req.EmployeeID) == "" || strings.TrimSpace(req.Password) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "employee_id and password must not be blank")
		return
	}

	err := h.authSvc.Signup(c.Request.Context(), services.SignupRequest{
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
	})
	switch {
	case err == nil:
		c.Status(http.StatusCreated)
	case errors.Is(err, services.ErrDuplicateEmployeeID):
		fail(c, http.StatusConflict, ErrCodeDuplicateEmployeeID, "employee ID already exists")
	case errors.Is(err, services.ErrDuplicateEmail):
		fail(c, http.StatusConflict, ErrCodeDuplicateEmail, "email already registered")
	case errors.Is(err, store.ErrCorruptData):
		fail(c, http.StatusInternalServerError, ErrCodeCorruptStore, "user store is unreadable")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Exchanges employee credentials for an opaque session token. The token starts a fresh session in the searching phase.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object} handlers.LoginResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Invalid credentials"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "employee_id and password are required")
		return
	}

	token, sess, err := h.authSvc.Login(c.Request.Context(), req.EmployeeID, req.Password)
	switch {
	case err == nil:
		ok(c, http.StatusOK, LoginResponse{
			Token:      token,
			EmployeeID: sess.EmployeeID,
			FullName:   sess.FullName,
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid employee ID or password")
	case errors.Is(err, store.ErrCorruptData):
		fail(c, http.StatusInternalServerError, ErrCodeCorruptStore, "user store is unreadable")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Deletes the current session. All transient state (ticket, suggestion, chat history) is discarded.
// @Tags        Auth
// @Produce     json
//
// @Param       Authorization  header  string  false "Bearer session token"
// @Param       X-Session-Token header string  false "Session token (alternative to Authorization)"
//
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Missing or expired session"
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	h.authSvc.Logout(middleware.TokenFrom(c))
	noContent(c)
}
