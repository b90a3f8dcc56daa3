// Handler wiring.
//
// This file groups the HTTP endpoints behind a single Handlers value bound
// to abstract service interfaces, keeping transport concerns separate from
// business logic, and defines the session view DTO shared by several
// endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/http/middleware"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
)

// Handlers groups the HTTP endpoints for auth, tickets, suggestions, chat,
// and the cache inspection view.
type Handlers struct {
	authSvc   AuthService
	ticketSvc TicketService
	sugSvc    SuggestionService
	chatSvc   ChatService
	cache     RecentKeyser
}

// New constructs a Handlers instance bound to the given services. cache may
// be nil, in which case the cache inspection endpoint serves empty results.
func New(authSvc AuthService, ticketSvc TicketService, sugSvc SuggestionService, chatSvc ChatService, cache RecentKeyser) *Handlers {
	return &Handlers{
		authSvc:   authSvc,
		ticketSvc: ticketSvc,
		sugSvc:    sugSvc,
		chatSvc:   chatSvc,
		cache:     cache,
	}
}

// RecentKeyser exposes the prompt cache's insertion-order key view.
type RecentKeyser interface {
	// RecentKeys returns up to n normalized keys, oldest of the retained
	// keys first.
	RecentKeys(n int) []string
}

// sessionFrom pulls the authenticated session out of the Gin context. It
// only returns nil on routes mounted outside the SessionAuth group, which
// would be a wiring bug; callers treat nil as 401.
func sessionFrom(c *gin.Context) *session.Session {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil
	}
	return sess
}

// SessionView is the rendered state of one session: which phase the flow is
// in and what the client should display.
type SessionView struct {
	EmployeeID string         `json:"employee_id"`
	FullName   string         `json:"full_name"`
	Phase      string         `json:"phase"`
	TicketID   string         `json:"ticket_id,omitempty"`
	Ticket     *domain.Ticket `json:"ticket,omitempty"`
	Suggestion *string        `json:"suggestion,omitempty"`
	Satisfied  string         `json:"satisfied"`
	ChatLength int            `json:"chat_length"`
}

// viewOf snapshots a session under its lock.
func viewOf(sess *session.Session) SessionView {
	sess.Lock()
	defer sess.Unlock()
	return SessionView{
		EmployeeID: sess.EmployeeID,
		FullName:   sess.FullName,
		Phase:      string(sess.Phase),
		TicketID:   sess.TicketID,
		Ticket:     sess.Ticket,
		Suggestion: sess.Suggestion,
		Satisfied:  sess.Satisfied.String(),
		ChatLength: len(sess.ChatHistory),
	}
}

// Session godoc
// @ID          sessionView
// @Summary     Current session state
// @Description Returns the session's phase, selected ticket, suggestion, satisfaction answer, and chat length.
// @Tags        Session
// @Produce     json
//
// @Success     200  {object} handlers.SessionView
// @Failure     401  {object} handlers.ErrorResponse "Missing or expired session"
// @Router      /session [get]
func (h *Handlers) Session(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no session")
		return
	}
	ok(c, http.StatusOK, viewOf(sess))
}
