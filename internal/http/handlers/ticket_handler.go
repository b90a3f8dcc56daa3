// Ticket HTTP handlers.
//
// This file exposes the ticket search endpoint:
//   - POST /tickets/search   (resolve a ticket number against the local store)
//
// A successful search replaces the session's current ticket and discards
// any prior suggestion state; a miss changes nothing.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/services"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
)

// TicketService defines the ticket lookup operation consumed by HTTP handlers.
type TicketService interface {
	// Search resolves raw to a ticket and installs it on the session.
	Search(ctx context.Context, sess *session.Session, raw string) (domain.Ticket, string, error)
}

// SearchTicketRequest is the JSON payload for a ticket search.
type SearchTicketRequest struct {
	TicketID string `json:"ticket_id" binding:"required" example:"JIRA-101"`
}

// SearchTicketResponse wraps the resolved ticket and its normalized ID.
type SearchTicketResponse struct {
	TicketID string        `json:"ticket_id"`
	Ticket   domain.Ticket `json:"ticket"`
}

// SearchTicket godoc
// @ID          searchTicket
// @Summary     Search a ticket by number
// @Description Resolves a ticket number (case- and whitespace-insensitive) against the local store. A hit replaces the session's current ticket and clears any prior suggestion, satisfaction answer, and chat history. A miss leaves the session untouched.
// @Tags        Tickets
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SearchTicketRequest  true  "Search payload"
//
// @Success     200  {object} handlers.SearchTicketResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing or expired session"
// @Failure     404  {object} handlers.ErrorResponse "Ticket not found"
// @Router      /tickets/search [post]
func (h *Handlers) SearchTicket(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no session")
		return
	}

	var req SearchTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "ticket_id is required")
		return
	}

	t, id, err := h.ticketSvc.Search(c.Request.Context(), sess, req.TicketID)
	switch {
	case err == nil:
		ok(c, http.StatusOK, SearchTicketResponse{TicketID: id, Ticket: t})
	case errors.Is(err, services.ErrTicketNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found in local store")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
