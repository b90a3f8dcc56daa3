// Suggestion HTTP handlers.
//
// This file exposes the code-suggestion lifecycle:
//   - POST   /suggestions            (generate for the current ticket)
//   - DELETE /suggestions            (clear the current suggestion)
//   - POST   /suggestions/feedback   (record the satisfaction answer)
//
// Backend failures leave the session in its pre-call phase; no retry is
// attempted on the server side.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/backend"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/services"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
)

// SuggestionService defines the suggestion lifecycle operations consumed by
// HTTP handlers.
type SuggestionService interface {
	// Generate produces (or recalls from cache) a suggestion for the
	// session's current ticket.
	Generate(ctx context.Context, sess *session.Session) (string, bool, error)
	// Clear discards the current suggestion.
	Clear(sess *session.Session) error
	// Feedback records the satisfaction answer.
	Feedback(sess *session.Session, satisfied bool) error
}

// GenerateResponse carries the suggestion and whether it was served from
// the prompt cache.
type GenerateResponse struct {
	Suggestion string `json:"suggestion"`
	Cached     bool   `json:"cached"`
}

// FeedbackRequest is the JSON payload recording the satisfaction answer.
type FeedbackRequest struct {
	Satisfied *bool `json:"satisfied" binding:"required" example:"false"`
}

// GenerateSuggestion godoc
// @ID          generateSuggestion
// @Summary     Generate a code suggestion
// @Description Builds the generation prompt from the session's current ticket and requests a suggestion from the code-generation backend. On failure the session stays in the ticket view.
// @Tags        Suggestions
// @Produce     json
//
// @Success     200  {object} handlers.GenerateResponse
// @Failure     401  {object} handlers.ErrorResponse "Missing or expired session"
// @Failure     409  {object} handlers.ErrorResponse "No ticket selected"
// @Failure     502  {object} handlers.ErrorResponse "Backend returned an error"
// @Failure     504  {object} handlers.ErrorResponse "Backend call timed out"
// @Router      /suggestions [post]
func (h *Handlers) GenerateSuggestion(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no session")
		return
	}

	code, cached, err := h.sugSvc.Generate(c.Request.Context(), sess)
	if err != nil {
		failBackend(c, err)
		return
	}
	ok(c, http.StatusOK, GenerateResponse{Suggestion: code, Cached: cached})
}

// ClearSuggestion godoc
// @ID          clearSuggestion
// @Summary     Clear the current suggestion
// @Description Discards the suggestion and satisfaction answer, returning the session to the ticket view.
// @Tags        Suggestions
// @Produce     json
//
// @Success     204  {string} string "No Content"
// @Failure     401  {object} handlers.ErrorResponse "Missing or expired session"
// @Failure     409  {object} handlers.ErrorResponse "No ticket selected"
// @Router      /suggestions [delete]
func (h *Handlers) ClearSuggestion(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no session")
		return
	}
	if err := h.sugSvc.Clear(sess); err != nil {
		fail(c, http.StatusConflict, ErrCodeNoTicket, "no ticket selected")
		return
	}
	noContent(c)
}

// SuggestionFeedback godoc
// @ID          suggestionFeedback
// @Summary     Answer the satisfaction prompt
// @Description Records whether the user accepts the suggestion. Yes ends the flow for this ticket; no opens the chat phase.
// @Tags        Suggestions
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.FeedbackRequest  true  "Satisfaction answer"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing or expired session"
// @Failure     409  {object} handlers.ErrorResponse "No suggestion to rate"
// @Router      /suggestions/feedback [post]
func (h *Handlers) SuggestionFeedback(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no session")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Satisfied == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "satisfied (true or false) is required")
		return
	}

	if err := h.sugSvc.Feedback(sess, *req.Satisfied); err != nil {
		fail(c, http.StatusConflict, ErrCodeNoSuggestion, "no suggestion to rate")
		return
	}
	noContent(c)
}

// failBackend maps backend and flow errors onto the error envelope. Shared
// by the generate and chat endpoints.
func failBackend(c *gin.Context, err error) {
	var be *backend.Error
	switch {
	case errors.Is(err, services.ErrNoTicket):
		fail(c, http.StatusConflict, ErrCodeNoTicket, "no ticket selected")
	case errors.Is(err, backend.ErrTimeout):
		fail(c, http.StatusGatewayTimeout, ErrCodeBackendTimeout, "code agent did not answer in time")
	case errors.As(err, &be):
		fail(c, http.StatusBadGateway, ErrCodeBackendError, be.Error())
	default:
		fail(c, http.StatusBadGateway, ErrCodeBackendError, err.Error())
	}
}
