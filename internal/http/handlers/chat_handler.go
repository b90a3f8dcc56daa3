// Chat HTTP handlers.
//
// This file exposes the free-form chat endpoints:
//   - POST /chat   (send a message to the assistant)
//   - GET  /chat   (read the chat history, paginated)
//
// and the prompt-cache inspection view:
//   - GET  /cache/recent
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/services"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/utils"
)

// ChatService defines the chat operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ChatService interface {
	// Send relays one message and appends the completed turn.
	Send(ctx context.Context, sess *session.Session, message string) (domain.ChatTurn, error)
	// History returns one page of turns and the total count.
	History(sess *session.Session, page, pageSize int) ([]domain.ChatTurn, int)
}

//
// DTOs
//

// SendMessageRequest is the JSON payload for a chat message.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required" example:"Can you add error handling?"`
}

// SendMessageResponse wraps the completed turn.
type SendMessageResponse struct {
	Turn domain.ChatTurn `json:"turn"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// ChatHistoryResponse wraps a page of chat turns and pagination information.
type ChatHistoryResponse struct {
	Turns      []domain.ChatTurn `json:"turns"`
	Pagination Pagination        `json:"pagination"`
}

// RecentKeysResponse lists the most recent normalized cache keys.
type RecentKeysResponse struct {
	Keys []string `json:"keys"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a chat message
// @Description Relays one message to the assistant and appends the exchange to the session's history. The chat opens only after a suggestion is declined. Blank messages are rejected without a state change; on backend failure the history is unchanged and the client may resend.
// @Tags        Chat
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SendMessageRequest  true  "Message payload"
//
// @Success     200  {object} handlers.SendMessageResponse
// @Failure     400  {object} handlers.ErrorResponse "Blank message"
// @Failure     401  {object} handlers.ErrorResponse "Missing or expired session"
// @Failure     409  {object} handlers.ErrorResponse "Chat phase not open"
// @Failure     502  {object} handlers.ErrorResponse "Backend returned an error"
// @Failure     504  {object} handlers.ErrorResponse "Backend call timed out"
// @Router      /chat [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no session")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message is required")
		return
	}

	turn, err := h.chatSvc.Send(c.Request.Context(), sess, req.Message)
	switch {
	case err == nil:
		ok(c, http.StatusOK, SendMessageResponse{Turn: turn})
	case errors.Is(err, services.ErrEmptyMessage):
		fail(c, http.StatusBadRequest, ErrCodeEmptyMessage, "please enter a message before sending")
	case errors.Is(err, services.ErrNotChatting):
		fail(c, http.StatusConflict, ErrCodeNotChatting, "decline a suggestion to open the chat")
	default:
		failBackend(c, err)
	}
}

// ChatHistory godoc
// @ID          chatHistory
// @Summary     Read chat history (paginated)
// @Description Returns a page of the session's chat turns in arrival order.
// @Tags        Chat
// @Produce     json
//
// @Param       page       query  int  false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page" minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ChatHistoryResponse
// @Failure     401  {object} handlers.ErrorResponse "Missing or expired session"
// @Router      /chat [get]
func (h *Handlers) ChatHistory(c *gin.Context) {
	sess := sessionFrom(c)
	if sess == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "no session")
		return
	}

	page, pageSize := clampPagination(c)
	turns, total := h.chatSvc.History(sess, page, pageSize)

	totalPages := (total + pageSize - 1) / pageSize
	ok(c, http.StatusOK, ChatHistoryResponse{
		Turns: turns,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// RecentCacheKeys godoc
// @ID          recentCacheKeys
// @Summary     Recently cached prompts
// @Description Returns up to n normalized prompt keys from the response cache in insertion order (oldest of the retained keys first).
// @Tags        Cache
// @Produce     json
//
// @Param       n  query  int  false "Maximum keys to return" minimum(1) maximum(100) default(5)
//
// @Success     200  {object} handlers.RecentKeysResponse
// @Failure     401  {object} handlers.ErrorResponse "Missing or expired session"
// @Router      /cache/recent [get]
func (h *Handlers) RecentCacheKeys(c *gin.Context) {
	n := utils.AtoiDefault(c.Query("n"), 5)
	if n < 1 {
		n = 1
	}
	if n > 100 {
		n = 100
	}

	keys := []string{}
	if h.cache != nil {
		if ks := h.cache.RecentKeys(n); ks != nil {
			keys = ks
		}
	}
	ok(c, http.StatusOK, RecentKeysResponse{Keys: keys})
}
