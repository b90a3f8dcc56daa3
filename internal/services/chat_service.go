// Package services – ChatService
//
// This file implements the ChatService, which relays free-form messages to
// the remote assistant once a user has declined a suggestion. Messages are
// validated (non-blank after trimming), sent synchronously, and appended to
// the session's chat history in arrival order. History is unbounded for the
// session's lifetime; a paginated read view is provided for the transport.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
)

// Chatter defines the backend contract required by ChatService.
type Chatter interface {
	// Chat performs the blocking chat call.
	Chat(ctx context.Context, message string) (string, error)
}

// ChatService implements the chat transitions.
type ChatService struct {
	Backend Chatter
}

// NewChatService constructs a ChatService.
func NewChatService(backend Chatter) *ChatService {
	return &ChatService{Backend: backend}
}

// Send relays one message to the assistant and appends the completed turn
// to the session's history. The session must be in the chatting phase,
// which is only entered by declining a suggestion; any other phase is
// rejected with ErrNotChatting. A blank message (empty after trimming) is
// rejected with ErrEmptyMessage and changes nothing. On a backend failure
// the history is likewise unchanged; the user may retry by resending.
func (s *ChatService) Send(ctx context.Context, sess *session.Session, message string) (domain.ChatTurn, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Send",
		trace.WithAttributes(attribute.String("employee.id", sess.EmployeeID)),
	)
	defer span.End()

	if strings.TrimSpace(message) == "" {
		return domain.ChatTurn{}, ErrEmptyMessage
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Phase != session.PhaseChatting {
		return domain.ChatTurn{}, ErrNotChatting
	}

	reply, err := s.Backend.Chat(ctx, message)
	if err != nil {
		return domain.ChatTurn{}, err
	}

	sess.AppendTurn(message, reply)
	return domain.ChatTurn{User: message, AI: reply}, nil
}

// History returns one page of the session's chat history along with the
// total turn count. Page numbering starts at 1; invalid values fall back
// to defaults.
func (s *ChatService) History(sess *session.Session, page, pageSize int) ([]domain.ChatTurn, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	sess.Lock()
	defer sess.Unlock()

	total := len(sess.ChatHistory)
	start := (page - 1) * pageSize
	if start >= total {
		return []domain.ChatTurn{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	out := make([]domain.ChatTurn, end-start)
	copy(out, sess.ChatHistory[start:end])
	return out, total
}
