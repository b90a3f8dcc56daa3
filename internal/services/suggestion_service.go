// Package services – SuggestionService
//
// This file implements the SuggestionService, which turns the session's
// current ticket into a generation prompt, obtains a code suggestion from
// the remote backend (read-through via the prompt cache), and manages the
// suggestion lifecycle: clear, accept, or continue to chat.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
)

// CodeGenerator defines the backend contract required by SuggestionService.
type CodeGenerator interface {
	// GenerateCode performs the blocking generate call.
	GenerateCode(ctx context.Context, prompt string) (string, error)
}

// ResponseCache defines the prompt-cache contract used as read-through
// memoization of generate responses.
type ResponseCache interface {
	Get(prompt string) (string, bool)
	Set(prompt, response string) error
}

// SuggestionService implements the generate/clear/feedback transitions.
type SuggestionService struct {
	Backend CodeGenerator
	// Cache is optional; nil disables memoization.
	Cache ResponseCache
}

// NewSuggestionService constructs a SuggestionService.
func NewSuggestionService(backend CodeGenerator, cache ResponseCache) *SuggestionService {
	return &SuggestionService{Backend: backend, Cache: cache}
}

// BuildPrompt assembles the generation prompt from a ticket's fields in
// fixed order: ticket id, story line, description, acceptance criteria
// joined with ", ", story points, reference links joined with ", ".
func BuildPrompt(id string, t domain.Ticket) string {
	return fmt.Sprintf(
		"Jira Number: %s\nStory Line: %s\nDescription: %s\nAcceptance Criteria: %s\nStory Points: %d\nReference Links: %s",
		id,
		t.StoryLine,
		t.Description,
		strings.Join(t.AcceptanceCriteria, ", "),
		t.StoryPoints,
		strings.Join(t.ReferenceLinks, ", "),
	)
}

// Generate produces a code suggestion for the session's current ticket and
// stores it on the session, resetting the satisfaction answer. The session
// stays locked for the whole round trip: one synchronous action per session
// at a time, and the phase is only advanced once the backend has answered.
//
// On any backend failure the session keeps its prior phase and suggestion;
// the error is returned for the handler to surface, and no retry is made.
// The second return reports whether the suggestion came from the cache.
func (s *SuggestionService) Generate(ctx context.Context, sess *session.Session) (string, bool, error) {
	tr := otel.Tracer("services/SuggestionService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(attribute.String("employee.id", sess.EmployeeID)),
	)
	defer span.End()

	sess.Lock()
	defer sess.Unlock()

	if sess.Ticket == nil {
		return "", false, ErrNoTicket
	}
	prompt := BuildPrompt(sess.TicketID, *sess.Ticket)
	span.SetAttributes(attribute.String("ticket.id", sess.TicketID))

	if s.Cache != nil {
		if code, ok := s.Cache.Get(prompt); ok {
			sess.SetSuggestion(code)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return code, true, nil
		}
	}

	code, err := s.Backend.GenerateCode(ctx, prompt)
	if err != nil {
		return "", false, err
	}

	sess.SetSuggestion(code)
	if s.Cache != nil {
		if cerr := s.Cache.Set(prompt, code); cerr != nil {
			// Memoization is best effort; the suggestion already succeeded.
			log.Warn().Err(cerr).Msg("prompt cache write failed")
		}
	}
	return code, false, nil
}

// Clear discards the current suggestion and satisfaction answer, returning
// the session to the ticket view. Clearing without a suggestion is a no-op
// on the same phase rules.
func (s *SuggestionService) Clear(sess *session.Session) error {
	sess.Lock()
	defer sess.Unlock()
	if sess.Ticket == nil {
		return ErrNoTicket
	}
	sess.ClearSuggestion()
	return nil
}

// Feedback records the user's satisfaction answer for the live suggestion.
// Yes ends the flow for this ticket (a new search remains possible); no
// moves the session into the chat phase. The answer is accepted only while
// the suggestion prompt is showing; once answered, re-answering is rejected
// until a new suggestion is generated.
func (s *SuggestionService) Feedback(sess *session.Session, satisfied bool) error {
	sess.Lock()
	defer sess.Unlock()
	if sess.Suggestion == nil || sess.Phase != session.PhaseShowingSuggestion {
		return ErrNoSuggestion
	}
	if satisfied {
		sess.Satisfied = domain.SatisfactionYes
		sess.Phase = session.PhaseSatisfied
	} else {
		sess.Satisfied = domain.SatisfactionNo
		sess.Phase = session.PhaseChatting
	}
	return nil
}
