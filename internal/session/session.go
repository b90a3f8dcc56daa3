// Package session holds the transient per-login state that drives the UI
// flow: the current ticket, the last code suggestion, the satisfaction flag,
// and the chat history. A session exists only between login and logout (or
// TTL eviction) and is never persisted.
package session

import (
	"sync"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
)

// Phase is the controller's position in the logged-in flow.
type Phase string

const (
	// PhaseSearching: no ticket selected yet, or the last search missed.
	PhaseSearching Phase = "searching"
	// PhaseViewingTicket: a ticket is selected, no suggestion held.
	PhaseViewingTicket Phase = "viewing_ticket"
	// PhaseShowingSuggestion: a suggestion is held, satisfaction unanswered.
	PhaseShowingSuggestion Phase = "showing_suggestion"
	// PhaseSatisfied: the suggestion was accepted; terminal for this ticket.
	PhaseSatisfied Phase = "satisfied"
	// PhaseChatting: the user declined the suggestion and is in free chat.
	PhaseChatting Phase = "chatting"
)

// Session is one authenticated login's mutable state. All fields are guarded
// by the embedded mutex; request handlers lock for the duration of a state
// transition so each action observes and produces a consistent snapshot.
type Session struct {
	mu sync.Mutex

	EmployeeID string
	FullName   string

	Phase       Phase
	TicketID    string // normalized, empty when no ticket selected
	Ticket      *domain.Ticket
	Suggestion  *string
	Satisfied   domain.Satisfaction
	ChatHistory []domain.ChatTurn
}

// Lock takes the session's mutex for one user action.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's mutex.
func (s *Session) Unlock() { s.mu.Unlock() }

// SetTicket replaces the current ticket and discards any prior suggestion,
// satisfaction answer, and chat history. A fresh ticket invalidates all
// suggestion state unconditionally.
func (s *Session) SetTicket(id string, t domain.Ticket) {
	s.TicketID = id
	s.Ticket = &t
	s.Suggestion = nil
	s.Satisfied = domain.SatisfactionUnknown
	s.ChatHistory = nil
	s.Phase = PhaseViewingTicket
}

// SetSuggestion stores a freshly generated suggestion and resets the
// satisfaction answer.
func (s *Session) SetSuggestion(code string) {
	s.Suggestion = &code
	s.Satisfied = domain.SatisfactionUnknown
	s.Phase = PhaseShowingSuggestion
}

// ClearSuggestion drops the suggestion and satisfaction answer, returning
// to the ticket view.
func (s *Session) ClearSuggestion() {
	s.Suggestion = nil
	s.Satisfied = domain.SatisfactionUnknown
	s.Phase = PhaseViewingTicket
}

// AppendTurn records one completed chat exchange in arrival order.
func (s *Session) AppendTurn(user, ai string) {
	s.ChatHistory = append(s.ChatHistory, domain.ChatTurn{User: user, AI: ai})
}
