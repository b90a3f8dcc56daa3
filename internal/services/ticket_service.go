// Package services – TicketService
//
// This file implements the TicketService, which resolves user-entered
// ticket numbers against the read-only local store and swaps the session's
// current ticket on a hit. Lookup is case- and whitespace-insensitive.
package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
)

// TicketRepo defines the ticket-store contract required by TicketService.
type TicketRepo interface {
	// Lookup resolves raw (after normalization) to a ticket. It returns the
	// ticket, the normalized ID, and whether the ticket exists.
	Lookup(raw string) (domain.Ticket, string, bool)
}

// TicketService implements ticket search against the local store.
type TicketService struct {
	Tickets TicketRepo
}

// NewTicketService constructs a TicketService.
func NewTicketService(tickets TicketRepo) *TicketService {
	return &TicketService{Tickets: tickets}
}

// Search resolves raw to a ticket and installs it as the session's current
// ticket, unconditionally discarding any prior suggestion, satisfaction
// answer, and chat history. A miss returns ErrTicketNotFound and leaves
// the session exactly as it was, including any previously selected ticket.
func (s *TicketService) Search(ctx context.Context, sess *session.Session, raw string) (domain.Ticket, string, error) {
	tr := otel.Tracer("services/TicketService")
	_, span := tr.Start(ctx, "Search",
		trace.WithAttributes(attribute.String("ticket.raw", raw)),
	)
	defer span.End()

	t, id, ok := s.Tickets.Lookup(raw)
	if !ok {
		return domain.Ticket{}, id, ErrTicketNotFound
	}

	sess.Lock()
	sess.SetTicket(id, t)
	sess.Unlock()
	return t, id, nil
}
