package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
	"github.com/VishnaviKothuri/DTDC-frontend/internal/session"
)

// fakeTicketRepo resolves from an in-memory table, normalizing like the
// real store.
type fakeTicketRepo struct {
	tickets map[string]domain.Ticket
}

func (f *fakeTicketRepo) Lookup(raw string) (domain.Ticket, string, bool) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	t, ok := f.tickets[id]
	return t, id, ok
}

func testTicket() domain.Ticket {
	return domain.Ticket{
		StoryLine:          "Parcel tracking API",
		Description:        "Expose shipment status over REST",
		AcceptanceCriteria: []string{"returns 200", "includes ETA"},
		StoryPoints:        5,
		ReferenceLinks:     []string{"https://wiki.example.com/tracking"},
	}
}

func TestTicketService_Search_Hit(t *testing.T) {
	svc := NewTicketService(&fakeTicketRepo{tickets: map[string]domain.Ticket{
		"JIRA-101": testTicket(),
	}})
	sess := &session.Session{Phase: session.PhaseSearching}

	got, id, err := svc.Search(context.Background(), sess, "  jira-101 ")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if id != "JIRA-101" {
		t.Fatalf("id = %q", id)
	}
	if got.StoryLine != "Parcel tracking API" {
		t.Fatalf("ticket = %+v", got)
	}
	if sess.Phase != session.PhaseViewingTicket || sess.TicketID != "JIRA-101" {
		t.Fatalf("session not updated: phase=%q ticket=%q", sess.Phase, sess.TicketID)
	}
}

func TestTicketService_Search_NewTicketResetsState(t *testing.T) {
	svc := NewTicketService(&fakeTicketRepo{tickets: map[string]domain.Ticket{
		"JIRA-101": testTicket(),
		"JIRA-202": {StoryLine: "other"},
	}})
	sess := &session.Session{Phase: session.PhaseSearching}

	if _, _, err := svc.Search(context.Background(), sess, "JIRA-101"); err != nil {
		t.Fatal(err)
	}
	sess.SetSuggestion("old code")
	sess.Satisfied = domain.SatisfactionNo
	sess.AppendTurn("q", "a")

	if _, _, err := svc.Search(context.Background(), sess, "JIRA-202"); err != nil {
		t.Fatal(err)
	}
	if sess.Suggestion != nil || sess.Satisfied != domain.SatisfactionUnknown || sess.ChatHistory != nil {
		t.Fatalf("switching tickets must discard suggestion state: %+v", sess)
	}
	if sess.TicketID != "JIRA-202" || sess.Phase != session.PhaseViewingTicket {
		t.Fatalf("session: ticket=%q phase=%q", sess.TicketID, sess.Phase)
	}
}

func TestTicketService_Search_MissLeavesSessionUntouched(t *testing.T) {
	svc := NewTicketService(&fakeTicketRepo{tickets: map[string]domain.Ticket{
		"JIRA-101": testTicket(),
	}})
	sess := &session.Session{Phase: session.PhaseSearching}

	if _, _, err := svc.Search(context.Background(), sess, "JIRA-101"); err != nil {
		t.Fatal(err)
	}
	sess.SetSuggestion("kept code")

	_, id, err := svc.Search(context.Background(), sess, "jira-999")
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
	if id != "JIRA-999" {
		t.Fatalf("normalized id = %q", id)
	}
	// prior ticket and suggestion survive the miss
	if sess.TicketID != "JIRA-101" || sess.Suggestion == nil || *sess.Suggestion != "kept code" {
		t.Fatalf("miss mutated the session: %+v", sess)
	}
	if sess.Phase != session.PhaseShowingSuggestion {
		t.Fatalf("phase = %q", sess.Phase)
	}
}
