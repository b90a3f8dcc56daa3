package session

import (
	"testing"
	"time"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
)

func newManagerAt(ttl time.Duration, start time.Time) (*Manager, *time.Time) {
	m := NewManager(ttl)
	now := start
	m.now = func() time.Time { return now }
	return m, &now
}

func TestManager_CreateAndGet(t *testing.T) {
	m, _ := newManagerAt(time.Hour, time.Unix(1000, 0))

	token, sess := m.Create("EMP001", "Ada Lovelace")
	if token == "" {
		t.Fatal("empty token")
	}
	if sess.Phase != PhaseSearching {
		t.Fatalf("fresh session phase = %q", sess.Phase)
	}
	if sess.EmployeeID != "EMP001" || sess.FullName != "Ada Lovelace" {
		t.Fatalf("identity not carried: %+v", sess)
	}

	got, ok := m.Get(token)
	if !ok || got != sess {
		t.Fatalf("Get returned (%p, %v), want (%p, true)", got, ok, sess)
	}
	if _, ok := m.Get("no-such-token"); ok {
		t.Fatal("unknown token must miss")
	}
}

func TestManager_TokensAreUnique(t *testing.T) {
	m, _ := newManagerAt(time.Hour, time.Unix(1000, 0))

	t1, s1 := m.Create("EMP001", "A")
	t2, s2 := m.Create("EMP001", "A")
	if t1 == t2 {
		t.Fatal("two logins produced the same token")
	}
	if s1 == s2 {
		t.Fatal("two logins share one session")
	}
	// state on one login never leaks into the other
	s1.SetTicket("JIRA-1", domain.Ticket{StoryLine: "x"})
	if s2.TicketID != "" || s2.Phase != PhaseSearching {
		t.Fatalf("second session mutated: %+v", s2)
	}
}

func TestManager_Delete(t *testing.T) {
	m, _ := newManagerAt(time.Hour, time.Unix(1000, 0))

	token, _ := m.Create("EMP001", "A")
	m.Delete(token)
	if _, ok := m.Get(token); ok {
		t.Fatal("deleted token still resolves")
	}
	// idempotent
	m.Delete(token)
	if m.Len() != 0 {
		t.Fatalf("Len = %d", m.Len())
	}
}

func TestManager_TTLExpiry(t *testing.T) {
	m, now := newManagerAt(30*time.Minute, time.Unix(1000, 0))

	token, _ := m.Create("EMP001", "A")

	// just under the TTL: still alive, and the lookup refreshes the timer
	*now = now.Add(29 * time.Minute)
	if _, ok := m.Get(token); !ok {
		t.Fatal("session expired early")
	}

	// another 29 minutes from the refresh: still alive
	*now = now.Add(29 * time.Minute)
	if _, ok := m.Get(token); !ok {
		t.Fatal("refresh did not extend the session")
	}

	// idle past the TTL: gone, and removed on the spot
	*now = now.Add(31 * time.Minute)
	if _, ok := m.Get(token); ok {
		t.Fatal("stale session still resolves")
	}
	if m.Len() != 0 {
		t.Fatalf("expired entry not removed, Len = %d", m.Len())
	}
}

func TestManager_OpportunisticSweep(t *testing.T) {
	m, now := newManagerAt(10*time.Minute, time.Unix(1000, 0))

	stale, _ := m.Create("EMP001", "A")
	fresh, _ := m.Create("EMP002", "B")

	*now = now.Add(11 * time.Minute)
	m.Get(fresh) // refresh one, leave the other idle

	// drive lookups past the sweep threshold with a token that never hits
	for i := 0; i < 1000; i++ {
		m.Get("miss")
	}

	if _, ok := m.Get(stale); ok {
		t.Fatal("stale session survived the sweep")
	}
	if _, ok := m.Get(fresh); !ok {
		t.Fatal("fresh session swept")
	}
}

func TestSession_Transitions(t *testing.T) {
	s := &Session{Phase: PhaseSearching}
	ticket := domain.Ticket{StoryLine: "Parcel tracking", StoryPoints: 3}

	s.SetTicket("JIRA-101", ticket)
	if s.Phase != PhaseViewingTicket || s.TicketID != "JIRA-101" || s.Ticket == nil {
		t.Fatalf("after SetTicket: %+v", s)
	}

	s.SetSuggestion("code here")
	if s.Phase != PhaseShowingSuggestion || s.Suggestion == nil || *s.Suggestion != "code here" {
		t.Fatalf("after SetSuggestion: %+v", s)
	}
	if s.Satisfied != domain.SatisfactionUnknown {
		t.Fatalf("Satisfied = %v", s.Satisfied)
	}

	s.AppendTurn("q1", "a1")
	s.AppendTurn("q2", "a2")
	if len(s.ChatHistory) != 2 || s.ChatHistory[0].User != "q1" || s.ChatHistory[1].AI != "a2" {
		t.Fatalf("ChatHistory = %+v", s.ChatHistory)
	}

	// a new ticket discards suggestion, satisfaction, and chat history
	s.Satisfied = domain.SatisfactionNo
	s.SetTicket("JIRA-202", domain.Ticket{StoryLine: "other"})
	if s.Suggestion != nil || s.Satisfied != domain.SatisfactionUnknown || s.ChatHistory != nil {
		t.Fatalf("SetTicket did not reset state: %+v", s)
	}
	if s.Phase != PhaseViewingTicket {
		t.Fatalf("Phase = %q", s.Phase)
	}

	s.SetSuggestion("v2")
	s.ClearSuggestion()
	if s.Suggestion != nil || s.Phase != PhaseViewingTicket {
		t.Fatalf("after ClearSuggestion: %+v", s)
	}
}
