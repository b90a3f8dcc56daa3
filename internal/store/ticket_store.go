package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/VishnaviKothuri/DTDC-frontend/internal/domain"
)

// TicketStore serves the local mirror of the issue tracker. The backing file
// is provisioned externally and never written by the application.
type TicketStore struct {
	path string
}

// NewTicketStore returns a read-only store backed by the given file path.
func NewTicketStore(path string) *TicketStore {
	return &TicketStore{path: path}
}

// NormalizeTicketID maps user input onto the store's key space: surrounding
// whitespace is trimmed and the result upper-cased, so "jira-101" and
// " JIRA-101 " address the same record.
func NormalizeTicketID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Load reads the full ticket table. A missing file yields an empty map. A
// parse failure is logged and an empty map is returned alongside the error:
// the application keeps running in degraded mode, and the caller decides
// whether to surface the problem once.
func (s *TicketStore) Load() (map[string]domain.Ticket, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]domain.Ticket{}, nil
	}
	if err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("ticket store unreadable, serving empty")
		return map[string]domain.Ticket{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	tickets := map[string]domain.Ticket{}
	if err := json.Unmarshal(raw, &tickets); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("ticket store corrupt, serving empty")
		return map[string]domain.Ticket{}, fmt.Errorf("%w: %s: %v", ErrCorruptData, s.path, err)
	}
	return tickets, nil
}

// Lookup loads the table and resolves raw (normalized) to a ticket. The
// second return reports whether the ticket exists; degraded-mode load
// failures surface as a plain miss.
func (s *TicketStore) Lookup(raw string) (domain.Ticket, string, bool) {
	id := NormalizeTicketID(raw)
	tickets, _ := s.Load()
	t, ok := tickets[id]
	return t, id, ok
}
