package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// entry pairs a session with the last time it was touched, for TTL eviction.
type entry struct {
	sess     *Session
	lastSeen time.Time
}

// Manager maps opaque bearer tokens to live sessions. Idle sessions are
// evicted opportunistically during lookups after a threshold of accesses,
// bounding memory without a background sweeper.
//
// The manager is safe for concurrent use. It is process-local: every login
// must land on the same instance, which matches the single-process
// deployment this tool targets.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	lookupN  uint64

	// now is swappable in tests.
	now func() time.Time
}

// NewManager constructs a Manager evicting sessions idle for ttl or longer.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a fresh session in the searching phase and returns its
// token. Any state from a prior login under the same employee is unrelated:
// sessions are keyed by token, not by employee.
func (m *Manager) Create(employeeID, fullName string) (string, *Session) {
	token := uuid.NewString()
	sess := &Session{
		EmployeeID: employeeID,
		FullName:   fullName,
		Phase:      PhaseSearching,
	}
	m.mu.Lock()
	m.sessions[token] = &entry{sess: sess, lastSeen: m.now()}
	m.mu.Unlock()
	return token, sess
}

// Get resolves a token, refreshing its idle timer. Expired or unknown
// tokens return (nil, false); an expired entry is removed on the spot.
func (m *Manager) Get(token string) (*Session, bool) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Opportunistic cleanup after a threshold of lookups, before touching
	// the requested entry so a stale entry cannot refresh itself.
	m.lookupN++
	if m.lookupN >= 1000 {
		for t, e := range m.sessions {
			if now.Sub(e.lastSeen) >= m.ttl {
				delete(m.sessions, t)
			}
		}
		m.lookupN = 0
	}

	e, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	if now.Sub(e.lastSeen) >= m.ttl {
		delete(m.sessions, token)
		return nil, false
	}
	e.lastSeen = now
	return e.sess, true
}

// Delete drops the session for token. Logout routes here; all session
// fields vanish with the entry.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// Len reports the number of live (possibly stale, not yet evicted) sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
