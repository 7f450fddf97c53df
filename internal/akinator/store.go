package akinator

import (
	"sync"
	"time"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// SessionStore holds live sessions. The default implementation is in-memory;
// the interface exists so a shared store can back multiple instances.
type SessionStore interface {
	Put(s *Session)
	Get(id string) (*Session, bool)
	Delete(id string) bool
	Len() int
}

// MemoryStore is a map-backed SessionStore. Sessions live until deleted or
// swept by SweepIdle.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      *logger.Logger
}

func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: map[string]*Session{},
		log:      log.With("service", "SessionStore"),
	}
}

func (m *MemoryStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

func (m *MemoryStore) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *MemoryStore) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SweepIdle drops sessions idle longer than maxIdle and returns how many were
// removed. Called periodically from the app's janitor goroutine.
func (m *MemoryStore) SweepIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.log.Info("Swept idle sessions", "removed", removed, "remaining", len(m.sessions))
	}
	return removed
}
