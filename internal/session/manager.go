// File path: internal/session/manager.go
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"scriptforge/internal/common"
)

const (
	defaultTTL           = 2 * time.Hour
	defaultSweepInterval = 5 * time.Minute
)

// Manager owns the live sessions. Idle sessions are torn down by a
// background sweep after the TTL; their history and conversation go with
// them. Nothing session-scoped is persisted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	done     chan struct{}
	once     sync.Once
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Acquire returns the session for id, minting a new one when id is empty or
// unknown. The returned session's ID is what the caller should echo back to
// the client.
func (m *Manager) Acquire(id string) *Session {
	trimmed := strings.TrimSpace(id)
	m.mu.Lock()
	defer m.mu.Unlock()
	if trimmed != "" {
		if sess, ok := m.sessions[trimmed]; ok {
			sess.touch()
			return sess
		}
	}
	if trimmed == "" {
		trimmed = uuid.NewString()
	}
	sess := newSession(trimmed)
	m.sessions[trimmed] = sess
	common.Logger().Debug("session: created", "id", trimmed)
	return sess
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops the background sweep.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.done) })
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(defaultSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.expire(time.Now().UTC())
		}
	}
}

func (m *Manager) expire(now time.Time) {
	logger := common.Logger()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		if now.Sub(sess.idleSince()) > m.ttl {
			delete(m.sessions, id)
			logger.Info("session: expired", "id", id, "items", sess.History.Len())
		}
	}
}
