// File path: internal/session/session.go

// Package session holds per-user state: the session-entered credential, the
// history ledger, the workshop conversation, and static-registry toggles.
// Every component receives the session explicitly; nothing is ambient.
package session

import (
	"sync"
	"time"

	"scriptforge/internal/history"
	"scriptforge/internal/llm"
)

type Session struct {
	ID        string
	CreatedAt time.Time

	History *history.Ledger

	mu             sync.RWMutex
	apiKey         string
	conversation   []llm.Message
	staticDisabled map[string]bool
	lastSeen       time.Time
}

func newSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:             id,
		CreatedAt:      now,
		History:        history.NewLedger(),
		staticDisabled: make(map[string]bool),
		lastSeen:       now,
	}
}

// APIKey returns the user-entered credential held by this session.
func (s *Session) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

func (s *Session) SetAPIKey(key string) {
	s.mu.Lock()
	s.apiKey = key
	s.mu.Unlock()
}

// Conversation returns a copy of the workshop transcript in turn order.
func (s *Session) Conversation() []llm.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]llm.Message, len(s.conversation))
	copy(out, s.conversation)
	return out
}

// AppendTurn adds one workshop message. The full list is replayed on every
// follow-up call; nothing is truncated or summarized.
func (s *Session) AppendTurn(role, content string) {
	s.mu.Lock()
	s.conversation = append(s.conversation, llm.Message{Role: role, Content: content})
	s.mu.Unlock()
}

// ResetConversation starts the workshop over.
func (s *Session) ResetConversation() {
	s.mu.Lock()
	s.conversation = nil
	s.mu.Unlock()
}

// SetStaticActive overrides a static registry record's active flag for this
// session only.
func (s *Session) SetStaticActive(recordID string, active bool) {
	s.mu.Lock()
	if active {
		delete(s.staticDisabled, recordID)
	} else {
		s.staticDisabled[recordID] = true
	}
	s.mu.Unlock()
}

// StaticDisabled returns a copy of the per-session disabled record set.
func (s *Session) StaticDisabled() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.staticDisabled))
	for k, v := range s.staticDisabled {
		out[k] = v
	}
	return out
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now().UTC()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}
