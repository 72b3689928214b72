// File path: internal/session/session_test.go
package session

import (
	"testing"
	"time"

	"scriptforge/internal/llm"
)

func TestAcquireMintsAndReuses(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	first := m.Acquire("")
	if first.ID == "" {
		t.Fatalf("expected minted id")
	}
	again := m.Acquire(first.ID)
	if again != first {
		t.Fatalf("same id should return the same session")
	}
	other := m.Acquire("")
	if other == first {
		t.Fatalf("empty id should mint a new session")
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 live sessions, got %d", m.Len())
	}
}

func TestConversationReplayedInFull(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()
	sess := m.Acquire("")
	sess.AppendTurn(llm.RoleUser, "first question")
	sess.AppendTurn(llm.RoleAssistant, "first answer")
	sess.AppendTurn(llm.RoleUser, "follow-up")

	convo := sess.Conversation()
	if len(convo) != 3 {
		t.Fatalf("expected all 3 turns, got %d", len(convo))
	}
	if convo[0].Content != "first question" || convo[2].Content != "follow-up" {
		t.Fatalf("turn order wrong: %+v", convo)
	}
	sess.ResetConversation()
	if len(sess.Conversation()) != 0 {
		t.Fatalf("reset should empty the conversation")
	}
}

func TestStaticToggleIsSessionScoped(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()
	a := m.Acquire("")
	b := m.Acquire("")
	a.SetStaticActive("playbook", false)
	if !a.StaticDisabled()["playbook"] {
		t.Fatalf("toggle not recorded")
	}
	if b.StaticDisabled()["playbook"] {
		t.Fatalf("toggle leaked across sessions")
	}
	a.SetStaticActive("playbook", true)
	if a.StaticDisabled()["playbook"] {
		t.Fatalf("re-enable not recorded")
	}
}

func TestExpireDropsIdleSessions(t *testing.T) {
	m := NewManager(time.Minute)
	defer m.Close()
	sess := m.Acquire("")
	m.expire(time.Now().UTC().Add(2 * time.Minute))
	if m.Len() != 0 {
		t.Fatalf("idle session should be expired")
	}
	revived := m.Acquire(sess.ID)
	if revived == sess {
		t.Fatalf("expired session must not be resurrected")
	}
}
