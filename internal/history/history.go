// File path: internal/history/history.go

// Package history is the append-only ledger of past generations kept for the
// duration of a session. Items are never mutated; the ledger is emptied only
// by an explicit clear and is not persisted anywhere.
package history

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Item types mirror the feature that produced the content.
const (
	TypeHooks      = "hooks"
	TypeScript     = "script"
	TypeAnalysis   = "analysis"
	TypeABTest     = "ab_test"
	TypeTitles     = "titles"
	TypeThumbnails = "thumbnails"
	TypeWorkshop   = "workshop"
)

type Item struct {
	Type      string            `json:"type"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

type Ledger struct {
	mu    sync.RWMutex
	items []Item
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends one entry. Metadata is copied so later caller mutation
// cannot reach the ledger.
func (l *Ledger) Record(itemType, content string, metadata map[string]string) {
	item := Item{Type: itemType, Content: content, Timestamp: time.Now().UTC()}
	if len(metadata) > 0 {
		item.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			item.Metadata[k] = v
		}
	}
	l.mu.Lock()
	l.items = append(l.items, item)
	l.mu.Unlock()
}

// Items returns entries newest-first, the order the history panel shows.
func (l *Ledger) Items() []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Item, len(l.items))
	for i, item := range l.items {
		out[len(l.items)-1-i] = item
	}
	return out
}

// Len reports how many generations the session has recorded.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}

// Markdown renders the ledger as a downloadable document, newest first.
func (l *Ledger) Markdown() string {
	items := l.Items()
	var b strings.Builder
	b.WriteString("# Generation History\n")
	for _, item := range items {
		fmt.Fprintf(&b, "\n## %s — %s\n\n", strings.ToUpper(item.Type), item.Timestamp.Format("2006-01-02 15:04"))
		b.WriteString(item.Content)
		b.WriteString("\n")
		if len(item.Metadata) > 0 {
			b.WriteString("\n")
			for k, v := range item.Metadata {
				fmt.Fprintf(&b, "- %s: %s\n", k, v)
			}
		}
	}
	return b.String()
}
