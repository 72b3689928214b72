// File path: internal/knowledge/types.go

// Package knowledge manages user-submitted knowledge sources: the records a
// creator feeds into prompts alongside the built-in registry. The
// authoritative copy lives in a remote table; the in-process Store is a
// synchronous read-through cache over it.
package knowledge

import (
	"context"
	"time"
)

// ManualOrigin is the literal recorded when advice was pasted in rather
// than extracted from a fetched transcript.
const ManualOrigin = "manual paste"

// Source is one user-submitted knowledge source. ID is assigned by the
// remote table on create.
type Source struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Origin          string    `json:"origin"`
	ExtractedAdvice string    `json:"extracted_advice"`
	Active          bool      `json:"active"`
	TranscriptWords int       `json:"transcript_words"`
	CreatedAt       time.Time `json:"created_at"`
}

// Patch carries the fields of a partial update. Nil fields are left alone.
type Patch struct {
	Name            *string `json:"name,omitempty"`
	Origin          *string `json:"origin,omitempty"`
	ExtractedAdvice *string `json:"extracted_advice,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

// Remote is one request/response per operation against the backing table.
// List returns rows newest-first. No retries happen at this layer.
type Remote interface {
	List(ctx context.Context) ([]Source, error)
	Create(ctx context.Context, src Source) (Source, error)
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
	Name() string
}
