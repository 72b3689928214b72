// File path: internal/knowledge/store.go
package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"scriptforge/internal/common"
	"scriptforge/internal/fault"
)

// Store is a read-through cache over a Remote. Every mutation waits for
// remote confirmation before the local view changes; on failure the cache is
// left untouched and the caller sees a remote-store fault. Reload is the
// only way the cache is re-derived from scratch.
type Store struct {
	mu      sync.RWMutex
	remote  Remote
	sources []Source
}

func NewStore(remote Remote) (*Store, error) {
	if remote == nil {
		return nil, fmt.Errorf("remote required")
	}
	return &Store{remote: remote}, nil
}

// Reload replaces the cached view with the remote's current rows.
func (s *Store) Reload(ctx context.Context) error {
	logger := common.Logger()
	rows, err := s.remote.List(ctx)
	if err != nil {
		logger.Error("knowledge: reload failed", "remote", s.remote.Name(), "error", err)
		return fault.Wrap(fault.KindRemoteStore, fmt.Errorf("reload sources: %w", err))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	s.mu.Lock()
	s.sources = rows
	s.mu.Unlock()
	logger.Info("knowledge: sources reloaded", "remote", s.remote.Name(), "count", len(rows))
	return nil
}

// Sources returns the cached sources, newest first.
func (s *Store) Sources() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Source, len(s.sources))
	copy(out, s.sources)
	return out
}

// Active returns the cached sources that are toggled on, newest first.
func (s *Store) Active() []Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Source
	for _, src := range s.sources {
		if src.Active {
			out = append(out, src)
		}
	}
	return out
}

// Get looks up a cached source by id.
func (s *Store) Get(id string) (Source, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, src := range s.sources {
		if src.ID == id {
			return src, true
		}
	}
	return Source{}, false
}

// Add persists a new source and prepends the stored row to the cache. The
// remote assigns the id and may normalize the timestamp.
func (s *Store) Add(ctx context.Context, src Source) (Source, error) {
	logger := common.Logger()
	src.Name = strings.TrimSpace(src.Name)
	if src.Name == "" {
		return Source{}, fault.New(fault.KindValidation, "source name required")
	}
	if strings.TrimSpace(src.ExtractedAdvice) == "" {
		return Source{}, fault.New(fault.KindValidation, "extracted advice required")
	}
	if strings.TrimSpace(src.Origin) == "" {
		src.Origin = ManualOrigin
	}
	if src.TranscriptWords == 0 {
		src.TranscriptWords = len(strings.Fields(src.ExtractedAdvice))
	}
	if src.CreatedAt.IsZero() {
		src.CreatedAt = time.Now().UTC()
	}
	stored, err := s.remote.Create(ctx, src)
	if err != nil {
		logger.Error("knowledge: create failed", "remote", s.remote.Name(), "name", src.Name, "error", err)
		return Source{}, fault.Wrap(fault.KindRemoteStore, fmt.Errorf("create source: %w", err))
	}
	s.mu.Lock()
	s.sources = append([]Source{stored}, s.sources...)
	s.mu.Unlock()
	logger.Info("knowledge: source added", "id", stored.ID, "name", stored.Name, "words", stored.TranscriptWords)
	return stored, nil
}

// SetActive toggles a source remotely, then mirrors the change locally.
func (s *Store) SetActive(ctx context.Context, id string, active bool) error {
	if _, ok := s.Get(id); !ok {
		return fault.New(fault.KindValidation, "unknown source %q", id)
	}
	if err := s.remote.Update(ctx, id, Patch{Active: &active}); err != nil {
		common.Logger().Error("knowledge: toggle failed", "id", id, "error", err)
		return fault.Wrap(fault.KindRemoteStore, fmt.Errorf("toggle source %s: %w", id, err))
	}
	s.mu.Lock()
	for i := range s.sources {
		if s.sources[i].ID == id {
			s.sources[i].Active = active
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Update patches a source remotely, then mirrors the change locally.
func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	if _, ok := s.Get(id); !ok {
		return fault.New(fault.KindValidation, "unknown source %q", id)
	}
	if err := s.remote.Update(ctx, id, patch); err != nil {
		common.Logger().Error("knowledge: update failed", "id", id, "error", err)
		return fault.Wrap(fault.KindRemoteStore, fmt.Errorf("update source %s: %w", id, err))
	}
	s.mu.Lock()
	for i := range s.sources {
		if s.sources[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.sources[i].Name = *patch.Name
		}
		if patch.Origin != nil {
			s.sources[i].Origin = *patch.Origin
		}
		if patch.ExtractedAdvice != nil {
			s.sources[i].ExtractedAdvice = *patch.ExtractedAdvice
			s.sources[i].TranscriptWords = len(strings.Fields(*patch.ExtractedAdvice))
		}
		if patch.Active != nil {
			s.sources[i].Active = *patch.Active
		}
		break
	}
	s.mu.Unlock()
	return nil
}

// Remove deletes a source remotely, then drops it from the cache.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, ok := s.Get(id); !ok {
		return fault.New(fault.KindValidation, "unknown source %q", id)
	}
	if err := s.remote.Delete(ctx, id); err != nil {
		common.Logger().Error("knowledge: delete failed", "id", id, "error", err)
		return fault.Wrap(fault.KindRemoteStore, fmt.Errorf("delete source %s: %w", id, err))
	}
	s.mu.Lock()
	kept := s.sources[:0]
	for _, src := range s.sources {
		if src.ID != id {
			kept = append(kept, src)
		}
	}
	s.sources = kept
	s.mu.Unlock()
	common.Logger().Info("knowledge: source removed", "id", id)
	return nil
}

// RemoteName names the backing remote, for status endpoints.
func (s *Store) RemoteName() string {
	return s.remote.Name()
}
