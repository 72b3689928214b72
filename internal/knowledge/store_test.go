// File path: internal/knowledge/store_test.go
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"scriptforge/internal/fault"
)

type fakeRemote struct {
	rows       []Source
	nextID     int
	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	listCalls  int
	writeCalls int
}

func (f *fakeRemote) Name() string { return "fake" }

func (f *fakeRemote) List(ctx context.Context) ([]Source, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Source, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeRemote) Create(ctx context.Context, src Source) (Source, error) {
	f.writeCalls++
	if f.createErr != nil {
		return Source{}, f.createErr
	}
	f.nextID++
	src.ID = fmt.Sprintf("%d", f.nextID)
	f.rows = append(f.rows, src)
	return src, nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, patch Patch) error {
	f.writeCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			if patch.Active != nil {
				f.rows[i].Active = *patch.Active
			}
			if patch.Name != nil {
				f.rows[i].Name = *patch.Name
			}
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	f.writeCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.ID != id {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return nil
}

func newTestStore(t *testing.T, remote *fakeRemote) *Store {
	t.Helper()
	store, err := NewStore(remote)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestAddWaitsForRemoteConfirmation(t *testing.T) {
	remote := &fakeRemote{}
	store := newTestStore(t, remote)
	src, err := store.Add(context.Background(), Source{Name: "Hook talk", ExtractedAdvice: "open with a question", Active: true})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if src.ID == "" {
		t.Fatalf("stored source should carry the remote-assigned id")
	}
	if src.Origin != ManualOrigin {
		t.Fatalf("empty origin should default to %q, got %q", ManualOrigin, src.Origin)
	}
	if src.TranscriptWords != 4 {
		t.Fatalf("word count not derived, got %d", src.TranscriptWords)
	}
	if len(store.Sources()) != 1 {
		t.Fatalf("cache should reflect the confirmed create")
	}
}

func TestAddFailureLeavesCacheUntouched(t *testing.T) {
	remote := &fakeRemote{createErr: errors.New("insert refused")}
	store := newTestStore(t, remote)
	_, err := store.Add(context.Background(), Source{Name: "x", ExtractedAdvice: "y"})
	if err == nil {
		t.Fatalf("expected create failure")
	}
	if !fault.Is(err, fault.KindRemoteStore) {
		t.Fatalf("expected remote-store fault, got %v", err)
	}
	if len(store.Sources()) != 0 {
		t.Fatalf("failed create must not change the local view")
	}
}

func TestAddValidation(t *testing.T) {
	remote := &fakeRemote{}
	store := newTestStore(t, remote)
	if _, err := store.Add(context.Background(), Source{ExtractedAdvice: "y"}); !fault.Is(err, fault.KindValidation) {
		t.Fatalf("missing name should be a validation fault, got %v", err)
	}
	if remote.writeCalls != 0 {
		t.Fatalf("validation failures must not reach the remote")
	}
}

func TestSetActiveFailureKeepsLocalState(t *testing.T) {
	remote := &fakeRemote{}
	store := newTestStore(t, remote)
	src, err := store.Add(context.Background(), Source{Name: "a", ExtractedAdvice: "b", Active: true})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	remote.updateErr = errors.New("patch refused")
	if err := store.SetActive(context.Background(), src.ID, false); err == nil {
		t.Fatalf("expected toggle failure")
	}
	got, _ := store.Get(src.ID)
	if !got.Active {
		t.Fatalf("failed toggle must leave the cached flag unchanged")
	}
}

func TestReloadOrdersNewestFirst(t *testing.T) {
	now := time.Now().UTC()
	remote := &fakeRemote{rows: []Source{
		{ID: "1", Name: "old", ExtractedAdvice: "a", CreatedAt: now.Add(-time.Hour)},
		{ID: "2", Name: "new", ExtractedAdvice: "b", CreatedAt: now},
	}}
	store := newTestStore(t, remote)
	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	sources := store.Sources()
	if len(sources) != 2 || sources[0].ID != "2" {
		t.Fatalf("expected newest first, got %+v", sources)
	}
}

func TestReloadFailureKeepsCache(t *testing.T) {
	remote := &fakeRemote{}
	store := newTestStore(t, remote)
	if _, err := store.Add(context.Background(), Source{Name: "a", ExtractedAdvice: "b"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	remote.listErr = errors.New("unreachable")
	if err := store.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload failure")
	}
	if len(store.Sources()) != 1 {
		t.Fatalf("failed reload must keep the previous cache")
	}
}

func TestRemove(t *testing.T) {
	remote := &fakeRemote{}
	store := newTestStore(t, remote)
	src, _ := store.Add(context.Background(), Source{Name: "a", ExtractedAdvice: "b"})
	if err := store.Remove(context.Background(), src.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(store.Sources()) != 0 {
		t.Fatalf("removed source still cached")
	}
	if err := store.Remove(context.Background(), "missing"); !fault.Is(err, fault.KindValidation) {
		t.Fatalf("unknown id should be a validation fault, got %v", err)
	}
}

func TestUpdateRecountsWords(t *testing.T) {
	remote := &fakeRemote{}
	store := newTestStore(t, remote)
	src, _ := store.Add(context.Background(), Source{Name: "a", ExtractedAdvice: "one two"})
	advice := strings.Repeat("word ", 5)
	if err := store.Update(context.Background(), src.ID, Patch{ExtractedAdvice: &advice}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := store.Get(src.ID)
	if got.TranscriptWords != 5 {
		t.Fatalf("expected recount to 5, got %d", got.TranscriptWords)
	}
}
