// File path: internal/knowledge/export_test.go
package knowledge

import (
	"context"
	"testing"
	"time"
)

func TestExportImportRoundTrip(t *testing.T) {
	sources := []Source{
		{ID: "9", Name: "Talk on retention", Origin: "https://youtu.be/abc123", ExtractedAdvice: "Open loops early.\nClose them late.", Active: true, TranscriptWords: 6, CreatedAt: time.Now().UTC()},
		{ID: "8", Name: "Pasted notes", Origin: ManualOrigin, ExtractedAdvice: "Name real places.", Active: false, TranscriptWords: 3, CreatedAt: time.Now().UTC()},
	}
	doc := Export(sources)
	parsed, err := Import(doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(parsed) != len(sources) {
		t.Fatalf("expected %d sources, got %d", len(sources), len(parsed))
	}
	for i, want := range sources {
		got := parsed[i]
		if got.Name != want.Name || got.Origin != want.Origin || got.Active != want.Active {
			t.Fatalf("tuple mismatch at %d: got %+v want %+v", i, got, want)
		}
		if got.ExtractedAdvice != want.ExtractedAdvice {
			t.Fatalf("advice mismatch at %d: %q vs %q", i, got.ExtractedAdvice, want.ExtractedAdvice)
		}
		if got.ID != "" {
			t.Fatalf("imported sources must not carry old ids")
		}
	}
}

func TestImportIntoEmptyStoreAssignsFreshIDs(t *testing.T) {
	doc := Export([]Source{{ID: "42", Name: "A", Origin: "url", ExtractedAdvice: "advice", Active: true}})
	parsed, err := Import(doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	store := newTestStore(t, &fakeRemote{})
	for _, src := range parsed {
		stored, err := store.Add(context.Background(), src)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if stored.ID == "42" {
			t.Fatalf("remote id should be assigned fresh")
		}
	}
	if len(store.Sources()) != 1 {
		t.Fatalf("expected one stored source")
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	if _, err := Import("not a knowledge document"); err == nil {
		t.Fatalf("expected parse failure")
	}
}
