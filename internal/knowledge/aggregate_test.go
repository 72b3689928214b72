// File path: internal/knowledge/aggregate_test.go
package knowledge

import (
	"strings"
	"testing"

	"scriptforge/internal/kb"
)

func TestAggregateIncludesActiveExcludesInactive(t *testing.T) {
	static := []kb.Record{
		{ID: "on", Name: "On", Active: true, Principles: []string{"static principle"}},
		{ID: "off", Name: "Off", Active: false, Principles: []string{"hidden principle"}},
	}
	dynamic := []Source{
		{ID: "1", Name: "Live", Origin: ManualOrigin, ExtractedAdvice: "dynamic advice", Active: true},
		{ID: "2", Name: "Dormant", Origin: ManualOrigin, ExtractedAdvice: "dormant advice", Active: false},
	}
	out := Aggregate(static, dynamic, AggregateOptions{})
	if !strings.Contains(out, "static principle") {
		t.Fatalf("active static content missing:\n%s", out)
	}
	if !strings.Contains(out, "dynamic advice") {
		t.Fatalf("active dynamic content missing:\n%s", out)
	}
	if strings.Contains(out, "hidden principle") || strings.Contains(out, "dormant advice") {
		t.Fatalf("inactive content leaked:\n%s", out)
	}
}

func TestAggregateToggleOffRemovesContent(t *testing.T) {
	dynamic := []Source{{ID: "1", Name: "Src", Origin: "url", ExtractedAdvice: "the advice", Active: true}}
	if out := Aggregate(nil, dynamic, AggregateOptions{}); !strings.Contains(out, "the advice") {
		t.Fatalf("expected advice present")
	}
	dynamic[0].Active = false
	if out := Aggregate(nil, dynamic, AggregateOptions{}); strings.Contains(out, "the advice") {
		t.Fatalf("toggled-off advice still aggregated")
	}
}

func TestAggregateStaticBeforeDynamicInOrder(t *testing.T) {
	static := []kb.Record{
		{ID: "a", Name: "First", Active: true, Principles: []string{"p1"}},
		{ID: "b", Name: "Second", Active: true, Principles: []string{"p2"}},
	}
	dynamic := []Source{{ID: "1", Name: "Newest", ExtractedAdvice: "d1", Active: true, Origin: "url"}}
	out := Aggregate(static, dynamic, AggregateOptions{})
	first := strings.Index(out, "First")
	second := strings.Index(out, "Second")
	newest := strings.Index(out, "Newest")
	if !(first < second && second < newest) {
		t.Fatalf("ordering wrong: first=%d second=%d newest=%d", first, second, newest)
	}
}

func TestAggregateFullTextPreferredWhenRequested(t *testing.T) {
	static := []kb.Record{{
		ID: "pb", Name: "Playbook", Active: true,
		Principles: []string{"short principle"},
		FullText:   "FULL PLAYBOOK TEXT",
	}}
	withFull := Aggregate(static, nil, AggregateOptions{IncludeFullText: true})
	if !strings.Contains(withFull, "FULL PLAYBOOK TEXT") {
		t.Fatalf("full text not used when requested")
	}
	withoutFull := Aggregate(static, nil, AggregateOptions{})
	if strings.Contains(withoutFull, "FULL PLAYBOOK TEXT") {
		t.Fatalf("full text used without request")
	}
	if !strings.Contains(withoutFull, "- short principle") {
		t.Fatalf("principle list missing")
	}
}

func TestAggregateDisabledStaticRecord(t *testing.T) {
	static := []kb.Record{{ID: "s", Name: "Style", Active: true, Principles: []string{"keep it personal"}}}
	out := Aggregate(static, nil, AggregateOptions{StaticDisabled: map[string]bool{"s": true}})
	if out != "" {
		t.Fatalf("session-disabled record should be excluded, got:\n%s", out)
	}
}

func TestAggregateBudgetKeepsStaticTrimsDynamic(t *testing.T) {
	static := []kb.Record{{ID: "s", Name: "S", Active: true, Principles: []string{"keep"}}}
	dynamic := []Source{
		{ID: "1", Name: "New", Origin: "url", ExtractedAdvice: strings.Repeat("n", 200), Active: true},
		{ID: "2", Name: "Older", Origin: "url", ExtractedAdvice: strings.Repeat("o", 200), Active: true},
	}
	out := Aggregate(static, dynamic, AggregateOptions{Budget: 120})
	if !strings.Contains(out, "keep") {
		t.Fatalf("static content must survive the budget:\n%s", out)
	}
	if !strings.Contains(out, truncationMarker) {
		t.Fatalf("expected truncation marker:\n%s", out)
	}
	if strings.Contains(out, "Older") {
		t.Fatalf("sections past the budget must be dropped:\n%s", out)
	}
}

func TestAggregateBudgetTrimsStaticInOrder(t *testing.T) {
	static := []kb.Record{
		{ID: "a", Name: "Wide", Active: true, Principles: []string{strings.Repeat("w", 200)}},
		{ID: "b", Name: "Later", Active: true, Principles: []string{"later principle"}},
	}
	dynamic := []Source{{ID: "1", Name: "Dyn", Origin: "url", ExtractedAdvice: "dyn advice", Active: true}}
	out := Aggregate(static, dynamic, AggregateOptions{Budget: 60})
	if !strings.Contains(out, "Wide") {
		t.Fatalf("first static section should open the block:\n%s", out)
	}
	if !strings.Contains(out, truncationMarker) {
		t.Fatalf("expected truncation marker on the crossing static section:\n%s", out)
	}
	if strings.Contains(out, "later principle") || strings.Contains(out, "dyn advice") {
		t.Fatalf("sections past the budget must be dropped:\n%s", out)
	}
}

func TestAggregateEmpty(t *testing.T) {
	if out := Aggregate(nil, nil, AggregateOptions{}); out != "" {
		t.Fatalf("expected empty aggregation, got %q", out)
	}
}
