// File path: internal/fault/fault_test.go
package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(KindValidation, "topic required")
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation kind, got %s", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatalf("plain error should have unknown kind")
	}
}

func TestWrapPreservesChain(t *testing.T) {
	base := errors.New("connection refused")
	err := Wrap(KindTransport, fmt.Errorf("list sources: %w", base))
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error lost its chain")
	}
	if !Is(err, KindTransport) {
		t.Fatalf("expected transport kind")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(KindRemoteStore, nil) != nil {
		t.Fatalf("wrapping nil should return nil")
	}
}

func TestOutermostKindWins(t *testing.T) {
	inner := New(KindTransport, "timeout")
	outer := Wrap(KindRemoteStore, fmt.Errorf("create source: %w", inner))
	if KindOf(outer) != KindRemoteStore {
		t.Fatalf("expected outermost kind, got %s", KindOf(outer))
	}
}
