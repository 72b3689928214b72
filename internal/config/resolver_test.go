// File path: internal/config/resolver_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secrets.json")
	if err := os.WriteFile(path, []byte(`{"TEST_API_KEY":"from-secrets"}`), 0o600); err != nil {
		t.Fatalf("write secrets: %v", err)
	}
	t.Setenv("SCRIPTFORGE_SECRETS_FILE", path)
	t.Setenv("TEST_API_KEY", "from-env")

	r := NewResolver()
	if got := r.Resolve("TEST_API_KEY", "from-session"); got != "from-secrets" {
		t.Fatalf("secrets should win, got %q", got)
	}
	if !r.HasSecret("TEST_API_KEY") {
		t.Fatalf("expected secret to be reported")
	}
}

func TestResolveFallsBackToEnvThenSession(t *testing.T) {
	t.Setenv("SCRIPTFORGE_SECRETS_FILE", "")
	t.Setenv("TEST_API_KEY", "from-env")
	r := NewResolver()
	if got := r.Resolve("TEST_API_KEY", "from-session"); got != "from-env" {
		t.Fatalf("env should win over session, got %q", got)
	}
	t.Setenv("TEST_API_KEY", "")
	if got := r.Resolve("TEST_API_KEY", "from-session"); got != "from-session" {
		t.Fatalf("session value should be last resort, got %q", got)
	}
	if got := r.Resolve("TEST_API_KEY", ""); got != "" {
		t.Fatalf("expected empty resolution, got %q", got)
	}
}

func TestMissingSecretsFileIsNotFatal(t *testing.T) {
	t.Setenv("SCRIPTFORGE_SECRETS_FILE", filepath.Join(t.TempDir(), "absent.json"))
	r := NewResolver()
	if r.HasSecret("ANYTHING") {
		t.Fatalf("missing file should yield empty secret store")
	}
}
