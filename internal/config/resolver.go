// File path: internal/config/resolver.go

// Package config resolves API credentials for the generation providers.
// Resolution order is fixed: deployment secrets file, then process
// environment, then the session-held value a user typed in. An empty result
// is not an error here; callers pre-flight check before generating.
package config

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"scriptforge/internal/common"
)

const secretsFileEnv = "SCRIPTFORGE_SECRETS_FILE"

type Resolver struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewResolver loads the deployment secrets file named by
// SCRIPTFORGE_SECRETS_FILE when present. A missing or unreadable file is
// logged and treated as an empty secret store.
func NewResolver() *Resolver {
	r := &Resolver{}
	path := strings.TrimSpace(os.Getenv(secretsFileEnv))
	if path == "" {
		return r
	}
	logger := common.Logger()
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("config: secrets file not loaded", "path", path, "error", err)
		return r
	}
	secrets := make(map[string]string)
	if err := json.Unmarshal(data, &secrets); err != nil {
		logger.Warn("config: secrets file not parsed", "path", path, "error", err)
		return r
	}
	r.secrets = secrets
	logger.Info("config: secrets file loaded", "path", path, "entries", len(secrets))
	return r
}

// Resolve returns the credential named by key: the secrets-file value when
// set, else the environment variable, else the session-held value. Empty
// when none of the three are set.
func (r *Resolver) Resolve(key, sessionValue string) string {
	if r != nil {
		r.mu.RLock()
		secret := strings.TrimSpace(r.secrets[key])
		r.mu.RUnlock()
		if secret != "" {
			return secret
		}
	}
	if env := strings.TrimSpace(os.Getenv(key)); env != "" {
		return env
	}
	return strings.TrimSpace(sessionValue)
}

// HasSecret reports whether the deployment secret store carries the key,
// letting the API tell users the credential is managed for them.
func (r *Resolver) HasSecret(key string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return strings.TrimSpace(r.secrets[key]) != ""
}
