// File path: internal/api/session_handler.go
package api

import (
	"net/http"
	"strings"

	"scriptforge/internal/fault"
	"scriptforge/internal/llm"
)

type sessionKeyRequest struct {
	APIKey string `json:"api_key"`
}

// handleSessionKey stores a user-submitted credential on the session.
// Deployment secrets and process environment still win during resolution.
func (s *Server) handleSessionKey(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req sessionKeyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	key := strings.TrimSpace(req.APIKey)
	if key == "" {
		writeError(w, fault.New(fault.KindValidation, "api_key is required"))
		return
	}
	sess.SetAPIKey(key)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"configured": true,
		"provider":   s.newProvider(sess.APIKey()).Name(),
	})
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":     sess.ID,
		"created_at":     sess.CreatedAt,
		"has_credential": llm.HasCredential(s.resolver, sess.APIKey()),
		"provider":       s.newProvider(sess.APIKey()).Name(),
		"history_count":  sess.History.Len(),
		"remote":         s.knowledge.RemoteName(),
	})
}
