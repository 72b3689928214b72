// File path: internal/api/workshop_handler.go
package api

import (
	"net/http"
	"strings"

	"scriptforge/internal/fault"
	"scriptforge/internal/history"
	"scriptforge/internal/llm"
	"scriptforge/internal/llm/providers"
	"scriptforge/internal/prompt"
)

const workshopMaxTokens = 2000

type workshopRequest struct {
	Message string `json:"message"`
}

type workshopResponse struct {
	Reply    string `json:"reply"`
	Turns    int    `json:"turns"`
	Provider string `json:"provider"`
}

// handleWorkshop runs one turn of the multi-turn chat. The session's
// conversation is only extended after the provider answers, so a failed call
// leaves the transcript unchanged and the message can be resent.
func (s *Server) handleWorkshop(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req workshopRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, fault.New(fault.KindValidation, "message is required"))
		return
	}
	provider, err := s.provider(sess)
	if err != nil {
		writeError(w, err)
		return
	}
	system := prompt.WorkshopSystem(s.knowledgeBlock(sess, true))
	messages := append(sess.Conversation(), llm.Message{Role: providers.RoleUser, Content: req.Message})
	reply, err := provider.Chat(r.Context(), system, messages, workshopMaxTokens)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.AppendTurn(providers.RoleUser, req.Message)
	sess.AppendTurn(providers.RoleAssistant, reply)
	sess.History.Record(history.TypeWorkshop, reply, map[string]string{"message": req.Message})
	writeJSON(w, http.StatusOK, workshopResponse{
		Reply:    reply,
		Turns:    len(sess.Conversation()),
		Provider: provider.Name(),
	})
}

func (s *Server) handleWorkshopView(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	conv := sess.Conversation()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": conv,
		"turns":    len(conv),
	})
}

func (s *Server) handleWorkshopReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.ResetConversation()
	writeJSON(w, http.StatusOK, map[string]int{"turns": 0})
}
