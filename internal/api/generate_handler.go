// File path: internal/api/generate_handler.go
package api

import (
	"net/http"
	"strings"

	"scriptforge/internal/fault"
	"scriptforge/internal/history"
	"scriptforge/internal/kb"
	"scriptforge/internal/llm"
	"scriptforge/internal/prompt"
	"scriptforge/internal/session"
)

// Per-mode completion budgets, mirroring how much room each output needs.
const (
	hooksMaxTokens      = 5000
	scriptMaxTokens     = 8000
	quickMaxTokens      = 3000
	analyzeMaxTokens    = 4000
	compareMaxTokens    = 2000
	titlesMaxTokens     = 2000
	thumbnailsMaxTokens = 2000
)

type generateResponse struct {
	Result   string `json:"result"`
	Provider string `json:"provider"`
}

// provider returns the session's generation provider after confirming a
// credential exists. The check runs before any prompt assembly so a missing
// key never costs a network call.
func (s *Server) provider(sess *session.Session) (llm.Provider, error) {
	p := s.newProvider(sess.APIKey())
	if _, ok := p.(*llm.MissingKeyProvider); ok {
		return nil, fault.New(fault.KindConfiguration, "no API key configured: set ANTHROPIC_API_KEY or OPENAI_API_KEY, or submit one for the session")
	}
	return p, nil
}

type hooksRequest struct {
	Topic    string   `json:"topic"`
	Formulas []string `json:"formulas"`
}

func (s *Server) handleHooks(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req hooksRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		writeError(w, fault.New(fault.KindValidation, "topic is required"))
		return
	}
	if len(req.Formulas) == 0 {
		writeError(w, fault.New(fault.KindValidation, "select at least one hook formula"))
		return
	}
	formulas := make([]kb.HookFormula, 0, len(req.Formulas))
	for _, name := range req.Formulas {
		formula, ok := s.registry.Formula(name)
		if !ok {
			writeError(w, fault.New(fault.KindValidation, "unknown hook formula %q", name))
			return
		}
		formulas = append(formulas, formula)
	}
	provider, err := s.provider(sess)
	if err != nil {
		writeError(w, err)
		return
	}
	text := prompt.Hooks(prompt.HooksInput{
		Topic:     req.Topic,
		Formulas:  formulas,
		Knowledge: s.knowledgeBlock(sess, false),
	})
	result, err := provider.Generate(r.Context(), text, hooksMaxTokens)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.History.Record(history.TypeHooks, result, map[string]string{"topic": req.Topic})
	writeJSON(w, http.StatusOK, generateResponse{Result: result, Provider: provider.Name()})
}

type scriptRequest struct {
	Idea          string `json:"idea"`
	Structure     string `json:"structure"`
	LengthMinutes int    `json:"length_minutes"`
	Style         string `json:"style"`
	Quick         bool   `json:"quick"`
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req scriptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Idea = strings.TrimSpace(req.Idea)
	if req.Idea == "" {
		writeError(w, fault.New(fault.KindValidation, "idea is required"))
		return
	}
	var structure kb.StoryStructure
	if name := strings.TrimSpace(req.Structure); name != "" {
		found, ok := s.registry.Structure(name)
		if !ok {
			writeError(w, fault.New(fault.KindValidation, "unknown story structure %q", name))
			return
		}
		structure = found
	}
	provider, err := s.provider(sess)
	if err != nil {
		writeError(w, err)
		return
	}
	text := prompt.Script(prompt.ScriptInput{
		Idea:          req.Idea,
		Structure:     structure,
		LengthMinutes: req.LengthMinutes,
		Style:         req.Style,
		Quick:         req.Quick,
		Knowledge:     s.knowledgeBlock(sess, true),
	})
	budget := scriptMaxTokens
	if req.Quick {
		budget = quickMaxTokens
	}
	result, err := provider.Generate(r.Context(), text, budget)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.History.Record(history.TypeScript, result, map[string]string{"idea": req.Idea})
	writeJSON(w, http.StatusOK, generateResponse{Result: result, Provider: provider.Name()})
}

type analyzeRequest struct {
	Script   string `json:"script"`
	Sample   string `json:"sample"`
	Compare  bool   `json:"compare"`
	Detailed bool   `json:"detailed"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Script) == "" {
		writeError(w, fault.New(fault.KindValidation, "script is required"))
		return
	}
	provider, err := s.provider(sess)
	if err != nil {
		writeError(w, err)
		return
	}
	text := prompt.Analyze(prompt.AnalyzeInput{
		Script:    req.Script,
		Sample:    req.Sample,
		Compare:   req.Compare && strings.TrimSpace(req.Sample) != "",
		Detailed:  req.Detailed,
		Knowledge: s.knowledgeBlock(sess, true),
	})
	result, err := provider.Generate(r.Context(), text, analyzeMaxTokens)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.History.Record(history.TypeAnalysis, result, nil)
	writeJSON(w, http.StatusOK, generateResponse{Result: result, Provider: provider.Name()})
}

type compareRequest struct {
	HookA string `json:"hook_a"`
	HookB string `json:"hook_b"`
	Topic string `json:"topic"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req compareRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.HookA) == "" || strings.TrimSpace(req.HookB) == "" {
		writeError(w, fault.New(fault.KindValidation, "both hooks are required"))
		return
	}
	provider, err := s.provider(sess)
	if err != nil {
		writeError(w, err)
		return
	}
	text := prompt.Compare(prompt.CompareInput{
		HookA:     req.HookA,
		HookB:     req.HookB,
		Topic:     req.Topic,
		Knowledge: s.knowledgeBlock(sess, false),
	})
	result, err := provider.Generate(r.Context(), text, compareMaxTokens)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.History.Record(history.TypeABTest, result, nil)
	writeJSON(w, http.StatusOK, generateResponse{Result: result, Provider: provider.Name()})
}

type titlesRequest struct {
	Topic string `json:"topic"`
}

func (s *Server) handleTitles(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req titlesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		writeError(w, fault.New(fault.KindValidation, "topic is required"))
		return
	}
	provider, err := s.provider(sess)
	if err != nil {
		writeError(w, err)
		return
	}
	text := prompt.Titles(prompt.TitlesInput{Topic: req.Topic, Knowledge: s.knowledgeBlock(sess, false)})
	result, err := provider.Generate(r.Context(), text, titlesMaxTokens)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.History.Record(history.TypeTitles, result, map[string]string{"topic": req.Topic})
	writeJSON(w, http.StatusOK, generateResponse{Result: result, Provider: provider.Name()})
}

type thumbnailsRequest struct {
	Topic string `json:"topic"`
	Title string `json:"title"`
}

func (s *Server) handleThumbnails(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req thumbnailsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		writeError(w, fault.New(fault.KindValidation, "topic is required"))
		return
	}
	provider, err := s.provider(sess)
	if err != nil {
		writeError(w, err)
		return
	}
	text := prompt.Thumbnails(prompt.ThumbnailsInput{
		Topic:     req.Topic,
		Title:     req.Title,
		Knowledge: s.knowledgeBlock(sess, false),
	})
	result, err := provider.Generate(r.Context(), text, thumbnailsMaxTokens)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.History.Record(history.TypeThumbnails, result, nil)
	writeJSON(w, http.StatusOK, generateResponse{Result: result, Provider: provider.Name()})
}
