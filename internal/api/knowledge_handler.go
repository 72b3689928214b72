// File path: internal/api/knowledge_handler.go
package api

import (
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"scriptforge/internal/extract"
	"scriptforge/internal/fault"
	"scriptforge/internal/knowledge"
)

type staticRecordView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Origin     string   `json:"origin"`
	Active     bool     `json:"active"`
	Principles []string `json:"principles"`
	HasFull    bool     `json:"has_full_text"`
}

type formulaView struct {
	Name     string `json:"name"`
	Template string `json:"template"`
	Example  string `json:"example"`
	Power    int    `json:"power"`
}

type structureView struct {
	Name  string   `json:"name"`
	Beats []string `json:"beats"`
}

// handleKnowledgeView returns the static library with the session's toggle
// state applied, plus the formula and structure catalogs.
func (s *Server) handleKnowledgeView(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	disabled := sess.StaticDisabled()
	records := make([]staticRecordView, 0)
	for _, rec := range s.registry.Records() {
		records = append(records, staticRecordView{
			ID:         rec.ID,
			Name:       rec.Name,
			Origin:     rec.Origin,
			Active:     !disabled[rec.ID],
			Principles: rec.Principles,
			HasFull:    rec.FullText != "",
		})
	}
	formulas := make([]formulaView, 0)
	for _, f := range s.registry.HookFormulas() {
		formulas = append(formulas, formulaView{Name: f.Name, Template: f.Template, Example: f.Example, Power: f.Power})
	}
	structures := make([]structureView, 0)
	for _, st := range s.registry.Structures() {
		structures = append(structures, structureView{Name: st.Name, Beats: st.Beats})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records":    records,
		"formulas":   formulas,
		"structures": structures,
	})
}

type staticToggleRequest struct {
	Active bool `json:"active"`
}

func (s *Server) handleStaticToggle(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	id := chi.URLParam(r, "id")
	if _, ok := s.registry.Record(id); !ok {
		writeError(w, fault.New(fault.KindValidation, "unknown knowledge record %q", id))
		return
	}
	var req staticToggleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sess.SetStaticActive(id, req.Active)
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "active": req.Active})
}

func (s *Server) handleSourcesList(w http.ResponseWriter, r *http.Request) {
	s.session(w, r)
	sources := s.knowledge.Sources()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sources": sources,
		"count":   len(sources),
		"remote":  s.knowledge.RemoteName(),
	})
}

type sourceCreateRequest struct {
	Name            string `json:"name"`
	Origin          string `json:"origin"`
	ExtractedAdvice string `json:"extracted_advice"`
	Active          *bool  `json:"active"`
}

func (s *Server) handleSourceCreate(w http.ResponseWriter, r *http.Request) {
	s.session(w, r)
	var req sourceCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	src := knowledge.Source{
		Name:            req.Name,
		Origin:          req.Origin,
		ExtractedAdvice: req.ExtractedAdvice,
		Active:          true,
	}
	if req.Active != nil {
		src.Active = *req.Active
	}
	stored, err := s.knowledge.Add(r.Context(), src)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

type sourceUpdateRequest struct {
	Name            *string `json:"name"`
	ExtractedAdvice *string `json:"extracted_advice"`
	Active          *bool   `json:"active"`
}

func (s *Server) handleSourceUpdate(w http.ResponseWriter, r *http.Request) {
	s.session(w, r)
	id := chi.URLParam(r, "id")
	var req sourceUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	patch := knowledge.Patch{
		Name:            req.Name,
		ExtractedAdvice: req.ExtractedAdvice,
		Active:          req.Active,
	}
	if err := s.knowledge.Update(r.Context(), id, patch); err != nil {
		writeError(w, err)
		return
	}
	updated, _ := s.knowledge.Get(id)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleSourceDelete(w http.ResponseWriter, r *http.Request) {
	s.session(w, r)
	id := chi.URLParam(r, "id")
	if err := s.knowledge.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleSourcesReload(w http.ResponseWriter, r *http.Request) {
	s.session(w, r)
	if err := s.knowledge.Reload(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"count": len(s.knowledge.Sources())})
}

type extractRequest struct {
	URL        string `json:"url"`
	Transcript string `json:"transcript"`
	Name       string `json:"name"`
	Save       bool   `json:"save"`
}

type extractResponse struct {
	Advice          string            `json:"advice"`
	TranscriptWords int               `json:"transcript_words"`
	Chunks          int               `json:"chunks"`
	Origin          string            `json:"origin"`
	Saved           *knowledge.Source `json:"saved,omitempty"`
}

// handleExtract turns a YouTube URL or pasted transcript into an advice
// block, optionally saving it as a knowledge source in the same call.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	var req extractRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	provider, err := s.provider(sess)
	if err != nil {
		writeError(w, err)
		return
	}

	transcriptText := req.Transcript
	origin := knowledge.ManualOrigin
	if url := strings.TrimSpace(req.URL); url != "" {
		fetched, err := s.fetcher.Fetch(r.Context(), url)
		if err != nil {
			writeError(w, err)
			return
		}
		transcriptText = fetched
		origin = url
	}
	if strings.TrimSpace(transcriptText) == "" {
		writeError(w, fault.New(fault.KindValidation, "provide a video url or a pasted transcript"))
		return
	}

	result, err := extract.NewPipeline(provider).Run(r.Context(), transcriptText)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := extractResponse{
		Advice:          result.Advice,
		TranscriptWords: result.TranscriptWords,
		Chunks:          result.Chunks,
		Origin:          origin,
	}
	if req.Save {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = origin
		}
		stored, err := s.knowledge.Add(r.Context(), knowledge.Source{
			Name:            name,
			Origin:          origin,
			ExtractedAdvice: result.Advice,
			Active:          true,
			TranscriptWords: result.TranscriptWords,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Saved = &stored
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.session(w, r)
	doc := knowledge.Export(s.knowledge.Sources())
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="knowledge_sources.md"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

type importRequest struct {
	Document string `json:"document"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	s.session(w, r)
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	parsed, err := knowledge.Import(req.Document)
	if err != nil {
		writeError(w, err)
		return
	}
	imported := 0
	for _, src := range parsed {
		if _, err := s.knowledge.Add(r.Context(), src); err != nil {
			writeError(w, err)
			return
		}
		imported++
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
