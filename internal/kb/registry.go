// File path: internal/kb/registry.go

// Package kb holds the static knowledge registry: the hook formulas, story
// structures, style guide, and playbook the channel's prompts are built
// from. The registry is fixed at startup; per-session active toggles live in
// the session, not here.
package kb

import "strings"

type Registry struct {
	records    []Record
	recordIdx  map[string]int
	formulas   []HookFormula
	formulaIdx map[string]int
	structures []StoryStructure
}

// NewRegistry builds the default registry from the compiled-in content.
func NewRegistry() *Registry {
	r := &Registry{
		records:    defaultRecords(),
		formulas:   defaultHookFormulas(),
		structures: defaultStoryStructures(),
	}
	r.recordIdx = make(map[string]int, len(r.records))
	for i, rec := range r.records {
		r.recordIdx[rec.ID] = i
	}
	r.formulaIdx = make(map[string]int, len(r.formulas))
	for i, f := range r.formulas {
		r.formulaIdx[f.Name] = i
	}
	return r
}

// Records returns the static records in declaration order.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Record looks up a static record by id.
func (r *Registry) Record(id string) (Record, bool) {
	idx, ok := r.recordIdx[strings.TrimSpace(id)]
	if !ok {
		return Record{}, false
	}
	return r.records[idx], true
}

// HookFormulas returns all formulas in declaration order.
func (r *Registry) HookFormulas() []HookFormula {
	out := make([]HookFormula, len(r.formulas))
	copy(out, r.formulas)
	return out
}

// Formula looks up a hook formula by its full name.
func (r *Registry) Formula(name string) (HookFormula, bool) {
	idx, ok := r.formulaIdx[strings.TrimSpace(name)]
	if !ok {
		return HookFormula{}, false
	}
	return r.formulas[idx], true
}

// Structures returns the story structures in declaration order.
func (r *Registry) Structures() []StoryStructure {
	out := make([]StoryStructure, len(r.structures))
	copy(out, r.structures)
	return out
}

// Structure looks up a story structure by name, case-insensitively.
func (r *Registry) Structure(name string) (StoryStructure, bool) {
	trimmed := strings.TrimSpace(name)
	for _, s := range r.structures {
		if strings.EqualFold(s.Name, trimmed) {
			return s, true
		}
	}
	return StoryStructure{}, false
}
