// File path: internal/knowledge/aggregate.go
package knowledge

import (
	"strings"

	"scriptforge/internal/common"
	"scriptforge/internal/kb"
)

const truncationMarker = "\n[knowledge truncated]"

// AggregateOptions shapes the combined knowledge block.
//
// Budget is a rune budget with deterministic prioritization: sections are
// consumed in order, static records (declaration order) before dynamic
// sources (newest first). Whichever section crosses the budget is trimmed
// with a marker and later sections are dropped; a budget smaller than the
// static block trims a static record like any other. Zero means no bound.
type AggregateOptions struct {
	IncludeFullText bool
	Budget          int
	StaticDisabled  map[string]bool
}

// Aggregate concatenates every active static record then every active
// dynamic source into the single text block injected into prompts. No
// de-duplication is performed.
func Aggregate(static []kb.Record, dynamic []Source, opts AggregateOptions) string {
	var sections []string
	for _, rec := range static {
		if !rec.Active || opts.StaticDisabled[rec.ID] {
			continue
		}
		sections = append(sections, renderStatic(rec, opts.IncludeFullText))
	}
	for _, src := range dynamic {
		if !src.Active {
			continue
		}
		sections = append(sections, renderDynamic(src))
	}
	if len(sections) == 0 {
		return ""
	}
	if opts.Budget <= 0 {
		return strings.Join(sections, "\n\n")
	}
	return joinWithinBudget(sections, opts.Budget)
}

func renderStatic(rec kb.Record, includeFullText bool) string {
	var b strings.Builder
	b.WriteString("### ")
	b.WriteString(rec.Name)
	if rec.Origin != "" {
		b.WriteString(" (")
		b.WriteString(rec.Origin)
		b.WriteString(")")
	}
	b.WriteString("\n")
	if includeFullText && rec.FullText != "" {
		b.WriteString(rec.FullText)
		return b.String()
	}
	if len(rec.Principles) == 0 && rec.FullText != "" {
		b.WriteString(rec.FullText)
		return b.String()
	}
	for i, principle := range rec.Principles {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(principle)
	}
	return b.String()
}

func renderDynamic(src Source) string {
	var b strings.Builder
	b.WriteString("### ")
	b.WriteString(src.Name)
	b.WriteString(" (")
	b.WriteString(src.Origin)
	b.WriteString(")\n")
	b.WriteString(src.ExtractedAdvice)
	return b.String()
}

func joinWithinBudget(sections []string, budget int) string {
	var b strings.Builder
	used := 0
	for i, section := range sections {
		sep := 0
		if i > 0 {
			sep = 2
		}
		runes := []rune(section)
		if used+sep+len(runes) <= budget {
			if sep > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(section)
			used += sep + len(runes)
			continue
		}
		remaining := budget - used - sep
		if remaining > 0 {
			if sep > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(strings.TrimSpace(string(runes[:remaining])))
			b.WriteString(truncationMarker)
		}
		common.Logger().Debug("knowledge: aggregation truncated", "budget", budget, "sections_kept", i)
		break
	}
	return b.String()
}
