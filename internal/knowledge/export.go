// File path: internal/knowledge/export.go
package knowledge

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const exportHeader = "# Knowledge Sources Export"

// Export renders the sources as a structured Markdown document suitable for
// download and later re-ingestion via Import.
func Export(sources []Source) string {
	var b strings.Builder
	b.WriteString(exportHeader)
	b.WriteString("\n")
	for _, src := range sources {
		b.WriteString("\n## ")
		b.WriteString(src.Name)
		b.WriteString("\n")
		fmt.Fprintf(&b, "- Origin: %s\n", src.Origin)
		fmt.Fprintf(&b, "- Active: %t\n", src.Active)
		fmt.Fprintf(&b, "- Words: %d\n", src.TranscriptWords)
		if !src.CreatedAt.IsZero() {
			fmt.Fprintf(&b, "- Created: %s\n", src.CreatedAt.UTC().Format(time.RFC3339))
		}
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(src.ExtractedAdvice))
		b.WriteString("\n")
	}
	return b.String()
}

// Import parses a document of the Export shape. Ids and timestamps are not
// carried over; re-adding through the store assigns them fresh. The only
// validation is that at least one well-formed section parses.
func Import(doc string) ([]Source, error) {
	scanner := bufio.NewScanner(strings.NewReader(doc))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	var sources []Source
	var current *Source
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.ExtractedAdvice = strings.TrimSpace(strings.Join(body, "\n"))
		if current.Name != "" && current.ExtractedAdvice != "" {
			sources = append(sources, *current)
		}
		current = nil
		body = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			current = &Source{Name: strings.TrimSpace(strings.TrimPrefix(line, "## "))}
		case current == nil:
			continue
		case strings.HasPrefix(line, "- Origin: "):
			current.Origin = strings.TrimSpace(strings.TrimPrefix(line, "- Origin: "))
		case strings.HasPrefix(line, "- Active: "):
			current.Active = strings.TrimSpace(strings.TrimPrefix(line, "- Active: ")) == "true"
		case strings.HasPrefix(line, "- Words: "):
			if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "- Words: "))); err == nil {
				current.TranscriptWords = n
			}
		case strings.HasPrefix(line, "- Created: "):
			// Advisory only; new rows get fresh timestamps.
		default:
			body = append(body, line)
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no knowledge sources found in document")
	}
	return sources, nil
}
