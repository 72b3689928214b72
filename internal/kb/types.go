// File path: internal/kb/types.go
package kb

// Record is a built-in knowledge source compiled into the binary. Content is
// either a list of short principle strings or one full-text block; the
// aggregator prefers the block when present and asked for.
type Record struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Origin     string   `json:"origin"`
	Active     bool     `json:"active"`
	Principles []string `json:"principles,omitempty"`
	FullText   string   `json:"full_text,omitempty"`
}

// HookFormula is one of the channel's named opening patterns. Power ranks
// how reliably the pattern performs, 1-10.
type HookFormula struct {
	Name     string `json:"name"`
	Template string `json:"template"`
	Example  string `json:"example"`
	Power    int    `json:"power"`
}

// StoryStructure is an ordered beat list for a script outline.
type StoryStructure struct {
	Name  string   `json:"name"`
	Beats []string `json:"beats"`
}
