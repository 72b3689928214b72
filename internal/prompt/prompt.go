// File path: internal/prompt/prompt.go

// Package prompt assembles the outbound prompt strings, one builder per
// feature. Policy shared by every builder: an optional field is included
// only when non-empty, prefixed by a label line; omitted fields leave no
// trace. Raw user text is capped per field before insertion. Every template
// ends with an explicit task restatement so the model anchors on the output
// format.
package prompt

import (
	"fmt"
	"strings"

	"scriptforge/internal/kb"
)

const (
	channelName = "The Aesthetic City"
	personaLine = "Write as Ruben Hanssen (The Aesthetic City, 209k subs)."

	// Caps on raw user text, in runes.
	MaxScriptChars     = 4000
	MaxSampleChars     = 1500
	MaxTranscriptChars = 12000

	// WordsPerMinute converts a requested video length into a script
	// word target.
	WordsPerMinute = 150
)

// Truncate caps user-supplied text at limit runes.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// section emits "LABEL:\ncontent" when content is non-empty, nothing
// otherwise.
func section(b *strings.Builder, label, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString(":\n")
	b.WriteString(strings.TrimSpace(content))
	b.WriteString("\n")
}

// inline emits "LABEL: content" when content is non-empty.
func inline(b *strings.Builder, label, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(strings.TrimSpace(content))
}

type HooksInput struct {
	Topic     string
	Formulas  []kb.HookFormula
	Knowledge string
}

// Hooks builds the hook-generation prompt: two hooks per selected formula,
// each scored and paired with thumbnail text.
func Hooks(in HooksInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate YouTube hooks for %q.\n", channelName)
	inline(&b, "TOPIC", in.Topic)
	b.WriteString("\n")
	if len(in.Formulas) > 0 {
		b.WriteString("\nFORMULAS:\n")
		for _, f := range in.Formulas {
			fmt.Fprintf(&b, "- %s: %s\n", f.Name, f.Template)
		}
	}
	section(&b, "CHANNEL KNOWLEDGE", in.Knowledge)
	b.WriteString("\nFor each formula, generate 2 hooks with:\n")
	b.WriteString("1. Hook text (1-2 sentences)\n")
	b.WriteString("2. Score (1-10) + reasoning\n")
	b.WriteString("3. Thumbnail text (3-5 words)\n")
	b.WriteString("\nBe specific to architecture/urbanism. Sound like Ruben.")
	return b.String()
}

type ScriptInput struct {
	Idea          string
	Structure     kb.StoryStructure
	LengthMinutes int
	Style         string
	Quick         bool
	Knowledge     string
}

// Script builds the full- or quick-script prompt.
func Script(in ScriptInput) string {
	var b strings.Builder
	b.WriteString(personaLine)
	b.WriteString("\n")
	inline(&b, "IDEA", in.Idea)
	if in.Structure.Name != "" {
		fmt.Fprintf(&b, "\nSTRUCTURE: %s (%s)", in.Structure.Name, strings.Join(in.Structure.Beats, ", "))
	}
	if in.LengthMinutes > 0 {
		fmt.Fprintf(&b, "\nLENGTH: %d words", in.LengthMinutes*WordsPerMinute)
	}
	inline(&b, "STYLE", in.Style)
	b.WriteString("\n")
	section(&b, "CHANNEL KNOWLEDGE", in.Knowledge)
	b.WriteString("\nInclude:\n")
	b.WriteString("- Powerful hook (first 10 seconds)\n")
	b.WriteString("- [B-ROLL: description] markers\n")
	b.WriteString("- Pattern interrupts every 30-45 sec\n")
	b.WriteString("- Specific examples (Poundbury, Cayala, etc.)\n")
	b.WriteString("- Strong opinions\n")
	if in.Quick {
		b.WriteString("\nWrite a compact beat-by-beat outline with the hook written in full:")
	} else {
		b.WriteString("\nWrite the full script:")
	}
	return b.String()
}

type AnalyzeInput struct {
	Script    string
	Sample    string
	Compare   bool
	Detailed  bool
	Knowledge string
}

// Analyze builds the script-analysis prompt: viral score, voice match, weak
// and strong spots.
func Analyze(in AnalyzeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this YouTube script for %s.\n", channelName)
	section(&b, "SCRIPT TO ANALYZE", Truncate(in.Script, MaxScriptChars))
	if in.Compare {
		section(&b, "REFERENCE STYLE (from transcript)", Truncate(in.Sample, MaxSampleChars))
	}
	section(&b, "CHANNEL KNOWLEDGE", in.Knowledge)
	b.WriteString("\nProvide:\n\n")
	b.WriteString("## VIRAL SCORE: X/100\n")
	b.WriteString("- Hook strength (1-10)\n- Retention potential (1-10)\n- Curiosity gaps (1-10)\n- Pattern interrupts (1-10)\n- Emotional engagement (1-10)\n\n")
	b.WriteString("## VOICE MATCH: X/100\n")
	b.WriteString("- Conversational tone (1-10)\n- Personal stories (1-10)\n- Strong opinions (1-10)\n- Specific examples (1-10)\n- AI phrases detected (list any)\n\n")
	b.WriteString("## WEAK SPOTS\n[List specific sentences/sections that need work]\n\n")
	b.WriteString("## STRONG SPOTS\n[List what works well]\n")
	if in.Detailed {
		b.WriteString("\n## REWRITE SUGGESTIONS\n[Provide improved versions of weak sections]\n")
	}
	if in.Compare {
		b.WriteString("\n## COMPARISON TO THE CHANNEL'S ACTUAL SCRIPTS\nHow does this compare to the real style?\n")
	}
	b.WriteString("\nBe specific and actionable.")
	return b.String()
}

type CompareInput struct {
	HookA     string
	HookB     string
	Topic     string
	Knowledge string
}

// Compare builds the A/B hook comparison prompt, ending with a winner and a
// combined Hook C.
func Compare(in CompareInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Compare these two YouTube hooks for %s (architecture/urbanism channel).\n", channelName)
	inline(&b, "TOPIC", in.Topic)
	b.WriteString("\n")
	section(&b, "HOOK A", in.HookA)
	section(&b, "HOOK B", in.HookB)
	section(&b, "CHANNEL KNOWLEDGE", in.Knowledge)
	b.WriteString("\nAnalyze each hook on:\n")
	b.WriteString("1. Curiosity creation (1-10)\n2. Specificity (1-10)\n3. Emotional pull (1-10)\n4. Voice authenticity (1-10)\n5. CTR prediction (1-10)\n")
	b.WriteString("\nThen declare a WINNER with detailed reasoning.\n")
	b.WriteString("\nFinally, suggest an improved Hook C that combines the best of both.")
	return b.String()
}

type TitlesInput struct {
	Topic     string
	Knowledge string
}

// Titles builds the 10-title prompt.
func Titles(in TitlesInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate 10 YouTube titles for %s.\n", channelName)
	inline(&b, "TOPIC", in.Topic)
	b.WriteString("\n")
	section(&b, "CHANNEL KNOWLEDGE", in.Knowledge)
	b.WriteString("\nEach title should:\n")
	b.WriteString("- Be under 60 characters\n- Create curiosity\n- Be specific (name places when possible)\n")
	b.WriteString("\nFormat:\n1. [Title] — CTR: X/10 — Why it works: [reason]")
	return b.String()
}

type ThumbnailsInput struct {
	Topic     string
	Title     string
	Knowledge string
}

// Thumbnails builds the 5-concept thumbnail prompt.
func Thumbnails(in ThumbnailsInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate 5 thumbnail concepts for %s.\n", channelName)
	inline(&b, "TOPIC", in.Topic)
	inline(&b, "TITLE", in.Title)
	b.WriteString("\n")
	section(&b, "CHANNEL KNOWLEDGE", in.Knowledge)
	b.WriteString("\nFor each:\n")
	b.WriteString("1. Visual (what's in the image)\n2. Text overlay (3-5 words)\n3. Emotion it creates\n4. Why it would get clicks\n")
	b.WriteString("\nFocus on before/after, beautiful vs ugly contrasts.")
	return b.String()
}

// ExtractChunk builds the per-chunk advice-extraction prompt used by the
// knowledge pipeline.
func ExtractChunk(chunk string) string {
	var b strings.Builder
	b.WriteString("Extract actionable YouTube scripting and packaging advice from this transcript excerpt.\n")
	section(&b, "TRANSCRIPT EXCERPT", chunk)
	b.WriteString("\nReturn a concise bullet list of concrete, reusable advice. Skip filler, greetings, and anecdotes without a lesson.")
	return b.String()
}

// ExtractMerge builds the prompt that merges per-chunk advice lists into one
// block.
func ExtractMerge(parts []string) string {
	var b strings.Builder
	b.WriteString("Merge these advice lists extracted from one talk into a single de-duplicated list.\n")
	for i, part := range parts {
		section(&b, fmt.Sprintf("PART %d", i+1), part)
	}
	b.WriteString("\nReturn one merged bullet list, keeping the most specific phrasing of each point.")
	return b.String()
}

// WorkshopSystem builds the system instruction for the multi-turn workshop
// mode, grounding the conversation in the current knowledge block.
func WorkshopSystem(knowledge string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a scriptwriting partner for %s, a YouTube channel about architecture and urbanism.\n", channelName)
	b.WriteString("Work iteratively with the creator: sharpen hooks, restructure scripts, challenge weak arguments. Keep answers concrete and in the channel's voice.\n")
	section(&b, "CHANNEL KNOWLEDGE", knowledge)
	return b.String()
}
