// File path: internal/prompt/prompt_test.go
package prompt

import (
	"strings"
	"testing"

	"scriptforge/internal/kb"
)

func TestScriptContainsIdeaAndBeats(t *testing.T) {
	structure := kb.StoryStructure{Name: "Problem-Solver", Beats: []string{"Problem", "Solution", "Vision"}}
	out := Script(ScriptInput{Idea: "X", Structure: structure})
	if !strings.Contains(out, "IDEA: X") {
		t.Fatalf("idea missing:\n%s", out)
	}
	if !strings.Contains(out, "Problem, Solution, Vision") {
		t.Fatalf("beat list missing:\n%s", out)
	}
	for _, header := range []string{"STYLE:", "LENGTH:", "CHANNEL KNOWLEDGE:"} {
		if strings.Contains(out, header) {
			t.Fatalf("omitted optional field left a header %q:\n%s", header, out)
		}
	}
}

func TestScriptLengthConversion(t *testing.T) {
	out := Script(ScriptInput{Idea: "x", LengthMinutes: 8})
	if !strings.Contains(out, "LENGTH: 1200 words") {
		t.Fatalf("8 minutes should become 1200 words:\n%s", out)
	}
}

func TestQuickScriptAsksForOutline(t *testing.T) {
	full := Script(ScriptInput{Idea: "x"})
	quick := Script(ScriptInput{Idea: "x", Quick: true})
	if !strings.Contains(full, "Write the full script:") {
		t.Fatalf("full variant missing restatement:\n%s", full)
	}
	if !strings.Contains(quick, "outline") {
		t.Fatalf("quick variant should request an outline:\n%s", quick)
	}
}

func TestHooksListsSelectedFormulasVerbatim(t *testing.T) {
	formulas := []kb.HookFormula{
		{Name: "1. Shocking Question", Template: "What if I told you [shocking fact]?"},
		{Name: "5. Authority Challenge", Template: "[Famous person/institution] is wrong about [topic]"},
	}
	out := Hooks(HooksInput{Topic: "Why cities stopped being beautiful", Formulas: formulas})
	if !strings.Contains(out, "Why cities stopped being beautiful") {
		t.Fatalf("topic missing:\n%s", out)
	}
	for _, f := range formulas {
		if !strings.Contains(out, f.Template) {
			t.Fatalf("formula template %q missing:\n%s", f.Template, out)
		}
	}
}

func TestAnalyzeCapsScriptAndSample(t *testing.T) {
	long := strings.Repeat("a", MaxScriptChars+500)
	sample := strings.Repeat("b", MaxSampleChars+500)
	out := Analyze(AnalyzeInput{Script: long, Sample: sample, Compare: true, Detailed: true})
	if strings.Contains(out, strings.Repeat("a", MaxScriptChars+1)) {
		t.Fatalf("script not capped")
	}
	if strings.Contains(out, strings.Repeat("b", MaxSampleChars+1)) {
		t.Fatalf("sample not capped")
	}
	if !strings.Contains(out, strings.Repeat("a", MaxScriptChars)) {
		t.Fatalf("capped script should keep the leading run")
	}
	if !strings.Contains(out, "REWRITE SUGGESTIONS") {
		t.Fatalf("detailed flag should add rewrite section")
	}
}

func TestAnalyzeWithoutCompareOmitsReference(t *testing.T) {
	out := Analyze(AnalyzeInput{Script: "short script", Sample: "reference text"})
	if strings.Contains(out, "REFERENCE STYLE") || strings.Contains(out, "reference text") {
		t.Fatalf("reference sample included without compare flag:\n%s", out)
	}
	if strings.Contains(out, "COMPARISON TO") {
		t.Fatalf("comparison section included without compare flag")
	}
}

func TestCompareIncludesBothHooksAndRestatement(t *testing.T) {
	out := Compare(CompareInput{HookA: "hook alpha", HookB: "hook beta"})
	if !strings.Contains(out, "hook alpha") || !strings.Contains(out, "hook beta") {
		t.Fatalf("hooks missing:\n%s", out)
	}
	if !strings.Contains(out, "Hook C") {
		t.Fatalf("combined hook restatement missing")
	}
	if strings.Contains(out, "TOPIC:") {
		t.Fatalf("empty topic should leave no header")
	}
}

func TestThumbnailsOptionalTitle(t *testing.T) {
	without := Thumbnails(ThumbnailsInput{Topic: "t"})
	if strings.Contains(without, "TITLE:") {
		t.Fatalf("empty title should leave no header")
	}
	with := Thumbnails(ThumbnailsInput{Topic: "t", Title: "My Title"})
	if !strings.Contains(with, "TITLE: My Title") {
		t.Fatalf("title missing when provided:\n%s", with)
	}
}

func TestWorkshopSystemIncludesKnowledge(t *testing.T) {
	out := WorkshopSystem("- always open with a question")
	if !strings.Contains(out, "always open with a question") {
		t.Fatalf("knowledge block missing:\n%s", out)
	}
	empty := WorkshopSystem("")
	if strings.Contains(empty, "CHANNEL KNOWLEDGE") {
		t.Fatalf("empty knowledge should leave no header")
	}
}
