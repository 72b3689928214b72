// File path: internal/extract/extract.go

// Package extract turns a raw talk transcript into the concise advice text
// stored on a knowledge source. Long transcripts are chunked, advice is
// extracted per chunk, and the chunk outputs are merged into one block.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/textsplitter"
	"github.com/tmc/langgraphgo/graph"

	"scriptforge/internal/common"
	"scriptforge/internal/fault"
	llmpkg "scriptforge/internal/llm"
	"scriptforge/internal/prompt"
)

const (
	chunkSize    = 6000
	chunkOverlap = 200

	extractMaxTokens = 1500
	mergeMaxTokens   = 2000
)

type Result struct {
	Advice          string `json:"advice"`
	TranscriptWords int    `json:"transcript_words"`
	Chunks          int    `json:"chunks"`
}

type Pipeline struct {
	provider llmpkg.Provider
	splitter textsplitter.RecursiveCharacter
}

func NewPipeline(provider llmpkg.Provider) *Pipeline {
	return &Pipeline{
		provider: provider,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}
}

// Run extracts advice from the transcript. The transcript is capped before
// chunking; word count is taken from the capped text.
func (p *Pipeline) Run(ctx context.Context, transcriptText string) (Result, error) {
	logger := common.Logger()
	capped := strings.TrimSpace(prompt.Truncate(transcriptText, prompt.MaxTranscriptChars))
	if capped == "" {
		return Result{}, fault.New(fault.KindValidation, "transcript text required")
	}
	chunks, err := p.splitter.SplitText(capped)
	if err != nil {
		return Result{}, fmt.Errorf("split transcript: %w", err)
	}
	if len(chunks) == 0 {
		chunks = []string{capped}
	}
	logger.Info("extract: pipeline starting", "chunks", len(chunks), "chars", len(capped))

	g := graph.NewMessageGraph()
	g.AddNode("extract", func(ctx context.Context, state []llms.MessageContent) ([]llms.MessageContent, error) {
		for _, chunk := range chunks {
			advice, err := p.provider.Generate(ctx, prompt.ExtractChunk(chunk), extractMaxTokens)
			if err != nil {
				return nil, err
			}
			state = append(state, llms.TextParts(llms.ChatMessageTypeAI, advice))
		}
		return state, nil
	})
	g.AddNode("merge", func(ctx context.Context, state []llms.MessageContent) ([]llms.MessageContent, error) {
		parts := collectAIParts(state)
		if len(parts) <= 1 {
			return state, nil
		}
		merged, err := p.provider.Generate(ctx, prompt.ExtractMerge(parts), mergeMaxTokens)
		if err != nil {
			return nil, err
		}
		return append(state, llms.TextParts(llms.ChatMessageTypeAI, merged)), nil
	})
	g.AddEdge("extract", "merge")
	g.AddEdge("merge", graph.END)
	g.SetEntryPoint("extract")

	runnable, err := g.Compile()
	if err != nil {
		return Result{}, fmt.Errorf("compile pipeline: %w", err)
	}
	initial := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, capped)}
	final, err := runnable.Invoke(ctx, initial)
	if err != nil {
		if fault.KindOf(err) != fault.KindUnknown {
			return Result{}, err
		}
		return Result{}, fault.Wrap(fault.KindTransport, fmt.Errorf("run pipeline: %w", err))
	}
	parts := collectAIParts(final)
	if len(parts) == 0 {
		return Result{}, fault.Wrap(fault.KindTransport, fmt.Errorf("pipeline produced no advice"))
	}
	advice := strings.TrimSpace(parts[len(parts)-1])
	logger.Info("extract: pipeline finished", "advice_chars", len(advice))
	return Result{
		Advice:          advice,
		TranscriptWords: len(strings.Fields(capped)),
		Chunks:          len(chunks),
	}, nil
}

func collectAIParts(state []llms.MessageContent) []string {
	var parts []string
	for _, msg := range state {
		if msg.Role != llms.ChatMessageTypeAI {
			continue
		}
		var b strings.Builder
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				b.WriteString(text.Text)
			}
		}
		if trimmed := strings.TrimSpace(b.String()); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
