package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
	"github.com/dkotenko/knowledge-assistant/internal/core/ports"
)

// NoContextAnswer is returned without an LLM call when the reranked set
// carries no usable text.
const NoContextAnswer = "The provided documents do not contain enough information to create a summary for this topic."

const emptySummaryAnswer = "Unable to generate a summary."

// Synthesizer produces a structured, context-grounded summary from the
// reranked chunks. Unlike correction and reranking it is a hard-fail
// stage: a provider error aborts the request, no fallback text is
// fabricated.
type Synthesizer struct {
	llm     ports.ChatModel
	timeout time.Duration
}

func NewSynthesizer(llm ports.ChatModel, timeout time.Duration) *Synthesizer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Synthesizer{
		llm:     llm,
		timeout: timeout,
	}
}

func (s *Synthesizer) Summarize(ctx context.Context, query string, chunks []domain.RetrievedChunk) (string, error) {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Content != "" {
			parts = append(parts, chunk.Content)
		}
	}
	contextText := strings.Join(parts, "\n\n")
	if strings.TrimSpace(contextText) == "" {
		return NoContextAnswer, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	summary, err := s.llm.CompleteReliable(ctx, buildSynthesisPrompt(contextText), query)
	if err != nil {
		return "", domain.WrapError(domain.ErrProvider, "synthesize summary", err)
	}
	if strings.TrimSpace(summary) == "" {
		return emptySummaryAnswer, nil
	}
	return summary, nil
}
