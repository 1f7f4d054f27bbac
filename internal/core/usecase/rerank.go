package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
	"github.com/dkotenko/knowledge-assistant/internal/core/ports"
)

// Reranker asks the LLM to pick the candidate chunks most relevant to the
// query. It is self-healing: a failed call, an unparseable response or an
// empty selection all fall back to the full candidate set, preserving
// candidate order either way.
type Reranker struct {
	llm     ports.ChatModel
	timeout time.Duration
	log     *slog.Logger
}

func NewReranker(llm ports.ChatModel, timeout time.Duration, log *slog.Logger) *Reranker {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Reranker{
		llm:     llm,
		timeout: timeout,
		log:     log,
	}
}

func (r *Reranker) Rerank(ctx context.Context, query string, candidates []domain.RetrievedChunk) []domain.RetrievedChunk {
	if len(candidates) == 0 {
		return candidates
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	response, err := r.llm.CompleteDeterministic(ctx, buildRerankPrompt(query, candidates), query)
	if err != nil {
		r.log.Warn("rerank_fallback", "error", err)
		return candidates
	}

	selected := parseIndexList(response, len(candidates))
	if len(selected) == 0 {
		r.log.Warn("rerank_fallback", "error", "no valid indices in response", "response", response)
		return candidates
	}

	// Re-materialize in candidate order regardless of the order the model
	// listed the indices.
	out := make([]domain.RetrievedChunk, 0, len(selected))
	for i, candidate := range candidates {
		if _, ok := selected[i]; ok {
			out = append(out, candidate)
		}
	}
	return out
}

// parseIndexList extracts the 0-based indices from a comma-separated model
// response, discarding anything non-numeric or out of [0, n).
func parseIndexList(response string, n int) map[int]struct{} {
	out := make(map[int]struct{})
	for _, token := range strings.Split(response, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			continue
		}
		if idx < 0 || idx >= n {
			continue
		}
		out[idx] = struct{}{}
	}
	return out
}
