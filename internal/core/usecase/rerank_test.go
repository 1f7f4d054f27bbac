package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

func candidateSet(contents ...string) []domain.RetrievedChunk {
	out := make([]domain.RetrievedChunk, len(contents))
	for i, content := range contents {
		out[i] = domain.RetrievedChunk{
			Content: content,
			Meta: domain.TextMeta{
				MetaBase: domain.MetaBase{Source: domain.SourceAPIRequest},
			},
			Position: i,
		}
	}
	return out
}

func TestRerankSelectsByIndexInCandidateOrder(t *testing.T) {
	llm := &fakeChat{
		completeDeterministicFn: func(context.Context, string, string) (string, error) {
			// Indices listed out of order; output must follow candidate order.
			return "3, 0", nil
		},
	}
	reranker := NewReranker(llm, time.Second, nil)

	candidates := candidateSet("a", "b", "c", "d")
	got := reranker.Rerank(context.Background(), "q", candidates)
	if len(got) != 2 || got[0].Content != "a" || got[1].Content != "d" {
		t.Fatalf("unexpected reranked set: %+v", got)
	}
}

func TestRerankDiscardsOutOfBoundsAndGarbageIndices(t *testing.T) {
	llm := &fakeChat{
		completeDeterministicFn: func(context.Context, string, string) (string, error) {
			return "-1, 1, 99, banana", nil
		},
	}
	reranker := NewReranker(llm, time.Second, nil)

	candidates := candidateSet("a", "b", "c")
	got := reranker.Rerank(context.Background(), "q", candidates)
	if len(got) != 1 || got[0].Content != "b" {
		t.Fatalf("unexpected reranked set: %+v", got)
	}
}

func TestRerankFallsBackToFullSetOnProviderError(t *testing.T) {
	llm := &fakeChat{
		completeDeterministicFn: func(context.Context, string, string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	reranker := NewReranker(llm, time.Second, nil)

	candidates := candidateSet("a", "b", "c")
	got := reranker.Rerank(context.Background(), "q", candidates)
	if len(got) != len(candidates) {
		t.Fatalf("expected full candidate set, got %d chunks", len(got))
	}
	for i := range got {
		if got[i].Content != candidates[i].Content {
			t.Fatalf("candidate order not preserved at %d: %q", i, got[i].Content)
		}
	}
}

func TestRerankFallsBackToFullSetOnEmptySelection(t *testing.T) {
	for _, response := range []string{"", "none", "7, 8"} {
		llm := &fakeChat{
			completeDeterministicFn: func(context.Context, string, string) (string, error) {
				return response, nil
			},
		}
		reranker := NewReranker(llm, time.Second, nil)

		candidates := candidateSet("a", "b")
		got := reranker.Rerank(context.Background(), "q", candidates)
		if len(got) != len(candidates) {
			t.Fatalf("response %q: expected full candidate set, got %d chunks", response, len(got))
		}
	}
}

func TestRerankSkipsModelCallForEmptyCandidates(t *testing.T) {
	llm := &fakeChat{}
	reranker := NewReranker(llm, time.Second, nil)

	got := reranker.Rerank(context.Background(), "q", nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	if llm.completeDeterministicCalls != 0 {
		t.Fatalf("expected no model call, got %d", llm.completeDeterministicCalls)
	}
}

func TestParseIndexListDeduplicates(t *testing.T) {
	got := parseIndexList("0, 0, 1", 3)
	if len(got) != 2 {
		t.Fatalf("expected 2 unique indices, got %d", len(got))
	}
}
