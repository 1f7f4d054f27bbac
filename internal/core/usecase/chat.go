package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
	"github.com/dkotenko/knowledge-assistant/internal/core/ports"
)

// NoResultsAnswer is the successful "nothing indexed matches" response.
// An empty retrieval is not an error.
const NoResultsAnswer = "No relevant information found in the knowledge base for this query."

// AnswerQueryUseCase chains the answer pipeline:
// correct -> retrieve -> rerank -> synthesize -> attribute sources.
// Correction and reranking degrade gracefully; retrieval and synthesis
// abort the request on failure.
type AnswerQueryUseCase struct {
	corrector   *Corrector
	embedder    ports.Embedder
	vectorDB    ports.VectorStore
	reranker    *Reranker
	synthesizer *Synthesizer
	topK        int
	log         *slog.Logger
}

func NewAnswerQueryUseCase(
	corrector *Corrector,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	reranker *Reranker,
	synthesizer *Synthesizer,
	topK int,
	log *slog.Logger,
) *AnswerQueryUseCase {
	if topK <= 0 {
		topK = 5
	}
	if log == nil {
		log = slog.Default()
	}
	return &AnswerQueryUseCase{
		corrector:   corrector,
		embedder:    embedder,
		vectorDB:    vectorDB,
		reranker:    reranker,
		synthesizer: synthesizer,
		topK:        topK,
		log:         log,
	}
}

func (uc *AnswerQueryUseCase) Answer(ctx context.Context, query string) (*domain.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "answer query", errors.New("query is required"))
	}

	corrected := uc.corrector.Correct(ctx, query)

	queryVector, err := uc.embedder.EmbedQuery(ctx, corrected)
	if err != nil {
		return nil, domain.WrapError(domain.ErrProvider, "embed query", err)
	}

	candidates, err := uc.vectorDB.Search(ctx, queryVector, uc.topK)
	if err != nil {
		return nil, domain.WrapError(domain.ErrProvider, "search vector db", err)
	}
	if len(candidates) == 0 {
		return &domain.Answer{
			OriginalQuery:  query,
			CorrectedQuery: corrected,
			Text:           NoResultsAnswer,
			ChunksFound:    0,
			ProcessedAt:    time.Now().UTC(),
		}, nil
	}
	uc.log.Info("chunks_retrieved", "count", len(candidates))

	reranked := uc.reranker.Rerank(ctx, corrected, candidates)

	answerText, err := uc.synthesizer.Summarize(ctx, corrected, reranked)
	if err != nil {
		return nil, err
	}

	if sources := FormatSources(reranked); sources != "" {
		answerText = answerText + "\n\n**Sources:**\n" + sources
	}

	return &domain.Answer{
		OriginalQuery:  query,
		CorrectedQuery: corrected,
		Text:           answerText,
		ChunksFound:    len(reranked),
		ProcessedAt:    time.Now().UTC(),
	}, nil
}
