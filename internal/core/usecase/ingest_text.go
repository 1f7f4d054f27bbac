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

// IngestTextUseCase normalizes raw text with an LLM rewrite and indexes
// the result. The rewrite degrades like query correction: on failure or an
// empty result the original text is indexed instead, never empty content.
type IngestTextUseCase struct {
	llm            ports.ChatModel
	chunker        ports.Chunker
	embedder       ports.Embedder
	vectorDB       ports.VectorStore
	rewriteTimeout time.Duration
	log            *slog.Logger
}

func NewIngestTextUseCase(
	llm ports.ChatModel,
	chunker ports.Chunker,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	rewriteTimeout time.Duration,
	log *slog.Logger,
) *IngestTextUseCase {
	if rewriteTimeout <= 0 {
		rewriteTimeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &IngestTextUseCase{
		llm:            llm,
		chunker:        chunker,
		embedder:       embedder,
		vectorDB:       vectorDB,
		rewriteTimeout: rewriteTimeout,
		log:            log,
	}
}

func (uc *IngestTextUseCase) IngestText(ctx context.Context, text string) (*domain.TextIngestReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ingest text", errors.New("text is required"))
	}

	processed := uc.rewrite(ctx, text)
	now := time.Now().UTC()

	doc := domain.Document{
		Content: processed,
		Meta: domain.TextMeta{
			MetaBase:        domain.MetaBase{Source: domain.SourceAPIRequest, IndexedAt: now},
			OriginalLength:  len(text),
			ProcessedLength: len(processed),
		},
	}

	chunksCreated, err := indexDocuments(ctx, uc.chunker, uc.embedder, uc.vectorDB, []domain.Document{doc})
	if err != nil {
		return nil, err
	}

	return &domain.TextIngestReport{
		OriginalText:  text,
		ProcessedText: processed,
		ChunksCreated: chunksCreated,
		IndexedAt:     now,
	}, nil
}

func (uc *IngestTextUseCase) rewrite(ctx context.Context, text string) string {
	ctx, cancel := context.WithTimeout(ctx, uc.rewriteTimeout)
	defer cancel()

	rewritten, err := uc.llm.Complete(ctx, textRewriteSystemPrompt, text)
	if err != nil {
		uc.log.Warn("text_rewrite_fallback", "error", err)
		return text
	}
	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		uc.log.Warn("text_rewrite_fallback", "error", "empty rewrite result")
		return text
	}
	return rewritten
}
