package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
	"github.com/dkotenko/knowledge-assistant/internal/core/ports"
)

// IngestURLUseCase crawls a seed URL, filters out boilerplate pages and
// indexes the remaining content.
type IngestURLUseCase struct {
	crawler       ports.PageCrawler
	chunker       ports.Chunker
	embedder      ports.Embedder
	vectorDB      ports.VectorStore
	minTextLength int
	log           *slog.Logger
}

func NewIngestURLUseCase(
	crawler ports.PageCrawler,
	chunker ports.Chunker,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	minTextLength int,
	log *slog.Logger,
) *IngestURLUseCase {
	if minTextLength <= 0 {
		minTextLength = 100
	}
	if log == nil {
		log = slog.Default()
	}
	return &IngestURLUseCase{
		crawler:       crawler,
		chunker:       chunker,
		embedder:      embedder,
		vectorDB:      vectorDB,
		minTextLength: minTextLength,
		log:           log,
	}
}

func (uc *IngestURLUseCase) IngestURL(ctx context.Context, rawURL string) (*domain.URLIngestReport, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ingest url", errors.New("url is required"))
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ingest url", err)
	}

	pages, err := uc.crawler.Crawl(ctx, rawURL)
	if err != nil {
		if domain.IsKind(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrProvider, "crawl url", err)
	}
	if len(pages) == 0 {
		return nil, domain.WrapError(domain.ErrEmptySource, "crawl url", errors.New("no content could be extracted from the provided URL"))
	}

	// Short pages are navigation shells and cookie banners, not content.
	filtered := make([]domain.Document, 0, len(pages))
	for _, page := range pages {
		if len([]rune(page.Content)) >= uc.minTextLength {
			filtered = append(filtered, page)
		}
	}
	if len(filtered) == 0 {
		return nil, domain.WrapError(domain.ErrEmptySource, "filter crawled pages", errors.New("no meaningful content found on the provided URL"))
	}
	uc.log.Info("crawl_pages_filtered", "crawled", len(pages), "kept", len(filtered))

	chunksCreated, err := indexDocuments(ctx, uc.chunker, uc.embedder, uc.vectorDB, filtered)
	if err != nil {
		return nil, err
	}

	return &domain.URLIngestReport{
		OriginalURL:    rawURL,
		PagesProcessed: len(filtered),
		ChunksCreated:  chunksCreated,
		IndexedAt:      time.Now().UTC(),
	}, nil
}
