package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

func urlDoc(source, content string) domain.Document {
	return domain.Document{
		Content: content,
		Meta:    domain.URLMeta{MetaBase: domain.MetaBase{Source: source}, Depth: 1},
	}
}

func TestIngestURLRejectsMalformedURL(t *testing.T) {
	uc := NewIngestURLUseCase(&fakeCrawler{}, wholeChunker{}, &fakeEmbedder{}, &fakeVectorStore{}, 10, nil)

	for _, raw := range []string{"", "   ", "not-a-url"} {
		_, err := uc.IngestURL(context.Background(), raw)
		if !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("url %q: expected invalid input error, got %v", raw, err)
		}
	}
}

func TestIngestURLIndexesCrawledPages(t *testing.T) {
	crawler := &fakeCrawler{
		crawlFn: func(context.Context, string) ([]domain.Document, error) {
			return []domain.Document{
				urlDoc("https://example.com/", strings.Repeat("content ", 20)),
				urlDoc("https://example.com/docs", strings.Repeat("details ", 20)),
			}, nil
		},
	}
	store := &fakeVectorStore{}
	uc := NewIngestURLUseCase(crawler, wholeChunker{}, &fakeEmbedder{}, store, 10, nil)

	report, err := uc.IngestURL(context.Background(), "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.PagesProcessed != 2 {
		t.Fatalf("expected 2 pages, got %d", report.PagesProcessed)
	}
	if report.ChunksCreated != 2 {
		t.Fatalf("expected 2 chunks, got %d", report.ChunksCreated)
	}
	if store.upsertCalls != 1 {
		t.Fatalf("expected one upsert, got %d", store.upsertCalls)
	}
}

func TestIngestURLZeroPagesIsEmptySource(t *testing.T) {
	crawler := &fakeCrawler{
		crawlFn: func(context.Context, string) ([]domain.Document, error) {
			return nil, nil
		},
	}
	uc := NewIngestURLUseCase(crawler, wholeChunker{}, &fakeEmbedder{}, &fakeVectorStore{}, 10, nil)

	_, err := uc.IngestURL(context.Background(), "https://example.com/")
	if !domain.IsKind(err, domain.ErrEmptySource) {
		t.Fatalf("expected empty source error, got %v", err)
	}
}

func TestIngestURLFiltersShortPages(t *testing.T) {
	crawler := &fakeCrawler{
		crawlFn: func(context.Context, string) ([]domain.Document, error) {
			return []domain.Document{
				urlDoc("https://example.com/login", "Log in"),
				urlDoc("https://example.com/docs", strings.Repeat("real content ", 20)),
			}, nil
		},
	}
	store := &fakeVectorStore{}
	uc := NewIngestURLUseCase(crawler, wholeChunker{}, &fakeEmbedder{}, store, 100, nil)

	report, err := uc.IngestURL(context.Background(), "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.PagesProcessed != 1 {
		t.Fatalf("expected 1 page after filtering, got %d", report.PagesProcessed)
	}
}

func TestIngestURLAllPagesFilteredIsEmptySource(t *testing.T) {
	crawler := &fakeCrawler{
		crawlFn: func(context.Context, string) ([]domain.Document, error) {
			return []domain.Document{
				urlDoc("https://example.com/login", "Log in"),
				urlDoc("https://example.com/cart", "Cart"),
			}, nil
		},
	}
	store := &fakeVectorStore{}
	uc := NewIngestURLUseCase(crawler, wholeChunker{}, &fakeEmbedder{}, store, 100, nil)

	_, err := uc.IngestURL(context.Background(), "https://example.com/")
	if !domain.IsKind(err, domain.ErrEmptySource) {
		t.Fatalf("expected empty source error, got %v", err)
	}
	if store.upsertCalls != 0 {
		t.Fatalf("expected no upsert, got %d", store.upsertCalls)
	}
}

func TestIngestURLCrawlFailureIsProviderError(t *testing.T) {
	crawler := &fakeCrawler{
		crawlFn: func(context.Context, string) ([]domain.Document, error) {
			return nil, errors.New("dial timeout")
		},
	}
	uc := NewIngestURLUseCase(crawler, wholeChunker{}, &fakeEmbedder{}, &fakeVectorStore{}, 10, nil)

	_, err := uc.IngestURL(context.Background(), "https://example.com/")
	if !domain.IsKind(err, domain.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}
