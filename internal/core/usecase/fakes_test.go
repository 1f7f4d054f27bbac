package usecase

import (
	"context"
	"io"
	"strings"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

type fakeChat struct {
	completeFn              func(ctx context.Context, system, user string) (string, error)
	completeDeterministicFn func(ctx context.Context, system, user string) (string, error)
	completeReliableFn      func(ctx context.Context, system, user string) (string, error)

	completeCalls              int
	completeDeterministicCalls int
	completeReliableCalls      int
}

func (f *fakeChat) Complete(ctx context.Context, system, user string) (string, error) {
	f.completeCalls++
	if f.completeFn == nil {
		return user, nil
	}
	return f.completeFn(ctx, system, user)
}

func (f *fakeChat) CompleteDeterministic(ctx context.Context, system, user string) (string, error) {
	f.completeDeterministicCalls++
	if f.completeDeterministicFn == nil {
		return user, nil
	}
	return f.completeDeterministicFn(ctx, system, user)
}

func (f *fakeChat) CompleteReliable(ctx context.Context, system, user string) (string, error) {
	f.completeReliableCalls++
	if f.completeReliableFn == nil {
		return user, nil
	}
	return f.completeReliableFn(ctx, system, user)
}

type fakeEmbedder struct {
	embedDocumentsFn func(ctx context.Context, texts []string) ([][]float32, error)
	embedQueryFn     func(ctx context.Context, text string) ([]float32, error)

	embedDocumentsCalls int
	embedQueryCalls     int
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	f.embedDocumentsCalls++
	if f.embedDocumentsFn == nil {
		vectors := make([][]float32, len(texts))
		for i := range vectors {
			vectors[i] = []float32{0.1, 0.2}
		}
		return vectors, nil
	}
	return f.embedDocumentsFn(ctx, texts)
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	f.embedQueryCalls++
	if f.embedQueryFn == nil {
		return []float32{0.1, 0.2}, nil
	}
	return f.embedQueryFn(ctx, text)
}

type fakeVectorStore struct {
	upsertFn func(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error
	searchFn func(ctx context.Context, vector []float32, limit int) ([]domain.RetrievedChunk, error)

	upsertCalls    int
	searchCalls    int
	upsertedChunks []domain.Chunk
}

func (f *fakeVectorStore) UpsertChunks(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	f.upsertCalls++
	f.upsertedChunks = append(f.upsertedChunks, chunks...)
	if f.upsertFn == nil {
		return nil
	}
	return f.upsertFn(ctx, chunks, vectors)
}

func (f *fakeVectorStore) Search(ctx context.Context, vector []float32, limit int) ([]domain.RetrievedChunk, error) {
	f.searchCalls++
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, vector, limit)
}

// wordChunker splits on whitespace, one chunk per word. Keeps chunk counts
// predictable in ingestion tests.
type wordChunker struct{}

func (wordChunker) Split(text string) []string {
	return strings.Fields(text)
}

// wholeChunker returns the input as a single chunk.
type wholeChunker struct{}

func (wholeChunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []string{text}
}

type fakeCrawler struct {
	crawlFn func(ctx context.Context, seedURL string) ([]domain.Document, error)
}

func (f *fakeCrawler) Crawl(ctx context.Context, seedURL string) ([]domain.Document, error) {
	return f.crawlFn(ctx, seedURL)
}

type fakeExtractor struct {
	extractFn func(ctx context.Context) ([]domain.PDFPage, error)
}

func (f *fakeExtractor) ExtractPages(ctx context.Context, file io.ReaderAt, size int64) ([]domain.PDFPage, error) {
	return f.extractFn(ctx)
}
