package ports

import (
	"context"
	"io"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

// ChatModel is the chat-completion provider contract. Complete issues a
// single call; CompleteDeterministic pins sampling temperature to zero;
// CompleteReliable retries transient failures before giving up and is the
// variant hard-fail stages use.
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteDeterministic(ctx context.Context, system, user string) (string, error)
	CompleteReliable(ctx context.Context, system, user string) (string, error)
}

// Embedder builds vectors for stored content and for queries. The two
// methods carry different task roles but must produce vectors comparable
// under the store's similarity metric.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Chunker splits normalized document text into retrievable segments.
type Chunker interface {
	Split(text string) []string
}

// VectorStore indexes chunk batches and performs similarity search.
// UpsertChunks is atomic from the pipeline's perspective: either the whole
// batch is indexed or the call fails.
type VectorStore interface {
	UpsertChunks(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, limit int) ([]domain.RetrievedChunk, error)
}

// PageCrawler fetches a bounded same-host crawl from a seed URL and returns
// one cleaned Document per page. Unreachable pages are skipped, not fatal.
type PageCrawler interface {
	Crawl(ctx context.Context, seedURL string) ([]domain.Document, error)
}

// PDFExtractor parses an uploaded PDF into per-page plain text.
type PDFExtractor interface {
	ExtractPages(ctx context.Context, file io.ReaderAt, size int64) ([]domain.PDFPage, error)
}
