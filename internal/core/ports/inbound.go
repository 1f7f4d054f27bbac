package ports

import (
	"context"
	"io"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

// TextIngestor normalizes and indexes raw text submitted through the API.
type TextIngestor interface {
	IngestText(ctx context.Context, text string) (*domain.TextIngestReport, error)
}

// URLIngestor crawls a seed URL and indexes the extracted pages.
type URLIngestor interface {
	IngestURL(ctx context.Context, rawURL string) (*domain.URLIngestReport, error)
}

// PDFIngestor parses and indexes an uploaded PDF file.
type PDFIngestor interface {
	IngestPDF(ctx context.Context, filename, contentType string, size int64, file io.ReaderAt) (*domain.PDFIngestReport, error)
}

// QueryAnswerer runs the full answer pipeline for one user query.
type QueryAnswerer interface {
	Answer(ctx context.Context, query string) (*domain.Answer, error)
}
