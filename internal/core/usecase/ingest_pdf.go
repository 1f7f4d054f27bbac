package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
	"github.com/dkotenko/knowledge-assistant/internal/core/ports"
)

// IngestPDFUseCase parses an uploaded PDF into per-page documents and
// indexes them, keeping the page number in the chunk metadata.
type IngestPDFUseCase struct {
	extractor ports.PDFExtractor
	chunker   ports.Chunker
	embedder  ports.Embedder
	vectorDB  ports.VectorStore
	log       *slog.Logger
}

func NewIngestPDFUseCase(
	extractor ports.PDFExtractor,
	chunker ports.Chunker,
	embedder ports.Embedder,
	vectorDB ports.VectorStore,
	log *slog.Logger,
) *IngestPDFUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &IngestPDFUseCase{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		vectorDB:  vectorDB,
		log:       log,
	}
}

func (uc *IngestPDFUseCase) IngestPDF(
	ctx context.Context,
	filename, contentType string,
	size int64,
	file io.ReaderAt,
) (*domain.PDFIngestReport, error) {
	if contentType != "application/pdf" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ingest pdf", errors.New("only PDF files are supported"))
	}
	if size <= 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ingest pdf", errors.New("uploaded file is empty"))
	}

	pages, err := uc.extractor.ExtractPages(ctx, file, size)
	if err != nil {
		if domain.IsKind(err, domain.ErrEmptySource) {
			return nil, err
		}
		return nil, domain.WrapError(domain.ErrEmptySource, "extract pdf", err)
	}
	if len(pages) == 0 {
		return nil, domain.WrapError(domain.ErrEmptySource, "extract pdf", errors.New("PDF appears to be empty or corrupted"))
	}

	now := time.Now().UTC()
	docs := make([]domain.Document, 0, len(pages))
	for _, page := range pages {
		docs = append(docs, domain.Document{
			Content: page.Text,
			Meta: domain.PDFMeta{
				MetaBase:   domain.MetaBase{Source: filename, IndexedAt: now},
				PageNumber: page.Number,
			},
		})
	}
	uc.log.Info("pdf_pages_extracted", "filename", filename, "pages", len(docs))

	chunksCreated, err := indexDocuments(ctx, uc.chunker, uc.embedder, uc.vectorDB, docs)
	if err != nil {
		return nil, err
	}

	return &domain.PDFIngestReport{
		Filename:           filename,
		FileSize:           size,
		DocumentsProcessed: chunksCreated,
		IndexedAt:          now,
	}, nil
}
