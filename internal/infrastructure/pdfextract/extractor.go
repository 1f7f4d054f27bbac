package pdfextract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

// Extractor pulls plain text out of an uploaded PDF, one entry per page.
type Extractor struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{log: log}
}

func (e *Extractor) ExtractPages(ctx context.Context, file io.ReaderAt, size int64) ([]domain.PDFPage, error) {
	reader, err := pdf.NewReader(file, size)
	if err != nil {
		return nil, domain.WrapError(domain.ErrEmptySource, "parse pdf", err)
	}

	total := reader.NumPage()
	if total == 0 {
		return nil, domain.WrapError(domain.ErrEmptySource, "parse pdf", errors.New("document has no pages"))
	}

	pages := make([]domain.PDFPage, 0, total)
	for num := 1; num <= total; num++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the upload.
			e.log.Warn("pdf_page_skipped", "page", num, "error", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, domain.PDFPage{Number: num, Text: text})
	}
	return pages, nil
}
