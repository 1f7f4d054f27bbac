package usecase

import (
	"testing"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

func TestFormatSourcesRendersTextInputLabel(t *testing.T) {
	chunks := []domain.RetrievedChunk{
		{Meta: domain.TextMeta{MetaBase: domain.MetaBase{Source: domain.SourceAPIRequest}}},
	}
	if got := FormatSources(chunks); got != "- Text Input" {
		t.Fatalf("unexpected sources: %q", got)
	}
}

func TestFormatSourcesDeduplicatesPreservingFirstOccurrence(t *testing.T) {
	chunks := []domain.RetrievedChunk{
		{Meta: domain.URLMeta{MetaBase: domain.MetaBase{Source: "https://example.com/a"}}},
		{Meta: domain.TextMeta{MetaBase: domain.MetaBase{Source: domain.SourceAPIRequest}}},
		{Meta: domain.URLMeta{MetaBase: domain.MetaBase{Source: "https://example.com/a"}}},
	}
	want := "- https://example.com/a\n- Text Input"
	if got := FormatSources(chunks); got != want {
		t.Fatalf("unexpected sources:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatSourcesAppendsPDFPageNumber(t *testing.T) {
	chunks := []domain.RetrievedChunk{
		{Meta: domain.PDFMeta{MetaBase: domain.MetaBase{Source: "handbook.pdf"}, PageNumber: 12}},
	}
	if got := FormatSources(chunks); got != "- handbook.pdf (Page 12)" {
		t.Fatalf("unexpected sources: %q", got)
	}
}

func TestFormatSourcesEmptyInput(t *testing.T) {
	if got := FormatSources(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestFormatSourcesUnknownForMissingSource(t *testing.T) {
	chunks := []domain.RetrievedChunk{
		{Meta: domain.URLMeta{}},
	}
	if got := FormatSources(chunks); got != "- unknown" {
		t.Fatalf("unexpected sources: %q", got)
	}
}
