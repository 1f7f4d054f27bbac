package usecase

import (
	"fmt"
	"strings"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

// FormatSources renders the deduplicated provenance list for an answer.
// Returns an empty string when there is nothing to attribute, so callers
// can skip the Sources section entirely.
func FormatSources(chunks []domain.RetrievedChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(chunks))
	lines := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		label := sourceLabel(chunk.Meta)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		lines = append(lines, "- "+label)
	}
	return strings.Join(lines, "\n")
}

func sourceLabel(meta domain.Metadata) string {
	switch m := meta.(type) {
	case domain.TextMeta:
		if m.Source == domain.SourceAPIRequest {
			return "Text Input"
		}
		return labelOrUnknown(m.Source)
	case domain.URLMeta:
		return labelOrUnknown(m.Source)
	case domain.PDFMeta:
		if m.Source == "" {
			return "unknown"
		}
		if strings.HasSuffix(strings.ToLower(m.Source), ".pdf") && m.PageNumber > 0 {
			return fmt.Sprintf("%s (Page %d)", m.Source, m.PageNumber)
		}
		return m.Source
	default:
		return "unknown"
	}
}

func labelOrUnknown(source string) string {
	if source == "" {
		return "unknown"
	}
	return source
}
