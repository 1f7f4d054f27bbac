package qdrant

import (
	"fmt"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

// Point payloads round-trip the typed metadata variants through a flat
// field set keyed on document_type.

func encodePayload(chunk domain.Chunk) map[string]any {
	payload := map[string]any{
		"text":        chunk.Content,
		"chunk_index": chunk.Position,
	}
	if chunk.Meta == nil {
		return payload
	}

	base := chunk.Meta.Base()
	payload["source"] = base.Source
	payload["document_type"] = string(chunk.Meta.Type())
	payload["timestamp"] = base.IndexedAt.UTC().Format(time.RFC3339)

	switch meta := chunk.Meta.(type) {
	case domain.TextMeta:
		payload["original_length"] = meta.OriginalLength
		payload["processed_length"] = meta.ProcessedLength
	case domain.URLMeta:
		payload["depth"] = meta.Depth
	case domain.PDFMeta:
		payload["page_number"] = meta.PageNumber
	}
	return payload
}

func decodePayload(payload map[string]any) domain.RetrievedChunk {
	base := domain.MetaBase{
		Source: getString(payload, "source"),
	}
	if ts, err := time.Parse(time.RFC3339, getString(payload, "timestamp")); err == nil {
		base.IndexedAt = ts
	}

	var meta domain.Metadata
	switch domain.SourceType(getString(payload, "document_type")) {
	case domain.SourceText:
		meta = domain.TextMeta{
			MetaBase:        base,
			OriginalLength:  getInt(payload, "original_length"),
			ProcessedLength: getInt(payload, "processed_length"),
		}
	case domain.SourceURL:
		meta = domain.URLMeta{
			MetaBase: base,
			Depth:    getInt(payload, "depth"),
		}
	case domain.SourcePDF:
		meta = domain.PDFMeta{
			MetaBase:   base,
			PageNumber: getInt(payload, "page_number"),
		}
	}

	return domain.RetrievedChunk{
		Content:  getString(payload, "text"),
		Meta:     meta,
		Position: getInt(payload, "chunk_index"),
	}
}

func getString(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func getInt(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
