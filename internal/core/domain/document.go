package domain

import "time"

type SourceType string

const (
	SourceText SourceType = "text"
	SourceURL  SourceType = "url"
	SourcePDF  SourceType = "pdf"
)

// SourceAPIRequest is the provenance marker for free text submitted through
// the ingest API. The source formatter renders it as "Text Input".
const SourceAPIRequest = "api_request"

// MetaBase carries the provenance fields shared by every source type.
type MetaBase struct {
	Source    string    `json:"source"`
	IndexedAt time.Time `json:"indexed_at"`
}

// Metadata is the closed set of per-source provenance variants. Consumers
// resolve the concrete variant with a type switch instead of probing
// optional fields.
type Metadata interface {
	Base() MetaBase
	Type() SourceType
}

// TextMeta tags content ingested from a raw text request.
type TextMeta struct {
	MetaBase
	OriginalLength  int `json:"original_length"`
	ProcessedLength int `json:"processed_length"`
}

func (m TextMeta) Base() MetaBase   { return m.MetaBase }
func (m TextMeta) Type() SourceType { return SourceText }

// URLMeta tags content extracted from a crawled web page. Source holds the
// page URL, Depth the link distance from the crawl seed.
type URLMeta struct {
	MetaBase
	Depth int `json:"depth"`
}

func (m URLMeta) Base() MetaBase   { return m.MetaBase }
func (m URLMeta) Type() SourceType { return SourceURL }

// PDFMeta tags a single page of an uploaded PDF. Source holds the filename.
type PDFMeta struct {
	MetaBase
	PageNumber int `json:"page_number"`
}

func (m PDFMeta) Base() MetaBase   { return m.MetaBase }
func (m PDFMeta) Type() SourceType { return SourcePDF }

// Document is one normalized unit of ingested content. Loaders produce it,
// the chunker consumes it; it is never mutated afterwards.
type Document struct {
	Content string
	Meta    Metadata
}

// Chunk is a bounded fragment of a Document and the unit of embedding,
// storage and retrieval. Position is the chunk's index within its parent.
type Chunk struct {
	Content  string
	Meta     Metadata
	Position int
}

// PDFPage is one extracted page of an uploaded PDF, numbered from 1.
type PDFPage struct {
	Number int
	Text   string
}
