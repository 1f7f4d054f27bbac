package domain

import "time"

// RetrievedChunk is a chunk returned by similarity search, in store order.
type RetrievedChunk struct {
	Content  string
	Meta     Metadata
	Position int
	Score    float64
}

// Answer is the synthesized result of one chat request. It is built once
// per request and never persisted.
type Answer struct {
	OriginalQuery  string    `json:"originalQuery"`
	CorrectedQuery string    `json:"correctedQuery"`
	Text           string    `json:"answer"`
	ChunksFound    int       `json:"chunksFound"`
	ProcessedAt    time.Time `json:"processedAt"`
}

// TextIngestReport summarizes one text ingestion request.
type TextIngestReport struct {
	OriginalText  string
	ProcessedText string
	ChunksCreated int
	IndexedAt     time.Time
}

// URLIngestReport summarizes one URL ingestion request.
type URLIngestReport struct {
	OriginalURL    string
	PagesProcessed int
	ChunksCreated  int
	IndexedAt      time.Time
}

// PDFIngestReport summarizes one PDF ingestion request.
type PDFIngestReport struct {
	Filename           string
	FileSize           int64
	DocumentsProcessed int
	IndexedAt          time.Time
}
