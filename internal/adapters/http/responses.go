package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dkotenko/knowledge-assistant/internal/core/domain"
)

type successEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type textIngestData struct {
	OriginalText  string `json:"originalText"`
	ProcessedText string `json:"processedText"`
	ChunksCreated int    `json:"chunksCreated"`
	IndexedAt     string `json:"indexedAt"`
}

type urlIngestData struct {
	OriginalURL    string `json:"originalUrl"`
	PagesProcessed int    `json:"pagesProcessed"`
	ChunksCreated  int    `json:"chunksCreated"`
	IndexedAt      string `json:"indexedAt"`
}

// pdfIngestResponse is flat rather than nested under "data", and reports
// the file size as a human-readable megabyte string.
type pdfIngestResponse struct {
	Success            bool   `json:"success"`
	Message            string `json:"message"`
	DocumentsProcessed int    `json:"documentsProcessed"`
	Filename           string `json:"filename"`
	FileSize           string `json:"fileSize"`
}

func newTextIngestData(report *domain.TextIngestReport) textIngestData {
	return textIngestData{
		OriginalText:  report.OriginalText,
		ProcessedText: report.ProcessedText,
		ChunksCreated: report.ChunksCreated,
		IndexedAt:     report.IndexedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func newURLIngestData(report *domain.URLIngestReport) urlIngestData {
	return urlIngestData{
		OriginalURL:    report.OriginalURL,
		PagesProcessed: report.PagesProcessed,
		ChunksCreated:  report.ChunksCreated,
		IndexedAt:      report.IndexedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func newPDFIngestResponse(report *domain.PDFIngestReport) pdfIngestResponse {
	return pdfIngestResponse{
		Success:            true,
		Message:            "File uploaded and indexed successfully",
		DocumentsProcessed: report.DocumentsProcessed,
		Filename:           report.Filename,
		FileSize:           formatFileSize(report.FileSize),
	}
}

func formatFileSize(sizeBytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(sizeBytes)/1024.0/1024.0)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, successEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{
		Success: false,
		Error:   message,
	})
}
