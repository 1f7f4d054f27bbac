package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/ports"
	"github.com/dkotenko/knowledge-assistant/internal/observability/metrics"
)

// maxUploadBytes bounds multipart memory buffering for PDF uploads.
const maxUploadBytes = 32 << 20

type Router struct {
	textIngestor ports.TextIngestor
	urlIngestor  ports.URLIngestor
	pdfIngestor  ports.PDFIngestor
	answerer     ports.QueryAnswerer
	metrics      *metrics.HTTPServerMetrics
	service      string
	log          *slog.Logger
}

func NewRouter(
	textIngestor ports.TextIngestor,
	urlIngestor ports.URLIngestor,
	pdfIngestor ports.PDFIngestor,
	answerer ports.QueryAnswerer,
	serverMetrics *metrics.HTTPServerMetrics,
	service string,
	log *slog.Logger,
) *Router {
	return &Router{
		textIngestor: textIngestor,
		urlIngestor:  urlIngestor,
		pdfIngestor:  pdfIngestor,
		answerer:     answerer,
		metrics:      serverMetrics,
		service:      service,
		log:          log,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/ingest/text", rt.ingestEndpoint("load-text", rt.ingestText))
	mux.HandleFunc("/ingest/url", rt.ingestEndpoint("load-url", rt.ingestURL))
	mux.HandleFunc("/ingest/pdf", rt.ingestEndpoint("load-pdf", rt.ingestPDF))
	mux.HandleFunc("/chat", rt.chat)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ingestEndpoint dispatches POST to the handler and answers GET with a
// liveness message so the endpoints can be probed from a browser.
func (rt *Router) ingestEndpoint(name string, post http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			post(w, r)
		case http.MethodGet:
			writeJSON(w, http.StatusOK, successEnvelope{
				Success: true,
				Message: name + " endpoint is live",
			})
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

func (rt *Router) ingestText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	start := time.Now()
	report, err := rt.textIngestor.IngestText(r.Context(), req.Text)
	if err != nil {
		rt.writeMappedError(w, r, "ingest_text_failed", err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordIngestObservation(rt.service, "text", report.ChunksCreated, time.Since(start))
	}
	writeSuccess(w, "Text processed and indexed successfully", newTextIngestData(report))
}

func (rt *Router) ingestURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	start := time.Now()
	report, err := rt.urlIngestor.IngestURL(r.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		rt.writeMappedError(w, r, "ingest_url_failed", err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordIngestObservation(rt.service, "url", report.ChunksCreated, time.Since(start))
	}
	writeSuccess(w, "Web content processed and indexed successfully", newURLIngestData(report))
}

func (rt *Router) ingestPDF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded. Please select a PDF file.")
		return
	}
	defer file.Close()

	start := time.Now()
	report, err := rt.pdfIngestor.IngestPDF(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		rt.writeMappedError(w, r, "ingest_pdf_failed", err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordIngestObservation(rt.service, "pdf", report.DocumentsProcessed, time.Since(start))
	}
	writeJSON(w, http.StatusOK, newPDFIngestResponse(report))
}

func (rt *Router) chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	start := time.Now()
	answer, err := rt.answerer.Answer(r.Context(), req.Query)
	if err != nil {
		rt.writeMappedError(w, r, "chat_failed", err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordAnswerObservation(rt.service, answer.ChunksFound, time.Since(start))
	}
	writeSuccess(w, "Answer generated successfully", answer)
}

func (rt *Router) writeMappedError(w http.ResponseWriter, r *http.Request, event string, err error) {
	status := mapErrorToHTTPStatus(err)
	logAttrs := []any{
		"request_id", requestIDFromContext(r.Context()),
		"status", status,
		"error", err.Error(),
	}
	if status >= 500 {
		rt.log.Error(event, logAttrs...)
	} else {
		rt.log.Warn(event, logAttrs...)
	}
	writeError(w, status, err.Error())
}
