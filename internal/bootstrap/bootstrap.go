package bootstrap

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	httpadapter "github.com/dkotenko/knowledge-assistant/internal/adapters/http"
	"github.com/dkotenko/knowledge-assistant/internal/config"
	"github.com/dkotenko/knowledge-assistant/internal/core/ports"
	"github.com/dkotenko/knowledge-assistant/internal/core/usecase"
	"github.com/dkotenko/knowledge-assistant/internal/infrastructure/chunking"
	"github.com/dkotenko/knowledge-assistant/internal/infrastructure/crawler"
	embgemini "github.com/dkotenko/knowledge-assistant/internal/infrastructure/embedding/gemini"
	llmgemini "github.com/dkotenko/knowledge-assistant/internal/infrastructure/llm/gemini"
	"github.com/dkotenko/knowledge-assistant/internal/infrastructure/pdfextract"
	"github.com/dkotenko/knowledge-assistant/internal/infrastructure/resilience"
	"github.com/dkotenko/knowledge-assistant/internal/infrastructure/vector/qdrant"
	"github.com/dkotenko/knowledge-assistant/internal/observability/metrics"
)

const ServiceName = "knowledge-assistant"

// App wires every adapter and pipeline stage together. Providers are
// constructed once here and injected; nothing in the pipeline reaches
// for process-wide state.
type App struct {
	Config config.Config

	TextIngestor ports.TextIngestor
	URLIngestor  ports.URLIngestor
	PDFIngestor  ports.PDFIngestor
	Answerer     ports.QueryAnswerer

	Metrics *metrics.HTTPServerMetrics
}

func New(cfg config.Config, log *slog.Logger) *App {
	executor := resilience.NewExecutor(resilience.DefaultConfig())

	chatLLM := llmgemini.NewWithOptions(cfg.GeminiChatURL, cfg.GeminiAPIKey, cfg.GeminiChatModel, llmgemini.Options{
		Timeout:            seconds(cfg.ChatTimeoutSeconds),
		ResilienceExecutor: executor,
	})
	embedder := embgemini.NewWithOptions(cfg.GeminiEmbedURL, cfg.GeminiAPIKey, cfg.GeminiEmbedModel, embgemini.Options{
		Timeout:            seconds(cfg.EmbedTimeoutSeconds),
		ResilienceExecutor: executor,
	})
	vectorDB := qdrant.NewWithOptions(cfg.QdrantURL, cfg.QdrantCollection, qdrant.Options{
		APIKey:             cfg.QdrantAPIKey,
		Timeout:            seconds(cfg.VectorTimeoutSeconds),
		ResilienceExecutor: executor,
	})

	textSplitter := chunking.NewSplitter(cfg.TextChunkSize, cfg.TextChunkOverlap)
	webSplitter := chunking.NewSplitter(cfg.WebChunkSize, cfg.WebChunkOverlap)
	pdfSplitter := chunking.NewSplitter(cfg.PDFChunkSize, cfg.PDFChunkOverlap)

	siteCrawler := crawler.New(crawler.Config{
		MaxDepth:          cfg.CrawlMaxDepth,
		MaxPages:          cfg.CrawlMaxPages,
		ExcludedPaths:     splitCSV(cfg.CrawlExcludedPaths),
		RequestsPerSecond: cfg.CrawlRequestsPerSecond,
		FetchTimeout:      seconds(cfg.CrawlFetchTimeoutSeconds),
	}, log)
	pdfExtractor := pdfextract.New(log)

	corrector := usecase.NewCorrector(chatLLM, seconds(cfg.CorrectionTimeoutSeconds), log)
	reranker := usecase.NewReranker(chatLLM, seconds(cfg.RerankTimeoutSeconds), log)
	synthesizer := usecase.NewSynthesizer(chatLLM, seconds(cfg.ChatTimeoutSeconds))

	return &App{
		Config:       cfg,
		TextIngestor: usecase.NewIngestTextUseCase(chatLLM, textSplitter, embedder, vectorDB, seconds(cfg.CorrectionTimeoutSeconds), log),
		URLIngestor:  usecase.NewIngestURLUseCase(siteCrawler, webSplitter, embedder, vectorDB, cfg.CrawlMinTextLength, log),
		PDFIngestor:  usecase.NewIngestPDFUseCase(pdfExtractor, pdfSplitter, embedder, vectorDB, log),
		Answerer:     usecase.NewAnswerQueryUseCase(corrector, embedder, vectorDB, reranker, synthesizer, cfg.RAGTopK, log),
		Metrics:      metrics.NewHTTPServerMetrics(ServiceName),
	}
}

func (a *App) Handler(log *slog.Logger) http.Handler {
	router := httpadapter.NewRouter(
		a.TextIngestor,
		a.URLIngestor,
		a.PDFIngestor,
		a.Answerer,
		a.Metrics,
		ServiceName,
		log,
	)
	return router.Handler()
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
