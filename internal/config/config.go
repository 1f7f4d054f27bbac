package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string
	LogLevel string

	GeminiAPIKey     string
	GeminiChatURL    string
	GeminiChatModel  string
	GeminiEmbedURL   string
	GeminiEmbedModel string

	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string

	RAGTopK int

	TextChunkSize    int
	TextChunkOverlap int
	WebChunkSize     int
	WebChunkOverlap  int
	PDFChunkSize     int
	PDFChunkOverlap  int

	CrawlMaxDepth          int
	CrawlMaxPages          int
	CrawlMinTextLength     int
	CrawlRequestsPerSecond float64
	CrawlExcludedPaths     string

	ChatTimeoutSeconds       int
	CorrectionTimeoutSeconds int
	RerankTimeoutSeconds     int
	EmbedTimeoutSeconds      int
	VectorTimeoutSeconds     int
	CrawlFetchTimeoutSeconds int
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		GeminiAPIKey:     mustEnv("GEMINI_API_KEY", ""),
		GeminiChatURL:    mustEnv("GEMINI_CHAT_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		GeminiChatModel:  mustEnv("GEMINI_CHAT_MODEL", "gemini-2.0-flash"),
		GeminiEmbedURL:   mustEnv("GEMINI_EMBED_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiEmbedModel: mustEnv("GEMINI_EMBED_MODEL", "embedding-001"),

		QdrantURL:        mustEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     mustEnv("QDRANT_API_KEY", ""),
		QdrantCollection: mustEnv("QDRANT_COLLECTION", "knowledge_v1"),

		RAGTopK: mustEnvInt("RAG_TOP_K", 5),

		TextChunkSize:    mustEnvInt("TEXT_CHUNK_SIZE", 300),
		TextChunkOverlap: mustEnvInt("TEXT_CHUNK_OVERLAP", 50),
		WebChunkSize:     mustEnvInt("WEB_CHUNK_SIZE", 1000),
		WebChunkOverlap:  mustEnvInt("WEB_CHUNK_OVERLAP", 100),
		PDFChunkSize:     mustEnvInt("PDF_CHUNK_SIZE", 1000),
		PDFChunkOverlap:  mustEnvInt("PDF_CHUNK_OVERLAP", 200),

		CrawlMaxDepth:          mustEnvInt("CRAWL_MAX_DEPTH", 4),
		CrawlMaxPages:          mustEnvInt("CRAWL_MAX_PAGES", 50),
		CrawlMinTextLength:     mustEnvInt("CRAWL_MIN_TEXT_LENGTH", 100),
		CrawlRequestsPerSecond: mustEnvFloat("CRAWL_REQUESTS_PER_SECOND", 4),
		CrawlExcludedPaths:     mustEnv("CRAWL_EXCLUDED_PATHS", "admin,login,register,cart,checkout"),

		ChatTimeoutSeconds:       mustEnvInt("CHAT_TIMEOUT_SECONDS", 60),
		CorrectionTimeoutSeconds: mustEnvInt("CORRECTION_TIMEOUT_SECONDS", 10),
		RerankTimeoutSeconds:     mustEnvInt("RERANK_TIMEOUT_SECONDS", 15),
		EmbedTimeoutSeconds:      mustEnvInt("EMBED_TIMEOUT_SECONDS", 30),
		VectorTimeoutSeconds:     mustEnvInt("VECTOR_TIMEOUT_SECONDS", 30),
		CrawlFetchTimeoutSeconds: mustEnvInt("CRAWL_FETCH_TIMEOUT_SECONDS", 10),
	}
}

// fileOverlay is the optional YAML config file shape. Only tuning knobs are
// exposed there; secrets and endpoints stay in the environment.
type fileOverlay struct {
	RAGTopK          *int     `yaml:"rag_top_k"`
	TextChunkSize    *int     `yaml:"text_chunk_size"`
	TextChunkOverlap *int     `yaml:"text_chunk_overlap"`
	WebChunkSize     *int     `yaml:"web_chunk_size"`
	WebChunkOverlap  *int     `yaml:"web_chunk_overlap"`
	PDFChunkSize     *int     `yaml:"pdf_chunk_size"`
	PDFChunkOverlap  *int     `yaml:"pdf_chunk_overlap"`
	CrawlMaxDepth    *int     `yaml:"crawl_max_depth"`
	CrawlMaxPages    *int     `yaml:"crawl_max_pages"`
	CrawlMinTextLen  *int     `yaml:"crawl_min_text_length"`
	CrawlRPS         *float64 `yaml:"crawl_requests_per_second"`
	CrawlExcluded    *string  `yaml:"crawl_excluded_paths"`
}

// ApplyFile overlays tuning values from a YAML file onto the loaded config.
func (c *Config) ApplyFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	var overlay fileOverlay
	if err := yaml.NewDecoder(f).Decode(&overlay); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&c.RAGTopK, overlay.RAGTopK)
	setInt(&c.TextChunkSize, overlay.TextChunkSize)
	setInt(&c.TextChunkOverlap, overlay.TextChunkOverlap)
	setInt(&c.WebChunkSize, overlay.WebChunkSize)
	setInt(&c.WebChunkOverlap, overlay.WebChunkOverlap)
	setInt(&c.PDFChunkSize, overlay.PDFChunkSize)
	setInt(&c.PDFChunkOverlap, overlay.PDFChunkOverlap)
	setInt(&c.CrawlMaxDepth, overlay.CrawlMaxDepth)
	setInt(&c.CrawlMaxPages, overlay.CrawlMaxPages)
	setInt(&c.CrawlMinTextLength, overlay.CrawlMinTextLen)
	if overlay.CrawlRPS != nil {
		c.CrawlRequestsPerSecond = *overlay.CrawlRPS
	}
	if overlay.CrawlExcluded != nil {
		c.CrawlExcludedPaths = *overlay.CrawlExcluded
	}
	return nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
