package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/core/ports"
)

// Corrector rewrites a raw user query into a retrieval-friendly form.
// It is self-healing: any provider failure or empty rewrite falls back to
// the raw query, so correction never blocks the pipeline.
type Corrector struct {
	llm     ports.ChatModel
	timeout time.Duration
	log     *slog.Logger
}

func NewCorrector(llm ports.ChatModel, timeout time.Duration, log *slog.Logger) *Corrector {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Corrector{
		llm:     llm,
		timeout: timeout,
		log:     log,
	}
}

func (c *Corrector) Correct(ctx context.Context, rawQuery string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	corrected, err := c.llm.Complete(ctx, correctionSystemPrompt, rawQuery)
	if err != nil {
		c.log.Warn("query_correction_fallback", "error", err)
		return rawQuery
	}
	corrected = strings.TrimSpace(corrected)
	if corrected == "" {
		c.log.Warn("query_correction_fallback", "error", "empty correction result")
		return rawQuery
	}
	return corrected
}
