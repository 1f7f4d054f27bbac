package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/infrastructure/resilience"
)

const (
	taskRoleDocument = "RETRIEVAL_DOCUMENT"
	taskRoleQuery    = "RETRIEVAL_QUERY"
)

// Embedder calls the Gemini embedContents API. Document and query vectors
// are produced with different task roles but share the model and
// dimensionality, so they stay comparable under cosine similarity.
type Embedder struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, apiKey, model string) *Embedder {
	return NewWithOptions(baseURL, apiKey, model, Options{})
}

func NewWithOptions(baseURL, apiKey, model string, options Options) *Embedder {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Embedder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

type embedContent struct {
	Parts []embedPart `json:"parts"`
}

type embedPart struct {
	Text string `json:"text"`
}

type embedRequest struct {
	Model    string       `json:"model"`
	Content  embedContent `json:"content"`
	TaskType string       `json:"taskType"`
}

type batchEmbedRequest struct {
	Requests []embedRequest `json:"requests"`
}

type embedding struct {
	Values []float32 `json:"values"`
}

type batchEmbedResponse struct {
	Embeddings []embedding `json:"embeddings"`
}

type embedResponse struct {
	Embedding embedding `json:"embedding"`
}

// EmbedDocuments embeds a chunk batch with the document task role.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	requests := make([]embedRequest, 0, len(texts))
	for _, text := range texts {
		requests = append(requests, embedRequest{
			Model:    "models/" + e.model,
			Content:  embedContent{Parts: []embedPart{{Text: text}}},
			TaskType: taskRoleDocument,
		})
	}

	var response batchEmbedResponse
	err := e.execute(ctx, "embed_documents", func(ctx context.Context) error {
		path := fmt.Sprintf("/models/%s:batchEmbedContents", e.model)
		return e.postJSON(ctx, path, batchEmbedRequest{Requests: requests}, &response, "batch embed")
	})
	if err != nil {
		return nil, err
	}

	vectors := make([][]float32, 0, len(response.Embeddings))
	for _, emb := range response.Embeddings {
		vectors = append(vectors, emb.Values)
	}
	return vectors, nil
}

// EmbedQuery embeds a single query with the query task role.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	request := embedRequest{
		Model:    "models/" + e.model,
		Content:  embedContent{Parts: []embedPart{{Text: text}}},
		TaskType: taskRoleQuery,
	}

	var response embedResponse
	err := e.execute(ctx, "embed_query", func(ctx context.Context) error {
		path := fmt.Sprintf("/models/%s:embedContent", e.model)
		return e.postJSON(ctx, path, request, &response, "embed")
	})
	if err != nil {
		return nil, err
	}
	if len(response.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return response.Embedding.Values, nil
}

func (e *Embedder) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if e.executor == nil {
		return fn(ctx)
	}
	if err := e.executor.Execute(ctx, operation, fn, classifyEmbedError); err != nil {
		return wrapTemporaryIfNeeded(operation, err)
	}
	return nil
}

func (e *Embedder) postJSON(ctx context.Context, path string, payload any, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return newStatusError(operation, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

type statusError struct {
	operation  string
	statusCode int
	status     string
	body       string
}

func newStatusError(operation string, resp *http.Response) *statusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &statusError{
		operation:  operation,
		statusCode: resp.StatusCode,
		status:     resp.Status,
		body:       strings.TrimSpace(string(body)),
	}
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("gemini %s status: %s", e.operation, e.status)
	}
	return fmt.Sprintf("gemini %s status: %s: %s", e.operation, e.status, e.body)
}
