package gemini

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dkotenko/knowledge-assistant/internal/infrastructure/resilience"
)

// Client talks to Gemini's OpenAI-compatible chat completions endpoint.
// It carries no per-request state and is safe for concurrent use.
type Client struct {
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

func New(baseURL, apiKey, model string) *Client {
	return NewWithOptions(baseURL, apiKey, model, Options{})
}

func NewWithOptions(baseURL, apiKey, model string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete issues a single chat completion call with default sampling.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	return c.chatCompletion(ctx, system, user, nil)
}

// CompleteDeterministic pins sampling temperature to zero. Used where the
// response must follow a strict output contract.
func (c *Client) CompleteDeterministic(ctx context.Context, system, user string) (string, error) {
	zero := 0.0
	return c.chatCompletion(ctx, system, user, &zero)
}

// CompleteReliable retries transient failures under the resilience policy
// before reporting an error.
func (c *Client) CompleteReliable(ctx context.Context, system, user string) (string, error) {
	if c.executor == nil {
		return c.Complete(ctx, system, user)
	}

	var out string
	err := c.executor.Execute(ctx, "llm_chat_completion", func(ctx context.Context) error {
		var callErr error
		out, callErr = c.chatCompletion(ctx, system, user, nil)
		return callErr
	}, classifyGeminiError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("llm chat completion", err)
	}
	return out, nil
}

func (c *Client) chatCompletion(ctx context.Context, system, user string, temperature *float64) (string, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
	}

	var response chatResponse
	if err := c.postJSON(ctx, "/chat/completions", request, &response, "chat"); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
