// Package llm provides the OpenAI chat-completion adapter.
// Clean Architecture: Adapter implementing ports.ChatCompleter.
package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/entities"
	"github.com/ddtdanilo/OpenAI-Document-Analyzer/internal/domain/errs"
)

// OpenAIAdapter implements ports.ChatCompleter against the OpenAI API.
type OpenAIAdapter struct {
	client      *openai.Client
	temperature float32
	maxTokens   int
}

// Options tune the completion requests. Zero values fall back to the
// provider defaults used by the original tool.
type Options struct {
	BaseURL     string // override for proxies and tests
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// NewOpenAIAdapter creates a new OpenAI adapter. The credential is required.
func NewOpenAIAdapter(apiKey string, opts Options) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errs.Wrap(errs.ErrAuthentication, "OpenAI API key not provided")
	}

	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 2000
	}

	return &OpenAIAdapter{
		client:      openai.NewClientWithConfig(cfg),
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}, nil
}

// Complete sends one assembled message sequence and extracts the first
// choice's content. One outbound call, no retries.
func (a *OpenAIAdapter) Complete(ctx context.Context, req entities.CompletionRequest) (entities.Analysis, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		return entities.Analysis{}, mapError(err)
	}
	if len(resp.Choices) == 0 {
		return entities.Analysis{}, errs.Wrap(errs.ErrRequest, "no choices in response")
	}

	model := resp.Model
	if model == "" {
		model = req.Model
	}
	return entities.Analysis{
		Answer: resp.Choices[0].Message.Content,
		Model:  model,
	}, nil
}

// mapError translates SDK failures into the shared taxonomy.
func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return mapStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return mapStatus(reqErr.HTTPStatusCode, reqErr.Error())
	}
	return errs.Wrap(errs.ErrTransport, "%v", err)
}

func mapStatus(status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.Wrap(errs.ErrAuthentication, "%s", message)
	case http.StatusTooManyRequests:
		return errs.Wrap(errs.ErrRateLimit, "%s", message)
	default:
		return errs.Wrap(errs.ErrRequest, "status %d: %s", status, message)
	}
}
