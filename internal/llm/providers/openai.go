// File path: internal/llm/providers/openai.go
package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/writway/writway/internal/common"
)

// OpenAIConfig controls the OpenAI-backed provider.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// RequestsPerMinute caps outbound completion calls; zero disables the
	// local limiter.
	RequestsPerMinute float64
}

type OpenAIProvider struct {
	client     *openai.Client
	model      string
	maxRetries int
	limiter    *rate.Limiter
}

// NewOpenAIProvider builds a provider around the official chat-completions
// API, forced into JSON-object response mode.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60.0), 1)
	}
	logger := common.Logger()
	logger.Info("llm: OpenAI provider configured", "model", model, "timeout", timeout, "max_retries", maxRetries)
	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      model,
		maxRetries: maxRetries,
		limiter:    limiter,
	}, nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message) (string, Usage, error) {
	logger := common.Logger()
	if p.client == nil {
		return "", Usage{}, fmt.Errorf("nil openai client")
	}
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", Usage{}, err
		}
	}
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	for _, msg := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content})
	}
	logger.Debug("llm: sending completion request", "model", p.model, "messages", len(messages))

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", Usage{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
			logger.Warn("llm: retrying completion request", "attempt", attempt+1, "max", p.maxRetries)
		}
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			mapped, retriable := mapAPIError(err)
			lastErr = mapped
			if retriable {
				continue
			}
			logger.Error("llm: completion failed", "error", mapped)
			return "", Usage{}, mapped
		}
		if len(resp.Choices) == 0 {
			return "", Usage{}, fmt.Errorf("no choices returned")
		}
		usage := Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
		logger.Debug("llm: completion succeeded", "total_tokens", usage.TotalTokens)
		return resp.Choices[0].Message.Content, usage, nil
	}
	logger.Error("llm: completion failed after retries", "error", lastErr)
	return "", Usage{}, lastErr
}

// mapAPIError converts OpenAI API failures into the provider sentinels.
// Quota and credential failures are terminal; only server-side failures are
// retried.
func mapAPIError(err error) (mapped error, retriable bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message), false
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrInvalidCredential, apiErr.Message), false
		}
		if apiErr.HTTPStatusCode >= http.StatusInternalServerError {
			return err, true
		}
		return err, false
	}
	return err, false
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Available() bool { return p != nil && p.client != nil }
