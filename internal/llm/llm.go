// File path: internal/llm/llm.go
package llm

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/writway/writway/internal/common"
	"github.com/writway/writway/internal/llm/providers"
)

type Message = providers.Message

type Usage = providers.Usage

type Provider = providers.Provider

var (
	ErrRateLimited       = providers.ErrRateLimited
	ErrInvalidCredential = providers.ErrInvalidCredential
	ErrNotConfigured     = providers.ErrNotConfigured
)

// NewProvider selects a provider from the environment. With OPENAI_API_KEY
// set it returns the OpenAI-backed provider; otherwise a disabled provider
// so extraction degrades instead of failing.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("llm: OPENAI_API_KEY not set; extraction disabled")
		return providers.NewDisabledProvider()
	}
	cfg := providers.OpenAIConfig{
		APIKey:  apiKey,
		Model:   strings.TrimSpace(os.Getenv("OPENAI_CHAT_MODEL")),
		BaseURL: strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")),
	}
	if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			logger.Warn("llm: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
		} else {
			cfg.Timeout = timeout
		}
	}
	if retriesStr := strings.TrimSpace(os.Getenv("OPENAI_MAX_RETRIES")); retriesStr != "" {
		retries, err := strconv.Atoi(retriesStr)
		if err != nil {
			logger.Warn("llm: invalid OPENAI_MAX_RETRIES, using default", "value", retriesStr, "error", err)
		} else {
			cfg.MaxRetries = retries
		}
	}
	if rpmStr := strings.TrimSpace(os.Getenv("OPENAI_REQUESTS_PER_MINUTE")); rpmStr != "" {
		rpm, err := strconv.ParseFloat(rpmStr, 64)
		if err != nil {
			logger.Warn("llm: invalid OPENAI_REQUESTS_PER_MINUTE, limiter disabled", "value", rpmStr, "error", err)
		} else {
			cfg.RequestsPerMinute = rpm
		}
	}
	provider, err := providers.NewOpenAIProvider(cfg)
	if err != nil {
		logger.Warn("llm: OpenAI provider unavailable; extraction disabled", "error", err)
		return providers.NewDisabledProvider()
	}
	logger.Info("llm: OpenAI provider selected")
	return provider
}
