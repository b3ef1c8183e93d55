// File path: internal/llm/providers/provider.go
package providers

import (
	"context"
	"errors"
)

// Message is a single chat turn sent to a completion provider.
type Message struct {
	Role    string
	Content string
}

// Usage reports token consumption for a single completion call. The claim
// analyzer uses it to emit cost-estimate log lines.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Provider is a chat-completion backend configured for strict JSON output.
type Provider interface {
	// Complete sends the messages and returns the raw completion text.
	Complete(ctx context.Context, messages []Message) (string, Usage, error)
	Name() string
	// Available reports whether the provider holds a usable credential.
	Available() bool
}

// Sentinel errors surfaced by providers so callers can distinguish quota and
// credential failures from generic transport errors.
var (
	ErrRateLimited       = errors.New("provider rate limit exceeded")
	ErrInvalidCredential = errors.New("provider credential rejected")
	ErrNotConfigured     = errors.New("no provider credential configured")
)
