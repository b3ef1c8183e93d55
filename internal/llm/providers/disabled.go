// File path: internal/llm/providers/disabled.go
package providers

import (
	"context"
)

// DisabledProvider stands in when no extraction credential is configured.
// Callers can check Available before invoking Complete; extraction degrades
// to an all-fields-missing response instead of failing hard.
type DisabledProvider struct{}

func NewDisabledProvider() *DisabledProvider {
	return &DisabledProvider{}
}

func (d *DisabledProvider) Complete(ctx context.Context, messages []Message) (string, Usage, error) {
	return "", Usage{}, ErrNotConfigured
}

func (d *DisabledProvider) Name() string { return "disabled" }

func (d *DisabledProvider) Available() bool { return false }
