package noop

import (
	"context"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/llm"
)

// Provider stands in when no LLM is configured. It reports itself as
// unconfigured so callers go straight to the rule-based verdict.
type Provider struct{}

var _ interfaces.Provider = Provider{}

func New() Provider {
	return Provider{}
}

func (Provider) Name() string { return "none" }

func (Provider) Configured() bool { return false }

func (Provider) Complete(context.Context, interfaces.CompletionRequest) (string, error) {
	return "", llm.ErrNotConfigured
}
