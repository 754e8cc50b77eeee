package interfaces

import (
	"context"

	"stock-verdict/internal/types"
)

// CompletionRequest is a single system+user exchange with an LLM.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Provider is the capability every LLM adapter exposes.
type Provider interface {
	Name() string
	Configured() bool
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// VerdictAnalyzer turns a prepared context into a verdict. It never fails.
type VerdictAnalyzer interface {
	Analyze(ctx context.Context, vc types.VerdictContext) types.Verdict
}
