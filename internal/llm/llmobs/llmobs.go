package llmobs

import (
	"context"
	"time"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/logger"
	"stock-verdict/internal/metrics"
	"stock-verdict/internal/trace"
)

// observableProvider wraps a Provider with logging, tracing and metrics
type observableProvider struct {
	provider interfaces.Provider
	metrics  *metrics.Recorder
}

// Compile-time interface check
var _ interfaces.Provider = (*observableProvider)(nil)

// Wrap wraps a provider with observability middleware
func Wrap(provider interfaces.Provider, rec *metrics.Recorder) interfaces.Provider {
	return &observableProvider{
		provider: provider,
		metrics:  rec,
	}
}

func (op *observableProvider) Name() string { return op.provider.Name() }

func (op *observableProvider) Configured() bool { return op.provider.Configured() }

// Complete calls the wrapped provider and records the outcome
func (op *observableProvider) Complete(ctx context.Context, req interfaces.CompletionRequest) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	name := op.provider.Name()

	// Skip one frame so the log points at the real caller, not this wrapper
	logger.DebugSkip(ctx, 1, "Requesting completion",
		"provider", name,
		"prompt_chars", len(req.User),
		"max_tokens", req.MaxTokens,
	)

	start := time.Now()
	text, err := op.provider.Complete(ctx, req)
	took := time.Since(start)

	if err != nil {
		op.metrics.RecordAttempt(name, "error", took)
		logger.ErrorWithErrSkip(ctx, 1, "Completion failed", err,
			"provider", name,
			"duration_ms", took.Milliseconds(),
		)
		return "", err
	}

	op.metrics.RecordAttempt(name, "ok", took)
	logger.InfoSkip(ctx, 1, "Completion received",
		"provider", name,
		"response_chars", len(text),
		"duration_ms", took.Milliseconds(),
	)

	return text, nil
}
